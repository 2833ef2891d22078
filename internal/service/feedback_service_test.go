package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
)

func boolPtr(b bool) *bool { return &b }

func setupFeedbackFixture(t *testing.T) (CommentService, RatingService, *contentFixture, uint) {
	t.Helper()
	f := setupContentFixture()
	course := f.createCourse(t, f.admin)
	lesson, err := f.lesson.Create(context.Background(), actorOf(f.admin), &dto.CreateLessonRequest{
		CourseID: course.ID, Title: "L", Content: "C",
	})
	if err != nil {
		t.Fatalf("创建课时失败: %v", err)
	}
	return NewCommentService(f.repo, zap.NewNop()), NewRatingService(f.repo, zap.NewNop()), f, lesson.ID
}

// ── 评论 ──

func TestComment_CreateBindsLessonAndUser(t *testing.T) {
	comments, _, f, lessonID := setupFeedbackFixture(t)

	resp, err := comments.Create(context.Background(), actorOf(f.student), lessonID, &dto.CreateCommentRequest{Content: "好课"})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if resp.User != "Test User" {
		t.Errorf("评论者应展示全名，实际=%s", resp.User)
	}
	stored := f.mocks.comments.comments[0]
	if stored.LessonID != lessonID || stored.UserID != f.student.ID {
		t.Errorf("课时与评论者应取自路径与操作者，实际 lesson=%d user=%d", stored.LessonID, stored.UserID)
	}
}

func TestComment_RequiresAuthentication(t *testing.T) {
	comments, _, _, lessonID := setupFeedbackFixture(t)
	_, err := comments.Create(context.Background(), policy.Anonymous(), lessonID, &dto.CreateCommentRequest{Content: "x"})
	if !errors.Is(err, policy.ErrUnauthenticated) {
		t.Errorf("期望 ErrUnauthenticated，实际=%v", err)
	}
}

func TestComment_AdminMayComment(t *testing.T) {
	comments, _, f, lessonID := setupFeedbackFixture(t)
	if _, err := comments.Create(context.Background(), actorOf(f.admin), lessonID, &dto.CreateCommentRequest{Content: "x"}); err != nil {
		t.Errorf("任何登录用户都可评论: %v", err)
	}
}

func TestComment_ListScopedToLesson(t *testing.T) {
	comments, _, f, lessonID := setupFeedbackFixture(t)
	ctx := context.Background()
	other, _ := f.lesson.Create(ctx, actorOf(f.admin), &dto.CreateLessonRequest{CourseID: 1, Title: "L2", Content: "C"})

	_, _ = comments.Create(ctx, actorOf(f.student), lessonID, &dto.CreateCommentRequest{Content: "a"})
	_, _ = comments.Create(ctx, actorOf(f.student), other.ID, &dto.CreateCommentRequest{Content: "b"})

	list, err := comments.List(ctx, policy.Anonymous(), lessonID)
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 1 || list[0].Content != "a" {
		t.Errorf("列表应仅含本课时评论，实际=%+v", list)
	}
}

func TestComment_UnknownLesson(t *testing.T) {
	comments, _, f, _ := setupFeedbackFixture(t)
	_, err := comments.Create(context.Background(), actorOf(f.student), 999, &dto.CreateCommentRequest{Content: "x"})
	if !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("期望 ErrLessonNotFound，实际=%v", err)
	}
}

// ── 评价 ──

func TestRating_UpsertCreatedThenUpdated(t *testing.T) {
	_, ratings, f, lessonID := setupFeedbackFixture(t)
	ctx := context.Background()

	first, err := ratings.Rate(ctx, actorOf(f.student), lessonID, &dto.RatingRequest{Liked: boolPtr(true)})
	if err != nil {
		t.Fatalf("首次评价失败: %v", err)
	}
	if !first.Created {
		t.Error("首次评价应为新建")
	}

	second, err := ratings.Rate(ctx, actorOf(f.student), lessonID, &dto.RatingRequest{Liked: boolPtr(false)})
	if err != nil {
		t.Fatalf("再次评价失败: %v", err)
	}
	if second.Created {
		t.Error("再次评价应为更新")
	}
	if second.Rating.ID != first.Rating.ID || second.Rating.Liked {
		t.Errorf("应更新同一条评价，实际=%+v", second.Rating)
	}
	if len(f.mocks.ratings.ratings) != 1 {
		t.Errorf("期望 1 条评价，实际=%d", len(f.mocks.ratings.ratings))
	}
}

func TestRating_OnlyStudents(t *testing.T) {
	_, ratings, f, lessonID := setupFeedbackFixture(t)

	_, err := ratings.Rate(context.Background(), actorOf(f.admin), lessonID, &dto.RatingRequest{Liked: boolPtr(true)})
	if !policy.IsDenied(err) {
		t.Errorf("管理员评价应被拒绝，实际=%v", err)
	}
	_, err = ratings.Rate(context.Background(), policy.Anonymous(), lessonID, &dto.RatingRequest{Liked: boolPtr(true)})
	if !errors.Is(err, policy.ErrUnauthenticated) {
		t.Errorf("匿名评价应返回 ErrUnauthenticated，实际=%v", err)
	}
}

func TestRating_ConcurrentSameUser(t *testing.T) {
	_, ratings, f, lessonID := setupFeedbackFixture(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(liked bool) {
			defer wg.Done()
			res, err := ratings.Rate(context.Background(), actorOf(f.student), lessonID, &dto.RatingRequest{Liked: boolPtr(liked)})
			if err != nil {
				t.Errorf("Rate 失败: %v", err)
				return
			}
			if res.Created {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i%2 == 0)
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("并发提交应只新建 1 次，实际=%d", created)
	}
	if len(f.mocks.ratings.ratings) != 1 {
		t.Errorf("期望 1 条评价，实际=%d", len(f.mocks.ratings.ratings))
	}
}
