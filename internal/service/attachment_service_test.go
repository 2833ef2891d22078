package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	pkgerrors "edu-space/backend/pkg/errors"
)

func setupAttachmentFixture(t *testing.T) (AttachmentService, AttachmentService, *contentFixture, uint) {
	t.Helper()
	f := setupContentFixture()

	course := f.createCourse(t, f.admin)
	lesson, err := f.lesson.Create(context.Background(), actorOf(f.admin), &dto.CreateLessonRequest{
		CourseID: course.ID, Title: "L", Content: "C",
	})
	if err != nil {
		t.Fatalf("创建课时失败: %v", err)
	}

	return NewVideoService(f.repo, f.store, zap.NewNop()), NewFileService(f.repo, f.store, zap.NewNop()), f, lesson.ID
}

func TestVideo_RejectsNonVideoExtension(t *testing.T) {
	videos, _, f, lessonID := setupAttachmentFixture(t)

	_, err := videos.Create(context.Background(), actorOf(f.admin), lessonID, &dto.CreateAttachmentRequest{
		Title: "notes", File: fileHeader("notes.txt"),
	})
	ve, ok := pkgerrors.AsValidationError(err)
	if !ok {
		t.Fatalf("期望 ValidationError，实际=%v", err)
	}
	msg := ve.Fields["file"]
	for _, ext := range VideoExtensions {
		if !strings.Contains(msg, ext) {
			t.Errorf("错误信息应列出 %s，实际=%s", ext, msg)
		}
	}
	if len(f.store.saved) != 0 || len(f.mocks.videos.items) != 0 {
		t.Error("校验失败时不应保存文件或记录")
	}
}

func TestVideo_AcceptsMP4(t *testing.T) {
	videos, _, f, lessonID := setupAttachmentFixture(t)

	resp, err := videos.Create(context.Background(), actorOf(f.admin), lessonID, &dto.CreateAttachmentRequest{
		Title: "intro", File: fileHeader("Intro.MP4"),
	})
	if err != nil {
		t.Fatalf("上传 .mp4 应成功: %v", err)
	}
	if resp.File != "videos/intro.mp4" || resp.URL != "/media/videos/intro.mp4" {
		t.Errorf("存储路径异常: %+v", resp)
	}
	if resp.LessonID != lessonID {
		t.Errorf("课时应取自路径，实际=%d", resp.LessonID)
	}
}

func TestVideo_CreateRequiresAdmin(t *testing.T) {
	videos, _, f, lessonID := setupAttachmentFixture(t)
	_, err := videos.Create(context.Background(), actorOf(f.student), lessonID, &dto.CreateAttachmentRequest{
		Title: "intro", File: fileHeader("intro.mp4"),
	})
	if !policy.IsDenied(err) {
		t.Errorf("学生上传应被拒绝，实际=%v", err)
	}
}

func TestVideo_UnknownLesson(t *testing.T) {
	videos, _, f, _ := setupAttachmentFixture(t)
	_, err := videos.Create(context.Background(), actorOf(f.admin), 999, &dto.CreateAttachmentRequest{
		Title: "intro", File: fileHeader("intro.mp4"),
	})
	if !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("期望 ErrLessonNotFound，实际=%v", err)
	}
}

func TestFile_AnyExtension(t *testing.T) {
	_, files, f, lessonID := setupAttachmentFixture(t)
	resp, err := files.Create(context.Background(), actorOf(f.admin), lessonID, &dto.CreateAttachmentRequest{
		Title: "slides", File: fileHeader("slides.pdf"),
	})
	if err != nil {
		t.Fatalf("附件上传应成功: %v", err)
	}
	if !strings.HasPrefix(resp.File, "files/") {
		t.Errorf("附件应存于 files 目录，实际=%s", resp.File)
	}
}

func TestAttachment_ScopedToLesson(t *testing.T) {
	_, files, f, lessonID := setupAttachmentFixture(t)
	ctx := context.Background()
	resp, _ := files.Create(ctx, actorOf(f.admin), lessonID, &dto.CreateAttachmentRequest{
		Title: "slides", File: fileHeader("slides.pdf"),
	})

	if _, err := files.Get(ctx, policy.Anonymous(), lessonID+1, resp.ID); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("其他课时路径下应返回 ErrFileNotFound，实际=%v", err)
	}
	if err := files.Delete(ctx, actorOf(f.admin), lessonID+1, resp.ID); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("其他课时路径下删除应返回 ErrFileNotFound，实际=%v", err)
	}
	if _, err := files.Get(ctx, policy.Anonymous(), lessonID, resp.ID); err != nil {
		t.Errorf("本课时路径下应可访问: %v", err)
	}
}

func TestAttachment_ReplaceFileRemovesOld(t *testing.T) {
	videos, _, f, lessonID := setupAttachmentFixture(t)
	ctx := context.Background()
	resp, _ := videos.Create(ctx, actorOf(f.admin), lessonID, &dto.CreateAttachmentRequest{
		Title: "v1", File: fileHeader("a.mp4"),
	})

	updated, err := videos.Update(ctx, actorOf(f.admin), lessonID, resp.ID, &dto.UpdateAttachmentRequest{File: fileHeader("b.webm")})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if updated.File != "videos/b.webm" || updated.Title != "v1" {
		t.Errorf("更新结果异常: %+v", updated)
	}
	if f.store.saved["videos/a.mp4"] {
		t.Error("旧文件应被删除")
	}

	if _, err := videos.Update(ctx, actorOf(f.admin), lessonID, resp.ID, &dto.UpdateAttachmentRequest{File: fileHeader("c.exe")}); err == nil {
		t.Error("替换为非视频文件应失败")
	}
}

func TestAttachment_List(t *testing.T) {
	videos, _, f, lessonID := setupAttachmentFixture(t)
	ctx := context.Background()
	for _, name := range []string{"a.mp4", "b.mov"} {
		if _, err := videos.Create(ctx, actorOf(f.admin), lessonID, &dto.CreateAttachmentRequest{Title: name, File: fileHeader(name)}); err != nil {
			t.Fatalf("上传失败: %v", err)
		}
	}

	list, err := videos.List(ctx, policy.Anonymous(), lessonID, dto.ListQuery{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("期望 2 条，实际=%d", len(list))
	}
	empty, _ := videos.List(ctx, policy.Anonymous(), 999, dto.ListQuery{})
	if len(empty) != 0 {
		t.Errorf("不存在的课时应返回空列表，实际=%d", len(empty))
	}
}
