package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/model"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/repository"
	pkgerrors "edu-space/backend/pkg/errors"
	"edu-space/backend/pkg/storage"
)

var ErrLessonNotFound = errors.New("课时不存在")

// LessonService 课时业务接口
type LessonService interface {
	List(ctx context.Context, actor policy.Actor, q dto.LessonListQuery) ([]dto.LessonResponse, error)
	Get(ctx context.Context, actor policy.Actor, id uint) (*dto.LessonResponse, error)
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	Update(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error)
	// Delete 级联删除视频、附件、评论与评价，并清理已上传文件
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

type lessonService struct {
	repo   *repository.Repository
	store  storage.Storage
	policy policy.Policy
	logger *zap.Logger
}

// NewLessonService 创建 LessonService 实例
func NewLessonService(repo *repository.Repository, store storage.Storage, logger *zap.Logger) LessonService {
	return &lessonService{repo: repo, store: store, policy: policy.AuthorPolicy{}, logger: logger}
}

func (s *lessonService) load(ctx context.Context, id uint) (*model.Lesson, error) {
	l, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		s.logger.Error("查询课时失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return l, nil
}

func (s *lessonService) checkCourse(ctx context.Context, id uint) (*model.Course, error) {
	c, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewValidationError("course", "课程不存在")
		}
		return nil, err
	}
	return c, nil
}

// ────── List ──────

func (s *lessonService) List(ctx context.Context, actor policy.Actor, q dto.LessonListQuery) ([]dto.LessonResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionList, nil); err != nil {
		return nil, err
	}
	lessons, err := s.repo.Lesson.List(ctx, q.CourseID, toListFilter(q.ListQuery))
	if err != nil {
		s.logger.Error("列出课时失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		result = append(result, *toLessonResponse(&lessons[i], s.store))
	}
	return result, nil
}

// ────── Get ──────

func (s *lessonService) Get(ctx context.Context, actor policy.Actor, id uint) (*dto.LessonResponse, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionRetrieve, l); err != nil {
		return nil, err
	}
	return toLessonResponse(l, s.store), nil
}

// ────── Create ──────

func (s *lessonService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	if _, err := s.checkCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		CourseID: req.CourseID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		s.logger.Error("创建课时失败", zap.Error(err))
		return nil, err
	}

	created, err := s.load(ctx, lesson.ID)
	if err != nil {
		return nil, err
	}
	return toLessonResponse(created, s.store), nil
}

// ────── Update ──────

func (s *lessonService) Update(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionUpdate, l); err != nil {
		return nil, err
	}

	// 迁移到其他课程时，操作者同样须为目标课程的所有者
	if req.CourseID != nil && *req.CourseID != l.CourseID {
		target, err := s.checkCourse(ctx, *req.CourseID)
		if err != nil {
			return nil, err
		}
		if err := s.policy.Evaluate(actor, policy.ActionUpdate, target); err != nil {
			return nil, err
		}
		l.CourseID = target.ID
		l.Course = target
	}
	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Content != nil {
		l.Content = *req.Content
	}

	if err := s.repo.Lesson.Update(ctx, l); err != nil {
		s.logger.Error("更新课时失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLessonResponse(updated, s.store), nil
}

// ────── Delete ──────

func (s *lessonService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	l, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Evaluate(actor, policy.ActionDelete, l); err != nil {
		return err
	}
	if err := s.repo.Lesson.Delete(ctx, id); err != nil {
		s.logger.Error("删除课时失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	for _, v := range l.Videos {
		s.removeFile(v.File)
	}
	for _, f := range l.Files {
		s.removeFile(f.File)
	}

	s.logger.Info("课时已删除", zap.Uint("id", id), zap.Uint("operator", actor.UserID))
	return nil
}

func (s *lessonService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := s.store.Delete(path); err != nil {
		s.logger.Warn("删除上传文件失败", zap.String("path", path), zap.Error(err))
	}
}
