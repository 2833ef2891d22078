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

var ErrCourseNotFound = errors.New("课程不存在")

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context, actor policy.Actor, q dto.ListQuery) ([]dto.CourseResponse, error)
	Get(ctx context.Context, actor policy.Actor, id uint) (*dto.CourseResponse, error)
	// Create 创建者固定为当前操作者
	Create(ctx context.Context, actor policy.Actor, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

type courseService struct {
	repo   *repository.Repository
	store  storage.Storage
	policy policy.Policy
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, store storage.Storage, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, store: store, policy: policy.AuthorPolicy{}, logger: logger}
}

func (s *courseService) load(ctx context.Context, id uint) (*model.Course, error) {
	c, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// checkCategory 引用的分类不存在时返回字段错误
func (s *courseService) checkCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.Category.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.NewValidationError("category", "分类不存在")
		}
		return err
	}
	return nil
}

// ────── List ──────

func (s *courseService) List(ctx context.Context, actor policy.Actor, q dto.ListQuery) ([]dto.CourseResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionList, nil); err != nil {
		return nil, err
	}
	courses, err := s.repo.Course.List(ctx, toListFilter(q))
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i], s.store))
	}
	return result, nil
}

// ────── Get ──────

func (s *courseService) Get(ctx context.Context, actor policy.Actor, id uint) (*dto.CourseResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionRetrieve, c); err != nil {
		return nil, err
	}
	return toCourseResponse(c, s.store), nil
}

// ────── Create ──────

func (s *courseService) Create(ctx context.Context, actor policy.Actor, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	course := &model.Course{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: actor.UserID,
		IsActive:    active,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程已创建", zap.Uint("id", course.ID), zap.Uint("created_by", actor.UserID))

	created, err := s.load(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(created, s.store), nil
}

// ────── Update ──────

func (s *courseService) Update(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionUpdate, c); err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != c.CategoryID {
		if err := s.checkCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		c.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Course.Update(ctx, c); err != nil {
		s.logger.Error("更新课程失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCourseResponse(updated, s.store), nil
}

// ────── Delete ──────

func (s *courseService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Evaluate(actor, policy.ActionDelete, c); err != nil {
		return err
	}
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("课程已删除", zap.Uint("id", id), zap.Uint("operator", actor.UserID))
	return nil
}
