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
)

var ErrCategoryNotFound = errors.New("分类不存在")

// CategoryService 课程分类业务接口
type CategoryService interface {
	List(ctx context.Context, actor policy.Actor, q dto.ListQuery) ([]dto.CategoryResponse, error)
	Get(ctx context.Context, actor policy.Actor, id uint) (*dto.CategoryResponse, error)
	Create(ctx context.Context, actor policy.Actor, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, actor policy.Actor, id uint) error
}

type categoryService struct {
	repo   *repository.Repository
	policy policy.Policy
	logger *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, logger *zap.Logger) CategoryService {
	return &categoryService{repo: repo, policy: policy.AuthorPolicy{}, logger: logger}
}

func (s *categoryService) load(ctx context.Context, id uint) (*model.Category, error) {
	c, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询分类失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

// ────── List ──────

func (s *categoryService) List(ctx context.Context, actor policy.Actor, q dto.ListQuery) ([]dto.CategoryResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionList, nil); err != nil {
		return nil, err
	}
	categories, err := s.repo.Category.List(ctx, toListFilter(q))
	if err != nil {
		s.logger.Error("列出分类失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, *toCategoryResponse(&categories[i]))
	}
	return result, nil
}

// ────── Get ──────

func (s *categoryService) Get(ctx context.Context, actor policy.Actor, id uint) (*dto.CategoryResponse, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionRetrieve, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// ────── Create ──────

func (s *categoryService) Create(ctx context.Context, actor policy.Actor, req *dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	c := &model.Category{Name: req.Name}
	if err := s.repo.Category.Create(ctx, c); err != nil {
		s.logger.Error("创建分类失败", zap.Error(err))
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// ────── Update ──────

func (s *categoryService) Update(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
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
	if req.Name != nil {
		c.Name = *req.Name
	}
	if err := s.repo.Category.Update(ctx, c); err != nil {
		s.logger.Error("更新分类失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// ────── Delete ──────

func (s *categoryService) Delete(ctx context.Context, actor policy.Actor, id uint) error {
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
	if err := s.repo.Category.Delete(ctx, id); err != nil {
		s.logger.Error("删除分类失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("分类已删除", zap.Uint("id", id), zap.Uint("operator", actor.UserID))
	return nil
}
