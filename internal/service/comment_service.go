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

// CommentService 课时评论业务接口，评论创建后不可修改
type CommentService interface {
	List(ctx context.Context, actor policy.Actor, lessonID uint) ([]dto.CommentResponse, error)
	// Create 课时取自路径，评论者取自当前操作者
	Create(ctx context.Context, actor policy.Actor, lessonID uint, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

type commentService struct {
	repo   *repository.Repository
	policy policy.Policy
	logger *zap.Logger
}

// NewCommentService 创建 CommentService 实例
func NewCommentService(repo *repository.Repository, logger *zap.Logger) CommentService {
	return &commentService{repo: repo, policy: policy.AuthenticatedPolicy{}, logger: logger}
}

func (s *commentService) List(ctx context.Context, actor policy.Actor, lessonID uint) ([]dto.CommentResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionList, nil); err != nil {
		return nil, err
	}
	comments, err := s.repo.Comment.ListByLesson(ctx, lessonID)
	if err != nil {
		s.logger.Error("列出评论失败", zap.Uint("lesson_id", lessonID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, toCommentResponse(&comments[i]))
	}
	return result, nil
}

func (s *commentService) Create(ctx context.Context, actor policy.Actor, lessonID uint, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	author, err := loadActorLesson(ctx, s.repo, actor, lessonID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		LessonID: lessonID,
		UserID:   actor.UserID,
		Content:  req.Content,
	}
	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.logger.Error("创建评论失败", zap.Uint("lesson_id", lessonID), zap.Error(err))
		return nil, err
	}
	comment.User = author

	resp := toCommentResponse(comment)
	return &resp, nil
}

// loadActorLesson 校验课时存在，并加载操作者用于展示姓名
func loadActorLesson(ctx context.Context, repo *repository.Repository, actor policy.Actor, lessonID uint) (*model.User, error) {
	ok, err := repo.Lesson.Exists(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLessonNotFound
	}
	user, err := repo.User.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
