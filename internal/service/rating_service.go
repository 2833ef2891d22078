package service

import (
	"context"

	"go.uber.org/zap"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/model"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/repository"
)

// RatingService 课时评价业务接口
type RatingService interface {
	List(ctx context.Context, actor policy.Actor, lessonID uint) ([]dto.RatingResponse, error)
	// Rate 每个学生对每个课时仅保留一条评价，重复提交更新 liked
	Rate(ctx context.Context, actor policy.Actor, lessonID uint, req *dto.RatingRequest) (*dto.RatingResult, error)
}

type ratingService struct {
	repo   *repository.Repository
	policy policy.Policy
	logger *zap.Logger
}

// NewRatingService 创建 RatingService 实例
func NewRatingService(repo *repository.Repository, logger *zap.Logger) RatingService {
	return &ratingService{repo: repo, policy: policy.StudentPolicy{}, logger: logger}
}

func (s *ratingService) List(ctx context.Context, actor policy.Actor, lessonID uint) ([]dto.RatingResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionList, nil); err != nil {
		return nil, err
	}
	ratings, err := s.repo.Rating.ListByLesson(ctx, lessonID)
	if err != nil {
		s.logger.Error("列出评价失败", zap.Uint("lesson_id", lessonID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		result = append(result, toRatingResponse(&ratings[i]))
	}
	return result, nil
}

func (s *ratingService) Rate(ctx context.Context, actor policy.Actor, lessonID uint, req *dto.RatingRequest) (*dto.RatingResult, error) {
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	rater, err := loadActorLesson(ctx, s.repo, actor, lessonID)
	if err != nil {
		return nil, err
	}

	liked := false
	if req.Liked != nil {
		liked = *req.Liked
	}
	rating := &model.Rating{
		LessonID: lessonID,
		UserID:   actor.UserID,
		Liked:    liked,
	}
	created, err := s.repo.Rating.Upsert(ctx, rating)
	if err != nil {
		s.logger.Error("保存评价失败", zap.Uint("lesson_id", lessonID), zap.Uint("user_id", actor.UserID), zap.Error(err))
		return nil, err
	}
	rating.User = rater

	return &dto.RatingResult{Rating: toRatingResponse(rating), Created: created}, nil
}
