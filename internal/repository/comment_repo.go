package repository

import (
	"context"

	"gorm.io/gorm"

	"edu-space/backend/internal/model"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// ListByLesson 预加载评论者，按创建时间倒序
	ListByLesson(ctx context.Context, lessonID uint) ([]model.Comment, error)
}

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 创建 CommentRepository 实例
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit("User").Create(comment).Error
}

func (r *commentRepo) ListByLesson(ctx context.Context, lessonID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("lesson_id = ?", lessonID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}
