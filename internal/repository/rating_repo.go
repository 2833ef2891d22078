package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edu-space/backend/internal/model"
)

// RatingRepository 评价数据访问接口
type RatingRepository interface {
	// Upsert 按 (lesson_id, user_id) 新建或更新评价，created 表示是否新建
	Upsert(ctx context.Context, rating *model.Rating) (created bool, err error)
	ListByLesson(ctx context.Context, lessonID uint) ([]model.Rating, error)
}

type ratingRepo struct {
	db *gorm.DB
}

// NewRatingRepo 创建 RatingRepository 实例
func NewRatingRepo(db *gorm.DB) RatingRepository {
	return &ratingRepo{db: db}
}

// Upsert 先 INSERT ... ON CONFLICT DO NOTHING，未插入则在同一事务内更新 liked。
// 并发提交由唯一索引 idx_ratings_lesson_user 裁决，不存在先查后写的竞态。
func (r *ratingRepo) Upsert(ctx context.Context, rating *model.Rating) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("User").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "lesson_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).
			Create(rating)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			created = true
			return nil
		}

		liked := rating.Liked
		if err := tx.Model(&model.Rating{}).
			Where("lesson_id = ? AND user_id = ?", rating.LessonID, rating.UserID).
			Update("liked", liked).Error; err != nil {
			return err
		}
		var existing model.Rating
		if err := tx.Where("lesson_id = ? AND user_id = ?", rating.LessonID, rating.UserID).
			First(&existing).Error; err != nil {
			return err
		}
		*rating = existing
		return nil
	})
	return created, err
}

func (r *ratingRepo) ListByLesson(ctx context.Context, lessonID uint) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("lesson_id = ?", lessonID).
		Order("id DESC").
		Find(&ratings).Error
	return ratings, err
}
