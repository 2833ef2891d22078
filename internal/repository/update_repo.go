package repository

import (
	"context"

	"gorm.io/gorm"

	"edu-space/backend/internal/model"
)

// UpdateRepository 公告数据访问接口
type UpdateRepository interface {
	Create(ctx context.Context, update *model.Update) error
}

type updateRepo struct {
	db *gorm.DB
}

// NewUpdateRepo 创建 UpdateRepository 实例
func NewUpdateRepo(db *gorm.DB) UpdateRepository {
	return &updateRepo{db: db}
}

func (r *updateRepo) Create(ctx context.Context, update *model.Update) error {
	return r.db.WithContext(ctx).Create(update).Error
}
