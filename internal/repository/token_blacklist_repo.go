package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"edu-space/backend/internal/model"
)

// TokenBlacklistRepository Refresh Token 黑名单（数据库实现）
// Redis 不可用时作为兜底存储
type TokenBlacklistRepository interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	// Exists 未过期的黑名单记录是否存在
	Exists(ctx context.Context, jti string) (bool, error)
	// PurgeExpired 清理已过期记录，返回删除条数
	PurgeExpired(ctx context.Context) (int64, error)
}

type tokenBlacklistRepo struct {
	db *gorm.DB
}

// NewTokenBlacklistRepo 创建 TokenBlacklistRepository 实例
func NewTokenBlacklistRepo(db *gorm.DB) TokenBlacklistRepository {
	return &tokenBlacklistRepo{db: db}
}

func (r *tokenBlacklistRepo) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.BlacklistedToken{JTI: jti, ExpiresAt: expiresAt}).Error
}

func (r *tokenBlacklistRepo) Exists(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.BlacklistedToken{}).
		Where("jti = ? AND expires_at > ?", jti, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *tokenBlacklistRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.BlacklistedToken{})
	return res.RowsAffected, res.Error
}
