package service

import (
	"context"
	"time"

	"edu-space/backend/internal/repository"
)

// TokenBlacklist Refresh Token 黑名单
// 生产环境由 Redis 实现（pkg/redis.Client），Redis 不可用时使用数据库实现
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// dbBlacklist 基于 blacklisted_tokens 表的黑名单
type dbBlacklist struct {
	repo repository.TokenBlacklistRepository
}

// NewDBBlacklist 创建数据库黑名单
func NewDBBlacklist(repo repository.TokenBlacklistRepository) TokenBlacklist {
	return &dbBlacklist{repo: repo}
}

func (b *dbBlacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.repo.Add(ctx, jti, time.Now().Add(ttl))
}

func (b *dbBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	return b.repo.Exists(ctx, jti)
}
