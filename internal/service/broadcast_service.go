package service

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"edu-space/backend/config"
	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/model"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/repository"
	"edu-space/backend/pkg/mailer"
)

var ErrBroadcastVersionBlocked = errors.New("该版本的群发接口已停用")

const broadcastSubjectPrefix = "更新: "

// BroadcastService 公告发布与邮件群发业务接口
type BroadcastService interface {
	// CheckVersion 校验接口版本是否允许群发，在解析请求体之前调用
	CheckVersion(version string) error
	// Broadcast 保存公告并向所有填写邮箱的用户发送邮件
	// 单个收件人发送失败只记录日志并计数，不影响其他收件人
	Broadcast(ctx context.Context, actor policy.Actor, version string, req *dto.BroadcastRequest) (*dto.BroadcastResponse, error)
}

type broadcastService struct {
	feature     *config.FeatureConfig
	concurrency int
	repo        *repository.Repository
	mail        mailer.Mailer
	policy      policy.Policy
	logger      *zap.Logger
}

// NewBroadcastService 创建 BroadcastService 实例，concurrency<=0 时逐个发送
func NewBroadcastService(
	feature *config.FeatureConfig,
	concurrency int,
	repo *repository.Repository,
	mail mailer.Mailer,
	logger *zap.Logger,
) BroadcastService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &broadcastService{
		feature:     feature,
		concurrency: concurrency,
		repo:        repo,
		mail:        mail,
		policy:      policy.AdminPolicy{},
		logger:      logger,
	}
}

func (s *broadcastService) CheckVersion(version string) error {
	if s.feature != nil && s.feature.IsBroadcastVersionBlocked(version) {
		return ErrBroadcastVersionBlocked
	}
	return nil
}

func (s *broadcastService) Broadcast(ctx context.Context, actor policy.Actor, version string, req *dto.BroadcastRequest) (*dto.BroadcastResponse, error) {
	if err := s.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}

	// 1. 保存公告
	update := &model.Update{Title: req.Title, Content: req.Content}
	if err := s.repo.Update.Create(ctx, update); err != nil {
		s.logger.Error("保存公告失败", zap.Error(err))
		return nil, err
	}

	// 2. 收件人
	users, err := s.repo.User.ListWithEmail(ctx)
	if err != nil {
		s.logger.Error("查询收件人失败", zap.Error(err))
		return nil, err
	}

	// 3. 群发，客户端断开不打断已开始的投递
	sendCtx := context.WithoutCancel(ctx)
	subject := broadcastSubjectPrefix + update.Title

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, u := range users {
		to := u.Email
		g.Go(func() error {
			if err := s.mail.Send(sendCtx, to, subject, update.Content); err != nil {
				failed.Add(1)
				s.logger.Warn("公告邮件发送失败",
					zap.Uint("update_id", update.ID),
					zap.String("to", to),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	resp := &dto.BroadcastResponse{
		Update:    toUpdateResponse(update),
		Attempted: len(users),
		Failed:    int(failed.Load()),
	}

	s.logger.Info("公告群发完成",
		zap.Uint("update_id", update.ID),
		zap.Int("attempted", resp.Attempted),
		zap.Int("failed", resp.Failed),
		zap.Uint("operator", actor.UserID),
	)
	return resp, nil
}
