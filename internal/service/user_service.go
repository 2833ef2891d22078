package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edu-space/backend/config"
	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/model"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/repository"
	pkgerrors "edu-space/backend/pkg/errors"
	"edu-space/backend/pkg/storage"
)

// ── 用户模块业务错误 ──

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserSelfRoleChange = errors.New("不能修改自己的角色")
	ErrInvalidRole        = errors.New("无效的角色")
)

const profilePicDir = "profile_pics"

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// UserService 用户业务接口
type UserService interface {
	GetProfile(ctx context.Context, actor policy.Actor, id uint) (*dto.UserResponse, error)
	// UpdateProfile 更新个人资料，nil 字段保持不变
	UpdateProfile(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	AssignRole(ctx context.Context, actor policy.Actor, id uint, req *dto.AssignRoleRequest) (*dto.UserResponse, error)
	// EnsureAdmin 按配置创建初始管理员，已存在时跳过
	EnsureAdmin(ctx context.Context, cfg *config.BootstrapConfig) error
}

type userService struct {
	repo   *repository.Repository
	store  storage.Storage
	self   policy.Policy
	admin  policy.Policy
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, store storage.Storage, logger *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		store:  store,
		self:   policy.SelfPolicy{},
		admin:  policy.AdminPolicy{},
		logger: logger,
	}
}

func (s *userService) load(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ────────────────────── GetProfile ──────────────────────

func (s *userService) GetProfile(ctx context.Context, actor policy.Actor, id uint) (*dto.UserResponse, error) {
	if !actor.Authenticated {
		return nil, policy.ErrUnauthenticated
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.self.Evaluate(actor, policy.ActionRetrieve, user); err != nil {
		return nil, err
	}
	return toUserResponse(user, s.store), nil
}

// ────────────────────── UpdateProfile ──────────────────────

func (s *userService) UpdateProfile(ctx context.Context, actor policy.Actor, id uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if !actor.Authenticated {
		return nil, policy.ErrUnauthenticated
	}
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.self.Evaluate(actor, policy.ActionUpdate, user); err != nil {
		return nil, err
	}

	ve := &pkgerrors.ValidationError{}

	// 用户名、邮箱唯一性（排除自身）
	if req.Username != nil && *req.Username != user.Username {
		if existing, err := s.repo.User.GetByUsername(ctx, *req.Username); err == nil && existing.ID != user.ID {
			ve.Add("username", "该用户名已被占用")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if req.Email != nil && !strings.EqualFold(*req.Email, user.Email) {
		if existing, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil && existing.ID != user.ID {
			ve.Add("email", "该邮箱已被注册")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if req.Picture != nil {
		ext := strings.ToLower(filepath.Ext(req.Picture.Filename))
		if !imageExtensions[ext] {
			ve.Add("picture", "仅支持 jpg、jpeg、png、gif、webp 格式的图片")
		}
	}
	if ve.HasErrors() {
		return nil, ve
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	oldPicture := ""
	if req.Picture != nil {
		path, err := s.store.Save(req.Picture, profilePicDir)
		if err != nil {
			s.logger.Error("保存头像失败", zap.Uint("user_id", user.ID), zap.Error(err))
			return nil, err
		}
		oldPicture = user.Picture
		user.Picture = path
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if req.Picture != nil {
			_ = s.store.Delete(user.Picture)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.NewValidationError("username", "用户名或邮箱已被占用")
		}
		s.logger.Error("更新用户失败", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	if oldPicture != "" {
		if err := s.store.Delete(oldPicture); err != nil {
			s.logger.Warn("删除旧头像失败", zap.String("path", oldPicture), zap.Error(err))
		}
	}

	return toUserResponse(user, s.store), nil
}

// ────────────────────── AssignRole ──────────────────────

func (s *userService) AssignRole(ctx context.Context, actor policy.Actor, id uint, req *dto.AssignRoleRequest) (*dto.UserResponse, error) {
	if err := s.admin.Evaluate(actor, policy.ActionUpdate, nil); err != nil {
		return nil, err
	}
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}
	if actor.UserID == id {
		return nil, ErrUserSelfRoleChange
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == req.Role {
		return toUserResponse(user, s.store), nil
	}

	if err := s.repo.User.UpdateRole(ctx, id, req.Role); err != nil {
		s.logger.Error("更新角色失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("角色已变更",
		zap.Uint("user_id", id),
		zap.String("from", user.Role),
		zap.String("to", req.Role),
		zap.Uint("operator", actor.UserID),
	)

	user.Role = req.Role
	return toUserResponse(user, s.store), nil
}

// ────────────────────── EnsureAdmin ──────────────────────

func (s *userService) EnsureAdmin(ctx context.Context, cfg *config.BootstrapConfig) error {
	if cfg == nil || cfg.AdminUsername == "" {
		return nil
	}

	if _, err := s.repo.User.GetByUsername(ctx, cfg.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.AdminPassword == "" {
		return errors.New("bootstrap.admin_password 不能为空")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("已创建初始管理员", zap.String("username", admin.Username))
	return nil
}
