package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/api/middleware"
	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// BroadcastHandler 公告群发 HTTP 处理器
type BroadcastHandler struct {
	broadcastSvc service.BroadcastService
}

// NewBroadcastHandler 创建 BroadcastHandler
func NewBroadcastHandler(broadcastSvc service.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{broadcastSvc: broadcastSvc}
}

// SendMail 发布公告并群发给所有用户
// POST /api/send-mail
// POST /api/v1/send-mail
func (h *BroadcastHandler) SendMail(c *gin.Context) {
	version := c.GetString(middleware.APIVersionKey)
	if err := h.broadcastSvc.CheckVersion(version); err != nil {
		h.handleBroadcastError(c, err)
		return
	}
	if !authorizeCreate(c, policy.AdminPolicy{}) {
		return
	}

	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.broadcastSvc.Broadcast(c.Request.Context(), CurrentActor(c), version, &req)
	if err != nil {
		h.handleBroadcastError(c, err)
		return
	}

	response.Created(c, result)
}

func (h *BroadcastHandler) handleBroadcastError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrBroadcastVersionBlocked):
		response.BadRequest(c, 18001, "当前接口版本不支持群发")
	default:
		response.InternalError(c)
	}
}
