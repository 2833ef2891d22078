package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// AttachmentHandler 课时视频/附件 HTTP 处理器
// 视频与附件共用同一处理器，由注入的 AttachmentService 区分
type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

// NewAttachmentHandler 创建 AttachmentHandler
func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentSvc: attachmentSvc}
}

// List 课时下的视频/附件列表
// GET /api/lesson/:lesson_id/video
func (h *AttachmentHandler) List(c *gin.Context) {
	lessonID, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.attachmentSvc.List(c.Request.Context(), CurrentActor(c), lessonID, q)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	response.List(c, list)
}

// Get 视频/附件详情
// GET /api/lesson/:lesson_id/video/:id
func (h *AttachmentHandler) Get(c *gin.Context) {
	lessonID, id, ok := parseAttachmentParams(c)
	if !ok {
		return
	}

	result, err := h.attachmentSvc.Get(c.Request.Context(), CurrentActor(c), lessonID, id)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 上传视频/附件（multipart，文件字段名 file）
// POST /api/lesson/:lesson_id/video
func (h *AttachmentHandler) Create(c *gin.Context) {
	lessonID, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}
	if !authorizeCreate(c, policy.AuthorPolicy{}) {
		return
	}

	var req dto.CreateAttachmentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.attachmentSvc.Create(c.Request.Context(), CurrentActor(c), lessonID, &req)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	response.Created(c, result)
}

// Replace 全量更新视频/附件，需重新上传文件
// PUT /api/lesson/:lesson_id/video/:id
func (h *AttachmentHandler) Replace(c *gin.Context) {
	lessonID, id, ok := parseAttachmentParams(c)
	if !ok {
		return
	}

	var req dto.CreateAttachmentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, lessonID, id, req.ToUpdate())
}

// Patch 部分更新视频/附件
// PATCH /api/lesson/:lesson_id/video/:id
func (h *AttachmentHandler) Patch(c *gin.Context) {
	lessonID, id, ok := parseAttachmentParams(c)
	if !ok {
		return
	}

	var req dto.UpdateAttachmentRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, lessonID, id, &req)
}

func (h *AttachmentHandler) update(c *gin.Context, lessonID, id uint, req *dto.UpdateAttachmentRequest) {
	result, err := h.attachmentSvc.Update(c.Request.Context(), CurrentActor(c), lessonID, id, req)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除视频/附件及其存储文件
// DELETE /api/lesson/:lesson_id/video/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	lessonID, id, ok := parseAttachmentParams(c)
	if !ok {
		return
	}

	if err := h.attachmentSvc.Delete(c.Request.Context(), CurrentActor(c), lessonID, id); err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	noContent(c)
}

func parseAttachmentParams(c *gin.Context) (lessonID, id uint, ok bool) {
	if lessonID, ok = ParseIDParam(c, "lesson_id"); !ok {
		return 0, 0, false
	}
	if id, ok = ParseIDParam(c, "id"); !ok {
		return 0, 0, false
	}
	return lessonID, id, true
}

func (h *AttachmentHandler) handleAttachmentError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 15001, "课时不存在")
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, 16001, "视频不存在")
	case errors.Is(err, service.ErrFileNotFound):
		response.NotFound(c, 16002, "附件不存在")
	default:
		response.InternalError(c)
	}
}
