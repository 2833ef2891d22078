package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// LessonHandler 课时模块 HTTP 处理器
type LessonHandler struct {
	lessonSvc service.LessonService
}

// NewLessonHandler 创建 LessonHandler
func NewLessonHandler(lessonSvc service.LessonService) *LessonHandler {
	return &LessonHandler{lessonSvc: lessonSvc}
}

// List 课时列表
// GET /api/lesson
func (h *LessonHandler) List(c *gin.Context) {
	var q dto.LessonListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.lessonSvc.List(c.Request.Context(), CurrentActor(c), q)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.List(c, list)
}

// Get 课时详情
// GET /api/lesson/:lesson_id
func (h *LessonHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	result, err := h.lessonSvc.Get(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建课时（管理员）
// POST /api/lesson
func (h *LessonHandler) Create(c *gin.Context) {
	if !authorizeCreate(c, policy.AuthorPolicy{}) {
		return
	}

	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.lessonSvc.Create(c.Request.Context(), CurrentActor(c), &req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.Created(c, result)
}

// Replace 全量更新课时
// PUT /api/lesson/:lesson_id
func (h *LessonHandler) Replace(c *gin.Context) {
	id, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, id, req.ToUpdate())
}

// Patch 部分更新课时
// PATCH /api/lesson/:lesson_id
func (h *LessonHandler) Patch(c *gin.Context) {
	id, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, id, &req)
}

func (h *LessonHandler) update(c *gin.Context, id uint, req *dto.UpdateLessonRequest) {
	result, err := h.lessonSvc.Update(c.Request.Context(), CurrentActor(c), id, req)
	if err != nil {
		h.handleLessonError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除课时
// DELETE /api/lesson/:lesson_id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	if err := h.lessonSvc.Delete(c.Request.Context(), CurrentActor(c), id); err != nil {
		h.handleLessonError(c, err)
		return
	}

	noContent(c)
}

func (h *LessonHandler) handleLessonError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 15001, "课时不存在")
	default:
		response.InternalError(c)
	}
}
