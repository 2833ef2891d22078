package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// List 课程列表
// GET /api/course
func (h *CourseHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.courseSvc.List(c.Request.Context(), CurrentActor(c), q)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.List(c, list)
}

// Get 课程详情
// GET /api/course/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.courseSvc.Get(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建课程（管理员）
// POST /api/course
func (h *CourseHandler) Create(c *gin.Context) {
	if !authorizeCreate(c, policy.AuthorPolicy{}) {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.courseSvc.Create(c.Request.Context(), CurrentActor(c), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, result)
}

// Replace 全量更新课程
// PUT /api/course/:id
func (h *CourseHandler) Replace(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, id, req.ToUpdate())
}

// Patch 部分更新课程
// PATCH /api/course/:id
func (h *CourseHandler) Patch(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, id, &req)
}

func (h *CourseHandler) update(c *gin.Context, id uint, req *dto.UpdateCourseRequest) {
	result, err := h.courseSvc.Update(c.Request.Context(), CurrentActor(c), id, req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除课程
// DELETE /api/course/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), CurrentActor(c), id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	noContent(c)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14001, "课程不存在")
	default:
		response.InternalError(c)
	}
}
