package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// CategoryHandler 分类模块 HTTP 处理器
type CategoryHandler struct {
	categorySvc service.CategoryService
}

// NewCategoryHandler 创建 CategoryHandler
func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// List 分类列表
// GET /api/category
func (h *CategoryHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.categorySvc.List(c.Request.Context(), CurrentActor(c), q)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.List(c, list)
}

// Get 分类详情
// GET /api/category/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.categorySvc.Get(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建分类（管理员）
// POST /api/category
func (h *CategoryHandler) Create(c *gin.Context) {
	if !authorizeCreate(c, policy.AuthorPolicy{}) {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.categorySvc.Create(c.Request.Context(), CurrentActor(c), &req)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.Created(c, result)
}

// Replace 全量更新分类
// PUT /api/category/:id
func (h *CategoryHandler) Replace(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, id, &dto.UpdateCategoryRequest{Name: &req.Name})
}

// Patch 部分更新分类
// PATCH /api/category/:id
func (h *CategoryHandler) Patch(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	h.update(c, id, &req)
}

func (h *CategoryHandler) update(c *gin.Context, id uint, req *dto.UpdateCategoryRequest) {
	result, err := h.categorySvc.Update(c.Request.Context(), CurrentActor(c), id, req)
	if err != nil {
		h.handleCategoryError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除分类
// DELETE /api/category/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categorySvc.Delete(c.Request.Context(), CurrentActor(c), id); err != nil {
		h.handleCategoryError(c, err)
		return
	}

	noContent(c)
}

func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, 13001, "分类不存在")
	default:
		response.InternalError(c)
	}
}
