package dto

// ── 分类模块 DTO ──

// CategoryRequest 创建/全量更新分类
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}

// UpdateCategoryRequest 部分更新分类
type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=200"`
}

// CategoryResponse 分类响应
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
