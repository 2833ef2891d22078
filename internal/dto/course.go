package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建/全量更新课程
// 创建者由当前登录用户决定，请求体无法指定
type CreateCourseRequest struct {
	Name        string `json:"name"        binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	CategoryID  uint   `json:"category"    binding:"required,min=1"`
	IsActive    *bool  `json:"is_active"`
}

// ToUpdate 转换为部分更新请求
func (r *CreateCourseRequest) ToUpdate() *UpdateCourseRequest {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &UpdateCourseRequest{
		Name:        &r.Name,
		Description: &r.Description,
		CategoryID:  &r.CategoryID,
		IsActive:    &active,
	}
}

// UpdateCourseRequest 部分更新课程
type UpdateCourseRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	CategoryID  *uint   `json:"category"    binding:"omitempty,min=1"`
	IsActive    *bool   `json:"is_active"`
}

// CourseResponse 课程响应（嵌入分类与创建者）
type CourseResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    *CategoryResponse `json:"category"`
	CreatedBy   *UserResponse     `json:"created_by"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}
