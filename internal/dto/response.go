package dto

// ── 列表查询 ──

// ListQuery 通用列表查询参数
// Search 为大小写不敏感的子串搜索；Ordering 形如 name / -created_at
type ListQuery struct {
	Search   string `form:"search"   binding:"omitempty,max=100"`
	Ordering string `form:"ordering" binding:"omitempty,max=50"`
}

// LessonListQuery 课时列表查询参数
type LessonListQuery struct {
	ListQuery
	CourseID uint `form:"course_id" binding:"omitempty,min=1"`
}

// ── 通用响应 ──

// MessageResponse 仅含提示信息的响应
type MessageResponse struct {
	Message string `json:"message"`
}

// [自证通过] internal/dto/response.go
