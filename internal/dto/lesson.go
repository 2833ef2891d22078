package dto

// ── 课时模块 DTO ──

// CreateLessonRequest 创建/全量更新课时
type CreateLessonRequest struct {
	CourseID uint   `json:"course"  binding:"required,min=1"`
	Title    string `json:"title"   binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
}

// ToUpdate 转换为部分更新请求
func (r *CreateLessonRequest) ToUpdate() *UpdateLessonRequest {
	return &UpdateLessonRequest{
		CourseID: &r.CourseID,
		Title:    &r.Title,
		Content:  &r.Content,
	}
}

// UpdateLessonRequest 部分更新课时
type UpdateLessonRequest struct {
	CourseID *uint   `json:"course"  binding:"omitempty,min=1"`
	Title    *string `json:"title"   binding:"omitempty,min=1,max=200"`
	Content  *string `json:"content" binding:"omitempty,min=1"`
}

// LessonResponse 课时响应（嵌入视频、附件、评论与评价）
type LessonResponse struct {
	ID        uint                 `json:"id"`
	CourseID  uint                 `json:"course"`
	Title     string               `json:"title"`
	Content   string               `json:"content"`
	CreatedAt string               `json:"created_at"`
	UpdatedAt string               `json:"updated_at"`
	Videos    []AttachmentResponse `json:"videos"`
	Files     []AttachmentResponse `json:"files"`
	Comments  []CommentResponse    `json:"comments"`
	Ratings   []RatingResponse     `json:"ratings"`
}
