package dto

import "mime/multipart"

// ── 视频/附件模块 DTO（multipart/form-data） ──

// CreateAttachmentRequest 上传视频或附件，PUT 时同样要求完整字段
// 所属课时取自路径参数，表单无法指定
type CreateAttachmentRequest struct {
	Title       string                `form:"title"       binding:"required,max=200"`
	Description string                `form:"description"`
	File        *multipart.FileHeader `form:"file"        binding:"required"`
}

// ToUpdate 转换为部分更新请求
func (r *CreateAttachmentRequest) ToUpdate() *UpdateAttachmentRequest {
	return &UpdateAttachmentRequest{
		Title:       &r.Title,
		Description: &r.Description,
		File:        r.File,
	}
}

// UpdateAttachmentRequest 部分更新视频或附件
type UpdateAttachmentRequest struct {
	Title       *string               `form:"title"       binding:"omitempty,min=1,max=200"`
	Description *string               `form:"description"`
	File        *multipart.FileHeader `form:"file"`
}

// AttachmentResponse 视频/附件响应
type AttachmentResponse struct {
	ID          uint   `json:"id"`
	LessonID    uint   `json:"lesson_id"`
	Title       string `json:"title"`
	File        string `json:"file"` // 存储相对路径
	URL         string `json:"url"`
	Description string `json:"description"`
	UploadedAt  string `json:"uploaded_at"`
}
