package dto

import "mime/multipart"

// ── 用户模块 DTO ──

// ReplaceProfileRequest 全量更新个人资料（PUT）
type ReplaceProfileRequest struct {
	Username  string                `json:"username"   form:"username"   binding:"required,max=150,username"`
	Email     string                `json:"email"      form:"email"      binding:"required,email,max=254"`
	FirstName string                `json:"first_name" form:"first_name" binding:"omitempty,max=150"`
	LastName  string                `json:"last_name"  form:"last_name"  binding:"omitempty,max=150"`
	Bio       string                `json:"bio"        form:"bio"`
	Picture   *multipart.FileHeader `json:"-"          form:"picture"`
}

// ToUpdate 转换为部分更新请求
func (r *ReplaceProfileRequest) ToUpdate() *UpdateProfileRequest {
	return &UpdateProfileRequest{
		Username:  &r.Username,
		Email:     &r.Email,
		FirstName: &r.FirstName,
		LastName:  &r.LastName,
		Bio:       &r.Bio,
		Picture:   r.Picture,
	}
}

// UpdateProfileRequest 部分更新个人资料（PATCH），nil 字段不修改
type UpdateProfileRequest struct {
	Username  *string               `json:"username"   form:"username"   binding:"omitempty,max=150,username"`
	Email     *string               `json:"email"      form:"email"      binding:"omitempty,email,max=254"`
	FirstName *string               `json:"first_name" form:"first_name" binding:"omitempty,max=150"`
	LastName  *string               `json:"last_name"  form:"last_name"  binding:"omitempty,max=150"`
	Bio       *string               `json:"bio"        form:"bio"`
	Picture   *multipart.FileHeader `json:"-"          form:"picture"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin student"`
}

// ── 用户模块响应 ──

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Bio       string `json:"bio"`
	Picture   string `json:"picture"` // 头像访问地址
}
