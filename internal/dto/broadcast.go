package dto

// ── 公告群发模块 DTO ──

// BroadcastRequest 发布公告并群发邮件
type BroadcastRequest struct {
	Title   string `json:"title"   binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateResponse 公告响应
type UpdateResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// BroadcastResponse 群发结果
type BroadcastResponse struct {
	Update    UpdateResponse `json:"update"`
	Attempted int            `json:"attempted"`
	Failed    int            `json:"failed"`
}
