package dto

// ── 评论/评价模块 DTO ──

// CreateCommentRequest 发表评论
// 课时取自路径，用户取自当前登录者，请求体中的同名字段被忽略
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// RatingRequest 提交评价
type RatingRequest struct {
	Liked *bool `json:"liked" binding:"required"`
}

// CommentResponse 评论响应，User 为评论者姓名
type CommentResponse struct {
	ID        uint   `json:"id"`
	User      string `json:"user"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// RatingResponse 评价响应，User 为评价者姓名
type RatingResponse struct {
	ID    uint   `json:"id"`
	User  string `json:"user"`
	Liked bool   `json:"liked"`
}

// RatingResult 评价 upsert 结果
type RatingResult struct {
	Rating  RatingResponse
	Created bool // true: 新建（201），false: 更新已有评价（200）
}
