package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

// ────────────────────────── 评论 ──────────────────────────

// CommentHandler 课时评论 HTTP 处理器
type CommentHandler struct {
	commentSvc service.CommentService
}

// NewCommentHandler 创建 CommentHandler
func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// List 课时评论列表
// GET /api/lesson/:lesson_id/comment
func (h *CommentHandler) List(c *gin.Context) {
	lessonID, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	list, err := h.commentSvc.List(c.Request.Context(), CurrentActor(c), lessonID)
	if err != nil {
		handleFeedbackError(c, err)
		return
	}

	response.List(c, list)
}

// Create 发表评论
// POST /api/lesson/:lesson_id/comment
func (h *CommentHandler) Create(c *gin.Context) {
	lessonID, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	if !authorizeCreate(c, policy.AuthenticatedPolicy{}) {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.commentSvc.Create(c.Request.Context(), CurrentActor(c), lessonID, &req)
	if err != nil {
		handleFeedbackError(c, err)
		return
	}

	response.Created(c, result)
}

// ────────────────────────── 评价 ──────────────────────────

// RatingHandler 课时评价 HTTP 处理器
type RatingHandler struct {
	ratingSvc service.RatingService
}

// NewRatingHandler 创建 RatingHandler
func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{ratingSvc: ratingSvc}
}

// List 课时评价列表
// GET /api/lesson/:lesson_id/rating
func (h *RatingHandler) List(c *gin.Context) {
	lessonID, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	list, err := h.ratingSvc.List(c.Request.Context(), CurrentActor(c), lessonID)
	if err != nil {
		handleFeedbackError(c, err)
		return
	}

	response.List(c, list)
}

// Rate 提交评价，同一学生对同一课时重复提交时覆盖
// POST /api/lesson/:lesson_id/rating
func (h *RatingHandler) Rate(c *gin.Context) {
	lessonID, ok := ParseIDParam(c, "lesson_id")
	if !ok {
		return
	}

	if !authorizeCreate(c, policy.StudentPolicy{}) {
		return
	}

	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.ratingSvc.Rate(c.Request.Context(), CurrentActor(c), lessonID, &req)
	if err != nil {
		handleFeedbackError(c, err)
		return
	}

	if result.Created {
		response.Created(c, result.Rating)
		return
	}
	response.OK(c, result.Rating)
}

func handleFeedbackError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrLessonNotFound):
		response.NotFound(c, 15001, "课时不存在")
	default:
		response.InternalError(c)
	}
}
