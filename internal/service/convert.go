package service

import (
	"time"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/model"
	"edu-space/backend/internal/repository"
	"edu-space/backend/pkg/storage"
)

// ── 模型 → 响应 DTO ──

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func toListFilter(q dto.ListQuery) repository.ListFilter {
	return repository.ListFilter{Search: q.Search, Ordering: q.Ordering}
}

func toUserResponse(u *model.User, store storage.Storage) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Bio:       u.Bio,
		Picture:   store.URL(u.Picture),
	}
}

func toCategoryResponse(c *model.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name}
}

func toCourseResponse(c *model.Course, store storage.Storage) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Category:    toCategoryResponse(c.Category),
		CreatedBy:   toUserResponse(c.CreatedBy, store),
		IsActive:    c.IsActive,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func toAttachmentResponse(a *model.Attachment, store storage.Storage) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:          a.ID,
		LessonID:    a.LessonID,
		Title:       a.Title,
		File:        a.File,
		URL:         store.URL(a.File),
		Description: a.Description,
		UploadedAt:  formatTime(a.UploadedAt),
	}
}

// displayName 评论/评价中展示的用户名称
func displayName(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.FullName()
}

func toCommentResponse(c *model.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		User:      displayName(c.User),
		Content:   c.Content,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

func toRatingResponse(r *model.Rating) dto.RatingResponse {
	return dto.RatingResponse{
		ID:    r.ID,
		User:  displayName(r.User),
		Liked: r.Liked,
	}
}

func toLessonResponse(l *model.Lesson, store storage.Storage) *dto.LessonResponse {
	resp := &dto.LessonResponse{
		ID:        l.ID,
		CourseID:  l.CourseID,
		Title:     l.Title,
		Content:   l.Content,
		CreatedAt: formatTime(l.CreatedAt),
		UpdatedAt: formatTime(l.UpdatedAt),
		Videos:    make([]dto.AttachmentResponse, 0, len(l.Videos)),
		Files:     make([]dto.AttachmentResponse, 0, len(l.Files)),
		Comments:  make([]dto.CommentResponse, 0, len(l.Comments)),
		Ratings:   make([]dto.RatingResponse, 0, len(l.Ratings)),
	}
	for i := range l.Videos {
		resp.Videos = append(resp.Videos, toAttachmentResponse(&l.Videos[i].Attachment, store))
	}
	for i := range l.Files {
		resp.Files = append(resp.Files, toAttachmentResponse(&l.Files[i].Attachment, store))
	}
	for i := range l.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&l.Comments[i]))
	}
	for i := range l.Ratings {
		resp.Ratings = append(resp.Ratings, toRatingResponse(&l.Ratings[i]))
	}
	return resp
}

func toUpdateResponse(u *model.Update) dto.UpdateResponse {
	return dto.UpdateResponse{
		ID:        u.ID,
		Title:     u.Title,
		Content:   u.Content,
		CreatedAt: formatTime(u.CreatedAt),
	}
}
