package repository

import (
	"context"

	"gorm.io/gorm"

	"edu-space/backend/internal/model"
)

var attachmentOrdering = newOrderSpec("uploaded_at DESC, id DESC", "id", "title", "uploaded_at")

// AttachmentRepository 课时视频/附件数据访问接口
// 所有按 ID 的操作均限定在所属课时内
type AttachmentRepository interface {
	Create(ctx context.Context, a *model.Attachment) error
	GetByID(ctx context.Context, lessonID, id uint) (*model.Attachment, error)
	ListByLesson(ctx context.Context, lessonID uint, filter ListFilter) ([]model.Attachment, error)
	Update(ctx context.Context, a *model.Attachment) error
	Delete(ctx context.Context, lessonID, id uint) error
}

// attachmentRepo 按表名区分视频与附件
type attachmentRepo struct {
	db    *gorm.DB
	table string
}

// NewVideoRepo 创建视频 Repository
func NewVideoRepo(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db, table: model.Video{}.TableName()}
}

// NewFileRepo 创建附件 Repository
func NewFileRepo(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db, table: model.File{}.TableName()}
}

func (r *attachmentRepo) scoped(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *attachmentRepo) Create(ctx context.Context, a *model.Attachment) error {
	return r.scoped(ctx).Create(a).Error
}

func (r *attachmentRepo) GetByID(ctx context.Context, lessonID, id uint) (*model.Attachment, error) {
	var a model.Attachment
	err := r.scoped(ctx).
		Where("id = ? AND lesson_id = ?", id, lessonID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepo) ListByLesson(ctx context.Context, lessonID uint, filter ListFilter) ([]model.Attachment, error) {
	var list []model.Attachment
	db := applySearch(r.scoped(ctx).Where("lesson_id = ?", lessonID), filter.Search, "title")
	err := applyOrdering(db, filter.Ordering, attachmentOrdering).Find(&list).Error
	return list, err
}

func (r *attachmentRepo) Update(ctx context.Context, a *model.Attachment) error {
	return r.scoped(ctx).
		Where("id = ? AND lesson_id = ?", a.ID, a.LessonID).
		Updates(map[string]interface{}{
			"title":       a.Title,
			"file":        a.File,
			"description": a.Description,
		}).Error
}

func (r *attachmentRepo) Delete(ctx context.Context, lessonID, id uint) error {
	return r.scoped(ctx).
		Where("id = ? AND lesson_id = ?", id, lessonID).
		Delete(&model.Attachment{}).Error
}
