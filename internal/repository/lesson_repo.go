package repository

import (
	"context"

	"gorm.io/gorm"

	"edu-space/backend/internal/model"
)

var lessonOrdering = newOrderSpec("created_at DESC, id DESC", "id", "title", "created_at", "updated_at")

// LessonRepository 课时数据访问接口
type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	// GetByID 预加载所属课程（鉴权所需）及全部子资源
	GetByID(ctx context.Context, id uint) (*model.Lesson, error)
	// Exists 课时是否存在（嵌套路由校验）
	Exists(ctx context.Context, id uint) (bool, error)
	// List courseID 为 0 时不过滤课程
	List(ctx context.Context, courseID uint, filter ListFilter) ([]model.Lesson, error)
	ListByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id uint) error
}

type lessonRepo struct {
	db *gorm.DB
}

// NewLessonRepo 创建 LessonRepository 实例
func NewLessonRepo(db *gorm.DB) LessonRepository {
	return &lessonRepo{db: db}
}

// withChildren 预加载子资源，各自按默认顺序排列
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at DESC, id DESC") }).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at DESC, id DESC") }).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		Preload("Comments.User").
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("id DESC") }).
		Preload("Ratings.User")
}

func (r *lessonRepo) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Omit("Course").Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := withChildren(r.db.WithContext(ctx)).
		Preload("Course").
		Where("id = ?", id).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Lesson{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *lessonRepo) List(ctx context.Context, courseID uint, filter ListFilter) ([]model.Lesson, error) {
	var lessons []model.Lesson
	db := r.db.WithContext(ctx).Model(&model.Lesson{})
	if courseID != 0 {
		db = db.Where("course_id = ?", courseID)
	}
	db = applySearch(db, filter.Search, "title", "content")
	err := withChildren(applyOrdering(db, filter.Ordering, lessonOrdering)).Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Where("course_id = ?", courseID).
		Order("id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).
		Model(lesson).
		Select("course_id", "title", "content", "updated_at").
		Updates(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Lesson{}, id).Error
}
