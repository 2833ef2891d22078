package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"edu-space/backend/internal/model"
	"edu-space/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || (user.Email != "" && strings.EqualFold(u.Email, user.Email)) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id uint, role string) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id uint, at time.Time) error {
	if u, ok := m.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) ListWithEmail(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Email != "" {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[uint]*model.Category
	nextID     uint
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uint]*model.Category), nextID: 1}
}

func (m *mockCategoryRepo) Create(_ context.Context, c *model.Category) error {
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uint) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) List(_ context.Context, filter repository.ListFilter) ([]model.Category, error) {
	var result []model.Category
	for _, c := range m.categories {
		if filter.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *model.Category) error {
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(m.categories, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[uint]*model.Course
	users   *mockUserRepo
	cats    *mockCategoryRepo
	nextID  uint
}

func newMockCourseRepo(users *mockUserRepo, cats *mockCategoryRepo) *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[uint]*model.Course), users: users, cats: cats, nextID: 1}
}

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.courses[c.ID] = c
	return nil
}

// GetByID 模拟预加载分类与创建者
func (m *mockCourseRepo) GetByID(ctx context.Context, id uint) (*model.Course, error) {
	c, ok := m.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	cp.Category, _ = m.cats.GetByID(ctx, c.CategoryID)
	cp.CreatedBy, _ = m.users.GetByID(ctx, c.CreatedByID)
	return &cp, nil
}

func (m *mockCourseRepo) List(ctx context.Context, _ repository.ListFilter) ([]model.Course, error) {
	var result []model.Course
	for id := range m.courses {
		c, _ := m.GetByID(ctx, id)
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	stored, ok := m.courses[c.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// 创建者不可修改
	stored.Name = c.Name
	stored.Description = c.Description
	stored.CategoryID = c.CategoryID
	stored.IsActive = c.IsActive
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id uint) error {
	delete(m.courses, id)
	return nil
}

// ── Mock LessonRepository ──

type mockLessonRepo struct {
	lessons map[uint]*model.Lesson
	courses *mockCourseRepo
	nextID  uint
}

func newMockLessonRepo(courses *mockCourseRepo) *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[uint]*model.Lesson), courses: courses, nextID: 1}
}

func (m *mockLessonRepo) Create(_ context.Context, l *model.Lesson) error {
	l.ID = m.nextID
	m.nextID++
	m.lessons[l.ID] = l
	return nil
}

func (m *mockLessonRepo) GetByID(ctx context.Context, id uint) (*model.Lesson, error) {
	l, ok := m.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	if c, ok := m.courses.courses[l.CourseID]; ok {
		cp.Course = c
	}
	return &cp, nil
}

func (m *mockLessonRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.lessons[id]
	return ok, nil
}

func (m *mockLessonRepo) List(_ context.Context, courseID uint, _ repository.ListFilter) ([]model.Lesson, error) {
	var result []model.Lesson
	for _, l := range m.lessons {
		if courseID == 0 || l.CourseID == courseID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockLessonRepo) ListByCourse(ctx context.Context, courseID uint) ([]model.Lesson, error) {
	return m.List(ctx, courseID, repository.ListFilter{})
}

func (m *mockLessonRepo) Update(_ context.Context, l *model.Lesson) error {
	m.lessons[l.ID] = l
	return nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id uint) error {
	delete(m.lessons, id)
	return nil
}

// ── Mock AttachmentRepository ──

type mockAttachmentRepo struct {
	items  map[uint]*model.Attachment
	nextID uint
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{items: make(map[uint]*model.Attachment), nextID: 1}
}

func (m *mockAttachmentRepo) Create(_ context.Context, a *model.Attachment) error {
	a.ID = m.nextID
	m.nextID++
	a.UploadedAt = time.Now()
	m.items[a.ID] = a
	return nil
}

func (m *mockAttachmentRepo) GetByID(_ context.Context, lessonID, id uint) (*model.Attachment, error) {
	if a, ok := m.items[id]; ok && a.LessonID == lessonID {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttachmentRepo) ListByLesson(_ context.Context, lessonID uint, _ repository.ListFilter) ([]model.Attachment, error) {
	var result []model.Attachment
	for _, a := range m.items {
		if a.LessonID == lessonID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAttachmentRepo) Update(_ context.Context, a *model.Attachment) error {
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockAttachmentRepo) Delete(_ context.Context, lessonID, id uint) error {
	if a, ok := m.items[id]; ok && a.LessonID == lessonID {
		delete(m.items, id)
	}
	return nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	comments []*model.Comment
}

func (m *mockCommentRepo) Create(_ context.Context, c *model.Comment) error {
	c.ID = uint(len(m.comments) + 1)
	c.CreatedAt = time.Now()
	m.comments = append(m.comments, c)
	return nil
}

func (m *mockCommentRepo) ListByLesson(_ context.Context, lessonID uint) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.comments {
		if c.LessonID == lessonID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock RatingRepository ──

type mockRatingRepo struct {
	mu      sync.Mutex
	ratings map[[2]uint]*model.Rating // key: (lesson_id, user_id)
	nextID  uint
}

func newMockRatingRepo() *mockRatingRepo {
	return &mockRatingRepo{ratings: make(map[[2]uint]*model.Rating), nextID: 1}
}

func (m *mockRatingRepo) Upsert(_ context.Context, r *model.Rating) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uint{r.LessonID, r.UserID}
	if existing, ok := m.ratings[key]; ok {
		existing.Liked = r.Liked
		*r = *existing
		return false, nil
	}
	r.ID = m.nextID
	m.nextID++
	cp := *r
	m.ratings[key] = &cp
	return true, nil
}

func (m *mockRatingRepo) ListByLesson(_ context.Context, lessonID uint) ([]model.Rating, error) {
	var result []model.Rating
	for _, r := range m.ratings {
		if r.LessonID == lessonID {
			result = append(result, *r)
		}
	}
	return result, nil
}

// ── Mock UpdateRepository ──

type mockUpdateRepo struct {
	updates []*model.Update
	err     error
}

func (m *mockUpdateRepo) Create(_ context.Context, u *model.Update) error {
	if m.err != nil {
		return m.err
	}
	u.ID = uint(len(m.updates) + 1)
	u.CreatedAt = time.Now()
	m.updates = append(m.updates, u)
	return nil
}

// ── Mock TokenBlacklistRepository ──

type mockTokenBlacklistRepo struct {
	tokens map[string]time.Time
}

func newMockTokenBlacklistRepo() *mockTokenBlacklistRepo {
	return &mockTokenBlacklistRepo{tokens: make(map[string]time.Time)}
}

func (m *mockTokenBlacklistRepo) Add(_ context.Context, jti string, expiresAt time.Time) error {
	m.tokens[jti] = expiresAt
	return nil
}

func (m *mockTokenBlacklistRepo) Exists(_ context.Context, jti string) (bool, error) {
	exp, ok := m.tokens[jti]
	return ok && exp.After(time.Now()), nil
}

func (m *mockTokenBlacklistRepo) PurgeExpired(_ context.Context) (int64, error) {
	var n int64
	for jti, exp := range m.tokens {
		if !exp.After(time.Now()) {
			delete(m.tokens, jti)
			n++
		}
	}
	return n, nil
}

// ── Mock Storage ──

type mockStorage struct {
	saved   map[string]bool
	counter int
}

func newMockStorage() *mockStorage {
	return &mockStorage{saved: make(map[string]bool)}
}

func (m *mockStorage) Save(fh *multipart.FileHeader, dir string) (string, error) {
	m.counter++
	p := path.Join(dir, strings.ToLower(fh.Filename))
	m.saved[p] = true
	return p, nil
}

func (m *mockStorage) Delete(relPath string) error {
	delete(m.saved, relPath)
	return nil
}

func (m *mockStorage) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/media/" + relPath
}

// ── Mock Mailer ──

type mockMailer struct {
	mu     sync.Mutex
	sent   []string
	failTo map[string]bool
}

func (m *mockMailer) Send(_ context.Context, to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errors.New("smtp: 550 mailbox unavailable")
	}
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

// ── 测试辅助 ──

type mockRepos struct {
	users      *mockUserRepo
	categories *mockCategoryRepo
	courses    *mockCourseRepo
	lessons    *mockLessonRepo
	videos     *mockAttachmentRepo
	files      *mockAttachmentRepo
	comments   *mockCommentRepo
	ratings    *mockRatingRepo
	updates    *mockUpdateRepo
	blacklist  *mockTokenBlacklistRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		users:      newMockUserRepo(),
		categories: newMockCategoryRepo(),
		videos:     newMockAttachmentRepo(),
		files:      newMockAttachmentRepo(),
		comments:   &mockCommentRepo{},
		ratings:    newMockRatingRepo(),
		updates:    &mockUpdateRepo{},
		blacklist:  newMockTokenBlacklistRepo(),
	}
	m.courses = newMockCourseRepo(m.users, m.categories)
	m.lessons = newMockLessonRepo(m.courses)

	repo := &repository.Repository{
		User:           m.users,
		Category:       m.categories,
		Course:         m.courses,
		Lesson:         m.lessons,
		Video:          m.videos,
		File:           m.files,
		Comment:        m.comments,
		Rating:         m.ratings,
		Update:         m.updates,
		TokenBlacklist: m.blacklist,
	}
	return repo, m
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 16}
}
