package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"edu-space/backend/internal/dto"
	"edu-space/backend/internal/model"
	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/repository"
	pkgerrors "edu-space/backend/pkg/errors"
	"edu-space/backend/pkg/storage"
)

var (
	ErrVideoNotFound = errors.New("视频不存在")
	ErrFileNotFound  = errors.New("附件不存在")
)

// VideoExtensions 视频允许的扩展名（大小写不敏感）
var VideoExtensions = []string{".mp4", ".mov", ".webm", ".avi", ".mkv"}

// AttachmentService 课时视频/附件业务接口
// lessonID 取自路径，所有按 ID 的操作限定在该课时内
type AttachmentService interface {
	List(ctx context.Context, actor policy.Actor, lessonID uint, q dto.ListQuery) ([]dto.AttachmentResponse, error)
	Get(ctx context.Context, actor policy.Actor, lessonID, id uint) (*dto.AttachmentResponse, error)
	Create(ctx context.Context, actor policy.Actor, lessonID uint, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error)
	Update(ctx context.Context, actor policy.Actor, lessonID, id uint, req *dto.UpdateAttachmentRequest) (*dto.AttachmentResponse, error)
	Delete(ctx context.Context, actor policy.Actor, lessonID, id uint) error
}

type attachmentService struct {
	repo     *repository.Repository
	items    repository.AttachmentRepository
	store    storage.Storage
	policy   policy.Policy
	kind     string
	dir      string
	allowed  []string // 为空表示不限制扩展名
	notFound error
	logger   *zap.Logger
}

// NewVideoService 创建视频 Service，上传文件须为视频格式
func NewVideoService(repo *repository.Repository, store storage.Storage, logger *zap.Logger) AttachmentService {
	return &attachmentService{
		repo:     repo,
		items:    repo.Video,
		store:    store,
		policy:   policy.AuthorPolicy{},
		kind:     "视频",
		dir:      "videos",
		allowed:  VideoExtensions,
		notFound: ErrVideoNotFound,
		logger:   logger,
	}
}

// NewFileService 创建附件 Service
func NewFileService(repo *repository.Repository, store storage.Storage, logger *zap.Logger) AttachmentService {
	return &attachmentService{
		repo:     repo,
		items:    repo.File,
		store:    store,
		policy:   policy.AuthorPolicy{},
		kind:     "附件",
		dir:      "files",
		notFound: ErrFileNotFound,
		logger:   logger,
	}
}

func (s *attachmentService) load(ctx context.Context, lessonID, id uint) (*model.Attachment, error) {
	a, err := s.items.GetByID(ctx, lessonID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound
		}
		s.logger.Error("查询"+s.kind+"失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *attachmentService) checkLesson(ctx context.Context, lessonID uint) error {
	ok, err := s.repo.Lesson.Exists(ctx, lessonID)
	if err != nil {
		s.logger.Error("查询课时失败", zap.Uint("lesson_id", lessonID), zap.Error(err))
		return err
	}
	if !ok {
		return ErrLessonNotFound
	}
	return nil
}

// checkExtension 校验上传文件扩展名
func (s *attachmentService) checkExtension(fh *multipart.FileHeader) error {
	if len(s.allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	for _, a := range s.allowed {
		if ext == a {
			return nil
		}
	}
	return pkgerrors.NewValidationError("file",
		fmt.Sprintf("文件扩展名必须为 %s 之一", strings.Join(s.allowed, ", ")))
}

func (s *attachmentService) removeFile(path string) {
	if err := s.store.Delete(path); err != nil {
		s.logger.Warn("删除上传文件失败", zap.String("path", path), zap.Error(err))
	}
}

// ────── List ──────

func (s *attachmentService) List(ctx context.Context, actor policy.Actor, lessonID uint, q dto.ListQuery) ([]dto.AttachmentResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionList, nil); err != nil {
		return nil, err
	}
	items, err := s.items.ListByLesson(ctx, lessonID, toListFilter(q))
	if err != nil {
		s.logger.Error("列出"+s.kind+"失败", zap.Uint("lesson_id", lessonID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.AttachmentResponse, 0, len(items))
	for i := range items {
		result = append(result, toAttachmentResponse(&items[i], s.store))
	}
	return result, nil
}

// ────── Get ──────

func (s *attachmentService) Get(ctx context.Context, actor policy.Actor, lessonID, id uint) (*dto.AttachmentResponse, error) {
	a, err := s.load(ctx, lessonID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionRetrieve, a); err != nil {
		return nil, err
	}
	resp := toAttachmentResponse(a, s.store)
	return &resp, nil
}

// ────── Create ──────

func (s *attachmentService) Create(ctx context.Context, actor policy.Actor, lessonID uint, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error) {
	if err := s.policy.Evaluate(actor, policy.ActionCreate, nil); err != nil {
		return nil, err
	}
	if err := s.checkLesson(ctx, lessonID); err != nil {
		return nil, err
	}
	if req.File == nil {
		return nil, pkgerrors.NewValidationError("file", "请上传文件")
	}
	if err := s.checkExtension(req.File); err != nil {
		return nil, err
	}

	path, err := s.store.Save(req.File, s.dir)
	if err != nil {
		s.logger.Error("保存"+s.kind+"失败", zap.Error(err))
		return nil, err
	}

	a := &model.Attachment{
		LessonID:    lessonID,
		Title:       req.Title,
		File:        path,
		Description: req.Description,
	}
	if err := s.items.Create(ctx, a); err != nil {
		s.removeFile(path)
		s.logger.Error("创建"+s.kind+"失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info(s.kind+"已上传", zap.Uint("id", a.ID), zap.Uint("lesson_id", lessonID), zap.String("path", path))

	resp := toAttachmentResponse(a, s.store)
	return &resp, nil
}

// ────── Update ──────

func (s *attachmentService) Update(ctx context.Context, actor policy.Actor, lessonID, id uint, req *dto.UpdateAttachmentRequest) (*dto.AttachmentResponse, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	a, err := s.load(ctx, lessonID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Evaluate(actor, policy.ActionUpdate, a); err != nil {
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}

	oldPath := ""
	if req.File != nil {
		if err := s.checkExtension(req.File); err != nil {
			return nil, err
		}
		path, err := s.store.Save(req.File, s.dir)
		if err != nil {
			s.logger.Error("保存"+s.kind+"失败", zap.Error(err))
			return nil, err
		}
		oldPath, a.File = a.File, path
	}

	if err := s.items.Update(ctx, a); err != nil {
		if oldPath != "" {
			s.removeFile(a.File)
		}
		s.logger.Error("更新"+s.kind+"失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	if oldPath != "" {
		s.removeFile(oldPath)
	}

	resp := toAttachmentResponse(a, s.store)
	return &resp, nil
}

// ────── Delete ──────

func (s *attachmentService) Delete(ctx context.Context, actor policy.Actor, lessonID, id uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	a, err := s.load(ctx, lessonID, id)
	if err != nil {
		return err
	}
	if err := s.policy.Evaluate(actor, policy.ActionDelete, a); err != nil {
		return err
	}
	if err := s.items.Delete(ctx, lessonID, id); err != nil {
		s.logger.Error("删除"+s.kind+"失败", zap.Uint("id", id), zap.Error(err))
		return err
	}
	s.removeFile(a.File)
	return nil
}
