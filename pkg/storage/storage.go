package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"edu-space/backend/config"
)

var ErrInvalidPath = errors.New("非法的存储路径")

// Storage 上传文件存储接口
type Storage interface {
	// Save 保存上传文件到 dir 目录下，返回相对路径（如 videos/xxx.mp4）
	Save(fh *multipart.FileHeader, dir string) (string, error)
	// Delete 删除已保存的文件，文件不存在时不报错
	Delete(relPath string) error
	// URL 相对路径对应的公开访问地址
	URL(relPath string) string
}

// LocalStorage 本地磁盘存储
type LocalStorage struct {
	root      string
	urlPrefix string
	logger    *zap.Logger
}

// NewLocalStorage 创建本地存储，并确保根目录存在
func NewLocalStorage(cfg *config.StorageConfig, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStorage{
		root:      cfg.Root,
		urlPrefix: strings.TrimRight(cfg.URLPrefix, "/"),
		logger:    logger,
	}, nil
}

// Root 存储根目录（用于静态文件服务）
func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) Save(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("打开上传文件失败: %w", err)
	}
	defer src.Close()

	// 存储名使用 UUID，保留原始扩展名
	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	rel := path.Join(dir, name)

	full, err := s.resolve(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("写入文件失败: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	s.logger.Debug("文件已保存", zap.String("path", rel), zap.Int64("size", fh.Size))
	return rel, nil
}

func (s *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return s.urlPrefix + "/" + strings.TrimLeft(relPath, "/")
}

// resolve 将相对路径映射到根目录下，拒绝越界路径
func (s *LocalStorage) resolve(relPath string) (string, error) {
	clean := path.Clean("/" + relPath)
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
