package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"edu-space/backend/internal/policy"
	"edu-space/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口，仅管理员可用
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportUsers 导出用户名单
	ExportUsers(ctx context.Context, actor policy.Actor) (*bytes.Buffer, string, error)
	// ExportCourseRatings 导出课程各课时的点赞/点踩统计
	ExportCourseRatings(ctx context.Context, actor policy.Actor, courseID uint) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ExportUsers ──────────────────────

func (s *exportService) ExportUsers(ctx context.Context, actor policy.Actor) (*bytes.Buffer, string, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, "", err
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, "", err
	}

	sheet := newSheet("用户", []string{"ID", "用户名", "邮箱", "姓名", "角色", "注册时间", "最后登录"},
		[]float64{8, 18, 28, 18, 10, 22, 22})
	defer sheet.f.Close()

	for i, u := range users {
		lastLogin := "-"
		if u.LastLogin != nil {
			lastLogin = formatTime(*u.LastLogin)
		}
		sheet.row(i+2, u.ID, u.Username, u.Email, u.FullName(), u.Role, formatTime(u.DateJoined), lastLogin)
	}

	buf, err := sheet.bytes()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "用户名单.xlsx", nil
}

// ────────────────────── ExportCourseRatings ──────────────────────

func (s *exportService) ExportCourseRatings(ctx context.Context, actor policy.Actor, courseID uint) (*bytes.Buffer, string, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, "", err
	}

	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	lessons, err := s.repo.Lesson.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("查询课时失败", zap.Uint("course_id", courseID), zap.Error(err))
		return nil, "", err
	}

	sheet := newSheet("评价统计", []string{"课时 ID", "课时标题", "点赞", "点踩", "好评率"},
		[]float64{10, 36, 10, 10, 12})
	defer sheet.f.Close()

	for i, l := range lessons {
		likes, dislikes := 0, 0
		for _, r := range l.Ratings {
			if r.Liked {
				likes++
			} else {
				dislikes++
			}
		}
		ratio := "-"
		if total := likes + dislikes; total > 0 {
			ratio = fmt.Sprintf("%.1f%%", float64(likes)*100/float64(total))
		}
		sheet.row(i+2, l.ID, l.Title, likes, dislikes, ratio)
	}

	buf, err := sheet.bytes()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("课程评价_%s.xlsx", course.Name), nil
}

// ── 辅助函数 ──

// sheetWriter 单 Sheet 表格，首行为加粗表头
type sheetWriter struct {
	f    *excelize.File
	name string
}

func newSheet(name string, headers []string, widths []float64) *sheetWriter {
	f := excelize.NewFile()
	idx, _ := f.NewSheet(name)
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		col := colName(i)
		if i < len(widths) {
			f.SetColWidth(name, col, col, widths[i])
		}
		f.SetCellValue(name, cell(col, 1), h)
	}
	f.SetCellStyle(name, cell(colName(0), 1), cell(colName(len(headers)-1), 1), headerStyle)

	return &sheetWriter{f: f, name: name}
}

func (w *sheetWriter) row(row int, values ...interface{}) {
	for i, v := range values {
		w.f.SetCellValue(w.name, cell(colName(i), row), v)
	}
}

func (w *sheetWriter) bytes() (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := w.f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
