package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"edu-space/backend/internal/service"
	"edu-space/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportUsers 导出用户名单
// GET /api/export/users
func (h *ExportHandler) ExportUsers(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportUsers(c.Request.Context(), CurrentActor(c))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendXLSX(c, buf, filename)
}

// ExportCourseRatings 导出课程各课时评价统计
// GET /api/export/course/:id/ratings
func (h *ExportHandler) ExportCourseRatings(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCourseRatings(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	sendXLSX(c, buf, filename)
}

// sendXLSX 设置下载响应头并写出文件
func sendXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	if handleCommonError(c, err) {
		return
	}
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14001, "课程不存在")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 18101, "导出失败", err.Error())
	default:
		response.InternalError(c)
	}
}
