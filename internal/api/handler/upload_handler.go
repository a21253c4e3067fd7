package handler

import (
	"github.com/gin-gonic/gin"

	"lecture-hub/backend/internal/service"
	"lecture-hub/backend/pkg/response"
)

// UploadHandler 文件上传 HTTP 处理器
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload 接收 multipart 文件并落盘登记
// POST /api/upload （表单字段名: file）
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, service.ErrNoFile.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.uploadSvc.Save(c.Request.Context(), src, fileHeader.Filename, contentType, fileHeader.Size)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, resp)
}
