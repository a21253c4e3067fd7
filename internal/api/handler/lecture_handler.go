package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/service"
	"lecture-hub/backend/pkg/response"
)

// LectureHandler 讲座模块 HTTP 处理器
type LectureHandler struct {
	lectureSvc service.LectureService
}

// NewLectureHandler 创建 LectureHandler
func NewLectureHandler(lectureSvc service.LectureService) *LectureHandler {
	return &LectureHandler{lectureSvc: lectureSvc}
}

// Create 教授创建讲座（自动生成 6 位认证码）
// POST /api/professor/lectures
func (h *LectureHandler) Create(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다.")
		return
	}

	resp, err := h.lectureSvc.Create(c.Request.Context(), professorID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, resp)
}

// ListOwned 教授名下讲座列表
// GET /api/professor/lectures
func (h *LectureHandler) ListOwned(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	lectures, err := h.lectureSvc.ListOwned(c.Request.Context(), professorID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, lectures)
}

// Enroll 学生凭认证码选课
// POST /api/lectures/enroll
func (h *LectureHandler) Enroll(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다.")
		return
	}

	if err := h.lectureSvc.Enroll(c.Request.Context(), studentID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrAccessCodeNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrAlreadyEnrolled):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, dto.MessageResponse{Message: "강의 등록 성공"})
}

// ListEnrolled 学生已选讲座列表
// GET /api/lectures
func (h *LectureHandler) ListEnrolled(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	lectures, err := h.lectureSvc.ListEnrolled(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, lectures)
}
