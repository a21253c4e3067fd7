package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/service"
	"lecture-hub/backend/pkg/response"
)

// SubmissionHandler 提交模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 学生提交或重新提交课题
// POST /api/submissions/:assignmentId
// 首次提交返回 201，重新提交（整体覆盖）返回 200
func (h *SubmissionHandler) Submit(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "assignmentId")
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "입력값이 올바르지 않습니다.")
		return
	}

	resp, created, err := h.submissionSvc.Submit(c.Request.Context(), studentID, assignmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotEnrolledInLecture):
			response.Forbidden(c, err.Error())
		case errors.Is(err, service.ErrSubmissionNotOpen),
			errors.Is(err, service.ErrSubmissionPastDue),
			errors.Is(err, service.ErrSubmitTypeNotAllowed):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	if created {
		response.Created(c, resp)
		return
	}
	response.OK(c, resp)
}

// GetMine 查询自己在某课题下的提交内容
// GET /api/submissions/:assignmentId
func (h *SubmissionHandler) GetMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "assignmentId")
	if !ok {
		return
	}

	submission, err := h.submissionSvc.GetMine(c.Request.Context(), userID, assignmentID)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, submission)
}

// ListStatusByLecture 学生查询某讲座下全部课题的提交状态
// GET /api/submissions/lecture/:lectureId
func (h *SubmissionHandler) ListStatusByLecture(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	statuses, err := h.submissionSvc.ListStatusByLecture(c.Request.Context(), userID, lectureID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLectureNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotEnrolledInLecture):
			response.Forbidden(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, statuses)
}

// ListByLecture 教授查询讲座全量提交现况（扁平行）
// GET /api/professor/lectures/:lectureId/submissions
func (h *SubmissionHandler) ListByLecture(c *gin.Context) {
	professorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	lectureID, ok := parseIDParam(c, "lectureId")
	if !ok {
		return
	}

	rows, err := h.submissionSvc.ListByLecture(c.Request.Context(), professorID, lectureID)
	if err != nil {
		if errors.Is(err, service.ErrNotOwnLecture) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, rows)
}

// ListByAssignment 教授查询单个课题下的全部提交（含提交项明细）
// GET /api/professor/lectures/:lectureId/assignments/:assignmentId/submissions
func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
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

	submissions, err := h.submissionSvc.ListByAssignment(c.Request.Context(), professorID, lectureID, assignmentID)
	if err != nil {
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

	response.OK(c, submissions)
}
