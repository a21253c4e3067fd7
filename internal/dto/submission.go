package dto

import "time"

// ── 提交模块 DTO ──

// SubmissionItemRequest 提交条目
// order 由调用方显式给定，服务端不重新推导
type SubmissionItemRequest struct {
	Order   int     `json:"order"   binding:"min=0"`
	Type    string  `json:"type"    binding:"required,oneof=text image video document"`
	Content *string `json:"content"`
	URL     *string `json:"url"     binding:"omitempty,max=2000"`
}

// SubmitRequest 课题提交/重新提交请求
type SubmitRequest struct {
	SubmitType string                  `json:"submit_type" binding:"required,oneof=text image video document"`
	Items      []SubmissionItemRequest `json:"items"       binding:"required,min=1,dive"`
}

// SubmitResponse 提交结果响应
type SubmitResponse struct {
	Message      string `json:"message"`
	SubmissionID uint   `json:"submission_id"`
}

// SubmissionItemResponse 提交条目响应
type SubmissionItemResponse struct {
	ID           uint    `json:"id"`
	SubmissionID uint    `json:"submission_id"`
	Order        int     `json:"order"`
	Type         string  `json:"type"`
	Content      *string `json:"content"`
	URL          *string `json:"url"`
}

// SubmissionResponse 提交详情响应（条目按 order 升序）
type SubmissionResponse struct {
	ID           uint                     `json:"id"`
	UserID       uint                     `json:"user_id"`
	AssignmentID uint                     `json:"assignment_id"`
	SubmitType   string                   `json:"submit_type"`
	SubmittedAt  time.Time                `json:"submitted_at"`
	Items        []SubmissionItemResponse `json:"items"`
}

// SubmissionStatusResponse 学生视角的讲座内提交状态
// 未提交的课题不会出现在列表里，客户端需自行与课题列表求差
type SubmissionStatusResponse struct {
	AssignmentID uint      `json:"assignment_id"`
	SubmitType   string    `json:"submit_type"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// LectureSubmissionRow 教授视角的讲座全量提交（拉平、联学生身份）
type LectureSubmissionRow struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	AssignmentID  uint      `json:"assignment_id"`
	SubmitType    string    `json:"submit_type"`
	SubmittedAt   time.Time `json:"submitted_at"`
	StudentName   string    `json:"student_name"`
	StudentNumber string    `json:"student_number"`
	Week          int       `json:"week"`
	WeekOrder     int       `json:"week_order"`
	Topic         string    `json:"topic"`
}

// AssignmentSubmissionResponse 教授视角的单课题提交（附学生身份与条目）
type AssignmentSubmissionResponse struct {
	SubmissionResponse
	StudentName   string `json:"student_name"`
	StudentNumber string `json:"student_number"`
}
