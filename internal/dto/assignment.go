package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// ── 课题模块 DTO ──

// SubmitTypes 允许的提交形式集合
// 单个创建接口收 JSON 数组；批量导入的历史数据可能是预先序列化好的
// 字符串（"[\"text\",\"image\"]"），两种形式统一归一化为 []string
type SubmitTypes []string

// UnmarshalJSON 接受数组或预序列化字符串两种形式
func (s *SubmitTypes) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("submit_types 必须是数组或序列化字符串")
	}
	if raw == "" {
		*s = SubmitTypes{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("submit_types 字符串形式解析失败: %w", err)
	}
	*s = arr
	return nil
}

// AssignmentRequest 课题创建/修改请求
// 修改是整行覆盖语义：未提供的可选字段写入 NULL，而不是保留旧值
type AssignmentRequest struct {
	Week            int         `json:"week"             binding:"required,min=1,max=52"`
	WeekOrder       int         `json:"week_order"       binding:"min=0"`
	Topic           string      `json:"topic"            binding:"required,max=200"`
	VideoTitle      *string     `json:"video_title"      binding:"omitempty,max=200"`
	PracticeContent *string     `json:"practice_content"`
	MainContent     *string     `json:"main_content"`
	SubmitTypes     SubmitTypes `json:"submit_types"     binding:"required,min=1,dive,oneof=text image video document"`
	OpenDate        *DateTime   `json:"open_date"`
	DueDate         *DateTime   `json:"due_date"`
}

// CreateAssignmentResponse 课题创建响应
type CreateAssignmentResponse struct {
	Message      string `json:"message"`
	AssignmentID uint   `json:"assignmentId"`
}

// BulkCreateAssignmentsResponse 批量创建响应
type BulkCreateAssignmentsResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// AssignmentResponse 课题信息响应（submit_types 反序列化为数组）
type AssignmentResponse struct {
	ID              uint       `json:"id"`
	LectureID       uint       `json:"lecture_id"`
	Week            int        `json:"week"`
	WeekOrder       int        `json:"week_order"`
	Topic           string     `json:"topic"`
	VideoTitle      *string    `json:"video_title"`
	PracticeContent *string    `json:"practice_content"`
	MainContent     *string    `json:"main_content"`
	SubmitTypes     []string   `json:"submit_types"`
	OpenDate        *time.Time `json:"open_date"`
	DueDate         *time.Time `json:"due_date"`
}

// ProfessorAssignmentResponse 教授视角的课题信息（附提交数量）
type ProfessorAssignmentResponse struct {
	AssignmentResponse
	SubmissionCount int64 `json:"submission_count"`
}
