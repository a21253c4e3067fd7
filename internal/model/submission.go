package model

import "time"

// 提交形式枚举
const (
	SubmitTypeText     = "text"
	SubmitTypeImage    = "image"
	SubmitTypeVideo    = "video"
	SubmitTypeDocument = "document"
)

// Submission 提交表 — 对应 submissions
// (user_id, assignment_id) 唯一：重复提交是覆盖而不是新增
type Submission struct {
	ID           uint      `gorm:"primaryKey"                                           json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:uq_submissions_user_assignment"  json:"user_id"`
	AssignmentID uint      `gorm:"not null;uniqueIndex:uq_submissions_user_assignment"  json:"assignment_id"`
	SubmitType   string    `gorm:"type:varchar(20);not null"                            json:"submit_type"`
	SubmittedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"submitted_at"`

	// 关联
	Items []SubmissionItem `gorm:"foreignKey:SubmissionID" json:"items,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// SubmissionItem 提交条目表 — 对应 submission_items
// order 由调用方显式给定，读取时按 item_order 升序返回；
// 重新提交时整组删除重建，绝不做部分修补
type SubmissionItem struct {
	ID           uint    `gorm:"primaryKey"                 json:"id"`
	SubmissionID uint    `gorm:"not null;index"             json:"submission_id"`
	Order        int     `gorm:"column:item_order;not null" json:"order"`
	Type         string  `gorm:"type:varchar(20);not null"  json:"type"`
	Content      *string `gorm:"type:text"                  json:"content"`
	URL          *string `gorm:"type:text"                  json:"url"`
}

// TableName 指定表名
func (SubmissionItem) TableName() string { return "submission_items" }
