package model

import "time"

// Lecture 讲座表 — 对应 lectures
// access_code 服务端生成，全局唯一，学生凭码自助选课
type Lecture struct {
	ID          uint      `gorm:"primaryKey"                            json:"id"`
	ProfessorID uint      `gorm:"not null;index"                        json:"professor_id"`
	Title       string    `gorm:"type:varchar(200);not null"            json:"title"`
	Description *string   `gorm:"type:text"                             json:"description"`
	AccessCode  string    `gorm:"type:varchar(10);not null;uniqueIndex" json:"access_code"`
	Year        int       `gorm:"not null"                              json:"year"`
	Semester    int       `gorm:"not null"                              json:"semester"`
	Major       string    `gorm:"type:varchar(100);not null"            json:"major"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"    json:"created_at"`
}

// TableName 指定表名
func (Lecture) TableName() string { return "lectures" }

// LectureEnrollment 选课表 — 对应 lecture_enrollments
// (user_id, lecture_id) 唯一：同一学生对同一讲座至多选课一次
type LectureEnrollment struct {
	ID        uint      `gorm:"primaryKey"                                        json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uq_enrollments_user_lecture"  json:"user_id"`
	LectureID uint      `gorm:"not null;uniqueIndex:uq_enrollments_user_lecture"  json:"lecture_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                json:"created_at"`
}

// TableName 指定表名
func (LectureEnrollment) TableName() string { return "lecture_enrollments" }
