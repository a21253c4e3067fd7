package dto

import "time"

// ── 讲座模块 DTO ──

// CreateLectureRequest 创建讲座请求
// access_code 不由客户端提供，服务端生成后随响应返回
type CreateLectureRequest struct {
	Title       string  `json:"title"       binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Year        int     `json:"year"        binding:"required,min=2000,max=2100"`
	Semester    int     `json:"semester"    binding:"required,min=1,max=4"`
	Major       string  `json:"major"       binding:"required,max=100"`
}

// CreateLectureResponse 创建讲座响应
type CreateLectureResponse struct {
	Message    string `json:"message"`
	LectureID  uint   `json:"lectureId"`
	AccessCode string `json:"access_code"`
}

// EnrollRequest 凭访问码选课请求
type EnrollRequest struct {
	AccessCode string `json:"access_code" binding:"required,len=6"`
}

// LectureResponse 讲座信息响应
type LectureResponse struct {
	ID          uint      `json:"id"`
	ProfessorID uint      `json:"professor_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	AccessCode  string    `json:"access_code"`
	Year        int       `json:"year"`
	Semester    int       `json:"semester"`
	Major       string    `json:"major"`
	CreatedAt   time.Time `json:"created_at"`
}
