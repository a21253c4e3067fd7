package model

import "time"

// 角色枚举（注册时校验，不接受任意值）
const (
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

// User 用户表 — 对应 users
type User struct {
	ID           uint      `gorm:"primaryKey"                                json:"id"`
	Name         string    `gorm:"type:varchar(100);not null"                json:"name"`
	StudentID    string    `gorm:"type:varchar(20);not null"                 json:"student_id"`
	LoginID      string    `gorm:"type:varchar(50);not null;uniqueIndex"     json:"login_id"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:student" json:"role"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
