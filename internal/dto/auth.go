package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
// role 为封闭枚举，缺省按学生处理
type RegisterRequest struct {
	Name      string `json:"name"      binding:"required,min=1,max=100"`
	StudentID string `json:"studentId" binding:"required,max=20"`
	LoginID   string `json:"loginId"   binding:"required,min=4,max=50"`
	Password  string `json:"password"  binding:"required,min=8,max=72"`
	Role      string `json:"role"      binding:"omitempty,oneof=professor student"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	LoginID  string `json:"loginId"  binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserPayload Token 载荷中的用户信息（脱敏）
type UserPayload struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	LoginID string `json:"loginId"`
	Role    string `json:"role"`
}

// LoginResponse 登录成功响应
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// MessageResponse 仅含消息的响应体
type MessageResponse struct {
	Message string `json:"message"`
}
