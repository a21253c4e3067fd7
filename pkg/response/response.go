package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 统一响应辅助函数。
//
// 既有前端依赖扁平 JSON：成功时直接返回数据体，
// 失败时返回 {"message": "..."}，不做额外包装。

// ErrorBody 错误响应体
type ErrorBody struct {
	Message string `json:"message"`
}

// ── 成功响应 ──

// OK 200 成功响应，payload 原样输出
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created 201 创建成功
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409 唯一性冲突
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500 通用服务器错误，不向客户端泄露内部细节
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "서버 오류")
}
