package dto

// ── 上传模块 DTO ──

// UploadResponse 上传成功响应
// url 为静态服务前缀下的完整可访问地址
type UploadResponse struct {
	FileID uint   `json:"file_id"`
	URL    string `json:"url"`
}
