package model

import "time"

// 文件类型枚举（由 MIME 前缀推导）
const (
	FileTypeImage    = "image"
	FileTypeVideo    = "video"
	FileTypeDocument = "document"
)

// File 上传文件元数据表 — 对应 files
// stored_name 为服务端生成的不透明名称，与原始文件名隔离，
// 既避免路径穿越也避免重名覆盖；提交条目以 URL 字符串引用，不设外键
type File struct {
	ID           uint      `gorm:"primaryKey"                             json:"id"`
	OriginalName string    `gorm:"type:varchar(255);not null"             json:"original_name"`
	StoredName   string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"stored_name"`
	FilePath     string    `gorm:"type:varchar(500);not null"             json:"file_path"`
	FileType     string    `gorm:"type:varchar(20);not null"              json:"file_type"`
	FileSize     int64     `gorm:"not null"                               json:"file_size"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
}

// TableName 指定表名
func (File) TableName() string { return "files" }
