package repository

import (
	"context"

	"gorm.io/gorm"

	"lecture-hub/backend/internal/model"
)

// FileRepository 上传文件元数据访问接口
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	GetByID(ctx context.Context, id uint) (*model.File, error)
}

// fileRepo FileRepository 的 GORM 实现
type fileRepo struct {
	db *gorm.DB
}

// NewFileRepo 创建 FileRepository 实例
func NewFileRepo(db *gorm.DB) FileRepository {
	return &fileRepo{db: db}
}

func (r *fileRepo) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *fileRepo) GetByID(ctx context.Context, id uint) (*model.File, error) {
	var file model.File
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}
