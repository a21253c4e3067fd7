package repository

import (
	"context"

	"gorm.io/gorm"

	"lecture-hub/backend/internal/model"
)

// AssignmentWithCount 课题行附带提交数量（教授视角列表）
type AssignmentWithCount struct {
	model.Assignment
	SubmissionCount int64 `gorm:"column:submission_count"`
}

// AssignmentRepository 课题数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	BatchCreate(ctx context.Context, assignments []model.Assignment) error
	GetByID(ctx context.Context, id uint) (*model.Assignment, error)
	GetByIDInLecture(ctx context.Context, id, lectureID uint) (*model.Assignment, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	ListByLecture(ctx context.Context, lectureID uint) ([]model.Assignment, error)
	ListByLectureWithCount(ctx context.Context, lectureID uint) ([]AssignmentWithCount, error)
}

// assignmentRepo AssignmentRepository 的 GORM 实现
type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) BatchCreate(ctx context.Context, assignments []model.Assignment) error {
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) GetByIDInLecture(ctx context.Context, id, lectureID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ? AND lecture_id = ?", id, lectureID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Update 整行覆盖（Save 写入全部字段，含 NULL 可选字段）
func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) ListByLecture(ctx context.Context, lectureID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("lecture_id = ?", lectureID).
		Order("week ASC, week_order ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByLectureWithCount(ctx context.Context, lectureID uint) ([]AssignmentWithCount, error) {
	var rows []AssignmentWithCount
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Select("assignments.*, COUNT(s.id) AS submission_count").
		Joins("LEFT JOIN submissions s ON s.assignment_id = assignments.id").
		Where("assignments.lecture_id = ?", lectureID).
		Group("assignments.id").
		Order("assignments.week ASC, assignments.week_order ASC").
		Scan(&rows).Error
	return rows, err
}
