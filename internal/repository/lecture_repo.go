package repository

import (
	"context"

	"gorm.io/gorm"

	"lecture-hub/backend/internal/model"
)

// LectureRepository 讲座与选课数据访问接口
type LectureRepository interface {
	Create(ctx context.Context, lecture *model.Lecture) error
	GetByID(ctx context.Context, id uint) (*model.Lecture, error)
	GetByAccessCode(ctx context.Context, code string) (*model.Lecture, error)
	ListByProfessor(ctx context.Context, professorID uint) ([]model.Lecture, error)
	ListEnrolledByUser(ctx context.Context, userID uint) ([]model.Lecture, error)
	CreateEnrollment(ctx context.Context, enrollment *model.LectureEnrollment) error
	IsEnrolled(ctx context.Context, userID, lectureID uint) (bool, error)
}

// lectureRepo LectureRepository 的 GORM 实现
type lectureRepo struct {
	db *gorm.DB
}

// NewLectureRepo 创建 LectureRepository 实例
func NewLectureRepo(db *gorm.DB) LectureRepository {
	return &lectureRepo{db: db}
}

func (r *lectureRepo) Create(ctx context.Context, lecture *model.Lecture) error {
	return r.db.WithContext(ctx).Create(lecture).Error
}

func (r *lectureRepo) GetByID(ctx context.Context, id uint) (*model.Lecture, error) {
	var lecture model.Lecture
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepo) GetByAccessCode(ctx context.Context, code string) (*model.Lecture, error) {
	var lecture model.Lecture
	err := r.db.WithContext(ctx).
		Where("access_code = ?", code).
		First(&lecture).Error
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (r *lectureRepo) ListByProfessor(ctx context.Context, professorID uint) ([]model.Lecture, error) {
	var lectures []model.Lecture
	err := r.db.WithContext(ctx).
		Where("professor_id = ?", professorID).
		Order("created_at DESC").
		Find(&lectures).Error
	return lectures, err
}

func (r *lectureRepo) ListEnrolledByUser(ctx context.Context, userID uint) ([]model.Lecture, error) {
	var lectures []model.Lecture
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN lecture_enrollments le ON le.lecture_id = lectures.id").
		Where("le.user_id = ?", userID).
		Order("le.created_at DESC").
		Find(&lectures).Error
	return lectures, err
}

func (r *lectureRepo) CreateEnrollment(ctx context.Context, enrollment *model.LectureEnrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *lectureRepo) IsEnrolled(ctx context.Context, userID, lectureID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.LectureEnrollment{}).
		Where("user_id = ? AND lecture_id = ?", userID, lectureID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
