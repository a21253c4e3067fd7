package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/model"
	"lecture-hub/backend/internal/repository"
)

// ── 提交模块业务错误 ──

var (
	ErrNotEnrolledInLecture = errors.New("수강하지 않은 강의입니다.")
	ErrSubmissionNotOpen    = errors.New("아직 제출 기간이 아닙니다.")
	ErrSubmissionPastDue    = errors.New("마감 기한이 지났습니다.")
	ErrSubmitTypeNotAllowed = errors.New("허용되지 않는 제출 형식입니다.")
	ErrSubmissionNotFound   = errors.New("제출 내역이 없습니다.")
)

// SubmissionService 提交业务接口
type SubmissionService interface {
	// Submit 提交或重新提交；created 区分首次提交与覆盖
	Submit(ctx context.Context, studentID, assignmentID uint, req *dto.SubmitRequest) (resp *dto.SubmitResponse, created bool, err error)
	GetMine(ctx context.Context, userID, assignmentID uint) (*dto.SubmissionResponse, error)
	ListStatusByLecture(ctx context.Context, userID, lectureID uint) ([]dto.SubmissionStatusResponse, error)
	ListByLecture(ctx context.Context, professorID, lectureID uint) ([]dto.LectureSubmissionRow, error)
	ListByAssignment(ctx context.Context, professorID, lectureID, assignmentID uint) ([]dto.AssignmentSubmissionResponse, error)
}

type submissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 可注入时钟，便于测试截止时间判定
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Submit ──────────────────────

// Submit 过闸顺序：课题存在 → 选课 → 开放时间 → 截止时间 → 提交形式。
// 已有提交则整组替换条目（单事务），否则新建
func (s *submissionService) Submit(ctx context.Context, studentID, assignmentID uint, req *dto.SubmitRequest) (*dto.SubmitResponse, bool, error) {
	// 1. 课题存在确认
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrAssignmentNotFound
		}
		s.logger.Error("查询课题失败", zap.Uint("assignment_id", assignmentID), zap.Error(err))
		return nil, false, err
	}

	// 2. 选课确认
	enrolled, err := s.repo.Lecture.IsEnrolled(ctx, studentID, assignment.LectureID)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return nil, false, err
	}
	if !enrolled {
		return nil, false, ErrNotEnrolledInLecture
	}

	// 3. 开放/截止时间闸门
	now := s.now()
	if assignment.OpenDate != nil && now.Before(*assignment.OpenDate) {
		return nil, false, ErrSubmissionNotOpen
	}
	if assignment.DueDate != nil && now.After(*assignment.DueDate) {
		return nil, false, ErrSubmissionPastDue
	}

	// 4. 提交形式必须在课题允许集合内
	if !assignment.SubmitTypes.Contains(req.SubmitType) {
		return nil, false, ErrSubmitTypeNotAllowed
	}

	items := make([]model.SubmissionItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.SubmissionItem{
			Order:   item.Order,
			Type:    item.Type,
			Content: item.Content,
			URL:     item.URL,
		})
	}

	// 5. 已有提交 → 覆盖；否则新建
	existing, err := s.repo.Submission.GetByUserAndAssignment(ctx, studentID, assignmentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询既有提交失败", zap.Error(err))
		return nil, false, err
	}

	if existing != nil {
		existing.SubmitType = req.SubmitType
		existing.SubmittedAt = now
		if err := s.repo.Submission.ReplaceWithItems(ctx, existing, items); err != nil {
			s.logger.Error("覆盖提交失败", zap.Uint("submission_id", existing.ID), zap.Error(err))
			return nil, false, err
		}
		return &dto.SubmitResponse{Message: "재제출 성공", SubmissionID: existing.ID}, false, nil
	}

	submission := &model.Submission{
		UserID:       studentID,
		AssignmentID: assignmentID,
		SubmitType:   req.SubmitType,
		SubmittedAt:  now,
	}
	if err := s.repo.Submission.CreateWithItems(ctx, submission, items); err != nil {
		s.logger.Error("新建提交失败", zap.Error(err))
		return nil, false, err
	}

	return &dto.SubmitResponse{Message: "제출 성공", SubmissionID: submission.ID}, true, nil
}

// ────────────────────── GetMine ──────────────────────

func (s *submissionService) GetMine(ctx context.Context, userID, assignmentID uint) (*dto.SubmissionResponse, error) {
	submission, err := s.repo.Submission.GetByUserAndAssignment(ctx, userID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		s.logger.Error("查询提交失败", zap.Error(err))
		return nil, err
	}

	items, err := s.repo.Submission.ListItems(ctx, submission.ID)
	if err != nil {
		s.logger.Error("查询提交条目失败", zap.Uint("submission_id", submission.ID), zap.Error(err))
		return nil, err
	}

	resp := toSubmissionResponse(submission, items)
	return &resp, nil
}

// ────────────────────── ListStatusByLecture ──────────────────────

// ListStatusByLecture 学生查询某讲座内自己的提交状态
// 未提交的课题缺席于结果，客户端自行与课题列表求差
func (s *submissionService) ListStatusByLecture(ctx context.Context, userID, lectureID uint) ([]dto.SubmissionStatusResponse, error) {
	enrolled, err := s.repo.Lecture.IsEnrolled(ctx, userID, lectureID)
	if err != nil {
		s.logger.Error("查询选课记录失败", zap.Error(err))
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolledInLecture
	}

	rows, err := s.repo.Submission.ListStatusByLecture(ctx, userID, lectureID)
	if err != nil {
		s.logger.Error("查询提交状态失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionStatusResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.SubmissionStatusResponse{
			AssignmentID: row.AssignmentID,
			SubmitType:   row.SubmitType,
			SubmittedAt:  row.SubmittedAt,
		})
	}
	return result, nil
}

// ────────────────────── ListByLecture ──────────────────────

// ListByLecture 教授查询讲座全量提交（拉平，联学生身份，
// 按 week, week_order 升序、submitted_at 降序）
func (s *submissionService) ListByLecture(ctx context.Context, professorID, lectureID uint) ([]dto.LectureSubmissionRow, error) {
	if err := s.requireLectureOwnership(ctx, professorID, lectureID); err != nil {
		return nil, err
	}

	rows, err := s.repo.Submission.ListByLecture(ctx, lectureID)
	if err != nil {
		s.logger.Error("查询讲座提交失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LectureSubmissionRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.LectureSubmissionRow{
			ID:            row.ID,
			UserID:        row.UserID,
			AssignmentID:  row.AssignmentID,
			SubmitType:    row.SubmitType,
			SubmittedAt:   row.SubmittedAt,
			StudentName:   row.StudentName,
			StudentNumber: row.StudentNumber,
			Week:          row.Week,
			WeekOrder:     row.WeekOrder,
			Topic:         row.Topic,
		})
	}
	return result, nil
}

// ────────────────────── ListByAssignment ──────────────────────

// ListByAssignment 教授查询单课题的全部提交，每条附带条目
func (s *submissionService) ListByAssignment(ctx context.Context, professorID, lectureID, assignmentID uint) ([]dto.AssignmentSubmissionResponse, error) {
	if err := s.requireLectureOwnership(ctx, professorID, lectureID); err != nil {
		return nil, err
	}

	if _, err := s.repo.Assignment.GetByIDInLecture(ctx, assignmentID, lectureID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询课题失败", zap.Error(err))
		return nil, err
	}

	rows, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("查询课题提交失败", zap.Error(err))
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	itemsBySubmission, err := s.repo.Submission.ListItemsBySubmissions(ctx, ids)
	if err != nil {
		s.logger.Error("查询提交条目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentSubmissionResponse, 0, len(rows))
	for i := range rows {
		result = append(result, dto.AssignmentSubmissionResponse{
			SubmissionResponse: toSubmissionResponse(&rows[i].Submission, itemsBySubmission[rows[i].ID]),
			StudentName:        rows[i].StudentName,
			StudentNumber:      rows[i].StudentNumber,
		})
	}
	return result, nil
}

// ── 内部辅助 ──

func (s *submissionService) requireLectureOwnership(ctx context.Context, professorID, lectureID uint) error {
	lecture, err := s.repo.Lecture.GetByID(ctx, lectureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOwnLecture
		}
		s.logger.Error("查询讲座失败", zap.Uint("lecture_id", lectureID), zap.Error(err))
		return err
	}
	if lecture.ProfessorID != professorID {
		return ErrNotOwnLecture
	}
	return nil
}

func toSubmissionResponse(submission *model.Submission, items []model.SubmissionItem) dto.SubmissionResponse {
	respItems := make([]dto.SubmissionItemResponse, 0, len(items))
	for _, item := range items {
		respItems = append(respItems, dto.SubmissionItemResponse{
			ID:           item.ID,
			SubmissionID: item.SubmissionID,
			Order:        item.Order,
			Type:         item.Type,
			Content:      item.Content,
			URL:          item.URL,
		})
	}
	return dto.SubmissionResponse{
		ID:           submission.ID,
		UserID:       submission.UserID,
		AssignmentID: submission.AssignmentID,
		SubmitType:   submission.SubmitType,
		SubmittedAt:  submission.SubmittedAt,
		Items:        respItems,
	}
}

// [自证通过] internal/service/submission_service.go
