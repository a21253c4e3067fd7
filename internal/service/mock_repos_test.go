package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"lecture-hub/backend/internal/model"
	"lecture-hub/backend/internal/repository"
)

// ── Mock Repositories（内存实现，唯一约束按数据库语义模拟）──

type mockUserRepo struct {
	users   map[uint]*model.User
	byLogin map[string]*model.User
	nextID  uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:   make(map[uint]*model.User),
		byLogin: make(map[string]*model.User),
		nextID:  1,
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, exists := m.byLogin[user.LoginID]; exists {
		return gorm.ErrDuplicatedKey
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	m.byLogin[user.LoginID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByLoginID(_ context.Context, loginID string) (*model.User, error) {
	if u, ok := m.byLogin[loginID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockLectureRepo struct {
	lectures    map[uint]*model.Lecture
	byCode      map[string]*model.Lecture
	enrollments []model.LectureEnrollment
	nextID      uint

	// 测试可预置已占用的访问码，模拟生成冲突
	takenCodes map[string]bool
}

func newMockLectureRepo() *mockLectureRepo {
	return &mockLectureRepo{
		lectures:   make(map[uint]*model.Lecture),
		byCode:     make(map[string]*model.Lecture),
		nextID:     1,
		takenCodes: make(map[string]bool),
	}
}

func (m *mockLectureRepo) Create(_ context.Context, lecture *model.Lecture) error {
	if m.takenCodes[lecture.AccessCode] {
		return gorm.ErrDuplicatedKey
	}
	if _, exists := m.byCode[lecture.AccessCode]; exists {
		return gorm.ErrDuplicatedKey
	}
	lecture.ID = m.nextID
	m.nextID++
	stored := *lecture
	m.lectures[lecture.ID] = &stored
	m.byCode[lecture.AccessCode] = &stored
	return nil
}

func (m *mockLectureRepo) GetByID(_ context.Context, id uint) (*model.Lecture, error) {
	if l, ok := m.lectures[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLectureRepo) GetByAccessCode(_ context.Context, code string) (*model.Lecture, error) {
	if l, ok := m.byCode[code]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLectureRepo) ListByProfessor(_ context.Context, professorID uint) ([]model.Lecture, error) {
	var result []model.Lecture
	for _, l := range m.lectures {
		if l.ProfessorID == professorID {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockLectureRepo) ListEnrolledByUser(_ context.Context, userID uint) ([]model.Lecture, error) {
	var result []model.Lecture
	for _, e := range m.enrollments {
		if e.UserID == userID {
			if l, ok := m.lectures[e.LectureID]; ok {
				result = append(result, *l)
			}
		}
	}
	return result, nil
}

func (m *mockLectureRepo) CreateEnrollment(_ context.Context, enrollment *model.LectureEnrollment) error {
	for _, e := range m.enrollments {
		if e.UserID == enrollment.UserID && e.LectureID == enrollment.LectureID {
			return gorm.ErrDuplicatedKey
		}
	}
	enrollment.ID = uint(len(m.enrollments) + 1)
	m.enrollments = append(m.enrollments, *enrollment)
	return nil
}

func (m *mockLectureRepo) IsEnrolled(_ context.Context, userID, lectureID uint) (bool, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.LectureID == lectureID {
			return true, nil
		}
	}
	return false, nil
}

type mockAssignmentRepo struct {
	assignments map[uint]*model.Assignment
	nextID      uint
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{
		assignments: make(map[uint]*model.Assignment),
		nextID:      1,
	}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	assignment.ID = m.nextID
	m.nextID++
	stored := *assignment
	m.assignments[assignment.ID] = &stored
	return nil
}

func (m *mockAssignmentRepo) BatchCreate(_ context.Context, assignments []model.Assignment) error {
	for i := range assignments {
		assignments[i].ID = m.nextID
		m.nextID++
		stored := assignments[i]
		m.assignments[stored.ID] = &stored
	}
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id uint) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByIDInLecture(_ context.Context, id, lectureID uint) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok && a.LectureID == lectureID {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	if _, ok := m.assignments[assignment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *assignment
	m.assignments[assignment.ID] = &stored
	return nil
}

func (m *mockAssignmentRepo) ListByLecture(_ context.Context, lectureID uint) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.LectureID == lectureID {
			result = append(result, *a)
		}
	}
	sortAssignments(result)
	return result, nil
}

func (m *mockAssignmentRepo) ListByLectureWithCount(_ context.Context, lectureID uint) ([]repository.AssignmentWithCount, error) {
	// 提交数由提交 mock 单独校验，这里统一置 0
	var result []repository.AssignmentWithCount
	for _, a := range m.assignments {
		if a.LectureID == lectureID {
			result = append(result, repository.AssignmentWithCount{Assignment: *a})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Week != result[j].Week {
			return result[i].Week < result[j].Week
		}
		return result[i].WeekOrder < result[j].WeekOrder
	})
	return result, nil
}

func sortAssignments(assignments []model.Assignment) {
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].Week != assignments[j].Week {
			return assignments[i].Week < assignments[j].Week
		}
		return assignments[i].WeekOrder < assignments[j].WeekOrder
	})
}

// mockSubmissionRepo 提交 mock
// 联表查询需要课题与用户数据，持有对应 mock 的引用
type mockSubmissionRepo struct {
	submissions map[uint]*model.Submission
	items       map[uint][]model.SubmissionItem
	nextID      uint

	users       *mockUserRepo
	assignments *mockAssignmentRepo
}

func newMockSubmissionRepo(users *mockUserRepo, assignments *mockAssignmentRepo) *mockSubmissionRepo {
	return &mockSubmissionRepo{
		submissions: make(map[uint]*model.Submission),
		items:       make(map[uint][]model.SubmissionItem),
		nextID:      1,
		users:       users,
		assignments: assignments,
	}
}

func (m *mockSubmissionRepo) GetByUserAndAssignment(_ context.Context, userID, assignmentID uint) (*model.Submission, error) {
	for _, s := range m.submissions {
		if s.UserID == userID && s.AssignmentID == assignmentID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) CreateWithItems(_ context.Context, submission *model.Submission, items []model.SubmissionItem) error {
	submission.ID = m.nextID
	m.nextID++
	stored := *submission
	m.submissions[submission.ID] = &stored
	m.storeItems(submission.ID, items)
	return nil
}

func (m *mockSubmissionRepo) ReplaceWithItems(_ context.Context, submission *model.Submission, items []model.SubmissionItem) error {
	if _, ok := m.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *submission
	m.submissions[submission.ID] = &stored
	delete(m.items, submission.ID)
	m.storeItems(submission.ID, items)
	return nil
}

func (m *mockSubmissionRepo) storeItems(submissionID uint, items []model.SubmissionItem) {
	stored := make([]model.SubmissionItem, 0, len(items))
	for i, item := range items {
		item.ID = uint(i + 1)
		item.SubmissionID = submissionID
		stored = append(stored, item)
	}
	m.items[submissionID] = stored
}

func (m *mockSubmissionRepo) ListItems(_ context.Context, submissionID uint) ([]model.SubmissionItem, error) {
	items := append([]model.SubmissionItem(nil), m.items[submissionID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

func (m *mockSubmissionRepo) ListItemsBySubmissions(_ context.Context, submissionIDs []uint) (map[uint][]model.SubmissionItem, error) {
	result := make(map[uint][]model.SubmissionItem)
	for _, id := range submissionIDs {
		items, _ := m.ListItems(nil, id)
		if len(items) > 0 {
			result[id] = items
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListStatusByLecture(_ context.Context, userID, lectureID uint) ([]repository.SubmissionStatusRow, error) {
	var result []repository.SubmissionStatusRow
	for _, s := range m.submissions {
		if s.UserID != userID {
			continue
		}
		a, ok := m.assignments.assignments[s.AssignmentID]
		if !ok || a.LectureID != lectureID {
			continue
		}
		result = append(result, repository.SubmissionStatusRow{
			AssignmentID: s.AssignmentID,
			SubmitType:   s.SubmitType,
			SubmittedAt:  s.SubmittedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssignmentID < result[j].AssignmentID })
	return result, nil
}

func (m *mockSubmissionRepo) ListByLecture(_ context.Context, lectureID uint) ([]repository.LectureSubmissionJoinRow, error) {
	var result []repository.LectureSubmissionJoinRow
	for _, s := range m.submissions {
		a, ok := m.assignments.assignments[s.AssignmentID]
		if !ok || a.LectureID != lectureID {
			continue
		}
		row := repository.LectureSubmissionJoinRow{
			Submission: *s,
			Week:       a.Week,
			WeekOrder:  a.WeekOrder,
			Topic:      a.Topic,
		}
		if u, ok := m.users.users[s.UserID]; ok {
			row.StudentName = u.Name
			row.StudentNumber = u.StudentID
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Week != result[j].Week {
			return result[i].Week < result[j].Week
		}
		if result[i].WeekOrder != result[j].WeekOrder {
			return result[i].WeekOrder < result[j].WeekOrder
		}
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

func (m *mockSubmissionRepo) ListByAssignment(_ context.Context, assignmentID uint) ([]repository.AssignmentSubmissionJoinRow, error) {
	var result []repository.AssignmentSubmissionJoinRow
	for _, s := range m.submissions {
		if s.AssignmentID != assignmentID {
			continue
		}
		row := repository.AssignmentSubmissionJoinRow{Submission: *s}
		if u, ok := m.users.users[s.UserID]; ok {
			row.StudentName = u.Name
			row.StudentNumber = u.StudentID
		}
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type mockFileRepo struct {
	files  map[uint]*model.File
	nextID uint
}

func newMockFileRepo() *mockFileRepo {
	return &mockFileRepo{files: make(map[uint]*model.File), nextID: 1}
}

func (m *mockFileRepo) Create(_ context.Context, file *model.File) error {
	file.ID = m.nextID
	m.nextID++
	stored := *file
	m.files[file.ID] = &stored
	return nil
}

func (m *mockFileRepo) GetByID(_ context.Context, id uint) (*model.File, error) {
	if f, ok := m.files[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 测试装配辅助 ──

type testRepos struct {
	user       *mockUserRepo
	lecture    *mockLectureRepo
	assignment *mockAssignmentRepo
	submission *mockSubmissionRepo
	file       *mockFileRepo
	repo       *repository.Repository
}

func newTestRepos() *testRepos {
	user := newMockUserRepo()
	lecture := newMockLectureRepo()
	assignment := newMockAssignmentRepo()
	submission := newMockSubmissionRepo(user, assignment)
	file := newMockFileRepo()
	return &testRepos{
		user:       user,
		lecture:    lecture,
		assignment: assignment,
		submission: submission,
		file:       file,
		repo: &repository.Repository{
			User:       user,
			Lecture:    lecture,
			Assignment: assignment,
			Submission: submission,
			File:       file,
		},
	}
}
