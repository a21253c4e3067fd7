package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/model"
)

// seedAssignment 直接向 mock 写入一条课题，返回 ID
func seedAssignment(repos *testRepos, lectureID uint, submitTypes []string, openDate, dueDate *time.Time) uint {
	id := repos.assignment.nextID
	repos.assignment.nextID++
	repos.assignment.assignments[id] = &model.Assignment{
		ID:          id,
		LectureID:   lectureID,
		Week:        1,
		Topic:       "연결 리스트",
		SubmitTypes: model.StringList(submitTypes),
		OpenDate:    openDate,
		DueDate:     dueDate,
	}
	return id
}

func seedStudent(repos *testRepos, id uint, name, studentNumber string) {
	repos.user.users[id] = &model.User{
		ID:        id,
		Name:      name,
		StudentID: studentNumber,
		LoginID:   name,
		Role:      model.RoleStudent,
	}
}

func textItem(order int, content string) dto.SubmissionItemRequest {
	return dto.SubmissionItemRequest{Order: order, Type: "text", Content: &content}
}

func newTestSubmissionService(repos *testRepos, now time.Time) SubmissionService {
	svc := NewSubmissionService(repos.repo, zap.NewNop())
	svc.(*submissionService).now = func() time.Time { return now }
	return svc
}

func TestSubmitFirstTime(t *testing.T) {
	repos := newTestRepos()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newTestSubmissionService(repos, now)
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text", "image"}, nil, nil)

	resp, created, err := svc.Submit(ctx, 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	})
	if err != nil {
		t.Fatalf("Submit 失败: %v", err)
	}
	if !created {
		t.Error("首次提交 created 应为 true")
	}
	if resp.Message != "제출 성공" {
		t.Errorf("Message = %q, 期望 '제출 성공'", resp.Message)
	}

	stored, err := repos.submission.GetByUserAndAssignment(ctx, 10, assignmentID)
	if err != nil {
		t.Fatalf("提交后查询失败: %v", err)
	}
	if !stored.SubmittedAt.Equal(now) {
		t.Errorf("SubmittedAt = %v, 期望 %v", stored.SubmittedAt, now)
	}
}

func TestResubmitReplacesItems(t *testing.T) {
	repos := newTestRepos()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newTestSubmissionService(repos, now)
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text", "image"}, nil, nil)

	first, _, err := svc.Submit(ctx, 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items: []dto.SubmissionItemRequest{
			textItem(0, "첫 번째"),
			textItem(1, "두 번째"),
		},
	})
	if err != nil {
		t.Fatalf("首次 Submit 失败: %v", err)
	}

	later := now.Add(time.Hour)
	svc.(*submissionService).now = func() time.Time { return later }

	url := "https://example.com/answer.png"
	resp, created, err := svc.Submit(ctx, 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "image",
		Items: []dto.SubmissionItemRequest{
			{Order: 0, Type: "image", URL: &url},
		},
	})
	if err != nil {
		t.Fatalf("重新 Submit 失败: %v", err)
	}
	if created {
		t.Error("重新提交 created 应为 false")
	}
	if resp.Message != "재제출 성공" {
		t.Errorf("Message = %q, 期望 '재제출 성공'", resp.Message)
	}
	// 覆盖而不是新增
	if resp.SubmissionID != first.SubmissionID {
		t.Errorf("SubmissionID = %d, 期望沿用 %d", resp.SubmissionID, first.SubmissionID)
	}

	stored, _ := repos.submission.GetByUserAndAssignment(ctx, 10, assignmentID)
	if stored.SubmitType != "image" {
		t.Errorf("SubmitType = %q, 期望 image", stored.SubmitType)
	}
	if !stored.SubmittedAt.Equal(later) {
		t.Errorf("SubmittedAt 未刷新: %v", stored.SubmittedAt)
	}

	items, _ := repos.submission.ListItems(ctx, stored.ID)
	if len(items) != 1 {
		t.Fatalf("条目数 = %d, 整组替换后期望 1", len(items))
	}
	if items[0].Type != "image" || items[0].URL == nil || *items[0].URL != url {
		t.Errorf("替换后条目不符: %+v", items[0])
	}
}

func TestSubmitBeforeOpenDate(t *testing.T) {
	repos := newTestRepos()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newTestSubmissionService(repos, now)

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	open := now.Add(24 * time.Hour)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, &open, nil)

	_, _, err := svc.Submit(context.Background(), 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	})
	if !errors.Is(err, ErrSubmissionNotOpen) {
		t.Errorf("err = %v, 期望 ErrSubmissionNotOpen", err)
	}
}

func TestSubmitAfterDueDate(t *testing.T) {
	repos := newTestRepos()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc := newTestSubmissionService(repos, now)

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	due := now.Add(-time.Minute)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, &due)

	_, _, err := svc.Submit(context.Background(), 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	})
	if !errors.Is(err, ErrSubmissionPastDue) {
		t.Errorf("err = %v, 期望 ErrSubmissionPastDue", err)
	}
}

func TestSubmitExactlyAtDueDate(t *testing.T) {
	repos := newTestRepos()
	due := time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)
	svc := newTestSubmissionService(repos, due)

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, &due)

	// 截止时刻当刻仍可提交（仅严格晚于截止才拒绝）
	_, _, err := svc.Submit(context.Background(), 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	})
	if err != nil {
		t.Errorf("截止当刻提交失败: %v", err)
	}
}

func TestSubmitTypeNotAllowed(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, nil)

	_, _, err := svc.Submit(context.Background(), 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "video",
		Items:      []dto.SubmissionItemRequest{{Order: 0, Type: "video"}},
	})
	if !errors.Is(err, ErrSubmitTypeNotAllowed) {
		t.Errorf("err = %v, 期望 ErrSubmitTypeNotAllowed", err)
	}
}

func TestSubmitNotEnrolled(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())

	seedLecture(repos, 1, 100)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, nil)

	_, _, err := svc.Submit(context.Background(), 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	})
	if !errors.Is(err, ErrNotEnrolledInLecture) {
		t.Errorf("err = %v, 期望 ErrNotEnrolledInLecture", err)
	}
}

func TestSubmitAssignmentMissing(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())

	_, _, err := svc.Submit(context.Background(), 10, 999, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("err = %v, 期望 ErrAssignmentNotFound", err)
	}
}

func TestGetMine(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, nil)

	if _, err := svc.GetMine(ctx, 10, assignmentID); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("无提交时 err = %v, 期望 ErrSubmissionNotFound", err)
	}

	_, _, err := svc.Submit(ctx, 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items: []dto.SubmissionItemRequest{
			textItem(1, "둘째 단락"),
			textItem(0, "첫 단락"),
		},
	})
	if err != nil {
		t.Fatalf("Submit 失败: %v", err)
	}

	mine, err := svc.GetMine(ctx, 10, assignmentID)
	if err != nil {
		t.Fatalf("GetMine 失败: %v", err)
	}
	if len(mine.Items) != 2 {
		t.Fatalf("条目数 = %d, 期望 2", len(mine.Items))
	}
	// order 升序返回
	if mine.Items[0].Order != 0 || mine.Items[1].Order != 1 {
		t.Errorf("条目未按 order 升序: %+v", mine.Items)
	}
}

func TestListStatusByLecture(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	a1 := seedAssignment(repos, 1, []string{"text"}, nil, nil)
	seedAssignment(repos, 1, []string{"text"}, nil, nil) // 未提交的课题

	if _, _, err := svc.Submit(ctx, 10, a1, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	}); err != nil {
		t.Fatalf("Submit 失败: %v", err)
	}

	statuses, err := svc.ListStatusByLecture(ctx, 10, 1)
	if err != nil {
		t.Fatalf("ListStatusByLecture 失败: %v", err)
	}
	// 未提交的课题缺席于结果
	if len(statuses) != 1 || statuses[0].AssignmentID != a1 {
		t.Errorf("statuses = %+v, 期望仅含课题 %d", statuses, a1)
	}

	if _, err := svc.ListStatusByLecture(ctx, 20, 1); !errors.Is(err, ErrNotEnrolledInLecture) {
		t.Errorf("未选课学生 err = %v, 期望 ErrNotEnrolledInLecture", err)
	}
}

func TestListByLectureOwnership(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedStudent(repos, 10, "김학생", "20250001")
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, nil)

	if _, _, err := svc.Submit(ctx, 10, assignmentID, &dto.SubmitRequest{
		SubmitType: "text",
		Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
	}); err != nil {
		t.Fatalf("Submit 失败: %v", err)
	}

	rows, err := svc.ListByLecture(ctx, 100, 1)
	if err != nil {
		t.Fatalf("ListByLecture 失败: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len = %d, 期望 1", len(rows))
	}
	if rows[0].StudentName != "김학생" || rows[0].StudentNumber != "20250001" {
		t.Errorf("学生身份未联出: %+v", rows[0])
	}
	if rows[0].Topic != "연결 리스트" {
		t.Errorf("课题信息未联出: %+v", rows[0])
	}

	if _, err := svc.ListByLecture(ctx, 200, 1); !errors.Is(err, ErrNotOwnLecture) {
		t.Errorf("非归属教授 err = %v, 期望 ErrNotOwnLecture", err)
	}
}

func TestListByAssignment(t *testing.T) {
	repos := newTestRepos()
	svc := newTestSubmissionService(repos, time.Now())
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedStudent(repos, 10, "김학생", "20250001")
	seedStudent(repos, 11, "박학생", "20250002")
	seedEnrollment(repos, 10, 1)
	seedEnrollment(repos, 11, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, nil)

	for _, userID := range []uint{10, 11} {
		if _, _, err := svc.Submit(ctx, userID, assignmentID, &dto.SubmitRequest{
			SubmitType: "text",
			Items:      []dto.SubmissionItemRequest{textItem(0, "답안")},
		}); err != nil {
			t.Fatalf("Submit 失败: %v", err)
		}
	}

	submissions, err := svc.ListByAssignment(ctx, 100, 1, assignmentID)
	if err != nil {
		t.Fatalf("ListByAssignment 失败: %v", err)
	}
	if len(submissions) != 2 {
		t.Fatalf("len = %d, 期望 2", len(submissions))
	}
	for _, s := range submissions {
		if len(s.Items) != 1 {
			t.Errorf("提交 %d 未带条目", s.ID)
		}
		if s.StudentName == "" {
			t.Errorf("提交 %d 缺学生姓名", s.ID)
		}
	}

	if _, err := svc.ListByAssignment(ctx, 100, 1, 999); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("课题不存在 err = %v, 期望 ErrAssignmentNotFound", err)
	}
}
