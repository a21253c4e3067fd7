package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"lecture-hub/backend/internal/model"
)

func TestExportLectureSubmissions(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.repo, zap.NewNop())
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedStudent(repos, 10, "김학생", "20250001")
	seedEnrollment(repos, 10, 1)
	assignmentID := seedAssignment(repos, 1, []string{"text"}, nil, nil)

	content := "답안"
	if err := repos.submission.CreateWithItems(ctx, &model.Submission{
		UserID:       10,
		AssignmentID: assignmentID,
		SubmitType:   "text",
		SubmittedAt:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local),
	}, []model.SubmissionItem{{Order: 0, Type: "text", Content: &content}}); err != nil {
		t.Fatalf("预置提交失败: %v", err)
	}

	buf, filename, err := svc.ExportLectureSubmissions(ctx, 100, 1)
	if err != nil {
		t.Fatalf("ExportLectureSubmissions 失败: %v", err)
	}
	if filename != "lecture_1_submissions.xlsx" {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容不是合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("读取 Sheet1 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("行数 = %d, 期望表头 + 1 数据行", len(rows))
	}
	if rows[0][0] != "주차" || rows[0][3] != "이름" {
		t.Errorf("表头不符: %v", rows[0])
	}
	if rows[1][3] != "김학생" || rows[1][4] != "20250001" {
		t.Errorf("数据行不符: %v", rows[1])
	}
}

func TestExportLectureSubmissionsNotOwner(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.repo, zap.NewNop())
	seedLecture(repos, 1, 100)

	_, _, err := svc.ExportLectureSubmissions(context.Background(), 200, 1)
	if !errors.Is(err, ErrNotOwnLecture) {
		t.Errorf("err = %v, 期望 ErrNotOwnLecture", err)
	}
}

func TestBuildAssignmentCalendar(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.repo, zap.NewNop())
	ctx := context.Background()

	seedLecture(repos, 1, 100)
	seedEnrollment(repos, 10, 1)
	due := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	seedAssignment(repos, 1, []string{"text"}, nil, &due)
	seedAssignment(repos, 1, []string{"text"}, nil, nil) // 无截止日，不进日历

	ical, filename, err := svc.BuildAssignmentCalendar(ctx, 10, model.RoleStudent, 1)
	if err != nil {
		t.Fatalf("BuildAssignmentCalendar 失败: %v", err)
	}
	if filename != "lecture_1_deadlines.ics" {
		t.Errorf("filename = %q", filename)
	}

	if !strings.Contains(ical, "BEGIN:VCALENDAR") {
		t.Error("缺 VCALENDAR 包络")
	}
	if got := strings.Count(ical, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("VEVENT 数 = %d, 期望 1（无截止日课题应跳过）", got)
	}
	if !strings.Contains(ical, "[1주차] 연결 리스트") {
		t.Error("事件摘要缺失")
	}
}

func TestBuildAssignmentCalendarAccess(t *testing.T) {
	repos := newTestRepos()
	svc := NewExportService(repos.repo, zap.NewNop())
	seedLecture(repos, 1, 100)

	// 未选课学生不可见
	_, _, err := svc.BuildAssignmentCalendar(context.Background(), 10, model.RoleStudent, 1)
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("err = %v, 期望 ErrNotEnrolled", err)
	}
}
