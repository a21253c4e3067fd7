package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"lecture-hub/backend/config"
	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/model"
	"lecture-hub/backend/pkg/jwt"
)

func newTestAuthService(repos *testRepos) AuthService {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret-key-for-unit-tests",
			TokenTTL:  time.Hour,
		},
	}
	return NewAuthService(cfg, repos.repo, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
}

func TestRegister(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterRequest{
		Name:      "김학생",
		StudentID: "20250001",
		LoginID:   "student1",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}

	user, err := repos.user.GetByLoginID(ctx, "student1")
	if err != nil {
		t.Fatalf("注册后查询用户失败: %v", err)
	}
	// 缺省角色是学生
	if user.Role != model.RoleStudent {
		t.Errorf("Role = %q, 期望 %q", user.Role, model.RoleStudent)
	}
	// 密码只落哈希
	if user.PasswordHash == "password123" {
		t.Error("密码被明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("密码哈希验证失败: %v", err)
	}
}

func TestRegisterProfessorRole(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterRequest{
		Name:      "이교수",
		StudentID: "P0001",
		LoginID:   "prof1",
		Password:  "password123",
		Role:      model.RoleProfessor,
	})
	if err != nil {
		t.Fatalf("Register 失败: %v", err)
	}

	user, _ := repos.user.GetByLoginID(ctx, "prof1")
	if user.Role != model.RoleProfessor {
		t.Errorf("Role = %q, 期望 %q", user.Role, model.RoleProfessor)
	}
}

func TestRegisterDuplicateLoginID(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)
	ctx := context.Background()

	req := &dto.RegisterRequest{
		Name:      "김학생",
		StudentID: "20250001",
		LoginID:   "student1",
		Password:  "password123",
	}
	if err := svc.Register(ctx, req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	err := svc.Register(ctx, &dto.RegisterRequest{
		Name:      "박학생",
		StudentID: "20250002",
		LoginID:   "student1",
		Password:  "otherpassword",
	})
	if !errors.Is(err, ErrLoginIDTaken) {
		t.Errorf("err = %v, 期望 ErrLoginIDTaken", err)
	}
}

func TestLogin(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)
	ctx := context.Background()

	_ = svc.Register(ctx, &dto.RegisterRequest{
		Name:      "김학생",
		StudentID: "20250001",
		LoginID:   "student1",
		Password:  "password123",
	})

	resp, err := svc.Login(ctx, &dto.LoginRequest{LoginID: "student1", Password: "password123"})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}
	if resp.Token == "" {
		t.Error("Token 为空")
	}
	if resp.User.LoginID != "student1" {
		t.Errorf("User.LoginID = %q, 期望 student1", resp.User.LoginID)
	}
	if resp.User.Role != model.RoleStudent {
		t.Errorf("User.Role = %q, 期望 student", resp.User.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)
	ctx := context.Background()

	_ = svc.Register(ctx, &dto.RegisterRequest{
		Name:      "김학생",
		StudentID: "20250001",
		LoginID:   "student1",
		Password:  "password123",
	})

	_, err := svc.Login(ctx, &dto.LoginRequest{LoginID: "student1", Password: "wrongpassword"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, 期望 ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{LoginID: "nobody", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, 期望 ErrInvalidCredentials", err)
	}
}

func TestLogoutWithoutRedis(t *testing.T) {
	repos := newTestRepos()
	svc := newTestAuthService(repos)

	// Redis 未配置时登出静默降级，不报错
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("Logout 在无 Redis 时应降级成功, got %v", err)
	}
}
