package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-space/backend/config"
	"edu-space/backend/internal/api/handler"
	"edu-space/backend/internal/api/middleware"
	"edu-space/backend/internal/model"
	"edu-space/backend/pkg/jwt"
)

// Setup 初始化并返回 Gin 路由引擎
// limitStore 可为 nil，此时登录限流退化为进程内令牌桶
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	limitStore middleware.RateLimitStore,
	mediaRoot string,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── 上传文件 ──
	if mediaRoot != "" {
		r.Static(cfg.Storage.URLPrefix, mediaRoot)
	}

	api := r.Group("/api")
	api.Use(middleware.OptionalJWT(jwtMgr))
	{
		// 认证模块
		auth := api.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(limitStore, cfg.Feature.LoginRateLimit, cfg.Feature.LoginRateWindow),
				h.Auth.Login)
			auth.POST("/login/refresh", h.Auth.Refresh)
			auth.POST("/logout", middleware.RequireAuth(), h.Auth.Logout)
			auth.POST("/register", h.Auth.Register)

			// 个人资料（仅本人，Service 层鉴权）
			auth.GET("/profile/:id", h.User.GetProfile)
			auth.PUT("/profile/:id", h.User.ReplaceProfile)
			auth.PATCH("/profile/:id", h.User.PatchProfile)
		}

		// 用户模块
		api.PUT("/users/:id/role", middleware.RoleAuth(model.RoleAdmin), h.User.AssignRole)

		// 分类 / 课程 / 课时
		category := api.Group("/category")
		{
			category.GET("", h.Category.List)
			category.POST("", h.Category.Create)
			category.GET("/:id", h.Category.Get)
			category.PUT("/:id", h.Category.Replace)
			category.PATCH("/:id", h.Category.Patch)
			category.DELETE("/:id", h.Category.Delete)
		}

		course := api.Group("/course")
		{
			course.GET("", h.Course.List)
			course.POST("", h.Course.Create)
			course.GET("/:id", h.Course.Get)
			course.PUT("/:id", h.Course.Replace)
			course.PATCH("/:id", h.Course.Patch)
			course.DELETE("/:id", h.Course.Delete)
		}

		// 课时及其子资源共用 :lesson_id 路径参数
		lesson := api.Group("/lesson")
		{
			lesson.GET("", h.Lesson.List)
			lesson.POST("", h.Lesson.Create)
			lesson.GET("/:lesson_id", h.Lesson.Get)
			lesson.PUT("/:lesson_id", h.Lesson.Replace)
			lesson.PATCH("/:lesson_id", h.Lesson.Patch)
			lesson.DELETE("/:lesson_id", h.Lesson.Delete)

			registerAttachment(lesson.Group("/:lesson_id/video"), h.Video)
			registerAttachment(lesson.Group("/:lesson_id/file"), h.File)

			lesson.GET("/:lesson_id/comment", h.Comment.List)
			lesson.POST("/:lesson_id/comment", h.Comment.Create)
			lesson.GET("/:lesson_id/rating", h.Rating.List)
			lesson.POST("/:lesson_id/rating", h.Rating.Rate)
		}

		// 公告群发
		api.POST("/send-mail", h.Broadcast.SendMail)
		api.POST("/v1/send-mail", middleware.APIVersion("v1"), h.Broadcast.SendMail)

		// 导出模块
		export := api.Group("/export", middleware.RoleAuth(model.RoleAdmin))
		{
			export.GET("/users", h.Export.ExportUsers)
			export.GET("/course/:id/ratings", h.Export.ExportCourseRatings)
		}
	}

	return r
}

func registerAttachment(g *gin.RouterGroup, h *handler.AttachmentHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
}
