package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vaidy74/Yathashakti-sub001/config"
	"github.com/Vaidy74/Yathashakti-sub001/internal/api/handler"
	"github.com/Vaidy74/Yathashakti-sub001/internal/api/middleware"
	"github.com/Vaidy74/Yathashakti-sub001/internal/model"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/jwt"
	"github.com/Vaidy74/Yathashakti-sub001/pkg/redis"
)

// 请求体上限 1MB；接口均为 JSON 表单，不含文件上传
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.RateLimit(rdb, 300, time.Minute))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			// 用户模块（仅管理员）
			users := authorized.Group("/users", middleware.RoleAuth(model.RoleAdmin))
			{
				users.POST("", h.User.Create)
				users.GET("", h.User.List)
				users.GET("/:id", h.User.GetByID)
				users.PUT("/:id", h.User.Update)
				users.DELETE("/:id", h.User.Delete)
			}

			// 受助人模块
			grantees := authorized.Group("/grantees")
			{
				grantees.POST("", h.Grantee.Create)
				grantees.GET("", h.Grantee.List)
				grantees.GET("/:id", h.Grantee.GetByID)
				grantees.PUT("/:id", h.Grantee.Update)
				grantees.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Grantee.Delete)
			}

			// 项目模块
			programs := authorized.Group("/programs")
			{
				programs.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Program.Create)
				programs.GET("", h.Program.List)
				programs.GET("/:id", h.Program.GetByID)
				programs.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Program.Update)
				programs.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Program.Delete)
			}

			// 服务机构模块
			providers := authorized.Group("/providers")
			{
				providers.POST("", h.Provider.Create)
				providers.GET("", h.Provider.List)
				providers.GET("/:id", h.Provider.GetByID)
				providers.PUT("/:id", h.Provider.Update)
				providers.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Provider.Delete)
			}

			// 资助金模块
			grants := authorized.Group("/grants")
			{
				grants.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Grant.Create)
				grants.GET("", h.Grant.List)
				grants.GET("/:id", h.Grant.GetByID)
				grants.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Grant.Update)
				grants.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Grant.Delete)
				grants.POST("/:id/generate-schedule", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Grant.GenerateSchedule)
				grants.GET("/:id/validate-schedule", h.Grant.ValidateSchedule)
				grants.GET("/:id/repayments", h.Repayment.ListByGrant)
			}

			// 还款模块
			repayments := authorized.Group("/repayments")
			{
				repayments.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Repayment.Create)
				repayments.GET("", h.Repayment.List)
				repayments.GET("/:id", h.Repayment.GetByID)
				repayments.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Repayment.Delete)
			}

			// 任务模块
			tasks := authorized.Group("/tasks")
			{
				tasks.POST("", h.Task.Create)
				tasks.GET("", h.Task.List)
				tasks.GET("/calendar", h.Task.ExportCalendar)
				tasks.GET("/:id", h.Task.GetByID)
				tasks.PUT("/:id", h.Task.Update)
				tasks.DELETE("/:id", h.Task.Delete)
			}

			// 资金台账模块
			ledger := authorized.Group("/ledger")
			{
				ledger.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Ledger.Create)
				ledger.GET("", h.Ledger.List)
				ledger.GET("/summary", h.Ledger.Summary)
				ledger.GET("/export", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Ledger.Export)
				ledger.GET("/:id", h.Ledger.GetByID)
				ledger.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Ledger.Delete)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.GET("/settings", h.Notification.GetSettings)
				notifications.PUT("/settings", h.Notification.UpdateSettings)
				notifications.POST("/read-all", h.Notification.MarkAllRead)
				notifications.POST("/:id/read", h.Notification.MarkRead)
				notifications.DELETE("/:id", h.Notification.Delete)
			}

			// 定时任务触发入口（仅管理员，供外部调度器调用）
			jobs := authorized.Group("/jobs", middleware.RoleAuth(model.RoleAdmin))
			{
				jobs.POST("/check-reminders", h.Job.CheckReminders)
				jobs.POST("/overdue-reminders", h.Job.OverdueReminders)
				jobs.POST("/repayment-reminders", h.Job.RepaymentReminders)
				jobs.POST("/cleanup", h.Job.Cleanup)
			}
		}
	}

	return r
}
