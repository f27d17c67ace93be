package router

import (
	"kbox/internal/database"
	"kbox/internal/handlers"
	"kbox/internal/middleware"
	"kbox/internal/models"
	"kbox/internal/services"
	"kbox/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册自定义校验器
	registerValidators()

	// 注册路由
	registerRoutes(router)
	return router
}

// registerValidators 注册请求绑定的自定义校验器
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("subdomain", func(fl validator.FieldLevel) bool {
			return services.IsValidSubdomain(fl.Field().String())
		})
	}
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {

	tenantService := services.NewTenantService()
	tenantMW := middleware.NewTenantMiddleware(tenantService)
	adminMW := middleware.NewAdminAuthMiddleware()

	api := router.Group("/api")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 平台管理端（JWT认证，不走租户解析）
		adminAuthHandler := handlers.NewAdminAuthHandler(services.NewAdminUserService())
		adminTenantHandler := handlers.NewAdminTenantHandler(tenantService)
		admin := api.Group("/admin")
		{
			admin.POST("/login", adminAuthHandler.Login)

			tenants := admin.Group("/tenants", adminMW.RequireAdmin())
			{
				tenants.POST("", adminTenantHandler.Create)
				tenants.GET("", adminTenantHandler.GetAll)
				tenants.GET("/stats", adminTenantHandler.GetStats)
				tenants.GET("/:id", adminTenantHandler.GetByID)
				tenants.PUT("/:id", adminTenantHandler.Update)
				tenants.DELETE("/:id", adminTenantHandler.Delete)
				tenants.POST("/:id/activate", adminTenantHandler.Activate)
				tenants.POST("/:id/deactivate", adminTenantHandler.Deactivate)
				tenants.POST("/:id/suspend", adminTenantHandler.Suspend)
			}
		}

		// 租户接口：租户一律由Host头解析
		scoped := api.Group("", tenantMW.ResolveTenant())
		{
			tenantHandler := handlers.NewTenantHandler(tenantService)
			scoped.GET("/tenant", tenantHandler.GetProfile)
			scoped.PUT("/tenant", tenantHandler.UpdateProfile)

			roomHandler := handlers.NewRoomHandler(services.NewRoomService())
			scoped.GET("/rooms", roomHandler.List)
			scoped.POST("/rooms", roomHandler.Create)
			scoped.PUT("/rooms/:id", roomHandler.Update)
			scoped.DELETE("/rooms/:id", roomHandler.Delete)

			bookingHandler := handlers.NewBookingHandler(services.NewBookingService())
			scoped.GET("/bookings", bookingHandler.List)
			scoped.POST("/bookings", bookingHandler.Create)
			scoped.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)
			scoped.DELETE("/bookings/:id", bookingHandler.Cancel)

			businessHourHandler := handlers.NewBusinessHourHandler(services.NewBusinessHourService())
			scoped.GET("/business-hours", businessHourHandler.List)
			scoped.PUT("/business-hours", businessHourHandler.Update)

			// K/V配置：basic及以上套餐可写
			settingHandler := handlers.NewSettingHandler(services.NewSettingService())
			scoped.GET("/settings", settingHandler.List)
			scoped.PUT("/settings/:key", tenantMW.RequirePlan(models.PlanBasic), settingHandler.Upsert)

			// 审计日志：pro及以上套餐
			auditHandler := handlers.NewAuditHandler(services.NewAuditService())
			scoped.GET("/audit-logs", tenantMW.RequirePlan(models.PlanPro), auditHandler.List)

			// 仪表盘实时预订流：pro及以上套餐
			eventsHandler := handlers.NewEventsHandler()
			scoped.GET("/events", tenantMW.RequirePlan(models.PlanPro), eventsHandler.Stream)
		}
	}
}

// healthCheck 健康检查：数据库和Redis连通性
func healthCheck(c *gin.Context) {
	status := gin.H{"status": "ok"}

	if db := database.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
			status["status"] = "degraded"
			status["database"] = "down"
		} else {
			status["database"] = "up"
		}
	}

	if err := database.GetCache().Ping(); err != nil {
		status["status"] = "degraded"
		status["redis"] = "down"
	} else {
		status["redis"] = "up"
	}

	response.Success(c, status)
}

// ping 存活探针
func ping(c *gin.Context) {
	response.Success(c, gin.H{"message": "pong"})
}
