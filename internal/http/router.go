package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/goodakun/smartlearn-backend/internal/http/handlers"
	httpMW "github.com/goodakun/smartlearn-backend/internal/http/middleware"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	MaintenanceKey string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	DashboardHandler *httpH.DashboardHandler
	TargetHandler    *httpH.TargetHandler
	InsightHandler   *httpH.InsightHandler
	EmailHandler     *httpH.EmailHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Welcome)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
		// Operational endpoint, guarded by the maintenance key rather than
		// user auth so a scheduler can call it.
		if cfg.EmailHandler != nil {
			api.POST("/email/weekly", httpMW.RequireMaintenanceKey(cfg.MaintenanceKey), cfg.EmailHandler.SendWeekly)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Dashboard tolerates guests (serves defaults); everything else
		// requires a resolved profile row.
		if cfg.DashboardHandler != nil {
			protected.GET("/dashboard", cfg.DashboardHandler.GetDashboard)
			protected.POST("/dashboard/target", cfg.DashboardHandler.SetLearningTarget)
		}

		var requireUser gin.HandlerFunc
		if cfg.AuthMiddleware != nil {
			requireUser = cfg.AuthMiddleware.RequireUser()
		} else {
			requireUser = func(c *gin.Context) { c.Next() }
		}

		if cfg.TargetHandler != nil {
			protected.POST("/target", requireUser, cfg.TargetHandler.SetTarget)
		}

		if cfg.InsightHandler != nil {
			protected.POST("/insight", requireUser, cfg.InsightHandler.Save)
			protected.POST("/insight/predict", requireUser, cfg.InsightHandler.Predict)
		}
	}

	return r
}
