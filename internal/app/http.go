package app

import (
	httpserver "github.com/goodakun/smartlearn-backend/internal/http"
	httpH "github.com/goodakun/smartlearn-backend/internal/http/handlers"
	httpMW "github.com/goodakun/smartlearn-backend/internal/http/middleware"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Dashboard *httpH.DashboardHandler
	Target    *httpH.TargetHandler
	Insight   *httpH.InsightHandler
	Email     *httpH.EmailHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(serviceset.Auth),
		Dashboard: httpH.NewDashboardHandler(serviceset.Dashboard, serviceset.Target),
		Target:    httpH.NewTargetHandler(serviceset.Target),
		Insight:   httpH.NewInsightHandler(serviceset.Insight),
		Email:     httpH.NewEmailHandler(serviceset.Email),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, clients.Supabase, serviceset.Resolver),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middleware Middleware) *httpserver.Server {
	return httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		MaintenanceKey: cfg.MaintenanceKey,

		AuthMiddleware: middleware.Auth,

		HealthHandler:    handlerset.Health,
		AuthHandler:      handlerset.Auth,
		DashboardHandler: handlerset.Dashboard,
		TargetHandler:    handlerset.Target,
		InsightHandler:   handlerset.Insight,
		EmailHandler:     handlerset.Email,
	})
}
