package app

import (
	"github.com/goodakun/smartlearn-backend/internal/platform/envutil"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	// MaintenanceKey guards the batch email endpoint; empty disables it.
	MaintenanceKey string
	EmailTargets   []string
	DashboardURL   string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		ServiceName:    envutil.String("SERVICE_NAME", "smartlearn-api"),
		Environment:    envutil.String("ENVIRONMENT", "development"),
		Version:        envutil.String("SERVICE_VERSION", "dev"),
		MaintenanceKey: envutil.String("MAINTENANCE_KEY", ""),
		EmailTargets:   envutil.List("EMAIL_TARGETS", nil),
		DashboardURL:   envutil.String("DASHBOARD_URL", "https://smartlearn-frontend.vercel.app"),
	}
	if cfg.MaintenanceKey == "" {
		log.Warn("MAINTENANCE_KEY not set; maintenance endpoints are disabled")
	}
	return cfg
}
