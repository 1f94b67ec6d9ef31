package app

import (
	"fmt"

	"github.com/goodakun/smartlearn-backend/internal/features"
	"github.com/goodakun/smartlearn-backend/internal/ml"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type Services struct {
	Resolver  services.UserResolver
	Auth      services.AuthService
	Extractor features.Extractor
	Adapter   ml.Adapter
	Insight   services.InsightService
	Dashboard services.DashboardService
	Target    services.TargetService
	Email     services.EmailService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	catalog, err := ml.LoadCatalog()
	if err != nil {
		return Services{}, fmt.Errorf("load classifier catalog: %w", err)
	}

	resolver := services.NewUserResolver(reposet.User, log)
	extractor := features.NewExtractor(reposet.Completion, reposet.Tracking, reposet.Exam, log)
	adapter := ml.NewAdapter(clients.Inference, catalog, log)

	return Services{
		Resolver:  resolver,
		Auth:      services.NewAuthService(clients.Supabase, reposet.User, resolver, log),
		Extractor: extractor,
		Adapter:   adapter,
		Insight:   services.NewInsightService(extractor, adapter, reposet.Insight, log),
		Dashboard: services.NewDashboardService(
			resolver,
			reposet.Completion,
			reposet.Tracking,
			reposet.Submission,
			reposet.Exam,
			reposet.Target,
			reposet.Insight,
			log,
		),
		Target: services.NewTargetService(resolver, reposet.Target, log),
		Email: services.NewEmailService(
			services.EmailConfig{
				TargetEmails: cfg.EmailTargets,
				DashboardURL: cfg.DashboardURL,
			},
			reposet.User,
			reposet.Insight,
			clients.Resend,
			log,
		),
	}, nil
}
