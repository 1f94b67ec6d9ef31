package app

import (
	"errors"
	"fmt"

	"github.com/goodakun/smartlearn-backend/internal/platform/inference"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
	"github.com/goodakun/smartlearn-backend/internal/platform/resend"
	"github.com/goodakun/smartlearn-backend/internal/platform/supabase"
)

type Clients struct {
	Supabase supabase.Client
	Resend   resend.Client
	// Inference stays nil when INFERENCE_BASE_URL is unset; the classifier
	// adapter then runs rules-only.
	Inference inference.Classifier
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	sb, err := supabase.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init supabase client: %w", err)
	}

	var sender resend.Client
	sender, err = resend.NewFromEnv(log)
	if err != nil {
		log.Warn("Resend client unavailable; email endpoints will fail", "error", err)
		sender = nil
	}

	var classifier inference.Classifier
	infClient, err := inference.NewFromEnv()
	switch {
	case err == nil:
		classifier = infClient
	case errors.Is(err, inference.ErrNotConfigured):
		log.Info("inference backend not configured; using rule-based classification only")
	default:
		return Clients{}, fmt.Errorf("init inference client: %w", err)
	}

	return Clients{
		Supabase:  sb,
		Resend:    sender,
		Inference: classifier,
	}, nil
}
