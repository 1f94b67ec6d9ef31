package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/features"
	"github.com/goodakun/smartlearn-backend/internal/ml"
	"github.com/goodakun/smartlearn-backend/internal/platform/apierr"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

// ClientInsight is a classification computed on the frontend and submitted
// for storage as-is.
type ClientInsight struct {
	LearningStyle        string
	PredictionConfidence float64
	Motivation           string
	Suggestions          []string
}

// PredictionResult is the outcome of a full server-side classification run.
type PredictionResult struct {
	Outcome  ml.Outcome
	Features features.Features
	Insight  *domain.LearnerInsight
}

type InsightService interface {
	Predict(ctx context.Context, userID int64) (*PredictionResult, error)
	SaveClientInsight(ctx context.Context, userID int64, input ClientInsight) (*domain.LearnerInsight, error)
	GetLatest(ctx context.Context, userID int64) (*domain.LearnerInsight, error)
}

type insightService struct {
	extractor   features.Extractor
	adapter     ml.Adapter
	insightRepo repos.InsightRepo
	log         *logger.Logger
}

func NewInsightService(
	extractor features.Extractor,
	adapter ml.Adapter,
	insightRepo repos.InsightRepo,
	baseLog *logger.Logger,
) InsightService {
	return &insightService{
		extractor:   extractor,
		adapter:     adapter,
		insightRepo: insightRepo,
		log:         baseLog.With("service", "InsightService"),
	}
}

// Predict runs extract, classify, persist. Classification cannot fail the
// request once features are in hand: the adapter always degrades to the
// rule-based path. The model call and the write are not transactional; a
// crash in between just recomputes on the next request.
func (s *insightService) Predict(ctx context.Context, userID int64) (*PredictionResult, error) {
	feats, err := s.extractor.Extract(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("extract features: %w", err)
	}

	outcome, err := s.adapter.Classify(ctx, feats)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	insight := &domain.LearnerInsight{
		UserID:               userID,
		LearningStyle:        outcome.Label.Name,
		PredictionConfidence: outcome.Confidence,
		MotivationQuote:      outcome.Label.Motivation,
		Suggestions:          domain.EncodeSuggestions(outcome.Label.Suggestions),
		GeneratedAt:          time.Now(),
	}
	if err := s.insightRepo.Upsert(ctx, nil, insight); err != nil {
		return nil, fmt.Errorf("persist insight: %w", err)
	}

	s.log.Info("insight generated",
		"user_id", userID,
		"label", outcome.Label.Name,
		"source", string(outcome.Source),
		"confidence", outcome.Confidence,
	)
	return &PredictionResult{Outcome: outcome, Features: feats, Insight: insight}, nil
}

func (s *insightService) SaveClientInsight(ctx context.Context, userID int64, input ClientInsight) (*domain.LearnerInsight, error) {
	if input.LearningStyle == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_insight", errors.New("learning_style is required"))
	}
	if input.PredictionConfidence < 0 || input.PredictionConfidence > 1 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_insight", errors.New("prediction_confidence must be between 0 and 1"))
	}

	insight := &domain.LearnerInsight{
		UserID:               userID,
		LearningStyle:        input.LearningStyle,
		PredictionConfidence: input.PredictionConfidence,
		MotivationQuote:      input.Motivation,
		Suggestions:          domain.EncodeSuggestions(input.Suggestions),
		GeneratedAt:          time.Now(),
	}
	if err := s.insightRepo.Upsert(ctx, nil, insight); err != nil {
		return nil, fmt.Errorf("persist insight: %w", err)
	}
	return insight, nil
}

func (s *insightService) GetLatest(ctx context.Context, userID int64) (*domain.LearnerInsight, error) {
	insight, err := s.insightRepo.GetLatestByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return insight, nil
}
