package services

import (
	"context"
	"testing"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/data/repos/testutil"
	"github.com/goodakun/smartlearn-backend/internal/features"
	"github.com/goodakun/smartlearn-backend/internal/ml"
)

func newInsightForTest(tb testing.TB) (InsightService, context.Context, int64, func(tb testing.TB)) {
	tb.Helper()
	db := testutil.DB(tb)
	log := testutil.Logger(tb)
	ctx := context.Background()

	user := testutil.SeedUser(tb, ctx, db, "insightsvc@example.com")
	cleanupUserRows(tb, db, user.ID)

	catalog, err := ml.LoadCatalog()
	if err != nil {
		tb.Fatalf("LoadCatalog: %v", err)
	}
	extractor := features.NewExtractor(
		repos.NewCompletionRepo(db, log),
		repos.NewTrackingRepo(db, log),
		repos.NewExamRepo(db, log),
		log,
	)
	svc := NewInsightService(extractor, ml.NewAdapter(nil, catalog, log), repos.NewInsightRepo(db, log), log)

	return svc, ctx, user.ID, func(tb testing.TB) {
		testutil.SeedExamResult(tb, ctx, db, user.ID, "90", 1)
		testutil.SeedExamResult(tb, ctx, db, user.ID, "85%", 1)
	}
}

func TestPredictStoresRuleInsight(t *testing.T) {
	svc, ctx, userID, seedExams := newInsightForTest(t)
	seedExams(t)

	result, err := svc.Predict(ctx, userID)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	// No classifier wired, so the rule path decides: avg 87.5 with zero
	// failures is a High Achiever.
	if result.Outcome.Source != ml.SourceRules {
		t.Fatalf("Source = %q, want rules", result.Outcome.Source)
	}
	if result.Outcome.Label.Name != "High Achiever" {
		t.Fatalf("Label = %q, want High Achiever", result.Outcome.Label.Name)
	}
	if result.Features.AvgExamScore != 87.5 {
		t.Fatalf("AvgExamScore = %v, want 87.5", result.Features.AvgExamScore)
	}

	stored, err := svc.GetLatest(ctx, userID)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if stored == nil || stored.LearningStyle != "High Achiever" {
		t.Fatalf("stored insight = %+v", stored)
	}
	if stored.PredictionConfidence != ml.FallbackConfidence {
		t.Fatalf("PredictionConfidence = %v, want %v", stored.PredictionConfidence, ml.FallbackConfidence)
	}
	if got := stored.SuggestionList(); len(got) != 3 {
		t.Fatalf("SuggestionList has %d entries, want 3 from the catalog", len(got))
	}
}

func TestSaveClientInsight(t *testing.T) {
	svc, ctx, userID, _ := newInsightForTest(t)

	if _, err := svc.SaveClientInsight(ctx, userID, ClientInsight{PredictionConfidence: 0.5}); err == nil {
		t.Fatalf("missing learning_style accepted")
	}
	if _, err := svc.SaveClientInsight(ctx, userID, ClientInsight{LearningStyle: "Fast Learner", PredictionConfidence: 1.2}); err == nil {
		t.Fatalf("out-of-range confidence accepted")
	}

	saved, err := svc.SaveClientInsight(ctx, userID, ClientInsight{
		LearningStyle:        "Ambitious Fast Learner",
		PredictionConfidence: 0.77,
		Motivation:           "Keep pushing forward.",
		Suggestions:          []string{"Try a harder course."},
	})
	if err != nil {
		t.Fatalf("SaveClientInsight: %v", err)
	}
	if saved.LearningStyle != "Ambitious Fast Learner" {
		t.Fatalf("LearningStyle = %q", saved.LearningStyle)
	}

	latest, err := svc.GetLatest(ctx, userID)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil || latest.PredictionConfidence != 0.77 {
		t.Fatalf("latest = %+v, want the client-submitted insight", latest)
	}
}

func TestGetLatestMissingIsNil(t *testing.T) {
	svc, ctx, userID, _ := newInsightForTest(t)

	latest, err := svc.GetLatest(ctx, userID)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest != nil {
		t.Fatalf("latest = %+v, want nil for a user with no insight", latest)
	}
}
