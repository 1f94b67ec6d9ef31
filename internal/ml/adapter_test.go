package ml

import (
	"context"
	"errors"
	"testing"

	"github.com/goodakun/smartlearn-backend/internal/features"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type fakeClassifier struct {
	dist []float64
	err  error
}

func (f *fakeClassifier) Predict(ctx context.Context, vec []float64) ([]float64, error) {
	return f.dist, f.err
}

func testAdapter(t *testing.T, classifier *fakeClassifier) Adapter {
	t.Helper()
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	if classifier == nil {
		return NewAdapter(nil, catalog, log)
	}
	return NewAdapter(classifier, catalog, log)
}

func TestClassifyModelSuccess(t *testing.T) {
	adapter := testAdapter(t, &fakeClassifier{dist: []float64{0.1, 0.2, 0.6, 0.1}})

	outcome, err := adapter.Classify(context.Background(), features.Features{AvgExamScore: 70})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if outcome.Source != SourceModel {
		t.Fatalf("Source = %q, want model", outcome.Source)
	}
	if outcome.ClassIndex != ClassHighAchiever {
		t.Fatalf("ClassIndex = %d, want argmax %d", outcome.ClassIndex, ClassHighAchiever)
	}
	if outcome.Confidence != 0.6 {
		t.Fatalf("Confidence = %v, want max probability 0.6", outcome.Confidence)
	}
	if outcome.Label.Name != "High Achiever" {
		t.Fatalf("Label = %q, want High Achiever", outcome.Label.Name)
	}
}

func TestClassifyModelErrorFallsBackToRules(t *testing.T) {
	adapter := testAdapter(t, &fakeClassifier{err: errors.New("connection refused")})
	feats := features.Features{AvgExamScore: 90, FailedExams: 0}

	outcome, err := adapter.Classify(context.Background(), feats)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if outcome.Source != SourceRules {
		t.Fatalf("Source = %q, want rules", outcome.Source)
	}
	if outcome.ClassIndex != ClassHighAchiever {
		t.Fatalf("ClassIndex = %d, want rule result %d", outcome.ClassIndex, ClassHighAchiever)
	}
	if outcome.Confidence != FallbackConfidence {
		t.Fatalf("Confidence = %v, want fixed %v", outcome.Confidence, FallbackConfidence)
	}
}

func TestClassifyShapeMismatchFallsBackToRules(t *testing.T) {
	adapter := testAdapter(t, &fakeClassifier{dist: []float64{0.5, 0.5}})

	outcome, err := adapter.Classify(context.Background(), features.Features{AvgExamScore: 65, LoginFrequency: 6})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if outcome.Source != SourceRules {
		t.Fatalf("Source = %q, want rules on shape mismatch", outcome.Source)
	}
	if outcome.ClassIndex != ClassConsistentLearner {
		t.Fatalf("ClassIndex = %d, want %d", outcome.ClassIndex, ClassConsistentLearner)
	}
}

func TestClassifyNilClassifierUsesRules(t *testing.T) {
	adapter := testAdapter(t, nil)

	outcome, err := adapter.Classify(context.Background(), features.Features{AvgExamScore: 50, FailedExams: 3})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if outcome.Source != SourceRules {
		t.Fatalf("Source = %q, want rules", outcome.Source)
	}
	if outcome.Label.Name != "Struggling Learner" {
		t.Fatalf("Label = %q, want Struggling Learner", outcome.Label.Name)
	}
}

func TestConsistencyOverride(t *testing.T) {
	// Model confidently says Struggling while the observed average is
	// strong; the result must come from the rules instead.
	adapter := testAdapter(t, &fakeClassifier{dist: []float64{0.05, 0.05, 0.1, 0.8}})
	feats := features.Features{AvgExamScore: 80, FailedExams: 0, AvgCompletionTime: 30}

	outcome, err := adapter.Classify(context.Background(), feats)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if outcome.Source != SourceRules {
		t.Fatalf("Source = %q, want rules after override", outcome.Source)
	}
	if outcome.ClassIndex == ClassStrugglingLearner {
		t.Fatalf("override failed: label is still Struggling")
	}
	if outcome.Confidence != FallbackConfidence {
		t.Fatalf("Confidence = %v, want %v", outcome.Confidence, FallbackConfidence)
	}
}

func TestNoOverrideWhenScoreLow(t *testing.T) {
	adapter := testAdapter(t, &fakeClassifier{dist: []float64{0.05, 0.05, 0.1, 0.8}})
	feats := features.Features{AvgExamScore: 40, FailedExams: 4}

	outcome, err := adapter.Classify(context.Background(), feats)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if outcome.Source != SourceModel {
		t.Fatalf("Source = %q, want model when override should not fire", outcome.Source)
	}
	if outcome.ClassIndex != ClassStrugglingLearner {
		t.Fatalf("ClassIndex = %d, want %d", outcome.ClassIndex, ClassStrugglingLearner)
	}
}
