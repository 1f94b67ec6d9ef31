package ml

import (
	"context"

	"github.com/goodakun/smartlearn-backend/internal/features"
	"github.com/goodakun/smartlearn-backend/internal/platform/inference"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

// FallbackConfidence is reported whenever the rule-based path decides the
// label. 0.85 rather than 0.5: the rules encode curated domain thresholds,
// not a coin flip, and the frontend surfaces low confidence as a warning.
const FallbackConfidence = 0.85

type Source string

const (
	SourceModel Source = "model"
	SourceRules Source = "rules"
)

// Outcome is a tagged classification result. Source records which strategy
// produced the label so callers never have to infer it from the confidence.
type Outcome struct {
	Source     Source
	ClassIndex int
	Label      Label
	Confidence float64
}

type Adapter interface {
	Classify(ctx context.Context, feats features.Features) (Outcome, error)
}

type adapter struct {
	classifier inference.Classifier
	catalog    *Catalog
	log        *logger.Logger
}

// NewAdapter wires the external classifier with the rule-based fallback.
// classifier may be nil when inference is not configured; every request
// then takes the rules path.
func NewAdapter(classifier inference.Classifier, catalog *Catalog, baseLog *logger.Logger) Adapter {
	return &adapter{
		classifier: classifier,
		catalog:    catalog,
		log:        baseLog.With("service", "ClassifierAdapter"),
	}
}

func (a *adapter) Classify(ctx context.Context, feats features.Features) (Outcome, error) {
	normalized, err := Normalize(feats.Vector(), a.catalog.Calibration)
	if err != nil {
		return Outcome{}, err
	}

	if a.classifier == nil {
		return a.ruleOutcome(feats)
	}

	dist, err := a.classifier.Predict(ctx, normalized)
	if err != nil {
		a.log.Warn("model inference failed, using rule fallback", "error", err)
		return a.ruleOutcome(feats)
	}
	if len(dist) != numClasses {
		a.log.Warn("model returned unexpected distribution shape, using rule fallback", "classes", len(dist))
		return a.ruleOutcome(feats)
	}

	index, confidence := argmax(dist)

	// A "Struggling" verdict against a high average score is treated as a
	// model error, not a borderline call. Only this direction is corrected;
	// widening the override is a product decision, not a code one.
	if index == ClassStrugglingLearner && feats.AvgExamScore > 75 {
		a.log.Info("consistency override engaged",
			"model_index", index,
			"avg_exam_score", feats.AvgExamScore,
		)
		return a.ruleOutcome(feats)
	}

	label, err := a.catalog.LabelAt(index)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Source:     SourceModel,
		ClassIndex: index,
		Label:      label,
		Confidence: confidence,
	}, nil
}

func (a *adapter) ruleOutcome(feats features.Features) (Outcome, error) {
	index := RuleClassify(feats)
	label, err := a.catalog.LabelAt(index)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Source:     SourceRules,
		ClassIndex: index,
		Label:      label,
		Confidence: FallbackConfidence,
	}, nil
}

func argmax(dist []float64) (int, float64) {
	best := 0
	for i := 1; i < len(dist); i++ {
		if dist[i] > dist[best] {
			best = i
		}
	}
	return best, dist[best]
}
