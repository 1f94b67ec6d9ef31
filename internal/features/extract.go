package features

import (
	"context"
	"time"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

// Features is the behavioral profile the classifier consumes. All five
// values are derived from raw activity rows at prediction time; nothing
// here is cached between requests.
type Features struct {
	AvgCompletionTime float64
	TotalModulesRead  int64
	AvgExamScore      float64
	LoginFrequency    int64
	FailedExams       int64
}

// Vector returns the features in the fixed order the model was trained on.
// Reordering these breaks every downstream prediction silently.
func (f Features) Vector() []float64 {
	return []float64{
		f.AvgCompletionTime,
		float64(f.TotalModulesRead),
		f.AvgExamScore,
		float64(f.LoginFrequency),
		float64(f.FailedExams),
	}
}

type Extractor interface {
	Extract(ctx context.Context, userID int64) (Features, error)
}

type extractor struct {
	completionRepo repos.CompletionRepo
	trackingRepo   repos.TrackingRepo
	examRepo       repos.ExamRepo
	log            *logger.Logger
}

func NewExtractor(
	completionRepo repos.CompletionRepo,
	trackingRepo repos.TrackingRepo,
	examRepo repos.ExamRepo,
	baseLog *logger.Logger,
) Extractor {
	return &extractor{
		completionRepo: completionRepo,
		trackingRepo:   trackingRepo,
		examRepo:       examRepo,
		log:            baseLog.With("service", "FeatureExtractor"),
	}
}

func (e *extractor) Extract(ctx context.Context, userID int64) (Features, error) {
	completions, err := e.completionRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return Features{}, err
	}
	trackings, err := e.trackingRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return Features{}, err
	}
	examResults, err := e.examRepo.ListResultsByUser(ctx, nil, userID)
	if err != nil {
		return Features{}, err
	}

	feats := Compute(completions, trackings, examResults)
	e.log.Debug("features extracted",
		"user_id", userID,
		"avg_completion_time", feats.AvgCompletionTime,
		"total_modules_read", feats.TotalModulesRead,
		"avg_exam_score", feats.AvgExamScore,
		"login_frequency", feats.LoginFrequency,
		"failed_exams", feats.FailedExams,
	)
	return feats, nil
}

// Compute derives the feature profile from already-fetched activity rows.
// The dashboard aggregator calls this directly because it needs the raw
// rows for display anyway; the extractor wraps it with its own fetches.
func Compute(
	completions []*domain.JourneyCompletion,
	trackings []*domain.JourneyTracking,
	examResults []*domain.ExamResult,
) Features {
	return Features{
		AvgCompletionTime: avgCompletionTime(completions),
		TotalModulesRead:  int64(len(trackings)),
		AvgExamScore:      avgExamScore(examResults),
		LoginFrequency:    loginFrequency(trackings),
		FailedExams:       failedExams(examResults),
	}
}

func avgCompletionTime(completions []*domain.JourneyCompletion) float64 {
	if len(completions) == 0 {
		return 0
	}
	var sum float64
	for _, c := range completions {
		sum += CoerceDigits(c.StudyDuration)
	}
	return sum / float64(len(completions))
}

func avgExamScore(results []*domain.ExamResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += CoerceDigits(r.Score)
	}
	return sum / float64(len(results))
}

// loginFrequency counts distinct local calendar dates with at least one
// module view. The floor of 1 is deliberate: a user with zero activity
// still reports one login day, matching how the historical data was scored.
func loginFrequency(trackings []*domain.JourneyTracking) int64 {
	days := make(map[string]struct{}, len(trackings))
	for _, t := range trackings {
		days[t.LastViewed.In(time.Local).Format("2006-01-02")] = struct{}{}
	}
	if len(days) == 0 {
		return 1
	}
	return int64(len(days))
}

func failedExams(results []*domain.ExamResult) int64 {
	var count int64
	for _, r := range results {
		if r.IsPassed == 0 {
			count++
		}
	}
	return count
}
