package ml

import "github.com/goodakun/smartlearn-backend/internal/features"

// Class indices, matching the model's output order and the catalog.
const (
	ClassFastLearner       = 0
	ClassConsistentLearner = 1
	ClassHighAchiever      = 2
	ClassStrugglingLearner = 3
)

// RuleClassify is the deterministic fallback classifier. Rules are
// evaluated in strict priority order and the first match wins; the order is
// load-bearing. Poor performance outranks engagement: a user with score 50
// and 10 login days classifies as Struggling, not Consistent.
func RuleClassify(f features.Features) int {
	switch {
	case f.AvgExamScore >= 85 && f.FailedExams <= 1:
		return ClassHighAchiever
	case f.AvgCompletionTime < 45 && f.AvgExamScore >= 70:
		return ClassFastLearner
	case f.FailedExams > 2 || f.AvgExamScore < 60:
		return ClassStrugglingLearner
	case f.LoginFrequency >= 5 || f.TotalModulesRead >= 20:
		return ClassConsistentLearner
	default:
		// Sparse data reads as routine engagement rather than failure.
		return ClassConsistentLearner
	}
}
