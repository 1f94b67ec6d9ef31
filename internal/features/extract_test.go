package features

import (
	"testing"
	"time"

	"github.com/goodakun/smartlearn-backend/internal/domain"
)

func tracking(at time.Time) *domain.JourneyTracking {
	return &domain.JourneyTracking{LastViewed: at}
}

func TestComputeEmptyInputs(t *testing.T) {
	feats := Compute(nil, nil, nil)

	if feats.AvgCompletionTime != 0 {
		t.Fatalf("AvgCompletionTime = %v, want 0", feats.AvgCompletionTime)
	}
	if feats.TotalModulesRead != 0 {
		t.Fatalf("TotalModulesRead = %d, want 0", feats.TotalModulesRead)
	}
	if feats.AvgExamScore != 0 {
		t.Fatalf("AvgExamScore = %v, want 0", feats.AvgExamScore)
	}
	if feats.LoginFrequency != 1 {
		t.Fatalf("LoginFrequency = %d, want floor of 1", feats.LoginFrequency)
	}
	if feats.FailedExams != 0 {
		t.Fatalf("FailedExams = %d, want 0", feats.FailedExams)
	}
}

func TestComputeAverages(t *testing.T) {
	completions := []*domain.JourneyCompletion{
		{StudyDuration: "30"},
		{StudyDuration: "90 menit"},
		{StudyDuration: "N/A"},
	}
	examResults := []*domain.ExamResult{
		{Score: "80", IsPassed: 1},
		{Score: "60%", IsPassed: 0},
		{Score: "", IsPassed: 0},
	}

	feats := Compute(completions, nil, examResults)

	if feats.AvgCompletionTime != 40 {
		t.Fatalf("AvgCompletionTime = %v, want 40", feats.AvgCompletionTime)
	}
	want := (80.0 + 60.0 + 0.0) / 3.0
	if feats.AvgExamScore != want {
		t.Fatalf("AvgExamScore = %v, want %v", feats.AvgExamScore, want)
	}
	if feats.FailedExams != 2 {
		t.Fatalf("FailedExams = %d, want 2", feats.FailedExams)
	}
}

func TestLoginFrequencyDistinctDates(t *testing.T) {
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)
	trackings := []*domain.JourneyTracking{
		tracking(day),
		tracking(day.Add(4 * time.Hour)),
		tracking(day.AddDate(0, 0, 1)),
		tracking(day.AddDate(0, 0, 1).Add(10 * time.Hour)),
		tracking(day.AddDate(0, 0, 5)),
	}

	feats := Compute(nil, trackings, nil)

	if feats.LoginFrequency != 3 {
		t.Fatalf("LoginFrequency = %d, want 3 distinct dates", feats.LoginFrequency)
	}
	if feats.TotalModulesRead != 5 {
		t.Fatalf("TotalModulesRead = %d, want 5", feats.TotalModulesRead)
	}
}

func TestVectorOrder(t *testing.T) {
	feats := Features{
		AvgCompletionTime: 42.5,
		TotalModulesRead:  7,
		AvgExamScore:      88,
		LoginFrequency:    3,
		FailedExams:       1,
	}
	vec := feats.Vector()
	want := []float64{42.5, 7, 88, 3, 1}
	if len(vec) != len(want) {
		t.Fatalf("Vector length = %d, want %d", len(vec), len(want))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Fatalf("Vector[%d] = %v, want %v", i, vec[i], want[i])
		}
	}
}
