package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *domain.User {
	tb.Helper()
	u := &domain.User{
		UUID:     uuid.New(),
		Name:     "Test Learner",
		Email:    email,
		UserRole: "student",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedJourney(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, xp int) *domain.DeveloperJourney {
	tb.Helper()
	j := &domain.DeveloperJourney{
		Name:         name,
		XP:           xp,
		HoursToStudy: 40,
		Difficulty:   1,
		Deadline:     30,
	}
	if err := tx.WithContext(ctx).Create(j).Error; err != nil {
		tb.Fatalf("seed journey: %v", err)
	}
	return j
}

func SeedCompletion(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, journeyID int64, studyDuration string) *domain.JourneyCompletion {
	tb.Helper()
	c := &domain.JourneyCompletion{
		UserID:        userID,
		JourneyID:     journeyID,
		StudyDuration: studyDuration,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed completion: %v", err)
	}
	return c
}

func SeedTracking(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, journeyID int64, lastViewed time.Time) *domain.JourneyTracking {
	tb.Helper()
	t := &domain.JourneyTracking{
		DeveloperID: userID,
		JourneyID:   journeyID,
		LastViewed:  lastViewed,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tracking: %v", err)
	}
	return t
}

func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, journeyID int64, rating int, note string) *domain.JourneySubmission {
	tb.Helper()
	s := &domain.JourneySubmission{
		SubmitterID: userID,
		JourneyID:   journeyID,
		Rating:      rating,
		Note:        note,
		CreatedAt:   time.Now(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return s
}

func SeedExamResult(tb testing.TB, ctx context.Context, tx *gorm.DB, userID int64, score string, isPassed int) *domain.ExamResult {
	tb.Helper()
	reg := &domain.ExamRegistration{ExamineesID: userID}
	if err := tx.WithContext(ctx).Create(reg).Error; err != nil {
		tb.Fatalf("seed exam registration: %v", err)
	}
	res := &domain.ExamResult{
		RegistrationID: reg.ID,
		Score:          score,
		IsPassed:       isPassed,
		CreatedAt:      time.Now(),
	}
	if err := tx.WithContext(ctx).Create(res).Error; err != nil {
		tb.Fatalf("seed exam result: %v", err)
	}
	return res
}

func SeedTarget(tb testing.TB, ctx context.Context, tx *gorm.DB, userID int64, targetType string, value int) *domain.LearningTarget {
	tb.Helper()
	lt := &domain.LearningTarget{
		UserID:      userID,
		TargetType:  targetType,
		TargetValue: value,
		Status:      domain.TargetStatusActive,
		StartDate:   time.Now(),
	}
	if err := tx.WithContext(ctx).Create(lt).Error; err != nil {
		tb.Fatalf("seed target: %v", err)
	}
	return lt
}

func SeedInsight(tb testing.TB, ctx context.Context, tx *gorm.DB, userID int64, style string, confidence float64) *domain.LearnerInsight {
	tb.Helper()
	li := &domain.LearnerInsight{
		UserID:               userID,
		LearningStyle:        style,
		PredictionConfidence: confidence,
		MotivationQuote:      "Keep going.",
		Suggestions:          domain.EncodeSuggestions([]string{"Review one module today."}),
		GeneratedAt:          time.Now(),
	}
	if err := tx.WithContext(ctx).Create(li).Error; err != nil {
		tb.Fatalf("seed insight: %v", err)
	}
	return li
}
