package repos

import (
	"context"
	"testing"
	"time"

	"github.com/goodakun/smartlearn-backend/internal/data/repos/testutil"
	"github.com/goodakun/smartlearn-backend/internal/domain"
)

func TestInsightRepoUpsertKeepsOneRowPerUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "insight@example.com")
	repo := NewInsightRepo(db, testutil.Logger(t))

	first := &domain.LearnerInsight{
		UserID:               user.ID,
		LearningStyle:        "Consistent Learner",
		PredictionConfidence: 0.85,
		MotivationQuote:      "Keep your streak alive.",
		Suggestions:          domain.EncodeSuggestions([]string{"Review a module today."}),
		GeneratedAt:          time.Now().Add(-time.Hour),
	}
	if err := repo.Upsert(ctx, tx, first); err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}

	second := &domain.LearnerInsight{
		UserID:               user.ID,
		LearningStyle:        "High Achiever",
		PredictionConfidence: 0.92,
		MotivationQuote:      "Challenge yourself with harder material.",
		Suggestions:          domain.EncodeSuggestions([]string{"Take the next certification exam."}),
		GeneratedAt:          time.Now(),
	}
	if err := repo.Upsert(ctx, tx, second); err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}

	var count int64
	if err := tx.Model(&domain.LearnerInsight{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 current insight row, got %d", count)
	}

	latest, err := repo.GetLatestByUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetLatestByUser: %v", err)
	}
	if latest.LearningStyle != "High Achiever" {
		t.Fatalf("LearningStyle = %q, want second write to win", latest.LearningStyle)
	}
	if latest.PredictionConfidence != 0.92 {
		t.Fatalf("PredictionConfidence = %v, want 0.92", latest.PredictionConfidence)
	}
	if got := latest.SuggestionList(); len(got) != 1 || got[0] != "Take the next certification exam." {
		t.Fatalf("SuggestionList = %v, want second write's suggestions", got)
	}
}

func TestTargetRepoUpsertByUserAndType(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, "target@example.com")
	repo := NewTargetRepo(db, testutil.Logger(t))

	if err := repo.Upsert(ctx, tx, &domain.LearningTarget{
		UserID:      user.ID,
		TargetType:  domain.TargetTypeStudyDuration,
		TargetValue: 60,
		Status:      domain.TargetStatusActive,
		StartDate:   time.Now().Add(-24 * time.Hour),
	}); err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}

	if err := repo.Upsert(ctx, tx, &domain.LearningTarget{
		UserID:      user.ID,
		TargetType:  domain.TargetTypeStudyDuration,
		TargetValue: 120,
		Status:      domain.TargetStatusActive,
		StartDate:   time.Now(),
	}); err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}

	// A different type is its own row, not an update of the first.
	if err := repo.Upsert(ctx, tx, &domain.LearningTarget{
		UserID:      user.ID,
		TargetType:  domain.TargetTypeModuleCount,
		TargetValue: 10,
		Status:      domain.TargetStatusActive,
		StartDate:   time.Now(),
	}); err != nil {
		t.Fatalf("Upsert (other type): %v", err)
	}

	var count int64
	if err := tx.Model(&domain.LearningTarget{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows (one per type), got %d", count)
	}

	byType, err := repo.GetByUserAndType(ctx, tx, user.ID, domain.TargetTypeStudyDuration)
	if err != nil {
		t.Fatalf("GetByUserAndType: %v", err)
	}
	if byType.TargetValue != 120 {
		t.Fatalf("TargetValue = %d, want updated 120", byType.TargetValue)
	}

	active, err := repo.GetActiveByUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetActiveByUser: %v", err)
	}
	if active.Status != domain.TargetStatusActive {
		t.Fatalf("Status = %q, want active", active.Status)
	}
}
