package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/data/repos/testutil"
	"github.com/goodakun/smartlearn-backend/internal/domain"
)

// The dashboard service reads through the repos' base connection, so seeds
// go to the shared test database and are removed again per test.
func newDashboardForTest(tb testing.TB, db *gorm.DB) DashboardService {
	tb.Helper()
	log := testutil.Logger(tb)
	resolver := NewUserResolver(repos.NewUserRepo(db, log), log)
	return NewDashboardService(
		resolver,
		repos.NewCompletionRepo(db, log),
		repos.NewTrackingRepo(db, log),
		repos.NewSubmissionRepo(db, log),
		repos.NewExamRepo(db, log),
		repos.NewTargetRepo(db, log),
		repos.NewInsightRepo(db, log),
		log,
	)
}

func cleanupUserRows(tb testing.TB, db *gorm.DB, userID int64) {
	tb.Helper()
	tb.Cleanup(func() {
		db.Exec("DELETE FROM developer_journey_completions WHERE user_id = ?", userID)
		db.Exec("DELETE FROM developer_journey_trackings WHERE developer_id = ?", userID)
		db.Exec("DELETE FROM developer_journey_submissions WHERE submitter_id = ?", userID)
		db.Exec("DELETE FROM exam_results WHERE registration_id IN (SELECT id FROM exam_registrations WHERE examinees_id = ?)", userID)
		db.Exec("DELETE FROM exam_registrations WHERE examinees_id = ?", userID)
		db.Exec("DELETE FROM learning_targets WHERE user_id = ?", userID)
		db.Exec("DELETE FROM user_learning_insights WHERE user_id = ?", userID)
		db.Exec("DELETE FROM users WHERE id = ?", userID)
	})
}

func TestDashboardZeroData(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, db, "zerodata@example.com")
	cleanupUserRows(t, db, user.ID)

	svc := newDashboardForTest(t, db)

	dash, err := svc.Get(ctx, Identity{Kind: IdentityInternalID, InternalID: user.ID})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if dash.User.Name != user.Name {
		t.Fatalf("User.Name = %q, want %q", dash.User.Name, user.Name)
	}
	if dash.User.XP != 0 {
		t.Fatalf("User.XP = %d, want 0", dash.User.XP)
	}
	if !strings.HasPrefix(dash.User.Avatar, "https://ui-avatars.com/api/") {
		t.Fatalf("Avatar = %q, want generated placeholder", dash.User.Avatar)
	}
	if dash.User.University != "-" || dash.User.Major != "-" || dash.User.Mentor != "-" {
		t.Fatalf("profile fields not defaulted: %+v", dash.User)
	}

	// Every feature is present even with no activity rows; login frequency
	// floors at one active day.
	mf := dash.MLFeatures
	if mf.AvgCompletionTime != 0 || mf.TotalModulesRead != 0 || mf.AvgExamScore != 0 || mf.FailedExams != 0 {
		t.Fatalf("MLFeatures not zeroed: %+v", mf)
	}
	if mf.LoginFrequency != 1 {
		t.Fatalf("LoginFrequency = %d, want floor of 1", mf.LoginFrequency)
	}

	if dash.AIInsight.Type != "Awaiting Analysis..." {
		t.Fatalf("AIInsight.Type = %q", dash.AIInsight.Type)
	}
	if dash.AIInsight.Advice != "No suggestions yet." {
		t.Fatalf("AIInsight.Advice = %q", dash.AIInsight.Advice)
	}
	if dash.LearnerProfile.Description != "Not enough activity data for a deep analysis yet." {
		t.Fatalf("LearnerProfile.Description = %q", dash.LearnerProfile.Description)
	}

	if dash.LastSubmission != nil {
		t.Fatalf("LastSubmission = %+v, want nil", dash.LastSubmission)
	}
	if dash.ActiveCourse != nil {
		t.Fatalf("ActiveCourse = %+v, want nil", dash.ActiveCourse)
	}

	lt := dash.LearningTarget
	if lt.Max != 60 || lt.Status != "No Target" || lt.Type != domain.TargetTypeStudyDuration {
		t.Fatalf("LearningTarget defaults wrong: %+v", lt)
	}
	if lt.Message != "Set a learning target to track your progress." {
		t.Fatalf("LearningTarget.Message = %q", lt.Message)
	}

	if dash.Recommendation.Reason != "A natural continuation of your current course." {
		t.Fatalf("Recommendation.Reason = %q", dash.Recommendation.Reason)
	}
	if len(dash.ExamHistory) != 0 {
		t.Fatalf("ExamHistory = %+v, want empty", dash.ExamHistory)
	}
}

func TestDashboardGuest(t *testing.T) {
	db := testutil.DB(t)
	svc := newDashboardForTest(t, db)

	dash, err := svc.Get(context.Background(), Identity{Kind: IdentityExternalUUID, AuthUUID: uuid.New()})
	if err != nil {
		t.Fatalf("Get (guest): %v", err)
	}
	if dash.User.Name != "Guest User" {
		t.Fatalf("User.Name = %q, want Guest User", dash.User.Name)
	}
	if dash.User.StudentID != "ID-???" {
		t.Fatalf("User.StudentID = %q, want ID-???", dash.User.StudentID)
	}
	if dash.MLFeatures.LoginFrequency != 1 {
		t.Fatalf("LoginFrequency = %d, want 1", dash.MLFeatures.LoginFrequency)
	}
}

func TestDashboardWithActivity(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, db, "activity@example.com")
	cleanupUserRows(t, db, user.ID)
	journey := testutil.SeedJourney(t, ctx, db, "Learning Go Fundamentals", 200)
	t.Cleanup(func() {
		db.Exec("DELETE FROM developer_journeys WHERE id = ?", journey.ID)
	})

	testutil.SeedCompletion(t, ctx, db, user.ID, journey.ID, "90")
	testutil.SeedTracking(t, ctx, db, user.ID, journey.ID, time.Now().Add(-time.Hour))
	testutil.SeedSubmission(t, ctx, db, user.ID, journey.ID, 4, "Solid work on the final project.")
	testutil.SeedExamResult(t, ctx, db, user.ID, "85", 1)
	testutil.SeedExamResult(t, ctx, db, user.ID, "40", 0)
	testutil.SeedTarget(t, ctx, db, user.ID, domain.TargetTypeStudyDuration, 120)
	testutil.SeedInsight(t, ctx, db, user.ID, "Consistent Learner", 0.9)

	svc := newDashboardForTest(t, db)

	dash, err := svc.Get(ctx, Identity{Kind: IdentityInternalID, InternalID: user.ID})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if dash.User.XP != 200 {
		t.Fatalf("User.XP = %d, want 200", dash.User.XP)
	}
	if dash.MLFeatures.AvgCompletionTime != 90 {
		t.Fatalf("AvgCompletionTime = %d, want 90", dash.MLFeatures.AvgCompletionTime)
	}
	if dash.MLFeatures.FailedExams != 1 {
		t.Fatalf("FailedExams = %d, want 1", dash.MLFeatures.FailedExams)
	}

	if dash.AIInsight.Type != "Consistent Learner" {
		t.Fatalf("AIInsight.Type = %q", dash.AIInsight.Type)
	}
	if !strings.Contains(dash.LearnerProfile.Description, "highly regular") {
		t.Fatalf("LearnerProfile.Description = %q", dash.LearnerProfile.Description)
	}

	if dash.LastSubmission == nil {
		t.Fatalf("LastSubmission missing")
	}
	if dash.LastSubmission.Status != "Passed" {
		t.Fatalf("LastSubmission.Status = %q, want Passed for rating 4", dash.LastSubmission.Status)
	}
	if dash.LastSubmission.Title != "Learning Go Fundamentals" {
		t.Fatalf("LastSubmission.Title = %q", dash.LastSubmission.Title)
	}

	if dash.ActiveCourse == nil {
		t.Fatalf("ActiveCourse missing")
	}
	if dash.ActiveCourse.Level != "Beginner" {
		t.Fatalf("ActiveCourse.Level = %q, want Beginner for difficulty 1", dash.ActiveCourse.Level)
	}
	if dash.ActiveCourse.ProgressPercent != 75 {
		t.Fatalf("ActiveCourse.ProgressPercent = %d", dash.ActiveCourse.ProgressPercent)
	}

	if dash.LearningTarget.Max != 120 {
		t.Fatalf("LearningTarget.Max = %d, want 120", dash.LearningTarget.Max)
	}
	if dash.LearningTarget.Status != domain.TargetStatusActive {
		t.Fatalf("LearningTarget.Status = %q", dash.LearningTarget.Status)
	}
	if !strings.Contains(dash.LearningTarget.Message, "hours per day") {
		t.Fatalf("LearningTarget.Message = %q", dash.LearningTarget.Message)
	}

	if len(dash.ExamHistory) != 2 {
		t.Fatalf("ExamHistory has %d entries, want 2", len(dash.ExamHistory))
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int64
		want    string
	}{
		{0, "0 minutes"},
		{45, "45 minutes"},
		{60, "1 hours"},
		{90, "1.5 hours"},
		{120, "2 hours"},
	}
	for _, c := range cases {
		if got := formatDuration(c.minutes); got != c.want {
			t.Errorf("formatDuration(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestLearningDescription(t *testing.T) {
	if got := learningDescription("Ambitious Fast Learner", true); !strings.Contains(got, "completion speed") {
		t.Fatalf("keyword match for fast learner failed: %q", got)
	}
	if got := learningDescription("Deadliner", true); !strings.Contains(got, "deadlines") {
		t.Fatalf("keyword match for deadliner failed: %q", got)
	}
	if got := learningDescription("Something Novel", true); !strings.Contains(got, "unique") {
		t.Fatalf("fallback description: %q", got)
	}
}

func TestAvatarURL(t *testing.T) {
	withImage := &domain.User{Name: "Ada", ImagePath: "https://cdn.example.com/ada.png"}
	if got := avatarURL(withImage); got != withImage.ImagePath {
		t.Fatalf("avatarURL kept image: got %q", got)
	}

	broken := &domain.User{Name: "Ada Lovelace", ImagePath: "dos:avatars/ada.png"}
	got := avatarURL(broken)
	if !strings.HasPrefix(got, "https://ui-avatars.com/api/?name=Ada") {
		t.Fatalf("avatarURL placeholder: got %q", got)
	}
	if !strings.Contains(got, "Ada+Lovelace") {
		t.Fatalf("avatarURL should escape the name: got %q", got)
	}
}
