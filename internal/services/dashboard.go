package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/features"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

const courseImageCDNPrefix = "https://dicoding-web-img.sgp1.cdn.digitaloceanspaces.com/original/academy/"

type DashboardUser struct {
	Name       string `json:"name"`
	XP         int64  `json:"xp"`
	Avatar     string `json:"avatar"`
	StudentID  string `json:"student_id"`
	University string `json:"university"`
	Major      string `json:"major"`
	Mentor     string `json:"mentor"`
}

type MLFeatures struct {
	AvgCompletionTime int64 `json:"avg_completion_time"`
	TotalModulesRead  int64 `json:"total_modules_read"`
	AvgExamScore      int64 `json:"avg_exam_score"`
	LoginFrequency    int64 `json:"login_frequency"`
	FailedExams       int64 `json:"failed_exams"`
}

type LearnerProfile struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type AIInsight struct {
	Type       string `json:"type"`
	Motivation string `json:"motivation"`
	Advice     string `json:"advice"`
}

type LastSubmission struct {
	Title  string `json:"title"`
	Rating int    `json:"rating"`
	Note   string `json:"note"`
	Status string `json:"status"`
}

type ActiveCourse struct {
	Title           string `json:"title"`
	Image           string `json:"image"`
	Hours           int    `json:"hours"`
	HoursDisplay    string `json:"hours_display"`
	Level           string `json:"level"`
	ProgressPercent int    `json:"progress_percent"`
}

type TargetSummary struct {
	Current        int64  `json:"current"`
	Max            int    `json:"max"`
	CurrentDisplay string `json:"current_display"`
	MaxDisplay     string `json:"max_display"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	Message        string `json:"message"`
}

type Recommendation struct {
	NextClass    string `json:"next_class"`
	MatchPercent int    `json:"match_percent"`
	Reason       string `json:"reason"`
}

type ExamHistoryEntry struct {
	Score     string `json:"score"`
	IsPassed  int    `json:"is_passed"`
	CreatedAt string `json:"created_at"`
}

type Dashboard struct {
	User           DashboardUser      `json:"user"`
	MLFeatures     MLFeatures         `json:"ml_features"`
	LearnerProfile LearnerProfile     `json:"learner_profile"`
	AIInsight      AIInsight          `json:"ai_insight"`
	LastSubmission *LastSubmission    `json:"last_submission"`
	ActiveCourse   *ActiveCourse      `json:"active_course"`
	LearningTarget TargetSummary      `json:"learning_target"`
	Recommendation Recommendation     `json:"recommendation"`
	ExamHistory    []ExamHistoryEntry `json:"exam_history"`
}

type DashboardService interface {
	Get(ctx context.Context, identity Identity) (*Dashboard, error)
}

type dashboardService struct {
	resolver       UserResolver
	completionRepo repos.CompletionRepo
	trackingRepo   repos.TrackingRepo
	submissionRepo repos.SubmissionRepo
	examRepo       repos.ExamRepo
	targetRepo     repos.TargetRepo
	insightRepo    repos.InsightRepo
	log            *logger.Logger
}

func NewDashboardService(
	resolver UserResolver,
	completionRepo repos.CompletionRepo,
	trackingRepo repos.TrackingRepo,
	submissionRepo repos.SubmissionRepo,
	examRepo repos.ExamRepo,
	targetRepo repos.TargetRepo,
	insightRepo repos.InsightRepo,
	baseLog *logger.Logger,
) DashboardService {
	return &dashboardService{
		resolver:       resolver,
		completionRepo: completionRepo,
		trackingRepo:   trackingRepo,
		submissionRepo: submissionRepo,
		examRepo:       examRepo,
		targetRepo:     targetRepo,
		insightRepo:    insightRepo,
		log:            baseLog.With("service", "DashboardService"),
	}
}

// Get composes the full dashboard read model. Sub-fetches run concurrently
// and are order-insensitive; every one of them degrades to a documented
// default instead of failing the response, so the errgroup tasks always
// return nil and record misses through their captured slots.
func (s *dashboardService) Get(ctx context.Context, identity Identity) (*Dashboard, error) {
	user := s.resolveOrGuest(ctx, identity)
	userID := user.ID

	var (
		totalXP      int64
		completions  []*domain.JourneyCompletion
		trackings    []*domain.JourneyTracking
		examResults  []*domain.ExamResult
		lastSub      *domain.JourneySubmission
		lastActivity *domain.JourneyTracking
		target       *domain.LearningTarget
		insight      *domain.LearnerInsight
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		xp, err := s.completionRepo.TotalXP(gctx, nil, userID)
		if err != nil {
			s.log.Warn("xp fetch failed, defaulting to 0", "user_id", userID, "error", err)
			return nil
		}
		totalXP = xp
		return nil
	})
	g.Go(func() error {
		rows, err := s.completionRepo.ListByUser(gctx, nil, userID)
		if err != nil {
			s.log.Warn("completions fetch failed", "user_id", userID, "error", err)
			return nil
		}
		completions = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.trackingRepo.ListByUser(gctx, nil, userID)
		if err != nil {
			s.log.Warn("trackings fetch failed", "user_id", userID, "error", err)
			return nil
		}
		trackings = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.examRepo.ListResultsByUser(gctx, nil, userID)
		if err != nil {
			s.log.Warn("exam results fetch failed", "user_id", userID, "error", err)
			return nil
		}
		examResults = rows
		return nil
	})
	g.Go(func() error {
		row, err := s.submissionRepo.LatestByUser(gctx, nil, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("last submission fetch failed", "user_id", userID, "error", err)
			}
			return nil
		}
		lastSub = row
		return nil
	})
	g.Go(func() error {
		row, err := s.trackingRepo.LatestWithJourney(gctx, nil, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("last activity fetch failed", "user_id", userID, "error", err)
			}
			return nil
		}
		lastActivity = row
		return nil
	})
	g.Go(func() error {
		row, err := s.targetRepo.GetActiveByUser(gctx, nil, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("target fetch failed", "user_id", userID, "error", err)
			}
			return nil
		}
		target = row
		return nil
	})
	g.Go(func() error {
		row, err := s.insightRepo.GetLatestByUser(gctx, nil, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn("insight fetch failed", "user_id", userID, "error", err)
			}
			return nil
		}
		insight = row
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	feats := features.Compute(completions, trackings, examResults)

	insightType := "Awaiting Analysis..."
	motivation := "Tap the Analyze button on your dashboard to generate your first insight."
	advice := "No suggestions yet."
	if insight != nil {
		if insight.LearningStyle != "" {
			insightType = insight.LearningStyle
		}
		if insight.MotivationQuote != "" {
			motivation = insight.MotivationQuote
		}
		if suggestions := insight.SuggestionList(); len(suggestions) > 0 {
			advice = suggestions[0]
		}
	}

	return &Dashboard{
		User: DashboardUser{
			Name:       user.Name,
			XP:         totalXP,
			Avatar:     avatarURL(user),
			StudentID:  defaultIfEmpty(user.StudentID, "-"),
			University: defaultIfEmpty(user.University, "-"),
			Major:      defaultIfEmpty(user.Major, "-"),
			Mentor:     defaultIfEmpty(user.Mentor, "-"),
		},
		MLFeatures: MLFeatures{
			AvgCompletionTime: int64(math.Round(feats.AvgCompletionTime)),
			TotalModulesRead:  feats.TotalModulesRead,
			AvgExamScore:      int64(math.Round(feats.AvgExamScore)),
			LoginFrequency:    feats.LoginFrequency,
			FailedExams:       feats.FailedExams,
		},
		LearnerProfile: LearnerProfile{
			Type:        insightType,
			Description: learningDescription(insightType, insight != nil),
		},
		AIInsight: AIInsight{
			Type:       insightType,
			Motivation: motivation,
			Advice:     advice,
		},
		LastSubmission: buildLastSubmission(lastSub),
		ActiveCourse:   buildActiveCourse(lastActivity),
		LearningTarget: buildTargetSummary(target, lastActivity, feats),
		Recommendation: Recommendation{
			NextClass:    "Becoming an Android Developer Expert",
			MatchPercent: 95,
			Reason:       recommendationReason(feats.AvgExamScore),
		},
		ExamHistory: buildExamHistory(examResults),
	}, nil
}

// resolveOrGuest never fails the dashboard over an unknown identity; an
// unmatched token yields a guest profile whose sub-fetches all come back
// empty and render as defaults.
func (s *dashboardService) resolveOrGuest(ctx context.Context, identity Identity) *domain.User {
	user, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.log.Warn("user resolution failed, serving guest dashboard", "error", err)
		}
		return &domain.User{
			ID:        0,
			Name:      "Guest User",
			StudentID: "ID-???",
		}
	}
	return user
}

func avatarURL(user *domain.User) string {
	// Some legacy rows carry broken "dos:" storage references; treat those
	// like a missing avatar and serve a generated placeholder.
	if user.ImagePath == "" || strings.Contains(user.ImagePath, "dos:") {
		name := user.Name
		if name == "" {
			name = "User"
		}
		return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=0D8ABC&color=fff"
	}
	return user.ImagePath
}

func buildLastSubmission(sub *domain.JourneySubmission) *LastSubmission {
	if sub == nil {
		return nil
	}
	title := "Course Submission"
	if sub.Journey != nil && sub.Journey.Name != "" {
		title = sub.Journey.Name
	}
	note := sub.Note
	if note == "" {
		note = "No review notes yet."
	}
	status := "Needs Revision"
	if sub.Rating >= 3 {
		status = "Passed"
	}
	return &LastSubmission{
		Title:  title,
		Rating: sub.Rating,
		Note:   note,
		Status: status,
	}
}

func buildActiveCourse(activity *domain.JourneyTracking) *ActiveCourse {
	if activity == nil || activity.Journey == nil {
		return nil
	}
	j := activity.Journey
	hoursNeeded := j.HoursToStudy
	if hoursNeeded == 0 {
		hoursNeeded = 60
	}
	level := "Intermediate"
	if j.Difficulty == 1 {
		level = "Beginner"
	}
	return &ActiveCourse{
		Title:        j.Name,
		Image:        courseImageCDNPrefix + j.ImagePath,
		Hours:        hoursNeeded,
		HoursDisplay: fmt.Sprintf("%d hours", hoursNeeded),
		Level:        level,
		// Per-course progress is not tracked yet; the frontend shows a
		// fixed bar until module-level completion lands.
		ProgressPercent: 75,
	}
}

func buildTargetSummary(target *domain.LearningTarget, activity *domain.JourneyTracking, feats features.Features) TargetSummary {
	message := "Set a learning target to track your progress."
	if activity != nil && activity.Journey != nil {
		hoursNeeded := activity.Journey.HoursToStudy
		if hoursNeeded == 0 {
			hoursNeeded = 60
		}
		daysAllowed := activity.Journey.Deadline
		if daysAllowed == 0 {
			daysAllowed = 60
		}
		dailyEffort := formatOneDecimal(float64(hoursNeeded) / float64(daysAllowed))
		message = fmt.Sprintf("With %d hours of material, set aside %s hours per day to finish on time.", hoursNeeded, dailyEffort)
	}

	current := int64(math.Round(feats.AvgCompletionTime))
	maxVal := 60
	targetType := domain.TargetTypeStudyDuration
	status := "No Target"
	if target != nil {
		maxVal = target.TargetValue
		targetType = target.TargetType
		status = target.Status
	}
	return TargetSummary{
		Current:        current,
		Max:            maxVal,
		CurrentDisplay: formatDuration(current),
		MaxDisplay:     formatDuration(int64(maxVal)),
		Type:           targetType,
		Status:         status,
		Message:        message,
	}
}

func buildExamHistory(results []*domain.ExamResult) []ExamHistoryEntry {
	history := make([]ExamHistoryEntry, 0, 3)
	for _, r := range results {
		if len(history) == 3 {
			break
		}
		history = append(history, ExamHistoryEntry{
			Score:     r.Score,
			IsPassed:  r.IsPassed,
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return history
}

func recommendationReason(avgScore float64) string {
	if avgScore > 80 {
		return "Your exam scores are excellent!"
	}
	return "A natural continuation of your current course."
}

// learningDescription maps a label to its profile blurb by keyword so that
// client-computed styles ("Ambitious Fast Learner") still match.
func learningDescription(labelType string, hasInsight bool) string {
	if !hasInsight {
		return "Not enough activity data for a deep analysis yet."
	}
	t := strings.ToLower(labelType)
	switch {
	case strings.Contains(t, "struggling"):
		return "Some gaps detected in core material. Consistent practice will close them."
	case strings.Contains(t, "consistent"):
		return "Great work! Your study pattern is highly regular; tracking data shows you access material nearly every day."
	case strings.Contains(t, "fast"), strings.Contains(t, "ambitious"):
		return "Impressive! Your module completion speed is above average. You pick up new concepts quickly."
	case strings.Contains(t, "high achiever"), strings.Contains(t, "expert"):
		return "Outstanding performance! Your submission and exam scores show deep mastery of the material."
	case strings.Contains(t, "procrastinator"), strings.Contains(t, "deadliner"):
		return "Your study sessions cluster near deadlines. Spreading them out will ease the load."
	default:
		return "Your learning pattern is unique and still being analyzed."
	}
}

func formatDuration(minutes int64) string {
	if minutes >= 60 {
		return formatOneDecimal(float64(minutes)/60) + " hours"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// formatOneDecimal renders one decimal place and drops a trailing ".0",
// so 1.5 stays "1.5" while 2.0 becomes "2".
func formatOneDecimal(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}

func defaultIfEmpty(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
