package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
	"github.com/goodakun/smartlearn-backend/internal/platform/resend"
)

const (
	fallbackMotivation = "Consistency is the key to winning! Don't let today pass without learning something."
	fallbackSuggestion = "Try spending 15 minutes reviewing the last module you opened."
)

var weeklyEmailTmpl = template.Must(template.New("weekly").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <div style="background-color: #2563eb; padding: 20px; text-align: center; border-radius: 8px 8px 0 0;">
    <h1 style="color: #ffffff; margin: 0;">SmartLearn Weekly 🚀</h1>
  </div>
  <div style="border: 1px solid #e5e7eb; padding: 20px; border-radius: 0 0 8px 8px;">
    <p>Hi, <strong>{{.Name}}</strong>!</p>
    <p>Ready to level up this week? Here is your personal insight:</p>
    <div style="background-color: #eff6ff; border-left: 4px solid #3b82f6; padding: 15px; margin: 20px 0;">
      <p style="margin: 0; font-style: italic; font-size: 16px;">"{{.Motivation}}"</p>
    </div>
    <p><strong>💡 Suggested action:</strong><br> {{.Suggestion}}</p>
    <div style="text-align: center; margin-top: 30px;">
      <a href="{{.DashboardURL}}"
         style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; font-weight: bold;">
        Open My Dashboard
      </a>
    </div>
  </div>
  <p style="text-align: center; font-size: 12px; color: #6b7280; margin-top: 20px;">
    This email was sent to the SmartLearn team allowlist.
  </p>
</div>
`))

type weeklyEmailData struct {
	Name         string
	Motivation   string
	Suggestion   string
	DashboardURL string
}

// WeeklySendReport summarizes one batch run for the maintenance endpoint.
type WeeklySendReport struct {
	Targets []string `json:"targets"`
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
}

type EmailService interface {
	SendWeeklyMotivation(ctx context.Context) (*WeeklySendReport, error)
}

type EmailConfig struct {
	// TargetEmails is the allowlist of recipients; every address must also
	// exist in the users table or it is skipped.
	TargetEmails []string
	DashboardURL string
}

type emailService struct {
	cfg         EmailConfig
	userRepo    repos.UserRepo
	insightRepo repos.InsightRepo
	sender      resend.Client
	log         *logger.Logger
}

func NewEmailService(
	cfg EmailConfig,
	userRepo repos.UserRepo,
	insightRepo repos.InsightRepo,
	sender resend.Client,
	baseLog *logger.Logger,
) EmailService {
	return &emailService{
		cfg:         cfg,
		userRepo:    userRepo,
		insightRepo: insightRepo,
		sender:      sender,
		log:         baseLog.With("service", "EmailService"),
	}
}

// SendWeeklyMotivation sends each allowlisted user their latest insight,
// falling back to stock copy when no insight exists. Sends run concurrently
// and individual failures do not abort the batch.
func (s *emailService) SendWeeklyMotivation(ctx context.Context) (*WeeklySendReport, error) {
	if s.sender == nil {
		return nil, errors.New("email sender not configured")
	}
	if len(s.cfg.TargetEmails) == 0 {
		return nil, errors.New("no target emails configured")
	}

	users, err := s.userRepo.GetByEmails(ctx, nil, s.cfg.TargetEmails)
	if err != nil {
		return nil, fmt.Errorf("load recipients: %w", err)
	}
	if len(users) == 0 {
		return nil, errors.New("no users matched the target email list")
	}

	var (
		mu     sync.Mutex
		sent   int
		failed int
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, user := range users {
		u := user
		g.Go(func() error {
			if err := s.sendOne(gctx, u); err != nil {
				s.log.Warn("weekly email failed", "email", u.Email, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			mu.Lock()
			sent++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("weekly motivation batch done", "sent", sent, "failed", failed)
	return &WeeklySendReport{
		Targets: s.cfg.TargetEmails,
		Sent:    sent,
		Failed:  failed,
	}, nil
}

func (s *emailService) sendOne(ctx context.Context, user *domain.User) error {
	motivation := fallbackMotivation
	suggestion := fallbackSuggestion

	insight, err := s.insightRepo.GetLatestByUser(ctx, nil, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load insight: %w", err)
	}
	if insight != nil {
		if insight.MotivationQuote != "" {
			motivation = insight.MotivationQuote
		}
		if suggestions := insight.SuggestionList(); len(suggestions) > 0 {
			suggestion = suggestions[0]
		}
	}

	name := user.Name
	if name == "" {
		name = "Student"
	}

	var body strings.Builder
	if err := weeklyEmailTmpl.Execute(&body, weeklyEmailData{
		Name:         name,
		Motivation:   motivation,
		Suggestion:   suggestion,
		DashboardURL: s.cfg.DashboardURL,
	}); err != nil {
		return fmt.Errorf("render email: %w", err)
	}

	subject := fmt.Sprintf("🔥 Your weekly boost, %s!", name)
	_, err = s.sender.Send(ctx, resend.SendEmailRequest{
		To:      []string{user.Email},
		Subject: subject,
		HTML:    body.String(),
	})
	return err
}
