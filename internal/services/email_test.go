package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/data/repos/testutil"
	"github.com/goodakun/smartlearn-backend/internal/platform/resend"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []resend.SendEmailRequest
	fail map[string]error
}

func (f *fakeSender) Send(ctx context.Context, req resend.SendEmailRequest) (*resend.SendEmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(req.To) == 1 {
		if err, ok := f.fail[req.To[0]]; ok {
			return nil, err
		}
	}
	f.sent = append(f.sent, req)
	return &resend.SendEmailResult{ID: "email_test"}, nil
}

func (f *fakeSender) byRecipient(email string) *resend.SendEmailRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sent {
		for _, to := range f.sent[i].To {
			if to == email {
				return &f.sent[i]
			}
		}
	}
	return nil
}

func TestSendWeeklyMotivation(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	withInsight := testutil.SeedUser(t, ctx, db, "weekly-a@example.com")
	cleanupUserRows(t, db, withInsight.ID)
	withoutInsight := testutil.SeedUser(t, ctx, db, "weekly-b@example.com")
	cleanupUserRows(t, db, withoutInsight.ID)
	testutil.SeedInsight(t, ctx, db, withInsight.ID, "High Achiever", 0.9)

	sender := &fakeSender{}
	svc := NewEmailService(
		EmailConfig{
			// The allowlist includes one address with no profile row; it is
			// skipped rather than counted as a failure.
			TargetEmails: []string{"weekly-a@example.com", "weekly-b@example.com", "nobody@example.com"},
			DashboardURL: "https://smartlearn.example.com",
		},
		repos.NewUserRepo(db, log),
		repos.NewInsightRepo(db, log),
		sender,
		log,
	)

	report, err := svc.SendWeeklyMotivation(ctx)
	if err != nil {
		t.Fatalf("SendWeeklyMotivation: %v", err)
	}
	if report.Sent != 2 || report.Failed != 0 {
		t.Fatalf("report = %+v, want 2 sent / 0 failed", report)
	}
	if len(report.Targets) != 3 {
		t.Fatalf("Targets = %v, want the configured allowlist", report.Targets)
	}

	personalized := sender.byRecipient("weekly-a@example.com")
	if personalized == nil {
		t.Fatalf("no email sent to weekly-a@example.com")
	}
	if !strings.Contains(personalized.HTML, "Keep going.") {
		t.Fatalf("personalized email should carry the stored motivation, got: %s", personalized.HTML)
	}
	if !strings.Contains(personalized.Subject, "Your weekly boost") {
		t.Fatalf("Subject = %q", personalized.Subject)
	}
	if !strings.Contains(personalized.HTML, "https://smartlearn.example.com") {
		t.Fatalf("email body missing dashboard link")
	}

	stock := sender.byRecipient("weekly-b@example.com")
	if stock == nil {
		t.Fatalf("no email sent to weekly-b@example.com")
	}
	if !strings.Contains(stock.HTML, fallbackMotivation) {
		t.Fatalf("user without insight should get the stock motivation, got: %s", stock.HTML)
	}
}

func TestSendWeeklyMotivationCountsFailures(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	ok := testutil.SeedUser(t, ctx, db, "weekly-ok@example.com")
	cleanupUserRows(t, db, ok.ID)
	bad := testutil.SeedUser(t, ctx, db, "weekly-bad@example.com")
	cleanupUserRows(t, db, bad.ID)

	sender := &fakeSender{fail: map[string]error{
		"weekly-bad@example.com": errors.New("550 mailbox unavailable"),
	}}
	svc := NewEmailService(
		EmailConfig{TargetEmails: []string{"weekly-ok@example.com", "weekly-bad@example.com"}},
		repos.NewUserRepo(db, log),
		repos.NewInsightRepo(db, log),
		sender,
		log,
	)

	report, err := svc.SendWeeklyMotivation(ctx)
	if err != nil {
		t.Fatalf("SendWeeklyMotivation: %v", err)
	}
	if report.Sent != 1 || report.Failed != 1 {
		t.Fatalf("report = %+v, want 1 sent / 1 failed", report)
	}
}

func TestSendWeeklyMotivationRequiresConfig(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)

	svc := NewEmailService(
		EmailConfig{},
		repos.NewUserRepo(db, log),
		repos.NewInsightRepo(db, log),
		&fakeSender{},
		log,
	)
	if _, err := svc.SendWeeklyMotivation(context.Background()); err == nil {
		t.Fatalf("empty allowlist accepted")
	}

	svc = NewEmailService(
		EmailConfig{TargetEmails: []string{"ghost@example.com"}},
		repos.NewUserRepo(db, log),
		repos.NewInsightRepo(db, log),
		&fakeSender{},
		log,
	)
	if _, err := svc.SendWeeklyMotivation(context.Background()); err == nil {
		t.Fatalf("allowlist with no matching users accepted")
	}
}
