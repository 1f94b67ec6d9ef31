package app

import (
	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	Completion repos.CompletionRepo
	Tracking   repos.TrackingRepo
	Submission repos.SubmissionRepo
	Exam       repos.ExamRepo
	Target     repos.TargetRepo
	Insight    repos.InsightRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Completion: repos.NewCompletionRepo(db, log),
		Tracking:   repos.NewTrackingRepo(db, log),
		Submission: repos.NewSubmissionRepo(db, log),
		Exam:       repos.NewExamRepo(db, log),
		Target:     repos.NewTargetRepo(db, log),
		Insight:    repos.NewInsightRepo(db, log),
	}
}
