package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
	"github.com/goodakun/smartlearn-backend/internal/platform/apierr"
	"github.com/goodakun/smartlearn-backend/internal/platform/ctxutil"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type InsightHandler struct {
	insightService services.InsightService
}

func NewInsightHandler(insightService services.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// Predict runs the full server-side classification pipeline for the caller.
func (ih *InsightHandler) Predict(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusForbidden, "forbidden", errors.New("no user profile for this account"))
		return
	}

	result, err := ih.insightService.Predict(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "prediction_failed", err)
		return
	}

	response.RespondOK(c, gin.H{
		"learning_style":        result.Outcome.Label.Name,
		"prediction_confidence": result.Outcome.Confidence,
		"source":                string(result.Outcome.Source),
		"motivation":            result.Outcome.Label.Motivation,
		"suggestions":           result.Outcome.Label.Suggestions,
		"study_stats": gin.H{
			"avg_completion_time": int64(math.Round(result.Features.AvgCompletionTime)),
			"total_modules_read":  result.Features.TotalModulesRead,
			"avg_exam_score":      int64(math.Round(result.Features.AvgExamScore)),
			"login_frequency":     result.Features.LoginFrequency,
			"failed_exams":        result.Features.FailedExams,
		},
	})
}

// Save stores a classification computed on the frontend.
func (ih *InsightHandler) Save(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == 0 {
		response.RespondError(c, http.StatusForbidden, "forbidden", errors.New("no user profile for this account"))
		return
	}

	var req struct {
		LearningStyle        string   `json:"learning_style"`
		PredictionConfidence float64  `json:"prediction_confidence"`
		Motivation           string   `json:"motivation"`
		Suggestions          []string `json:"suggestions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	insight, err := ih.insightService.SaveClientInsight(c.Request.Context(), rd.UserID, services.ClientInsight{
		LearningStyle:        req.LearningStyle,
		PredictionConfidence: req.PredictionConfidence,
		Motivation:           req.Motivation,
		Suggestions:          req.Suggestions,
	})
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			response.RespondError(c, ae.Status, ae.Code, ae.Err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "save_insight_failed", err)
		return
	}

	response.RespondCreated(c, "Insight saved", insight)
}
