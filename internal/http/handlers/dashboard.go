package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
	targetService    services.TargetService
}

func NewDashboardHandler(dashboardService services.DashboardService, targetService services.TargetService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		targetService:    targetService,
	}
}

func (dh *DashboardHandler) GetDashboard(c *gin.Context) {
	identity, ok := requestIdentity(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no token identity"))
		return
	}

	dashboard, err := dh.dashboardService.Get(c.Request.Context(), identity)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "dashboard_failed", err)
		return
	}
	response.RespondOK(c, dashboard)
}

// SetLearningTarget is the dashboard widget's shortcut: it always writes a
// study_duration target expressed in minutes.
func (dh *DashboardHandler) SetLearningTarget(c *gin.Context) {
	identity, ok := requestIdentity(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no token identity"))
		return
	}

	var req struct {
		TargetMinutes int `json:"target_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.TargetMinutes <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("target must be a positive number of minutes"))
		return
	}

	if _, err := dh.targetService.SetStudyDurationTarget(c.Request.Context(), identity, req.TargetMinutes); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			response.RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "target_failed", err)
		return
	}

	c.JSON(http.StatusOK, response.Envelope{
		Success: true,
		Message: "Learning target updated!",
		Data: gin.H{
			"target_minutes": req.TargetMinutes,
			"display":        fmt.Sprintf("%.1f hours", float64(req.TargetMinutes)/60),
		},
	})
}
