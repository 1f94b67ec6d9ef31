package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type TargetHandler struct {
	targetService services.TargetService
}

func NewTargetHandler(targetService services.TargetService) *TargetHandler {
	return &TargetHandler{targetService: targetService}
}

func (th *TargetHandler) SetTarget(c *gin.Context) {
	identity, ok := requestIdentity(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no token identity"))
		return
	}

	var req struct {
		TargetType  string `json:"target_type"`
		TargetValue int    `json:"target_value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	target, err := th.targetService.SetTarget(c.Request.Context(), identity, req.TargetType, req.TargetValue)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTarget):
			response.RespondError(c, http.StatusBadRequest, "invalid_target", err)
		case errors.Is(err, services.ErrUserNotFound):
			response.RespondError(c, http.StatusNotFound, "user_not_found", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "target_failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, response.Envelope{
		Success: true,
		Message: "Learning target saved",
		Data:    target,
	})
}
