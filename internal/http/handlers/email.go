package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type EmailHandler struct {
	emailService services.EmailService
}

func NewEmailHandler(emailService services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

func (eh *EmailHandler) SendWeekly(c *gin.Context) {
	report, err := eh.emailService.SendWeeklyMotivation(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "email_batch_failed", err)
		return
	}

	c.JSON(http.StatusOK, response.Envelope{
		Success: true,
		Message: fmt.Sprintf("Sent %d emails to the target list.", report.Sent),
		Data:    report,
	})
}
