package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Email == "" || req.Password == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("email and password are required"))
		return
	}

	result, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
			return
		}
		if errors.Is(err, services.ErrUserNotFound) {
			response.RespondError(c, http.StatusNotFound, "user_not_found", errors.New("no profile found for this account"))
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, response.Envelope{
		Success: true,
		Message: "Login successful",
		Data: gin.H{
			"token": result.Token,
			"user": gin.H{
				"id":    result.User.ID,
				"uuid":  result.User.UUID.String(),
				"name":  result.User.Name,
				"email": result.User.Email,
				"role":  result.User.UserRole,
			},
		},
	})
}
