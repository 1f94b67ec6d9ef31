package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
	"github.com/goodakun/smartlearn-backend/internal/platform/ctxutil"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
	"github.com/goodakun/smartlearn-backend/internal/platform/supabase"
	"github.com/goodakun/smartlearn-backend/internal/services"
)

type AuthMiddleware struct {
	log      *logger.Logger
	supabase supabase.Client
	resolver services.UserResolver
}

func NewAuthMiddleware(log *logger.Logger, sb supabase.Client, resolver services.UserResolver) *AuthMiddleware {
	return &AuthMiddleware{
		log:      log.With("middleware", "AuthMiddleware"),
		supabase: sb,
		resolver: resolver,
	}
}

// RequireAuth validates the bearer token with the identity provider and
// attaches request data to the context. A valid token without a matching
// profile row passes through with UserID 0; downstream handlers that
// tolerate guests (the dashboard) serve defaults, the rest reject it.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Envelope{
				Success: false,
				Error:   &response.APIError{Message: "missing or invalid token", Code: "unauthorized"},
			})
			return
		}

		identity, err := am.supabase.GetUser(c.Request.Context(), tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			code := "unauthorized"
			if !errors.Is(err, supabase.ErrInvalidToken) {
				status = http.StatusBadGateway
				code = "identity_provider_unavailable"
				am.log.Error("identity provider check failed", "error", err)
			}
			c.AbortWithStatusJSON(status, response.Envelope{
				Success: false,
				Error:   &response.APIError{Message: "invalid or expired token", Code: code},
			})
			return
		}

		rd := &ctxutil.RequestData{
			TokenString: tokenString,
			AuthUUID:    identity.ID,
			Email:       identity.Email,
		}
		user, err := am.resolver.Resolve(c.Request.Context(), services.Identity{
			Kind:     services.IdentityExternalUUID,
			AuthUUID: identity.ID,
		})
		if err != nil && errors.Is(err, services.ErrUserNotFound) && identity.Email != "" {
			user, err = am.resolver.Resolve(c.Request.Context(), services.Identity{
				Kind:  services.IdentityEmail,
				Email: identity.Email,
			})
		}
		switch {
		case err == nil:
			rd.UserID = user.ID
		case errors.Is(err, services.ErrUserNotFound):
			am.log.Warn("token valid but no profile row", "auth_id", identity.ID.String())
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Envelope{
				Success: false,
				Error:   &response.APIError{Message: "failed to resolve user", Code: "internal"},
			})
			return
		}

		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// RequireUser runs after RequireAuth on endpoints that cannot serve guests.
func (am *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Envelope{
				Success: false,
				Error:   &response.APIError{Message: "no user profile for this account", Code: "forbidden"},
			})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	return ""
}
