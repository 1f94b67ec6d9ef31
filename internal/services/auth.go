package services

import (
	"context"
	"errors"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
	"github.com/goodakun/smartlearn-backend/internal/platform/supabase"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginResult pairs the provider session token with the application's own
// user row for the response body.
type LoginResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	supabase supabase.Client
	userRepo repos.UserRepo
	resolver UserResolver
	log      *logger.Logger
}

func NewAuthService(sb supabase.Client, userRepo repos.UserRepo, resolver UserResolver, baseLog *logger.Logger) AuthService {
	return &authService{
		supabase: sb,
		userRepo: userRepo,
		resolver: resolver,
		log:      baseLog.With("service", "AuthService"),
	}
}

// Login delegates password verification to the auth provider, then loads
// the application profile row by email. A valid provider session without a
// matching profile row surfaces as ErrUserNotFound so the handler can tell
// bad credentials apart from a missing profile.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	session, err := s.supabase.PasswordLogin(ctx, email, password)
	if err != nil {
		if errors.Is(err, supabase.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	user, err := s.resolver.Resolve(ctx, Identity{Kind: IdentityEmail, Email: email})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.log.Warn("provider session for unknown profile", "email", email)
		}
		return nil, err
	}

	return &LoginResult{Token: session.AccessToken, User: user}, nil
}
