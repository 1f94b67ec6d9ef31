package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/domain"
	"github.com/goodakun/smartlearn-backend/internal/platform/logger"
)

var ErrUserNotFound = errors.New("user not found")

type IdentityKind int

const (
	IdentityEmail IdentityKind = iota
	IdentityExternalUUID
	IdentityInternalID
)

// Identity is a tagged union of the three addressing forms that reach the
// API: the auth provider's UUID (from tokens), the internal numeric id
// (from older frontend code paths), and a plain email.
type Identity struct {
	Kind       IdentityKind
	Email      string
	AuthUUID   uuid.UUID
	InternalID int64
}

// ParseIdentity classifies a raw identifier by shape. UUID-form strings win
// over numeric ones; anything else is treated as an email.
func ParseIdentity(raw string) Identity {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := uuid.Parse(trimmed); err == nil {
		return Identity{Kind: IdentityExternalUUID, AuthUUID: parsed}
	}
	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil && id > 0 {
		return Identity{Kind: IdentityInternalID, InternalID: id}
	}
	return Identity{Kind: IdentityEmail, Email: trimmed}
}

type UserResolver interface {
	Resolve(ctx context.Context, identity Identity) (*domain.User, error)
}

type userResolver struct {
	userRepo repos.UserRepo
	log      *logger.Logger
}

func NewUserResolver(userRepo repos.UserRepo, baseLog *logger.Logger) UserResolver {
	return &userResolver{
		userRepo: userRepo,
		log:      baseLog.With("service", "UserResolver"),
	}
}

func (r *userResolver) Resolve(ctx context.Context, identity Identity) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	switch identity.Kind {
	case IdentityExternalUUID:
		user, err = r.userRepo.GetByUUID(ctx, nil, identity.AuthUUID)
	case IdentityInternalID:
		user, err = r.userRepo.GetByID(ctx, nil, identity.InternalID)
	case IdentityEmail:
		user, err = r.userRepo.GetByEmail(ctx, nil, identity.Email)
	default:
		return nil, fmt.Errorf("unknown identity kind %d", identity.Kind)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
