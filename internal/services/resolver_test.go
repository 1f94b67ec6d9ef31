package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goodakun/smartlearn-backend/internal/data/repos"
	"github.com/goodakun/smartlearn-backend/internal/data/repos/testutil"
)

func TestParseIdentity(t *testing.T) {
	id := uuid.New()

	parsed := ParseIdentity(id.String())
	if parsed.Kind != IdentityExternalUUID || parsed.AuthUUID != id {
		t.Fatalf("ParseIdentity(uuid) = %+v", parsed)
	}

	parsed = ParseIdentity("42")
	if parsed.Kind != IdentityInternalID || parsed.InternalID != 42 {
		t.Fatalf("ParseIdentity(numeric) = %+v", parsed)
	}

	parsed = ParseIdentity("someone@example.com")
	if parsed.Kind != IdentityEmail || parsed.Email != "someone@example.com" {
		t.Fatalf("ParseIdentity(email) = %+v", parsed)
	}

	parsed = ParseIdentity("  7  ")
	if parsed.Kind != IdentityInternalID || parsed.InternalID != 7 {
		t.Fatalf("ParseIdentity(padded numeric) = %+v", parsed)
	}
}

func TestUserResolver(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(db, log)
	resolver := NewUserResolver(userRepo, log)

	seeded := testutil.SeedUser(t, ctx, db, "resolver@example.com")
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = ?", seeded.ID)
	})

	byUUID, err := resolver.Resolve(ctx, Identity{Kind: IdentityExternalUUID, AuthUUID: seeded.UUID})
	if err != nil {
		t.Fatalf("Resolve by uuid: %v", err)
	}
	if byUUID.ID != seeded.ID {
		t.Fatalf("Resolve by uuid: got user %d, want %d", byUUID.ID, seeded.ID)
	}

	byID, err := resolver.Resolve(ctx, Identity{Kind: IdentityInternalID, InternalID: seeded.ID})
	if err != nil {
		t.Fatalf("Resolve by id: %v", err)
	}
	if byID.Email != seeded.Email {
		t.Fatalf("Resolve by id: got %q", byID.Email)
	}

	byEmail, err := resolver.Resolve(ctx, Identity{Kind: IdentityEmail, Email: seeded.Email})
	if err != nil {
		t.Fatalf("Resolve by email: %v", err)
	}
	if byEmail.ID != seeded.ID {
		t.Fatalf("Resolve by email: got user %d", byEmail.ID)
	}

	_, err = resolver.Resolve(ctx, Identity{Kind: IdentityExternalUUID, AuthUUID: uuid.New()})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("Resolve (missing): err = %v, want ErrUserNotFound", err)
	}
}
