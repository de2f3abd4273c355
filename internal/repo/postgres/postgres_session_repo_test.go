package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/model"
)

func newSession(userID int64, access, refresh string, now time.Time) model.Session {
	return model.Session{
		UserID:           userID,
		Token:            access,
		RefreshToken:     refresh,
		ExpiresAt:        now.Add(time.Hour),
		RefreshExpiresAt: now.Add(30 * 24 * time.Hour),
		IP:               "10.0.0.1",
		DeviceInfo:       "test-agent",
		CreatedAt:        now,
	}
}

func TestSessionRepo_CreateAndFind(t *testing.T) {
	repo := NewPostgresSessionRepo(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	s := newSession(1, "acc-1", "ref-1", now)
	if err := repo.CreateSession(ctx, &s); err != nil {
		t.Fatalf("create %v", err)
	}

	got, err := repo.FindByAccessToken(ctx, "acc-1", now)
	if err != nil || got.UserID != 1 {
		t.Fatalf("find by access token %v", err)
	}
	got2, err := repo.FindByRefreshToken(ctx, "ref-1", now)
	if err != nil || got2.ID != got.ID {
		t.Fatalf("find by refresh token %v", err)
	}

	if _, err := repo.FindByAccessToken(ctx, "unknown", now); !errors.IsSessionNotFound(err) {
		t.Fatalf("expected session not found, got %v", err)
	}
}

func TestSessionRepo_ExpiredRowsAreMissing(t *testing.T) {
	repo := NewPostgresSessionRepo(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	s := newSession(1, "acc-1", "ref-1", now)
	if err := repo.CreateSession(ctx, &s); err != nil {
		t.Fatalf("create %v", err)
	}

	// past the access horizon but within the refresh horizon
	later := now.Add(2 * time.Hour)
	if _, err := repo.FindByAccessToken(ctx, "acc-1", later); !errors.IsSessionNotFound(err) {
		t.Fatalf("expected expired access row to be missing, got %v", err)
	}
	if _, err := repo.FindByRefreshToken(ctx, "ref-1", later); err != nil {
		t.Fatalf("refresh row must still resolve: %v", err)
	}

	// past both horizons
	muchLater := now.Add(31 * 24 * time.Hour)
	if _, err := repo.FindByRefreshToken(ctx, "ref-1", muchLater); !errors.IsSessionNotFound(err) {
		t.Fatalf("expected expired refresh row to be missing, got %v", err)
	}
}

func TestSessionRepo_RotateAccessToken(t *testing.T) {
	repo := NewPostgresSessionRepo(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	s := newSession(1, "acc-1", "ref-1", now)
	if err := repo.CreateSession(ctx, &s); err != nil {
		t.Fatalf("create %v", err)
	}

	if err := repo.RotateAccessToken(ctx, s.ID, "acc-2", now.Add(time.Hour)); err != nil {
		t.Fatalf("rotate %v", err)
	}

	if _, err := repo.FindByAccessToken(ctx, "acc-1", now); !errors.IsSessionNotFound(err) {
		t.Fatal("old access token must no longer resolve")
	}
	got, err := repo.FindByAccessToken(ctx, "acc-2", now)
	if err != nil || got.RefreshToken != "ref-1" {
		t.Fatalf("new access token must resolve to same session: %v", err)
	}

	if err := repo.RotateAccessToken(ctx, 9999, "acc-3", now.Add(time.Hour)); !errors.IsSessionNotFound(err) {
		t.Fatalf("expected session not found on unknown id, got %v", err)
	}
}

func TestSessionRepo_DeleteIdempotent(t *testing.T) {
	repo := NewPostgresSessionRepo(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	s := newSession(1, "acc-1", "ref-1", now)
	if err := repo.CreateSession(ctx, &s); err != nil {
		t.Fatalf("create %v", err)
	}

	if err := repo.DeleteByAccessToken(ctx, "acc-1"); err != nil {
		t.Fatalf("delete %v", err)
	}
	if _, err := repo.FindByAccessToken(ctx, "acc-1", now); !errors.IsSessionNotFound(err) {
		t.Fatal("deleted session must not resolve")
	}

	// deleting again (or a token that never existed) succeeds
	if err := repo.DeleteByAccessToken(ctx, "acc-1"); err != nil {
		t.Fatalf("second delete %v", err)
	}
	if err := repo.DeleteByAccessToken(ctx, "never-existed"); err != nil {
		t.Fatalf("unknown delete %v", err)
	}
}

func TestSessionRepo_ConcurrentLoginsCoexist(t *testing.T) {
	repo := NewPostgresSessionRepo(setupDB(t))
	ctx := context.Background()
	now := time.Now()

	a := newSession(1, "acc-1", "ref-1", now)
	b := newSession(1, "acc-2", "ref-2", now)
	if err := repo.CreateSession(ctx, &a); err != nil {
		t.Fatalf("create a %v", err)
	}
	if err := repo.CreateSession(ctx, &b); err != nil {
		t.Fatalf("create b %v", err)
	}

	if _, err := repo.FindByAccessToken(ctx, "acc-1", now); err != nil {
		t.Fatal("first session must survive the second login")
	}
	if _, err := repo.FindByAccessToken(ctx, "acc-2", now); err != nil {
		t.Fatal("second session must resolve")
	}
}
