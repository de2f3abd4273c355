package repo

import (
	"context"
	"time"

	"github.com/clipshare/clipshare/internal/auth/model"
)

type SessionRepo interface {
	CreateSession(ctx context.Context, s *model.Session) error

	// FindByAccessToken returns the session whose access token matches and
	// whose access expiry is still in the future. An expired row is
	// indistinguishable from a missing one.
	FindByAccessToken(ctx context.Context, token string, now time.Time) (model.Session, error)

	// FindByRefreshToken is the refresh-path lookup, filtered on the refresh
	// expiry horizon instead.
	FindByRefreshToken(ctx context.Context, token string, now time.Time) (model.Session, error)

	// RotateAccessToken swaps in a freshly minted access token on an existing
	// session row; the refresh token is left untouched.
	RotateAccessToken(ctx context.Context, sessionID int64, token string, expiresAt time.Time) error

	// DeleteByAccessToken is idempotent: deleting an unknown token is not an
	// error.
	DeleteByAccessToken(ctx context.Context, token string) error
}
