package service

import (
	"context"

	"github.com/clipshare/clipshare/internal/auth/dto"
	"github.com/clipshare/clipshare/internal/auth/model"
)

// AuthService coordinates credential verification, token issuance and
// server-side session tracking.
type AuthService interface {
	Register(ctx context.Context, d dto.RegisterDTO) (model.PublicUser, error)

	Login(ctx context.Context, d dto.LoginDTO, meta model.ClientMeta) (model.LoginResult, error)

	// Refresh mints a new access token for a live session. The refresh token
	// itself is not rotated and stays valid until its own expiry.
	Refresh(ctx context.Context, refreshToken string) (model.RefreshResult, error)

	// Logout revokes the session matching the access token; unknown tokens
	// succeed silently.
	Logout(ctx context.Context, accessToken string) error

	// Authenticate is the per-request gate core: session lookup (revocation
	// check) followed by signature verification. Returns the resolved user id.
	Authenticate(ctx context.Context, accessToken string) (int64, error)

	Me(ctx context.Context, userID int64) (model.PublicUser, error)
}
