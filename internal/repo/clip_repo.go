package repo

import (
	"context"
	"time"

	"github.com/clipshare/clipshare/internal/auth/model"
)

type ClipRepo interface {
	CreateClip(ctx context.Context, c *model.Clip) error

	GetClipByID(ctx context.Context, id int64) (model.Clip, error)

	// GetClipByShortURL resolves a public slug; expired clips are treated as
	// missing.
	GetClipByShortURL(ctx context.Context, shortURL string, now time.Time) (model.Clip, error)

	ListClipsByUser(ctx context.Context, userID int64, page, pageSize int) ([]model.Clip, int64, error)

	// UpdateClip applies non-nil fields to the caller's own clip; ErrNotFound
	// when the row is absent or owned by someone else.
	UpdateClip(ctx context.Context, id, userID int64, title, content *string) (model.Clip, error)

	DeleteClip(ctx context.Context, id, userID int64) error

	// IncrementViews is best-effort accounting on public reads.
	IncrementViews(ctx context.Context, id int64) error
}
