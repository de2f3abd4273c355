package repo

import (
	"context"
	"time"

	"github.com/clipshare/clipshare/internal/auth/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *model.User) error

	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	GetUserByID(ctx context.Context, id int64) (model.User, error)

	// RecordLogin bumps the login counter and stamps the last login
	// time/address. Callers treat a failure as log-and-continue.
	RecordLogin(ctx context.Context, id int64, sourceIP string, now time.Time) error
}
