package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/model"
)

type PostgresSessionRepo struct {
	db *gorm.DB
}

func NewPostgresSessionRepo(db *gorm.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{db: db}
}

func (p *PostgresSessionRepo) CreateSession(ctx context.Context, s *model.Session) error {
	res := p.db.WithContext(ctx).Create(s)
	if err := res.Error; err != nil {
		// Tokens are unguessable random MACs, so a collision here means a bug
		// upstream, not a retry case. The unique indexes stay as a safety net.
		if isUniqueViolation(err) {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "CreateSession")
	}
	return nil
}

func (p *PostgresSessionRepo) FindByAccessToken(ctx context.Context, token string, now time.Time) (model.Session, error) {
	var s model.Session
	res := p.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&s)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Session{}, customErrors.ErrSessionNotFound
	}
	if err := res.Error; err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "FindByAccessToken")
	}

	return s, nil
}

func (p *PostgresSessionRepo) FindByRefreshToken(ctx context.Context, token string, now time.Time) (model.Session, error) {
	var s model.Session
	res := p.db.WithContext(ctx).
		Where("refresh_token = ? AND refresh_expires_at > ?", token, now).
		First(&s)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Session{}, customErrors.ErrSessionNotFound
	}
	if err := res.Error; err != nil {
		return model.Session{}, customErrors.WrapInternal(err, "FindByRefreshToken")
	}

	return s, nil
}

func (p *PostgresSessionRepo) RotateAccessToken(ctx context.Context, sessionID int64, token string, expiresAt time.Time) error {
	res := p.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"token":      token,
			"expires_at": expiresAt,
		})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RotateAccessToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrSessionNotFound
	}
	return nil
}

func (p *PostgresSessionRepo) DeleteByAccessToken(ctx context.Context, token string) error {
	res := p.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteByAccessToken")
	}
	// zero rows deleted is fine: logout is idempotent
	return nil
}
