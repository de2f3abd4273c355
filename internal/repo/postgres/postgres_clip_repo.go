package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/model"
)

type PostgresClipRepo struct {
	db *gorm.DB
}

func NewPostgresClipRepo(db *gorm.DB) *PostgresClipRepo {
	return &PostgresClipRepo{db: db}
}

func (p *PostgresClipRepo) CreateClip(ctx context.Context, c *model.Clip) error {
	res := p.db.WithContext(ctx).Create(c)
	if err := res.Error; err != nil {
		if isUniqueViolation(err) {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "CreateClip")
	}
	return nil
}

func (p *PostgresClipRepo) GetClipByID(ctx context.Context, id int64) (model.Clip, error) {
	var c model.Clip
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&c)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Clip{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Clip{}, customErrors.WrapInternal(err, "GetClipByID")
	}

	return c, nil
}

func (p *PostgresClipRepo) GetClipByShortURL(ctx context.Context, shortURL string, now time.Time) (model.Clip, error) {
	var c model.Clip
	res := p.db.WithContext(ctx).
		Where("short_url = ? AND (expires_at IS NULL OR expires_at > ?)", shortURL, now).
		First(&c)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Clip{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Clip{}, customErrors.WrapInternal(err, "GetClipByShortURL")
	}

	return c, nil
}

func (p *PostgresClipRepo) ListClipsByUser(ctx context.Context, userID int64, page, pageSize int) ([]model.Clip, int64, error) {
	var total int64
	if err := p.db.WithContext(ctx).Model(&model.Clip{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListClipsByUser count")
	}

	var clips []model.Clip
	res := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clips)
	if err := res.Error; err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListClipsByUser")
	}

	return clips, total, nil
}

func (p *PostgresClipRepo) UpdateClip(ctx context.Context, id, userID int64, title, content *string) (model.Clip, error) {
	updates := map[string]interface{}{}
	if title != nil {
		updates["title"] = *title
	}
	if content != nil {
		updates["content"] = *content
	}

	if len(updates) > 0 {
		res := p.db.WithContext(ctx).Model(&model.Clip{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates)
		if err := res.Error; err != nil {
			return model.Clip{}, customErrors.WrapInternal(err, "UpdateClip")
		}
		if res.RowsAffected == 0 {
			return model.Clip{}, customErrors.ErrNotFound
		}
	}

	var c model.Clip
	res := p.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Clip{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Clip{}, customErrors.WrapInternal(err, "UpdateClip reload")
	}

	return c, nil
}

func (p *PostgresClipRepo) DeleteClip(ctx context.Context, id, userID int64) error {
	res := p.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Clip{})
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteClip")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresClipRepo) IncrementViews(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Model(&model.Clip{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1"))
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "IncrementViews")
	}
	return nil
}
