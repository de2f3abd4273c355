package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	customErrors "github.com/clipshare/clipshare/internal/auth/errors"
	"github.com/clipshare/clipshare/internal/auth/model"
	"github.com/clipshare/clipshare/internal/clip/dto"
	"github.com/clipshare/clipshare/internal/repo"
)

// ShortLinkCache is the read-through cache on the public short-URL path.
// A nil implementation disables caching; all methods must then go unused.
type ShortLinkCache interface {
	Get(ctx context.Context, shortURL string) (model.Clip, bool, error)
	Set(ctx context.Context, c model.Clip) error
	Invalidate(ctx context.Context, shortURL string) error
}

const (
	slugAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	slugLength   = 8
	slugAttempts = 3
)

type clipService struct {
	clipRepo repo.ClipRepo
	cache    ShortLinkCache
	v        *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewClipService(clipRepo repo.ClipRepo, cache ShortLinkCache, v *validator.Validate, log *zap.Logger) ClipService {
	return &clipService{
		clipRepo: clipRepo,
		cache:    cache,
		v:        v,
		log:      log,
		now:      time.Now,
	}
}

func newSlug() (string, error) {
	buf := make([]byte, slugLength)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = slugAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func (c *clipService) Create(ctx context.Context, userID int64, d dto.CreateClipDTO) (model.Clip, error) {
	if err := c.v.Struct(d); err != nil {
		return model.Clip{}, customErrors.NewInvalidArgument(err.Error())
	}

	var expiresAt *time.Time
	if d.ExpiresIn > 0 {
		t := c.now().Add(time.Duration(d.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	for attempt := 0; attempt < slugAttempts; attempt++ {
		slug, err := newSlug()
		if err != nil {
			return model.Clip{}, customErrors.WrapInternal(err, "Create slug")
		}

		clip := model.Clip{
			UserID:    userID,
			Title:     d.Title,
			Content:   d.Content,
			ShortURL:  slug,
			ExpiresAt: expiresAt,
		}
		err = c.clipRepo.CreateClip(ctx, &clip)
		if err == nil {
			return clip, nil
		}
		if !customErrors.IsAlreadyExists(err) {
			return model.Clip{}, customErrors.WrapInternal(err, "Create")
		}
		// slug collision, try a fresh one
	}

	return model.Clip{}, customErrors.WrapInternal(customErrors.ErrAlreadyExists, "Create: slug space exhausted")
}

func (c *clipService) List(ctx context.Context, userID int64, page, pageSize int) ([]model.Clip, int64, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return nil, 0, customErrors.NewInvalidArgument("invalid pagination parameters")
	}
	return c.clipRepo.ListClipsByUser(ctx, userID, page, pageSize)
}

func (c *clipService) GetByID(ctx context.Context, id int64) (model.Clip, error) {
	clip, err := c.clipRepo.GetClipByID(ctx, id)
	if err != nil {
		return model.Clip{}, err
	}

	c.bestEffort("increment views", func() error {
		return c.clipRepo.IncrementViews(ctx, clip.ID)
	})

	return clip, nil
}

func (c *clipService) GetByShortURL(ctx context.Context, shortURL string) (model.Clip, error) {
	if c.cache != nil {
		clip, ok, err := c.cache.Get(ctx, shortURL)
		switch {
		case err != nil:
			c.log.Warn("short link cache read failed", zap.Error(err))
		case ok && (clip.ExpiresAt == nil || clip.ExpiresAt.After(c.now())):
			c.bestEffort("increment views", func() error {
				return c.clipRepo.IncrementViews(ctx, clip.ID)
			})
			return clip, nil
		case ok:
			// the entry outlived the clip itself; a cached row must not keep an
			// expired clip resolvable
			c.bestEffort("invalidate short link", func() error {
				return c.cache.Invalidate(ctx, shortURL)
			})
		}
	}

	clip, err := c.clipRepo.GetClipByShortURL(ctx, shortURL, c.now())
	if err != nil {
		return model.Clip{}, err
	}

	if c.cache != nil {
		c.bestEffort("cache short link", func() error {
			return c.cache.Set(ctx, clip)
		})
	}
	c.bestEffort("increment views", func() error {
		return c.clipRepo.IncrementViews(ctx, clip.ID)
	})

	return clip, nil
}

func (c *clipService) Update(ctx context.Context, id, userID int64, d dto.UpdateClipDTO) (model.Clip, error) {
	if err := c.v.Struct(d); err != nil {
		return model.Clip{}, customErrors.NewInvalidArgument(err.Error())
	}

	clip, err := c.clipRepo.UpdateClip(ctx, id, userID, d.Title, d.Content)
	if err != nil {
		return model.Clip{}, err
	}

	if c.cache != nil {
		c.bestEffort("invalidate short link", func() error {
			return c.cache.Invalidate(ctx, clip.ShortURL)
		})
	}

	return clip, nil
}

func (c *clipService) Delete(ctx context.Context, id, userID int64) error {
	clip, err := c.clipRepo.GetClipByID(ctx, id)
	if err != nil {
		return err
	}
	if clip.UserID != userID {
		return customErrors.ErrNotFound
	}

	if err := c.clipRepo.DeleteClip(ctx, id, userID); err != nil {
		return err
	}

	if c.cache != nil {
		c.bestEffort("invalidate short link", func() error {
			return c.cache.Invalidate(ctx, clip.ShortURL)
		})
	}

	return nil
}

func (c *clipService) bestEffort(op string, fn func() error) {
	if err := fn(); err != nil {
		c.log.Error("best-effort operation failed", zap.String("op", op), zap.Error(err))
	}
}
