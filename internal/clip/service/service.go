package service

import (
	"context"

	"github.com/clipshare/clipshare/internal/auth/model"
	"github.com/clipshare/clipshare/internal/clip/dto"
)

type ClipService interface {
	Create(ctx context.Context, userID int64, d dto.CreateClipDTO) (model.Clip, error)

	List(ctx context.Context, userID int64, page, pageSize int) ([]model.Clip, int64, error)

	GetByID(ctx context.Context, id int64) (model.Clip, error)

	GetByShortURL(ctx context.Context, shortURL string) (model.Clip, error)

	Update(ctx context.Context, id, userID int64, d dto.UpdateClipDTO) (model.Clip, error)

	Delete(ctx context.Context, id, userID int64) error
}
