package image

import (
	"context"

	"luckyticket/internal/domain"
)

// LookupCache remembers the image GetByUser resolved for a user.
// GetUserImage returns (nil, nil) on a miss.
type LookupCache interface {
	GetUserImage(ctx context.Context, userID int64) (*domain.Image, error)
	SetUserImage(ctx context.Context, img *domain.Image) error
	InvalidateUser(ctx context.Context, userID int64) error
}

type nopCache struct{}

func (nopCache) GetUserImage(context.Context, int64) (*domain.Image, error) { return nil, nil }
func (nopCache) SetUserImage(context.Context, *domain.Image) error { return nil }
func (nopCache) InvalidateUser(context.Context, int64) error { return nil }
