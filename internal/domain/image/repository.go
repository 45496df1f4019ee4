package image

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"luckyticket/internal/domain"
)

// ContentImage is one matched AIContent row with its owner's newest image.
// Latest is nil when the owner has no images or no longer exists.
type ContentImage struct {
	ContentID int64
	FilterStr string
	Latest    *domain.Image
}

type Repository interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, img *domain.Image) error
	// FindByUserID returns any one image of the user; no ordering is applied.
	FindByUserID(ctx context.Context, userID int64) (*domain.Image, error)
	// ListAll returns every image, newest first.
	ListAll(ctx context.Context) ([]domain.Image, error)
	// FindContentByTagSubstring matches filter_str containing filter; "" matches all.
	FindContentByTagSubstring(ctx context.Context, filter string) ([]ContentImage, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, img *domain.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID int64) (*domain.Image, error) {
	var img domain.Image
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&img).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *repository) ListAll(ctx context.Context) ([]domain.Image, error) {
	var images []domain.Image
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&images).Error
	return images, err
}

func (r *repository) FindContentByTagSubstring(ctx context.Context, filter string) ([]ContentImage, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Images", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC").Order("id DESC")
		})
	if filter != "" {
		q = q.Where("filter_str LIKE ? ESCAPE '!'", "%"+escapeLike(filter)+"%")
	}

	var contents []domain.AIContent
	if err := q.Order("id ASC").Find(&contents).Error; err != nil {
		return nil, err
	}

	out := make([]ContentImage, 0, len(contents))
	for _, c := range contents {
		ci := ContentImage{ContentID: c.ID, FilterStr: c.FilterStr}
		if c.User != nil && len(c.User.Images) > 0 {
			latest := c.User.Images[0]
			ci.Latest = &latest
		}
		out = append(out, ci)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
