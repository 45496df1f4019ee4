package image

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"luckyticket/internal/domain"
	"luckyticket/internal/storage"
)

// Service handles base64 image upload and lookup.
// Upload order: validate -> write blob -> check user -> insert row.
type Service struct {
	repo    Repository
	store   storage.FileStore
	cache   LookupCache
	log     *logrus.Logger
	now     func() time.Time
	newName func(subtype string) string
}

type Option func(*Service)

func WithCache(c LookupCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithClock overrides the createdAt source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, store storage.FileStore, log *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		store: store,
		cache: nopCache{},
		log:   log,
		now:   time.Now,
		newName: func(subtype string) string {
			return uuid.NewString() + "." + subtype
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload stores the decoded image under a fresh <uuid>.<subtype> name and
// records it for the user. If the user does not exist the blob is removed.
func (s *Service) Upload(ctx context.Context, rc RequestContext, userID, image string) (*UploadResponse, error) {
	if _, payload := splitDataURI(image); payload == "" {
		return nil, ErrImageRequired
	}
	uid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseDataURI(image)
	if err != nil {
		return nil, err
	}

	filename := s.newName(parsed.Subtype)
	if err := s.store.Save(ctx, filename, parsed.Data); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	exists, err := s.repo.UserExists(ctx, uid)
	if err != nil {
		compensateBlob(ctx, s.store, s.log, filename, "user lookup failed")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		compensateBlob(ctx, s.store, s.log, filename, "user not found")
		return nil, ErrUserNotFound
	}

	img := &domain.Image{UserID: uid, Img: filename, CreatedAt: s.now()}
	if err := s.repo.Create(ctx, img); err != nil {
		compensateBlob(ctx, s.store, s.log, filename, "insert failed")
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	if err := s.cache.InvalidateUser(ctx, uid); err != nil {
		s.log.WithError(err).WithField("user_id", uid).Warn("image cache invalidation failed")
	}

	s.log.WithField("image_id", img.ID).
		WithField("user_id", uid).
		WithField("filename", filename).
		Info("image created")

	return &UploadResponse{
		ID:       img.ID,
		Img:      filename,
		ImageURL: rc.ImageURL(filename),
	}, nil
}

// GetByUser returns one image of the user. Which one is unspecified when the
// user has several.
func (s *Service) GetByUser(ctx context.Context, rc RequestContext, userID string) (*UserImageResponse, error) {
	uid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	img, err := s.cache.GetUserImage(ctx, uid)
	if err != nil {
		s.log.WithError(err).WithField("user_id", uid).Warn("image cache read failed")
		img = nil
	}
	if img == nil {
		img, err = s.repo.FindByUserID(ctx, uid)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetUserImage(ctx, img); err != nil {
			s.log.WithError(err).WithField("user_id", uid).Warn("image cache write failed")
		}
	}

	return &UserImageResponse{
		ImageID:  img.ID,
		UserID:   uid,
		ImageURL: rc.ImageURL(img.Img),
	}, nil
}

// ListAll returns every image newest first; an empty store is ErrNoImages.
func (s *Service) ListAll(ctx context.Context, rc RequestContext) ([]ImageItem, error) {
	images, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	items := make([]ImageItem, 0, len(images))
	for _, img := range images {
		items = append(items, ImageItem{
			ID:        img.ID,
			UserID:    img.UserID,
			ImageURL:  rc.ImageURL(img.Img),
			CreatedAt: img.CreatedAt,
		})
	}
	return items, nil
}

// ListByFilter returns, for each AIContent row whose tag contains filter, the
// newest image of the content's owner. Rows whose owner has no image are skipped.
func (s *Service) ListByFilter(ctx context.Context, rc RequestContext, filter string) ([]FilterImageItem, error) {
	contents, err := s.repo.FindContentByTagSubstring(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	if len(contents) == 0 {
		return nil, ErrNoContent
	}

	items := make([]FilterImageItem, 0, len(contents))
	for _, c := range contents {
		if c.Latest == nil {
			continue
		}
		items = append(items, FilterImageItem{
			ID:        c.Latest.ID,
			FilterStr: c.FilterStr,
			ImageURL:  rc.ImageURL(c.Latest.Img),
		})
	}
	if len(items) == 0 {
		return nil, ErrNoFilteredImages
	}
	return items, nil
}
