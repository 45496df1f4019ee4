package image

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"luckyticket/internal/database"
	"luckyticket/internal/domain"
	"luckyticket/internal/pkg/logger"
	"luckyticket/internal/storage"
)

const helloPNG = "data:image/png;base64,aGVsbG8="

type testEnv struct {
	db      *gorm.DB
	store   *storage.LocalStore
	dir     string
	service *Service
}

func setupTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	db, err := database.Connect(":memory:", logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	dir := filepath.Join(t.TempDir(), "uploads")
	store := storage.NewLocalStore(dir)

	return &testEnv{
		db:      db,
		store:   store,
		dir:     dir,
		service: NewService(NewRepository(db), store, logger.Discard(), opts...),
	}
}

func (e *testEnv) createUser(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, e.db.Create(&domain.User{ID: id, Name: name}).Error)
}

func (e *testEnv) createContent(t *testing.T, userID int64, filter string) {
	t.Helper()
	require.NoError(t, e.db.Create(&domain.AIContent{UserID: userID, FilterStr: filter}).Error)
}

func (e *testEnv) blobCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(e.dir)
	if errors.Is(err, os.ErrNotExist) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

// steppingClock returns base, base+1m, base+2m, ...
func steppingClock(base time.Time) func() time.Time {
	var mu sync.Mutex
	next := base
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

var testRC = RequestContext{Scheme: "http", Host: "tickets.test"}

// failingRemoveStore behaves like its embedded store except Remove always fails.
type failingRemoveStore struct {
	storage.FileStore
}

func (failingRemoveStore) Remove(context.Context, string) error {
	return errors.New("disk on fire")
}

type countingCache struct {
	mu          sync.Mutex
	images      map[int64]*domain.Image
	gets        int
	hits        int
	invalidated []int64
}

func newCountingCache() *countingCache {
	return &countingCache{images: map[int64]*domain.Image{}}
}

func (c *countingCache) GetUserImage(_ context.Context, userID int64) (*domain.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	img, ok := c.images[userID]
	if ok {
		c.hits++
	}
	return img, nil
}

func (c *countingCache) SetUserImage(_ context.Context, img *domain.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[img.UserID] = img
	return nil
}

func (c *countingCache) InvalidateUser(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.images, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}
