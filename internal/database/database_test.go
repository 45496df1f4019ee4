package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luckyticket/internal/domain"
	"luckyticket/internal/pkg/logger"
)

func TestConnectInMemoryAndMigrate(t *testing.T) {
	db, err := Connect(":memory:", logger.Discard())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(context.Background(), db))

	for _, table := range []string{"users", "images", "ai_contents"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	user := domain.User{Name: "tester"}
	require.NoError(t, db.Create(&user).Error)

	img := domain.Image{UserID: user.ID, Img: "0b0e8f5e-2d7b-4a8b-9a39-8f1f6b0c4e11.png"}
	require.NoError(t, db.Create(&img).Error)

	var loaded domain.User
	require.NoError(t, db.Preload("Images").First(&loaded, user.ID).Error)
	require.Len(t, loaded.Images, 1)
	assert.Equal(t, img.Img, loaded.Images[0].Img)
}

func TestConnectCreatesSQLiteDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := Connect(path, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.FileExists(t, path)
}
