package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artify-go/artify/internal/config"
	"github.com/artify-go/artify/internal/db/models"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		GormEngine: config.EngineSQLite,
		Path:       filepath.Join(t.TempDir(), "nested", "artify.sqlite"),
	}}

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.Role{Name: "admin"}).Error)

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(nil)
	require.ErrorIs(t, err, ErrConfigNil)

	_, err = Open(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, ErrUnsupportedEngine)
}

func TestOpenExisting(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{DB: config.DB{
		GormEngine: config.EngineSQLite,
		Path:       filepath.Join(dir, "database", "database.sqlite"),
	}}

	_, err := OpenExisting(cfg)
	require.ErrorIs(t, err, ErrDatabaseMissing)

	_, err = os.Stat(filepath.Join(dir, "database"))
	assert.True(t, os.IsNotExist(err))

	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	_, err = OpenExisting(cfg)
	require.NoError(t, err)

	_, err = OpenExisting(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite}})
	require.NoError(t, err)
}
