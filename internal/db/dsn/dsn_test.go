package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artify-go/artify/internal/config"
)

func TestCreate(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		User:     "artify",
		Password: "secret",
		Host:     "db",
		Port:     3306,
		Name:     "laravel",
		Extras:   "parseTime=True",
	}}

	assert.Equal(t, "artify:secret@tcp(db:3306)/laravel?parseTime=True", Create(cfg))
	assert.Equal(t, "host=db port=3306 user=artify password=secret dbname=laravel parseTime=True", CreatePostgres(cfg))
}

func TestCreateSQLite(t *testing.T) {
	assert.Equal(t, ":memory:", CreateSQLite(&config.Config{}))
	assert.Equal(t, "db.sqlite", CreateSQLite(&config.Config{DB: config.DB{Path: "db.sqlite"}}))
}
