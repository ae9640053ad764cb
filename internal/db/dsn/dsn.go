// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/artify-go/artify/internal/config"
)

// Create builds the MySQL Data Source Name from the configuration.
func Create(dbCfg *config.Config) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.Name,
		dbCfg.DB.Extras,
	)

	return out
}

// CreatePostgres builds the PostgreSQL keyword/value Data Source Name.
// Extras are appended verbatim and are expected as "key=value key=value".
func CreatePostgres(dbCfg *config.Config) string {
	out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		dbCfg.DB.Host,
		dbCfg.DB.Port,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
	)

	if extras := strings.TrimSpace(dbCfg.DB.Extras); extras != "" {
		out += " " + extras
	}

	return out
}

// CreateSQLite returns the sqlite file name, an empty path means an in-memory database.
func CreateSQLite(dbCfg *config.Config) string {
	if dbCfg.DB.Path == "" {
		return ":memory:"
	}

	return dbCfg.DB.Path
}
