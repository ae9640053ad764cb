package config

import (
	"errors"
	"regexp"
)

// identifier limits table and column names to plain SQL identifiers.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var (
	// ErrInvalidConfig is returned if a required setting is missing or malformed.
	ErrInvalidConfig = errors.New("config validation failed")

	// ErrInvalidColumn error if authorization.permissionsColumn is not a plain identifier.
	ErrInvalidColumn = errors.New("toml config authorization.permissionsColumn must be a plain column name")

	// ErrInvalidTable error if authorization.rolesTable is not a plain identifier.
	ErrInvalidTable = errors.New("toml config authorization.rolesTable must be a plain table name")
)
