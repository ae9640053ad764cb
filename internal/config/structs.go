package config

import (
	"github.com/artify-go/artify/internal/logger"
)

// Domain matching strategies for the domain oriented layout.
const (
	DomainMatchExact     = "exact"
	DomainMatchSubstring = "substring"

	// DefaultUserModel is the user class of a stock Laravel application.
	DefaultUserModel = `App\User`
)

// Config overall data structure.
type Config struct {
	DevMode       bool // enable dev mode for development
	DB            DB
	Log           logger.Log
	Authorization Authorization
}

// Authorization holds the settings of the policy and gate generator.
type Authorization struct {
	ADR               bool   // domain oriented layout, one folder per domain under AppPath
	ModelsNamespace   string `validate:"required"` // namespace of the models in the flat layout
	PermissionsColumn string `validate:"required"` // roles column holding the permission list
	RolesTable        string `validate:"required"`
	AppPath           string `validate:"required"` // application source tree (Laravel app/)
	ConfigPath        string `validate:"required"` // Laravel config/ directory
	UserModel         string `validate:"required"` // fully qualified user class
	StubPath          string // optional directory overriding the embedded stubs
	DomainMatch       string `validate:"oneof=exact substring"`
}
