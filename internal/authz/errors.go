package authz

import "errors"

var (
	// ErrNoPermissions is returned when the roles carry no permission at all.
	ErrNoPermissions = errors.New("roles are not set yet, or maybe they are not an array")
	// ErrNotListLike is returned when a permission column value is neither a JSON object nor an array.
	ErrNotListLike = errors.New("permission column value is not a list")
	// ErrInvalidPermission is returned for strings not shaped like <action>-<resource>.
	ErrInvalidPermission = errors.New("invalid permission")
	// ErrProviderAnchorMissing is returned when config/app.php has no AuthServiceProvider entry to append to.
	ErrProviderAnchorMissing = errors.New("AuthServiceProvider entry not found in providers list")
	// ErrUnknownMatcher is returned for an unknown domain match strategy.
	ErrUnknownMatcher = errors.New("unknown domain match strategy")
	// ErrSourceNil is returned when the generator has no permission source.
	ErrSourceNil = errors.New("permission source is nil")
)
