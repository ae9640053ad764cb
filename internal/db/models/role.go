// Package models contains database model definitions.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role represents a role record of the Laravel application.
// Permissions holds the permission strings granted to the role, either as
// a JSON object keyed by permission ({"create-posts": true}) or as a JSON array.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique name of the role (e.g., "admin", "editor").
	Name string `gorm:"unique;size:100;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// Permissions is the JSON encoded permission set.
	Permissions datatypes.JSON
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
