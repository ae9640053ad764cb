// Package role provides CRUD operations for the roles table.
package role

import (
	"database/sql"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/artify-go/artify/internal/db/models"
)

const (
	nameQueryPattern = "name = ?"
)

var (
	// ErrRoleNotFound is returned when a role is not found.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleNameEmpty is returned when attempting to create/update a role with an empty name.
	ErrRoleNameEmpty = errors.New("role name cannot be empty")
	// ErrRoleAlreadyExists is returned when attempting to create a role that already exists.
	ErrRoleAlreadyExists = errors.New("role already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a role by its name.
func Get(db *gorm.DB, name string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role
	result := db.Where(nameQueryPattern, name).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, result.Error
	}

	return &role, nil
}

// GetAll retrieves all roles ordered by id.
func GetAll(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	result := db.Order("id").Find(&roles)
	if result.Error != nil {
		return nil, result.Error
	}

	return roles, nil
}

// Create creates a new role granting the given permissions.
func Create(db *gorm.DB, name string, permissions []string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var existing models.Role
	result := db.Where(nameQueryPattern, name).First(&existing)
	if result.Error == nil {
		return nil, ErrRoleAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	encoded, err := EncodePermissions(permissions)
	if err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        name,
		Permissions: encoded,
	}

	result = db.Create(role)
	if result.Error != nil {
		return nil, result.Error
	}

	return role, nil
}

// Set creates or replaces the permissions of a role by name (upsert operation).
func Set(db *gorm.DB, name string, permissions []string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrRoleNameEmpty
	}

	var role models.Role
	result := db.Where(nameQueryPattern, name).First(&role)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, name, permissions)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	encoded, err := EncodePermissions(permissions)
	if err != nil {
		return nil, err
	}

	role.Permissions = encoded
	result = db.Save(&role)
	if result.Error != nil {
		return nil, result.Error
	}

	return &role, nil
}

// DeleteByName deletes a role by name.
func DeleteByName(db *gorm.DB, name string) error {
	if db == nil {
		return ErrDBNil
	}
	if name == "" {
		return ErrRoleNameEmpty
	}

	result := db.Where(nameQueryPattern, name).Delete(&models.Role{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoleNotFound
	}

	return nil
}

// PluckPermissions returns the raw permission column of every role in table,
// ordered by id. NULL values are skipped.
// table and column must be validated identifiers.
func PluckPermissions(db *gorm.DB, table, column string) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var values []sql.NullString
	result := db.Table(table).Order("id").Pluck(column, &values)
	if result.Error != nil {
		return nil, result.Error
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if v.Valid {
			out = append(out, v.String)
		}
	}

	return out, nil
}

// EncodePermissions stores permissions the way Laravel casts them, as a JSON object
// mapping every permission to true.
func EncodePermissions(permissions []string) (datatypes.JSON, error) {
	set := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		set[p] = true
	}

	raw, err := json.Marshal(set)
	if err != nil {
		return nil, err
	}

	return datatypes.JSON(raw), nil
}
