// Package main provides the artify command line tool.
// It reads the permissions stored on the roles of a Laravel application
// and generates the authorization policies, gates and the service provider
// registering them. The roles are read through gorm from MySQL, PostgreSQL
// or SQLite; configuration comes from etc/main.toml.
package main
