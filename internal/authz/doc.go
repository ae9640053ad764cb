// Package authz generates Laravel authorization boilerplate from the
// permissions stored on the application's roles.
//
// A run loads every "<action>-<resource>" permission string, groups the
// actions by model, renders one policy class per model plus a service
// provider defining the policies and gates, and registers that provider in
// config/app.php. With the domain oriented layout the permissions are first
// partitioned over the domain folders of the application.
package authz
