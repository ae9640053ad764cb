package authz

import (
	"path/filepath"
)

// AppNamespace is the root namespace of a Laravel application.
const AppNamespace = `App\`

// Layout tells where the models and policies of a set of permissions live.
// Namespaces end with a backslash.
type Layout interface {
	Domain() string
	ModelNamespace() string
	PolicyNamespace() string
	PolicyDirectory() string
}

// FlatLayout is the default Laravel layout, models in one namespace and
// policies under app/Policies.
type FlatLayout struct {
	AppPath         string
	ModelsNamespace string
}

// Domain is empty for the flat layout.
func (FlatLayout) Domain() string { return "" }

// ModelNamespace returns the configured models namespace.
func (l FlatLayout) ModelNamespace() string { return l.ModelsNamespace }

// PolicyNamespace returns App\Policies\.
func (FlatLayout) PolicyNamespace() string { return AppNamespace + `Policies\` }

// PolicyDirectory returns app/Policies.
func (l FlatLayout) PolicyDirectory() string { return filepath.Join(l.AppPath, "Policies") }

// DomainLayout keeps models and policies inside app/<Domain>/Domain.
type DomainLayout struct {
	AppPath string
	Name    string
}

// Domain returns the domain folder name.
func (l DomainLayout) Domain() string { return l.Name }

// ModelNamespace returns App\<Domain>\Domain\Models\.
func (l DomainLayout) ModelNamespace() string {
	return AppNamespace + l.Name + `\Domain\Models\`
}

// PolicyNamespace returns App\<Domain>\Domain\Policies\.
func (l DomainLayout) PolicyNamespace() string {
	return AppNamespace + l.Name + `\Domain\Policies\`
}

// PolicyDirectory returns app/<Domain>/Domain/Policies.
func (l DomainLayout) PolicyDirectory() string {
	return filepath.Join(l.AppPath, l.Name, "Domain", "Policies")
}
