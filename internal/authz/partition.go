package authz

import (
	"slices"
	"sort"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/artify-go/artify/internal/config"
)

// ReservedDirectories are framework folders of app/ that never form a domain.
var ReservedDirectories = []string{ //nolint:gochecknoglobals
	"App", "Console", "Exceptions", "Http", "Providers", "Responses", "Policies",
}

// Matcher reports whether permission p belongs to domain.
type Matcher func(domain string, p Permission) bool

// ExactMatch assigns a permission to the domain named after its resource,
// create-posts belongs to Posts or Post.
func ExactMatch(domain string, p Permission) bool {
	return normalize(domain) == normalize(p.Resource)
}

// SubstringMatch assigns a permission when its string contains the
// singular, lower-cased domain name anywhere.
func SubstringMatch(domain string, p Permission) bool {
	return strings.Contains(p.String(), strings.ToLower(inflection.Singular(domain)))
}

// MatcherFor returns the Matcher configured by name.
func MatcherFor(name string) (Matcher, error) {
	switch name {
	case config.DomainMatchExact, "":
		return ExactMatch, nil
	case config.DomainMatchSubstring:
		return SubstringMatch, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMatcher, "%q", name)
	}
}

func normalize(s string) string {
	s = strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(s))

	return inflection.Singular(s)
}

// Partition holds the permissions assigned to one domain.
type Partition struct {
	Domain      string
	Permissions []string
}

// PartitionByDomain assigns perms to every non reserved directory.
// A domain without matching permissions gets an empty partition.
func PartitionByDomain(perms, dirs []string, match Matcher) []Partition {
	parsed := make([]Permission, 0, len(perms))
	raw := make([]string, 0, len(perms))

	for _, s := range perms {
		p, err := ParsePermission(s)
		if err != nil {
			continue
		}

		parsed = append(parsed, p)
		raw = append(raw, s)
	}

	var out []Partition

	for _, dir := range dirs {
		if dir == "" || slices.Contains(ReservedDirectories, dir) {
			continue
		}

		part := Partition{Domain: dir}

		for i, p := range parsed {
			if match(dir, p) {
				part.Permissions = append(part.Permissions, raw[i])
			}
		}

		out = append(out, part)
	}

	return out
}

// ListDomains returns the names of the top-level directories of appPath, sorted.
func ListDomains(fs afero.Fs, appPath string) ([]string, error) {
	entries, err := afero.ReadDir(fs, appPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", appPath)
	}

	var dirs []string

	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}

	sort.Strings(dirs)

	return dirs, nil
}
