package authz

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
	"github.com/pkg/errors"
)

// ActionApprove grants approval rights, it gets an owner aware policy method.
const ActionApprove = "approve"

var permissionPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*-[A-Za-z][A-Za-z0-9_-]*$`)

// Permission is a parsed "<action>-<resource>" string, e.g. create-posts.
type Permission struct {
	Action   string
	Resource string
}

// ParsePermission splits s at its first dash.
func ParsePermission(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	if !permissionPattern.MatchString(s) {
		return Permission{}, errors.Wrapf(ErrInvalidPermission, "%q", s)
	}

	action, resource, _ := strings.Cut(s, "-")

	return Permission{Action: strings.ToLower(action), Resource: strings.ToLower(resource)}, nil
}

// String returns the permission in its stored form.
func (p Permission) String() string {
	return p.Action + "-" + p.Resource
}

// Model returns the model class name the resource refers to.
func (p Permission) Model() string {
	return ModelName(p.Resource)
}

// ModelName turns a pluralised resource token into a model class name,
// posts becomes Post and blog-posts becomes BlogPost.
func ModelName(resource string) string {
	var b strings.Builder

	for _, part := range strings.FieldsFunc(resource, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(upperFirst(part))
	}

	return inflection.Singular(b.String())
}

// VarName returns the PHP variable name used for a model, Post becomes post.
func VarName(model string) string {
	r := []rune(model)
	if len(r) == 0 {
		return ""
	}

	r[0] = unicode.ToLower(r[0])

	return string(r)
}

func upperFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}

	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

// Map groups the distinct actions of every model, both in first seen order.
// It is read only once built.
type Map struct {
	models  []string
	actions map[string][]string
}

// BuildMap parses perms and groups them by model.
// Strings that are not valid permissions are returned as skipped.
func BuildMap(perms []string) (*Map, []string) {
	m := &Map{actions: make(map[string][]string)}

	var skipped []string

	for _, raw := range perms {
		p, err := ParsePermission(raw)
		if err != nil {
			skipped = append(skipped, raw)
			continue
		}

		model := p.Model()

		actions, ok := m.actions[model]
		if !ok {
			m.models = append(m.models, model)
		}

		if !slices.Contains(actions, p.Action) {
			m.actions[model] = append(actions, p.Action)
		}
	}

	return m, skipped
}

// Models returns the model names in first seen order.
func (m *Map) Models() []string {
	return append([]string(nil), m.models...)
}

// Actions returns the distinct actions granted on model.
func (m *Map) Actions(model string) []string {
	return append([]string(nil), m.actions[model]...)
}

// Len is the number of models.
func (m *Map) Len() int {
	return len(m.models)
}

// ActionCount is the number of (model, action) pairs, one gate each.
func (m *Map) ActionCount() int {
	n := 0
	for _, a := range m.actions {
		n += len(a)
	}

	return n
}
