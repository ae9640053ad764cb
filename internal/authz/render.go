package authz

import (
	"bytes"
	"embed"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Stub file names, looked up in the override directory first.
const (
	PolicyStub   = "Policy.stub"
	ProviderStub = "AuthyServiceProvider.stub"
)

// Service provider written by the generator.
const (
	ProviderNamespace = AppNamespace + `Providers`
	ProviderClass     = "AuthyServiceProvider"
)

//go:embed stubs/*.stub
var defaultStubs embed.FS

// Ability is one policy method backed by a <action>-<model> permission.
type Ability struct {
	Action     string // method name
	Permission string // e.g. update-post
	Param      string // model parameter, empty when the method takes none
}

// Approval is the owner aware approve method.
type Approval struct {
	Permission string
	Param      string
	Owner      string // PHP expression granting the owner
}

// PolicyContext feeds the policy stub.
type PolicyContext struct {
	Namespace   string // policy namespace without trailing backslash
	Class       string // e.g. PostPolicy
	Model       string
	Var         string
	ModelClass  string // fully qualified model class
	UserClass   string // fully qualified user class
	UserName    string // short user class used in type hints
	IsUserModel bool
	Abilities   []Ability
	Approve     *Approval
}

// Gate maps an ability to a policy method.
type Gate struct {
	Ability string // e.g. create-post
	Target  string // e.g. App\Policies\PostPolicy@create
}

// ProviderEntry is one $policies row plus the gates of that policy.
type ProviderEntry struct {
	ModelClass  string
	PolicyClass string
	Gates       []Gate
}

// ProviderContext feeds the service provider stub.
type ProviderContext struct {
	Namespace string
	Class     string
	Entries   []ProviderEntry
}

// NewPolicyContext describes the policy of model for the given layout.
// The user model gets no model parameter since the policy already receives the user.
func NewPolicyContext(model string, actions []string, layout Layout, userClass string) PolicyContext {
	v := VarName(model)
	userName := shortName(userClass)
	isUser := model == userName

	// $user always names the acting user.
	param := v
	if param == "user" {
		param = "target"
	}

	ctx := PolicyContext{
		Namespace:   strings.TrimSuffix(layout.PolicyNamespace(), `\`),
		Class:       model + "Policy",
		Model:       model,
		Var:         v,
		ModelClass:  layout.ModelNamespace() + model,
		UserClass:   userClass,
		UserName:    userName,
		IsUserModel: isUser,
	}

	if isUser {
		ctx.ModelClass = userClass
	}

	for _, action := range actions {
		permission := action + "-" + v

		if action == ActionApprove {
			ctx.Approve = &Approval{
				Permission: permission,
				Param:      model + " $" + param,
				Owner:      "$user->id == $" + param + "->user_id",
			}

			if isUser {
				ctx.Approve.Param = userName + " $target"
				ctx.Approve.Owner = "$user->id == $target->id"
			}

			continue
		}

		ability := Ability{Action: action, Permission: permission}
		if action != "create" && !isUser {
			ability.Param = model + " $" + param
		}

		ctx.Abilities = append(ctx.Abilities, ability)
	}

	return ctx
}

// NewProviderEntry describes the $policies row and gates of model.
func NewProviderEntry(model string, actions []string, layout Layout, userClass string) ProviderEntry {
	policy := layout.PolicyNamespace() + model + "Policy"

	entry := ProviderEntry{
		ModelClass:  layout.ModelNamespace() + model,
		PolicyClass: policy,
	}

	if model == shortName(userClass) {
		entry.ModelClass = userClass
	}

	for _, action := range actions {
		entry.Gates = append(entry.Gates, Gate{
			Ability: action + "-" + VarName(model),
			Target:  policy + "@" + action,
		})
	}

	return entry
}

func shortName(class string) string {
	if i := strings.LastIndex(class, `\`); i >= 0 {
		return class[i+1:]
	}

	return class
}

// Renderer renders the policy and provider stubs.
type Renderer struct {
	policy   *template.Template
	provider *template.Template
}

// NewRenderer parses the stubs, a stub present in overrideDir replaces the embedded one.
func NewRenderer(fs afero.Fs, overrideDir string) (*Renderer, error) {
	policy, err := parseStub(fs, overrideDir, PolicyStub)
	if err != nil {
		return nil, err
	}

	provider, err := parseStub(fs, overrideDir, ProviderStub)
	if err != nil {
		return nil, err
	}

	return &Renderer{policy: policy, provider: provider}, nil
}

func parseStub(fs afero.Fs, dir, name string) (*template.Template, error) {
	content, err := defaultStubs.ReadFile("stubs/" + name)

	if dir != "" {
		override := filepath.Join(dir, name)
		if ok, _ := afero.Exists(fs, override); ok {
			content, err = afero.ReadFile(fs, override)
		}
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stub %s", name)
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse stub %s", name)
	}

	return tmpl, nil
}

// Policy renders a policy class.
func (r *Renderer) Policy(ctx PolicyContext) ([]byte, error) {
	return execute(r.policy, ctx)
}

// Provider renders the service provider.
func (r *Renderer) Provider(ctx ProviderContext) ([]byte, error) {
	return execute(r.provider, ctx)
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s", tmpl.Name())
	}

	return buf.Bytes(), nil
}
