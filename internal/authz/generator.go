package authz

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/artify-go/artify/internal/config"
)

// Result lists what a run wrote.
type Result struct {
	Policies           []string
	Provider           string
	ProviderRegistered bool
	// Domains maps every domain to its model count, only set for the domain layout.
	Domains map[string]int
}

// Generator renders and writes the policies and the service provider.
type Generator struct {
	cfg      config.Authorization
	fs       afero.Fs
	loader   *Loader
	renderer *Renderer
	writer   *Writer
	match    Matcher
}

type target struct {
	layout Layout
	perms  *Map
}

// NewGenerator prepares a generator, stubs are parsed once here.
func NewGenerator(cfg config.Authorization, fs afero.Fs, source Source) (*Generator, error) {
	if source == nil {
		return nil, ErrSourceNil
	}

	match, err := MatcherFor(cfg.DomainMatch)
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(fs, cfg.StubPath)
	if err != nil {
		return nil, err
	}

	if cfg.UserModel == "" {
		cfg.UserModel = config.DefaultUserModel
	}

	return &Generator{
		cfg:      cfg,
		fs:       fs,
		loader:   NewLoader(source),
		renderer: renderer,
		writer:   NewWriter(fs),
		match:    match,
	}, nil
}

// Run executes one generation pass.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	log.Info().Msg("Gathering Information of Roles")

	perms, err := g.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	targets, domains, err := g.targets(perms)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("Registering Policies & Gates")

	result := &Result{Domains: domains}
	provider := ProviderContext{Namespace: ProviderNamespace, Class: ProviderClass}
	gates := make(map[string]string)

	for _, t := range targets {
		if err = ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation aborted")
		}

		for _, model := range t.perms.Models() {
			actions := t.perms.Actions(model)

			path, err := g.writePolicy(model, actions, t.layout)
			if err != nil {
				return nil, err
			}

			result.Policies = append(result.Policies, path)
			entry := NewProviderEntry(model, actions, t.layout, g.cfg.UserModel)
			entry.Gates = uniqueGates(entry.Gates, gates)
			provider.Entries = append(provider.Entries, entry)
		}
	}

	content, err := g.renderer.Provider(provider)
	if err != nil {
		return nil, err
	}

	result.Provider = filepath.Join(g.cfg.AppPath, "Providers", ProviderClass+".php")
	if err = g.writer.Write(result.Provider, content); err != nil {
		return nil, err
	}

	log.Info().Str("path", result.Provider).Int("policies", len(provider.Entries)).Msg("service provider written")

	appConfig := filepath.Join(g.cfg.ConfigPath, "app.php")

	result.ProviderRegistered, err = RegisterProvider(g.fs, g.writer, appConfig)
	if err != nil {
		return nil, err
	}

	if result.ProviderRegistered {
		log.Info().Str("path", appConfig).Msg("Registering Authy Service Provider")
	} else {
		log.Info().Str("path", appConfig).Msg("It Seems that Authy Service Provider has been registered earlier.")
	}

	return result, nil
}

func (g *Generator) targets(perms []string) ([]target, map[string]int, error) {
	if !g.cfg.ADR {
		m := g.buildMap(perms)

		return []target{{layout: FlatLayout{AppPath: g.cfg.AppPath, ModelsNamespace: g.cfg.ModelsNamespace}, perms: m}}, nil, nil
	}

	dirs, err := ListDomains(g.fs, g.cfg.AppPath)
	if err != nil {
		return nil, nil, err
	}

	var (
		targets []target
		domains = make(map[string]int)
	)

	for _, part := range PartitionByDomain(perms, dirs, g.match) {
		m := g.buildMap(part.Permissions)
		domains[part.Domain] = m.Len()

		if m.Len() == 0 {
			log.Info().Str("domain", part.Domain).Msg("no permissions match this domain")
			continue
		}

		targets = append(targets, target{layout: DomainLayout{AppPath: g.cfg.AppPath, Name: part.Domain}, perms: m})
	}

	return targets, domains, nil
}

// uniqueGates drops gates whose ability was already defined, a later
// Gate::define would silently replace the earlier one.
func uniqueGates(gates []Gate, defined map[string]string) []Gate {
	out := gates[:0]

	for _, gate := range gates {
		if target, ok := defined[gate.Ability]; ok {
			log.Warn().
				Str("ability", gate.Ability).
				Str("kept", target).
				Str("skipped", gate.Target).
				Msg("gate already defined by another domain")

			continue
		}

		defined[gate.Ability] = gate.Target
		out = append(out, gate)
	}

	return out
}

func (g *Generator) buildMap(perms []string) *Map {
	m, skipped := BuildMap(perms)
	for _, s := range skipped {
		log.Warn().Str("permission", s).Msg("skipping permission not shaped like <action>-<resource>")
	}

	return m
}

func (g *Generator) writePolicy(model string, actions []string, layout Layout) (string, error) {
	content, err := g.renderer.Policy(NewPolicyContext(model, actions, layout, g.cfg.UserModel))
	if err != nil {
		return "", err
	}

	path := filepath.Join(layout.PolicyDirectory(), model+"Policy.php")
	if err = g.writer.Write(path, content); err != nil {
		return "", err
	}

	log.Debug().Str("path", path).Strs("actions", actions).Msg("policy written")

	return path, nil
}
