package manifest

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/options"
)

// Generator produces and updates manifests for one manifest version.
type Generator interface {
	// Version is the manifest version identifier, e.g. "1.5".
	Version() string
	// SchemaURL is the public schema reference written into manifests.
	SchemaURL() string
	// Hidden generators are not offered for brand-new projects.
	Hidden() bool
	// UpgradeFrom lists the versions this generator can upgrade.
	UpgradeFrom() []string
	// Generate renders a manifest for a new project.
	Generate(o *options.ProjectOptions) (*Manifest, error)
	// Update migrates an existing manifest to this version in place.
	Update(m *Manifest, o *options.ProjectOptions) error
}

// Registry is the explicit version-to-generator table. It implements
// options.VersionCatalog.
type Registry struct {
	generators map[string]Generator
	order      []string
}

// NewRegistry returns a registry with all built-in generators.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[string]Generator)}
	for _, g := range builtinGenerators() {
		r.register(g)
	}
	return r
}

func (r *Registry) register(g Generator) {
	r.generators[g.Version()] = g
	r.order = append(r.order, g.Version())
}

// For returns the generator for the given manifest version.
func (r *Registry) For(version string) (Generator, bool) {
	g, ok := r.generators[version]
	return g, ok
}

// IsSupported reports whether a generator exists for the version.
func (r *Registry) IsSupported(version string) bool {
	_, ok := r.generators[version]
	return ok
}

// SupportedVersions lists all registered versions in registration order.
func (r *Registry) SupportedVersions() []string {
	return append([]string(nil), r.order...)
}

// ChoicesForNew lists the versions offered for brand-new projects:
// everything not flagged hidden.
func (r *Registry) ChoicesForNew() []string {
	var out []string
	for _, v := range r.order {
		if !r.generators[v].Hidden() {
			out = append(out, v)
		}
	}
	return out
}

// ChoicesForUpgrade lists the versions declaring an upgrade path from
// the given existing version.
func (r *Registry) ChoicesForUpgrade(from string) []string {
	var out []string
	for _, v := range r.order {
		for _, src := range r.generators[v].UpgradeFrom() {
			if src == from {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// schemaValidator compiles an embedded JSON schema once and validates
// manifests against it.
type schemaValidator struct {
	name string
	raw  []byte
	once sync.Once
	s    *jsonschema.Schema
	cerr error
}

func (v *schemaValidator) compile() (*jsonschema.Schema, error) {
	v.once.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(v.raw))
		if err != nil {
			v.cerr = errors.Wrap(err, "unmarshaling schema JSON")
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(v.name, doc); err != nil {
			v.cerr = errors.Wrap(err, "adding schema resource")
			return
		}
		v.s, v.cerr = c.Compile(v.name)
		if v.cerr != nil {
			v.cerr = errors.Wrap(v.cerr, "compiling schema")
		}
	})
	return v.s, v.cerr
}

// validate checks the manifest against the embedded schema.
func (v *schemaValidator) validate(m *Manifest) error {
	schema, err := v.compile()
	if err != nil {
		return err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshaling manifest")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "reparsing manifest")
	}

	if err := schema.Validate(inst); err != nil {
		return errors.Wrapf(err, "manifest does not satisfy schema %s", v.name)
	}
	return nil
}
