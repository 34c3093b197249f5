// Package npm models the package.json of a generated project.
//
// The generator assembles dependencies and script entries from the
// selected building blocks; the core files updaters migrate them
// between tool generations.
package npm

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

// FileName is the fixed package metadata file name.
const FileName = "package.json"

// Package is the subset of package.json the generator owns.
type Package struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// New creates a package descriptor for a new project.
func New(name string) *Package {
	return &Package{
		Name:    name,
		Version: "0.0.1",
		Private: true,
		Scripts: map[string]string{
			"build": "teamsgen-scripts build",
			"serve": "teamsgen-scripts serve",
		},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
}

// Load reads the package.json in dir. A missing file surfaces as
// os.ErrNotExist.
func Load(dir string) (*Package, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	var p Package
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", FileName)
	}
	return &p, nil
}

// Save writes the package.json into dir atomically.
func (p *Package) Save(dir string) error {
	return fileutil.AtomicWriteJSON(filepath.Join(dir, FileName), p)
}

// AddScript records a script entry, overwriting any previous value.
func (p *Package) AddScript(name, command string) {
	if p.Scripts == nil {
		p.Scripts = map[string]string{}
	}
	p.Scripts[name] = command
}

// AddDependency records a runtime dependency. An existing pin wins.
func (p *Package) AddDependency(name, version string) {
	if p.Dependencies == nil {
		p.Dependencies = map[string]string{}
	}
	if _, ok := p.Dependencies[name]; !ok {
		p.Dependencies[name] = version
	}
}

// AddDevDependency records a development dependency. An existing pin wins.
func (p *Package) AddDevDependency(name, version string) {
	if p.DevDependencies == nil {
		p.DevDependencies = map[string]string{}
	}
	if _, ok := p.DevDependencies[name]; !ok {
		p.DevDependencies[name] = version
	}
}
