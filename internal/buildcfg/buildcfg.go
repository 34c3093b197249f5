// Package buildcfg reads and writes the project build configuration.
//
// The build config (teamsgen.build.toml) is generated into every new
// project and migrated between tool generations by the core files
// updaters. It declares the library name and bundler settings the
// generated build scripts consume.
package buildcfg

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

// FileName is the fixed name of the build config in the project root.
const FileName = "teamsgen.build.toml"

// CurrentSchema is the build config schema written by this tool version.
const CurrentSchema = 2

// Config is the on-disk build configuration.
type Config struct {
	Schema  int     `toml:"schema"`
	App     App     `toml:"app"`
	Bundler Bundler `toml:"bundler"`
}

// App holds application-level build settings.
type App struct {
	LibraryName string `toml:"library_name"`
}

// Bundler holds bundler settings consumed by the generated build scripts.
type Bundler struct {
	Entry      string `toml:"entry"`
	OutDir     string `toml:"out_dir"`
	SourceMaps bool   `toml:"source_maps"`
}

// Default returns the build config written into new projects.
func Default(libraryName string) *Config {
	return &Config{
		Schema: CurrentSchema,
		App: App{
			LibraryName: libraryName,
		},
		Bundler: Bundler{
			Entry:      "src/client/index.ts",
			OutDir:     "dist",
			SourceMaps: true,
		},
	}
}

// Load reads the build config from dir. A missing file surfaces as
// os.ErrNotExist so callers can treat it as "no declared name".
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", FileName)
	}
	return &cfg, nil
}

// Save writes the build config into dir atomically.
func (c *Config) Save(dir string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling build config")
	}
	return fileutil.AtomicWriteFile(filepath.Join(dir, FileName), data, 0o644)
}
