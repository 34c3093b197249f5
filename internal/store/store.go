// Package store persists project-local generator state.
//
// The store is a small key/value file (.teamsgen.yml) in the project
// root. The generate flow reads it to decide whether upgrade prompts
// apply and writes it unconditionally at the end of the write phase.
package store

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

// FileName is the fixed name of the store file in the project root.
const FileName = ".teamsgen.yml"

// Keys consumed and produced by the generate flow.
const (
	KeyGeneratorVersion = "generator-version"
	KeyLibraryName      = "libraryName"
	KeyAppInsights      = "useAzureAppInsights"
	KeyUnitTests        = "unitTestsEnabled"
)

// Store is a project-local key/value store.
type Store struct {
	dir string
	v   *viper.Viper
}

// Open loads the store for the given project directory. A missing store
// file is not an error; the store starts empty.
func Open(dir string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, FileName))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "reading project store")
			}
		}
	}

	return &Store{dir: dir, v: v}, nil
}

// GeneratorVersion returns the stored generator version, or "" if the
// generator has never run in this project.
func (s *Store) GeneratorVersion() string {
	return s.v.GetString(KeyGeneratorVersion)
}

// SetGeneratorVersion records the generator version for future upgrade
// comparisons.
func (s *Store) SetGeneratorVersion(version string) {
	s.v.Set(KeyGeneratorVersion, version)
}

// LibraryName returns the stored library name, or "".
func (s *Store) LibraryName() string {
	return s.v.GetString(KeyLibraryName)
}

// SetLibraryName records the resolved library name.
func (s *Store) SetLibraryName(name string) {
	s.v.Set(KeyLibraryName, name)
}

// UseAzureAppInsights returns the stored Application Insights toggle.
func (s *Store) UseAzureAppInsights() bool {
	return s.v.GetBool(KeyAppInsights)
}

// SetUseAzureAppInsights records the Application Insights toggle.
func (s *Store) SetUseAzureAppInsights(enabled bool) {
	s.v.Set(KeyAppInsights, enabled)
}

// UnitTestsEnabled returns the stored unit test toggle.
func (s *Store) UnitTestsEnabled() bool {
	return s.v.GetBool(KeyUnitTests)
}

// SetUnitTestsEnabled records the unit test toggle.
func (s *Store) SetUnitTestsEnabled(enabled bool) {
	s.v.Set(KeyUnitTests, enabled)
}

// Save writes the store file atomically. The keys are written with
// their exact casing: viper lookups are case-insensitive, but the file
// is read by external tooling that is not.
func (s *Store) Save() error {
	settings := map[string]any{}
	for _, key := range []string{KeyGeneratorVersion, KeyLibraryName, KeyAppInsights, KeyUnitTests} {
		if s.v.IsSet(key) {
			settings[key] = s.v.Get(key)
		}
	}
	return fileutil.AtomicWriteYAML(filepath.Join(s.dir, FileName), settings)
}
