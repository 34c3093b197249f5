// Package updater migrates the core build files of an existing
// project between tool generations.
//
// Updaters are keyed by the version family (major.minor) of the
// generator version stored in the project. Each updater brings the
// build configuration and the package scripts of that family up to
// the current layout; manifest migration is handled separately by the
// manifest generators.
package updater

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"

	"github.com/teamsgen/teamsgen/internal/buildcfg"
	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/npm"
)

// CoreFilesUpdater migrates the build system files of a project
// generated by an older tool version.
type CoreFilesUpdater interface {
	// FromFamily is the version family this updater migrates from.
	FromFamily() string

	// Update rewrites the build files in dir. libraryName is the
	// project's resolved library name.
	Update(dir, libraryName string) error
}

// For returns the updater for the given stored generator version, or
// false when no updater covers its version family.
func For(storedVersion string) (CoreFilesUpdater, bool) {
	v, err := semver.NewVersion(storedVersion)
	if err != nil {
		return nil, false
	}
	u, ok := table[fmt.Sprintf("%d.%d", v.Major(), v.Minor())]
	return u, ok
}

// table maps version families to their updater. Families predating
// 3.0 are deliberately absent; those projects must be regenerated.
var table = map[string]CoreFilesUpdater{
	"3.0": v30Updater{},
	"3.1": v31Updater{},
	"3.2": currentUpdater{},
}

// v30Updater migrates 3.0.x projects. That generation predates the
// build configuration file, so one is created from scratch and the
// package scripts are pointed at the bundled build runner.
type v30Updater struct{}

func (v30Updater) FromFamily() string { return "3.0" }

func (v30Updater) Update(dir, libraryName string) error {
	cfg := buildcfg.Default(libraryName)
	if err := cfg.Save(dir); err != nil {
		return errors.Wrap(err, "writing build configuration")
	}
	return rewriteScripts(dir)
}

// v31Updater migrates 3.1.x projects. The build configuration file
// exists but uses the schema 1 layout without source map control.
type v31Updater struct{}

func (v31Updater) FromFamily() string { return "3.1" }

func (v31Updater) Update(dir, libraryName string) error {
	cfg, err := buildcfg.Load(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg = buildcfg.Default(libraryName)
	} else if err != nil {
		return errors.Wrap(err, "reading build configuration")
	}

	cfg.Schema = buildcfg.CurrentSchema
	if cfg.App.LibraryName == "" {
		cfg.App.LibraryName = libraryName
	}
	if cfg.Bundler.Entry == "" {
		cfg.Bundler.Entry = buildcfg.Default(libraryName).Bundler.Entry
	}
	if cfg.Bundler.OutDir == "" {
		cfg.Bundler.OutDir = buildcfg.Default(libraryName).Bundler.OutDir
	}

	if err := cfg.Save(dir); err != nil {
		return errors.Wrap(err, "writing build configuration")
	}
	return rewriteScripts(dir)
}

// currentUpdater covers the running tool's own version family. There
// is nothing to migrate within a family; refreshing the stored
// version is the caller's job.
type currentUpdater struct{}

func (currentUpdater) FromFamily() string { return "3.2" }

func (currentUpdater) Update(dir, libraryName string) error { return nil }

// rewriteScripts points the build and serve scripts at the bundled
// build runner, replacing whatever the previous generation wired.
func rewriteScripts(dir string) error {
	pkg, err := npm.Load(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading package manifest")
	}

	pkg.AddScript("build", "teamsgen-scripts build")
	pkg.AddScript("serve", "teamsgen-scripts serve")

	if err := pkg.Save(dir); err != nil {
		return errors.Wrap(err, "writing package manifest")
	}
	return nil
}
