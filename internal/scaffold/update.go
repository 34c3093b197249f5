package scaffold

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/manifest"
	"github.com/teamsgen/teamsgen/internal/npm"
	"github.com/teamsgen/teamsgen/internal/options"
	"github.com/teamsgen/teamsgen/internal/store"
	"github.com/teamsgen/teamsgen/internal/updater"
)

// update applies the requested upgrades to an existing project. The
// exit codes here are contract: scripts and the create command key off
// them.
func (s *Scaffolder) update(dir string, o *options.ProjectOptions) error {
	if o.UpdateBuildSystem {
		if err := s.updateBuildSystem(dir, o); err != nil {
			return err
		}
	}

	if o.UpdateManifestVersion {
		if err := s.updateManifest(dir, o); err != nil {
			return err
		}
	}

	if err := s.recordFeatureDependencies(dir, o); err != nil {
		return err
	}

	return s.persist(dir, o)
}

// recordFeatureDependencies applies the feature-tied dependency
// additions on a re-run: React blocks already in the manifest and the
// stored Application Insights opt-in both record their dependency.
func (s *Scaffolder) recordFeatureDependencies(dir string, o *options.ProjectOptions) error {
	pkg, err := npm.Load(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "reading package manifest")
	}

	st, err := store.Open(dir)
	if err != nil {
		return err
	}
	useAppInsights := o.UseAzureAppInsights || st.UseAzureAppInsights()

	applyFeatureDependencies(pkg, o.HasReactBlocks(), useAppInsights)

	if err := pkg.Save(dir); err != nil {
		return errors.Wrap(err, "writing package manifest")
	}
	return nil
}

func (s *Scaffolder) updateBuildSystem(dir string, o *options.ProjectOptions) error {
	st, err := store.Open(dir)
	if err != nil {
		return err
	}

	stored := st.GeneratorVersion()
	if stored == "" {
		return errors.NewExitError(
			errors.Wrap(errors.ErrNothingToUpdate, "no generator version stored for this project"),
			errors.ExitNothingToUpdate)
	}

	u, ok := updater.For(stored)
	if !ok {
		s.Log.Error("no core files updater for the stored generator version",
			slog.String("storedVersion", stored))
		return errors.NewExitErrorWithSuggestion(
			errors.Wrapf(errors.ErrNoUpdater, "stored generator version %s", stored),
			errors.ExitNoUpdater,
			"Regenerate the project with the current tool version, then copy your sources over.")
	}

	if err := u.Update(dir, o.LibraryName); err != nil {
		return errors.NewExitError(
			errors.Wrapf(err, "updating core files from version %s", stored),
			errors.ExitUpdaterFailed)
	}

	s.Log.Info("core files updated",
		slog.String("from", stored),
		slog.String("to", s.ToolVersion))
	return nil
}

func (s *Scaffolder) updateManifest(dir string, o *options.ProjectOptions) error {
	path := manifest.Find(dir)
	if path == "" {
		path = filepath.Join(dir, filepath.FromSlash(manifest.RelPath))
	}

	m, err := manifest.Load(path)
	if err != nil {
		return errors.Wrap(err, "reading manifest")
	}

	g, ok := s.Registry.For(o.ManifestVersion)
	if !ok {
		return errors.Wrapf(errors.ErrUnsupportedSchema, "manifest version %q", o.ManifestVersion)
	}
	if err := g.Update(m, o); err != nil {
		return errors.Wrap(err, "migrating manifest")
	}
	if err := m.Save(path); err != nil {
		return errors.Wrap(err, "writing manifest")
	}

	s.Log.Info("manifest migrated",
		slog.String("to", o.ManifestVersion))
	return nil
}
