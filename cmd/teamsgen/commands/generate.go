package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teamsgen/teamsgen/internal/buildcfg"
	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/logging"
	"github.com/teamsgen/teamsgen/internal/manifest"
	"github.com/teamsgen/teamsgen/internal/npm"
	"github.com/teamsgen/teamsgen/internal/options"
	"github.com/teamsgen/teamsgen/internal/prompt"
	"github.com/teamsgen/teamsgen/internal/scaffold"
	"github.com/teamsgen/teamsgen/internal/store"
	"github.com/teamsgen/teamsgen/internal/telemetry"
)

// solutionName holds the value of the --solution-name flag.
var solutionName string

// forceUpdateBuildSystem holds the value of the --update-build-system flag.
var forceUpdateBuildSystem bool

// noTelemetry holds the value of the --no-telemetry flag.
var noTelemetry bool

func init() {
	generateCmd.Flags().StringVar(&solutionName, "solution-name", "",
		"solution name; skips the solution name prompt")
	generateCmd.Flags().BoolVar(&forceUpdateBuildSystem, "update-build-system", false,
		"migrate the core build files without prompting (existing projects)")
	generateCmd.Flags().BoolVar(&noTelemetry, "no-telemetry", false,
		"disable anonymous usage reporting for this run")

	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scaffold a new Teams app, or upgrade an existing one",
	Long: `generate runs the scaffolding flow. In an empty directory it asks for
the solution identity, the building blocks and the manifest version,
then writes the project into a subfolder named after the solution.

Inside an existing generated project it offers manifest and build
system upgrades instead.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	log := logging.FromContext(cmd.Context())

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "determining working directory")
	}

	in, err := buildInputs(cwd)
	if err != nil {
		return err
	}
	in.SolutionName = solutionName
	in.ForceUpdateBuildSystem = forceUpdateBuildSystem

	registry := manifest.NewRegistry()
	resolver := &options.Resolver{
		Prompter:    prompt.New(),
		Catalog:     registry,
		ToolVersion: version,
	}

	o, err := resolver.Resolve(in)
	if err != nil {
		return err
	}
	if o == nil {
		log.Info("nothing to do")
		return nil
	}

	reporter := telemetry.New(telemetry.Config{
		Enabled:     o.TelemetryOptIn && !noTelemetry,
		ToolVersion: version,
		Sink:        telemetry.NewHTTPSink(),
		Log:         log,
	})
	defer reporter.Flush(cmd.Context())
	countRun(reporter, o)

	dir := cwd
	if !o.IsUpgrade() {
		dir = filepath.Join(cwd, o.SolutionName)
		if _, statErr := os.Stat(dir); statErr == nil {
			return errors.Wrapf(errors.ErrFolderExists, "%s", dir)
		}
	}

	s := &scaffold.Scaffolder{
		Registry:    registry,
		ToolVersion: version,
		Log:         log,
	}
	if err := s.Run(dir, o); err != nil {
		reporter.Count("generator", "failed")
		return err
	}

	reporter.Count("generator", "done")
	return nil
}

// buildInputs probes the working directory for an existing project:
// the manifest decides the branch, and the store, build config and
// package metadata feed the library name probe.
func buildInputs(dir string) (options.Inputs, error) {
	var in options.Inputs

	path := manifest.Find(dir)
	if path == "" {
		return in, nil
	}

	m, err := manifest.Load(path)
	if err != nil {
		return in, errors.Wrap(err, "reading existing manifest")
	}
	in.Existing = &options.ExistingProject{
		ManifestVersion: m.ManifestVersion,
		Title:           m.AppName(),
		Developer:       m.Developer.Name,
		Hostname:        m.Hostname(),
		HasReactBlocks:  m.HasReactBlocks(),
	}

	st, err := store.Open(dir)
	if err != nil {
		return in, err
	}
	in.StoredGeneratorVersion = st.GeneratorVersion()
	in.StoredLibraryName = st.LibraryName()

	if cfg, err := buildcfg.Load(dir); err == nil {
		in.BuildCfgLibraryName = cfg.App.LibraryName
	}
	if pkg, err := npm.Load(dir); err == nil {
		in.PackageJSONName = pkg.Name
	}

	return in, nil
}

// countRun records the shape of the run: branch, selected blocks and
// manifest version.
func countRun(r *telemetry.Reporter, o *options.ProjectOptions) {
	r.Count("generator", "started")
	r.Count("manifest", o.ManifestVersion)

	if o.IsUpgrade() {
		if o.UpdateManifestVersion {
			r.Count("upgrade", "manifest")
		}
		if o.UpdateBuildSystem {
			r.Count("upgrade", "buildsystem")
		}
		return
	}

	for part, on := range map[string]bool{
		options.PartTab:              o.Tab,
		options.PartBot:              o.Bot,
		options.PartCustomBot:        o.CustomBot,
		options.PartConnector:        o.Connector,
		options.PartMessageExtension: o.MessageExtension,
		options.PartLocalization:     o.Localization,
	} {
		if on {
			r.Count("parts", part)
		}
	}
}
