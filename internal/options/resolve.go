package options

import (
	"net/url"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/prompt"
)

// VersionCatalog answers which manifest versions can be offered. The
// manifest generator registry implements it.
type VersionCatalog interface {
	// IsSupported reports whether a generator exists for the version.
	IsSupported(version string) bool
	// ChoicesForNew lists versions offered for brand-new projects.
	ChoicesForNew() []string
	// ChoicesForUpgrade lists versions declaring an upgrade path from
	// the given existing version.
	ChoicesForUpgrade(from string) []string
}

// Inputs carries the prior project state consulted during resolution.
type Inputs struct {
	// Existing is nil for a brand-new project.
	Existing *ExistingProject

	// StoredGeneratorVersion is the version persisted by the last run,
	// or "" when the generator never ran here.
	StoredGeneratorVersion string

	// Library-name probe sources, in probe order.
	BuildCfgLibraryName string
	StoredLibraryName   string
	PackageJSONName     string

	// SolutionName presets the answer when given on the command line.
	SolutionName string

	// ForceUpdateBuildSystem requests a build-system update without the
	// prompt being offered (command-line flag).
	ForceUpdateBuildSystem bool
}

// Resolver turns prompt answers and prior project state into a complete
// ProjectOptions record.
type Resolver struct {
	Prompter    *prompt.Prompter
	Catalog     VersionCatalog
	ToolVersion string

	// NewAppID generates the unique app id; defaults to a random UUID.
	NewAppID func() string
}

func (r *Resolver) newAppID() string {
	if r.NewAppID != nil {
		return r.NewAppID()
	}
	return uuid.NewString()
}

// Resolve runs the prompting flow. It returns (nil, nil) when the user
// declines to continue on an existing project: the caller performs no
// writes and exits cleanly.
func (r *Resolver) Resolve(in Inputs) (*ProjectOptions, error) {
	if in.Existing != nil {
		return r.resolveExisting(in)
	}
	return r.resolveNew(in)
}

func (r *Resolver) resolveNew(in Inputs) (*ProjectOptions, error) {
	o := &ProjectOptions{}

	solutionName := in.SolutionName
	if solutionName == "" {
		var err error
		solutionName, err = r.Prompter.Input("What is your solution name?", "teams-app", ValidateSolutionName)
		if err != nil {
			return nil, err
		}
	} else if err := ValidateSolutionName(solutionName); err != nil {
		return nil, err
	}
	o.SolutionName = solutionName
	o.LibraryName = DeriveLibraryName(solutionName)
	o.PackageName = DerivePackageName(o.LibraryName)

	title, err := r.Prompter.Input("Name of your app?", solutionName, validateNonEmpty)
	if err != nil {
		return nil, err
	}
	o.Title = title

	developer, err := r.Prompter.Input("Your (company) name?", "", validateNonEmpty)
	if err != nil {
		return nil, err
	}
	o.Developer = developer

	rawHost, err := r.Prompter.Input("The URL where you will host this solution?",
		"https://"+o.PackageName+".azurewebsites.net", ValidateHostURL)
	if err != nil {
		return nil, err
	}
	o.Host, o.Hostname = NormalizeHost(rawHost)
	o.Namespace = DeriveNamespace(o.Hostname)
	o.WebsitePrefix = DeriveWebsitePrefix(o.Hostname)

	mpn, err := r.Prompter.Input("Your Partner (MPN) id, if you have one?", "", nil)
	if err != nil {
		return nil, err
	}
	o.MPNID = NormalizeMPNID(mpn)

	parts, err := r.Prompter.MultiSelect("What do you want to add to your project?", []prompt.Choice{
		{Value: PartTab, Name: "A tab"},
		{Value: PartBot, Name: "A bot"},
		{Value: PartCustomBot, Name: "An outgoing webhook (custom bot)"},
		{Value: PartConnector, Name: "A connector"},
		{Value: PartMessageExtension, Name: "A message extension"},
		{Value: PartLocalization, Name: "Localization support"},
	})
	if err != nil {
		return nil, err
	}
	o.ApplyParts(parts)

	version, err := r.selectManifestVersion("Which manifest version would you like to use?",
		r.Catalog.ChoicesForNew())
	if err != nil {
		return nil, err
	}
	o.ManifestVersion = version

	if o.UnitTestsEnabled, err = r.Prompter.Confirm("Include unit test scaffolding?", true); err != nil {
		return nil, err
	}
	if o.LintingSupport, err = r.Prompter.Confirm("Include linting support?", true); err != nil {
		return nil, err
	}
	if o.UseAzureAppInsights, err = r.Prompter.Confirm("Use Azure Application Insights for telemetry?", false); err != nil {
		return nil, err
	}
	if o.TelemetryOptIn, err = r.Prompter.Confirm("Report anonymous usage data?", true); err != nil {
		return nil, err
	}

	o.AppID = r.newAppID()

	return o, nil
}

func (r *Resolver) resolveExisting(in Inputs) (*ProjectOptions, error) {
	existing := in.Existing

	if !r.Catalog.IsSupported(existing.ManifestVersion) {
		return nil, errors.NewExitError(
			errors.Wrapf(errors.ErrUnsupportedSchema, "manifest version %q", existing.ManifestVersion),
			errors.ExitUnsupportedSchema)
	}

	cont, err := r.Prompter.Confirm("This looks like an existing project. Continue?", false)
	if err != nil {
		return nil, err
	}
	if !cont {
		return nil, nil
	}

	o := &ProjectOptions{
		Existing:  existing,
		Title:     existing.Title,
		Developer: existing.Developer,
		Hostname:  existing.Hostname,
		Host:      "https://" + existing.Hostname,
	}
	o.Namespace = DeriveNamespace(o.Hostname)
	o.WebsitePrefix = DeriveWebsitePrefix(o.Hostname)
	o.ManifestVersion = existing.ManifestVersion
	o.LibraryName = probeLibraryName(in)
	o.PackageName = DerivePackageName(o.LibraryName)

	upgrades := r.Catalog.ChoicesForUpgrade(existing.ManifestVersion)
	if len(upgrades) > 0 {
		doUpgrade, err := r.Prompter.Confirm("Update the manifest to a newer version?", false)
		if err != nil {
			return nil, err
		}
		if doUpgrade {
			version, err := r.selectManifestVersion("Which manifest version would you like to upgrade to?", upgrades)
			if err != nil {
				return nil, err
			}
			o.ManifestVersion = version
			o.UpdateManifestVersion = true
		}
	}

	o.UpdateBuildSystem = in.ForceUpdateBuildSystem
	if !o.UpdateBuildSystem && r.buildUpdateAvailable(in.StoredGeneratorVersion) {
		if o.UpdateBuildSystem, err = r.Prompter.Confirm("Update the core build files to the current generator version?", false); err != nil {
			return nil, err
		}
	}

	if o.TelemetryOptIn, err = r.Prompter.Confirm("Report anonymous usage data?", true); err != nil {
		return nil, err
	}

	return o, nil
}

// buildUpdateAvailable reports whether the stored generator version is
// older than the running tool. Unparseable stored versions never offer
// the prompt.
func (r *Resolver) buildUpdateAvailable(stored string) bool {
	if stored == "" {
		return false
	}
	sv, err := semver.NewVersion(strings.TrimPrefix(stored, "v"))
	if err != nil {
		return false
	}
	tv, err := semver.NewVersion(strings.TrimPrefix(r.ToolVersion, "v"))
	if err != nil {
		return false
	}
	return sv.LessThan(tv)
}

// probeLibraryName resolves the library name for an existing project:
// build config declaration, then the stored name, then the package
// metadata name. First match wins.
func probeLibraryName(in Inputs) string {
	for _, candidate := range []string{in.BuildCfgLibraryName, in.StoredLibraryName, in.PackageJSONName} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (r *Resolver) selectManifestVersion(question string, versions []string) (string, error) {
	choices := make([]prompt.Choice, len(versions))
	for i, v := range versions {
		choices[i] = prompt.Choice{Value: v, Name: "v" + v}
	}
	return r.Prompter.Select(question, choices)
}

// pathUnsafe lists characters rejected in solution names because they
// are unsafe in folder names on at least one supported platform.
const pathUnsafe = `/\:*?"<>|`

// ValidateSolutionName rejects empty names and names containing
// path-unsafe characters.
func ValidateSolutionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ErrMissingName
	}
	if strings.ContainsAny(name, pathUnsafe) {
		return errors.Newf("name must not contain any of %s", pathUnsafe)
	}
	if strings.HasPrefix(name, ".") {
		return errors.New("name must not start with a dot")
	}
	return nil
}

// ValidateHostURL requires an absolute http(s) URL with a host.
func ValidateHostURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return errors.New("enter a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("the URL must start with http:// or https://")
	}
	if u.Host == "" {
		return errors.New("the URL must include a hostname")
	}
	return nil
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.ErrMissingName
	}
	return nil
}
