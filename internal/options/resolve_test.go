package options

import (
	"strings"
	"testing"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/prompt"
)

type fakeCatalog struct {
	supported  map[string]bool
	newChoices []string
	upgrades   map[string][]string
}

func (c *fakeCatalog) IsSupported(v string) bool { return c.supported[v] }
func (c *fakeCatalog) ChoicesForNew() []string   { return c.newChoices }
func (c *fakeCatalog) ChoicesForUpgrade(from string) []string {
	return c.upgrades[from]
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		supported:  map[string]bool{"1.4": true, "1.5": true},
		newChoices: []string{"1.5"},
		upgrades:   map[string][]string{"1.4": {"1.5"}},
	}
}

func newResolver(input string, catalog VersionCatalog) *Resolver {
	return &Resolver{
		Prompter:    prompt.NewWithIO(strings.NewReader(input), &strings.Builder{}),
		Catalog:     catalog,
		ToolVersion: "3.2.0",
	}
}

// newProjectInput answers, in order: title, developer, host, MPN id,
// parts, unit tests, linting, app insights, telemetry. The manifest
// version auto-selects because the catalog offers a single choice.
const newProjectInput = "My App\nContoso\nhttps://Foo.azurewebsites.net/\n\n1\n\n\n\n\n"

func TestResolve_NewProject(t *testing.T) {
	r := newResolver(newProjectInput, testCatalog())

	o, err := r.Resolve(Inputs{SolutionName: "MyTeamsApp"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if o.SolutionName != "MyTeamsApp" {
		t.Errorf("SolutionName = %q", o.SolutionName)
	}
	if o.LibraryName != "myteamsapp" {
		t.Errorf("LibraryName = %q, want case-folded solution name", o.LibraryName)
	}
	if o.PackageName != "myteamsapp" {
		t.Errorf("PackageName = %q, want lower-cased library name", o.PackageName)
	}
	if o.Host != "https://Foo.azurewebsites.net" {
		t.Errorf("Host = %q, want trailing slash stripped", o.Host)
	}
	if o.Hostname != "foo.azurewebsites.net" {
		t.Errorf("Hostname = %q", o.Hostname)
	}
	if o.Namespace != "net.azurewebsites.foo" {
		t.Errorf("Namespace = %q", o.Namespace)
	}
	if o.WebsitePrefix != "foo" {
		t.Errorf("WebsitePrefix = %q", o.WebsitePrefix)
	}
	if o.MPNID != nil {
		t.Errorf("MPNID = %q, want nil for empty answer", *o.MPNID)
	}
	if o.ManifestVersion != "1.5" {
		t.Errorf("ManifestVersion = %q", o.ManifestVersion)
	}
	if !o.Tab {
		t.Error("first part (tab) was selected")
	}
	if o.Bot || o.Connector {
		t.Error("unselected parts must stay false")
	}
	if !o.UnitTestsEnabled || !o.LintingSupport {
		t.Error("default-yes confirms should resolve true on empty answers")
	}
	if o.UseAzureAppInsights {
		t.Error("app insights defaults to false")
	}
	if o.AppID == "" {
		t.Error("AppID must be generated")
	}
	if o.Existing != nil || o.UpdateManifestVersion || o.UpdateBuildSystem {
		t.Error("new-project options must not carry upgrade fields")
	}
}

func TestResolve_NewProject_AppIDDiffersPerRun(t *testing.T) {
	first := newResolver(newProjectInput, testCatalog())
	second := newResolver(newProjectInput, testCatalog())

	a, err := first.Resolve(Inputs{SolutionName: "MyTeamsApp"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := second.Resolve(Inputs{SolutionName: "MyTeamsApp"})
	if err != nil {
		t.Fatal(err)
	}

	if a.AppID == b.AppID {
		t.Error("AppID must differ between runs")
	}

	// Everything else must be identical.
	a.AppID, b.AppID = "", ""
	if *a != *b {
		t.Errorf("options differ beyond AppID:\n%+v\n%+v", *a, *b)
	}
}

func TestResolve_NewProject_NonAzureHost(t *testing.T) {
	input := "My App\nContoso\nhttps://example.org\n\n\n\n\n\n\n"
	r := newResolver(input, testCatalog())

	o, err := r.Resolve(Inputs{SolutionName: "my-app"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if o.WebsitePrefix != WebsitePrefixPlaceholder {
		t.Errorf("WebsitePrefix = %q, want placeholder", o.WebsitePrefix)
	}
}

func TestResolve_ExistingUnsupportedSchema(t *testing.T) {
	r := newResolver("", testCatalog())

	_, err := r.Resolve(Inputs{
		Existing: &ExistingProject{ManifestVersion: "0.9"},
	})

	if !errors.Is(err, errors.ErrUnsupportedSchema) {
		t.Fatalf("error = %v, want ErrUnsupportedSchema", err)
	}
	if got := errors.ExitCode(err); got != errors.ExitUnsupportedSchema {
		t.Errorf("ExitCode = %d, want %d", got, errors.ExitUnsupportedSchema)
	}
}

func TestResolve_ExistingDeclined(t *testing.T) {
	// Default answer to the continue prompt is no.
	r := newResolver("\n", testCatalog())

	o, err := r.Resolve(Inputs{
		Existing: &ExistingProject{ManifestVersion: "1.5"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if o != nil {
		t.Error("declined re-run must resolve to nil options")
	}
}

func TestResolve_ExistingUpgrade(t *testing.T) {
	// continue=y, update manifest=y (version auto-selects), build
	// update prompt (stored 3.1.0 < tool 3.2.0)=y, telemetry default.
	input := "y\ny\ny\n\n"
	r := newResolver(input, testCatalog())

	o, err := r.Resolve(Inputs{
		Existing: &ExistingProject{
			ManifestVersion: "1.4",
			Title:           "Existing App",
			Developer:       "Contoso",
			Hostname:        "existing.azurewebsites.net",
		},
		StoredGeneratorVersion: "3.1.0",
		StoredLibraryName:      "existingapp",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !o.IsUpgrade() {
		t.Fatal("options should be in the upgrade branch")
	}
	if !o.UpdateManifestVersion || o.ManifestVersion != "1.5" {
		t.Errorf("manifest upgrade not recorded: update=%v version=%q", o.UpdateManifestVersion, o.ManifestVersion)
	}
	if !o.UpdateBuildSystem {
		t.Error("build system update should be recorded")
	}
	if o.Title != "Existing App" || o.Developer != "Contoso" {
		t.Error("identity should come from the existing manifest")
	}
	if o.LibraryName != "existingapp" {
		t.Errorf("LibraryName = %q, want stored name", o.LibraryName)
	}
}

func TestResolve_ExistingNoStoredVersion_NoBuildPrompt(t *testing.T) {
	// continue=y, update manifest=n, telemetry default. If the build
	// update prompt were offered the input would desync and telemetry
	// would read the wrong line.
	input := "y\nn\n\n"
	r := newResolver(input, testCatalog())

	o, err := r.Resolve(Inputs{
		Existing: &ExistingProject{ManifestVersion: "1.4", Hostname: "x.example.org"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if o.UpdateBuildSystem {
		t.Error("no stored version: build update must not be requested")
	}
	if !o.TelemetryOptIn {
		t.Error("telemetry confirm should have consumed the final empty answer")
	}
}

func TestResolve_ForceUpdateBuildSystem(t *testing.T) {
	// continue=y, update manifest=n, telemetry default; the flag forces
	// the build update without a prompt.
	input := "y\nn\n\n"
	r := newResolver(input, testCatalog())

	o, err := r.Resolve(Inputs{
		Existing:               &ExistingProject{ManifestVersion: "1.5", Hostname: "x.example.org"},
		ForceUpdateBuildSystem: true,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !o.UpdateBuildSystem {
		t.Error("flag must force UpdateBuildSystem")
	}
}

func TestProbeLibraryName_Order(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want string
	}{
		{
			name: "build config wins",
			in:   Inputs{BuildCfgLibraryName: "fromBuild", StoredLibraryName: "fromStore", PackageJSONName: "frompkg"},
			want: "fromBuild",
		},
		{
			name: "stored next",
			in:   Inputs{StoredLibraryName: "fromStore", PackageJSONName: "frompkg"},
			want: "fromStore",
		},
		{
			name: "package metadata last",
			in:   Inputs{PackageJSONName: "frompkg"},
			want: "frompkg",
		},
		{
			name: "nothing found",
			in:   Inputs{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := probeLibraryName(tt.in); got != tt.want {
				t.Errorf("probeLibraryName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildUpdateAvailable(t *testing.T) {
	r := &Resolver{ToolVersion: "3.2.0"}

	tests := []struct {
		stored string
		want   bool
	}{
		{"", false},
		{"3.1.0", true},
		{"v3.1.9", true},
		{"3.2.0", false},
		{"3.3.0", false},
		{"not-a-version", false},
	}

	for _, tt := range tests {
		if got := r.buildUpdateAvailable(tt.stored); got != tt.want {
			t.Errorf("buildUpdateAvailable(%q) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}
