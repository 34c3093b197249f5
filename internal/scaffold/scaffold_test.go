package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teamsgen/teamsgen/internal/buildcfg"
	"github.com/teamsgen/teamsgen/internal/logging"
	"github.com/teamsgen/teamsgen/internal/manifest"
	"github.com/teamsgen/teamsgen/internal/npm"
	"github.com/teamsgen/teamsgen/internal/options"
	"github.com/teamsgen/teamsgen/internal/store"
)

const toolVersion = "3.2.0"

func newScaffolder(t *testing.T) *Scaffolder {
	t.Helper()
	return &Scaffolder{
		Registry:    manifest.NewRegistry(),
		ToolVersion: toolVersion,
		Log:         logging.ForTest(t),
	}
}

func newProjectOptions() *options.ProjectOptions {
	return &options.ProjectOptions{
		SolutionName:    "My Teams App",
		Title:           "My App",
		Developer:       "Contoso",
		Namespace:       "net.azurewebsites.foo",
		AppID:           "11111111-2222-3333-4444-555555555555",
		LibraryName:     "my teams app",
		PackageName:     "my teams app",
		Host:            "https://Foo.azurewebsites.net",
		Hostname:        "foo.azurewebsites.net",
		WebsitePrefix:   "foo",
		ManifestVersion: "1.5",
	}
}

func TestCreate_BaseProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-teams-app")

	o := newProjectOptions()
	o.LibraryName = "myteamsapp"
	o.PackageName = "myteamsapp"

	if err := newScaffolder(t).Run(dir, o); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	m, err := manifest.Load(filepath.Join(dir, filepath.FromSlash(manifest.RelPath)))
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	if m.ManifestVersion != "1.5" {
		t.Errorf("ManifestVersion = %q", m.ManifestVersion)
	}

	for _, rel := range []string{
		".gitignore",
		"README.md",
		"tsconfig.json",
		"src/server/server.ts",
		"src/client/client.ts",
		"src/manifest/icon-color.png",
		"src/manifest/icon-outline.png",
	} {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}

	cfg, err := buildcfg.Load(dir)
	if err != nil {
		t.Fatalf("build configuration missing: %v", err)
	}
	if cfg.App.LibraryName != "myteamsapp" {
		t.Errorf("LibraryName = %q", cfg.App.LibraryName)
	}

	st, err := store.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if st.GeneratorVersion() != toolVersion {
		t.Errorf("stored generator version = %q, want %q", st.GeneratorVersion(), toolVersion)
	}
	if st.LibraryName() != "myteamsapp" {
		t.Errorf("stored library name = %q", st.LibraryName())
	}
}

func TestCreate_TabProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")

	o := newProjectOptions()
	o.LibraryName = "myteamsapp"
	o.PackageName = "myteamsapp"
	o.Tab = true

	if err := newScaffolder(t).Run(dir, o); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Placeholders in file names expand to the library and class names.
	tab := filepath.Join(dir, "src", "client", "myteamsappTab", "MyTeamsAppTab.tsx")
	data, err := os.ReadFile(tab)
	if err != nil {
		t.Fatalf("expected tab component: %v", err)
	}
	if want := "class MyTeamsAppTab"; !strings.Contains(string(data), want) {
		t.Errorf("tab component missing %q", want)
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "public", "myteamsappTab", "config.html")); err != nil {
		t.Errorf("expected tab config page: %v", err)
	}

	pkg, err := npm.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pkg.Dependencies["react"]; !ok {
		t.Error("tab project should depend on react")
	}
}

func TestCreate_ConditionalScaffolding(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")

	o := newProjectOptions()
	o.LibraryName = "myteamsapp"
	o.PackageName = "myteamsapp"
	o.Bot = true
	o.UnitTestsEnabled = true
	o.LintingSupport = true
	o.UseAzureAppInsights = true

	if err := newScaffolder(t).Run(dir, o); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "jest.config.js")); err != nil {
		t.Errorf("expected jest config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "tests", "myteamsapp.spec.ts")); err != nil {
		t.Errorf("expected sample test: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".eslintrc.json")); err != nil {
		t.Errorf("expected eslint config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "server", "myteamsappBot", "MyTeamsAppBot.ts")); err != nil {
		t.Errorf("expected bot source: %v", err)
	}

	pkg, err := npm.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if pkg.Scripts["test"] != "jest" {
		t.Errorf("test script = %q", pkg.Scripts["test"])
	}
	if pkg.Scripts["lint"] == "" {
		t.Error("lint script missing")
	}
	if _, ok := pkg.Dependencies["botbuilder"]; !ok {
		t.Error("bot project should depend on botbuilder")
	}
	if _, ok := pkg.Dependencies["applicationinsights"]; !ok {
		t.Error("app insights toggle should add the applicationinsights dependency")
	}
	if _, ok := pkg.Dependencies["react"]; ok {
		t.Error("bot-only project should not depend on react")
	}
}

func TestCreate_NoOptionalScaffolding(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")

	o := newProjectOptions()
	o.LibraryName = "myteamsapp"
	o.PackageName = "myteamsapp"

	if err := newScaffolder(t).Run(dir, o); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, rel := range []string{"jest.config.js", ".eslintrc.json"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err == nil {
			t.Errorf("%s should not be written without its toggle", rel)
		}
	}
}

func TestClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "My Teams App", want: "MyTeamsApp"},
		{in: "myapp", want: "Myapp"},
		{in: "my-app 2", want: "MyApp2"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := className(tt.in); got != tt.want {
			t.Errorf("className(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
