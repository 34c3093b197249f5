package updater

import (
	"testing"

	"github.com/teamsgen/teamsgen/internal/buildcfg"
	"github.com/teamsgen/teamsgen/internal/npm"
)

func TestFor(t *testing.T) {
	tests := []struct {
		version string
		family  string
		ok      bool
	}{
		{version: "3.0.0", family: "3.0", ok: true},
		{version: "3.0.4", family: "3.0", ok: true},
		{version: "v3.1.2", family: "3.1", ok: true},
		{version: "3.2.0", family: "3.2", ok: true},
		{version: "2.9.0", ok: false},
		{version: "4.0.0", ok: false},
		{version: "garbage", ok: false},
		{version: "", ok: false},
	}

	for _, tt := range tests {
		u, ok := For(tt.version)
		if ok != tt.ok {
			t.Errorf("For(%q) ok = %v, want %v", tt.version, ok, tt.ok)
			continue
		}
		if ok && u.FromFamily() != tt.family {
			t.Errorf("For(%q).FromFamily() = %q, want %q", tt.version, u.FromFamily(), tt.family)
		}
	}
}

func TestV30Update_CreatesBuildConfig(t *testing.T) {
	dir := t.TempDir()

	pkg := npm.New("myteamsapp")
	pkg.AddScript("build", "gulp build")
	pkg.AddScript("serve", "gulp serve")
	if err := pkg.Save(dir); err != nil {
		t.Fatal(err)
	}

	u, ok := For("3.0.2")
	if !ok {
		t.Fatal("no updater for 3.0")
	}
	if err := u.Update(dir, "myteamsapp"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	cfg, err := buildcfg.Load(dir)
	if err != nil {
		t.Fatalf("build configuration missing after update: %v", err)
	}
	if cfg.Schema != buildcfg.CurrentSchema {
		t.Errorf("Schema = %d, want %d", cfg.Schema, buildcfg.CurrentSchema)
	}
	if cfg.App.LibraryName != "myteamsapp" {
		t.Errorf("LibraryName = %q", cfg.App.LibraryName)
	}

	got, err := npm.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Scripts["build"] != "teamsgen-scripts build" {
		t.Errorf("build script = %q after update", got.Scripts["build"])
	}
	if got.Scripts["serve"] != "teamsgen-scripts serve" {
		t.Errorf("serve script = %q after update", got.Scripts["serve"])
	}
}

func TestV31Update_BumpsSchemaKeepsSettings(t *testing.T) {
	dir := t.TempDir()

	cfg := buildcfg.Default("myteamsapp")
	cfg.Schema = 1
	cfg.Bundler.OutDir = "custom-dist"
	if err := cfg.Save(dir); err != nil {
		t.Fatal(err)
	}

	u, _ := For("3.1.0")
	if err := u.Update(dir, "myteamsapp"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := buildcfg.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Schema != buildcfg.CurrentSchema {
		t.Errorf("Schema = %d, want %d", got.Schema, buildcfg.CurrentSchema)
	}
	if got.Bundler.OutDir != "custom-dist" {
		t.Errorf("OutDir = %q, custom setting must survive the migration", got.Bundler.OutDir)
	}
}

func TestV31Update_MissingBuildConfig(t *testing.T) {
	dir := t.TempDir()

	u, _ := For("3.1.4")
	if err := u.Update(dir, "myteamsapp"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := buildcfg.Load(dir)
	if err != nil {
		t.Fatalf("build configuration should be created: %v", err)
	}
	if got.App.LibraryName != "myteamsapp" {
		t.Errorf("LibraryName = %q", got.App.LibraryName)
	}
}

func TestCurrentUpdate_Noop(t *testing.T) {
	dir := t.TempDir()

	u, _ := For("3.2.0")
	if err := u.Update(dir, "myteamsapp"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if _, err := buildcfg.Load(dir); err == nil {
		t.Error("current-family updater must not write files")
	}
}

func TestUpdate_NoPackageManifest(t *testing.T) {
	u, _ := For("3.0.0")
	if err := u.Update(t.TempDir(), "myteamsapp"); err != nil {
		t.Fatalf("Update() without package.json should succeed, got %v", err)
	}
}
