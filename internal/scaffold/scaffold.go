// Package scaffold is the write phase of the generate flow.
//
// Given resolved project options it either lays down a new project
// (manifest, templates, build config, package manifest, store) or
// applies the requested upgrades to an existing one. There is no
// rollback: a failure mid-write leaves the files written so far in
// place, and the error tells the user what failed.
package scaffold

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/teamsgen/teamsgen/internal/buildcfg"
	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/manifest"
	"github.com/teamsgen/teamsgen/internal/options"
	"github.com/teamsgen/teamsgen/internal/store"
	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

//go:embed all:templates
var templateFS embed.FS

// Scaffolder executes the write phase for one run.
type Scaffolder struct {
	Registry    *manifest.Registry
	ToolVersion string
	Log         *slog.Logger
}

// Run dispatches to the new-project or existing-project branch based
// on the resolved options.
func (s *Scaffolder) Run(dir string, o *options.ProjectOptions) error {
	if o.IsUpgrade() {
		return s.update(dir, o)
	}
	return s.create(dir, o)
}

// create lays down a new project in dir.
func (s *Scaffolder) create(dir string, o *options.ProjectOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating project directory")
	}

	g, ok := s.Registry.For(o.ManifestVersion)
	if !ok {
		return errors.Wrapf(errors.ErrUnsupportedSchema, "manifest version %q", o.ManifestVersion)
	}
	m, err := g.Generate(o)
	if err != nil {
		return errors.Wrap(err, "generating manifest")
	}
	if err := m.Save(filepath.Join(dir, filepath.FromSlash(manifest.RelPath))); err != nil {
		return errors.Wrap(err, "writing manifest")
	}

	data := templateData{
		ProjectOptions: o,
		ClassName:      className(o.SolutionName),
		ToolVersion:    s.ToolVersion,
	}

	groups := []string{"base"}
	if o.Tab {
		groups = append(groups, "tab")
	}
	if o.Bot {
		groups = append(groups, "bot")
	}
	if o.CustomBot {
		groups = append(groups, "customBot")
	}
	if o.Connector {
		groups = append(groups, "connector")
	}
	if o.MessageExtension {
		groups = append(groups, "messageExtension")
	}
	if o.UnitTestsEnabled {
		groups = append(groups, "jest")
	}
	if o.LintingSupport {
		groups = append(groups, "eslint")
	}
	for _, group := range groups {
		if err := s.renderGroup(group, dir, data); err != nil {
			return err
		}
	}

	if err := buildcfg.Default(o.LibraryName).Save(dir); err != nil {
		return errors.Wrap(err, "writing build configuration")
	}

	pkg := buildPackage(o, s.ToolVersion)
	if err := pkg.Save(dir); err != nil {
		return errors.Wrap(err, "writing package manifest")
	}

	s.Log.Info("project scaffolded",
		slog.String("dir", dir),
		slog.String("manifestVersion", o.ManifestVersion))

	return s.persist(dir, o)
}

// persist writes the project store. The new-project branch records all
// four keys; re-runs only refresh what this run resolved, leaving the
// remaining stored answers untouched.
func (s *Scaffolder) persist(dir string, o *options.ProjectOptions) error {
	st, err := store.Open(dir)
	if err != nil {
		return err
	}

	st.SetGeneratorVersion(s.ToolVersion)
	if o.LibraryName != "" {
		st.SetLibraryName(o.LibraryName)
	}
	if !o.IsUpgrade() {
		st.SetUseAzureAppInsights(o.UseAzureAppInsights)
		st.SetUnitTestsEnabled(o.UnitTestsEnabled)
	}

	if err := st.Save(); err != nil {
		return errors.Wrap(err, "writing project store")
	}
	return nil
}

// templateData is the dot passed to every template.
type templateData struct {
	*options.ProjectOptions
	ClassName   string
	ToolVersion string
}

// renderGroup writes one template group into dir. Files ending in
// .tmpl are rendered; everything else is copied as-is. Path segments
// carry two placeholders: __name__ expands to the library name and
// __Name__ to the class name. A single leading underscore on a file
// name becomes a dot (embed cannot carry dotfiles).
func (s *Scaffolder) renderGroup(group, dir string, data templateData) error {
	root := path.Join("templates", group)
	return fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimPrefix(p, root+"/")
		dest := expandName(rel, data)

		raw, err := templateFS.ReadFile(p)
		if err != nil {
			return err
		}

		out := raw
		if strings.HasSuffix(dest, ".tmpl") {
			dest = strings.TrimSuffix(dest, ".tmpl")
			out, err = render(rel, raw, data)
			if err != nil {
				return err
			}
		}

		target := filepath.Join(dir, filepath.FromSlash(dest))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", filepath.Dir(target))
		}
		if err := fileutil.AtomicWriteFile(target, out, 0o644); err != nil {
			return errors.Wrapf(err, "writing %s", dest)
		}

		s.Log.Debug("wrote", slog.String("file", dest))
		return nil
	})
}

func render(name string, raw []byte, data templateData) ([]byte, error) {
	t, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing template %s", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "rendering template %s", name)
	}
	return buf.Bytes(), nil
}

// expandName applies the file-name placeholders to a slash-separated
// relative path.
func expandName(rel string, data templateData) string {
	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		seg = strings.ReplaceAll(seg, "__name__", data.LibraryName)
		seg = strings.ReplaceAll(seg, "__Name__", data.ClassName)
		if strings.HasPrefix(seg, "_") {
			seg = "." + seg[1:]
		}
		segments[i] = seg
	}
	return strings.Join(segments, "/")
}

// className derives a TypeScript identifier from the solution name:
// alphanumeric runs are title-cased and concatenated.
func className(solutionName string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range solutionName {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			startOfWord = true
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
