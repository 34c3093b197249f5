// Package manifest models the app manifest and its version-specific
// generators.
//
// The manifest is the declarative descriptor of the generated
// application's capabilities and identity. It is versioned
// independently of the tool: each supported manifest version has its
// own generator, found through an explicit version-to-generator table.
package manifest

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

// RelPath is the manifest location inside a generated project.
const RelPath = "src/manifest/manifest.json"

// Manifest is the app manifest document. Optional capability arrays are
// omitted from the JSON when empty.
type Manifest struct {
	Schema            string             `json:"$schema,omitempty"`
	ManifestVersion   string             `json:"manifestVersion"`
	Version           string             `json:"version"`
	ID                string             `json:"id"`
	PackageName       string             `json:"packageName"`
	Developer         Developer          `json:"developer"`
	Name              LocalizedText      `json:"name"`
	Description       LocalizedText      `json:"description"`
	Icons             Icons              `json:"icons"`
	AccentColor       string             `json:"accentColor"`
	ConfigurableTabs  []ConfigurableTab  `json:"configurableTabs,omitempty"`
	StaticTabs        []StaticTab        `json:"staticTabs,omitempty"`
	Bots              []Bot              `json:"bots,omitempty"`
	Connectors        []Connector        `json:"connectors,omitempty"`
	ComposeExtensions []ComposeExtension `json:"composeExtensions,omitempty"`
	Permissions       []string           `json:"permissions,omitempty"`
	ValidDomains      []string           `json:"validDomains,omitempty"`
	Localization      *LocalizationInfo  `json:"localizationInfo,omitempty"`
}

// Developer identifies the publisher of the app.
type Developer struct {
	Name          string `json:"name"`
	WebsiteURL    string `json:"websiteUrl"`
	PrivacyURL    string `json:"privacyUrl"`
	TermsOfUseURL string `json:"termsOfUseUrl"`
	MPNID         string `json:"mpnId,omitempty"`
}

// LocalizedText holds the short and full variants of a display string.
type LocalizedText struct {
	Short string `json:"short"`
	Full  string `json:"full"`
}

// Icons references the app icon files inside the package.
type Icons struct {
	Outline string `json:"outline"`
	Color   string `json:"color"`
}

// ConfigurableTab is a tab the user configures when adding it to a channel.
type ConfigurableTab struct {
	ConfigurationURL       string   `json:"configurationUrl"`
	CanUpdateConfiguration bool     `json:"canUpdateConfiguration"`
	Scopes                 []string `json:"scopes"`
}

// StaticTab is a pinned personal-scope tab.
type StaticTab struct {
	EntityID   string   `json:"entityId"`
	Name       string   `json:"name"`
	ContentURL string   `json:"contentUrl"`
	Scopes     []string `json:"scopes"`
}

// Bot declares a bot capability.
type Bot struct {
	BotID                string   `json:"botId"`
	NeedsChannelSelector bool     `json:"needsChannelSelector"`
	IsNotificationOnly   bool     `json:"isNotificationOnly"`
	Scopes               []string `json:"scopes"`
}

// Connector declares an Office 365 connector capability.
type Connector struct {
	ConnectorID      string   `json:"connectorId"`
	ConfigurationURL string   `json:"configurationUrl"`
	Scopes           []string `json:"scopes"`
}

// ComposeExtension declares a message extension capability.
type ComposeExtension struct {
	BotID    string                    `json:"botId"`
	Commands []ComposeExtensionCommand `json:"commands"`
}

// ComposeExtensionCommand is a single message extension command.
type ComposeExtensionCommand struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// LocalizationInfo declares additional language files.
type LocalizationInfo struct {
	DefaultLanguageTag  string               `json:"defaultLanguageTag"`
	AdditionalLanguages []AdditionalLanguage `json:"additionalLanguages,omitempty"`
}

// AdditionalLanguage points at a translation file for one language tag.
type AdditionalLanguage struct {
	LanguageTag string `json:"languageTag"`
	File        string `json:"file"`
}

// Find locates an existing manifest under dir, checking the generated
// layout first and the project root second. Returns "" when none exists.
func Find(dir string) string {
	for _, rel := range []string{RelPath, "manifest.json"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	return &m, nil
}

// Save writes the manifest to path as indented JSON.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating manifest directory")
	}
	return fileutil.AtomicWriteJSON(path, m)
}

// AppName returns the short display name of the app.
func (m *Manifest) AppName() string {
	return m.Name.Short
}

// Hostname returns the lower-cased host of the developer website URL,
// or "" if the URL does not parse.
func (m *Manifest) Hostname() string {
	u, err := url.Parse(m.Developer.WebsiteURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// HasReactBlocks reports whether any included building block renders
// with React (configurable tabs and message extension config pages).
func (m *Manifest) HasReactBlocks() bool {
	return len(m.ConfigurableTabs) > 0 || len(m.ComposeExtensions) > 0
}
