package manifest

import (
	_ "embed"
	"fmt"

	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/options"
)

//go:embed schema/manifest-1.3.schema.json
var schema13 []byte

//go:embed schema/manifest-1.4.schema.json
var schema14 []byte

//go:embed schema/manifest-1.5.schema.json
var schema15 []byte

//go:embed schema/manifest-devpreview.schema.json
var schemaDevPreview []byte

// builtinGenerators returns the generators for every supported manifest
// version. Order matters: it is the order versions are offered in.
func builtinGenerators() []Generator {
	return []Generator{
		&versionGenerator{
			version:   "1.3",
			schemaURL: "https://developer.microsoft.com/json-schemas/teams/v1.3/MicrosoftTeams.schema.json",
			// Legacy; kept for upgrades only.
			hidden:    true,
			validator: &schemaValidator{name: "manifest-1.3.schema.json", raw: schema13},
		},
		&versionGenerator{
			version:     "1.4",
			schemaURL:   "https://developer.microsoft.com/json-schemas/teams/v1.4/MicrosoftTeams.schema.json",
			upgradeFrom: []string{"1.3"},
			validator:   &schemaValidator{name: "manifest-1.4.schema.json", raw: schema14},
		},
		&versionGenerator{
			version:      "1.5",
			schemaURL:    "https://developer.microsoft.com/json-schemas/teams/v1.5/MicrosoftTeams.schema.json",
			upgradeFrom:  []string{"1.3", "1.4"},
			localization: true,
			validator:    &schemaValidator{name: "manifest-1.5.schema.json", raw: schema15},
		},
		&versionGenerator{
			version:      "devPreview",
			schemaURL:    "https://raw.githubusercontent.com/OfficeDev/microsoft-teams-app-schema/preview/DevPreview/MicrosoftTeams.schema.json",
			upgradeFrom:  []string{"1.5"},
			localization: true,
			validator:    &schemaValidator{name: "manifest-devpreview.schema.json", raw: schemaDevPreview},
		},
	}
}

// versionGenerator implements Generator for one manifest version. The
// versions share one rendering path; localization support is the only
// behavioral difference between them.
type versionGenerator struct {
	version      string
	schemaURL    string
	hidden       bool
	upgradeFrom  []string
	localization bool
	validator    *schemaValidator
}

func (g *versionGenerator) Version() string       { return g.version }
func (g *versionGenerator) SchemaURL() string     { return g.schemaURL }
func (g *versionGenerator) Hidden() bool          { return g.hidden }
func (g *versionGenerator) UpgradeFrom() []string { return g.upgradeFrom }

// Generate renders a manifest for a new project and validates it
// against the version's schema.
func (g *versionGenerator) Generate(o *options.ProjectOptions) (*Manifest, error) {
	m := &Manifest{
		Schema:          g.schemaURL,
		ManifestVersion: g.version,
		Version:         "1.0.0",
		ID:              o.AppID,
		PackageName:     o.Namespace,
		Developer: Developer{
			Name:          o.Developer,
			WebsiteURL:    o.Host,
			PrivacyURL:    o.Host + "/privacy.html",
			TermsOfUseURL: o.Host + "/tou.html",
		},
		Name: LocalizedText{
			Short: o.Title,
			Full:  o.Title,
		},
		Description: LocalizedText{
			Short: o.Title,
			Full:  o.Title,
		},
		Icons: Icons{
			Outline: "icon-outline.png",
			Color:   "icon-color.png",
		},
		AccentColor:  "#004578",
		Permissions:  []string{"identity", "messageTeamMembers"},
		ValidDomains: []string{o.Hostname},
	}

	if o.MPNID != nil {
		m.Developer.MPNID = *o.MPNID
	}

	if o.Tab {
		m.ConfigurableTabs = []ConfigurableTab{{
			ConfigurationURL:       fmt.Sprintf("https://%s/%sTab/config.html", o.Hostname, o.LibraryName),
			CanUpdateConfiguration: true,
			Scopes:                 []string{"team"},
		}}
	}

	if o.Bot {
		m.Bots = []Bot{{
			BotID:  o.AppID,
			Scopes: []string{"team", "personal"},
		}}
	}

	if o.Connector {
		m.Connectors = []Connector{{
			ConnectorID:      o.AppID,
			ConfigurationURL: fmt.Sprintf("https://%s/%sConnector/config.html", o.Hostname, o.LibraryName),
			Scopes:           []string{"team"},
		}}
	}

	if o.MessageExtension {
		m.ComposeExtensions = []ComposeExtension{{
			BotID: o.AppID,
			Commands: []ComposeExtensionCommand{{
				ID:    "searchCmd",
				Title: o.Title,
			}},
		}}
	}

	// Outgoing webhooks (custom bots) are registered server-side and do
	// not appear in the manifest.

	if g.localization && o.Localization {
		m.Localization = &LocalizationInfo{
			DefaultLanguageTag: "en-us",
		}
	}

	if err := g.validator.validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update migrates an existing manifest to this generator's version.
// Content outside the version markers is preserved; localization info
// gains a default when this version introduces it.
func (g *versionGenerator) Update(m *Manifest, o *options.ProjectOptions) error {
	supported := false
	for _, src := range g.upgradeFrom {
		if src == m.ManifestVersion {
			supported = true
			break
		}
	}
	if !supported {
		return errors.Newf("cannot upgrade manifest from version %q to %q", m.ManifestVersion, g.version)
	}

	m.Schema = g.schemaURL
	m.ManifestVersion = g.version

	if g.localization && m.Localization == nil && o.Localization {
		m.Localization = &LocalizationInfo{DefaultLanguageTag: "en-us"}
	}
	if !g.localization {
		m.Localization = nil
	}

	return g.validator.validate(m)
}
