// Package options builds the project configuration that drives the
// write phase.
//
// A ProjectOptions record is accumulated once per run: either for a
// brand-new project (all identity and feature fields populated, upgrade
// fields zero) or for a re-run on an existing project (upgrade fields
// populated from prompts, identity derived from the existing manifest).
// The two branches are decided once, up front, by the presence of an
// existing manifest.
package options

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
)

// Part identifiers offered during feature selection.
const (
	PartTab              = "tab"
	PartBot              = "bot"
	PartCustomBot        = "customBot"
	PartConnector        = "connector"
	PartMessageExtension = "messageExtension"
	PartLocalization     = "localization"
)

// WebsitePrefixPlaceholder is used when the host is not an Azure web
// app, so generated docs point the user at the value to fill in.
const WebsitePrefixPlaceholder = "[your Azure web app name]"

// azureWebAppSuffix identifies hosts whose first label is the Azure web
// app name.
const azureWebAppSuffix = ".azurewebsites.net"

// ExistingProject is the read-only view of a project the generator is
// re-run on, extracted from its manifest at startup.
type ExistingProject struct {
	ManifestVersion string
	Title           string
	Developer       string
	Hostname        string
	HasReactBlocks  bool
}

// ProjectOptions is the resolved configuration for one generator run.
type ProjectOptions struct {
	// Identity
	SolutionName string
	Title        string
	Developer    string
	Namespace    string
	AppID        string
	LibraryName  string
	PackageName  string

	// Hosting
	Host          string
	Hostname      string
	WebsitePrefix string

	// Manifest
	ManifestVersion string
	// MPNID is nil when the user gave no partner id; an empty answer
	// never becomes an empty string in the manifest.
	MPNID *string

	// Feature toggles
	Tab              bool
	Bot              bool
	CustomBot        bool
	Connector        bool
	MessageExtension bool
	Localization     bool

	UnitTestsEnabled    bool
	LintingSupport      bool
	UseAzureAppInsights bool

	TelemetryOptIn bool

	// Upgrade-only fields; zero for the new-project branch.
	Existing              *ExistingProject
	UpdateManifestVersion bool
	UpdateBuildSystem     bool
}

// IsUpgrade reports whether this run operates on an existing project.
func (o *ProjectOptions) IsUpgrade() bool {
	return o.Existing != nil
}

// HasReactBlocks reports whether any selected building block renders
// with React. Configurable tabs and message extension config pages do.
func (o *ProjectOptions) HasReactBlocks() bool {
	if o.Existing != nil {
		return o.Existing.HasReactBlocks
	}
	return o.Tab || o.MessageExtension
}

// ApplyParts projects a feature-selection answer set onto the boolean
// toggles. Parts not present in the set stay false.
func (o *ProjectOptions) ApplyParts(parts []string) {
	for _, p := range parts {
		switch p {
		case PartTab:
			o.Tab = true
		case PartBot:
			o.Bot = true
		case PartCustomBot:
			o.CustomBot = true
		case PartConnector:
			o.Connector = true
		case PartMessageExtension:
			o.MessageExtension = true
		case PartLocalization:
			o.Localization = true
		}
	}
}

// NormalizeHost strips a trailing slash from the host URL and derives
// the lower-cased hostname.
func NormalizeHost(raw string) (host, hostname string) {
	host = strings.TrimSuffix(strings.TrimSpace(raw), "/")
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return host, ""
	}
	return host, strings.ToLower(u.Host)
}

// DeriveNamespace reverses the dot-separated hostname segments:
// foo.azurewebsites.net becomes net.azurewebsites.foo.
func DeriveNamespace(hostname string) string {
	if hostname == "" {
		return ""
	}
	segments := strings.Split(hostname, ".")
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, ".")
}

// DeriveWebsitePrefix returns the Azure web app name for Azure-hosted
// projects, or the literal placeholder otherwise.
func DeriveWebsitePrefix(hostname string) string {
	if strings.HasSuffix(hostname, azureWebAppSuffix) {
		return strings.SplitN(hostname, ".", 2)[0]
	}
	return WebsitePrefixPlaceholder
}

// DeriveLibraryName case-folds the solution name.
func DeriveLibraryName(solutionName string) string {
	return cases.Fold().String(solutionName)
}

// DerivePackageName lower-cases the library name.
func DerivePackageName(libraryName string) string {
	return strings.ToLower(libraryName)
}

// NormalizeMPNID maps an empty partner id answer to "unset" (nil).
func NormalizeMPNID(answer string) *string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil
	}
	return &answer
}
