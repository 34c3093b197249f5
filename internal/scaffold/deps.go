package scaffold

import (
	"github.com/teamsgen/teamsgen/internal/npm"
	"github.com/teamsgen/teamsgen/internal/options"
)

// buildPackage assembles the package.json for a new project from the
// selected building blocks.
func buildPackage(o *options.ProjectOptions, toolVersion string) *npm.Package {
	pkg := npm.New(o.PackageName)

	pkg.AddDependency("express", "^4.17.1")
	pkg.AddDependency("@microsoft/teams-js", "^1.4.2")

	pkg.AddDevDependency("typescript", "^3.7.2")
	pkg.AddDevDependency("teamsgen-scripts", "^"+toolVersion)

	applyFeatureDependencies(pkg, o.HasReactBlocks(), o.UseAzureAppInsights)

	if o.Bot || o.MessageExtension {
		pkg.AddDependency("botbuilder", "^4.5.1")
	}

	if o.UnitTestsEnabled {
		pkg.AddDevDependency("jest", "^24.5.0")
		pkg.AddDevDependency("ts-jest", "^24.0.0")
		pkg.AddDevDependency("@types/jest", "^24.0.11")
		pkg.AddScript("test", "jest")
	}

	if o.LintingSupport {
		pkg.AddDevDependency("eslint", "^6.8.0")
		pkg.AddDevDependency("@typescript-eslint/parser", "^2.19.0")
		pkg.AddDevDependency("@typescript-eslint/eslint-plugin", "^2.19.0")
		pkg.AddScript("lint", "eslint 'src/**/*.{ts,tsx}'")
	}

	return pkg
}

// applyFeatureDependencies records the dependencies tied to feature
// state. Both branches of the write phase apply these: a re-run on an
// existing project records them as well as a fresh scaffold.
func applyFeatureDependencies(pkg *npm.Package, reactBlocks, useAppInsights bool) {
	if reactBlocks {
		pkg.AddDependency("react", "^16.8.4")
		pkg.AddDependency("react-dom", "^16.8.4")
		pkg.AddDevDependency("@types/react", "^16.8.10")
	}
	if useAppInsights {
		pkg.AddDependency("applicationinsights", "^1.3.1")
	}
}
