package collector

import (
	"context"
	"sort"
	"strings"

	"github.com/repoquant/repoquant/pkg/models"
)

// Structure inspects the repository layout: documentation presence,
// directory heuristics, dependency files, and container tooling.
type Structure struct{}

// NewStructure creates the structure collector.
func NewStructure() *Structure {
	return &Structure{}
}

// Name implements Collector.
func (c *Structure) Name() string { return "structure" }

// dependencyManifests maps manifest filenames to their ecosystem.
var dependencyManifests = map[string]string{
	"go.mod":           "go",
	"package.json":     "npm",
	"requirements.txt": "pip",
	"pyproject.toml":   "python",
	"Pipfile":          "pip",
	"setup.py":         "python",
	"Cargo.toml":       "cargo",
	"pom.xml":          "maven",
	"build.gradle":     "gradle",
	"build.gradle.kts": "gradle",
	"Gemfile":          "bundler",
	"composer.json":    "composer",
}

// Collect implements Collector.
func (c *Structure) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	add := func(buf []models.Metric, name string, value any, cat models.MetricCategory) []models.Metric {
		return append(buf, models.NewMetric(name, value, models.TypeInfo, models.SourceStructure, cat))
	}

	var out []models.Metric

	// README and its keyword heuristics.
	readmePath, hasReadme := fileExists(repoPath, "README.md", "README.rst", "README.txt", "README", "readme.md")
	out = add(out, models.MetricHasReadme, hasReadme, models.CategoryDocumentation)

	var readme string
	if hasReadme {
		if content, err := readFileCapped(readmePath, 256<<10); err == nil {
			readme = strings.ToLower(content)
		}
	}
	out = add(out, models.MetricReadmeHasInstall, containsAny(readme, "install", "pip install", "go install", "npm install", "setup"), models.CategoryDocumentation)
	out = add(out, models.MetricReadmeHasUsage, containsAny(readme, "usage", "example", "quickstart", "getting started", "how to"), models.CategoryDocumentation)
	out = add(out, models.MetricHasRunInstructions, containsAny(readme, "run", "start", "docker", "make ", "launch"), models.CategoryRunability)

	// Documentation surfaces beyond the README.
	_, hasDocsDir := dirExists(repoPath, "docs", "doc")
	out = add(out, models.MetricHasDocsDir, hasDocsDir, models.CategoryDocumentation)

	_, hasArch := fileExists(repoPath,
		"ARCHITECTURE.md", "architecture.md",
		"docs/ARCHITECTURE.md", "docs/architecture.md", "doc/architecture.md")
	out = add(out, models.MetricHasArchitectureDoc, hasArch, models.CategoryDocumentation)

	_, hasAPIFile := fileExists(repoPath,
		"openapi.yaml", "openapi.yml", "openapi.json",
		"swagger.yaml", "swagger.yml", "swagger.json",
		"docs/api.md", "docs/API.md", "API.md", "api.md")
	out = add(out, models.MetricHasAPIDocs, hasAPIFile, models.CategoryDocumentation)

	_, hasChangelog := fileExists(repoPath, "CHANGELOG.md", "CHANGELOG.rst", "CHANGELOG", "changelog.md", "HISTORY.md")
	out = add(out, models.MetricHasChangelog, hasChangelog, models.CategoryDocumentation)

	_, hasVersion := fileExists(repoPath, "VERSION", "VERSION.txt", "version.txt", ".bumpversion.cfg")
	out = add(out, models.MetricHasVersionFile, hasVersion, models.CategoryDocumentation)

	// Directory layout heuristics feeding the 0-3 structure score.
	_, hasSrc := dirExists(repoPath, "src", "lib", "app", "internal", "pkg")
	_, hasTests := dirExists(repoPath, "tests", "test", "spec")
	_, hasConfig := dirExists(repoPath, "config", "conf", "configs")

	out = add(out, models.MetricHasSrcDir, hasSrc, models.CategoryArchitecture)
	out = add(out, models.MetricHasTestsDir, hasTests, models.CategoryStructure)
	out = add(out, models.MetricHasConfigDir, hasConfig, models.CategoryStructure)

	structureScore := 0
	if hasSrc {
		structureScore++
	}
	if hasTests {
		structureScore++
	}
	if hasConfig || hasDocsDir {
		structureScore++
	}
	out = append(out, models.NewMetric(models.MetricStructureScore, structureScore,
		models.TypeGauge, models.SourceStructure, models.CategoryStructure))

	// Dependency manifests.
	var ecosystems []string
	for manifest, eco := range dependencyManifests {
		if _, ok := fileExists(repoPath, manifest); ok {
			ecosystems = append(ecosystems, eco)
		}
	}
	out = add(out, models.MetricHasDependencyFile, len(ecosystems) > 0, models.CategoryRunability)
	if len(ecosystems) > 0 {
		ecosystems = dedupe(ecosystems)
		sort.Strings(ecosystems)
		out = append(out, models.NewMetric(models.MetricDependencyFiles, strings.Join(ecosystems, ","),
			models.TypeInfo, models.SourceStructure, models.CategoryRunability))
	}

	// Container and build tooling.
	_, hasDockerfile := fileExists(repoPath, "Dockerfile", "dockerfile", "Containerfile")
	_, hasCompose := fileExists(repoPath, "docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml")
	_, hasMakefile := fileExists(repoPath, "Makefile", "makefile", "justfile", "Taskfile.yml")

	out = add(out, models.MetricHasDockerfile, hasDockerfile, models.CategoryRunability)
	out = add(out, models.MetricHasDockerCompose, hasCompose, models.CategoryRunability)
	out = add(out, models.MetricHasMakefile, hasMakefile, models.CategoryRunability)

	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
