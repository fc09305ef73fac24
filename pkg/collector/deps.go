package collector

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gotoml "github.com/pelletier/go-toml"

	"github.com/repoquant/repoquant/pkg/models"
)

// Deps counts direct dependencies per ecosystem from the manifests at the
// repository root. Manifests that fail to parse are skipped, never
// guessed at.
type Deps struct{}

// NewDeps creates the dependency collector.
func NewDeps() *Deps {
	return &Deps{}
}

// Name implements Collector.
func (c *Deps) Name() string { return "deps" }

// Collect implements Collector.
func (c *Deps) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	counts := map[string]int{}

	if n, ok := countGoMod(filepath.Join(repoPath, "go.mod")); ok {
		counts["go"] = n
	}
	if n, ok := countPackageJSON(filepath.Join(repoPath, "package.json")); ok {
		counts["npm"] = n
	}
	if n, ok := countRequirements(filepath.Join(repoPath, "requirements.txt")); ok {
		counts["pip"] = n
	}
	if n, ok := countPyproject(filepath.Join(repoPath, "pyproject.toml")); ok {
		counts["python"] = n
	}
	if n, ok := countCargo(filepath.Join(repoPath, "Cargo.toml")); ok {
		counts["cargo"] = n
	}

	if len(counts) == 0 {
		return nil, nil
	}

	total := 0
	ecosystems := make([]string, 0, len(counts))
	for eco, n := range counts {
		total += n
		ecosystems = append(ecosystems, eco)
	}
	sort.Strings(ecosystems)

	out := []models.Metric{
		models.NewMetric(models.MetricDepsDirect, total,
			models.TypeGauge, models.SourceDeps, models.CategoryDependencies),
		models.NewMetric(models.MetricDepsEcosystems, strings.Join(ecosystems, ","),
			models.TypeInfo, models.SourceDeps, models.CategoryDependencies),
	}
	for _, eco := range ecosystems {
		out = append(out, models.NewMetric(models.MetricDepsByEco, counts[eco],
			models.TypeGauge, models.SourceDeps, models.CategoryDependencies,
			models.WithLabels(map[string]string{"ecosystem": eco})))
	}
	return out, nil
}

// countGoMod counts non-indirect require entries.
func countGoMod(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	count := 0
	inBlock := false
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "require ("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock && line != "" && !strings.Contains(line, "// indirect"):
			count++
		case strings.HasPrefix(line, "require ") && !strings.Contains(line, "// indirect"):
			count++
		}
	}
	return count, true
}

func countPackageJSON(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return 0, false
	}
	return len(pkg.Dependencies) + len(pkg.DevDependencies), true
}

func countRequirements(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	count := 0
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		count++
	}
	return count, true
}

func countPyproject(path string) (int, bool) {
	tree, err := gotoml.LoadFile(path)
	if err != nil {
		return 0, false
	}
	count := 0
	if deps, ok := tree.GetPath([]string{"project", "dependencies"}).([]any); ok {
		count += len(deps)
	}
	if poetry, ok := tree.GetPath([]string{"tool", "poetry", "dependencies"}).(*gotoml.Tree); ok {
		for _, k := range poetry.Keys() {
			if k != "python" {
				count++
			}
		}
	}
	if count == 0 {
		return 0, false
	}
	return count, true
}

func countCargo(path string) (int, bool) {
	tree, err := gotoml.LoadFile(path)
	if err != nil {
		return 0, false
	}
	count := 0
	for _, section := range []string{"dependencies", "dev-dependencies"} {
		if deps, ok := tree.Get(section).(*gotoml.Tree); ok {
			count += len(deps.Keys())
		}
	}
	if count == 0 {
		return 0, false
	}
	return count, true
}
