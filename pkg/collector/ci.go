package collector

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/repoquant/repoquant/pkg/models"
)

// CI detects continuous-integration configuration, identifies the
// provider, and for GitHub Actions scans workflow YAML for test, lint,
// and deploy indicators. Kubernetes manifests count as deploy config.
type CI struct{}

// NewCI creates the CI collector.
func NewCI() *CI {
	return &CI{}
}

// Name implements Collector.
func (c *CI) Name() string { return "ci" }

// workflow mirrors the subset of a GitHub Actions file we scan.
type workflow struct {
	Jobs map[string]struct {
		Steps []struct {
			Name string `yaml:"name"`
			Run  string `yaml:"run"`
			Uses string `yaml:"uses"`
		} `yaml:"steps"`
	} `yaml:"jobs"`
}

// Collect implements Collector.
func (c *CI) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	provider := ""
	hasTests, hasLint, hasDeploy := false, false, false

	workflowDir := filepath.Join(repoPath, ".github", "workflows")
	if entries, err := os.ReadDir(workflowDir); err == nil && len(entries) > 0 {
		provider = "github_actions"
		for _, entry := range entries {
			ext := filepath.Ext(entry.Name())
			if ext != ".yml" && ext != ".yaml" {
				continue
			}
			t, l, d := scanWorkflow(filepath.Join(workflowDir, entry.Name()))
			hasTests = hasTests || t
			hasLint = hasLint || l
			hasDeploy = hasDeploy || d
		}
	} else if _, ok := fileExists(repoPath, ".gitlab-ci.yml"); ok {
		provider = "gitlab_ci"
		hasTests, hasLint, hasDeploy = scanCIKeywords(filepath.Join(repoPath, ".gitlab-ci.yml"))
	} else if _, ok := fileExists(repoPath, ".circleci/config.yml"); ok {
		provider = "circleci"
		hasTests, hasLint, hasDeploy = scanCIKeywords(filepath.Join(repoPath, ".circleci", "config.yml"))
	} else if _, ok := fileExists(repoPath, ".travis.yml"); ok {
		provider = "travis"
		hasTests, hasLint, hasDeploy = scanCIKeywords(filepath.Join(repoPath, ".travis.yml"))
	}

	hasK8s := detectKubernetes(repoPath)

	info := func(name string, value any) models.Metric {
		return models.NewMetric(name, value, models.TypeInfo, models.SourceCI, models.CategoryInfrastructure)
	}

	out := []models.Metric{
		info(models.MetricCIPresent, provider != ""),
		info(models.MetricCIHasTests, hasTests),
		info(models.MetricCIHasLint, hasLint),
		info(models.MetricCIHasDeploy, hasDeploy || hasK8s),
		info(models.MetricHasKubernetes, hasK8s),
	}
	if provider != "" {
		out = append(out, info(models.MetricCIProvider, provider))
	}
	return out, nil
}

// scanWorkflow parses a GitHub Actions workflow and keyword-scans step
// names, run commands, and action references.
func scanWorkflow(path string) (hasTests, hasLint, hasDeploy bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, false, false
	}

	var wf workflow
	if err := yaml.Unmarshal(content, &wf); err != nil {
		// Malformed YAML still gets the plain keyword scan.
		return classifyCIText(strings.ToLower(string(content)))
	}

	var sb strings.Builder
	for name, job := range wf.Jobs {
		sb.WriteString(strings.ToLower(name))
		sb.WriteByte('\n')
		for _, step := range job.Steps {
			sb.WriteString(strings.ToLower(step.Name))
			sb.WriteByte('\n')
			sb.WriteString(strings.ToLower(step.Run))
			sb.WriteByte('\n')
			sb.WriteString(strings.ToLower(step.Uses))
			sb.WriteByte('\n')
		}
	}
	return classifyCIText(sb.String())
}

// scanCIKeywords keyword-scans a non-GitHub CI config as plain text.
func scanCIKeywords(path string) (hasTests, hasLint, hasDeploy bool) {
	content, err := readFileCapped(path, 256<<10)
	if err != nil {
		return false, false, false
	}
	return classifyCIText(strings.ToLower(content))
}

func classifyCIText(text string) (hasTests, hasLint, hasDeploy bool) {
	hasTests = containsAny(text, "test", "pytest", "go test", "jest", "rspec", "junit")
	hasLint = containsAny(text, "lint", "golangci", "ruff", "eslint", "flake8", "rubocop", "fmt")
	hasDeploy = containsAny(text, "deploy", "release", "publish", "helm", "kubectl", "terraform")
	return
}

// detectKubernetes looks for manifest directories containing "kind:"
// documents.
func detectKubernetes(repoPath string) bool {
	for _, dir := range []string{"k8s", "kubernetes", "deploy", "manifests", "charts"} {
		root := filepath.Join(repoPath, dir)
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			ext := filepath.Ext(entry.Name())
			if ext != ".yml" && ext != ".yaml" {
				continue
			}
			content, err := readFileCapped(filepath.Join(root, entry.Name()), 64<<10)
			if err == nil && strings.Contains(content, "kind:") {
				return true
			}
		}
	}
	return false
}
