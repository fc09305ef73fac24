package collector

import (
	"context"
	"testing"
)

const ciWorkflow = `name: ci
on: push
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - name: Run tests
        run: go test ./...
      - name: Lint
        run: golangci-lint run
`

func TestCIGithubActions(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, ".github/workflows/ci.yml", ciWorkflow)

	metrics, err := NewCI().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !findMetric(t, metrics, "repo.ci.present").Value.(bool) {
		t.Error("ci.present = false, want true")
	}
	if got := findMetric(t, metrics, "repo.ci.provider").Value.(string); got != "github_actions" {
		t.Errorf("provider = %q, want github_actions", got)
	}
	if !findMetric(t, metrics, "repo.ci.has_tests").Value.(bool) {
		t.Error("has_tests = false, want true")
	}
	if !findMetric(t, metrics, "repo.ci.has_lint").Value.(bool) {
		t.Error("has_lint = false, want true")
	}
	if findMetric(t, metrics, "repo.ci.has_deploy").Value.(bool) {
		t.Error("has_deploy = true, want false")
	}
}

func TestCIGitlab(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, ".gitlab-ci.yml", "stages:\n  - test\n  - deploy\n")

	metrics, err := NewCI().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.ci.provider").Value.(string); got != "gitlab_ci" {
		t.Errorf("provider = %q, want gitlab_ci", got)
	}
	if !findMetric(t, metrics, "repo.ci.has_deploy").Value.(bool) {
		t.Error("has_deploy = false, want true")
	}
}

func TestCIKubernetesManifests(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "k8s/deployment.yaml", "apiVersion: apps/v1\nkind: Deployment\n")

	metrics, err := NewCI().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !findMetric(t, metrics, "repo.ci.has_kubernetes").Value.(bool) {
		t.Error("has_kubernetes = false, want true")
	}
	// Manifests count as deploy config even without a CI pipeline.
	if !findMetric(t, metrics, "repo.ci.has_deploy").Value.(bool) {
		t.Error("has_deploy = false, want true")
	}
	if findMetric(t, metrics, "repo.ci.present").Value.(bool) {
		t.Error("ci.present = true, want false")
	}
}

func TestCIAbsent(t *testing.T) {
	metrics, err := NewCI().Collect(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if findMetric(t, metrics, "repo.ci.present").Value.(bool) {
		t.Error("ci.present = true, want false")
	}
	if hasMetric(metrics, "repo.ci.provider") {
		t.Error("provider should be omitted when no CI config exists")
	}
}
