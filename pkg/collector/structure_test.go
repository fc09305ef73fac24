package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStructureFullLayout(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "README.md", "# Demo\n\n## Install\n\npip install demo\n\n## Usage\n\nRun `demo serve` to start.\n")
	writeRepoFile(t, dir, "go.mod", "module example.com/demo\n")
	writeRepoFile(t, dir, "package.json", `{"name":"demo"}`)
	writeRepoFile(t, dir, "Dockerfile", "FROM golang:1.25\n")
	writeRepoFile(t, dir, "Makefile", "build:\n\tgo build ./...\n")
	writeRepoFile(t, dir, "docs/architecture.md", "layers\n")
	for _, d := range []string{"src", "tests", "config"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	metrics, err := NewStructure().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	boolChecks := map[string]bool{
		"repo.docs.has_readme":           true,
		"repo.docs.readme_has_install":   true,
		"repo.docs.readme_has_usage":     true,
		"repo.docs.has_docs_dir":         true,
		"repo.docs.has_architecture_doc": true,
		"repo.docs.has_changelog":        false,
		"repo.structure.has_src_dir":     true,
		"repo.structure.has_tests_dir":   true,
		"repo.run.has_dependency_file":   true,
		"repo.run.has_run_instructions":  true,
		"repo.run.has_dockerfile":        true,
		"repo.run.has_docker_compose":    false,
		"repo.run.has_makefile":          true,
	}
	for name, want := range boolChecks {
		m := findMetric(t, metrics, name)
		if got := m.Value.(bool); got != want {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}

	if score := findMetric(t, metrics, "repo.structure.score").Value.(int); score != 3 {
		t.Errorf("structure score = %d, want 3", score)
	}
	if ecos := findMetric(t, metrics, "repo.run.dependency_files").Value.(string); ecos != "go,npm" {
		t.Errorf("dependency_files = %q, want %q", ecos, "go,npm")
	}
}

func TestStructureEmptyRepo(t *testing.T) {
	dir := t.TempDir()

	metrics, err := NewStructure().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if m := findMetric(t, metrics, "repo.docs.has_readme"); m.Value.(bool) {
		t.Error("empty repo should not report a README")
	}
	if score := findMetric(t, metrics, "repo.structure.score").Value.(int); score != 0 {
		t.Errorf("structure score = %d, want 0", score)
	}
	if hasMetric(metrics, "repo.run.dependency_files") {
		t.Error("dependency_files should be omitted when no manifest exists")
	}
}
