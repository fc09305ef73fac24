package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/repoquant/repoquant/pkg/models"
)

// writeRepoFile creates a file (and its parent directories) under dir.
func writeRepoFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func findMetric(t *testing.T, metrics []models.Metric, name string) models.Metric {
	t.Helper()
	for _, m := range metrics {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("metric %q not found in %d metrics", name, len(metrics))
	return models.Metric{}
}

func hasMetric(metrics []models.Metric, name string) bool {
	for _, m := range metrics {
		if m.Name == name {
			return true
		}
	}
	return false
}
