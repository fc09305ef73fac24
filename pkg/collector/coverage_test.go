package collector

import (
	"context"
	"math"
	"testing"
)

func TestCoveragePriorityOrder(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "coverage.xml", `<?xml version="1.0"?><coverage line-rate="0.85"></coverage>`)
	writeRepoFile(t, dir, "lcov.info", "LF:100\nLH:50\n")
	writeRepoFile(t, dir, "README.md", "coverage: 10%\n")

	metrics, err := NewCoverage().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.coverage.percent").Value.(float64); math.Abs(got-85) > 1e-9 {
		t.Errorf("percent = %v, want 85 (cobertura wins over lcov and badge)", got)
	}
	if got := findMetric(t, metrics, "repo.coverage.source").Value.(string); got != "cobertura" {
		t.Errorf("source = %q, want cobertura", got)
	}
}

func TestCoverageLCOV(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "lcov.info", "SF:main.go\nLF:200\nLH:150\nend_of_record\n")

	metrics, err := NewCoverage().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.coverage.percent").Value.(float64); math.Abs(got-75) > 1e-9 {
		t.Errorf("percent = %v, want 75", got)
	}
	if got := findMetric(t, metrics, "repo.coverage.source").Value.(string); got != "lcov" {
		t.Errorf("source = %q, want lcov", got)
	}
}

func TestCoverageReadmeBadge(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "README.md", "[![Coverage](https://img.shields.io/badge/coverage-92%25-green)](x)\n")

	metrics, err := NewCoverage().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.coverage.percent").Value.(float64); math.Abs(got-92) > 1e-9 {
		t.Errorf("percent = %v, want 92", got)
	}
	if got := findMetric(t, metrics, "repo.coverage.source").Value.(string); got != "readme_badge" {
		t.Errorf("source = %q, want readme_badge", got)
	}
}

func TestCoverageUnknownEmitsNothing(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "README.md", "no coverage data here\n")

	metrics, err := NewCoverage().Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics for unknown coverage, got %d", len(metrics))
	}
}
