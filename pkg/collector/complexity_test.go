package collector

import (
	"context"
	"testing"

	"github.com/repoquant/repoquant/pkg/config"
)

const branchyGo = `package demo

func classify(n int) string {
	if n < 0 {
		return "negative"
	}
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			continue
		}
	}
	switch {
	case n > 100:
		return "large"
	case n > 10:
		return "medium"
	}
	return "small"
}

func trivial() int { return 1 }
`

func TestComplexityGo(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "demo.go", branchyGo)

	metrics, err := NewComplexity(config.DefaultConfig()).Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.complexity.functions_scanned").Value.(int); got != 2 {
		t.Errorf("functions_scanned = %d, want 2", got)
	}
	maxCC := findMetric(t, metrics, "repo.complexity.cyclomatic_max").Value.(int)
	if maxCC < 4 {
		t.Errorf("cyclomatic_max = %d, want >= 4 (if + for + nested if + switch cases)", maxCC)
	}
	avg := findMetric(t, metrics, "repo.complexity.cyclomatic_avg").Value.(float64)
	if avg <= 1 || avg >= float64(maxCC) {
		t.Errorf("cyclomatic_avg = %v, want between 1 and %d", avg, maxCC)
	}
	if got := findMetric(t, metrics, "repo.complexity.high_count").Value.(int); got != 0 {
		t.Errorf("high_count = %d, want 0", got)
	}
	mi := findMetric(t, metrics, "repo.complexity.maintainability_index").Value.(float64)
	if mi <= 0 || mi > 100 {
		t.Errorf("maintainability_index = %v, want in (0, 100]", mi)
	}
}

func TestComplexityPython(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "app.py", `
def pick(items, key):
    for item in items:
        if item.name == key:
            return item
        elif item.alias == key:
            return item
    return None
`)

	metrics, err := NewComplexity(config.DefaultConfig()).Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if got := findMetric(t, metrics, "repo.complexity.functions_scanned").Value.(int); got != 1 {
		t.Errorf("functions_scanned = %d, want 1", got)
	}
	if got := findMetric(t, metrics, "repo.complexity.cyclomatic_max").Value.(int); got < 3 {
		t.Errorf("cyclomatic_max = %d, want >= 3 (for + if + elif)", got)
	}
}

func TestComplexityNoParseableSources(t *testing.T) {
	dir := t.TempDir()
	writeRepoFile(t, dir, "notes.rb", "puts 'no grammar wired for ruby'\n")

	metrics, err := NewComplexity(config.DefaultConfig()).Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("expected no metrics without parseable sources, got %d", len(metrics))
	}
}
