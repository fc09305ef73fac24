package collector

import (
	"context"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/repoquant/repoquant/internal/scanner"
	"github.com/repoquant/repoquant/pkg/config"
	"github.com/repoquant/repoquant/pkg/models"
)

// duplicationWindow is the shingle size in normalized lines.
const duplicationWindow = 6

// Duplication estimates copy-paste density by hashing sliding windows of
// normalized source lines and counting windows that repeat across the
// codebase. It is a similarity fallback, not a token-precise clone
// detector; that is enough for the 5/10/15 percent scoring thresholds.
type Duplication struct {
	scanner *scanner.Scanner
}

// NewDuplication creates the duplication collector.
func NewDuplication(cfg *config.Config) *Duplication {
	return &Duplication{scanner: scanner.New(cfg)}
}

// Name implements Collector.
func (c *Duplication) Name() string { return "duplication" }

// Collect implements Collector.
func (c *Duplication) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	files, err := c.scanner.ScanDir(repoPath)
	if err != nil {
		return nil, err
	}

	// window hash -> occurrence count
	windows := make(map[uint64]int, 4096)
	totalWindows := 0

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		lines := normalizeLines(string(content))
		if len(lines) < duplicationWindow {
			continue
		}
		var digest xxhash.Digest
		for i := 0; i+duplicationWindow <= len(lines); i++ {
			digest.Reset()
			for _, line := range lines[i : i+duplicationWindow] {
				_, _ = digest.WriteString(line)
				_, _ = digest.Write([]byte{'\n'})
			}
			windows[digest.Sum64()]++
			totalWindows++
		}
	}

	if totalWindows == 0 {
		return nil, nil
	}

	duplicated := 0
	cloneGroups := 0
	for _, count := range windows {
		if count > 1 {
			duplicated += count - 1
			cloneGroups++
		}
	}
	percent := float64(duplicated) / float64(totalWindows) * 100

	return []models.Metric{
		models.NewMetric(models.MetricDuplicationPercent, percent,
			models.TypeGauge, models.SourceStatic, models.CategoryCodeQuality,
			models.WithUnit("percent")),
		models.NewMetric(models.MetricCloneCount, cloneGroups,
			models.TypeGauge, models.SourceStatic, models.CategoryCodeQuality),
	}, nil
}

// normalizeLines strips whitespace and drops blank and comment-only
// lines so formatting differences do not mask clones.
func normalizeLines(content string) []string {
	raw := strings.Split(content, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" || line == "}" || line == "{" {
			continue
		}
		if strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "*") {
			continue
		}
		out = append(out, line)
	}
	return out
}
