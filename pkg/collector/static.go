package collector

import (
	"context"
	"os"
	"sort"

	"github.com/repoquant/repoquant/internal/scanner"
	"github.com/repoquant/repoquant/pkg/config"
	"github.com/repoquant/repoquant/pkg/models"
)

// Static measures code size: per-language file counts and LOC, test-file
// counts by naming convention, and file-size extremes. Vendor and build
// directories are excluded by the scanner.
type Static struct {
	scanner *scanner.Scanner
}

// NewStatic creates the static size collector.
func NewStatic(cfg *config.Config) *Static {
	return &Static{scanner: scanner.New(cfg)}
}

// Name implements Collector.
func (c *Static) Name() string { return "static" }

// Collect implements Collector.
func (c *Static) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	files, err := c.scanner.ScanDir(repoPath)
	if err != nil {
		return nil, err
	}

	locByLang := make(map[scanner.Language]int)
	filesByLang := make(map[scanner.Language]int)
	totalLOC := 0
	testFiles := 0
	maxFileLines := 0

	for _, path := range files {
		if ctx.Err() != nil {
			break // timeout: report what we have
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		lines := countLines(content)
		lang := scanner.DetectLanguage(path)

		totalLOC += lines
		locByLang[lang] += lines
		filesByLang[lang]++
		if lines > maxFileLines {
			maxFileLines = lines
		}
		if scanner.IsTestFile(path) {
			testFiles++
		}
	}

	gauge := func(name string, value any, opts ...models.MetricOption) models.Metric {
		return models.NewMetric(name, value, models.TypeGauge, models.SourceStatic, models.CategorySize, opts...)
	}

	out := []models.Metric{
		gauge(models.MetricLOCTotal, totalLOC, models.WithUnit("lines")),
		gauge(models.MetricFileCount, len(files)),
		gauge(models.MetricTestFileCount, testFiles),
		gauge(models.MetricMaxFileLines, maxFileLines, models.WithUnit("lines")),
	}
	if len(files) > 0 {
		out = append(out, gauge(models.MetricAvgFileLines, float64(totalLOC)/float64(len(files)), models.WithUnit("lines")))
	}

	// Stable per-language ordering keeps output deterministic.
	langs := make([]string, 0, len(locByLang))
	for lang := range locByLang {
		langs = append(langs, string(lang))
	}
	sort.Strings(langs)

	for _, lang := range langs {
		labels := models.WithLabels(map[string]string{"language": lang})
		out = append(out,
			gauge(models.MetricLOCByLanguage, locByLang[scanner.Language(lang)], labels, models.WithUnit("lines")),
			gauge(models.MetricFilesByLang, filesByLang[scanner.Language(lang)], labels),
		)
	}

	return out, nil
}
