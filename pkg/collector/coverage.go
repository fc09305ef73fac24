package collector

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/repoquant/repoquant/pkg/models"
)

// Coverage extracts a test-coverage percentage. Parse priority: Cobertura
// XML, then LCOV, then a coverage badge in the README. First successful
// parse wins; when nothing parses, no metric is emitted (unknown, not
// zero).
type Coverage struct{}

// NewCoverage creates the coverage collector.
func NewCoverage() *Coverage {
	return &Coverage{}
}

// Name implements Collector.
func (c *Coverage) Name() string { return "coverage" }

// Collect implements Collector.
func (c *Coverage) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	type attempt struct {
		source string
		parse  func() (float64, bool)
	}

	attempts := []attempt{
		{"cobertura", func() (float64, bool) { return parseCobertura(repoPath) }},
		{"lcov", func() (float64, bool) { return parseLCOV(repoPath) }},
		{"readme_badge", func() (float64, bool) { return parseReadmeBadge(repoPath) }},
	}

	for _, a := range attempts {
		percent, ok := a.parse()
		if !ok {
			continue
		}
		return []models.Metric{
			models.NewMetric(models.MetricCoveragePercent, percent,
				models.TypeGauge, models.SourceCoverage, models.CategoryTesting,
				models.WithUnit("percent")),
			models.NewMetric(models.MetricCoverageSource, a.source,
				models.TypeInfo, models.SourceCoverage, models.CategoryTesting),
		}, nil
	}
	return nil, nil
}

// coberturaRoot is the subset of a Cobertura report we read.
type coberturaRoot struct {
	LineRate string `xml:"line-rate,attr"`
}

func parseCobertura(repoPath string) (float64, bool) {
	for _, name := range []string{"coverage.xml", "cobertura.xml", "coverage/coverage.xml"} {
		content, err := os.ReadFile(filepath.Join(repoPath, name))
		if err != nil {
			continue
		}
		var root coberturaRoot
		if err := xml.Unmarshal(content, &root); err != nil {
			continue
		}
		rate, err := strconv.ParseFloat(root.LineRate, 64)
		if err != nil || rate < 0 || rate > 1 {
			continue
		}
		return rate * 100, true
	}
	return 0, false
}

func parseLCOV(repoPath string) (float64, bool) {
	for _, name := range []string{"lcov.info", "coverage/lcov.info", "coverage.lcov"} {
		content, err := os.ReadFile(filepath.Join(repoPath, name))
		if err != nil {
			continue
		}
		var found, hit int
		for _, line := range strings.Split(string(content), "\n") {
			if v, ok := strings.CutPrefix(line, "LF:"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
					found += n
				}
			}
			if v, ok := strings.CutPrefix(line, "LH:"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
					hit += n
				}
			}
		}
		if found > 0 {
			return float64(hit) / float64(found) * 100, true
		}
	}
	return 0, false
}

var badgeRe = regexp.MustCompile(`(?i)coverage[^0-9]{0,20}(\d{1,3})\s?%`)

func parseReadmeBadge(repoPath string) (float64, bool) {
	path, ok := fileExists(repoPath, "README.md", "README.rst", "README")
	if !ok {
		return 0, false
	}
	content, err := readFileCapped(path, 256<<10)
	if err != nil {
		return 0, false
	}
	m := badgeRe.FindStringSubmatch(content)
	if m == nil {
		return 0, false
	}
	percent, err := strconv.ParseFloat(m[1], 64)
	if err != nil || percent > 100 {
		return 0, false
	}
	return percent, true
}
