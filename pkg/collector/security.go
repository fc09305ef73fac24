package collector

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/repoquant/repoquant/internal/scanner"
	"github.com/repoquant/repoquant/pkg/config"
	"github.com/repoquant/repoquant/pkg/models"
)

// Security scans for leaked credentials and insecure code patterns, and
// counts dependency vulnerabilities when a scanner binary is installed.
// Findings are bucketed into {critical, high, medium, low} severities.
type Security struct {
	scanner     *scanner.Scanner
	toolTimeout time.Duration
}

// NewSecurity creates the security collector.
func NewSecurity(cfg *config.Config) *Security {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Security{
		scanner:     scanner.New(cfg),
		toolTimeout: time.Duration(cfg.Collectors.ToolTimeoutSeconds) * time.Second,
	}
}

// Name implements Collector.
func (c *Security) Name() string { return "security" }

// secretPattern is one credential shape with its severity.
type secretPattern struct {
	name string
	re   *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{"aws_access_key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"private_key", regexp.MustCompile(`-----BEGIN (RSA |EC |OPENSSH )?PRIVATE KEY-----`)},
	{"github_token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36,}`)},
	{"slack_token", regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,}`)},
	{"generic_assignment", regexp.MustCompile(`(?i)(api[_-]?key|secret|password|token)\s*[:=]\s*['"][^'"\s]{12,}['"]`)},
}

// insecurePattern is one static code check with a fixed severity bucket.
type insecurePattern struct {
	severity string
	re       *regexp.Regexp
}

var insecurePatterns = []insecurePattern{
	{"critical", regexp.MustCompile(`(?i)\beval\s*\(`)},
	{"critical", regexp.MustCompile(`pickle\.loads?\s*\(`)},
	{"high", regexp.MustCompile(`shell\s*=\s*True`)},
	{"high", regexp.MustCompile(`yaml\.load\s*\([^)]*\)`)},
	{"medium", regexp.MustCompile(`\bmd5\b|\bsha1\b`)},
	{"medium", regexp.MustCompile(`InsecureSkipVerify\s*:\s*true`)},
	{"low", regexp.MustCompile(`http://[a-z0-9]`)},
}

// falsePositiveValue filters obvious placeholder secrets.
var falsePositiveValue = regexp.MustCompile(`(?i)(example|placeholder|changeme|your[_-]?|xxx+|dummy|sample|<[^>]+>)`)

// Collect implements Collector.
func (c *Security) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	files, err := c.scanner.ScanDir(repoPath)
	if err != nil {
		return nil, err
	}

	secrets := 0
	findings := map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0}

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		rel, relErr := filepath.Rel(repoPath, path)
		if relErr != nil {
			rel = path
		}
		isFixture := containsAny(strings.ToLower(filepath.ToSlash(rel)),
			"test", "example", "fixture", "sample", "mock")

		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		text := string(content)

		if !isFixture {
			for _, p := range secretPatterns {
				for _, match := range p.re.FindAllString(text, 10) {
					if falsePositiveValue.MatchString(match) {
						continue
					}
					secrets++
				}
			}
		}
		for _, p := range insecurePatterns {
			if n := len(p.re.FindAllStringIndex(text, 50)); n > 0 && !isFixture {
				findings[p.severity] += n
			}
		}
	}

	counter := func(name string, value any) models.Metric {
		return models.NewMetric(name, value, models.TypeCounter, models.SourceSecurity, models.CategorySecurity)
	}

	out := []models.Metric{
		counter(models.MetricFindingsCritical, findings["critical"]),
		counter(models.MetricFindingsHigh, findings["high"]),
		counter(models.MetricFindingsMedium, findings["medium"]),
		counter(models.MetricFindingsLow, findings["low"]),
		counter(models.MetricSecretsFound, secrets),
	}

	// Dependency vulnerabilities need an external scanner; -1 is the
	// documented "scan unavailable" sentinel, never a silent zero.
	vulns := c.scanVulnerabilities(ctx, repoPath)
	out = append(out, models.NewMetric(models.MetricVulnerabilityCount, vulns,
		models.TypeCounter, models.SourceSecurity, models.CategoryDependencies,
		models.WithDescription("-1 means no vulnerability scanner was available")))

	return out, nil
}

// osvReport is the subset of osv-scanner JSON output we count.
type osvReport struct {
	Results []struct {
		Packages []struct {
			Vulnerabilities []json.RawMessage `json:"vulnerabilities"`
		} `json:"packages"`
	} `json:"results"`
}

func (c *Security) scanVulnerabilities(ctx context.Context, repoPath string) int {
	res := runTool(ctx, repoPath, c.toolTimeout, "osv-scanner", "--format", "json", "-r", ".")
	if !res.Available || res.Output == "" {
		return -1
	}

	var report osvReport
	if err := json.Unmarshal([]byte(res.Output), &report); err != nil {
		return -1
	}
	count := 0
	for _, r := range report.Results {
		for _, p := range r.Packages {
			count += len(p.Vulnerabilities)
		}
	}
	return count
}
