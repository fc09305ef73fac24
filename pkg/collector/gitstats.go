package collector

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/repoquant/repoquant/pkg/models"
)

// GitStats computes contributor analytics over a recent-history window:
// bus factor, top-contributor share, hotspot files, and 30-day churn.
// It requires the native git binary and skips silently without it.
type GitStats struct {
	windowDays int
	timeout    time.Duration
}

// GitStatsOption configures the analytics collector.
type GitStatsOption func(*GitStats)

// WithStatsWindowDays sets the history window.
func WithStatsWindowDays(days int) GitStatsOption {
	return func(c *GitStats) {
		if days > 0 {
			c.windowDays = days
		}
	}
}

// NewGitStats creates the git analytics collector.
func NewGitStats(opts ...GitStatsOption) *GitStats {
	c := &GitStats{windowDays: 90, timeout: DefaultToolTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Collector.
func (c *GitStats) Name() string { return "gitstats" }

// Collect implements Collector.
func (c *GitStats) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	since := time.Now().AddDate(0, 0, -c.windowDays).Format("2006-01-02")
	cmd := exec.CommandContext(ctx, "git", "log", "--numstat", "--since="+since, "--format=%H|%aN|%aI")
	cmd.Dir = repoPath

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, nil
	}

	commitsByAuthor := make(map[string]int)
	changesByFile := make(map[string]int)
	totalCommits := 0
	churn30d := 0

	churnCutoff := time.Now().AddDate(0, 0, -30)
	var currentWhen time.Time

	sc := bufio.NewScanner(&stdout)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if parts := strings.Split(line, "|"); len(parts) == 3 && len(parts[0]) == 40 {
			totalCommits++
			commitsByAuthor[parts[1]]++
			if when, err := time.Parse(time.RFC3339, parts[2]); err == nil {
				currentWhen = when
			}
			continue
		}
		// numstat line: added \t deleted \t path
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			continue
		}
		added, err1 := strconv.Atoi(fields[0])
		deleted, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil {
			continue // binary files report "-"
		}
		changesByFile[fields[2]]++
		if currentWhen.After(churnCutoff) {
			churn30d += added + deleted
		}
	}

	if totalCommits == 0 {
		return nil, nil
	}

	busFactor, topPct := contributorConcentration(commitsByAuthor, totalCommits)
	hotspots := topChangedFiles(changesByFile, 5)

	gauge := func(name string, value any, opts ...models.MetricOption) models.Metric {
		return models.NewMetric(name, value, models.TypeGauge, models.SourceGit, models.CategoryHistory, opts...)
	}

	return []models.Metric{
		gauge(models.MetricBusFactor, busFactor),
		gauge(models.MetricTopContributorPct, topPct, models.WithUnit("percent")),
		gauge(models.MetricChurn30d, churn30d, models.WithUnit("lines")),
		models.NewMetric(models.MetricHotspotFiles, strings.Join(hotspots, ","),
			models.TypeInfo, models.SourceGit, models.CategoryHistory,
			models.WithDescription("most-changed files in the analysis window")),
	}, nil
}

// contributorConcentration returns the bus factor (minimum contributors
// covering half the commits) and the top contributor's commit share.
func contributorConcentration(commitsByAuthor map[string]int, total int) (int, float64) {
	counts := make([]int, 0, len(commitsByAuthor))
	for _, n := range commitsByAuthor {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	covered := 0
	busFactor := 0
	for _, n := range counts {
		covered += n
		busFactor++
		if float64(covered) >= float64(total)*0.5 {
			break
		}
	}

	topPct := 0.0
	if len(counts) > 0 && total > 0 {
		topPct = float64(counts[0]) / float64(total) * 100
	}
	return busFactor, topPct
}

// topChangedFiles returns up to n files whose change counts stand out
// from the mean.
func topChangedFiles(changesByFile map[string]int, n int) []string {
	type fileChanges struct {
		path  string
		count int
	}
	all := make([]fileChanges, 0, len(changesByFile))
	counts := make([]float64, 0, len(changesByFile))
	for path, count := range changesByFile {
		all = append(all, fileChanges{path, count})
		counts = append(counts, float64(count))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].path < all[j].path
	})

	mean := stat.Mean(counts, nil)
	out := make([]string, 0, n)
	for _, fc := range all {
		if len(out) >= n {
			break
		}
		// A hotspot changes more often than the average file.
		if float64(fc.count) >= mean && fc.count > 1 {
			out = append(out, fc.path)
		}
	}
	return out
}
