package collector

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/repoquant/repoquant/internal/vcs"
	"github.com/repoquant/repoquant/pkg/models"
)

// Git collects commit-history metrics: commit count, recent activity,
// author count, active days, and first/last commit timestamps.
type Git struct {
	windowDays int
	timeout    time.Duration
	opener     vcs.Opener
	useNative  bool
}

// GitOption configures the git collector.
type GitOption func(*Git)

// WithGitWindowDays sets the recent-commit window.
func WithGitWindowDays(days int) GitOption {
	return func(c *Git) {
		if days > 0 {
			c.windowDays = days
		}
	}
}

// WithGitTimeout bounds the git invocation.
func WithGitTimeout(d time.Duration) GitOption {
	return func(c *Git) {
		c.timeout = d
	}
}

// WithGitOpener sets the VCS opener and disables the native-git fast
// path (useful for testing).
func WithGitOpener(opener vcs.Opener) GitOption {
	return func(c *Git) {
		c.opener = opener
		c.useNative = false
	}
}

// NewGit creates the git history collector.
func NewGit(opts ...GitOption) *Git {
	c := &Git{
		windowDays: 90,
		timeout:    DefaultToolTimeout,
		opener:     vcs.DefaultOpener(),
		useNative:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements Collector.
func (c *Git) Name() string { return "git" }

type commitStats struct {
	total      int
	recent     int
	authors    map[string]struct{}
	activeDays map[string]struct{}
	first      time.Time
	last       time.Time
}

// Collect implements Collector. A repository without git history yields
// no metrics rather than an error.
func (c *Git) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	var stats *commitStats
	var err error

	if c.useNative {
		if _, lookErr := exec.LookPath("git"); lookErr == nil {
			stats, err = c.collectNative(ctx, repoPath)
		} else {
			stats, err = c.collectGoGit(repoPath)
		}
	} else {
		stats, err = c.collectGoGit(repoPath)
	}
	if err != nil {
		return nil, err
	}
	if stats == nil || stats.total == 0 {
		return nil, nil
	}

	gauge := func(name string, value any) models.Metric {
		return models.NewMetric(name, value, models.TypeGauge, models.SourceGit, models.CategoryHistory)
	}

	out := []models.Metric{
		gauge(models.MetricCommitCount, stats.total),
		gauge(models.MetricRecentCommitCount, stats.recent),
		gauge(models.MetricAuthorCount, len(stats.authors)),
		gauge(models.MetricActiveDays, len(stats.activeDays)),
		models.NewMetric(models.MetricFirstCommitAt, stats.first.Format(time.RFC3339),
			models.TypeInfo, models.SourceGit, models.CategoryHistory),
		models.NewMetric(models.MetricLastCommitAt, stats.last.Format(time.RFC3339),
			models.TypeInfo, models.SourceGit, models.CategoryHistory),
	}
	return out, nil
}

// collectNative parses one git log pass. Native git is much faster than
// go-git on large histories.
func (c *Git) collectNative(ctx context.Context, repoPath string) (*commitStats, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "log", "--format=%aN|%aI")
	cmd.Dir = repoPath

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	stats := newCommitStats()
	cutoff := time.Now().AddDate(0, 0, -c.windowDays)

	sc := bufio.NewScanner(stdout)
	for sc.Scan() {
		line := sc.Text()
		sep := strings.LastIndex(line, "|")
		if sep < 0 {
			continue
		}
		when, err := time.Parse(time.RFC3339, line[sep+1:])
		if err != nil {
			continue
		}
		stats.observe(line[:sep], when, cutoff)
	}

	if err := cmd.Wait(); err != nil {
		// Not a git repository or empty history: no metrics.
		return nil, nil
	}
	return stats, nil
}

func (c *Git) collectGoGit(repoPath string) (*commitStats, error) {
	repo, err := c.opener.PlainOpen(repoPath)
	if err != nil {
		// Not a git repository: no metrics.
		return nil, nil
	}

	stats := newCommitStats()
	cutoff := time.Now().AddDate(0, 0, -c.windowDays)

	err = repo.Log(nil, func(commit vcs.Commit) error {
		stats.observe(commit.AuthorName, commit.When, cutoff)
		return nil
	})
	if err != nil {
		return nil, nil
	}
	return stats, nil
}

func newCommitStats() *commitStats {
	return &commitStats{
		authors:    make(map[string]struct{}),
		activeDays: make(map[string]struct{}),
	}
}

func (s *commitStats) observe(author string, when time.Time, cutoff time.Time) {
	s.total++
	if author != "" {
		s.authors[author] = struct{}{}
	}
	s.activeDays[when.Format("2006-01-02")] = struct{}{}
	if when.After(cutoff) {
		s.recent++
	}
	if s.first.IsZero() || when.Before(s.first) {
		s.first = when
	}
	if when.After(s.last) {
		s.last = when
	}
}
