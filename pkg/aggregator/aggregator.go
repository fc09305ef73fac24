// Package aggregator orchestrates the collection agents: it fans them
// out concurrently, bounds each with a timeout, and merges their metric
// buffers into a single set in registration order. A failing collector
// degrades the result, it never aborts the batch.
package aggregator

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc"
	"github.com/zeebo/blake3"

	"github.com/repoquant/repoquant/pkg/collector"
	"github.com/repoquant/repoquant/pkg/models"
)

// ErrInvalidRepoPath is the one fatal collection error: the target does
// not exist or is not a directory.
var ErrInvalidRepoPath = errors.New("repository path does not exist or is not a directory")

// Failure records one collector that did not complete, for inspection
// by callers and operators.
type Failure struct {
	Collector string `json:"collector"`
	Err       error  `json:"-"`
	Message   string `json:"message"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("collector %s: %s", f.Collector, f.Message)
}

// Unwrap exposes the underlying collector error to errors.Is/As.
func (f Failure) Unwrap() error { return f.Err }

// Request identifies one repository to collect.
type Request struct {
	// Path is the local checkout to analyze. Required.
	Path string
	// AnalysisID tags the resulting metric set. Derived from the path
	// and start time when empty.
	AnalysisID string
	// RepoURL and Branch are carried into the set verbatim.
	RepoURL string
	Branch  string
}

// Result is one finished collection run.
type Result struct {
	Set      *models.MetricSet
	Failures []Failure
	Duration time.Duration
}

// Aggregator runs a fixed roster of collectors against a repository.
type Aggregator struct {
	collectors []collector.Collector
	timeout    time.Duration
	logger     *log.Logger
	onDone     func(collector string)
}

// Option configures the aggregator.
type Option func(*Aggregator)

// WithTimeout bounds each collector run.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithProgress registers a callback invoked as each collector finishes,
// successful or not. The callback must be safe for concurrent use.
func WithProgress(fn func(collector string)) Option {
	return func(a *Aggregator) {
		a.onDone = fn
	}
}

// New creates an aggregator over the given collectors. Registration
// order determines merge order in the resulting metric set.
func New(collectors []collector.Collector, opts ...Option) *Aggregator {
	a := &Aggregator{
		collectors: collectors,
		timeout:    3 * time.Minute,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "aggregator"}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Collectors returns the registered collector names in merge order.
func (a *Aggregator) Collectors() []string {
	names := make([]string, len(a.collectors))
	for i, c := range a.collectors {
		names[i] = c.Name()
	}
	return names
}

// Collect runs every collector concurrently and merges their buffers in
// registration order. Collector errors and panics become Failures on
// the result; the only error return is ErrInvalidRepoPath.
func (a *Aggregator) Collect(ctx context.Context, req Request) (*Result, error) {
	info, err := os.Stat(req.Path)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRepoPath, req.Path)
	}

	started := time.Now()
	analysisID := req.AnalysisID
	if analysisID == "" {
		analysisID = deriveAnalysisID(req.Path, started)
	}

	buffers := make([][]models.Metric, len(a.collectors))
	failures := make([]Failure, len(a.collectors))

	var wg conc.WaitGroup
	for i, c := range a.collectors {
		wg.Go(func() {
			cctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			if a.onDone != nil {
				defer a.onDone(c.Name())
			}

			defer func() {
				if r := recover(); r != nil {
					failures[i] = Failure{
						Collector: c.Name(),
						Err:       fmt.Errorf("panic: %v", r),
						Message:   fmt.Sprintf("panic: %v", r),
					}
				}
			}()

			collectorStart := time.Now()
			metrics, err := c.Collect(cctx, req.Path)
			if err != nil {
				failures[i] = Failure{Collector: c.Name(), Err: err, Message: err.Error()}
				a.logger.Warn("collector failed", "collector", c.Name(), "error", err)
				return
			}
			buffers[i] = metrics
			a.logger.Debug("collector finished",
				"collector", c.Name(),
				"metrics", len(metrics),
				"duration", time.Since(collectorStart))
		})
	}
	wg.Wait()

	set := models.NewMetricSet(analysisID, req.RepoURL, req.Branch)
	for _, buffer := range buffers {
		set.AddAll(buffer)
	}

	var failed []Failure
	var failedNames []string
	for _, f := range failures {
		if f.Collector != "" {
			failed = append(failed, f)
			failedNames = append(failedNames, f.Collector)
		}
	}

	set.Metadata["collectors_run"] = strings.Join(a.Collectors(), ",")
	if len(failedNames) > 0 {
		set.Metadata["collectors_failed"] = strings.Join(failedNames, ",")
	}

	if collisions := set.Collisions(); len(collisions) > 0 {
		a.logger.Warn("metric name collisions, last writer wins in flattened views",
			"names", strings.Join(collisions, ","))
	}

	return &Result{
		Set:      set,
		Failures: failed,
		Duration: time.Since(started),
	}, nil
}

// deriveAnalysisID produces a short stable-format identifier from the
// absolute repository path and the run start time.
func deriveAnalysisID(path string, started time.Time) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := blake3.Sum256([]byte(abs + "\n" + started.Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:8])
}
