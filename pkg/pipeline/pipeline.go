// Package pipeline sequences an audit run: collect metrics, score them,
// then hand the results to any configured sinks. Stages are strictly
// ordered; partial collection still produces a scored result.
package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/repoquant/repoquant/pkg/aggregator"
	"github.com/repoquant/repoquant/pkg/models"
	"github.com/repoquant/repoquant/pkg/scoring"
)

// Status values for a finished run.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Sink receives finished runs. Sink errors degrade the run's error list
// but never change its status.
type Sink interface {
	Store(ctx context.Context, metrics *models.MetricSet, scoring *models.ScoringResult) error
}

// Request describes one repository audit.
type Request struct {
	Path       string
	AnalysisID string
	RepoURL    string
	Branch     string
	Region     string
}

// Result is the outcome of one audit run. Run never returns an error;
// failures are reported through Status and Errors.
type Result struct {
	Status      string                `json:"status"`
	Errors      []string              `json:"errors,omitempty"`
	Metrics     *models.MetricSet     `json:"metrics,omitempty"`
	Scoring     *models.ScoringResult `json:"scoring,omitempty"`
	StartedAt   time.Time             `json:"started_at"`
	CompletedAt time.Time             `json:"completed_at"`
}

// Pipeline wires the aggregator and scoring engine together.
type Pipeline struct {
	agg    *aggregator.Aggregator
	engine *scoring.Engine
	sinks  []Sink
	logger *log.Logger
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithSinks appends result sinks.
func WithSinks(sinks ...Sink) Option {
	return func(p *Pipeline) {
		p.sinks = append(p.sinks, sinks...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a pipeline over an aggregator and scoring engine.
func New(agg *aggregator.Aggregator, engine *scoring.Engine, opts ...Option) *Pipeline {
	p := &Pipeline{
		agg:    agg,
		engine: engine,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "pipeline"}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes collect then score then store. Collector failures leave
// the run completed with a sparser metric set; only an invalid
// repository path fails the run.
func (p *Pipeline) Run(ctx context.Context, req Request) Result {
	result := Result{StartedAt: time.Now()}

	collected, err := p.agg.Collect(ctx, aggregator.Request{
		Path:       req.Path,
		AnalysisID: req.AnalysisID,
		RepoURL:    req.RepoURL,
		Branch:     req.Branch,
	})
	if err != nil {
		p.logger.Error("collection failed", "path", req.Path, "error", err)
		result.Status = StatusFailed
		result.Errors = append(result.Errors, err.Error())
		result.CompletedAt = time.Now()
		return result
	}

	for _, failure := range collected.Failures {
		result.Errors = append(result.Errors, failure.Error())
	}
	p.logger.Info("collection finished",
		"metrics", collected.Set.Len(),
		"failed_collectors", len(collected.Failures),
		"duration", collected.Duration)

	scored := p.engine.CalculateScores(collected.Set, req.Region)

	for _, sink := range p.sinks {
		if err := sink.Store(ctx, collected.Set, &scored); err != nil {
			p.logger.Warn("sink failed", "error", err)
			result.Errors = append(result.Errors, "sink: "+err.Error())
		}
	}

	result.Status = StatusCompleted
	result.Metrics = collected.Set
	result.Scoring = &scored
	result.CompletedAt = time.Now()
	return result
}
