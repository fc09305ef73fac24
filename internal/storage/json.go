package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/repoquant/repoquant/internal/schema"
	"github.com/repoquant/repoquant/pkg/models"
)

// JSONSink writes each run to a pretty-printed JSON file.
type JSONSink struct {
	path string
}

// NewJSONSink creates a sink writing to the given path. Parent
// directories are created on first store.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// Store implements Sink.
func (s *JSONSink) Store(_ context.Context, metrics *models.MetricSet, scoring *models.ScoringResult) error {
	if scoring != nil {
		scoringJSON, err := json.Marshal(scoring)
		if err != nil {
			return fmt.Errorf("encode scoring: %w", err)
		}
		if err := schema.ValidateScoring(scoringJSON); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(runEnvelope{Metrics: metrics, Scoring: scoring}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
