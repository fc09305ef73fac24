// Package storage persists finished audit runs. Two sinks ship with the
// CLI: a JSON file writer and a SQLite database.
package storage

import (
	"context"

	"github.com/repoquant/repoquant/pkg/models"
)

// Sink receives one finished run.
type Sink interface {
	Store(ctx context.Context, metrics *models.MetricSet, scoring *models.ScoringResult) error
}

// runEnvelope is the serialized form shared by the sinks.
type runEnvelope struct {
	Metrics *models.MetricSet     `json:"metrics"`
	Scoring *models.ScoringResult `json:"scoring"`
}
