package models

import (
	"fmt"
	"sort"
	"time"
)

// MetricType classifies how a metric value should be interpreted.
type MetricType string

const (
	TypeGauge     MetricType = "gauge"     // point-in-time measurement
	TypeCounter   MetricType = "counter"   // cumulative count
	TypeHistogram MetricType = "histogram" // distribution sample
	TypeSummary   MetricType = "summary"   // pre-aggregated distribution
	TypeInfo      MetricType = "info"      // boolean or string metadata
)

// MetricSource identifies the collector that produced a metric.
type MetricSource string

const (
	SourceStructure MetricSource = "structure"
	SourceStatic    MetricSource = "static"
	SourceGit       MetricSource = "git"
	SourceSecurity  MetricSource = "security"
	SourceDeps      MetricSource = "deps"
	SourceCoverage  MetricSource = "coverage"
	SourceCI        MetricSource = "ci"
	SourceScored    MetricSource = "scored" // appended by the scoring engine
)

// MetricCategory groups metrics for scoring.
type MetricCategory string

const (
	CategoryDocumentation  MetricCategory = "documentation"
	CategoryStructure      MetricCategory = "structure"
	CategoryRunability     MetricCategory = "runability"
	CategoryHistory        MetricCategory = "history"
	CategoryArchitecture   MetricCategory = "architecture"
	CategoryCodeQuality    MetricCategory = "code_quality"
	CategoryTesting        MetricCategory = "testing"
	CategoryInfrastructure MetricCategory = "infrastructure"
	CategorySecurity       MetricCategory = "security"
	CategoryDependencies   MetricCategory = "dependencies"
	CategorySize           MetricCategory = "size"
	CategoryScoreHealth    MetricCategory = "score_health"
	CategoryScoreDebt      MetricCategory = "score_debt"
)

// Metric is a single named, typed, timestamped observation about a
// repository. Metrics are immutable once created; treat all fields as
// read-only.
type Metric struct {
	Name        string            `json:"name"`
	Value       any               `json:"value"`
	Type        MetricType        `json:"type"`
	Source      MetricSource      `json:"source"`
	Category    MetricCategory    `json:"category"`
	Labels      map[string]string `json:"labels,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Unit        string            `json:"unit,omitempty"`
	Description string            `json:"description,omitempty"`
}

// MetricOption configures optional metric fields at construction time.
type MetricOption func(*Metric)

// WithLabels attaches disambiguating labels (e.g. language=python).
func WithLabels(labels map[string]string) MetricOption {
	return func(m *Metric) {
		m.Labels = labels
	}
}

// WithUnit sets the unit of measure (e.g. "lines", "percent").
func WithUnit(unit string) MetricOption {
	return func(m *Metric) {
		m.Unit = unit
	}
}

// WithDescription sets the human-readable description.
func WithDescription(desc string) MetricOption {
	return func(m *Metric) {
		m.Description = desc
	}
}

// NewMetric constructs a metric with the timestamp set to now.
func NewMetric(name string, value any, mt MetricType, source MetricSource, category MetricCategory, opts ...MetricOption) Metric {
	m := Metric{
		Name:      name,
		Value:     value,
		Type:      mt,
		Source:    source,
		Category:  category,
		Timestamp: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// labelKey returns a deterministic key for the label combination.
func (m Metric) labelKey() string {
	if len(m.Labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(m.Labels))
	for k := range m.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for _, k := range keys {
		out += k + "=" + m.Labels[k] + ","
	}
	return out
}

// MetricSet is the complete, insertion-ordered observation set for one
// analysis run. Collectors and the scoring engine only ever append;
// existing metrics are never rewritten.
type MetricSet struct {
	AnalysisID  string         `json:"analysis_id"`
	RepoURL     string         `json:"repo_url"`
	Branch      string         `json:"branch,omitempty"`
	CollectedAt time.Time      `json:"collected_at"`
	Metrics     []Metric       `json:"metrics"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewMetricSet creates an empty metric set stamped with the aggregation
// start time.
func NewMetricSet(analysisID, repoURL, branch string) *MetricSet {
	return &MetricSet{
		AnalysisID:  analysisID,
		RepoURL:     repoURL,
		Branch:      branch,
		CollectedAt: time.Now().UTC(),
		Metrics:     make([]Metric, 0, 64),
		Metadata:    make(map[string]any),
	}
}

// Add appends a metric to the set.
func (s *MetricSet) Add(m Metric) {
	s.Metrics = append(s.Metrics, m)
}

// AddAll appends metrics in order.
func (s *MetricSet) AddAll(metrics []Metric) {
	s.Metrics = append(s.Metrics, metrics...)
}

// AddGauge appends a gauge metric.
func (s *MetricSet) AddGauge(name string, value any, source MetricSource, category MetricCategory, opts ...MetricOption) {
	s.Add(NewMetric(name, value, TypeGauge, source, category, opts...))
}

// AddCounter appends a counter metric.
func (s *MetricSet) AddCounter(name string, value any, source MetricSource, category MetricCategory, opts ...MetricOption) {
	s.Add(NewMetric(name, value, TypeCounter, source, category, opts...))
}

// AddInfo appends an info metric (boolean or string metadata).
func (s *MetricSet) AddInfo(name string, value any, source MetricSource, category MetricCategory, opts ...MetricOption) {
	s.Add(NewMetric(name, value, TypeInfo, source, category, opts...))
}

// Get returns the first metric with the given name. Lookups return the
// first match, so two collectors emitting the same unlabeled name is a
// correctness hazard they must avoid.
func (s *MetricSet) Get(name string) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// GetValue returns the first value recorded under name, or def.
func (s *MetricSet) GetValue(name string, def any) any {
	if m, ok := s.Get(name); ok {
		return m.Value
	}
	return def
}

// GetFloat returns the first value under name coerced to float64, or def
// when the metric is absent or not numeric.
func (s *MetricSet) GetFloat(name string, def float64) float64 {
	m, ok := s.Get(name)
	if !ok {
		return def
	}
	if f, ok := toFloat(m.Value); ok {
		return f
	}
	return def
}

// GetInt returns the first value under name coerced to int, or def.
func (s *MetricSet) GetInt(name string, def int) int {
	m, ok := s.Get(name)
	if !ok {
		return def
	}
	if f, ok := toFloat(m.Value); ok {
		return int(f)
	}
	return def
}

// GetBool returns the first value under name as a bool, or def.
func (s *MetricSet) GetBool(name string, def bool) bool {
	m, ok := s.Get(name)
	if !ok {
		return def
	}
	if b, ok := m.Value.(bool); ok {
		return b
	}
	return def
}

// GetString returns the first value under name as a string, or def.
func (s *MetricSet) GetString(name string, def string) string {
	m, ok := s.Get(name)
	if !ok {
		return def
	}
	if v, ok := m.Value.(string); ok {
		return v
	}
	return fmt.Sprintf("%v", m.Value)
}

// Has reports whether any metric with the given name exists.
func (s *MetricSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// FilterByCategory returns metrics in the category, preserving insertion
// order.
func (s *MetricSet) FilterByCategory(category MetricCategory) []Metric {
	var out []Metric
	for _, m := range s.Metrics {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}

// FilterBySource returns metrics from the source, preserving insertion
// order.
func (s *MetricSet) FilterBySource(source MetricSource) []Metric {
	var out []Metric
	for _, m := range s.Metrics {
		if m.Source == source {
			out = append(out, m)
		}
	}
	return out
}

// RemoveCategory drops every metric in the category and returns how many
// were removed. Collectors must never call this; it exists so the scoring
// engine can re-score a set without duplicating score metrics.
func (s *MetricSet) RemoveCategory(category MetricCategory) int {
	kept := s.Metrics[:0]
	removed := 0
	for _, m := range s.Metrics {
		if m.Category == category {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	s.Metrics = kept
	return removed
}

// FlatDict projects the set to a {name: value} map. On unlabeled name
// collision the last-inserted value wins; callers that care should check
// Collisions first.
func (s *MetricSet) FlatDict() map[string]any {
	out := make(map[string]any, len(s.Metrics))
	for _, m := range s.Metrics {
		out[m.Name] = m.Value
	}
	return out
}

// Collisions returns the names that appear more than once under the same
// label combination. A non-empty result means FlatDict silently dropped
// data.
func (s *MetricSet) Collisions() []string {
	seen := make(map[string]int, len(s.Metrics))
	var names []string
	for _, m := range s.Metrics {
		key := m.Name + "|" + m.labelKey()
		seen[key]++
		if seen[key] == 2 {
			names = append(names, m.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of metrics collected.
func (s *MetricSet) Len() int {
	return len(s.Metrics)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
