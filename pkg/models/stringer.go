package models

// String methods for custom string types. Required for toon
// serialization, which uses fmt.Stringer.

// MetricType
func (t MetricType) String() string { return string(t) }

// MetricSource
func (s MetricSource) String() string { return string(s) }

// MetricCategory
func (c MetricCategory) String() string { return string(c) }

// ProductLevel
func (p ProductLevel) String() string { return string(p) }

// Complexity
func (c Complexity) String() string { return string(c) }

// TaskPriority
func (p TaskPriority) String() string { return string(p) }
