// Package cocomo implements a COCOMO-II-derivative effort and cost
// model. The estimator is a total function: every input is clamped or
// defaulted, and estimation never fails.
package cocomo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/repoquant/repoquant/pkg/models"
)

// Methodology names the model on every estimate.
const Methodology = "COCOMO II (derived)"

// hoursPerPersonMonth converts effort to billable hours.
const hoursPerPersonMonth = 160.0

// confidenceBand is the fixed ± fraction around typical hours.
const confidenceBand = 0.20

// TeamExperience tiers the capability multipliers.
type TeamExperience string

const (
	ExperienceLow     TeamExperience = "low"
	ExperienceNominal TeamExperience = "nominal"
	ExperienceHigh    TeamExperience = "high"
)

// Input carries everything the model consumes. CoveragePercent below
// zero means coverage is unknown, which is scored as a mild risk rather
// than as zero coverage.
type Input struct {
	LOC              int
	TechDebtScore    int
	CoveragePercent  float64
	CoverageKnown    bool
	HasCI            bool
	HasDocumentation bool
	TeamExperience   TeamExperience
}

// Rate is one region's hourly rate card. Typical is the blended rate
// used for the central estimate; Junior and Senior bound the band.
type Rate struct {
	Currency string
	Junior   float64
	Middle   float64
	Senior   float64
	Typical  float64
}

// defaultRates is the built-in regional rate card, keyed by region code.
var defaultRates = map[string]Rate{
	"ua": {Currency: "USD", Junior: 25, Middle: 45, Senior: 70, Typical: 40},
	"pl": {Currency: "EUR", Junior: 35, Middle: 55, Senior: 80, Typical: 55},
	"eu": {Currency: "EUR", Junior: 55, Middle: 75, Senior: 110, Typical: 75},
	"de": {Currency: "EUR", Junior: 65, Middle: 90, Senior: 130, Typical: 90},
	"uk": {Currency: "GBP", Junior: 60, Middle: 85, Senior: 125, Typical: 85},
	"us": {Currency: "USD", Junior: 80, Middle: 110, Senior: 160, Typical: 110},
	"in": {Currency: "USD", Junior: 18, Middle: 30, Senior: 50, Typical: 30},
}

// DefaultRegion is used when a requested region is not in the card.
const DefaultRegion = "ua"

// Estimator produces cost estimates against a regional rate card.
type Estimator struct {
	rates map[string]Rate
}

// Option configures the estimator.
type Option func(*Estimator)

// WithRates replaces the built-in rate card.
func WithRates(rates map[string]Rate) Option {
	return func(e *Estimator) {
		if len(rates) > 0 {
			e.rates = rates
		}
	}
}

// New creates an estimator with the built-in rate card.
func New(opts ...Option) *Estimator {
	e := &Estimator{rates: defaultRates}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Regions returns the known region codes in sorted order.
func (e *Estimator) Regions() []string {
	out := make([]string, 0, len(e.rates))
	for code := range e.rates {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// RateFor returns the rate card entry for a region, falling back to the
// default region for unknown codes.
func (e *Estimator) RateFor(region string) (string, Rate) {
	code := strings.ToLower(strings.TrimSpace(region))
	if rate, ok := e.rates[code]; ok {
		return code, rate
	}
	return DefaultRegion, e.rates[DefaultRegion]
}

// multipliers is the per-dimension effort adjustment set. Dimensions a
// given input does not move stay neutral at 1.0.
type multipliers struct {
	complexity            float64
	reliability           float64
	reuseRequired         float64
	toolUse               float64
	documentation         float64
	analystCapability     float64
	programmerCapability  float64
	applicationExperience float64
}

func (m multipliers) product() float64 {
	return m.complexity * m.reliability * m.reuseRequired * m.toolUse *
		m.documentation * m.analystCapability * m.programmerCapability * m.applicationExperience
}

func neutral() multipliers {
	return multipliers{1, 1, 1, 1, 1, 1, 1, 1}
}

// deriveMultipliers maps the audit signals onto COCOMO dimensions.
func deriveMultipliers(in Input) multipliers {
	m := neutral()

	switch debt := in.TechDebtScore; {
	case debt <= 5:
		m.complexity, m.reliability = 1.30, 1.15
	case debt <= 9:
		m.complexity, m.reliability = 1.15, 1.05
	case debt <= 12:
		m.complexity, m.reliability = 1.0, 1.0
	default:
		m.complexity, m.reliability = 0.90, 0.95
	}

	switch {
	case !in.CoverageKnown:
		m.reuseRequired = 1.10
	case in.CoveragePercent < 20:
		m.reuseRequired = 1.20
	case in.CoveragePercent < 50:
		m.reuseRequired = 1.05
	case in.CoveragePercent >= 70:
		m.reuseRequired = 0.90
	}

	if in.HasCI {
		m.toolUse = 0.90
	} else {
		m.toolUse = 1.10
	}
	if in.HasDocumentation {
		m.documentation = 0.95
	} else {
		m.documentation = 1.10
	}

	capability := 1.0
	switch in.TeamExperience {
	case ExperienceLow:
		capability = 1.15
	case ExperienceHigh:
		capability = 0.85
	}
	m.analystCapability = capability
	m.programmerCapability = capability
	m.applicationExperience = capability

	return m
}

// scaleFactor perturbs the effort exponent: low-debt repositories scale
// closer to linearly.
func scaleFactor(techDebt int) float64 {
	switch {
	case techDebt >= 12:
		return 10
	case techDebt >= 8:
		return 14
	case techDebt >= 5:
		return 18
	default:
		return 22
	}
}

// Estimate runs the model. The region selects the primary rate card
// entry; a second reference region is always included for comparison.
func (e *Estimator) Estimate(in Input, region string) models.CocomoEstimate {
	kloc := math.Max(float64(in.LOC)/1000.0, 0.1)

	eaf := deriveMultipliers(in).product()
	exponent := 0.85 + 0.01*scaleFactor(in.TechDebtScore)

	effortPM := 0.2 * math.Pow(kloc, exponent) * eaf
	durationMonths := 2.0 * math.Pow(effortPM, 0.35+0.2*(exponent-1.0))
	teamSize := effortPM / math.Max(durationMonths, 1)

	hoursTypical := effortPM * hoursPerPersonMonth
	hours := models.HoursBand{
		Min:     hoursTypical * (1 - confidenceBand),
		Typical: hoursTypical,
		Max:     hoursTypical * (1 + confidenceBand),
	}

	cost := make(map[string]models.RegionCost, 2)
	primary, rate := e.RateFor(region)
	cost[primary] = regionCost(primary, rate, hours)

	reference := "eu"
	if primary == "eu" {
		reference = "us"
	}
	if refRate, ok := e.rates[reference]; ok && reference != primary {
		cost[reference] = regionCost(reference, refRate, hours)
	}

	return models.CocomoEstimate{
		Methodology:        Methodology,
		KLOC:               kloc,
		EffortPersonMonths: effortPM,
		DurationMonths:     durationMonths,
		TeamSize:           teamSize,
		EAF:                eaf,
		Hours:              hours,
		Activities: models.ActivityHours{
			Analysis:       hoursTypical * 0.12,
			Design:         hoursTypical * 0.18,
			Implementation: hoursTypical * 0.42,
			Testing:        hoursTypical * 0.20,
			Documentation:  hoursTypical * 0.08,
		},
		Cost: cost,
	}
}

// regionCost prices the hour band: the minimum assumes junior rates on
// the low bound, the maximum senior rates on the high bound.
func regionCost(code string, rate Rate, hours models.HoursBand) models.RegionCost {
	typical := hours.Typical * rate.Typical
	return models.RegionCost{
		Region:    code,
		Currency:  rate.Currency,
		Min:       hours.Min * rate.Junior,
		Typical:   typical,
		Max:       hours.Max * rate.Senior,
		Formatted: fmt.Sprintf("%s %s", formatThousands(typical), rate.Currency),
	}
}

// formatThousands renders a rounded amount with thin group separators.
func formatThousands(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		n = 0
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
