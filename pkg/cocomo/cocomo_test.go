package cocomo

import (
	"math"
	"testing"
)

func baseInput() Input {
	return Input{
		LOC:              50000,
		TechDebtScore:    8,
		CoveragePercent:  60,
		CoverageKnown:    true,
		HasCI:            true,
		HasDocumentation: true,
		TeamExperience:   ExperienceNominal,
	}
}

func TestEstimateHoursBand(t *testing.T) {
	est := New().Estimate(baseInput(), "ua")

	if est.Hours.Typical <= 0 {
		t.Fatalf("typical hours = %v, want > 0", est.Hours.Typical)
	}
	if got, want := est.Hours.Min, est.Hours.Typical*0.8; math.Abs(got-want) > 1e-9 {
		t.Errorf("min hours = %v, want %v", got, want)
	}
	if got, want := est.Hours.Max, est.Hours.Typical*1.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("max hours = %v, want %v", got, want)
	}
}

func TestEstimateEconomiesOfScale(t *testing.T) {
	est := New()

	small := est.Estimate(baseInput(), "ua")
	in := baseInput()
	in.LOC *= 2
	large := est.Estimate(in, "ua")

	if large.Hours.Typical <= small.Hours.Typical {
		t.Errorf("doubling LOC decreased hours: %v -> %v", small.Hours.Typical, large.Hours.Typical)
	}
	if large.Hours.Typical >= 2*small.Hours.Typical {
		t.Errorf("doubling LOC doubled or more hours: %v -> %v (exponent < 1 expected)",
			small.Hours.Typical, large.Hours.Typical)
	}
}

func TestEstimateTinyRepoFloor(t *testing.T) {
	in := baseInput()
	in.LOC = 10
	est := New().Estimate(in, "ua")

	if est.KLOC != 0.1 {
		t.Errorf("KLOC = %v, want floor 0.1", est.KLOC)
	}
	if est.Hours.Typical <= 0 {
		t.Errorf("typical hours = %v, want > 0", est.Hours.Typical)
	}
}

func TestEstimateActivityRatios(t *testing.T) {
	est := New().Estimate(baseInput(), "ua")
	total := est.Hours.Typical

	checks := []struct {
		name  string
		got   float64
		ratio float64
	}{
		{"analysis", est.Activities.Analysis, 0.12},
		{"design", est.Activities.Design, 0.18},
		{"implementation", est.Activities.Implementation, 0.42},
		{"testing", est.Activities.Testing, 0.20},
		{"documentation", est.Activities.Documentation, 0.08},
	}
	for _, c := range checks {
		if want := total * c.ratio; math.Abs(c.got-want) > 1e-9 {
			t.Errorf("%s hours = %v, want %v", c.name, c.got, want)
		}
	}
}

func TestEAFBuckets(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Input)
		field  func(multipliers) float64
		want   float64
	}{
		{"deep debt complexity", func(in *Input) { in.TechDebtScore = 3 }, func(m multipliers) float64 { return m.complexity }, 1.30},
		{"moderate debt complexity", func(in *Input) { in.TechDebtScore = 9 }, func(m multipliers) float64 { return m.complexity }, 1.15},
		{"clean debt complexity", func(in *Input) { in.TechDebtScore = 14 }, func(m multipliers) float64 { return m.complexity }, 0.90},
		{"unknown coverage", func(in *Input) { in.CoverageKnown = false }, func(m multipliers) float64 { return m.reuseRequired }, 1.10},
		{"low coverage", func(in *Input) { in.CoveragePercent = 10 }, func(m multipliers) float64 { return m.reuseRequired }, 1.20},
		{"high coverage", func(in *Input) { in.CoveragePercent = 85 }, func(m multipliers) float64 { return m.reuseRequired }, 0.90},
		{"mid coverage neutral", func(in *Input) { in.CoveragePercent = 60 }, func(m multipliers) float64 { return m.reuseRequired }, 1.0},
		{"no ci", func(in *Input) { in.HasCI = false }, func(m multipliers) float64 { return m.toolUse }, 1.10},
		{"no docs", func(in *Input) { in.HasDocumentation = false }, func(m multipliers) float64 { return m.documentation }, 1.10},
		{"low experience", func(in *Input) { in.TeamExperience = ExperienceLow }, func(m multipliers) float64 { return m.analystCapability }, 1.15},
		{"high experience", func(in *Input) { in.TeamExperience = ExperienceHigh }, func(m multipliers) float64 { return m.programmerCapability }, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseInput()
			tt.modify(&in)
			if got := tt.field(deriveMultipliers(in)); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("multiplier = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateRegions(t *testing.T) {
	est := New()

	ua := est.Estimate(baseInput(), "ua")
	if _, ok := ua.Cost["ua"]; !ok {
		t.Fatal("ua estimate missing ua cost")
	}
	if _, ok := ua.Cost["eu"]; !ok {
		t.Fatal("ua estimate missing eu reference cost")
	}
	if ua.Cost["ua"].Currency != "USD" || ua.Cost["eu"].Currency != "EUR" {
		t.Errorf("currencies = %s/%s, want USD/EUR", ua.Cost["ua"].Currency, ua.Cost["eu"].Currency)
	}

	// The eu primary swaps the reference to us.
	eu := est.Estimate(baseInput(), "eu")
	if _, ok := eu.Cost["us"]; !ok {
		t.Fatal("eu estimate missing us reference cost")
	}

	// Unknown regions fall back to the default card entry.
	fallback := est.Estimate(baseInput(), "atlantis")
	if _, ok := fallback.Cost[DefaultRegion]; !ok {
		t.Errorf("unknown region should fall back to %s", DefaultRegion)
	}
}

func TestRegionCostBand(t *testing.T) {
	est := New().Estimate(baseInput(), "ua")
	c := est.Cost["ua"]

	if !(c.Min < c.Typical && c.Typical < c.Max) {
		t.Errorf("cost band not ordered: min=%v typical=%v max=%v", c.Min, c.Typical, c.Max)
	}
	if c.Formatted == "" {
		t.Error("formatted cost is empty")
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567.4, "1,234,567"},
		{-5, "0"},
	}
	for _, tt := range tests {
		if got := formatThousands(tt.in); got != tt.want {
			t.Errorf("formatThousands(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
