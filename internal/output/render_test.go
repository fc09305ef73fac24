package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/repoquant/repoquant/pkg/models"
)

func sampleScoring() *models.ScoringResult {
	return &models.ScoringResult{
		RepoHealth:   models.NewRepoHealthScore(3, 2, 2, 1),
		TechDebt:     models.NewTechDebtScore(2, 2, 1, 2, 3),
		ProductLevel: models.LevelInternal,
		Complexity:   models.ComplexityM,
		Verdict:      "Internal Tool",
		CostEstimate: &models.CocomoEstimate{
			Methodology:        "COCOMO II (derived)",
			KLOC:               12.4,
			EffortPersonMonths: 20.1,
			DurationMonths:     7.2,
			TeamSize:           2.8,
			Hours:              models.HoursBand{Min: 2572, Typical: 3216, Max: 3859},
			Cost: map[string]models.RegionCost{
				"ua": {Region: "ua", Currency: "USD", Min: 64300, Max: 270130, Formatted: "USD 64,300 - 270,130"},
				"eu": {Region: "eu", Currency: "EUR", Min: 141460, Max: 424490, Formatted: "EUR 141,460 - 424,490"},
			},
		},
		Tasks: []models.Task{
			{Category: models.CategoryTesting, Priority: models.PriorityHigh, Title: "Raise test coverage"},
		},
	}
}

func TestNewAuditReportText(t *testing.T) {
	report := NewAuditReport("/repos/demo", sampleScoring(), nil)

	var buf bytes.Buffer
	if err := report.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Repository Audit: /repos/demo",
		"Internal Tool",
		"Repository Health",
		"Technical Debt",
		"Rebuild Estimate",
		"Cost by Region",
		"USD 64,300 - 270,130",
		"Raise test coverage",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestNewAuditReportRegionOrder(t *testing.T) {
	report := NewAuditReport("/repos/demo", sampleScoring(), nil)

	var buf bytes.Buffer
	if err := report.RenderMarkdown(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// Regions sort alphabetically so repeated runs render identically.
	eu := strings.Index(out, "| EU |")
	ua := strings.Index(out, "| UA |")
	if eu < 0 || ua < 0 || eu > ua {
		t.Errorf("region rows out of order (eu=%d ua=%d):\n%s", eu, ua, out)
	}
}

func TestNewAuditReportFailure(t *testing.T) {
	report := NewAuditReport("/nope", nil, []string{"invalid repository path"})

	var buf bytes.Buffer
	if err := report.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Audit Failed") || !strings.Contains(out, "invalid repository path") {
		t.Errorf("failure report incomplete:\n%s", out)
	}
}

func TestNewAuditReportWarnings(t *testing.T) {
	report := NewAuditReport("/repos/demo", sampleScoring(), []string{"security: osv-scanner not found"})

	var buf bytes.Buffer
	if err := report.RenderText(&buf, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Collection Warnings") {
		t.Errorf("warnings section missing:\n%s", buf.String())
	}
}
