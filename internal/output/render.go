package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/repoquant/repoquant/pkg/models"
)

// NewAuditReport builds the renderable audit report for one repository.
// Data formats serialize the scoring result itself; text and markdown get
// the assembled tables below.
func NewAuditReport(repoPath string, scoring *models.ScoringResult, errs []string) *Report {
	report := &Report{
		Title: fmt.Sprintf("Repository Audit: %s", repoPath),
		Data: map[string]any{
			"repo":    repoPath,
			"scoring": scoring,
			"errors":  errs,
		},
	}
	if scoring == nil {
		report.Sections = append(report.Sections, &Section{
			Title:   "Audit Failed",
			Content: strings.Join(errs, "\n"),
		})
		return report
	}

	report.Sections = append(report.Sections,
		verdictSection(scoring),
		healthTable(scoring.RepoHealth),
		debtTable(scoring.TechDebt),
	)
	if scoring.CostEstimate != nil {
		report.Sections = append(report.Sections,
			estimateSection(scoring.CostEstimate),
			costTable(scoring.CostEstimate.Cost),
		)
	}
	if len(scoring.Tasks) > 0 {
		report.Sections = append(report.Sections, taskTable(scoring.Tasks))
	}
	if len(errs) > 0 {
		report.Sections = append(report.Sections, &Section{
			Title:   "Collection Warnings",
			Content: strings.Join(errs, "\n"),
		})
	}
	return report
}

func verdictSection(s *models.ScoringResult) *Section {
	return &Section{
		Title: "Verdict",
		Content: fmt.Sprintf("%s (level: %s, complexity: %s)",
			s.Verdict, s.ProductLevel, s.Complexity),
	}
}

func healthTable(h models.RepoHealthScore) *Table {
	return &Table{
		Title:   "Repository Health",
		Headers: []string{"Dimension", "Score"},
		Rows: [][]string{
			{"Documentation", scoreCell(h.Documentation)},
			{"Structure", scoreCell(h.Structure)},
			{"Runability", scoreCell(h.Runability)},
			{"Commit History", scoreCell(h.CommitHistory)},
		},
		Footer: []string{"Total", fmt.Sprintf("%d/%d", h.Total, h.MaxPossible)},
	}
}

func debtTable(d models.TechDebtScore) *Table {
	return &Table{
		Title:   "Technical Debt",
		Headers: []string{"Dimension", "Score"},
		Rows: [][]string{
			{"Architecture", scoreCell(d.Architecture)},
			{"Code Quality", scoreCell(d.CodeQuality)},
			{"Testing", scoreCell(d.Testing)},
			{"Infrastructure", scoreCell(d.Infrastructure)},
			{"Security & Dependencies", scoreCell(d.SecurityDeps)},
		},
		Footer: []string{"Total", fmt.Sprintf("%d/%d", d.Total, d.MaxPossible)},
	}
}

func scoreCell(v int) string {
	return fmt.Sprintf("%d/3", v)
}

func estimateSection(e *models.CocomoEstimate) *Section {
	return &Section{
		Title: "Rebuild Estimate",
		Content: fmt.Sprintf(
			"%s\nSize: %.1f KLOC  Effort: %.1f person-months  Duration: %.1f months  Team: %.1f\nHours: %s to %s (typical %s)",
			e.Methodology, e.KLOC, e.EffortPersonMonths, e.DurationMonths, e.TeamSize,
			hoursCell(e.Hours.Min), hoursCell(e.Hours.Max), hoursCell(e.Hours.Typical)),
	}
}

func hoursCell(h float64) string {
	return fmt.Sprintf("%.0fh", h)
}

func costTable(cost map[string]models.RegionCost) *Table {
	regions := make([]string, 0, len(cost))
	for r := range cost {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		c := cost[r]
		rows = append(rows, []string{strings.ToUpper(c.Region), c.Currency, c.Formatted})
	}
	return &Table{
		Title:   "Cost by Region",
		Headers: []string{"Region", "Currency", "Range"},
		Rows:    rows,
	}
}

func taskTable(tasks []models.Task) *Table {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{string(t.Priority), string(t.Category), t.Title})
	}
	return &Table{
		Title:   "Suggested Tasks",
		Headers: []string{"Priority", "Category", "Task"},
		Rows:    rows,
	}
}
