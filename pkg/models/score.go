package models

// RepoHealthScore measures documentation, structure, runability and commit
// history quality. Each sub-score is 0-3; Total is their sum (0-12).
type RepoHealthScore struct {
	Documentation int `json:"documentation"`
	Structure     int `json:"structure"`
	Runability    int `json:"runability"`
	CommitHistory int `json:"commit_history"`
	Total         int `json:"total"`
	MaxPossible   int `json:"max_possible"`
}

// NewRepoHealthScore clamps each sub-score to 0-3 and computes the total.
func NewRepoHealthScore(documentation, structure, runability, commitHistory int) RepoHealthScore {
	s := RepoHealthScore{
		Documentation: clampSub(documentation),
		Structure:     clampSub(structure),
		Runability:    clampSub(runability),
		CommitHistory: clampSub(commitHistory),
		MaxPossible:   12,
	}
	s.Total = s.Documentation + s.Structure + s.Runability + s.CommitHistory
	return s
}

// TechDebtScore measures maturity across five dimensions; higher means
// less debt. Each sub-score is 0-3; Total is their sum (0-15).
type TechDebtScore struct {
	Architecture   int `json:"architecture"`
	CodeQuality    int `json:"code_quality"`
	Testing        int `json:"testing"`
	Infrastructure int `json:"infrastructure"`
	SecurityDeps   int `json:"security_deps"`
	Total          int `json:"total"`
	MaxPossible    int `json:"max_possible"`
}

// NewTechDebtScore clamps each sub-score to 0-3 and computes the total.
func NewTechDebtScore(architecture, codeQuality, testing, infrastructure, securityDeps int) TechDebtScore {
	s := TechDebtScore{
		Architecture:   clampSub(architecture),
		CodeQuality:    clampSub(codeQuality),
		Testing:        clampSub(testing),
		Infrastructure: clampSub(infrastructure),
		SecurityDeps:   clampSub(securityDeps),
		MaxPossible:    15,
	}
	s.Total = s.Architecture + s.CodeQuality + s.Testing + s.Infrastructure + s.SecurityDeps
	return s
}

func clampSub(v int) int {
	if v < 0 {
		return 0
	}
	if v > 3 {
		return 3
	}
	return v
}

// ProductLevel is a five-tier maturity classification.
type ProductLevel string

const (
	LevelRnDSpike    ProductLevel = "R&D Spike"
	LevelPrototype   ProductLevel = "Prototype"
	LevelInternal    ProductLevel = "Internal Tool"
	LevelPlatform    ProductLevel = "Platform Module Candidate"
	LevelNearProduct ProductLevel = "Near-Product"
)

// PolishSignals are the auxiliary structure booleans that gate the upper
// product levels.
type PolishSignals struct {
	HasVersionFile bool
	HasAPIDocs     bool
	HasChangelog   bool
}

// ClassifyProductLevel derives the maturity tier from the two scores and
// polish signals. Rules evaluate top-down; first match wins.
func ClassifyProductLevel(health RepoHealthScore, debt TechDebtScore, polish PolishSignals) ProductLevel {
	switch {
	case health.Total >= 10 && debt.Total >= 12 &&
		(polish.HasVersionFile || polish.HasAPIDocs || polish.HasChangelog):
		return LevelNearProduct
	case health.Total >= 8 && debt.Total >= 10 &&
		debt.Architecture >= 2 && health.Structure >= 2:
		return LevelPlatform
	case health.Total >= 6 && debt.Total >= 7 && debt.Infrastructure >= 2:
		return LevelInternal
	case health.Total >= 4 || debt.Total >= 4:
		return LevelPrototype
	default:
		return LevelRnDSpike
	}
}

// Verdict maps a product level (and its underlying scores) to the
// human-facing verdict line.
func Verdict(level ProductLevel, health RepoHealthScore, debt TechDebtScore) string {
	switch level {
	case LevelNearProduct:
		return "Near-Product"
	case LevelPlatform:
		return "Platform Module Candidate"
	case LevelInternal:
		return "Internal Tool"
	case LevelPrototype:
		if health.Total >= 6 || debt.Total >= 6 {
			return "R&D Prototype"
		}
		return "Archive / Reference Only"
	default:
		return "Archive / Reference Only"
	}
}

// Complexity is a four-tier size classification.
type Complexity string

const (
	ComplexityS  Complexity = "S"
	ComplexityM  Complexity = "M"
	ComplexityL  Complexity = "L"
	ComplexityXL Complexity = "XL"
)

// LOC thresholds for the base complexity tier.
const (
	complexityLOCSmall  = 8000
	complexityLOCMedium = 40000
	complexityLOCLarge  = 120000
)

// Bump moves the tier one step up, capped at XL.
func (c Complexity) Bump() Complexity {
	switch c {
	case ComplexityS:
		return ComplexityM
	case ComplexityM:
		return ComplexityL
	default:
		return ComplexityXL
	}
}

// ClassifyComplexity derives the size tier from total LOC, then bumps one
// tier for any scatter signal: very low debt score, heavy external
// dependency surface, or a scattered codebase (tiny average file size).
func ClassifyComplexity(totalLOC int, debtTotal int, depCount int, avgLOCPerFile float64) Complexity {
	var c Complexity
	switch {
	case totalLOC <= complexityLOCSmall:
		c = ComplexityS
	case totalLOC <= complexityLOCMedium:
		c = ComplexityM
	case totalLOC <= complexityLOCLarge:
		c = ComplexityL
	default:
		c = ComplexityXL
	}
	if debtTotal <= 5 || depCount > 30 || (avgLOCPerFile > 0 && avgLOCPerFile < 50) {
		c = c.Bump()
	}
	return c
}

// TaskPriority orders improvement tasks.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Task is one suggested improvement derived from a weak sub-score.
type Task struct {
	Category MetricCategory `json:"category"`
	Priority TaskPriority   `json:"priority"`
	Title    string         `json:"title"`
}

// ScoringResult is the complete output of one scoring pass, handed to
// report and storage consumers.
type ScoringResult struct {
	RepoHealth   RepoHealthScore `json:"repo_health"`
	TechDebt     TechDebtScore   `json:"tech_debt"`
	ProductLevel ProductLevel    `json:"product_level"`
	Complexity   Complexity      `json:"complexity"`
	CostEstimate *CocomoEstimate `json:"cost_estimate,omitempty"`
	Tasks        []Task          `json:"tasks,omitempty"`
	Verdict      string          `json:"verdict"`
}
