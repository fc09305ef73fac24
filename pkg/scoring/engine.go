// Package scoring turns a collected metric set into quality scores, a
// maturity classification, improvement tasks and a cost estimate. Every
// derivation is a pure function of the set's current values.
package scoring

import (
	"github.com/repoquant/repoquant/pkg/cocomo"
	"github.com/repoquant/repoquant/pkg/models"
)

// Engine computes scores and delegates cost estimation.
type Engine struct {
	estimator      *cocomo.Estimator
	teamExperience cocomo.TeamExperience
}

// Option configures the engine.
type Option func(*Engine)

// WithEstimator injects the cost estimator.
func WithEstimator(est *cocomo.Estimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

// WithTeamExperience sets the capability tier fed into cost estimation.
func WithTeamExperience(exp cocomo.TeamExperience) Option {
	return func(e *Engine) {
		if exp != "" {
			e.teamExperience = exp
		}
	}
}

// New creates a scoring engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		estimator:      cocomo.New(),
		teamExperience: cocomo.ExperienceNominal,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CalculateScores derives the full scoring result from the set and
// appends the sub-scores back into it as scored metrics. Re-scoring the
// same set replaces the previous score metrics instead of duplicating
// them.
func (e *Engine) CalculateScores(set *models.MetricSet, region string) models.ScoringResult {
	health := e.repoHealth(set)
	debt := e.techDebt(set)

	polish := models.PolishSignals{
		HasVersionFile: set.GetBool(models.MetricHasVersionFile, false),
		HasAPIDocs:     set.GetBool(models.MetricHasAPIDocs, false),
		HasChangelog:   set.GetBool(models.MetricHasChangelog, false),
	}
	level := models.ClassifyProductLevel(health, debt, polish)

	totalLOC := set.GetInt(models.MetricLOCTotal, 0)
	complexity := models.ClassifyComplexity(
		totalLOC,
		debt.Total,
		set.GetInt(models.MetricDepsDirect, 0),
		set.GetFloat(models.MetricAvgFileLines, 0),
	)

	coverage, coverageKnown := e.coverage(set)
	estimate := e.estimator.Estimate(cocomo.Input{
		LOC:              totalLOC,
		TechDebtScore:    debt.Total,
		CoveragePercent:  coverage,
		CoverageKnown:    coverageKnown,
		HasCI:            set.GetBool(models.MetricCIPresent, false),
		HasDocumentation: set.GetBool(models.MetricHasReadme, false),
		TeamExperience:   e.teamExperience,
	}, region)

	result := models.ScoringResult{
		RepoHealth:   health,
		TechDebt:     debt,
		ProductLevel: level,
		Complexity:   complexity,
		CostEstimate: &estimate,
		Tasks:        deriveTasks(health, debt),
		Verdict:      models.Verdict(level, health, debt),
	}

	appendScores(set, health, debt)
	return result
}

// repoHealth derives the four 0-3 health sub-scores.
func (e *Engine) repoHealth(set *models.MetricSet) models.RepoHealthScore {
	documentation := 0
	if set.GetBool(models.MetricHasReadme, false) {
		documentation = 1
		if set.GetBool(models.MetricReadmeHasInstall, false) && set.GetBool(models.MetricReadmeHasUsage, false) {
			documentation = 2
		}
	}
	// Docs folder plus architecture doc outranks README keyword checks.
	if set.GetBool(models.MetricHasDocsDir, false) && set.GetBool(models.MetricHasArchitectureDoc, false) {
		documentation = 3
	}

	structure := set.GetInt(models.MetricStructureScore, 0)

	runability := 0
	if set.GetBool(models.MetricHasDependencyFile, false) {
		runability = 1
		if set.GetBool(models.MetricHasRunInstructions, false) {
			runability = 2
			if set.GetBool(models.MetricHasDockerfile, false) && set.GetBool(models.MetricHasDockerCompose, false) {
				runability = 3
			}
		}
	}

	commits := set.GetInt(models.MetricCommitCount, 0)
	authors := set.GetInt(models.MetricAuthorCount, 0)
	recent := set.GetInt(models.MetricRecentCommitCount, 0)

	history := 0
	switch {
	case commits <= 5:
		history = 0
	case commits <= 30:
		history = 1
	case commits <= 200:
		history = 2
		if authors >= 3 && recent >= 10 {
			history = 3
		}
	default:
		history = 3
	}

	return models.NewRepoHealthScore(documentation, structure, runability, history)
}

// techDebt derives the five 0-3 debt sub-scores. Higher is healthier.
func (e *Engine) techDebt(set *models.MetricSet) models.TechDebtScore {
	architecture := 2
	if set.GetBool(models.MetricHasSrcDir, false) {
		architecture = 3
	}
	if set.GetInt(models.MetricMaxFileLines, 0) > 1000 {
		architecture -= 2
	}

	codeQuality := 2
	if set.Has(models.MetricDuplicationPercent) {
		switch dup := set.GetFloat(models.MetricDuplicationPercent, 0); {
		case dup > 15:
			codeQuality = 0
		case dup > 10:
			codeQuality = 1
		case dup < 5:
			codeQuality = 3
		}
	}

	testing := e.testingScore(set)
	infrastructure := e.infrastructureScore(set)
	securityDeps := e.securityScore(set)

	return models.NewTechDebtScore(architecture, codeQuality, testing, infrastructure, securityDeps)
}

// testingScore buckets measured coverage, or estimates coverage from the
// test-file ratio and re-buckets the estimate through the same
// thresholds.
func (e *Engine) testingScore(set *models.MetricSet) int {
	if set.GetInt(models.MetricTestFileCount, 0) == 0 {
		return 0
	}

	coverage, known := e.coverage(set)
	if !known {
		coverage = estimateCoverageFromRatio(
			set.GetInt(models.MetricTestFileCount, 0),
			set.GetInt(models.MetricFileCount, 0),
		)
	}

	switch {
	case coverage >= 60:
		return 3
	case coverage >= 20:
		return 2
	default:
		return 1
	}
}

// estimateCoverageFromRatio maps the test-file share onto a synthetic
// coverage percentage.
func estimateCoverageFromRatio(testFiles, totalFiles int) float64 {
	if totalFiles == 0 {
		return 10
	}
	ratio := float64(testFiles) / float64(totalFiles)
	switch {
	case ratio > 0.20:
		return 60
	case ratio > 0.10:
		return 40
	case ratio > 0.05:
		return 20
	default:
		return 10
	}
}

func (e *Engine) infrastructureScore(set *models.MetricSet) int {
	hasCI := set.GetBool(models.MetricCIPresent, false)
	hasDocker := set.GetBool(models.MetricHasDockerfile, false)

	if !hasCI {
		if hasDocker {
			return 1
		}
		return 0
	}

	ciTests := set.GetBool(models.MetricCIHasTests, false)
	deploy := set.GetBool(models.MetricCIHasDeploy, false)
	switch {
	case ciTests && deploy:
		return 3
	case ciTests:
		return 2
	default:
		return 1
	}
}

func (e *Engine) securityScore(set *models.MetricSet) int {
	critical := set.GetInt(models.MetricFindingsCritical, 0)
	high := set.GetInt(models.MetricFindingsHigh, 0)
	medium := set.GetInt(models.MetricFindingsMedium, 0)
	secrets := set.GetInt(models.MetricSecretsFound, 0)
	vulns := set.GetInt(models.MetricVulnerabilityCount, 0)
	if vulns < 0 {
		// Scan unavailable: the sentinel is not evidence of
		// vulnerabilities.
		vulns = 0
	}

	switch {
	case critical > 0 || secrets > 0:
		return 0
	case high > 0 || vulns > 5:
		return 1
	case vulns == 0 && medium <= 2:
		return 3
	default:
		return 2
	}
}

// coverage reads the measured coverage metric; absence means unknown.
func (e *Engine) coverage(set *models.MetricSet) (float64, bool) {
	if !set.Has(models.MetricCoveragePercent) {
		return 0, false
	}
	return set.GetFloat(models.MetricCoveragePercent, 0), true
}

// deriveTasks turns weak sub-scores into a prioritized improvement list.
func deriveTasks(health models.RepoHealthScore, debt models.TechDebtScore) []models.Task {
	var tasks []models.Task
	add := func(score, threshold int, category models.MetricCategory, priority models.TaskPriority, title string) {
		if score < threshold {
			tasks = append(tasks, models.Task{Category: category, Priority: priority, Title: title})
		}
	}

	add(debt.SecurityDeps, 2, models.CategorySecurity, models.PriorityHigh,
		"Remove leaked credentials and resolve critical security findings")
	add(debt.Testing, 2, models.CategoryTesting, models.PriorityHigh,
		"Add automated tests and publish coverage reports")
	add(health.Documentation, 2, models.CategoryDocumentation, models.PriorityMedium,
		"Write a README covering installation and usage")
	add(health.Runability, 2, models.CategoryRunability, models.PriorityMedium,
		"Document how to run the project and add container tooling")
	add(debt.Infrastructure, 2, models.CategoryInfrastructure, models.PriorityMedium,
		"Set up a CI pipeline that runs the test suite")
	add(debt.Architecture, 2, models.CategoryArchitecture, models.PriorityLow,
		"Split oversized files and organize code into source directories")
	add(debt.CodeQuality, 2, models.CategoryCodeQuality, models.PriorityLow,
		"Reduce duplicated code blocks")
	add(health.CommitHistory, 2, models.CategoryHistory, models.PriorityLow,
		"Establish a regular commit and review cadence")

	return tasks
}

// appendScores writes the sub-scores back into the set, clearing any
// previous scoring pass first so Get never reads a stale value.
func appendScores(set *models.MetricSet, health models.RepoHealthScore, debt models.TechDebtScore) {
	set.RemoveCategory(models.CategoryScoreHealth)
	set.RemoveCategory(models.CategoryScoreDebt)

	healthGauge := func(name string, value int) {
		set.AddGauge(name, value, models.SourceScored, models.CategoryScoreHealth)
	}
	debtGauge := func(name string, value int) {
		set.AddGauge(name, value, models.SourceScored, models.CategoryScoreDebt)
	}

	healthGauge(models.MetricScoreHealthDocumentation, health.Documentation)
	healthGauge(models.MetricScoreHealthStructure, health.Structure)
	healthGauge(models.MetricScoreHealthRunability, health.Runability)
	healthGauge(models.MetricScoreHealthHistory, health.CommitHistory)
	healthGauge(models.MetricScoreHealthTotal, health.Total)

	debtGauge(models.MetricScoreDebtArchitecture, debt.Architecture)
	debtGauge(models.MetricScoreDebtCodeQuality, debt.CodeQuality)
	debtGauge(models.MetricScoreDebtTesting, debt.Testing)
	debtGauge(models.MetricScoreDebtInfrastructure, debt.Infrastructure)
	debtGauge(models.MetricScoreDebtSecurityDeps, debt.SecurityDeps)
	debtGauge(models.MetricScoreDebtTotal, debt.Total)
}
