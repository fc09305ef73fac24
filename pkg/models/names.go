package models

// Canonical metric names shared by collectors and the scoring engine.
// Names are dotted and namespaced by concern; collectors must not emit
// the same unlabeled name as another collector.
const (
	// Structure collector
	MetricHasReadme          = "repo.docs.has_readme"
	MetricReadmeHasInstall   = "repo.docs.readme_has_install"
	MetricReadmeHasUsage     = "repo.docs.readme_has_usage"
	MetricHasDocsDir         = "repo.docs.has_docs_dir"
	MetricHasArchitectureDoc = "repo.docs.has_architecture_doc"
	MetricHasAPIDocs         = "repo.docs.has_api_docs"
	MetricHasChangelog       = "repo.docs.has_changelog"
	MetricHasVersionFile     = "repo.docs.has_version_file"
	MetricStructureScore     = "repo.structure.score"
	MetricHasSrcDir          = "repo.structure.has_src_dir"
	MetricHasTestsDir        = "repo.structure.has_tests_dir"
	MetricHasConfigDir       = "repo.structure.has_config_dir"
	MetricHasDependencyFile  = "repo.run.has_dependency_file"
	MetricDependencyFiles    = "repo.run.dependency_files"
	MetricHasRunInstructions = "repo.run.has_run_instructions"
	MetricHasDockerfile      = "repo.run.has_dockerfile"
	MetricHasDockerCompose   = "repo.run.has_docker_compose"
	MetricHasMakefile        = "repo.run.has_makefile"

	// Git collector
	MetricCommitCount       = "repo.git.commit_count"
	MetricRecentCommitCount = "repo.git.recent_commit_count"
	MetricAuthorCount       = "repo.git.author_count"
	MetricActiveDays        = "repo.git.active_days"
	MetricFirstCommitAt     = "repo.git.first_commit_at"
	MetricLastCommitAt      = "repo.git.last_commit_at"

	// Static collector
	MetricLOCTotal      = "repo.size.loc_total"
	MetricLOCByLanguage = "repo.size.loc"
	MetricFileCount     = "repo.size.file_count"
	MetricFilesByLang   = "repo.size.files"
	MetricTestFileCount = "repo.size.test_file_count"
	MetricMaxFileLines  = "repo.size.max_file_lines"
	MetricAvgFileLines  = "repo.size.avg_file_lines"

	// CI collector
	MetricCIPresent     = "repo.ci.present"
	MetricCIProvider    = "repo.ci.provider"
	MetricCIHasTests    = "repo.ci.has_tests"
	MetricCIHasLint     = "repo.ci.has_lint"
	MetricCIHasDeploy   = "repo.ci.has_deploy"
	MetricHasKubernetes = "repo.ci.has_kubernetes"

	// Security collector
	MetricVulnerabilityCount = "repo.security.vulnerability_count"
	MetricFindingsCritical   = "repo.security.findings_critical"
	MetricFindingsHigh       = "repo.security.findings_high"
	MetricFindingsMedium     = "repo.security.findings_medium"
	MetricFindingsLow        = "repo.security.findings_low"
	MetricSecretsFound       = "repo.security.secrets_found"

	// Coverage collector
	MetricCoveragePercent = "repo.coverage.percent"
	MetricCoverageSource  = "repo.coverage.source"

	// Dependency collector
	MetricDepsDirect     = "repo.deps.direct_count"
	MetricDepsByEco      = "repo.deps.count"
	MetricDepsEcosystems = "repo.deps.ecosystems"

	// Duplication collector
	MetricDuplicationPercent = "repo.duplication.percent"
	MetricCloneCount         = "repo.duplication.clone_count"

	// License collector
	MetricLicenseName     = "repo.license.name"
	MetricLicenseCategory = "repo.license.category"

	// Dead code collector
	MetricDeadFunctions = "repo.deadcode.unused_functions"

	// Git analytics collector
	MetricBusFactor         = "repo.gitstats.bus_factor"
	MetricTopContributorPct = "repo.gitstats.top_contributor_percent"
	MetricHotspotFiles      = "repo.gitstats.hotspot_files"
	MetricChurn30d          = "repo.gitstats.churn_30d"

	// Docker lint collector
	MetricDockerScore      = "repo.docker.best_practices_score"
	MetricDockerNonRoot    = "repo.docker.has_nonroot_user"
	MetricDockerHealth     = "repo.docker.has_healthcheck"
	MetricDockerPinnedTag  = "repo.docker.has_pinned_tag"
	MetricDockerMultiStage = "repo.docker.is_multi_stage"

	// Complexity collector
	MetricCyclomaticAvg    = "repo.complexity.cyclomatic_avg"
	MetricCyclomaticMax    = "repo.complexity.cyclomatic_max"
	MetricHighComplexity   = "repo.complexity.high_count"
	MetricMaintainability  = "repo.complexity.maintainability_index"
	MetricFunctionsScanned = "repo.complexity.functions_scanned"

	// Scoring engine appendices
	MetricScoreHealthDocumentation = "score.health.documentation"
	MetricScoreHealthStructure     = "score.health.structure"
	MetricScoreHealthRunability    = "score.health.runability"
	MetricScoreHealthHistory       = "score.health.commit_history"
	MetricScoreHealthTotal         = "score.health.total"
	MetricScoreDebtArchitecture    = "score.debt.architecture"
	MetricScoreDebtCodeQuality     = "score.debt.code_quality"
	MetricScoreDebtTesting         = "score.debt.testing"
	MetricScoreDebtInfrastructure  = "score.debt.infrastructure"
	MetricScoreDebtSecurityDeps    = "score.debt.security_deps"
	MetricScoreDebtTotal           = "score.debt.total"
)
