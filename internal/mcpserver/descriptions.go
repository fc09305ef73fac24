package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// and how to read the scores it returns.

func describeAudit() string {
	return `Runs the full repository audit: metric collection, scoring, and maturity classification.

USE WHEN:
- Assessing an unfamiliar repository before taking it over
- Deciding whether a codebase is a prototype or a product
- Prioritizing which repositories in a portfolio need investment
- Producing a rebuild cost estimate grounded in the actual code

INTERPRETING RESULTS:
- repo_health: documentation, structure, runability, commit history, each 0-3, total 0-12
- tech_debt: architecture, code quality, testing, infrastructure, security, each 0-3, total 0-15 (higher means LESS debt)
- product_level: R&D Spike < Prototype < Internal Tool < Platform Module Candidate < Near-Product
- complexity: S/M/L/XL size tier derived from LOC, bumped for scatter signals
- cost_estimate: COCOMO II rebuild estimate with a +/-20% hour band and regional cost ranges
- tasks: suggested improvements ordered by priority, derived from sub-scores below 2

RESULTS RETURNED:
- scoring: the complete scoring result
- errors: collectors that failed (the audit still completes without them)`
}

func describeEstimate() string {
	return `Computes a COCOMO II rebuild cost estimate from known repository figures, without running collectors.

USE WHEN:
- You already know the LOC and want a quick cost projection
- Comparing rebuild costs across rate regions
- Exploring how coverage, CI, or team experience shift the estimate

INTERPRETING RESULTS:
- kloc: thousands of lines of code, floored at 0.1
- effort_person_months and duration_months follow the calibrated COCOMO II power laws
- hours: typical effort with a +/-20% confidence band
- cost: the requested region plus an EU reference range (US reference when EU is requested)
- Larger codebases show diseconomies of scale: doubling LOC more than doubles effort`
}

func describeCollectors() string {
	return `Lists the collector roster that an audit would run.

USE WHEN:
- Checking which signals feed the scores before running an audit
- Verifying a disabled collector is actually excluded

RESULTS RETURNED:
- collectors: names in merge order; the core six always run, extended adds best-effort collectors`
}

func describeRegions() string {
	return `Lists the hourly rate card behind the cost estimator, per region.

USE WHEN:
- Choosing a region argument for audit_repository or estimate_cost
- Explaining how a cost range was derived

RESULTS RETURNED:
- regions: region code, currency, and junior/middle/senior/typical hourly rates`
}
