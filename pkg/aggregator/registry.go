package aggregator

import (
	"time"

	"github.com/repoquant/repoquant/pkg/collector"
	"github.com/repoquant/repoquant/pkg/config"
)

// BuildCollectors assembles the collector roster for a configuration:
// the core agents always, the extended agents when enabled, minus any
// explicitly disabled names. Slice order is the merge order.
func BuildCollectors(cfg *config.Config) []collector.Collector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	toolTimeout := time.Duration(cfg.Collectors.ToolTimeoutSeconds) * time.Second

	core := []collector.Collector{
		collector.NewStructure(),
		collector.NewGit(
			collector.WithGitWindowDays(cfg.Collectors.RecentWindowDays),
			collector.WithGitTimeout(toolTimeout),
		),
		collector.NewStatic(cfg),
		collector.NewCI(),
		collector.NewSecurity(cfg),
		collector.NewCoverage(),
	}

	roster := core
	if cfg.Collectors.Extended {
		roster = append(roster,
			collector.NewDeps(),
			collector.NewDuplication(cfg),
			collector.NewLicense(),
			collector.NewDeadCode(cfg),
			collector.NewGitStats(collector.WithStatsWindowDays(cfg.Collectors.RecentWindowDays)),
			collector.NewDockerLint(),
			collector.NewComplexity(cfg),
		)
	}

	enabled := roster[:0:0]
	for _, c := range roster {
		if cfg.CollectorEnabled(c.Name()) {
			enabled = append(enabled, c)
		}
	}
	return enabled
}
