package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/repoquant/repoquant/internal/output"
	"github.com/repoquant/repoquant/internal/progress"
	"github.com/repoquant/repoquant/internal/storage"
	"github.com/repoquant/repoquant/pkg/aggregator"
	"github.com/repoquant/repoquant/pkg/cocomo"
	"github.com/repoquant/repoquant/pkg/pipeline"
	"github.com/repoquant/repoquant/pkg/scoring"
)

func auditCmd() *cli.Command {
	return &cli.Command{
		Name:      "audit",
		Usage:     "Collect metrics, score, and classify a repository",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "region",
				Aliases: []string{"r"},
				Usage:   "Rate region for the cost estimate (ua, pl, eu, de, uk, us, in)",
			},
			&cli.BoolFlag{
				Name:  "extended",
				Usage: "Run the extended collector roster",
			},
			&cli.StringSliceFlag{
				Name:  "disable",
				Usage: "Collector names to skip",
			},
			&cli.StringFlag{
				Name:  "save-json",
				Usage: "Also write the full run (metrics and scores) to a JSON file",
			},
			&cli.StringFlag{
				Name:  "save-sqlite",
				Usage: "Also store the run in a SQLite database",
			},
		},
		Action: runAuditCmd,
	}
}

func runAuditCmd(c *cli.Context) error {
	path := "."
	if c.Args().Len() > 0 {
		path = c.Args().First()
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.Bool("extended") {
		cfg.Collectors.Extended = true
	}
	if disabled := c.StringSlice("disable"); len(disabled) > 0 {
		cfg.Collectors.Disabled = append(cfg.Collectors.Disabled, disabled...)
	}

	region := c.String("region")
	if region == "" {
		region = cfg.Estimate.Region
	}
	format := output.ParseFormat(c.String("format"))

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "repoquant"})
	if c.Bool("verbose") || cfg.Output.Verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	collectors := aggregator.BuildCollectors(cfg)

	// Data formats on stdout must not be interleaved with a bar.
	var tracker *progress.Tracker
	if format == output.FormatText && c.String("output") == "" {
		tracker = progress.NewCollectorTracker("Auditing...", len(collectors))
	} else {
		tracker = progress.NewSilent("Auditing...", len(collectors))
	}

	agg := aggregator.New(collectors,
		aggregator.WithTimeout(time.Duration(cfg.Collectors.TimeoutSeconds)*time.Second),
		aggregator.WithLogger(logger),
		aggregator.WithProgress(tracker.Tick),
	)
	engine := scoring.New(
		scoring.WithTeamExperience(cocomo.TeamExperience(cfg.Estimate.TeamExperience)),
	)

	sinks, closeSinks, err := buildSinks(c)
	if err != nil {
		return err
	}
	defer closeSinks()

	pipe := pipeline.New(agg, engine,
		pipeline.WithLogger(logger),
		pipeline.WithSinks(sinks...),
	)

	result := pipe.Run(c.Context, pipeline.Request{Path: path, Region: region})
	tracker.Finish()

	if result.Status == pipeline.StatusFailed {
		return fmt.Errorf("audit failed: %s", result.Errors[0])
	}

	formatter, err := output.NewFormatter(format, c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewAuditReport(path, result.Scoring, result.Errors))
}

// buildSinks assembles the optional persistence sinks from CLI flags.
func buildSinks(c *cli.Context) ([]pipeline.Sink, func(), error) {
	var sinks []pipeline.Sink
	var closers []func() error

	if path := c.String("save-json"); path != "" {
		sinks = append(sinks, storage.NewJSONSink(path))
	}
	if path := c.String("save-sqlite"); path != "" {
		sink, err := storage.NewSQLiteSink(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}
		sinks = append(sinks, sink)
		closers = append(closers, sink.Close)
	}

	closeAll := func() {
		for _, fn := range closers {
			_ = fn()
		}
	}
	return sinks, closeAll, nil
}
