package main

import (
	"github.com/urfave/cli/v2"

	"github.com/repoquant/repoquant/internal/output"
	"github.com/repoquant/repoquant/pkg/aggregator"
)

func collectorsCmd() *cli.Command {
	return &cli.Command{
		Name:  "collectors",
		Usage: "List the collector roster an audit would run",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "extended",
				Usage: "List the extended roster",
			},
		},
		Action: runCollectorsCmd,
	}
}

func runCollectorsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	cfg.Collectors.Extended = c.Bool("extended")

	table := &output.Table{
		Title:   "Collectors",
		Headers: []string{"Name"},
	}
	for _, col := range aggregator.BuildCollectors(cfg) {
		table.Rows = append(table.Rows, []string{col.Name()})
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(table)
}
