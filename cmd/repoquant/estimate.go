package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/repoquant/repoquant/internal/output"
	"github.com/repoquant/repoquant/pkg/cocomo"
)

func estimateCmd() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Run the COCOMO II cost model on known figures, without collecting",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "loc",
				Usage:    "Total lines of code",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "region",
				Aliases: []string{"r"},
				Usage:   "Rate region (ua, pl, eu, de, uk, us, in)",
			},
			&cli.IntFlag{
				Name:  "tech-debt",
				Value: 8,
				Usage: "Technical debt total on the 0-15 scale",
			},
			&cli.Float64Flag{
				Name:  "coverage",
				Usage: "Measured test coverage percentage, when known",
			},
			&cli.BoolFlag{
				Name:  "ci",
				Usage: "The repository has a CI pipeline",
			},
			&cli.BoolFlag{
				Name:  "docs",
				Usage: "The repository has meaningful documentation",
			},
			&cli.StringFlag{
				Name:  "experience",
				Value: "nominal",
				Usage: "Rebuild team experience: low, nominal, or high",
			},
		},
		Action: runEstimateCmd,
	}
}

func runEstimateCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	loc := c.Int("loc")
	if loc <= 0 {
		return fmt.Errorf("loc must be positive, got %d", loc)
	}
	region := c.String("region")
	if region == "" {
		region = cfg.Estimate.Region
	}

	estimator := cocomo.New()
	estimate := estimator.Estimate(cocomo.Input{
		LOC:              loc,
		TechDebtScore:    c.Int("tech-debt"),
		CoveragePercent:  c.Float64("coverage"),
		CoverageKnown:    c.IsSet("coverage"),
		HasCI:            c.Bool("ci"),
		HasDocumentation: c.Bool("docs"),
		TeamExperience:   cocomo.TeamExperience(c.String("experience")),
	}, region)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(estimate)
}

func ratesCmd() *cli.Command {
	return &cli.Command{
		Name:   "rates",
		Usage:  "Show the regional hourly rate card behind the estimator",
		Action: runRatesCmd,
	}
}

func runRatesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	estimator := cocomo.New()
	table := &output.Table{
		Title:   "Hourly Rates",
		Headers: []string{"Region", "Currency", "Junior", "Middle", "Senior", "Typical"},
	}
	for _, code := range estimator.Regions() {
		_, rate := estimator.RateFor(code)
		table.Rows = append(table.Rows, []string{
			code,
			rate.Currency,
			fmt.Sprintf("%.0f", rate.Junior),
			fmt.Sprintf("%.0f", rate.Middle),
			fmt.Sprintf("%.0f", rate.Senior),
			fmt.Sprintf("%.0f", rate.Typical),
		})
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(table)
}
