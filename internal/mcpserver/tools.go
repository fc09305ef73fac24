package mcpserver

import (
	"context"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/repoquant/repoquant/pkg/aggregator"
	"github.com/repoquant/repoquant/pkg/cocomo"
	"github.com/repoquant/repoquant/pkg/pipeline"
	"github.com/repoquant/repoquant/pkg/scoring"
)

// AuditInput drives the full collect-score-classify run.
type AuditInput struct {
	Path     string `json:"path" jsonschema:"Local path of the repository to audit. Required."`
	Region   string `json:"region,omitempty" jsonschema:"Rate region for the cost estimate (ua, pl, eu, de, uk, us, in). Defaults to the configured region."`
	Extended bool   `json:"extended,omitempty" jsonschema:"Run the extended collector roster (duplication, dead code, licenses, git stats)."`
}

// EstimateInput runs the cost model directly on known repository figures.
type EstimateInput struct {
	LOC             int     `json:"loc" jsonschema:"Total lines of code. Required."`
	Region          string  `json:"region,omitempty" jsonschema:"Rate region (ua, pl, eu, de, uk, us, in). Defaults to the configured region."`
	TechDebtScore   int     `json:"tech_debt_score,omitempty" jsonschema:"Technical debt total on the 0-15 scale. Defaults to 8 when omitted."`
	CoveragePercent float64 `json:"coverage_percent,omitempty" jsonschema:"Measured test coverage percentage, when known."`
	HasCI           bool    `json:"has_ci,omitempty" jsonschema:"Whether the repository has a CI pipeline."`
	HasDocs         bool    `json:"has_docs,omitempty" jsonschema:"Whether the repository has meaningful documentation."`
	TeamExperience  string  `json:"team_experience,omitempty" jsonschema:"Rebuild team experience: low, nominal, or high. Default nominal."`
}

// CollectorsInput selects which roster to list.
type CollectorsInput struct {
	Extended bool `json:"extended,omitempty" jsonschema:"List the extended roster instead of the core one."`
}

// RegionsInput takes no arguments.
type RegionsInput struct{}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) handleAuditRepository(ctx context.Context, req *mcp.CallToolRequest, input AuditInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}

	cfg := *s.cfg
	if input.Extended {
		cfg.Collectors.Extended = true
	}
	region := input.Region
	if region == "" {
		region = cfg.Estimate.Region
	}

	// Stdio transport owns stdout and stderr carries protocol noise,
	// so collection logs are discarded here.
	quiet := log.NewWithOptions(io.Discard, log.Options{})
	agg := aggregator.New(aggregator.BuildCollectors(&cfg), aggregator.WithLogger(quiet))
	engine := scoring.New(scoring.WithTeamExperience(cocomo.TeamExperience(cfg.Estimate.TeamExperience)))
	pipe := pipeline.New(agg, engine, pipeline.WithLogger(quiet))

	result := pipe.Run(ctx, pipeline.Request{Path: input.Path, Region: region})
	if result.Status == pipeline.StatusFailed {
		return toolError(result.Errors[0])
	}

	return toolResult(map[string]any{
		"status":  result.Status,
		"scoring": result.Scoring,
		"errors":  result.Errors,
	})
}

func (s *Server) handleEstimateCost(ctx context.Context, req *mcp.CallToolRequest, input EstimateInput) (*mcp.CallToolResult, any, error) {
	if input.LOC <= 0 {
		return toolError("loc must be positive")
	}

	region := input.Region
	if region == "" {
		region = s.cfg.Estimate.Region
	}
	debt := input.TechDebtScore
	if debt == 0 {
		debt = 8
	}
	experience := cocomo.TeamExperience(input.TeamExperience)
	if experience == "" {
		experience = cocomo.ExperienceNominal
	}

	estimate := s.estimator.Estimate(cocomo.Input{
		LOC:              input.LOC,
		TechDebtScore:    debt,
		CoveragePercent:  input.CoveragePercent,
		CoverageKnown:    input.CoveragePercent > 0,
		HasCI:            input.HasCI,
		HasDocumentation: input.HasDocs,
		TeamExperience:   experience,
	}, region)

	return toolResult(estimate)
}

func (s *Server) handleListCollectors(ctx context.Context, req *mcp.CallToolRequest, input CollectorsInput) (*mcp.CallToolResult, any, error) {
	cfg := *s.cfg
	cfg.Collectors.Extended = input.Extended

	names := make([]string, 0, 16)
	for _, c := range aggregator.BuildCollectors(&cfg) {
		names = append(names, c.Name())
	}
	return toolResult(map[string]any{"collectors": names})
}

func (s *Server) handleListRegions(ctx context.Context, req *mcp.CallToolRequest, input RegionsInput) (*mcp.CallToolResult, any, error) {
	type regionRate struct {
		Region   string  `json:"region" toon:"region"`
		Currency string  `json:"currency" toon:"currency"`
		Junior   float64 `json:"junior" toon:"junior"`
		Middle   float64 `json:"middle" toon:"middle"`
		Senior   float64 `json:"senior" toon:"senior"`
		Typical  float64 `json:"typical" toon:"typical"`
	}

	regions := s.estimator.Regions()
	sort.Strings(regions)

	rates := make([]regionRate, 0, len(regions))
	for _, code := range regions {
		resolved, rate := s.estimator.RateFor(code)
		rates = append(rates, regionRate{
			Region:   resolved,
			Currency: rate.Currency,
			Junior:   rate.Junior,
			Middle:   rate.Middle,
			Senior:   rate.Senior,
			Typical:  rate.Typical,
		})
	}
	return toolResult(map[string]any{"regions": rates})
}
