package collector

import (
	"context"
	"math"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"gonum.org/v1/gonum/stat"

	"github.com/repoquant/repoquant/internal/scanner"
	"github.com/repoquant/repoquant/pkg/config"
	"github.com/repoquant/repoquant/pkg/models"
)

// highComplexityThreshold flags functions worth refactoring.
const highComplexityThreshold = 10

// Complexity parses Go, Python, and JavaScript/TypeScript sources with
// tree-sitter and computes per-function cyclomatic complexity plus an
// approximate maintainability index. Other languages are skipped.
type Complexity struct {
	scanner  *scanner.Scanner
	maxFiles int
}

// NewComplexity creates the complexity collector.
func NewComplexity(cfg *config.Config) *Complexity {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	maxFiles := 500
	if cfg.Collectors.MaxFiles > 0 && cfg.Collectors.MaxFiles < maxFiles {
		maxFiles = cfg.Collectors.MaxFiles
	}
	return &Complexity{scanner: scanner.New(cfg), maxFiles: maxFiles}
}

// Name implements Collector.
func (c *Complexity) Name() string { return "complexity" }

type grammar struct {
	language  *sitter.Language
	functions map[string]bool
	decisions map[string]bool
}

var grammars = map[scanner.Language]grammar{
	scanner.LangGo: {
		language:  golang.GetLanguage(),
		functions: set("function_declaration", "method_declaration", "func_literal"),
		decisions: set("if_statement", "for_statement", "expression_switch_statement",
			"type_switch_statement", "select_statement", "expression_case", "type_case"),
	},
	scanner.LangPython: {
		language:  python.GetLanguage(),
		functions: set("function_definition"),
		decisions: set("if_statement", "elif_clause", "for_statement", "while_statement",
			"except_clause", "with_statement", "conditional_expression", "boolean_operator"),
	},
	scanner.LangJavaScript: {
		language:  javascript.GetLanguage(),
		functions: set("function_declaration", "method_definition", "arrow_function", "function_expression"),
		decisions: set("if_statement", "for_statement", "for_in_statement", "while_statement",
			"do_statement", "switch_case", "catch_clause", "ternary_expression"),
	},
	scanner.LangTypeScript: {
		language:  typescript.GetLanguage(),
		functions: set("function_declaration", "method_definition", "arrow_function", "function_expression"),
		decisions: set("if_statement", "for_statement", "for_in_statement", "while_statement",
			"do_statement", "switch_case", "catch_clause", "ternary_expression"),
	},
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[item] = true
	}
	return m
}

// Collect implements Collector.
func (c *Complexity) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	files, err := c.scanner.ScanDir(repoPath)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	var complexities []float64
	maxComplexity := 0
	highCount := 0
	var miValues []float64
	parsed := 0

	for _, path := range files {
		if ctx.Err() != nil || parsed >= c.maxFiles {
			break
		}
		g, ok := grammars[scanner.DetectLanguage(path)]
		if !ok {
			continue
		}
		source, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		parser.SetLanguage(g.language)
		tree, err := parser.ParseCtx(ctx, nil, source)
		if err != nil || tree == nil {
			continue
		}
		parsed++

		fileComplexities := functionComplexities(tree.RootNode(), g)
		tree.Close()

		for _, fc := range fileComplexities {
			complexities = append(complexities, float64(fc.cyclomatic))
			if fc.cyclomatic > maxComplexity {
				maxComplexity = fc.cyclomatic
			}
			if fc.cyclomatic > highComplexityThreshold {
				highCount++
			}
			miValues = append(miValues, maintainabilityIndex(fc.cyclomatic, fc.lines))
		}
	}

	if len(complexities) == 0 {
		return nil, nil
	}

	gauge := func(name string, value any) models.Metric {
		return models.NewMetric(name, value, models.TypeGauge, models.SourceStatic, models.CategoryCodeQuality)
	}

	return []models.Metric{
		gauge(models.MetricCyclomaticAvg, stat.Mean(complexities, nil)),
		gauge(models.MetricCyclomaticMax, maxComplexity),
		gauge(models.MetricHighComplexity, highCount),
		gauge(models.MetricMaintainability, stat.Mean(miValues, nil)),
		gauge(models.MetricFunctionsScanned, len(complexities)),
	}, nil
}

type functionComplexity struct {
	cyclomatic int
	lines      int
}

// functionComplexities walks the AST and computes cyclomatic complexity
// (1 + decision points) for every function node.
func functionComplexities(root *sitter.Node, g grammar) []functionComplexity {
	var out []functionComplexity

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if g.functions[node.Type()] {
			cc := 1 + countDecisions(node, g)
			lines := int(node.EndPoint().Row-node.StartPoint().Row) + 1
			out = append(out, functionComplexity{cyclomatic: cc, lines: lines})
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			walk(node.Child(i))
		}
	}
	walk(root)
	return out
}

func countDecisions(node *sitter.Node, g grammar) int {
	count := 0
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if g.decisions[child.Type()] {
				count++
			}
			// Nested functions are counted on their own.
			if g.functions[child.Type()] {
				continue
			}
			walk(child)
		}
	}
	walk(node)
	return count
}

// maintainabilityIndex is the classic MI formula normalized to 0-100,
// with Halstead volume approximated from function length.
func maintainabilityIndex(cyclomatic, lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	volume := float64(lines) * math.Log2(float64(lines)+1)
	mi := 171 - 5.2*math.Log(volume+1) - 0.23*float64(cyclomatic) - 16.2*math.Log(float64(lines))
	mi = mi * 100 / 171
	if mi < 0 {
		return 0
	}
	if mi > 100 {
		return 100
	}
	return mi
}
