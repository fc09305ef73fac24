package collector

import (
	"context"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/repoquant/repoquant/internal/scanner"
	"github.com/repoquant/repoquant/pkg/config"
	"github.com/repoquant/repoquant/pkg/models"
)

// DeadCode approximates unused-function counts: it indexes declared
// function names, marks every name referenced outside its declaration in
// a bitmap, and reports declarations whose bit never gets set. Entry
// points, tests, and Go exported identifiers are exempt since their
// callers live outside the repository.
type DeadCode struct {
	scanner *scanner.Scanner
}

// NewDeadCode creates the dead-code collector.
func NewDeadCode(cfg *config.Config) *DeadCode {
	return &DeadCode{scanner: scanner.New(cfg)}
}

// Name implements Collector.
func (c *DeadCode) Name() string { return "deadcode" }

var funcDeclPatterns = map[scanner.Language]*regexp.Regexp{
	scanner.LangGo:         regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	scanner.LangPython:     regexp.MustCompile(`(?m)^\s*def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	scanner.LangJavaScript: regexp.MustCompile(`(?m)^\s*function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
	scanner.LangTypeScript: regexp.MustCompile(`(?m)^\s*(?:export\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*\(`),
}

// Collect implements Collector.
func (c *DeadCode) Collect(ctx context.Context, repoPath string) ([]models.Metric, error) {
	files, err := c.scanner.ScanDir(repoPath)
	if err != nil {
		return nil, err
	}

	type decl struct {
		name string
		file string
	}

	var decls []decl
	index := make(map[string]uint32)
	contents := make(map[string]string, len(files))

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		lang := scanner.DetectLanguage(path)
		re, ok := funcDeclPatterns[lang]
		if !ok {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		text := string(content)
		contents[path] = text

		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if isExemptFunc(lang, name) {
				continue
			}
			if _, seen := index[name]; !seen {
				index[name] = uint32(len(decls))
				decls = append(decls, decl{name: name, file: path})
			}
		}
	}

	if len(decls) == 0 {
		return nil, nil
	}

	referenced := roaring.New()
	for path, text := range contents {
		for name, idx := range index {
			if referenced.Contains(idx) {
				continue
			}
			count := strings.Count(text, name)
			if path == decls[idx].file {
				// The declaration itself doesn't count as a use.
				if count > 1 {
					referenced.Add(idx)
				}
			} else if count > 0 {
				referenced.Add(idx)
			}
		}
	}

	unused := uint64(len(decls)) - referenced.GetCardinality()

	return []models.Metric{
		models.NewMetric(models.MetricDeadFunctions, int(unused),
			models.TypeGauge, models.SourceStatic, models.CategoryCodeQuality,
			models.WithDescription("declared functions never referenced elsewhere (heuristic)")),
	}, nil
}

func isExemptFunc(lang scanner.Language, name string) bool {
	switch name {
	case "main", "init", "__init__", "setUp", "tearDown":
		return true
	}
	if strings.HasPrefix(name, "Test") || strings.HasPrefix(name, "Benchmark") ||
		strings.HasPrefix(name, "Fuzz") || strings.HasPrefix(name, "test_") {
		return true
	}
	// Go exported functions have external callers by design of the
	// package API; skip them.
	if lang == scanner.LangGo && len(name) > 0 && unicode.IsUpper(rune(name[0])) {
		return true
	}
	return false
}
