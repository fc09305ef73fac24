package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/repoquant/repoquant/pkg/config"
)

// Language identifies a source language by file extension.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangRuby       Language = "ruby"
	LangRust       Language = "rust"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangKotlin     Language = "kotlin"
	LangSwift      Language = "swift"
	LangScala      Language = "scala"
	LangShell      Language = "shell"
	LangUnknown    Language = ""
)

var extLanguages = map[string]Language{
	".go":    LangGo,
	".py":    LangPython,
	".js":    LangJavaScript,
	".jsx":   LangJavaScript,
	".mjs":   LangJavaScript,
	".ts":    LangTypeScript,
	".tsx":   LangTypeScript,
	".java":  LangJava,
	".rb":    LangRuby,
	".rs":    LangRust,
	".c":     LangC,
	".h":     LangC,
	".cpp":   LangCPP,
	".cc":    LangCPP,
	".hpp":   LangCPP,
	".cs":    LangCSharp,
	".php":   LangPHP,
	".kt":    LangKotlin,
	".swift": LangSwift,
	".scala": LangScala,
	".sh":    LangShell,
}

// DetectLanguage returns the language for a path, or LangUnknown.
func DetectLanguage(path string) Language {
	return extLanguages[strings.ToLower(filepath.Ext(path))]
}

// IsTestFile reports whether a path looks like a test file by naming
// convention.
func IsTestFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, "_test.go"),
		strings.HasPrefix(base, "test_") && strings.HasSuffix(base, ".py"),
		strings.HasSuffix(base, "_test.py"),
		strings.Contains(base, ".spec.") || strings.Contains(base, ".test."),
		strings.HasSuffix(base, "test.java"),
		strings.HasSuffix(base, "_spec.rb"):
		return true
	}
	dir := strings.ToLower(filepath.ToSlash(filepath.Dir(path)))
	return strings.Contains(dir, "/tests/") || strings.HasSuffix(dir, "/tests") ||
		strings.Contains(dir, "/test/") || strings.HasSuffix(dir, "/test") ||
		strings.Contains(dir, "/__tests__")
}

// Scanner finds source files under a repository root, honoring the
// configured exclusions and .gitignore files.
type Scanner struct {
	config   *config.Config
	matchers []gitignore.Matcher
	maxFiles int
}

// New creates a scanner from a config.
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{config: cfg, maxFiles: cfg.Collectors.MaxFiles}
}

// loadExcludePatterns combines config patterns with .gitignore files under
// the repository root.
func (s *Scanner) loadExcludePatterns(root string) {
	var patterns []gitignore.Pattern

	for _, pattern := range s.config.Exclude.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(pattern, nil))
	}
	for _, dir := range s.config.Exclude.Dirs {
		patterns = append(patterns, gitignore.ParsePattern(dir+"/", nil))
	}

	if s.config.Exclude.Gitignore {
		if _, err := os.Stat(filepath.Join(root, ".git")); err == nil {
			fsRoot := osfs.New(root)
			if gitPatterns, err := gitignore.ReadPatterns(fsRoot, nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	s.matchers = []gitignore.Matcher{gitignore.NewMatcher(patterns)}
}

func (s *Scanner) isExcluded(relPath string, isDir bool) bool {
	if !isDir {
		ext := strings.ToLower(filepath.Ext(relPath))
		for _, e := range s.config.Exclude.Extensions {
			if ext == e {
				return true
			}
		}
	}
	parts := strings.Split(relPath, string(filepath.Separator))
	for _, m := range s.matchers {
		if m.Match(parts, isDir) {
			return true
		}
	}
	return false
}

// ScanDir returns all recognized source files under root, capped at the
// configured file limit.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	files := make([]string, 0, 256)
	s.loadExcludePatterns(root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if s.maxFiles > 0 && len(files) >= s.maxFiles {
			return filepath.SkipAll
		}

		relPath, _ := filepath.Rel(root, path)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if s.isExcluded(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if s.isExcluded(relPath, false) {
			return nil
		}
		if DetectLanguage(path) != LangUnknown {
			files = append(files, path)
		}
		return nil
	})

	return files, walkErr
}
