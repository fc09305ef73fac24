// Package collector implements the metric collection agents. Each
// collector owns one concern, receives a repository path, and returns its
// own metric buffer; the aggregator concatenates buffers in registration
// order. Collectors never read each other's results and never fail the
// batch: a missing tool or unreadable file means an omitted metric or a
// documented sentinel, not an error that aborts the run.
package collector

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/repoquant/repoquant/pkg/models"
)

// Collector is the one capability every collection agent implements.
type Collector interface {
	// Name identifies the collector in logs and run metadata.
	Name() string
	// Collect gathers metrics for the repository at repoPath. The
	// returned slice is the collector's private buffer; a nil slice with
	// a nil error is a valid "nothing observed" result.
	Collect(ctx context.Context, repoPath string) ([]models.Metric, error)
}

// DefaultToolTimeout bounds a single external tool invocation.
const DefaultToolTimeout = 60 * time.Second

// toolResult is the outcome of probing and running an external tool.
// Unavailable tools are a normal condition, not an error.
type toolResult struct {
	Available bool
	Output    string
}

// runTool executes an external binary with a bounded timeout. When the
// binary is not installed, the result is Unavailable; when it runs but
// fails or times out, the result carries whatever output was produced.
func runTool(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) toolResult {
	if _, err := exec.LookPath(name); err != nil {
		return toolResult{}
	}
	if timeout <= 0 {
		timeout = DefaultToolTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = nil

	err := cmd.Run()
	out := stdout.String()
	if err != nil && out == "" {
		return toolResult{Available: true}
	}
	return toolResult{Available: true, Output: out}
}

// fileExists returns the first of names that exists under root as a
// regular file.
func fileExists(root string, names ...string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// dirExists returns the first of names that exists under root as a
// directory.
func dirExists(root string, names ...string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// readFileCapped reads at most limit bytes of a file.
func readFileCapped(path string, limit int64) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if limit <= 0 {
		limit = 1 << 20
	}
	buf := make([]byte, limit)
	n, _ := f.Read(buf)
	return string(buf[:n]), nil
}

// containsAny reports whether lower-cased haystack contains any needle.
func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// countLines counts newline-terminated lines; a trailing partial line
// counts as one.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
