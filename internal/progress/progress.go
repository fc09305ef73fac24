// Package progress renders a terminal progress bar for collector runs.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar sized to the collector roster. Silent
// trackers swallow all output so data formats stay clean on stdout.
type Tracker struct {
	bar   *progressbar.ProgressBar
	label string
}

// NewCollectorTracker creates a bar with one step per collector.
func NewCollectorTracker(label string, collectors int) *Tracker {
	return newTracker(label, collectors, os.Stderr)
}

// NewSilent creates a tracker that renders nothing. Callers keep the
// same Tick and Finish flow regardless of output mode.
func NewSilent(label string, collectors int) *Tracker {
	return newTracker(label, collectors, io.Discard)
}

func newTracker(label string, total int, w io.Writer) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, label: label}
}

// Tick marks one collector finished. Safe for concurrent use.
func (t *Tracker) Tick(string) {
	t.bar.Add(1)
}

// Finish clears the bar completely.
func (t *Tracker) Finish() {
	t.bar.Finish()
	t.bar.Clear()
}

// FinishError clears the bar and prints the failure to stderr.
func (t *Tracker) FinishError(err error) {
	t.bar.Finish()
	t.bar.Clear()
	fmt.Fprintf(os.Stderr, "  %s error: %v\n", t.label, err)
}
