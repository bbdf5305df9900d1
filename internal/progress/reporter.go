// Package progress reports batch rendering progress on a terminal or in
// CI logs.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while previews are rendered.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a CIReporter when the CI or GITHUB_ACTIONS variables
// are set and a TerminalReporter otherwise. Both write to stderr.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: os.Stderr}
	}
	return &TerminalReporter{w: os.Stderr}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// Start creates the bar. Nothing is drawn for an empty batch.
func (r *TerminalReporter) Start(total int) {
	if total == 0 {
		return
	}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription("Rendering previews"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// Update moves the bar to current and shows the file being rendered.
func (r *TerminalReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(message)
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints one line per rendered file, suitable for CI logs.
type CIReporter struct {
	w     io.Writer
	total int
	start time.Time
}

func (r *CIReporter) Start(total int) {
	r.total = total
	r.start = time.Now()
	fmt.Fprintf(r.w, "Rendering %d previews\n", total)
}

func (r *CIReporter) Update(current int, message string) {
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	if r.start.IsZero() {
		return
	}
	fmt.Fprintf(r.w, "Rendering complete in %s\n", time.Since(r.start).Round(time.Millisecond))
}

// Quiet reports nothing.
type Quiet struct{}

func (Quiet) Start(int)          {}
func (Quiet) Update(int, string) {}
func (Quiet) Finish()            {}
