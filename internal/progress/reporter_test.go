package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter().(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	r := NewReporter()
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatal("expected TerminalReporter")
	}
	// Update and Finish before Start must not panic.
	r.Update(1, "x")
	r.Finish()
}

func TestCIReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf}
	r.Start(2)
	r.Update(1, "data/a.csv")
	r.Update(2, "docs/README.md")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Rendering 2 previews", "[1/2] data/a.csv", "[2/2] docs/README.md", "Rendering complete in"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTerminalReporterEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{w: &buf}
	r.Start(0)
	r.Update(0, "nothing")
	r.Finish()
	if buf.Len() != 0 {
		t.Errorf("empty batch should draw nothing, got %q", buf.String())
	}
}
