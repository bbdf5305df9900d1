package cmd

import (
	"testing"

	"github.com/ziadkadry99/previewkit/internal/config"
	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/payload"
)

func TestResolveKind(t *testing.T) {
	tests := []struct {
		name, path string
		want       payload.Kind
		wantErr    bool
	}{
		{"", "data/people.csv", payload.KindCSV, false},
		{"", "events.jsonl", payload.KindJSON, false},
		{"markdown", "notes.txt", payload.KindMarkdown, false},
		{"plan", "rollout.md", payload.KindPlan, false},
		{"", "-", "", true},
		{"", "image.png", "", true},
		{"xml", "a.csv", "", true},
	}
	for _, tt := range tests {
		got, err := resolveKind(tt.name, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveKind(%q, %q) error = %v, wantErr %v", tt.name, tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveKind(%q, %q) = %q, want %q", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Diff.ViewMode = config.DiffSideBySide
	opts := engineOptions(cfg)
	if opts.DiffMode != diff.SideBySide {
		t.Errorf("DiffMode = %q", opts.DiffMode)
	}
	if opts.ExpandFirst != 1 {
		t.Errorf("ExpandFirst = %d, want 1", opts.ExpandFirst)
	}

	cfg.Diff.ExpandFirst = 0
	if got := engineOptions(cfg).ExpandFirst; got >= 0 {
		t.Errorf("expand_first 0 should collapse every file, got %d", got)
	}
}
