package payload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	tests := []string{
		"name,age\nJohn,30",
		"héllo wörld",
		"日本語テキスト",
		"emoji 🎉 payload",
		"",
	}
	for _, text := range tests {
		got, err := Decode(Encode(text))
		if err != nil {
			t.Fatalf("Decode(Encode(%q)): %v", text, err)
		}
		if got != text {
			t.Errorf("round trip = %q, want %q", got, text)
		}
	}
}

func TestDecodeInvalidBase64(t *testing.T) {
	_, err := Decode("not base64!!")
	if !errors.Is(err, ErrInvalidBase64) {
		t.Errorf("err = %v, want ErrInvalidBase64", err)
	}
}

func TestDecodeInvalidUTF8(t *testing.T) {
	// 0xff 0xfe is never valid UTF-8.
	_, err := Decode("//4=")
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("err = %v, want ErrInvalidUTF8", err)
	}
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
		ok   bool
	}{
		{"data.csv", KindCSV, true},
		{"DATA.CSV", KindCSV, true},
		{"events.jsonl", KindJSON, true},
		{"config.json", KindJSON, true},
		{"README.md", KindMarkdown, true},
		{"change.patch", KindDiff, true},
		{"main.go", "", false},
	}
	for _, tt := range tests {
		got, ok := KindForPath(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KindForPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" JSON "); err != nil || k != KindJSON {
		t.Errorf("ParseKind(JSON) = %q, %v", k, err)
	}
	if _, err := ParseKind("svg"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestLoadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	if err := os.WriteFile(path, []byte("\ufeffa,b\n1,2"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "a,b\n1,2" {
		t.Errorf("Load = %q", got)
	}
}
