// Package payload decodes the text blobs handed to the preview engines and
// loads them from disk.
package payload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidBase64 is returned when an encoded payload is not valid base64.
	ErrInvalidBase64 = errors.New("payload: invalid base64")
	// ErrInvalidUTF8 is returned when decoded bytes are not well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("payload: invalid utf-8")
)

// Kind identifies which preview engine handles a payload.
type Kind string

const (
	KindCSV      Kind = "csv"
	KindJSON     Kind = "json"
	KindMarkdown Kind = "markdown"
	KindDiff     Kind = "diff"
	// KindPlan is markdown shown as an implementation plan. No extension
	// maps to it; it is always chosen explicitly.
	KindPlan Kind = "plan"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindCSV, KindJSON, KindMarkdown, KindDiff, KindPlan}

// extensionKinds maps lowercase file extensions to preview kinds.
var extensionKinds = map[string]Kind{
	".csv":      KindCSV,
	".json":     KindJSON,
	".jsonl":    KindJSON,
	".ndjson":   KindJSON,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".diff":     KindDiff,
	".patch":    KindDiff,
}

// ParseKind validates a user supplied kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown preview kind %q: must be one of csv, json, markdown, diff, plan", s)
}

// KindForPath guesses the preview kind from a file extension.
func KindForPath(path string) (Kind, bool) {
	k, ok := extensionKinds[strings.ToLower(filepath.Ext(path))]
	return k, ok
}

// Encode returns the base64 form of text, as embedded into preview pages.
func Encode(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode turns a base64 payload back into text. Multi-byte characters
// survive because the decoded bytes are reassembled as UTF-8 rather than
// mapped one byte per character; malformed sequences are rejected the way a
// percent-decoder would reject them.
func Decode(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

// Load reads a payload from path, or from stdin when path is "-".
func Load(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: %w", path, ErrInvalidUTF8)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}
