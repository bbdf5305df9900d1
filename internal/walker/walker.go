// Package walker discovers previewable files under a directory.
package walker

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/ziadkadry99/previewkit/internal/payload"
)

// DefaultMaxFileSize is the maximum file size to preview (16 MB).
const DefaultMaxFileSize int64 = 16 << 20

// FileInfo holds metadata about a single previewable file.
type FileInfo struct {
	Path        string       // Absolute path on disk.
	RelPath     string       // Path relative to the root directory.
	Size        int64        // File size in bytes.
	Kind        payload.Kind // Preview engine chosen by extension.
	ContentHash string       // SHA-256 hex digest of the file content.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir     string   // Root directory to walk.
	Include     []string // Glob patterns; only matching files are included.
	Exclude     []string // Glob patterns; matching files are excluded.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
	// OnSkip, when set, is told about previewable files left out for their
	// content, with a short reason.
	OnSkip func(relPath, reason string)
}

// binaryProbe is how many leading bytes are searched for a NUL byte.
const binaryProbe = 8000

// Walk traverses the directory tree rooted at config.RootDir and returns
// every file with a previewable extension that passes filtering. It skips
// binary files, respects include/exclude patterns, and honours .gitignore.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	filter, err := NewFilter(config.Include, config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if err := filter.LoadGitignore(filepath.Join(root, ".gitignore")); err != nil {
		return nil, fmt.Errorf("walker: read .gitignore: %w", err)
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		name := d.Name()

		// Skip default-excluded directories.
		if d.IsDir() {
			if path != root && filter.SkipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process regular files.
		if !d.Type().IsRegular() {
			return nil
		}

		kind, ok := payload.KindForPath(name)
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if !filter.Match(relPath) {
			return nil
		}

		rel := filepath.ToSlash(relPath)
		skip := func(reason string) error {
			if config.OnSkip != nil {
				config.OnSkip(rel, reason)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return skip("unreadable")
		}
		if info.Size() > maxSize {
			return skip("too large")
		}

		hash, reason := inspect(path)
		if reason != "" {
			return skip(reason)
		}

		files = append(files, FileInfo{
			Path:        path,
			RelPath:     rel,
			Size:        info.Size(),
			Kind:        kind,
			ContentHash: hash,
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// inspect reads the file once and returns its SHA-256 hex digest, or the
// reason it cannot be previewed as text.
func inspect(path string) (hash string, reason string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "unreadable"
	}
	if bytes.IndexByte(data[:min(len(data), binaryProbe)], 0) >= 0 {
		return "", "binary"
	}
	if !utf8.Valid(data) {
		return "", "not UTF-8"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), ""
}
