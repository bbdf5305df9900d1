// Package build renders every previewable file under a directory into a
// static HTML site, skipping files whose content has not changed since the
// last run.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ziadkadry99/previewkit/internal/diff"
	"github.com/ziadkadry99/previewkit/internal/page"
	"github.com/ziadkadry99/previewkit/internal/payload"
	"github.com/ziadkadry99/previewkit/internal/session"
	"github.com/ziadkadry99/previewkit/internal/walker"
)

// ProgressFunc is called as each file finishes.
type ProgressFunc func(processed int, total int, currentFile string)

// Options configures a Builder.
type Options struct {
	OutputDir   string
	Theme       string
	DiffMode    diff.Mode
	ExpandFirst int
	// Concurrency bounds parallel renders (default 4).
	Concurrency int
	// Force re-renders files whose hash is unchanged.
	Force bool
}

// Result summarizes a build.
type Result struct {
	Rendered []string
	Skipped  int
	Removed  int
	Errors   []error
	Duration time.Duration
}

// Builder renders walked files into OutputDir.
type Builder struct {
	opts       Options
	onProgress ProgressFunc
}

// New creates a Builder.
func New(opts Options) *Builder {
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	return &Builder{opts: opts}
}

// SetProgressFunc sets the progress callback.
func (b *Builder) SetProgressFunc(fn ProgressFunc) {
	b.onProgress = fn
}

// PagePath maps a source path relative to the root to its page path
// relative to the output directory: data/people.csv -> data/people.csv.html.
func PagePath(relPath string) string {
	return filepath.FromSlash(relPath) + ".html"
}

// Run renders the changed files among files, removes pages whose source is
// gone, rewrites the index and saves the manifest.
func (b *Builder) Run(ctx context.Context, files []walker.FileInfo) (*Result, error) {
	start := time.Now()
	result := &Result{}

	state, err := LoadState(b.opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	var changed []walker.FileInfo
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.RelPath] = true
		out := filepath.Join(b.opts.OutputDir, PagePath(f.RelPath))
		if b.opts.Force || state.IsFileChanged(f.RelPath, f.ContentHash) || !exists(out) {
			changed = append(changed, f)
		} else {
			result.Skipped++
		}
	}

	for rel := range state.FileHashes {
		if present[rel] {
			continue
		}
		delete(state.FileHashes, rel)
		if err := os.Remove(filepath.Join(b.opts.OutputDir, PagePath(rel))); err != nil && !os.IsNotExist(err) {
			result.Errors = append(result.Errors, fmt.Errorf("remove page for %s: %w", rel, err))
			continue
		}
		result.Removed++
	}

	rendered, errs := b.renderAll(ctx, changed)
	result.Errors = append(result.Errors, errs...)
	for rel, hash := range rendered {
		state.FileHashes[rel] = hash
		result.Rendered = append(result.Rendered, rel)
	}
	sort.Strings(result.Rendered)

	if err := b.writeIndex(files); err != nil {
		return result, fmt.Errorf("write index: %w", err)
	}
	if err := state.Save(b.opts.OutputDir); err != nil {
		return result, fmt.Errorf("save state: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// renderAll renders files with bounded parallelism and returns the hashes
// of the files written.
func (b *Builder) renderAll(ctx context.Context, files []walker.FileInfo) (map[string]string, []error) {
	total := len(files)
	rendered := make(map[string]string, total)
	if total == 0 {
		return rendered, nil
	}

	sem := make(chan struct{}, b.opts.Concurrency)
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		processed int64
		errs      []error
	)
	done := func(rel string) {
		count := atomic.AddInt64(&processed, 1)
		if b.onProgress != nil {
			b.onProgress(int(count), total, rel)
		}
	}

	cancelled := func(rel string) {
		mu.Lock()
		errs = append(errs, fmt.Errorf("render %s: %w", rel, ctx.Err()))
		mu.Unlock()
		done(rel)
	}

	for _, file := range files {
		if ctx.Err() != nil {
			cancelled(file.RelPath)
			continue
		}
		select {
		case <-ctx.Done():
			cancelled(file.RelPath)
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(f walker.FileInfo) {
			defer wg.Done()
			defer func() { <-sem }()

			err := b.renderFile(f)
			mu.Lock()
			if err != nil {
				errs = append(errs, fmt.Errorf("render %s: %w", f.RelPath, err))
			} else {
				rendered[f.RelPath] = f.ContentHash
			}
			mu.Unlock()
			done(f.RelPath)
		}(file)
	}

	wg.Wait()
	return rendered, errs
}

func (b *Builder) renderFile(f walker.FileInfo) error {
	text, err := payload.Load(f.Path)
	if err != nil {
		return err
	}
	x, err := session.Render(f.Kind, text, filepath.Base(f.RelPath), b.opts.Theme, session.EngineOptions{
		DiffMode:    b.opts.DiffMode,
		ExpandFirst: b.opts.ExpandFirst,
	})
	if err != nil {
		return err
	}
	return x.WriteFile(filepath.Join(b.opts.OutputDir, PagePath(f.RelPath)))
}

// writeIndex lists every page of the current walk in index.html.
func (b *Builder) writeIndex(files []walker.FileInfo) error {
	entries := make([]page.IndexEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, page.IndexEntry{
			Name: f.RelPath,
			Href: filepath.ToSlash(PagePath(f.RelPath)),
			Kind: string(f.Kind),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})

	if err := os.MkdirAll(b.opts.OutputDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(filepath.Join(b.opts.OutputDir, "index.html"))
	if err != nil {
		return err
	}
	defer out.Close()
	return page.Write(out, page.Document{
		Title:   "previewkit",
		Kind:    "index",
		Theme:   b.opts.Theme,
		Content: page.Index(entries, "No previewable files found"),
	})
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
