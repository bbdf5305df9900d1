package walker

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	".previewkit",
	".venv",
	".idea",
	".vscode",
}

// ignoreRule is one .gitignore line compiled to doublestar patterns.
type ignoreRule struct {
	patterns []string
	negate   bool
	dirOnly  bool
}

// Filter decides which relative paths a walk keeps.
type Filter struct {
	include []string
	exclude []string
	ignore  []ignoreRule
}

// NewFilter validates the include and exclude globs. A pattern without a
// slash also matches against the file's base name.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range include {
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
		f.include = append(f.include, p)
	}
	for _, p := range exclude {
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = path.Clean(strings.ReplaceAll(p, `\`, "/"))
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
		f.exclude = append(f.exclude, p)
	}
	return f, nil
}

// LoadGitignore adds the rules of a .gitignore file. A missing file is
// not an error.
func (f *Filter) LoadGitignore(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		f.AddIgnore(line)
	}
	return nil
}

// AddIgnore compiles one gitignore line. Blank lines and comments are
// skipped; later rules win, so "!keep.csv" after "*.csv" keeps keep.csv.
func (f *Filter) AddIgnore(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}
	rule := ignoreRule{}
	if strings.HasPrefix(line, "!") {
		rule.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	anchored := strings.Contains(line, "/")
	line = strings.TrimPrefix(line, "/")
	if line == "" || !doublestar.ValidatePattern(line) {
		return
	}
	if anchored {
		rule.patterns = []string{line, line + "/**"}
	} else {
		rule.patterns = []string{"**/" + line, "**/" + line + "/**"}
	}
	if rule.dirOnly {
		// Only the contents of a matching directory are ignored.
		rule.patterns = rule.patterns[1:]
	}
	f.ignore = append(f.ignore, rule)
}

// SkipDir reports whether a directory with this name is pruned.
func (f *Filter) SkipDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

// Match reports whether the file at relPath passes gitignore, include and
// exclude rules.
func (f *Filter) Match(relPath string) bool {
	p := strings.ReplaceAll(relPath, `\`, "/")
	if f.ignored(p) {
		return false
	}
	if len(f.include) > 0 && !matchesAny(p, f.include) {
		return false
	}
	return !matchesAny(p, f.exclude)
}

func (f *Filter) ignored(p string) bool {
	ignored := false
	for _, rule := range f.ignore {
		for _, pattern := range rule.patterns {
			if ok, _ := doublestar.Match(pattern, p); ok {
				ignored = !rule.negate
				break
			}
		}
	}
	return ignored
}

// MatchesInclude returns true if relPath matches any of the include
// patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(strings.ReplaceAll(relPath, `\`, "/"), patterns)
}

// MatchesExclude returns true if relPath matches any of the exclude
// patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	return matchesAny(strings.ReplaceAll(relPath, `\`, "/"), patterns)
}

func matchesAny(p string, patterns []string) bool {
	base := path.Base(p)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}
