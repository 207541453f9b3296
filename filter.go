package main

import (
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// scopedMatcher is one ignore file discovered during descent, bound to the
// directory that contained it. Its rules apply to that subtree only.
type scopedMatcher struct {
	dir     string
	matcher gitignore.IgnoreMatcher
}

// FilterSet is the snapshot of ignore-file rules active at one point of the
// traversal: every ignore file found from the root down to the current
// directory, in discovery order. A FilterSet is never mutated after
// construction; descending into a directory with its own ignore file
// produces an extended copy.
type FilterSet struct {
	matchers []scopedMatcher
}

// extend returns the FilterSet for a directory about to be traversed,
// picking up a .gitignore in dir when ignore files are enabled. Returns the
// receiver unchanged when there is nothing to add.
func (fs *FilterSet) extend(dir string, cfg *Config) *FilterSet {
	if !cfg.UseIgnoreFiles {
		return fs
	}
	ignorePath := filepath.Join(dir, ".gitignore")
	matcher, err := gitignore.NewGitIgnore(ignorePath)
	if err != nil {
		// Absent or unreadable ignore file: nothing to merge.
		return fs
	}
	next := &FilterSet{matchers: make([]scopedMatcher, 0, len(fs.matchers)+1)}
	next.matchers = append(next.matchers, fs.matchers...)
	next.matchers = append(next.matchers, scopedMatcher{dir: dir, matcher: matcher})
	return next
}

// ignored reports whether any ignore file in scope rejects the path.
// Matchers are consulted deepest first so the most specific rule file wins.
func (fs *FilterSet) ignored(path string, isDir bool) bool {
	for i := len(fs.matchers) - 1; i >= 0; i-- {
		if fs.matchers[i].matcher.Match(path, isDir) {
			return true
		}
	}
	return false
}

// FilterEngine decides whether a filesystem entry is visible, combining the
// explicit ignore patterns, ignore-file rules, the hidden-entry policy and
// the explicit include patterns, in that precedence order. Include patterns
// apply to files only: directories stay traversable so deeper matching
// files remain reachable.
type FilterEngine struct {
	cfg *Config
}

func newFilterEngine(cfg *Config) *FilterEngine {
	return &FilterEngine{cfg: cfg}
}

func (f *FilterEngine) isVisible(path, name string, isDir bool, fset *FilterSet) bool {
	if matchesAnyPattern(name, path, f.cfg.IgnorePatterns, f.cfg.CaseInsensitive) {
		return false
	}
	if fset.ignored(path, isDir) {
		return false
	}
	if !f.cfg.ShowAll && isHidden(name) {
		return false
	}
	if !isDir && len(f.cfg.IncludePatterns) > 0 {
		return matchesAnyPattern(name, path, f.cfg.IncludePatterns, f.cfg.CaseInsensitive)
	}
	return true
}

// matchesAnyPattern checks the base name against glob patterns and, for
// patterns without wildcards, the exact name or a path substring. Malformed
// globs simply never match.
func matchesAnyPattern(name, path string, patterns []string, insensitive bool) bool {
	if len(patterns) == 0 {
		return false
	}
	n, p := name, path
	if insensitive {
		n = strings.ToLower(n)
		p = strings.ToLower(p)
	}
	for _, pattern := range patterns {
		if insensitive {
			pattern = strings.ToLower(pattern)
		}
		if strings.ContainsAny(pattern, "*?[") {
			if ok, err := filepath.Match(pattern, n); err == nil && ok {
				return true
			}
			continue
		}
		if n == pattern || strings.Contains(p, pattern) {
			return true
		}
	}
	return false
}

// isHidden reports whether a base name follows the dot-prefix hidden
// convention. "." and ".." are never considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
