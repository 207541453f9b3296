package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is the fully resolved configuration for one run. It is built once
// from flags and config file values and passed explicitly to every
// component; nothing reads flag state after this point.
type Config struct {
	Root       string
	Pattern    *regexp.Regexp // nil when no search was requested
	RawPattern string

	IgnorePatterns  []string
	IncludePatterns []string
	ShowAll         bool // include hidden entries
	UseIgnoreFiles  bool
	CaseInsensitive bool

	MaxDepth    int // -1 means unlimited
	MaxFiles    int // 0 means unlimited
	FollowLinks bool

	SortKey string
	Reverse bool

	Radius     int
	Windowless bool
	Threads    int

	ShowSize     bool
	ShowDate     bool
	ShortDate    bool
	DirDetail    bool
	ShowRelPath  bool
	ShowFullPath bool
	Quote        bool
	Flat         bool
	Enumerate    bool
	JustCounts   bool
	ShowElapsed  bool
	Grayscale    bool
	Indent       int

	OutputFile string // JSON export destination, empty for none
	PDFFile    string
	Clipboard  bool
}

// IsSearch reports whether a content search was requested.
func (c *Config) IsSearch() bool {
	return c.Pattern != nil
}

var validSortKeys = map[string]bool{"name": true, "date": true, "size": true, "type": true}

// resolveConfig validates the root directory and compiles the search
// pattern. Both failures are fatal configuration errors: nothing has been
// traversed or opened yet.
func resolveConfig(cfg *Config, rawPattern string) error {
	cfg.Root = filepath.ToSlash(filepath.Clean(cfg.Root))

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("the directory provided, '%s', does not exist or is not readable: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("the path provided, '%s', is not a directory", cfg.Root)
	}

	if !validSortKeys[strings.ToLower(cfg.SortKey)] {
		return fmt.Errorf("invalid sort key %q: expected date, name, size or type", cfg.SortKey)
	}
	cfg.SortKey = strings.ToLower(cfg.SortKey)

	if rawPattern != "" {
		expr := rawPattern
		if cfg.CaseInsensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("invalid search pattern %q: %w", rawPattern, err)
		}
		cfg.Pattern = re
		cfg.RawPattern = rawPattern
	}
	return nil
}

// splitPatterns normalizes a comma-separated flag value into a clean slice,
// dropping empty fragments.
func splitPatterns(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
