package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"unicode/utf8"
)

// SearchEngine scans the content of collected file entries for the compiled
// pattern. The scan is data-parallel: each file is one unit of work with an
// exclusively owned result slot (its own Entry), so only the shared
// counters need atomic updates.
type SearchEngine struct {
	cfg     *Config
	pattern *regexp.Regexp
}

func newSearchEngine(cfg *Config) *SearchEngine {
	return &SearchEngine{cfg: cfg, pattern: cfg.Pattern}
}

// Search annotates every file entry with its match window and updates the
// shared stats. It returns only after every file has been scanned or
// skipped.
func (s *SearchEngine) Search(files []*Entry, stats *SearchStats) {
	if len(files) == 0 {
		return
	}
	workers := s.cfg.Threads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan *Entry, len(files))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				s.scanFile(entry, stats)
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()
}

// scanFile reads and scans a single file. Unreadable files are a
// recoverable diagnostic; binary content is skipped without counting the
// file as searched.
func (s *SearchEngine) scanFile(entry *Entry, stats *SearchStats) {
	data, err := os.ReadFile(filepath.FromSlash(entry.Path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", entry.Path, err)
		return
	}
	if isBinary(data) {
		return
	}
	stats.Searched.Add(1)

	loc := s.pattern.FindIndex(data)
	if loc == nil {
		return
	}
	stats.Matched.Add(1)

	if s.cfg.Windowless {
		// Empty marker rather than nil so renderers still see the match.
		empty := ""
		entry.Window = &empty
		return
	}
	window, start, end := extractWindow(string(data), loc[0], loc[1], s.cfg.Radius)
	entry.Window = &window
	entry.matchStart = start
	entry.matchEnd = end
}

const ellipsis = "..."

// extractWindow returns a flat run of characters around the first match,
// bounded by radius on each side and clamped to the match's line, with
// ellipsis markers where the radius cut content off. The returned offsets
// locate the match within the window string.
func extractWindow(content string, matchStart, matchEnd, radius int) (string, int, int) {
	lineStart := 0
	if i := strings.LastIndexAny(content[:matchStart], "\r\n"); i >= 0 {
		lineStart = i + 1
	}
	lineEnd := len(content)
	if i := strings.IndexAny(content[matchEnd:], "\r\n"); i >= 0 {
		lineEnd = matchEnd + i
	}

	start := matchStart - radius
	if start < lineStart {
		start = lineStart
	}
	end := matchEnd + radius
	if end > lineEnd {
		end = lineEnd
	}
	start = snapRuneStart(content, start)
	end = snapRuneStart(content, end)

	before := strings.TrimLeft(content[start:matchStart], " \t")
	after := strings.TrimRight(content[matchEnd:end], " \t")

	var b strings.Builder
	if start != lineStart {
		b.WriteString(ellipsis)
	}
	b.WriteString(before)
	winStart := b.Len()
	b.WriteString(content[matchStart:matchEnd])
	winEnd := b.Len()
	b.WriteString(after)
	if end != lineEnd {
		b.WriteString(ellipsis)
	}
	return b.String(), winStart, winEnd
}

// snapRuneStart moves a byte offset back to the nearest UTF-8 rune boundary
// so the radius never slices a multi-byte character.
func snapRuneStart(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// isBinary reports whether content cannot be treated as text: a NUL byte or
// invalid UTF-8 marks the file as undecodable.
func isBinary(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}
