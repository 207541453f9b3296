package main

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
)

// palette groups the output styles. color.NoColor is set globally by main
// for grayscale mode or a non-terminal stdout, so every Sprint call below
// degrades to plain text automatically.
type palette struct {
	root   *color.Color
	dir    *color.Color
	detail *color.Color
	match  *color.Color
	search *color.Color
	muted  *color.Color
	errTag *color.Color
}

func newPalette() *palette {
	return &palette{
		root:   color.New(color.FgHiYellow, color.Bold),
		dir:    color.New(color.FgCyan),
		detail: color.New(color.FgHiBlack),
		match:  color.New(color.FgGreen, color.Bold),
		search: color.New(color.FgHiYellow),
		muted:  color.New(color.FgHiBlack),
		errTag: color.New(color.FgRed, color.Bold),
	}
}

type renderer struct {
	cfg *Config
	pal *palette
}

// renderTree produces the terminal representation of a finished (pruned,
// aggregated, sorted) tree.
func renderTree(root *Entry, cfg *Config) string {
	r := &renderer{cfg: cfg, pal: newPalette()}
	var b strings.Builder
	r.writeEntry(&b, root, "", 0, true, "", "")
	return b.String()
}

func (r *renderer) writeEntry(b *strings.Builder, e *Entry, prefix string, depth int, isLast bool, enumeration, windowPad string) {
	display := r.displayName(e)
	details := r.formatDetails(e)

	if depth == 0 {
		b.WriteString(" ")
		b.WriteString(r.pal.root.Sprint(display))
		b.WriteString("\n")
	} else {
		var connector string
		if !r.cfg.Flat {
			bar := strings.Repeat("─", r.cfg.Indent) + " "
			if isLast {
				connector = "╰" + bar
			} else {
				connector = "├" + bar
			}
			connector = r.connectorColor(depth).Sprint(connector)
		}
		var enumPrefix string
		if r.cfg.Enumerate {
			enumPrefix = r.pal.detail.Sprintf("[%s] ", enumeration)
		}
		name := display
		if e.IsDir() {
			name = r.pal.dir.Sprint(display)
		}
		b.WriteString(" ")
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(enumPrefix)
		if details != "" {
			b.WriteString(r.pal.detail.Sprint(details))
		}
		b.WriteString(name)
		if window := r.formatWindow(e); window != "" {
			b.WriteString(windowPad)
			b.WriteString(window)
		}
		b.WriteString("\n")
	}

	if !e.IsDir() || (len(e.Children) == 0 && e.dropped == 0) {
		return
	}

	var childPrefix string
	switch {
	case r.cfg.Flat:
		childPrefix = ""
	case depth == 0:
		childPrefix = prefix
	case isLast:
		childPrefix = prefix + strings.Repeat(" ", r.cfg.Indent+2)
	default:
		childPrefix = prefix + r.connectorColor(depth).Sprint("│") + strings.Repeat(" ", r.cfg.Indent+1)
	}

	// Column to align match windows past the longest sibling name.
	maxWidth := 0
	if r.cfg.IsSearch() && !r.cfg.Windowless {
		for _, child := range e.Children {
			if w := len(r.displayName(child)); w > maxWidth {
				maxWidth = w
			}
		}
	}

	total := len(e.Children)
	if e.dropped > 0 {
		total++
	}
	enumWidth := len(strconv.Itoa(total))
	for i, child := range e.Children {
		childEnum := ""
		if r.cfg.Enumerate {
			childEnum = fmt.Sprintf("%*d", enumWidth, i+1)
		}
		pad := ""
		if maxWidth > 0 && child.Window != nil {
			pad = strings.Repeat(" ", maxWidth-len(r.displayName(child))+1)
		}
		last := i == len(e.Children)-1 && e.dropped == 0
		r.writeEntry(b, child, childPrefix, depth+1, last, childEnum, pad)
	}
	if e.dropped > 0 {
		marker := r.pal.detail.Sprintf("%d more ...", e.dropped)
		bar := strings.Repeat("─", r.cfg.Indent) + " "
		b.WriteString(" ")
		b.WriteString(childPrefix)
		if !r.cfg.Flat {
			b.WriteString(r.connectorColor(depth + 1).Sprint("╰" + bar))
		}
		if r.cfg.Enumerate {
			b.WriteString(r.pal.detail.Sprintf("[%*d] ", enumWidth, total))
		}
		b.WriteString(marker)
		b.WriteString("\n")
	}
}

// connectorColor styles tree glyphs: entries hanging directly off the root
// take the root color, everything deeper takes the directory color.
func (r *renderer) connectorColor(depth int) *color.Color {
	if depth == 1 {
		return r.pal.root
	}
	return r.pal.dir
}

// displayName applies the configured path display mode, quoting, and
// symlink target annotation.
func (r *renderer) displayName(e *Entry) string {
	name := e.Name
	switch {
	case r.cfg.ShowFullPath:
		if abs, err := filepath.Abs(filepath.FromSlash(e.Path)); err == nil {
			name = filepath.ToSlash(abs)
		} else {
			name = e.Path
		}
	case r.cfg.ShowRelPath:
		name = e.Path
	}
	if r.cfg.Quote {
		name = "\"" + name + "\""
	}
	if e.isSymlink {
		name += " -> " + e.symTarget
	}
	return name
}

// formatDetails renders the optional "(date, size) " block. Directories
// only carry details in dir-detail mode.
func (r *renderer) formatDetails(e *Entry) string {
	if e.IsDir() && !r.cfg.DirDetail {
		return ""
	}
	var date, size string
	if r.cfg.ShowDate || r.cfg.ShortDate {
		layout := "2006-01-02 15:04:05"
		if r.cfg.ShortDate {
			layout = "2006-01-02"
		}
		date = e.LastModified.Format(layout)
	}
	if r.cfg.ShowSize {
		size = humanSize(e.Size)
	}
	switch {
	case date == "" && size == "":
		return ""
	case date != "" && size != "":
		return "(" + date + ", " + size + ") "
	default:
		return "(" + date + size + ") "
	}
}

// formatWindow highlights the matched run inside the window snippet.
func (r *renderer) formatWindow(e *Entry) string {
	if e.Window == nil || *e.Window == "" {
		return ""
	}
	w := *e.Window
	return r.pal.muted.Sprint(w[:e.matchStart]) +
		r.pal.match.Sprint(w[e.matchStart:e.matchEnd]) +
		r.pal.muted.Sprint(w[e.matchEnd:])
}

// humanSize scales a byte count into a fixed-width "nnn U" form so size
// columns stay aligned.
func humanSize(size int64) string {
	const (
		kb = 1_000.0
		mb = 1_000_000.0
		gb = 1_000_000_000.0
	)
	s := float64(size)
	scale := func(v float64, unit string) string {
		if v < 10 {
			return fmt.Sprintf("%3.1f %s", v, unit)
		}
		return fmt.Sprintf("%3.0f %s", v, unit)
	}
	switch {
	case s < kb:
		return scale(s, "B")
	case s < mb:
		return scale(s/kb, "K")
	case s < gb:
		return scale(s/mb, "M")
	default:
		return scale(s/gb, "G")
	}
}

// formatSummary produces the closing summary line: match counts when
// searching, directory/file counts otherwise, with an optional elapsed
// suffix.
func formatSummary(cfg *Config, stats *SearchStats, counts TreeCounts, elapsed time.Duration) string {
	pal := newPalette()
	var line string
	if cfg.IsSearch() {
		matched := stats.Matched.Load()
		searched := stats.Searched.Load()
		matchWord := "matches"
		if matched == 1 {
			matchWord = "match"
		}
		matchColor := pal.match
		if matched == 0 {
			matchColor = pal.search
		}
		line = matchColor.Sprintf("%d %s", matched, matchWord) + ", " +
			pal.search.Sprintf("%d searched", searched)
	} else {
		dirWord := "directories"
		if counts.Dirs == 1 {
			dirWord = "directory"
		}
		fileWord := "files"
		if counts.Files == 1 {
			fileWord = "file"
		}
		line = pal.dir.Sprintf("%d %s", counts.Dirs, dirWord) + ", " +
			fmt.Sprintf("%d %s", counts.Files, fileWord)
	}
	if cfg.ShowElapsed {
		line += fmt.Sprintf(" (%.3fs)", elapsed.Seconds())
	}
	return line
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes terminal styling so the report can be written to
// non-terminal destinations.
func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}
