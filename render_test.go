package main

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRender(t *testing.T, root *Entry, cfg *Config) string {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	return renderTree(root, cfg)
}

func TestRenderTreeGlyphs(t *testing.T) {
	root := dirEntry("root",
		dirEntry("sub", fileEntry("inner.txt", 0)),
		fileEntry("last.txt", 0),
	)

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, " root", lines[0])
	assert.Contains(t, lines[1], "├── sub")
	assert.Contains(t, lines[2], "╰── inner.txt")
	assert.Contains(t, lines[2], "│", "non-last parent keeps a vertical rail")
	assert.Contains(t, lines[3], "╰── last.txt")
}

func TestRenderFlatList(t *testing.T) {
	root := dirEntry("root",
		dirEntry("sub", fileEntry("inner.txt", 0)),
	)

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2, Flat: true})
	assert.NotContains(t, out, "├")
	assert.NotContains(t, out, "╰")
	assert.NotContains(t, out, "│")
	assert.Contains(t, out, "inner.txt")
}

func TestRenderTruncationMarker(t *testing.T) {
	root := dirEntry("root", fileEntry("a.txt", 0), fileEntry("b.txt", 0))
	root.dropped = 3

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2})
	assert.Contains(t, out, "3 more ...")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines[len(lines)-1], "3 more ...", "marker renders after the kept files")
	assert.Contains(t, lines[len(lines)-1], "╰", "marker takes the last-child connector")
	assert.Contains(t, lines[2], "├── b.txt", "kept files are never the visual last child")
}

func TestRenderEnumeration(t *testing.T) {
	root := dirEntry("root",
		fileEntry("a.txt", 0),
		fileEntry("b.txt", 0),
	)

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2, Enumerate: true})
	assert.Contains(t, out, "[1] ")
	assert.Contains(t, out, "[2] ")
}

func TestRenderDetails(t *testing.T) {
	f := fileEntry("a.txt", 1500)
	f.LastModified = time.Date(2025, 2, 3, 4, 5, 6, 0, time.Local)
	sub := dirEntry("sub", f)
	root := dirEntry("root", sub)

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2, ShowSize: true, ShowDate: true})
	assert.Contains(t, out, "(2025-02-03 04:05:06, 1.5 K) a.txt")
	assert.NotContains(t, out, ") sub", "directories carry no details without dir-detail")

	detailed := plainRender(t, root, &Config{SortKey: "name", Indent: 2, ShowSize: true, DirDetail: true})
	assert.Regexp(t, regexp.MustCompile(`\(.*\) sub`), detailed)
}

func TestRenderShortDate(t *testing.T) {
	f := fileEntry("a.txt", 0)
	f.LastModified = time.Date(2025, 2, 3, 4, 5, 6, 0, time.Local)
	root := dirEntry("root", f)

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2, ShortDate: true})
	assert.Contains(t, out, "(2025-02-03) a.txt")
	assert.NotContains(t, out, "04:05:06")
}

func TestRenderQuotedNames(t *testing.T) {
	root := dirEntry("root", fileEntry("with space.txt", 0))
	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2, Quote: true})
	assert.Contains(t, out, `"with space.txt"`)
}

func TestRenderSymlinkTarget(t *testing.T) {
	link := fileEntry("link.txt", 0)
	link.isSymlink = true
	link.symTarget = "target/real.txt"
	root := dirEntry("root", link)

	out := plainRender(t, root, &Config{SortKey: "name", Indent: 2})
	assert.Contains(t, out, "link.txt -> target/real.txt")
}

func TestRenderConnectorColors(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	root := dirEntry("root", dirEntry("sub", fileEntry("inner.txt", 0)))
	out := renderTree(root, &Config{SortKey: "name", Indent: 2})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "\x1b[93;1m╰", "first level hangs off the root color")
	assert.Contains(t, lines[2], "\x1b[36m╰", "deeper levels take the directory color")
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0.0 B", humanSize(0))
	assert.Equal(t, "999 B", humanSize(999))
	assert.Equal(t, "1.5 K", humanSize(1_500))
	assert.Equal(t, " 42 K", humanSize(42_000))
	assert.Equal(t, "2.5 M", humanSize(2_500_000))
	assert.Equal(t, "3.0 G", humanSize(3_000_000_000))
}

func TestFormatSummaryCounts(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	cfg := &Config{}
	line := formatSummary(cfg, &SearchStats{}, TreeCounts{Dirs: 3, Files: 7}, 0)
	assert.Equal(t, "3 directories, 7 files", line)

	line = formatSummary(cfg, &SearchStats{}, TreeCounts{Dirs: 1, Files: 1}, 0)
	assert.Equal(t, "1 directory, 1 file", line)
}

func TestFormatSummarySearch(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	cfg := &Config{Pattern: regexp.MustCompile("x")}
	stats := &SearchStats{}
	stats.Matched.Add(1)
	stats.Searched.Add(9)
	assert.Equal(t, "1 match, 9 searched", formatSummary(cfg, stats, TreeCounts{}, 0))

	stats.Matched.Add(4)
	assert.Equal(t, "5 matches, 9 searched", formatSummary(cfg, stats, TreeCounts{}, 0))
}

func TestFormatSummaryElapsed(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	cfg := &Config{ShowElapsed: true}
	line := formatSummary(cfg, &SearchStats{}, TreeCounts{}, 123*time.Millisecond)
	assert.True(t, strings.HasSuffix(line, " (0.123s)"), line)
}

func TestStripANSI(t *testing.T) {
	colored := "\x1b[36mdir\x1b[0m plain \x1b[1;32mmatch\x1b[0m"
	assert.Equal(t, "dir plain match", stripANSI(colored))
	assert.Equal(t, "untouched", stripANSI("untouched"))
}

func TestRenderWindowAlignment(t *testing.T) {
	short := fileEntry("a.txt", 0)
	short.Window = strPtr("needle one")
	short.matchStart, short.matchEnd = 0, 6
	long := fileEntry("longer-name.txt", 0)
	long.Window = strPtr("needle two")
	long.matchStart, long.matchEnd = 0, 6
	root := dirEntry("root", short, long)

	cfg := &Config{SortKey: "name", Indent: 2, Pattern: regexp.MustCompile("needle"), Radius: 20}
	out := plainRender(t, root, cfg)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	// Both windows start in the same column.
	assert.Equal(t, strings.Index(lines[1], "needle one"), strings.Index(lines[2], "needle two"))
}
