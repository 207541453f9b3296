package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHidden(t *testing.T) {
	assert.True(t, isHidden(".git"))
	assert.True(t, isHidden(".env"))
	assert.False(t, isHidden("main.go"))
	assert.False(t, isHidden("."))
	assert.False(t, isHidden(".."))
}

func TestMatchesAnyPattern(t *testing.T) {
	// Glob patterns match the base name.
	assert.True(t, matchesAnyPattern("main.go", "src/main.go", []string{"*.go"}, false))
	assert.False(t, matchesAnyPattern("main.rs", "src/main.rs", []string{"*.go"}, false))

	// Literal patterns match the exact name or a path substring.
	assert.True(t, matchesAnyPattern("main.go", "src/main.go", []string{"main.go"}, false))
	assert.True(t, matchesAnyPattern("deep.go", "vendor/pkg/deep.go", []string{"vendor"}, false))
	assert.False(t, matchesAnyPattern("vendored.go", "src/vendored.go", []string{"node_modules"}, false))

	// Case sensitivity follows the flag.
	assert.False(t, matchesAnyPattern("README.md", "README.md", []string{"readme.md"}, false))
	assert.True(t, matchesAnyPattern("README.md", "README.md", []string{"readme.md"}, true))
	assert.True(t, matchesAnyPattern("NOTES.TXT", "NOTES.TXT", []string{"*.txt"}, true))

	// A malformed glob never matches and never errors.
	assert.False(t, matchesAnyPattern("main.go", "main.go", []string{"[invalid"}, false))

	assert.False(t, matchesAnyPattern("anything", "anything", nil, false))
}

func TestIgnoreTakesPrecedenceOverInclude(t *testing.T) {
	engine := newFilterEngine(&Config{
		ShowAll:         true,
		IgnorePatterns:  []string{"*.go"},
		IncludePatterns: []string{"main.go"},
	})
	assert.False(t, engine.isVisible("src/main.go", "main.go", false, &FilterSet{}))
}

func TestIncludeAppliesToFilesOnly(t *testing.T) {
	engine := newFilterEngine(&Config{
		ShowAll:         true,
		IncludePatterns: []string{"*.md"},
	})
	// Directories stay traversable so deeper matching files remain reachable.
	assert.True(t, engine.isVisible("docs", "docs", true, &FilterSet{}))
	assert.True(t, engine.isVisible("docs/guide.md", "guide.md", false, &FilterSet{}))
	assert.False(t, engine.isVisible("docs/guide.go", "guide.go", false, &FilterSet{}))
}

func TestHiddenEntriesFilteredUnlessShowAll(t *testing.T) {
	hidden := newFilterEngine(&Config{})
	assert.False(t, hidden.isVisible(".cache", ".cache", true, &FilterSet{}))
	assert.False(t, hidden.isVisible(".env", ".env", false, &FilterSet{}))

	all := newFilterEngine(&Config{ShowAll: true})
	assert.True(t, all.isVisible(".cache", ".cache", true, &FilterSet{}))
	assert.True(t, all.isVisible(".env", ".env", false, &FilterSet{}))
}

func TestFilterSetScopedToDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644))

	cfg := &Config{UseIgnoreFiles: true}
	base := &FilterSet{}
	fset := base.extend(dir, cfg)

	assert.True(t, fset.ignored(filepath.Join(dir, "debug.log"), false))
	assert.False(t, fset.ignored(filepath.Join(dir, "main.go"), false))

	// The original set is untouched and an unconfigured dir adds nothing.
	assert.Empty(t, base.matchers)
	assert.Same(t, fset, fset.extend(t.TempDir(), cfg))
}

func TestFilterSetDisabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*\n"), 0o644))

	cfg := &Config{UseIgnoreFiles: false}
	fset := (&FilterSet{}).extend(dir, cfg)
	assert.False(t, fset.ignored(filepath.Join(dir, "anything"), false))
}
