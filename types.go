package main

import (
	"sync/atomic"
	"time"
)

// EntryType differentiates Directory and File nodes in the result tree.
type EntryType string

const (
	EntryFile      EntryType = "File"
	EntryDirectory EntryType = "Directory"
)

// Entry is one node in the result tree. Each directory exclusively owns its
// Children slice; there are no parent back-pointers.
type Entry struct {
	Name         string
	Path         string // path from the root argument, forward slashes
	Type         EntryType
	Size         int64
	LastModified time.Time
	Window       *string // snippet around the first match; nil when no match
	Children     []*Entry

	// Presentation state carried from walk and search, consumed by render.go.
	isSymlink  bool
	symTarget  string
	dropped    int // files omitted by the per-directory cap
	matchStart int // match offsets within Window
	matchEnd   int
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Type == EntryDirectory
}

// SearchStats holds the shared counters updated by concurrent scan workers.
// Matched counts files with at least one hit; Searched counts files whose
// content was actually scanned (binary files are skipped and not counted).
type SearchStats struct {
	Matched  atomic.Int64
	Searched atomic.Int64
}

// TreeCounts holds the directory and file totals for the summary line.
// The root directory itself is not counted.
type TreeCounts struct {
	Dirs  int
	Files int
}
