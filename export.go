package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// exportEntry is the structured export schema: one object per Entry,
// recursively. Timestamps are formatted, never epoch values, and the window
// is null for entries without a match.
type exportEntry struct {
	Name         string         `json:"name"`
	EntryType    EntryType      `json:"entry_type"`
	FullPath     string         `json:"full_path"`
	LastModified string         `json:"last_modified"`
	Size         int64          `json:"size"`
	Window       *string        `json:"window"`
	Children     []*exportEntry `json:"children"`
}

// toExport converts a finished tree into the export schema. Children order
// is preserved as sorted.
func toExport(e *Entry) *exportEntry {
	fullPath := e.Path
	if abs, err := filepath.Abs(filepath.FromSlash(e.Path)); err == nil {
		fullPath = filepath.ToSlash(abs)
	}
	out := &exportEntry{
		Name:         e.Name,
		EntryType:    e.Type,
		FullPath:     fullPath,
		LastModified: e.LastModified.Format(exportTimeLayout),
		Size:         e.Size,
		Window:       e.Window,
		Children:     make([]*exportEntry, 0, len(e.Children)),
	}
	for _, child := range e.Children {
		out.Children = append(out.Children, toExport(child))
	}
	return out
}

// fromExport rebuilds an Entry tree from a deserialized export, used to
// verify that the export round-trips.
func fromExport(x *exportEntry) *Entry {
	e := &Entry{
		Name:   x.Name,
		Path:   x.FullPath,
		Type:   x.EntryType,
		Size:   x.Size,
		Window: x.Window,
	}
	if t, err := time.ParseInLocation(exportTimeLayout, x.LastModified, time.Local); err == nil {
		e.LastModified = t
	}
	for _, child := range x.Children {
		e.Children = append(e.Children, fromExport(child))
	}
	return e
}

// writeJSON writes the structured export to path. A failure here is fatal
// only for the export step; the caller still renders the in-memory tree.
func writeJSON(root *Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toExport(root)); err != nil {
		return fmt.Errorf("writing export to %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing export to %s: %w", path, err)
	}
	return nil
}
