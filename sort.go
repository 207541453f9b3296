package main

import (
	"sort"
	"strings"
)

// typeRank orders directories before files for the "type" sort key.
func typeRank(e *Entry) int {
	if e.IsDir() {
		return 0
	}
	return 1
}

// comparator returns the primary comparison for a sort key. The key set is
// closed, so this is a plain switch over pure functions rather than any
// polymorphic dispatch.
func comparator(key string) func(a, b *Entry) int {
	switch key {
	case "date":
		return func(a, b *Entry) int {
			switch {
			case a.LastModified.Before(b.LastModified):
				return -1
			case a.LastModified.After(b.LastModified):
				return 1
			}
			return 0
		}
	case "size":
		return func(a, b *Entry) int {
			switch {
			case a.Size < b.Size:
				return -1
			case a.Size > b.Size:
				return 1
			}
			return 0
		}
	case "type":
		return func(a, b *Entry) int { return typeRank(a) - typeRank(b) }
	default: // name
		return func(a, b *Entry) int { return strings.Compare(a.Name, b.Name) }
	}
}

// sortTree orders siblings at every directory level, depth-first. Reverse
// flips the primary key comparison only: the sort is stable, so equal keys
// keep their original relative order, and the type key's name tie-break is
// unaffected by direction.
func sortTree(e *Entry, cfg *Config) {
	cmp := comparator(cfg.SortKey)
	sort.SliceStable(e.Children, func(i, j int) bool {
		c := cmp(e.Children[i], e.Children[j])
		if cfg.Reverse {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		if cfg.SortKey == "type" {
			return strings.Compare(e.Children[i].Name, e.Children[j].Name) < 0
		}
		return false
	})
	for _, child := range e.Children {
		if child.IsDir() {
			sortTree(child, cfg)
		}
	}
}
