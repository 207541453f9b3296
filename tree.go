package main

import "time"

// collectFiles gathers every File entry in depth-first order. The returned
// slice is the work list for the search phase: each element is the
// exclusively owned result slot for one scan task.
func collectFiles(root *Entry) []*Entry {
	var files []*Entry
	var visit func(*Entry)
	visit = func(e *Entry) {
		for _, child := range e.Children {
			if child.IsDir() {
				visit(child)
			} else {
				files = append(files, child)
			}
		}
	}
	visit(root)
	return files
}

// prune removes, in search mode, every file without a match window and
// every directory whose subtree contains no matching file. The root is
// always retained, even when empty, so a run can still report "0 matches".
func prune(root *Entry) {
	pruneChildren(root)
}

// pruneChildren trims e's subtree and reports whether any matching file
// survives beneath e.
func pruneChildren(e *Entry) bool {
	kept := e.Children[:0]
	hasMatch := false
	for _, child := range e.Children {
		if child.IsDir() {
			if pruneChildren(child) {
				kept = append(kept, child)
				hasMatch = true
			}
			continue
		}
		if child.Window != nil {
			kept = append(kept, child)
			hasMatch = true
		}
	}
	e.Children = kept
	e.dropped = 0 // truncation markers are meaningless once files are pruned
	return hasMatch
}

// aggregate recomputes every directory's size and last-modified time as a
// single bottom-up pass over the retained entries. It must run after
// pruning so the aggregates reflect only what the report will contain.
func aggregate(e *Entry) (int64, time.Time) {
	if !e.IsDir() {
		return e.Size, e.LastModified
	}
	var total int64
	latest := e.LastModified
	for _, child := range e.Children {
		size, modified := aggregate(child)
		total += size
		if modified.After(latest) {
			latest = modified
		}
	}
	e.Size = total
	e.LastModified = latest
	return total, latest
}

// countTree tallies directories and files for the summary line, excluding
// the root itself.
func countTree(root *Entry) TreeCounts {
	var counts TreeCounts
	var visit func(*Entry)
	visit = func(e *Entry) {
		for _, child := range e.Children {
			if child.IsDir() {
				counts.Dirs++
				visit(child)
			} else {
				counts.Files++
			}
		}
	}
	visit(root)
	return counts
}
