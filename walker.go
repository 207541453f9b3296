package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Walker performs the sequential, depth-first traversal phase. It owns the
// set of canonical directory identities on the current descent path, used
// to break symlink cycles when link-following is enabled.
type Walker struct {
	cfg    *Config
	filter *FilterEngine
	onPath map[string]bool
}

func newWalker(cfg *Config) *Walker {
	return &Walker{
		cfg:    cfg,
		filter: newFilterEngine(cfg),
		onPath: make(map[string]bool),
	}
}

// Walk traverses the configured root and returns the unsorted, unsearched
// entry tree. A root that cannot be read is a fatal error; failures on any
// deeper entry are reported to stderr and skipped.
func (w *Walker) Walk() (*Entry, error) {
	info, err := os.Stat(w.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("reading root directory: %w", err)
	}
	root := &Entry{
		Name:         w.cfg.Root,
		Path:         w.cfg.Root,
		Type:         EntryDirectory,
		LastModified: info.ModTime(),
	}
	if w.cfg.FollowLinks {
		if canonical, err := filepath.EvalSymlinks(w.cfg.Root); err == nil {
			w.onPath[canonical] = true
		}
	}
	if err := w.walkDir(root, 0, &FilterSet{}); err != nil {
		return nil, fmt.Errorf("reading root directory: %w", err)
	}
	return root, nil
}

// walkDir reads one directory and appends the visible children to parent,
// recursing while the depth bound allows. The error return is only
// propagated for the root; recursive callers absorb it as a diagnostic.
func (w *Walker) walkDir(parent *Entry, depth int, fset *FilterSet) error {
	entries, err := os.ReadDir(filepath.FromSlash(parent.Path))
	if err != nil {
		return err
	}
	fset = fset.extend(parent.Path, w.cfg)

	filesKept := 0
	for _, de := range entries {
		name := de.Name()
		path := parent.Path + "/" + name
		isSym := de.Type()&fs.ModeSymlink != 0

		isDir := de.IsDir()
		if isSym {
			// A symlink counts as a directory when its target is one.
			if target, err := os.Stat(path); err == nil {
				isDir = target.IsDir()
			}
		}

		if !w.filter.isVisible(path, name, isDir, fset) {
			continue
		}

		info, err := de.Info()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read metadata for %s: %v\n", path, err)
			continue
		}

		child := &Entry{
			Name:         name,
			Path:         path,
			LastModified: info.ModTime(),
			isSymlink:    isSym,
		}
		if isSym {
			if target, err := os.Readlink(path); err == nil {
				child.symTarget = filepath.ToSlash(target)
			} else {
				child.symTarget = "[unable to resolve]"
			}
		}

		if isDir {
			child.Type = EntryDirectory
			parent.Children = append(parent.Children, child)
			if w.descendible(depth) && (!isSym || w.cfg.FollowLinks) {
				if err := w.enter(child, depth+1, fset, isSym); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not read directory %s: %v\n", path, err)
				}
			}
			continue
		}

		child.Type = EntryFile
		child.Size = info.Size()
		if w.cfg.MaxFiles > 0 && filesKept >= w.cfg.MaxFiles {
			parent.dropped++
			continue
		}
		filesKept++
		parent.Children = append(parent.Children, child)
	}
	return nil
}

// enter descends into a child directory, tracking the canonical identity of
// followed links so that a symlink cycle is reported once and broken rather
// than looped.
func (w *Walker) enter(child *Entry, depth int, fset *FilterSet, viaSymlink bool) error {
	if w.cfg.FollowLinks {
		canonical, err := filepath.EvalSymlinks(filepath.FromSlash(child.Path))
		if err != nil {
			return err
		}
		if w.onPath[canonical] {
			if viaSymlink {
				fmt.Fprintf(os.Stderr, "Warning: symlink cycle at %s, not descending\n", child.Path)
			}
			return nil
		}
		w.onPath[canonical] = true
		defer delete(w.onPath, canonical)
	}
	return w.walkDir(child, depth, fset)
}

// descendible reports whether children discovered at the given depth may be
// traversed. Depth starts at 0 for the root's direct children, so a depth
// limit of 0 lists the root's entries without entering any subdirectory.
func (w *Walker) descendible(depth int) bool {
	return w.cfg.MaxDepth < 0 || depth+1 <= w.cfg.MaxDepth
}
