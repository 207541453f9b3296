package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// pickRootInteractive walks the current directory and offers every
// subdirectory in a fuzzy finder so the user can pick the traversal root.
// Returns an empty string without error when the user aborts.
func pickRootInteractive(showAll bool) (string, error) {
	candidates := []string{"."}

	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable branches are simply not offered
		}
		if path == "." || !d.IsDir() {
			return nil
		}
		if !showAll && isHidden(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, filepath.ToSlash(path))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("error scanning for directories: %w", err)
	}

	idx, err := fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select the directory to crawl. Enter to confirm, Esc to abort."
			}
			info, statErr := os.Stat(candidates[i])
			if statErr != nil {
				return fmt.Sprintf("Path: %s\nError getting info: %v", candidates[i], statErr)
			}
			return fmt.Sprintf("Path: %s\nModified: %s", candidates[i], info.ModTime().Format("2006-01-02 15:04:05"))
		}),
	)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return "", nil
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
