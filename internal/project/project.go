// Package project locates the project root for a file being formatted.
// The root anchors subprocess working directories, lockfile detection,
// and the local configuration tier.
package project

import (
	"os"
	"path/filepath"
)

// rootMarkers are checked in every directory while walking upward.
// Ordered roughly by how strongly each marks a JavaScript project root.
var rootMarkers = []string{
	"package.json",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"bun.lock",
	".prettierfmt.json",
	".git",
}

// FindRoot walks from start upward and returns the first directory
// containing a root marker. Falls back to start itself when no marker
// is found. start may be a file; its directory is used.
func FindRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for cur := dir; ; {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(cur, marker)); err == nil {
				return cur
			}
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return dir
		}
		cur = parent
	}
}
