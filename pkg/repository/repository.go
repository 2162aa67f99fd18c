// Package repository enumerates installed themes. A theme is any directory
// directly below the themes root; its directory name is its identity,
// compared case-insensitively.
package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Theme is an installed theme directory.
type Theme struct {
	Path string
	Name string
}

// List returns the themes installed under themesDir sorted by name,
// ignoring case. A missing directory yields an empty list.
func List(themesDir string) ([]Theme, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Theme{}, nil
		}
		return nil, fmt.Errorf("reading themes directory: %w", err)
	}

	themes := make([]Theme, 0, len(entries))
	for _, e := range entries {
		path := filepath.Join(themesDir, e.Name())
		if !rpIsDir(e, path) {
			continue
		}
		themes = append(themes, Theme{Path: path, Name: e.Name()})
	}

	sort.SliceStable(themes, func(i, j int) bool {
		a, b := strings.ToLower(themes[i].Name), strings.ToLower(themes[j].Name)
		if a != b {
			return a < b
		}
		return themes[i].Name < themes[j].Name
	})
	return themes, nil
}

// Find looks up name in themes, ignoring case.
func Find(themes []Theme, name string) (Theme, bool) {
	for _, th := range themes {
		if strings.EqualFold(th.Name, name) {
			return th, true
		}
	}
	return Theme{}, false
}

// rpIsDir reports whether the entry is a directory, following symlinks.
func rpIsDir(e os.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
