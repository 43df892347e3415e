package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrAmbiguousProject is returned when a directory holds several .csproj files.
var ErrAmbiguousProject = errors.New("several .csproj files; pass one explicitly")

// FindProjectFile walks up from startDir to locate the nearest .csproj.
// A startDir naming a .csproj file is returned as is.
func FindProjectFile(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		if !isProjectFile(dir) {
			return "", false, fmt.Errorf("%s: not a .csproj file", dir)
		}
		return dir, true, nil
	}
	for {
		entries, err := os.ReadDir(dir)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to read %q: %w", dir, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && isProjectFile(e.Name()) {
				found = append(found, filepath.Join(dir, e.Name()))
			}
		}
		switch len(found) {
		case 0:
		case 1:
			return found[0], true, nil
		default:
			sort.Strings(found)
			return "", false, fmt.Errorf("%s: %w: %s", dir, ErrAmbiguousProject, strings.Join(found, ", "))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func isProjectFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csproj")
}
