package diagfmt

import (
	"path/filepath"
	"strings"
)

// autoPathLimit is the longest absolute path PathModeAuto keeps whole.
const autoPathLimit = 40

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(filepath.FromSlash(path)); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative:
		if baseDir == "" {
			return path
		}
		rel, err := filepath.Rel(filepath.FromSlash(baseDir), filepath.FromSlash(path))
		if err != nil || strings.HasPrefix(rel, "..") {
			return path
		}
		return filepath.ToSlash(rel)
	case PathModeBasename:
		return filepath.Base(path)
	default:
		if filepath.IsAbs(filepath.FromSlash(path)) && len(path) > autoPathLimit {
			return filepath.Base(path)
		}
		return path
	}
}
