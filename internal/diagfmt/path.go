package diagfmt

import (
	"os"
	"path/filepath"
	"strings"

	"xfmt/internal/source"
)

// longPath is the length from which auto mode shortens absolute paths.
const longPath = 40

func displayPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative:
		if rel, err := source.RelativePath(path, base(baseDir)); err == nil {
			return rel
		}
		return path
	case PathModeBasename:
		return source.BaseName(path)
	}

	// auto
	if strings.HasPrefix(path, "<") || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := source.RelativePath(path, base(baseDir)); err == nil && !filepath.IsAbs(rel) {
		return rel
	}
	if len(path) < longPath {
		return path
	}
	return source.BaseName(path)
}

func base(dir string) string {
	if dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
