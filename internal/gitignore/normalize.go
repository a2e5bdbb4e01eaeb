package gitignore

import (
	"path/filepath"
	"strings"
)

// NormalizePath lexically resolves a path to an absolute, clean,
// slash-separated form. Duplicate separators and "."/".." elements are
// removed; symbolic links are never resolved and the filesystem is never
// consulted about the path itself.
func NormalizePath(path string) string {
	native := filepath.FromSlash(path)
	abs, err := filepath.Abs(native)
	if err != nil {
		abs = filepath.Clean(native)
	}
	return filepath.ToSlash(abs)
}

// relativeTo returns path relative to base, both already normalized.
// Reports false when path does not lie under base.
func relativeTo(path, base string) (string, bool) {
	if path == base {
		return ".", true
	}
	prefix := base + "/"
	if base == "/" {
		prefix = "/"
	}
	if strings.HasPrefix(path, prefix) {
		return path[len(prefix):], true
	}
	return "", false
}
