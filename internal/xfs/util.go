package xfs

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces a leading tilde (~) with the user's home directory.
// Paths like "~name" (another user's home) are returned unchanged.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
