package shared

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultOutputDirName is the folder created beside the executable when no directory is given.
const DefaultOutputDirName = "playlists"

var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// ExecutableDir returns the directory holding the running binary.
//
// Falls back to the working directory when the executable path cannot be resolved.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return filepath.Dir(exe)
}

// DefaultOutputDir returns "playlists/" beside the executable, with a trailing separator.
func DefaultOutputDir() string {
	return filepath.Join(ExecutableDir(), DefaultOutputDirName) + string(filepath.Separator)
}

// DefaultConfigPath returns the config file path beside the executable.
func DefaultConfigPath() string {
	return filepath.Join(ExecutableDir(), ConfigFileName)
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// SanitizeFileName replaces characters that are invalid in file names with underscores
// and trims trailing dots and spaces.
func SanitizeFileName(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	return strings.TrimRight(name, ". ")
}
