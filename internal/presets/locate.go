package presets

import (
	"fmt"
	"os"
	"path/filepath"
)

// RelativePath is where a presets file lives relative to a project root.
var RelativePath = filepath.Join(".cargo", "presets.toml")

// Locate searches dir and then each of its ancestors for a presets file.
// It returns the first match, or false once the filesystem root is reached.
func Locate(dir string) (string, bool) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		candidate := filepath.Join(abs, RelativePath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", false
		}
		abs = parent
	}
}

// LocateFromWorkingDir runs Locate from the process working directory.
func LocateFromWorkingDir() (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}
	path, ok := Locate(cwd)
	return path, ok, nil
}
