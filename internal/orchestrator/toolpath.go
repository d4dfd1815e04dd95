package orchestrator

import (
	"os"
	"path/filepath"
)

// findTool looks name up on the search path, skipping the running executable
// so the wrapper can itself be installed as "cargo".
func findTool(name, searchPath string, self os.FileInfo) (string, bool) {
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
			continue
		}
		if self != nil && os.SameFile(info, self) {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			candidate = abs
		}
		return candidate, true
	}
	return "", false
}

// selfInfo describes the running executable, or nil when it cannot be found.
func selfInfo() os.FileInfo {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	info, err := os.Stat(exe)
	if err != nil {
		return nil
	}
	return info
}
