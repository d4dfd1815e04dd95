package orchestrator

import (
	"fmt"
	"os"
	"strings"

	"cargo-preset/internal/interfaces"
	"golang.org/x/sys/unix"
)

// Executor replaces the current process using execve(2)
type Executor struct{}

// NewExecutor creates the production executor
func NewExecutor() interfaces.Executor {
	return &Executor{}
}

// Exec hands the process over to path; it returns only on failure
func (e *Executor) Exec(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}

// FileRecorder appends each invocation as one line to a log file
type FileRecorder struct {
	Path string
}

// NewFileRecorder creates a recorder writing to path
func NewFileRecorder(path string) interfaces.InvocationRecorder {
	return &FileRecorder{Path: path}
}

// Record appends args, space separated and quoted, to the log file
func (r *FileRecorder) Record(args []string) error {
	f, err := os.OpenFile(r.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open invocation log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%q\n", strings.Join(args, " ")); err != nil {
		return fmt.Errorf("write invocation log: %w", err)
	}
	return nil
}
