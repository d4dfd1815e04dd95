package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for different categories of failures
var (
	ErrPresetsMalformed = errors.New("presets error")
	ErrToolNotFound     = errors.New("cargo not found")
	ErrExecFailed       = errors.New("exec error")
)

// DispatchError represents a structured error with actionable guidance
type DispatchError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *DispatchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Guidance != "" {
		return msg + "\n\nSuggestion: " + e.Guidance
	}
	return msg
}

func (e *DispatchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Type}
	}
	return []error{e.Type, e.Cause}
}

// Error constructors with actionable guidance

func NewPresetsError(path string, cause error) *DispatchError {
	guidance := fmt.Sprintf("Fix the TOML syntax in '%s', or run with --preset pointing at a valid preset "+
		"once the file parses again.", path)

	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("Check the read permissions of '%s'.", path)
	} else if cause != nil && strings.Contains(cause.Error(), "is a directory") {
		guidance = fmt.Sprintf("'%s' is a directory; presets must be a TOML file.", path)
	}

	return &DispatchError{
		Type:     ErrPresetsMalformed,
		Message:  fmt.Sprintf("cannot use presets file '%s'", path),
		Guidance: guidance,
		Cause:    cause,
	}
}

func NewToolNotFoundError(name string, cause error) *DispatchError {
	return &DispatchError{
		Type:    ErrToolNotFound,
		Message: fmt.Sprintf("no '%s' executable other than this wrapper was found", name),
		Guidance: "Set CARGO_PRESET_CARGO to the real cargo binary, or add cargo_path to " +
			"~/.config/cargo-preset/config.toml.",
		Cause: cause,
	}
}

func NewExecError(path string, cause error) *DispatchError {
	guidance := fmt.Sprintf("Check that '%s' exists and is executable.", path)
	if cause != nil && strings.Contains(cause.Error(), "permission") {
		guidance = fmt.Sprintf("'%s' is not executable by the current user.", path)
	}

	return &DispatchError{
		Type:     ErrExecFailed,
		Message:  fmt.Sprintf("error execing cargo '%s'", path),
		Guidance: guidance,
		Cause:    cause,
	}
}

// IsRecoverableError reports whether cargo can still run unmodified
func IsRecoverableError(err error) bool {
	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		return false
	}

	switch dispatchErr.Type {
	case ErrPresetsMalformed:
		return true
	default:
		return false
	}
}
