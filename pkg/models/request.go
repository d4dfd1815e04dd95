package models

import "os"

// InvocationRequest represents one wrapped cargo invocation
type InvocationRequest struct {
	// Args excludes the program name; Args[0] is the cargo sub-command.
	Args       []string
	WorkingDir string
	ConfigPath string
	Env        []string
}

// NewInvocationRequest creates a request for the current process
func NewInvocationRequest(args []string) *InvocationRequest {
	cwd, _ := os.Getwd()
	return &InvocationRequest{
		Args:       args,
		WorkingDir: cwd,
		Env:        os.Environ(),
	}
}
