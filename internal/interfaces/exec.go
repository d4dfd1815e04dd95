package interfaces

// Executor replaces the running process with another program.
type Executor interface {
	// Exec only returns when the replacement failed
	Exec(path string, argv []string, env []string) error
}

// InvocationRecorder keeps a trace of the command lines handed to cargo
type InvocationRecorder interface {
	Record(args []string) error
}
