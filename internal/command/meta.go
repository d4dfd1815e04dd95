// Package command knows which cargo sub-commands accept preset arguments and
// how to splice those arguments into a command line.
package command

// Meta describes the argument categories a cargo sub-command accepts.
type Meta struct {
	AcceptsTarget   bool
	AcceptsFeatures bool
}

// NeedsConfig reports whether a preset could change the command at all.
func (m Meta) NeedsConfig() bool {
	return m.AcceptsTarget || m.AcceptsFeatures
}

// Classify returns the Meta for a sub-command name, including its aliases.
func Classify(name string) Meta {
	switch name {
	case "check", "c", "build", "b", "test", "t", "run", "r", "rustc", "clippy":
		return Meta{AcceptsTarget: true, AcceptsFeatures: true}
	case "metadata":
		return Meta{AcceptsFeatures: true}
	default:
		return Meta{}
	}
}
