package interfaces

// Settings configures the wrapper itself, not the project being built.
type Settings struct {
	CargoPath      string `toml:"cargo_path"`
	PresetsFile    string `toml:"presets_file"`
	Strict         bool   `toml:"strict"`
	LogInvocations bool   `toml:"log_invocations"`
	InvocationLog  string `toml:"invocation_log"`
	LogLevel       string `toml:"log_level"`
}

// SettingsManager handles settings loading and resolution
type SettingsManager interface {
	// Load loads settings from the specified path
	Load(path string) (*Settings, error)

	// Resolve applies precedence rules (env > config > defaults)
	Resolve() (*Settings, error)

	// Validate validates the settings values
	Validate(settings *Settings) error
}
