package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cargo-preset/internal/interfaces"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment variable the wrapper reads.
const EnvPrefix = "CARGO_PRESET"

// DefaultInvocationLog is where invocations are recorded when enabled.
const DefaultInvocationLog = "/tmp/cargo-preset-log.txt"

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Manager implements the SettingsManager interface
type Manager struct {
	v *viper.Viper
}

// NewManager creates a new settings manager
func NewManager() *Manager {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// CARGO_PRESET_CARGO is the short spelling for the tool path
	_ = v.BindEnv("cargo_path", EnvPrefix+"_CARGO_PATH", EnvPrefix+"_CARGO")

	setDefaults(v)

	return &Manager{v: v}
}

// setDefaults sets the default settings values
func setDefaults(v *viper.Viper) {
	v.SetDefault("cargo_path", "")
	v.SetDefault("presets_file", "")
	v.SetDefault("strict", false)
	v.SetDefault("log_invocations", false)
	v.SetDefault("invocation_log", DefaultInvocationLog)
	v.SetDefault("log_level", "info")
}

// DefaultPath returns the settings file location, honouring CARGO_PRESET_CONFIG.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return expandPath(path), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cargo-preset", "config.toml"), nil
}

// Load loads settings from the specified path. A missing file means defaults.
func (m *Manager) Load(path string) (*interfaces.Settings, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	path = expandPath(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return m.getSettingsFromViper(), nil
	}

	m.v.SetConfigFile(path)

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return m.getSettingsFromViper(), nil
}

// Resolve applies precedence rules (env > config > defaults)
func (m *Manager) Resolve() (*interfaces.Settings, error) {
	return m.getSettingsFromViper(), nil
}

// Validate validates the settings values
func (m *Manager) Validate(settings *interfaces.Settings) error {
	if settings == nil {
		return fmt.Errorf("settings cannot be nil")
	}

	if !validLogLevels[settings.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be 'debug', 'info', 'warn' or 'error')", settings.LogLevel)
	}

	if settings.LogInvocations && strings.TrimSpace(settings.InvocationLog) == "" {
		return fmt.Errorf("invocation_log must be set when log_invocations is enabled")
	}

	return nil
}

// getSettingsFromViper converts viper configuration to a Settings struct
func (m *Manager) getSettingsFromViper() *interfaces.Settings {
	return &interfaces.Settings{
		CargoPath:      expandPath(m.v.GetString("cargo_path")),
		PresetsFile:    expandPath(m.v.GetString("presets_file")),
		Strict:         m.v.GetBool("strict"),
		LogInvocations: m.v.GetBool("log_invocations"),
		InvocationLog:  expandPath(m.v.GetString("invocation_log")),
		LogLevel:       strings.ToLower(strings.TrimSpace(m.v.GetString("log_level"))),
	}
}

// FromEnvironment returns settings built from the environment and defaults only.
func FromEnvironment() *interfaces.Settings {
	return NewManager().getSettingsFromViper()
}

// expandPath expands ~ to user home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path // Return original path if we can't get home dir
	}

	return filepath.Join(homeDir, path[2:])
}
