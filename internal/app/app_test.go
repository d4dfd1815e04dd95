package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cargo-preset/internal/config"
	"cargo-preset/internal/interfaces"
)

type stubSettingsManager struct {
	loaded     string
	resolveErr error
	settings   *interfaces.Settings
}

func (m *stubSettingsManager) Load(path string) (*interfaces.Settings, error) {
	m.loaded = path
	return m.settings, nil
}

func (m *stubSettingsManager) Resolve() (*interfaces.Settings, error) {
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	return m.settings, nil
}

func (m *stubSettingsManager) Validate(settings *interfaces.Settings) error {
	return config.NewManager().Validate(settings)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	settings, problems := loadSettings(config.NewManager(), filepath.Join(t.TempDir(), "none.toml"))
	if len(problems) != 0 {
		t.Fatalf("loadSettings problems = %v, want none", problems)
	}
	if settings.LogLevel != "info" || settings.InvocationLog != config.DefaultInvocationLog {
		t.Errorf("loadSettings = %+v, want defaults", settings)
	}
}

func TestLoadSettings_BrokenFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = [`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("CARGO_PRESET_CARGO", "/env/cargo")

	settings, problems := loadSettings(config.NewManager(), path)
	if len(problems) != 1 {
		t.Fatalf("loadSettings problems = %v, want one", problems)
	}
	if settings.CargoPath != "/env/cargo" {
		t.Errorf("CargoPath = %q, want environment value kept", settings.CargoPath)
	}
}

func TestLoadSettings_InvalidValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = "chatty"`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	settings, problems := loadSettings(config.NewManager(), path)
	if len(problems) != 1 {
		t.Fatalf("loadSettings problems = %v, want one", problems)
	}
	if settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", settings.LogLevel)
	}
}

func TestLoadSettings_InvalidEnvironmentIsRepaired(t *testing.T) {
	t.Setenv("CARGO_PRESET_LOG_LEVEL", "chatty")

	settings, problems := loadSettings(config.NewManager(), filepath.Join(t.TempDir(), "none.toml"))
	if len(problems) != 1 {
		t.Fatalf("loadSettings problems = %v, want one", problems)
	}
	if settings.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", settings.LogLevel)
	}
}

func TestLoadSettings_UsesManager(t *testing.T) {
	manager := &stubSettingsManager{settings: &interfaces.Settings{
		CargoPath:     "/managed/cargo",
		LogLevel:      "warn",
		InvocationLog: config.DefaultInvocationLog,
	}}

	settings, problems := loadSettings(manager, "/etc/cargo-preset.toml")
	if len(problems) != 0 {
		t.Fatalf("loadSettings problems = %v, want none", problems)
	}
	if manager.loaded != "/etc/cargo-preset.toml" {
		t.Errorf("Load called with %q, want request path", manager.loaded)
	}
	if settings.CargoPath != "/managed/cargo" || settings.LogLevel != "warn" {
		t.Errorf("loadSettings = %+v, want manager settings", settings)
	}
}

func TestLoadSettings_ResolveErrorFallsBack(t *testing.T) {
	t.Setenv("CARGO_PRESET_CARGO", "/env/cargo")
	manager := &stubSettingsManager{resolveErr: errors.New("resolve failed")}

	settings, problems := loadSettings(manager, "")
	if len(problems) != 1 {
		t.Fatalf("loadSettings problems = %v, want one", problems)
	}
	if settings.CargoPath != "/env/cargo" || settings.LogLevel != "info" {
		t.Errorf("loadSettings = %+v, want environment fallback", settings)
	}
}
