package app

import (
	"fmt"

	"cargo-preset/internal/config"
	"cargo-preset/internal/interfaces"
	"cargo-preset/internal/logging"
	"cargo-preset/internal/orchestrator"
	"cargo-preset/pkg/models"
	"go.uber.org/zap"
)

// Run executes the main application logic. It only returns when cargo could
// not be started, or when strict mode refuses a broken presets file.
func Run(request *models.InvocationRequest, defaultTool string) error {
	settings, problems := loadSettings(config.NewManager(), request.ConfigPath)

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, problem := range problems {
		logger.Warn("ignoring cargo-preset settings", zap.Error(problem))
	}

	orch := orchestrator.New(settings, logger)
	orch.SetDefaultTool(defaultTool)

	return orch.Dispatch(request)
}

// loadSettings never fails: a broken settings file must not stop cargo from
// running, so problems are returned for logging and defaults are used.
func loadSettings(manager interfaces.SettingsManager, path string) (*interfaces.Settings, []error) {
	var problems []error

	if _, err := manager.Load(path); err != nil {
		problems = append(problems, err)
		return fallbackSettings(manager), problems
	}

	settings, err := manager.Resolve()
	if err != nil {
		problems = append(problems, err)
		return fallbackSettings(manager), problems
	}

	if err := manager.Validate(settings); err != nil {
		problems = append(problems, err)
		return fallbackSettings(manager), problems
	}

	return settings, problems
}

func fallbackSettings(manager interfaces.SettingsManager) *interfaces.Settings {
	settings := config.FromEnvironment()
	if err := manager.Validate(settings); err != nil {
		settings.LogLevel = "info"
		settings.LogInvocations = false
	}
	return settings
}
