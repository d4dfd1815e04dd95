package orchestrator

import (
	"errors"
	"os"
	"strings"

	"cargo-preset/internal/command"
	"cargo-preset/internal/interfaces"
	"cargo-preset/internal/presets"
	"cargo-preset/pkg/models"
	"go.uber.org/zap"
)

// ToolName is the program the wrapper stands in front of.
const ToolName = "cargo"

// Orchestrator coordinates preset lookup, argument injection and exec
type Orchestrator struct {
	settings    *interfaces.Settings
	logger      *zap.Logger
	executor    interfaces.Executor
	recorder    interfaces.InvocationRecorder
	defaultTool string
}

// New creates an orchestrator for the given settings
func New(settings *interfaces.Settings, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		settings: settings,
		logger:   logger,
		executor: NewExecutor(),
	}
	if settings.LogInvocations {
		o.recorder = NewFileRecorder(settings.InvocationLog)
	}
	return o
}

// SetExecutor replaces the process executor
func (o *Orchestrator) SetExecutor(executor interfaces.Executor) {
	o.executor = executor
}

// SetRecorder replaces the invocation recorder; nil disables recording
func (o *Orchestrator) SetRecorder(recorder interfaces.InvocationRecorder) {
	o.recorder = recorder
}

// SetDefaultTool sets the cargo path used when the settings name none
func (o *Orchestrator) SetDefaultTool(path string) {
	o.defaultTool = path
}

// Dispatch prepares the arguments and replaces the process with cargo.
// On success it never returns.
func (o *Orchestrator) Dispatch(request *models.InvocationRequest) error {
	args, err := o.Prepare(request)
	if err != nil {
		if o.settings.Strict || !IsRecoverableError(err) {
			return err
		}
		o.logger.Error("running cargo without presets", zap.Error(err))
	}

	env := request.Env
	if env == nil {
		env = os.Environ()
	}

	tool, err := o.ResolveTool(env)
	if err != nil {
		return err
	}

	if o.recorder != nil {
		if err := o.recorder.Record(args); err != nil {
			o.logger.Warn("could not record invocation", zap.Error(err))
		}
	}

	o.logger.Debug("exec", zap.String("tool", tool), zap.Strings("args", args))
	argv := append([]string{tool}, args...)
	if err := o.executor.Exec(tool, argv, env); err != nil {
		return NewExecError(tool, err)
	}
	return nil
}

// Prepare strips --preset and injects the selected preset's arguments.
// When it returns an error the returned arguments are still safe to run.
func (o *Orchestrator) Prepare(request *models.InvocationRequest) ([]string, error) {
	args, override, hasOverride := command.StripPresetArg(request.Args)
	if len(args) == 0 {
		return args, nil
	}

	meta := command.Classify(args[0])
	if !meta.NeedsConfig() {
		return args, nil
	}

	set, found, err := o.loadPresets(request.WorkingDir)
	if err != nil {
		return args, err
	}
	if !found {
		if hasOverride {
			o.logger.Warn("preset requested but no presets file found", zap.String("preset", override))
		}
		return args, nil
	}

	name, preset, err := presets.Resolve(set, override, hasOverride)
	if err != nil {
		o.logger.Warn("running cargo without a preset", zap.Error(err))
		return args, nil
	}
	if preset == nil {
		o.logger.Debug("no preset selected")
		return args, nil
	}

	o.logger.Info("using preset", zap.String("preset", name))
	for _, feature := range preset.Features {
		o.logger.Debug("injecting feature", zap.String("feature", feature))
	}
	return command.Inject(meta, *preset, args), nil
}

// loadPresets finds and parses the presets file. A missing file is not an
// error; unreadable or malformed content is.
func (o *Orchestrator) loadPresets(workingDir string) (presets.Set, bool, error) {
	path, found := o.settings.PresetsFile, true
	if path == "" {
		path, found = o.locate(workingDir)
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		o.logger.Warn("configured presets file does not exist", zap.String("path", path))
		found = false
	}
	if !found {
		o.logger.Debug("no presets file found", zap.String("dir", workingDir))
		return presets.Set{}, false, nil
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return presets.Set{}, false, NewPresetsError(path, err)
	}

	set, diags, err := presets.Parse(string(text))
	if err != nil {
		return presets.Set{}, false, NewPresetsError(path, err)
	}

	for _, d := range diags {
		if d.Severity == presets.SeverityInvalid || d.Key == presets.PresetsKey {
			o.logger.Warn(d.String(), zap.String("path", path))
		} else {
			o.logger.Debug(d.String(), zap.String("path", path))
		}
	}
	return set, true, nil
}

func (o *Orchestrator) locate(workingDir string) (string, bool) {
	if workingDir != "" {
		return presets.Locate(workingDir)
	}
	path, found, err := presets.LocateFromWorkingDir()
	if err != nil {
		o.logger.Warn("cannot search for presets", zap.Error(err))
		return "", false
	}
	return path, found
}

// ResolveTool picks the cargo binary: settings first, then the build-time
// default, then the first cargo on PATH that is not this wrapper.
func (o *Orchestrator) ResolveTool(env []string) (string, error) {
	searchPath := lookupEnv(env, "PATH")

	for _, configured := range []string{o.settings.CargoPath, o.defaultTool} {
		switch {
		case configured == "":
			continue
		case strings.ContainsRune(configured, os.PathSeparator):
			return configured, nil
		default:
			if path, ok := findTool(configured, searchPath, selfInfo()); ok {
				return path, nil
			}
			return "", NewToolNotFoundError(configured, nil)
		}
	}

	if path, ok := findTool(ToolName, searchPath, selfInfo()); ok {
		return path, nil
	}
	return "", NewToolNotFoundError(ToolName, nil)
}

func lookupEnv(env []string, key string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if value, ok := strings.CutPrefix(env[i], key+"="); ok {
			return value
		}
	}
	return ""
}
