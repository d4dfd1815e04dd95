package presets

import (
	"errors"
	"fmt"
	"slices"
)

// ErrPresetNotFound is returned by Resolve when the selected name has no entry.
var ErrPresetNotFound = errors.New("preset not found")

// Resolve picks the active preset. An explicit override always wins over the
// configured default. With neither, it returns a nil preset and no error.
func Resolve(set Set, override string, hasOverride bool) (string, *Preset, error) {
	name, source := override, "requested"
	if !hasOverride {
		if set.Default == "" {
			return "", nil, nil
		}
		name, source = set.Default, "default"
	}

	preset, ok := set.Presets[name]
	if !ok {
		return name, nil, fmt.Errorf("%s preset '%s': %w", source, name, ErrPresetNotFound)
	}
	preset.Features = slices.Clone(preset.Features)
	return name, &preset, nil
}
