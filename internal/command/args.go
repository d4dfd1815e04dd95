package command

import (
	"slices"
	"strings"

	"cargo-preset/internal/presets"
)

const (
	presetFlag     = "--preset"
	endOfOptions   = "--"
	noDefaultsFlag = "--no-default-features"
	featuresFlag   = "--features"
	targetPrefix   = "--target="
)

// StripPresetArg removes the first --preset flag and its value from args.
// Both "--preset name" and "--preset=name" are recognised. A trailing
// --preset without a value is dropped and yields no override. Nothing after
// a bare "--" is inspected.
func StripPresetArg(args []string) ([]string, string, bool) {
	for i, arg := range args {
		if arg == endOfOptions {
			break
		}
		if value, ok := strings.CutPrefix(arg, presetFlag+"="); ok {
			return slices.Delete(slices.Clone(args), i, i+1), value, true
		}
		if arg != presetFlag {
			continue
		}
		if i+1 >= len(args) {
			return slices.Clone(args[:i]), "", false
		}
		return slices.Delete(slices.Clone(args), i, i+2), args[i+1], true
	}
	return args, "", false
}

// PresetArgs builds the arguments a preset contributes to a command.
func PresetArgs(meta Meta, p presets.Preset) []string {
	var out []string
	if meta.AcceptsFeatures {
		if p.NoDefaultFeatures {
			out = append(out, noDefaultsFlag)
		}
		if len(p.Features) > 0 {
			out = append(out, featuresFlag, joinFeatures(p.Features))
		}
	}
	if meta.AcceptsTarget && p.Target != "" {
		out = append(out, targetPrefix+p.Target)
	}
	return out
}

// joinFeatures terminates every feature with a comma, the last one included.
func joinFeatures(features []string) string {
	var b strings.Builder
	for _, f := range features {
		b.WriteString(f)
		b.WriteByte(',')
	}
	return b.String()
}

// Inject inserts the preset arguments right after the sub-command in args[0].
func Inject(meta Meta, p presets.Preset, args []string) []string {
	extra := PresetArgs(meta, p)
	if len(args) == 0 || len(extra) == 0 {
		return args
	}
	return slices.Insert(slices.Clone(args), 1, extra...)
}
