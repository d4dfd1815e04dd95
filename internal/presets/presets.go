// Package presets reads project-local cargo presets from .cargo/presets.toml.
//
// A presets file names a default preset and a table of presets:
//
//	default = "web"
//
//	[preset.web]
//	features = ["wasm", "console"]
//	default-features = false
//	target = "wasm32-unknown-unknown"
//
// Parsing is lenient. Only text that is not valid TOML fails; every other
// problem falls back to a default value and is reported as a Diagnostic.
package presets

import (
	"fmt"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Preset is a named bundle of build settings.
type Preset struct {
	NoDefaultFeatures bool
	Features          []string
	Target            string
}

// Set is the parsed content of a presets file.
type Set struct {
	// Default is the preset used when none is requested; empty means none.
	Default string
	Presets map[string]Preset
}

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityMissing marks a key that was absent and defaulted.
	SeverityMissing Severity = iota
	// SeverityInvalid marks a key whose value had the wrong type.
	SeverityInvalid
)

func (s Severity) String() string {
	if s == SeverityInvalid {
		return "invalid"
	}
	return "missing"
}

// Diagnostic describes a recoverable problem found while parsing.
type Diagnostic struct {
	Key      string
	Severity Severity
	Problem  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s value for '%s': %s", d.Severity, d.Key, d.Problem)
}

// Parse decodes presets text. The returned diagnostics never affect the
// result beyond the defaults already applied.
func Parse(text string) (Set, []Diagnostic, error) {
	var doc map[string]any
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return Set{}, nil, fmt.Errorf("parse presets: %w", err)
	}

	p := parser{}
	set := Set{Presets: make(map[string]Preset)}

	switch raw := doc[PresetsKey].(type) {
	case map[string]any:
		for name, item := range raw {
			set.Presets[name] = p.preset(name, item)
		}
	case nil:
		p.missing(PresetsKey, "no presets defined")
	default:
		p.invalid(PresetsKey, "expected a table, got %s", typeName(raw))
	}

	switch raw := doc["default"].(type) {
	case string:
		set.Default = raw
	case nil:
		p.missing("default", "no default preset configured")
	default:
		p.invalid("default", "expected a string, got %s", typeName(raw))
	}

	return set, p.diags, nil
}

// PresetsKey is the top-level table holding every named preset.
const PresetsKey = "preset"

type parser struct {
	diags []Diagnostic
}

func (p *parser) missing(key, problem string) {
	p.diags = append(p.diags, Diagnostic{Key: key, Severity: SeverityMissing, Problem: problem})
}

func (p *parser) invalid(key, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{Key: key, Severity: SeverityInvalid, Problem: fmt.Sprintf(format, args...)})
}

func (p *parser) preset(name string, item any) Preset {
	var preset Preset
	prefix := PresetsKey + "." + name

	tbl, ok := item.(map[string]any)
	if !ok {
		p.invalid(prefix, "expected a table, got %s", typeName(item))
		return preset
	}

	switch raw := tbl["features"].(type) {
	case []any:
		preset.Features = p.features(prefix+".features", raw)
	case nil:
		p.missing(prefix+".features", "no extra features")
	default:
		p.invalid(prefix+".features", "expected an array of strings, got %s", typeName(raw))
	}

	switch raw := tbl["default-features"].(type) {
	case bool:
		preset.NoDefaultFeatures = !raw
	case nil:
		p.missing(prefix+".default-features", "default features stay enabled")
	default:
		p.invalid(prefix+".default-features", "expected a boolean, got %s", typeName(raw))
	}

	switch raw := tbl["target"].(type) {
	case string:
		preset.Target = raw
	case nil:
		p.missing(prefix+".target", "no target override")
	default:
		p.invalid(prefix+".target", "expected a string, got %s", typeName(raw))
	}

	return preset
}

// features returns nil unless every element is a string.
func (p *parser) features(key string, raw []any) []string {
	features := make([]string, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			p.invalid(key, "element %d: expected a string, got %s", i, typeName(v))
			return nil
		}
		features = append(features, s)
	}
	return features
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "float"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	case time.Time, toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return "datetime"
	default:
		return fmt.Sprintf("%T", v)
	}
}
