package presets

import (
	"errors"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findDiag(diags []Diagnostic, key string) (Diagnostic, bool) {
	for _, d := range diags {
		if d.Key == key {
			return d, true
		}
	}
	return Diagnostic{}, false
}

func TestParse_FullDocument(t *testing.T) {
	set, diags, err := Parse(`
default = "web"

[preset.web]
features = ["wasm", "console", "wasm"]
default-features = false
target = "wasm32-unknown-unknown"

[preset.native]
features = ["simd"]
default-features = true
target = ""
`)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, "web", set.Default)
	require.Len(t, set.Presets, 2)

	assert.Equal(t, Preset{
		NoDefaultFeatures: true,
		Features:          []string{"wasm", "console", "wasm"},
		Target:            "wasm32-unknown-unknown",
	}, set.Presets["web"])
	assert.Equal(t, Preset{Features: []string{"simd"}}, set.Presets["native"])
}

func TestParse_OnlyTargetDefaultsOtherFields(t *testing.T) {
	set, diags, err := Parse(`
[preset.x]
target = "x"
`)
	require.NoError(t, err)

	p, ok := set.Presets["x"]
	require.True(t, ok)
	assert.False(t, p.NoDefaultFeatures)
	assert.Empty(t, p.Features)
	assert.Equal(t, "x", p.Target)

	for _, key := range []string{"preset.x.features", "preset.x.default-features", "default"} {
		d, ok := findDiag(diags, key)
		require.True(t, ok, "expected diagnostic for %s", key)
		assert.Equal(t, SeverityMissing, d.Severity)
	}
}

func TestParse_EmptyPresetIsZeroValue(t *testing.T) {
	set, _, err := Parse("[preset.empty]\n")
	require.NoError(t, err)
	assert.Equal(t, Preset{}, set.Presets["empty"])
}

func TestParse_WrongTypesDegradeToDefaults(t *testing.T) {
	set, diags, err := Parse(`
default = 3

[preset.bad]
features = "serde"
default-features = "no"
target = 64
`)
	require.NoError(t, err)
	assert.Equal(t, "", set.Default)
	assert.Equal(t, Preset{}, set.Presets["bad"])

	for _, key := range []string{"default", "preset.bad.features", "preset.bad.default-features", "preset.bad.target"} {
		d, ok := findDiag(diags, key)
		require.True(t, ok, "expected diagnostic for %s", key)
		assert.Equal(t, SeverityInvalid, d.Severity, key)
	}
}

func TestParse_NonStringFeatureDropsWholeList(t *testing.T) {
	set, diags, err := Parse(`
[preset.mixed]
features = ["a", 1, "b"]
target = "t"
`)
	require.NoError(t, err)
	assert.Empty(t, set.Presets["mixed"].Features)
	assert.Equal(t, "t", set.Presets["mixed"].Target)

	d, ok := findDiag(diags, "preset.mixed.features")
	require.True(t, ok)
	assert.Contains(t, d.Problem, "element 1")
}

func TestParse_MissingPresetTable(t *testing.T) {
	set, diags, err := Parse(`default = "a"`)
	require.NoError(t, err)
	assert.Equal(t, "a", set.Default)
	assert.NotNil(t, set.Presets)
	assert.Empty(t, set.Presets)

	d, ok := findDiag(diags, "preset")
	require.True(t, ok)
	assert.Equal(t, SeverityMissing, d.Severity)
}

func TestParse_PresetNotATable(t *testing.T) {
	set, diags, err := Parse(`preset = "web"`)
	require.NoError(t, err)
	assert.Empty(t, set.Presets)

	d, ok := findDiag(diags, "preset")
	require.True(t, ok)
	assert.Equal(t, SeverityInvalid, d.Severity)
	assert.Contains(t, d.Problem, "string")
}

func TestParse_PresetEntryNotATable(t *testing.T) {
	set, diags, err := Parse(`
[preset]
web = "yes"
`)
	require.NoError(t, err)
	assert.Equal(t, Preset{}, set.Presets["web"])

	_, ok := findDiag(diags, "preset.web")
	assert.True(t, ok)
}

func TestParse_EmptyText(t *testing.T) {
	set, diags, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, set.Default)
	assert.Empty(t, set.Presets)
	assert.Len(t, diags, 2)
}

func TestParse_MalformedTextFails(t *testing.T) {
	_, _, err := Parse(`default = [`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse presets")

	var decodeErr *toml.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Key: "preset.a.target", Severity: SeverityInvalid, Problem: "expected a string, got integer"}
	assert.Equal(t, "invalid value for 'preset.a.target': expected a string, got integer", d.String())
}
