package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Volume.Bounded(), "default volume should be unbounded")
	assert.Equal(t, "top", cfg.TopNode)
	assert.Equal(t, "bottom", cfg.BottomNode)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
diameter: {min: 0.5, max: 3, small_step: 0.1, large_step: 0.5}
volume: {min: 0.2, max: 4}
top_node: nose
initial_diameter: 2
`))
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 0.5, Max: 3, SmallStep: 0.1, LargeStep: 0.5}, cfg.Diameter)
	assert.Equal(t, Default().Length, cfg.Length)
	assert.True(t, cfg.Volume.Bounded())
	assert.Equal(t, "nose", cfg.TopNode)
	assert.Equal(t, "bottom", cfg.BottomNode)
	assert.Equal(t, 2.0, cfg.InitialDiameter)
	assert.Equal(t, 1.0, cfg.InitialLength)
}

func TestValidateRejectsInvalidConfigurations(t *testing.T) {
	tests := map[string]string{
		"inverted diameter": `diameter: {min: 2, max: 1}`,
		"negative length":   `length: {min: -1, max: 1}`,
		"zero maximum":      `length: {min: 0, max: 0}`,
		"bad initial":       `initial_length: 0`,
		"negative step":     `diameter: {min: 0, max: 1, small_step: -1}`,
		"bad precision":     `slider_precision: -0.1`,
		"not yaml":          `diameter: [`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "octagon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sides_material: hull\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hull", cfg.SidesMaterial)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	r := Range{Min: 1, Max: 2}
	assert.Equal(t, 1.0, r.Clamp(0))
	assert.Equal(t, 2.0, r.Clamp(3))
	assert.Equal(t, 1.5, r.Clamp(1.5))
	assert.False(t, r.Fixed())
	assert.True(t, Range{Min: 1, Max: 1}.Fixed())
}
