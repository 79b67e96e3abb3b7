package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Snap.Grid)
	assert.False(t, cfg.Snap.Point)
	assert.False(t, cfg.Snap.Edge)
	assert.False(t, cfg.Snap.Face)
	assert.False(t, cfg.Snap.Perpendicular)
	assert.Equal(t, 8.0, cfg.EffectiveGridSize())
}

func TestSetGridSizeClamps(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"below minimum", 0.01, MinGridSize},
		{"negative", -4, MinGridSize},
		{"above maximum", 4096, MaxGridSize},
		{"in range", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.SetGridSize(tt.in)
			assert.Equal(t, tt.expected, cfg.GridSize)
		})
	}
}

func TestMicrogrid(t *testing.T) {
	cfg := Default()
	cfg.SetGridSize(16)
	cfg.SetMicrogrid(true)
	assert.Equal(t, 2.0, cfg.EffectiveGridSize())

	cfg.SetGridSize(0.5)
	assert.Equal(t, MinGridSize, cfg.EffectiveGridSize())
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadview.toml")
	content := `grid_size = 2000.0
microgrid = true
snap_threshold = 0.5

[snap]
grid = false
point = true
edge = true

[camera]
fly_speed = 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, MaxGridSize, cfg.GridSize)
	assert.True(t, cfg.Microgrid)
	assert.Equal(t, 0.5, cfg.SnapThreshold)
	assert.False(t, cfg.Snap.Grid)
	assert.True(t, cfg.Snap.Point)
	assert.True(t, cfg.Snap.Edge)
	assert.Equal(t, 0.5, cfg.Camera.FlySpeed)
	// unset speeds keep their defaults
	assert.Equal(t, Default().Camera.OrbitSpeed, cfg.Camera.OrbitSpeed)
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quadview.yaml")

	cfg := Default()
	cfg.SetGridSize(64)
	cfg.Snap.Face = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64.0, loaded.GridSize)
	assert.True(t, loaded.Snap.Face)
}

func TestUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quadview.ini")
	require.NoError(t, os.WriteFile(path, []byte("grid_size=1"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Default().Save(path), ErrUnknownFormat)
}

func TestApply(t *testing.T) {
	cfg := Default()
	other := Default()
	other.GridSize = 0
	other.Snap.Point = true

	require.NoError(t, cfg.Apply(other))
	assert.Equal(t, MinGridSize, cfg.GridSize)
	assert.True(t, cfg.Snap.Point)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf, "toml"))
	assert.Contains(t, buf.String(), "grid_size = 8.0")
	assert.Contains(t, buf.String(), "[camera]")

	buf.Reset()
	require.NoError(t, Default().Encode(&buf, "yaml"))
	assert.Contains(t, buf.String(), "grid_size: 8")

	assert.ErrorIs(t, Default().Encode(&buf, "ini"), ErrUnknownFormat)
}
