// Package config holds the editor configuration shared by all viewport panes.
//
// A Config is created once by the application and handed to every camera and
// controller by pointer. All writes go through the setters or Apply, which
// clamp values at the point of mutation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// Grid size limits
const (
	MinGridSize = 0.125
	MaxGridSize = 1024.0

	// MicrogridDivisor divides the grid size while microgrid is enabled
	MicrogridDivisor = 8.0
)

// ErrUnknownFormat is returned for config paths without a .toml, .yaml or .yml extension
var ErrUnknownFormat = errors.New("unknown config format")

// SnapFlags enables individual snap policies
type SnapFlags struct {
	Grid          bool `toml:"grid" yaml:"grid"`
	Point         bool `toml:"point" yaml:"point"`
	Edge          bool `toml:"edge" yaml:"edge"`
	Face          bool `toml:"face" yaml:"face"`
	Perpendicular bool `toml:"perpendicular" yaml:"perpendicular"`
}

// CameraSettings holds navigation speeds
type CameraSettings struct {
	OrbitSpeed    float64 `toml:"orbit_speed" yaml:"orbit_speed"`       // degrees per pixel
	PanSpeed      float64 `toml:"pan_speed" yaml:"pan_speed"`           // fraction of distance per pixel
	DollySpeed    float64 `toml:"dolly_speed" yaml:"dolly_speed"`       // fraction of distance per wheel step
	FlySpeed      float64 `toml:"fly_speed" yaml:"fly_speed"`           // world units per tick
	FocusDistance float64 `toml:"focus_distance" yaml:"focus_distance"` // distance after focus
}

// Config is the process-wide editor configuration
type Config struct {
	GridSize      float64        `toml:"grid_size" yaml:"grid_size"`
	Microgrid     bool           `toml:"microgrid" yaml:"microgrid"`
	SnapThreshold float64        `toml:"snap_threshold" yaml:"snap_threshold"`
	Snap          SnapFlags      `toml:"snap" yaml:"snap"`
	Camera        CameraSettings `toml:"camera" yaml:"camera"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		GridSize:      8,
		Microgrid:     false,
		SnapThreshold: 1.0,
		Snap: SnapFlags{
			Grid: true,
		},
		Camera: CameraSettings{
			OrbitSpeed:    0.25,
			PanSpeed:      0.002,
			DollySpeed:    0.1,
			FlySpeed:      0.1,
			FocusDistance: 4,
		},
	}
}

// Load reads a configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration in the format implied by the path's extension
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf, format(path)); err != nil {
		if errors.Is(err, ErrUnknownFormat) {
			return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
		}
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Encode writes the configuration as "toml" or "yaml"
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case "toml":
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return enc.Close()
	default:
		return ErrUnknownFormat
	}
	return nil
}

// Apply copies every value from other into c and re-clamps.
// This is the hot-reload writer path.
func (c *Config) Apply(other *Config) error {
	if err := copier.Copy(c, other); err != nil {
		return fmt.Errorf("failed to apply config: %w", err)
	}
	c.normalize()
	return nil
}

// SetGridSize sets the base grid size, clamped to [MinGridSize, MaxGridSize]
func (c *Config) SetGridSize(size float64) {
	c.GridSize = clampGrid(size)
}

// SetMicrogrid enables or disables the microgrid
func (c *Config) SetMicrogrid(enabled bool) {
	c.Microgrid = enabled
}

// SetSnapThreshold sets the snap threshold; negative values become 0
func (c *Config) SetSnapThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	c.SnapThreshold = threshold
}

// EffectiveGridSize returns the grid size in effect, taking microgrid into account
func (c *Config) EffectiveGridSize() float64 {
	if c.Microgrid {
		return clampGrid(c.GridSize / MicrogridDivisor)
	}
	return clampGrid(c.GridSize)
}

// normalize clamps loaded values and fills unset camera speeds with defaults
func (c *Config) normalize() {
	c.GridSize = clampGrid(c.GridSize)
	if c.SnapThreshold < 0 {
		c.SnapThreshold = 0
	}

	def := Default().Camera
	if c.Camera.OrbitSpeed <= 0 {
		c.Camera.OrbitSpeed = def.OrbitSpeed
	}
	if c.Camera.PanSpeed <= 0 {
		c.Camera.PanSpeed = def.PanSpeed
	}
	if c.Camera.DollySpeed <= 0 {
		c.Camera.DollySpeed = def.DollySpeed
	}
	if c.Camera.FlySpeed <= 0 {
		c.Camera.FlySpeed = def.FlySpeed
	}
	if c.Camera.FocusDistance <= 0 {
		c.Camera.FocusDistance = def.FocusDistance
	}
}

func decode(path string, data []byte, cfg *Config) error {
	switch format(path) {
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return nil
}

func format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

func clampGrid(size float64) float64 {
	if size < MinGridSize {
		return MinGridSize
	}
	if size > MaxGridSize {
		return MaxGridSize
	}
	return size
}
