// Package config loads sandbox configuration from YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/marker-anchor/anchor"
)

// Config is the full sandbox configuration
type Config struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Scan         ScanConfig    `yaml:"scan"`
	Targets      []Target      `yaml:"targets"`
	Nodes        []Node        `yaml:"nodes"`
	DebugVisual  string        `yaml:"debug_visual"` // Node name, empty disables
	Camera       Camera        `yaml:"camera"`
	Frames       Frames        `yaml:"frames"`
	Room         Room          `yaml:"room"`
	Surfaces     []Surface     `yaml:"surfaces"` // Extra planes added to the room
	Decoder      Decoder       `yaml:"decoder"`
	Log          Log           `yaml:"log"`
	Inspect      Inspect       `yaml:"inspect"`
	Audio        Audio         `yaml:"audio"`
}

// ScanConfig mirrors anchor.Config with file-friendly fields
type ScanConfig struct {
	FrameFrequency    int           `yaml:"frame_frequency"`
	MinFrameDimension int           `yaml:"min_frame_dimension"`
	MinAnchorHeight   float64       `yaml:"min_anchor_height"`
	DebugVisualOffset float64       `yaml:"debug_visual_offset"`
	RequireSurfaceHit bool          `yaml:"require_surface_hit"`
	HitMarker         bool          `yaml:"hit_marker"`
	HitMarkerLifetime time.Duration `yaml:"hit_marker_lifetime"`
	HitMarkerScale    float64       `yaml:"hit_marker_scale"`
}

// Target binds a marker payload to a node name
type Target struct {
	Payload string `yaml:"payload"`
	Node    string `yaml:"node"`
}

// Node is a scene node created at startup
type Node struct {
	Name     string `yaml:"name"`
	Position Vec3   `yaml:"position"`
	Active   bool   `yaml:"active"`
}

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Camera is a fixed pinhole camera
type Camera struct {
	Position Vec3    `yaml:"position"`
	Yaw      float64 `yaml:"yaw"`
	Pitch    float64 `yaml:"pitch"`
	VFOV     float64 `yaml:"vfov"`
	// Explicit intrinsics override VFOV when Fx > 0
	Fx float64 `yaml:"fx"`
	Fy float64 `yaml:"fy"`
	Cx float64 `yaml:"cx"`
	Cy float64 `yaml:"cy"`
}

// Frames is the replayed image sequence
type Frames struct {
	Paths  []string `yaml:"paths"`
	Warmup int      `yaml:"warmup_ticks"`
	Hold   int      `yaml:"hold_ticks"`
}

// Room is the default floor-and-walls environment, zero half-extents disable walls
type Room struct {
	HalfX       float64 `yaml:"half_x"`
	HalfZ       float64 `yaml:"half_z"`
	MaxDistance float64 `yaml:"max_distance"`
}

type Surface struct {
	Name   string  `yaml:"name"`
	Point  Vec3    `yaml:"point"`
	Normal Vec3    `yaml:"normal"`
	Radius float64 `yaml:"radius"`
}

type Decoder struct {
	TryHarder bool `yaml:"try_harder"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // Empty logs to stderr; the terminal view owns stdout
}

type Inspect struct {
	Listen string `yaml:"listen"` // Empty disables the HTTP surface
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// DefaultConfig returns stock values
func DefaultConfig() *Config {
	return &Config{
		TickInterval: 33 * time.Millisecond,
		Scan: ScanConfig{
			FrameFrequency:    anchor.DefaultScanFrameFrequency,
			MinFrameDimension: anchor.DefaultMinFrameDimension,
			MinAnchorHeight:   anchor.DefaultMinAnchorHeight,
			DebugVisualOffset: anchor.DefaultDebugVisualOffset,
			HitMarker:         true,
			HitMarkerLifetime: anchor.DefaultHitMarkerLifetime,
			HitMarkerScale:    anchor.DefaultHitMarkerScale,
		},
		Camera: Camera{
			Position: Vec3{Y: 1.6},
			Pitch:    35,
			VFOV:     60,
		},
		Frames: Frames{
			Warmup: 15,
			Hold:   30,
		},
		Room: Room{HalfX: 3, HalfZ: 4, MaxDistance: 20},
		Log:  Log{Level: "info", Format: "text"},
		Audio: Audio{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// LoadConfig reads path over DefaultConfig and validates the result
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

var ErrInvalid = errors.New("invalid config")

// Validate checks values the pipeline cannot run with
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be > 0", ErrInvalid)
	}
	if c.Scan.FrameFrequency <= 0 {
		return fmt.Errorf("%w: scan.frame_frequency must be > 0", ErrInvalid)
	}
	if c.Scan.MinFrameDimension < 0 {
		return fmt.Errorf("%w: scan.min_frame_dimension must be >= 0", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0,1]", ErrInvalid)
	}

	names := make(map[string]bool, len(c.Nodes))
	for i, n := range c.Nodes {
		if n.Name == "" {
			return fmt.Errorf("%w: nodes[%d]: name is required", ErrInvalid, i)
		}
		if names[n.Name] {
			return fmt.Errorf("%w: nodes[%d]: duplicate name %q", ErrInvalid, i, n.Name)
		}
		names[n.Name] = true
	}
	for i, t := range c.Targets {
		if !names[t.Node] {
			return fmt.Errorf("%w: targets[%d]: unknown node %q", ErrInvalid, i, t.Node)
		}
	}
	if c.DebugVisual != "" && !names[c.DebugVisual] {
		return fmt.Errorf("%w: debug_visual: unknown node %q", ErrInvalid, c.DebugVisual)
	}
	for i, s := range c.Surfaces {
		if s.Normal == (Vec3{}) {
			return fmt.Errorf("%w: surfaces[%d]: normal must be non-zero", ErrInvalid, i)
		}
	}
	return nil
}
