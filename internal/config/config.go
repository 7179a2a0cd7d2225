package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"GopherPick/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type TerrainConfig struct {
	Enabled   bool    `json:"enabled"`
	GridSize  int     `json:"grid_size"`
	Spacing   float32 `json:"spacing"`
	Amplitude float32 `json:"amplitude"`
	Seed      int64   `json:"seed"`
}

type Config struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Title  string `json:"title"`

	CameraPosition [3]float32 `json:"position"`
	CameraTarget   [3]float32 `json:"target"`
	Fov            float32    `json:"fov"`
	Near           float32    `json:"near"`
	Far            float32    `json:"far"`

	MeshPath     string        `json:"mesh_path,omitempty"`
	MeshPosition [3]float32    `json:"mesh_position"`
	MeshScale    float32       `json:"mesh_scale"`
	GroundHeight *float32      `json:"ground_height,omitempty"` // nil disables the ground plane
	Terrain      TerrainConfig `json:"terrain"`

	LogLevel    string `json:"log_level"`
	PickWorkers int    `json:"pick_workers"`
}

func DefaultConfig() *Config {
	ground := float32(0)
	return &Config{
		Width:          1024,
		Height:         768,
		Title:          "GopherPick",
		CameraPosition: [3]float32{0, 4, 10},
		CameraTarget:   [3]float32{0, 0, 0},
		Fov:            60,
		Near:           0.1,
		Far:            1000,
		MeshScale:      1,
		GroundHeight:   &ground,
		Terrain: TerrainConfig{
			GridSize:  64,
			Spacing:   1,
			Amplitude: 6,
			Seed:      1,
		},
		LogLevel: "info",
	}
}

// LoadConfig reads a JSON config file on top of DefaultConfig, so fields the
// file leaves out keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger.Log.Debug("Config loaded", zap.String("path", path))
	return config, nil
}

// Validate reports the first setting that would make the window or the pick
// ray unusable.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("need 0 < near < far, got near=%v far=%v", c.Near, c.Far)
	}
	if c.Fov <= 0 || c.Fov >= 180 {
		return fmt.Errorf("fov must be between 0 and 180 degrees, got %v", c.Fov)
	}
	if c.MeshScale <= 0 {
		return errors.New("mesh_scale must be positive")
	}
	if c.Terrain.Enabled && c.Terrain.GridSize < 2 {
		return fmt.Errorf("terrain grid_size must be at least 2, got %d", c.Terrain.GridSize)
	}
	if c.PickWorkers < 0 {
		return fmt.Errorf("pick_workers must not be negative, got %d", c.PickWorkers)
	}
	return nil
}

func (c *Config) Position() mgl32.Vec3 {
	return mgl32.Vec3(c.CameraPosition)
}

func (c *Config) Target() mgl32.Vec3 {
	return mgl32.Vec3(c.CameraTarget)
}
