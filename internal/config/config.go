// Package config handles meshpaint configuration loading and management.
package config

// Config holds all settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Camera   CameraConfig   `yaml:"camera"`
	Mesh     MeshConfig     `yaml:"mesh"`
	Texture  TextureConfig  `yaml:"texture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ViewportConfig holds the size of the 3D view in pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// CameraConfig holds projection settings and the model transform sliders.
type CameraConfig struct {
	FovDegrees      float32 `yaml:"fov_degrees"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	Distance        float32 `yaml:"distance"`
	RotationDegrees float32 `yaml:"rotation_degrees"`
	Scale           float32 `yaml:"scale"`
}

// MeshConfig selects the built-in mesh to paint on.
type MeshConfig struct {
	Name          string `yaml:"name"` // square, folded or grid
	GridDivisions int    `yaml:"grid_divisions"`
	UseBVH        bool   `yaml:"use_bvh"`
}

// TextureConfig holds the paint canvas settings.
type TextureConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	LineWidth    float64 `yaml:"line_width"`
	GridLines    int     `yaml:"grid_lines"`
	RandomColors bool    `yaml:"random_colors"`
	StrokeColor  string  `yaml:"stroke_color"` // hex, used when RandomColors is off
	ExportScale  float64 `yaml:"export_scale"`
	ExportFilter string  `yaml:"export_filter"` // nearest or linear
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  640,
			Height: 480,
		},
		Camera: CameraConfig{
			FovDegrees:      45,
			Near:            0.1,
			Far:             100,
			Distance:        3,
			RotationDegrees: 0,
			Scale:           1,
		},
		Mesh: MeshConfig{
			Name:          "square",
			GridDivisions: 8,
			UseBVH:        false,
		},
		Texture: TextureConfig{
			Width:        256,
			Height:       256,
			LineWidth:    3,
			GridLines:    32,
			RandomColors: true,
			StrokeColor:  "#ff0000",
			ExportScale:  1,
			ExportFilter: "nearest",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
