package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMesh     = flag.String("mesh", "", "Mesh to paint on (square, folded, grid)")
	flagBVH      = flag.Bool("bvh", false, "Use a bounding-volume hierarchy for hit tests")
	flagRotation = flag.Float64("rotation", 0, "Model rotation in degrees")
	flagWidth    = flag.Int("width", 0, "Viewport width")
	flagHeight   = flag.Int("height", 0, "Viewport height")
)

// ParseFlags parses command-line flags from args. Call this early in main().
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMesh != "" {
		cfg.Mesh.Name = *flagMesh
	}
	if *flagBVH {
		cfg.Mesh.UseBVH = true
	}
	if *flagRotation != 0 {
		cfg.Camera.RotationDegrees = float32(*flagRotation)
	}
	if *flagWidth > 0 {
		cfg.Viewport.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewport.Height = *flagHeight
	}
}
