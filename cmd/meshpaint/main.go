// meshpaint paints onto a mesh texture from recorded pointer and touch input.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/app"
	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/engine/input"
	"github.com/Faultbox/meshpaint/internal/engine/picking"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/internal/replay"
)

func main() {
	// Parse global flags first
	if err := config.ParseFlags(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	// Commands that do not need a session
	switch command {
	case "config":
		err = cmdConfig(cfg, args)
	case "line":
		err = cmdLine(cfg, args)
	}
	if command == "config" || command == "line" {
		if err != nil {
			logger.Error("command failed", zap.String("command", command), zap.Error(err))
			os.Exit(1)
		}
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create session", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	switch command {
	case "replay":
		err = cmdReplay(a, args)
	case "probe":
		err = cmdProbe(a, args)
	case "info":
		cmdInfo(a)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshpaint - paint onto a mesh texture from pointer and touch input

Usage:
  meshpaint [global options] <command> [options]

Global options:
  -config <file>     Config file (default: ./meshpaint.yaml, then user config dir)
  -debug             Enable debug logging
  -mesh <name>       Mesh to paint on: square, folded, grid
  -bvh               Use a bounding-volume hierarchy for hit tests
  -rotation <deg>    Model rotation in degrees
  -width, -height    Viewport size in pixels

Commands:
  replay -script <file.yaml> [-out texture.png] [-frames dir]
                                                  Replay recorded input and save the texture
  probe -x <px> -y <px>                           Hit test one viewport pixel
  info                                            Show mesh, camera and texture settings
  line -from x,y -to x,y [-steps n] [-touch] [-rotate deg] [-o file.yaml]
                                                  Write a replay script with one straight stroke
  config init [-o file.yaml] [-force]             Save the effective settings as a config file

Examples:
  meshpaint replay -script session.yaml -out painted.png
  meshpaint -mesh folded -rotation 30 probe -x 320 -y 240
  meshpaint -bvh -mesh grid info
  meshpaint line -from 200,240 -to 440,240 -rotate 30 -o stroke.yaml
  meshpaint -mesh grid config init -o meshpaint.yaml`)
}

func cmdReplay(a *app.App, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	scriptPath := fs.String("script", "", "Replay script (YAML)")
	out := fs.String("out", "texture.png", "Output PNG")
	frames := fs.String("frames", "", "Directory for a PNG frame per texture update")
	fs.Parse(args)

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshpaint replay -script <file.yaml> [-out texture.png]")
		os.Exit(1)
	}

	script, err := replay.Load(*scriptPath)
	if err != nil {
		return err
	}

	if *frames != "" {
		a.RecordFrames(*frames)
	}
	st := a.Replay(script)
	if err := a.ExportTexture(*out); err != nil {
		return err
	}

	fmt.Printf("Events:   %d\n", st.Events)
	fmt.Printf("Strokes:  %d\n", st.Strokes)
	fmt.Printf("Samples:  %d painted, %d missed\n", st.Hits, st.Misses)
	if n := a.PaintErrors(); n > 0 {
		fmt.Printf("Errors:   %d samples failed to draw\n", n)
	}
	if st.Failures > 0 || st.Cancels > 0 {
		fmt.Printf("Skipped:  %d failed hit tests, %d cancelled strokes\n", st.Failures, st.Cancels)
	}
	if applied, failed := a.ViewChanges(); applied > 0 {
		fmt.Printf("View:     %d changes, %d failed\n", applied, failed)
	}
	if *frames != "" {
		fmt.Printf("Frames:   %d in %s\n", a.FrameCount(), *frames)
	}
	fmt.Printf("Texture:  %s\n", *out)
	return nil
}

func cmdProbe(a *app.App, args []string) error {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	x := fs.Float64("x", -1, "Viewport x in pixels")
	y := fs.Float64("y", -1, "Viewport y in pixels")
	fs.Parse(args)

	if *x < 0 || *y < 0 {
		fmt.Fprintln(os.Stderr, "Usage: meshpaint probe -x <px> -y <px>")
		os.Exit(1)
	}

	hit, err := a.Probe(float32(*x), float32(*y))
	if errors.Is(err, picking.ErrNonInvertible) {
		fmt.Println("No ray: transform is not invertible")
		return nil
	}
	if err != nil {
		return err
	}

	if !hit.Found {
		fmt.Println("Miss")
		return nil
	}
	fmt.Printf("Hit triangle %d\n", hit.Triangle)
	fmt.Printf("  uv:    (%.4f, %.4f)\n", hit.U, hit.V)
	fmt.Printf("  t:     %.4f\n", hit.T)
	if p, ok, err := a.HitPoint(float32(*x), float32(*y)); err == nil && ok {
		fmt.Printf("  point: (%.4f, %.4f, %.4f)\n", p.X, p.Y, p.Z)
	}
	return nil
}

func cmdInfo(a *app.App) {
	info := a.Info()
	fmt.Printf("Mesh:        %s\n", info.MeshName)
	fmt.Printf("Vertices:    %d\n", info.Vertices)
	fmt.Printf("Triangles:   %d\n", info.Triangles)
	fmt.Printf("Bounds:      (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		info.Bounds.Min.X, info.Bounds.Min.Y, info.Bounds.Min.Z,
		info.Bounds.Max.X, info.Bounds.Max.Y, info.Bounds.Max.Z)
	if info.BVHNodes > 0 {
		fmt.Printf("Intersector: %s, %d nodes\n", info.Intersector, info.BVHNodes)
	} else {
		fmt.Printf("Intersector: %s\n", info.Intersector)
	}
	fmt.Printf("Viewport:    %dx%d\n", info.ViewportW, info.ViewportH)
	fmt.Printf("Eye:         (%.3f, %.3f, %.3f), %.3f from centre\n", info.Eye.X, info.Eye.Y, info.Eye.Z, info.EyeDistance)
	if info.CenterShown {
		fmt.Printf("Centre:      (%.1f, %.1f) px\n", info.CenterX, info.CenterY)
	} else {
		fmt.Println("Centre:      behind the eye")
	}
	fmt.Printf("Texture:     %dx%d\n", info.TextureW, info.TextureH)
}

func cmdLine(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("line", flag.ExitOnError)
	from := fs.String("from", "", "Start point x,y in viewport pixels")
	to := fs.String("to", "", "End point x,y in viewport pixels")
	steps := fs.Int("steps", 16, "Number of move samples")
	touch := fs.Bool("touch", false, "Record a one-finger touch instead of a pointer")
	rotate := fs.Float64("rotate", 0, "Rotation slider value applied before the stroke (degrees)")
	out := fs.String("o", "stroke.yaml", "Output script")
	fs.Parse(args)

	if *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshpaint line -from x,y -to x,y [-steps n] [-o file.yaml]")
		os.Exit(1)
	}
	x0, y0, err := parsePoint(*from)
	if err != nil {
		return err
	}
	x1, y1, err := parsePoint(*to)
	if err != nil {
		return err
	}

	rec := replay.NewRecorder(input.Bounds{
		Width:  float32(cfg.Viewport.Width),
		Height: float32(cfg.Viewport.Height),
	})
	if *rotate != 0 {
		rec.Record(input.Event{Kind: input.Rotate, Value: float32(*rotate)})
	}
	rec.Line(x0, y0, x1, y1, *steps, *touch)

	script := rec.Script()
	if err := script.Save(*out); err != nil {
		return err
	}
	fmt.Printf("Wrote %d events to %s\n", len(script.Events), *out)
	return nil
}

func parsePoint(s string) (x, y float32, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q: want x,y", s)
	}
	px, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	py, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return float32(px), float32(py), nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) < 1 || args[0] != "init" {
		fmt.Fprintln(os.Stderr, "Usage: meshpaint config init [-o file.yaml] [-force]")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("config init", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default: config.yaml in the user config dir)")
	force := fs.Bool("force", false, "Replace an existing file")
	fs.Parse(args[1:])

	path := *out
	var err error
	if path == "" {
		path, err = cfg.Save(*force)
	} else {
		err = cfg.SaveTo(path, *force)
	}
	if errors.Is(err, config.ErrExists) {
		fmt.Fprintf(os.Stderr, "%s already exists, use -force to replace it\n", path)
		os.Exit(1)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", path)
	return nil
}
