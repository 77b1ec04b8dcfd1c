// Package app wires the mesh, camera, scene, stroke controller and paint
// canvas into one painting session.
package app

import (
	"fmt"
	gomath "math"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/engine/camera"
	"github.com/Faultbox/meshpaint/internal/engine/input"
	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/internal/engine/picking"
	"github.com/Faultbox/meshpaint/internal/engine/scene"
	"github.com/Faultbox/meshpaint/internal/engine/stroke"
	"github.com/Faultbox/meshpaint/internal/engine/texture"
	"github.com/Faultbox/meshpaint/internal/logger"
	"github.com/Faultbox/meshpaint/internal/replay"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// App is a painting session. It is driven from a single goroutine.
type App struct {
	cfg      *config.Config
	camera   *camera.ModelCamera
	scene    *scene.Scene
	canvas   *texture.Canvas
	stroke   *stroke.Controller
	viewport input.Bounds
	frames   *texture.Snapshots

	paintErrors int
	viewChanges int
	viewErrors  int
}

// Info summarizes the session for display.
type Info struct {
	MeshName    string
	Vertices    int
	Triangles   int
	Bounds      mesh.Bounds
	Intersector string
	BVHNodes    int
	ViewportW   int
	ViewportH   int
	Eye         math.Vec3 // eye position in object space
	EyeDistance float32   // from the eye to the centre of the mesh bounds
	CenterX     float32   // viewport position of the mesh centre
	CenterY     float32
	CenterShown bool // false when the centre is behind the eye
	TextureW    int
	TextureH    int
}

// New creates a session from configuration.
func New(cfg *config.Config) (*App, error) {
	m, err := mesh.ByName(cfg.Mesh.Name, cfg.Mesh.GridDivisions)
	if err != nil {
		return nil, err
	}

	cam := camera.NewModelCamera()
	cam.FovY = cfg.Camera.FovDegrees * gomath.Pi / 180
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.SetDistance(cfg.Camera.Distance)
	cam.SetRotationDegrees(cfg.Camera.RotationDegrees)
	cam.SetScale(cfg.Camera.Scale)

	canvas, err := texture.New(texture.Options{
		Width:        cfg.Texture.Width,
		Height:       cfg.Texture.Height,
		LineWidth:    cfg.Texture.LineWidth,
		GridLines:    cfg.Texture.GridLines,
		RandomColors: cfg.Texture.RandomColors,
		StrokeColor:  cfg.Texture.StrokeColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	a := &App{
		cfg:    cfg,
		camera: cam,
		canvas: canvas,
		viewport: input.Bounds{
			Width:  float32(cfg.Viewport.Width),
			Height: float32(cfg.Viewport.Height),
		},
	}
	a.scene = scene.New(m, cam.Transform(cfg.Viewport.Width, cfg.Viewport.Height), cfg.Mesh.UseBVH)
	a.stroke = stroke.NewController(a.scene, a.viewport, a.paint)

	logger.Info("session initialized",
		zap.String("mesh", cfg.Mesh.Name),
		zap.Int("triangles", m.TriangleCount()),
		zap.Bool("bvh", cfg.Mesh.UseBVH),
		zap.Int("viewport_w", cfg.Viewport.Width),
		zap.Int("viewport_h", cfg.Viewport.Height),
	)
	return a, nil
}

// Close releases the canvas.
func (a *App) Close() error {
	return a.canvas.Close()
}

func (a *App) paint(u, v float32, isStart bool) {
	if err := a.canvas.Paint(u, v, isStart); err != nil {
		a.paintErrors++
		logger.Warn("paint failed", zap.Error(err))
	}
}

// Scene returns the live scene.
func (a *App) Scene() *scene.Scene { return a.scene }

// Canvas returns the paint canvas.
func (a *App) Canvas() *texture.Canvas { return a.canvas }

// Controller returns the stroke controller.
func (a *App) Controller() *stroke.Controller { return a.stroke }

// Camera returns the model camera. Call UpdateTransform after changing it.
func (a *App) Camera() *camera.ModelCamera { return a.camera }

// UpdateTransform publishes the camera's current matrices to the scene.
func (a *App) UpdateTransform() {
	a.scene.SetTransform(a.camera.Transform(int(a.viewport.Width), int(a.viewport.Height)))
}

// SetRotationDegrees applies the rotation slider.
func (a *App) SetRotationDegrees(deg float32) {
	a.camera.SetRotationDegrees(deg)
	a.UpdateTransform()
}

// SetScale applies the scale slider.
func (a *App) SetScale(s float32) {
	a.camera.SetScale(s)
	a.UpdateTransform()
}

// SetMesh switches to another built-in mesh.
func (a *App) SetMesh(name string) error {
	m, err := mesh.ByName(name, a.cfg.Mesh.GridDivisions)
	if err != nil {
		return err
	}
	a.cfg.Mesh.Name = name
	a.scene.SetMesh(m)
	return nil
}

// Resize moves the 3D view to a new client rectangle and updates the
// projection aspect ratio.
func (a *App) Resize(b input.Bounds) {
	a.viewport = b
	a.stroke.SetBounds(b)
	a.UpdateTransform()
}

// Probe hit tests a point in viewport coordinates.
func (a *App) Probe(x, y float32) (picking.HitResult, error) {
	return a.scene.HitTest(x, y, a.viewport.Width, a.viewport.Height)
}

// HitPoint returns the object-space position of the nearest hit under a
// viewport point. ok is false on a miss.
func (a *App) HitPoint(x, y float32) (p math.Vec3, ok bool, err error) {
	f := a.scene.Snapshot()
	ray, err := picking.Unproject(x, y, a.viewport.Width, a.viewport.Height, f.Transform)
	if err != nil {
		return math.Vec3{}, false, err
	}
	hit := f.Intersector.Intersect(ray)
	if !hit.Found {
		return math.Vec3{}, false, nil
	}
	return ray.At(hit.T), true, nil
}

// RecordFrames makes Replay save a PNG frame into dir every time the
// texture changes.
func (a *App) RecordFrames(dir string) {
	a.frames = texture.NewSnapshots(dir, "frame")
}

// FrameCount returns the number of frames saved by RecordFrames.
func (a *App) FrameCount() int {
	if a.frames == nil {
		return 0
	}
	return a.frames.Count()
}

// uploadHandler forwards stroke events to the controller, applies view
// changes, and captures a frame whenever the canvas needs to be uploaded
// again.
type uploadHandler struct {
	*stroke.Controller
	app *App
}

func (h uploadHandler) Handle(e input.Event) {
	if !e.Kind.IsStroke() {
		h.app.applyView(e)
		return
	}
	h.Controller.Handle(e)
	h.app.upload()
}

// applyView applies a slider, drag, zoom or mesh event. The next hit test
// sees the new transform, even in the middle of a stroke.
func (a *App) applyView(e input.Event) {
	a.viewChanges++
	switch e.Kind {
	case input.Rotate:
		a.SetRotationDegrees(e.Value)
	case input.Scale:
		a.SetScale(e.Value)
	case input.Drag:
		a.camera.HandleDrag(e.X, e.Y)
		a.UpdateTransform()
	case input.Zoom:
		a.camera.HandleZoom(e.Value)
		a.UpdateTransform()
	case input.Mesh:
		if err := a.SetMesh(e.Name); err != nil {
			a.viewErrors++
			logger.Warn("mesh switch failed", zap.Error(err))
		}
	default:
		a.viewErrors++
		logger.Warn("unhandled view event", zap.Stringer("kind", e.Kind))
	}
}

func (a *App) upload() {
	if !a.canvas.Dirty() {
		return
	}
	if a.frames != nil {
		path, err := a.frames.Capture(a.canvas)
		if err != nil {
			logger.Warn("frame capture failed", zap.Error(err))
			return
		}
		logger.Debug("frame saved", zap.String("path", path))
	}
	a.canvas.ClearDirty()
}

// Replay resizes the view to the script's bounds and feeds its events to
// the stroke controller.
func (a *App) Replay(s *replay.Script) stroke.Stats {
	a.Resize(s.Bounds)
	a.upload()
	replay.Run(s, uploadHandler{Controller: a.stroke, app: a})

	st := a.stroke.Stats()
	logger.Info("replay complete",
		zap.Int("events", st.Events),
		zap.Int("strokes", st.Strokes),
		zap.Int("hits", st.Hits),
		zap.Int("misses", st.Misses),
		zap.Int("failures", st.Failures),
		zap.Int("cancels", st.Cancels),
		zap.Int("view_changes", a.viewChanges),
		zap.Int("view_errors", a.viewErrors),
	)
	return st
}

// ViewChanges returns the number of view events applied by Replay and how
// many of them failed.
func (a *App) ViewChanges() (applied, failed int) {
	return a.viewChanges, a.viewErrors
}

// PaintErrors returns the number of samples the canvas failed to draw.
func (a *App) PaintErrors() int {
	return a.paintErrors
}

// ExportTexture writes the canvas to a PNG file using the configured
// export scale and filter.
func (a *App) ExportTexture(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	filter := texture.Filter(a.cfg.Texture.ExportFilter)
	if err := a.canvas.Export(f, a.cfg.Texture.ExportScale, filter); err != nil {
		return fmt.Errorf("export texture: %w", err)
	}
	a.canvas.ClearDirty()
	return f.Close()
}

// Info returns a summary of the current session.
func (a *App) Info() Info {
	f := a.scene.Snapshot()
	info := Info{
		MeshName:    a.cfg.Mesh.Name,
		Vertices:    f.Mesh.VertexCount(),
		Triangles:   f.Mesh.TriangleCount(),
		Bounds:      f.Mesh.Bounds(),
		Intersector: "linear",
		ViewportW:   int(a.viewport.Width),
		ViewportH:   int(a.viewport.Height),
		TextureW:    a.canvas.Width(),
		TextureH:    a.canvas.Height(),
	}
	if bvh, ok := f.Intersector.(*picking.BVH); ok {
		info.Intersector = "bvh"
		info.BVHNodes = bvh.NodeCount()
	}
	center := info.Bounds.Center()
	if inv, ok := f.Transform.ModelView.Inverse(); ok {
		info.Eye = inv.TransformPoint(math.Vec3{})
		info.EyeDistance = info.Eye.Distance(center)
	}
	info.CenterX, info.CenterY, info.CenterShown = picking.Project(center, a.viewport.Width, a.viewport.Height, f.Transform)
	return info
}
