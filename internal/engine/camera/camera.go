// Package camera produces the projection and model-view matrices for the painted model.
package camera

import (
	gomath "math"

	"github.com/Faultbox/meshpaint/internal/engine/picking"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// ModelCamera looks down -Z at a model that can be rotated and scaled in place.
type ModelCamera struct {
	FovY     float32 // Vertical field of view (radians)
	Near     float32
	Far      float32
	Distance float32 // Eye distance from the model origin

	// Model transform sliders
	Rotation float32 // Yaw around the model's Y axis (radians)
	Pitch    float32 // Tilt around the model's X axis (radians)
	Scale    float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinScale    float32
	MaxScale    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewModelCamera creates a camera with defaults matching a unit-sized model.
func NewModelCamera() *ModelCamera {
	return &ModelCamera{
		FovY:            45 * gomath.Pi / 180,
		Near:            0.1,
		Far:             100.0,
		Distance:        3.0,
		Scale:           1.0,
		MinDistance:     0.5,
		MaxDistance:     50.0,
		MinScale:        0.1,
		MaxScale:        10.0,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Projection returns the perspective matrix for the given aspect ratio (width/height).
func (c *ModelCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ModelView places the model Distance units in front of the eye,
// applying scale first, then pitch, then rotation.
func (c *ModelCamera) ModelView() math.Mat4 {
	return math.Translate(0, 0, -c.Distance).
		Mul(math.RotateX(c.Pitch)).
		Mul(math.RotateY(c.Rotation)).
		Mul(math.Scale(c.Scale, c.Scale, c.Scale))
}

// Transform returns the matrix pair consumed by hit tests.
func (c *ModelCamera) Transform(viewportW, viewportH int) picking.Transform {
	aspect := float32(1)
	if viewportH > 0 {
		aspect = float32(viewportW) / float32(viewportH)
	}
	return picking.Transform{
		Projection: c.Projection(aspect),
		ModelView:  c.ModelView(),
	}
}

// SetRotationDegrees sets the model yaw from a slider value in degrees.
func (c *ModelCamera) SetRotationDegrees(deg float32) {
	c.Rotation = deg * gomath.Pi / 180
}

// SetScale sets the model scale, clamped to the allowed range.
func (c *ModelCamera) SetScale(s float32) {
	c.Scale = clamp(s, c.MinScale, c.MaxScale)
}

// SetDistance moves the eye, clamped to the allowed range.
func (c *ModelCamera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// HandleDrag rotates the model from a mouse drag delta.
func (c *ModelCamera) HandleDrag(deltaX, deltaY float32) {
	c.Rotation += deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	// Keep the model from flipping over
	c.Pitch = clamp(c.Pitch, -gomath.Pi/2, gomath.Pi/2)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *ModelCamera) HandleZoom(delta float32) {
	c.SetDistance(c.Distance - delta*c.Distance*c.ZoomSensitivity)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
