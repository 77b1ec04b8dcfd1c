package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/internal/engine/picking"
	"github.com/Faultbox/meshpaint/pkg/math"
)

func TestModelViewPlacesEye(t *testing.T) {
	c := NewModelCamera()
	c.Distance = 4

	inv, ok := c.ModelView().Inverse()
	if !ok {
		t.Fatal("model view should be invertible")
	}
	eye := inv.TransformPoint(math.Vec3{})
	if eye.Distance(math.Vec3{Z: 4}) > 1e-5 {
		t.Errorf("eye = %v, want (0, 0, 4)", eye)
	}
}

func TestRotationSlider(t *testing.T) {
	c := NewModelCamera()
	c.SetRotationDegrees(90)
	if gomath.Abs(float64(c.Rotation)-gomath.Pi/2) > 1e-6 {
		t.Errorf("Rotation = %f, want pi/2", c.Rotation)
	}

	// Half a turn mirrors the square: object +X appears left of center.
	c.SetRotationDegrees(180)
	tr := c.Transform(640, 480)
	q := math.Vec3{X: 0.5, Y: 0.3}
	sx, sy, ok := picking.Project(q, 640, 480, tr)
	if !ok {
		t.Fatal("point should be in front of the eye")
	}
	if sx >= 320 {
		t.Errorf("rotated point projects to x=%f, want left of center", sx)
	}
	hit, err := picking.HitTest(sx, sy, 640, 480, tr, picking.Linear{Mesh: mesh.Square()})
	if err != nil {
		t.Fatal(err)
	}
	if !hit.Found || gomath.Abs(float64(hit.U)-0.75) > 1e-3 || gomath.Abs(float64(hit.V)-0.65) > 1e-3 {
		t.Errorf("hit = %+v, want uv (0.75, 0.65)", hit)
	}
}

func TestScaleClamp(t *testing.T) {
	c := NewModelCamera()
	c.SetScale(100)
	if c.Scale != c.MaxScale {
		t.Errorf("Scale = %f, want %f", c.Scale, c.MaxScale)
	}
	c.SetScale(0)
	if c.Scale != c.MinScale {
		t.Errorf("Scale = %f, want %f", c.Scale, c.MinScale)
	}
}

func TestScaledModelHitsCorner(t *testing.T) {
	c := NewModelCamera()
	c.SetScale(0.5)
	tr := c.Transform(640, 480)

	sx, sy, ok := picking.Project(math.Vec3{X: 0.9, Y: 0.9}, 640, 480, tr)
	if !ok {
		t.Fatal("corner should be in front of the eye")
	}
	hit, err := picking.HitTest(sx, sy, 640, 480, tr, picking.Linear{Mesh: mesh.Square()})
	if err != nil {
		t.Fatal(err)
	}
	if !hit.Found || gomath.Abs(float64(hit.U)-0.95) > 1e-3 || gomath.Abs(float64(hit.V)-0.95) > 1e-3 {
		t.Errorf("hit = %+v, want uv (0.95, 0.95)", hit)
	}
}

func TestHandleZoomClamp(t *testing.T) {
	c := NewModelCamera()
	for range 100 {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %f, want %f", c.Distance, c.MinDistance)
	}
	for range 100 {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %f, want %f", c.Distance, c.MaxDistance)
	}
}

func TestSetDistanceClamp(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{4, 4},
		{0, 0.5},
		{-3, 0.5},
		{1000, 50},
	}
	c := NewModelCamera()
	for _, tt := range tests {
		c.SetDistance(tt.in)
		if c.Distance != tt.want {
			t.Errorf("SetDistance(%v): Distance = %v, want %v", tt.in, c.Distance, tt.want)
		}
	}
}

func TestHandleDragPitchClamp(t *testing.T) {
	c := NewModelCamera()
	c.HandleDrag(0, 1e6)
	if c.Pitch != gomath.Pi/2 {
		t.Errorf("Pitch = %f, want pi/2", c.Pitch)
	}
	c.HandleDrag(200, 0)
	if gomath.Abs(float64(c.Rotation)-1) > 1e-6 {
		t.Errorf("Rotation = %f, want 1", c.Rotation)
	}
}

func TestTransformZeroHeight(t *testing.T) {
	c := NewModelCamera()
	tr := c.Transform(640, 0)
	if tr.Projection != c.Projection(1) {
		t.Error("zero height should fall back to aspect 1")
	}
}
