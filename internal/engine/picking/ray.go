// Package picking turns screen-space pointer positions into texture-space hits.
//
// A hit test runs in two steps: Unproject builds an object-space ray from a
// viewport pixel and the current Transform, then an Intersector walks the
// mesh triangles and interpolates the UV of the nearest hit.
package picking

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshpaint/pkg/math"
)

var (
	// ErrNonInvertible is returned when projection*modelView or modelView is singular.
	ErrNonInvertible = errors.New("transform is not invertible")

	// ErrInvalidViewport is returned for a viewport without positive width and height.
	ErrInvalidViewport = errors.New("viewport must have positive size")

	// ErrDegenerateRay is returned when the unprojected point coincides with the eye.
	ErrDegenerateRay = errors.New("ray has no direction")
)

// farClipZ is the clip-space depth used to pick a point far along the view ray.
const farClipZ = 1.0

// Transform is the projection and model-view pair used for the current frame.
type Transform struct {
	Projection math.Mat4
	ModelView  math.Mat4
}

// Ray represents a ray in object space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point Origin + t*Direction.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Unproject converts viewport pixel coordinates to an object-space ray.
// screenX and screenY are relative to the viewport's top-left corner.
// The ray starts at the eye and points through the pixel.
func Unproject(screenX, screenY, viewportW, viewportH float32, tr Transform) (Ray, error) {
	if viewportW <= 0 || viewportH <= 0 {
		return Ray{}, fmt.Errorf("%w: %vx%v", ErrInvalidViewport, viewportW, viewportH)
	}

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	unprojectMatrix, ok := tr.Projection.Mul(tr.ModelView).Inverse()
	if !ok {
		return Ray{}, fmt.Errorf("%w: projection*modelView", ErrNonInvertible)
	}
	worldToObject, ok := tr.ModelView.Inverse()
	if !ok {
		return Ray{}, fmt.Errorf("%w: modelView", ErrNonInvertible)
	}

	// TransformPoint performs the perspective divide.
	farPoint := unprojectMatrix.TransformPoint(math.Vec3{X: ndcX, Y: ndcY, Z: farClipZ})

	// The eye sits at the view-space origin.
	origin := worldToObject.TransformPoint(math.Vec3{})

	dir := farPoint.Sub(origin).Normalize()
	if dir == (math.Vec3{}) {
		return Ray{}, ErrDegenerateRay
	}

	return Ray{Origin: origin, Direction: dir}, nil
}

// Project maps an object-space point to viewport pixel coordinates.
// ok is false when the point is at or behind the eye plane.
func Project(p math.Vec3, viewportW, viewportH float32, tr Transform) (screenX, screenY float32, ok bool) {
	clip := tr.Projection.Mul(tr.ModelView).MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]

	screenX = (ndcX + 1) / 2 * viewportW
	screenY = (1 - ndcY) / 2 * viewportH
	return screenX, screenY, true
}
