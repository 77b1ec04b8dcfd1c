package picking

import (
	gomath "math"

	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners, handling swapped components.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// FromBounds converts mesh bounds to an AABB.
func FromBounds(b mesh.Bounds) AABB {
	return NewAABB(b.Min, b.Max)
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Expand grows the box by eps on every side.
func (b AABB) Expand(eps float32) AABB {
	d := math.Vec3{X: eps, Y: eps, Z: eps}
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// LongestAxis returns 0, 1 or 2 for the box's widest extent.
func (b AABB) LongestAxis() int {
	size := b.Max.Sub(b.Min)
	axis := 0
	if size.Y > size.Axis(axis) {
		axis = 1
	}
	if size.Z > size.Axis(axis) {
		axis = 2
	}
	return axis
}

// slabs returns the parametric interval [tmin, tmax] where the ray's line
// is inside the box. hit is false when the interval is empty or behind the origin.
func (r Ray) slabs(box AABB) (tmin, tmax float32, hit bool) {
	tmin = float32(-gomath.MaxFloat32)
	tmax = float32(gomath.MaxFloat32)

	for axis := range 3 {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo := box.Min.Axis(axis)
		hi := box.Max.Axis(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}
