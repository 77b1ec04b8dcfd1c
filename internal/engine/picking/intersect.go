package picking

import (
	gomath "math"

	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// singularEpsilon bounds the determinant below which a triangle is treated
// as degenerate or parallel to the ray.
const singularEpsilon = 1e-12

// HitResult is the outcome of a ray/mesh intersection.
// U and V are the interpolated texture coordinates of the nearest hit and
// T is the ray parameter. Triangle is the index of the hit face, or -1.
type HitResult struct {
	U, V     float32
	T        float32
	Triangle int
	Found    bool
}

// Miss is the result of a ray that hits nothing.
var Miss = HitResult{Triangle: -1}

// Intersector finds the nearest triangle hit along a ray.
type Intersector interface {
	Intersect(ray Ray) HitResult
}

// Linear scans every triangle of a mesh. Cost is linear in triangle count.
type Linear struct {
	Mesh *mesh.Mesh
}

// Intersect implements Intersector.
func (l Linear) Intersect(ray Ray) HitResult {
	return Intersect(ray, l.Mesh)
}

// Intersect returns the UV of the nearest triangle hit along the ray.
// Hits behind the origin and degenerate triangles are ignored. When two
// triangles are hit at exactly the same distance, the first one in index
// order wins.
func Intersect(ray Ray, m *mesh.Mesh) HitResult {
	best := Miss
	bestT := float32(gomath.Inf(1))

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		beta, gamma, t, ok := solveTriangle(ray, tri)
		if !ok || t >= bestT {
			continue
		}
		bestT = t
		best = hitFor(tri, i, beta, gamma, t)
	}
	return best
}

// solveTriangle solves [p1-p0 | p2-p0 | -dir] * (beta, gamma, t) = origin - p0
// with Cramer's rule. ok is false if the system is singular, the solution
// lies outside the closed triangle, or the hit is behind the ray origin.
//
// The solve runs in float64 so that a ray crossing an edge shared by two
// triangles is inside at least one of them.
func solveTriangle(ray Ray, tri mesh.Triangle) (beta, gamma, t float32, ok bool) {
	p0 := vec64(tri.P0)
	e1 := vec64(tri.P1).sub(p0)
	e2 := vec64(tri.P2).sub(p0)
	nd := vec64(ray.Direction.Negate())
	b := vec64(ray.Origin).sub(p0)

	// det[a|b|c] = a . (b x c)
	e2xnd := e2.cross(nd)
	det := e1.dot(e2xnd)
	if gomath.Abs(det) < singularEpsilon {
		return 0, 0, 0, false
	}
	inv := 1 / det

	b64 := b.dot(e2xnd) * inv
	g64 := e1.dot(b.cross(nd)) * inv
	t64 := e1.dot(e2.cross(b)) * inv

	if b64 < 0 || g64 < 0 || b64+g64 > 1 || t64 < 0 {
		return 0, 0, 0, false
	}
	return float32(b64), float32(g64), float32(t64), true
}

// vec3d is the float64 working vector of solveTriangle.
type vec3d struct{ x, y, z float64 }

func vec64(v math.Vec3) vec3d {
	return vec3d{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (a vec3d) sub(b vec3d) vec3d { return vec3d{a.x - b.x, a.y - b.y, a.z - b.z} }

func (a vec3d) dot(b vec3d) float64 { return a.x*b.x + a.y*b.y + a.z*b.z }

func (a vec3d) cross(b vec3d) vec3d {
	return vec3d{
		a.y*b.z - a.z*b.y,
		a.z*b.x - a.x*b.z,
		a.x*b.y - a.y*b.x,
	}
}

func hitFor(tri mesh.Triangle, index int, beta, gamma, t float32) HitResult {
	uv := math.Barycentric(tri.UV0, tri.UV1, tri.UV2, beta, gamma)
	return HitResult{
		U:        uv.X,
		V:        uv.Y,
		T:        t,
		Triangle: index,
		Found:    true,
	}
}

// HitTest unprojects a viewport pixel and intersects the resulting ray.
// A transform that cannot be inverted is returned as an error; a ray that
// misses the mesh is a HitResult with Found == false.
func HitTest(screenX, screenY, viewportW, viewportH float32, tr Transform, ix Intersector) (HitResult, error) {
	ray, err := Unproject(screenX, screenY, viewportW, viewportH, tr)
	if err != nil {
		return Miss, err
	}
	return ix.Intersect(ray), nil
}
