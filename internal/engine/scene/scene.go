// Package scene holds the live mesh and transform that hit tests read from.
// The rendering layer swaps the mesh or updates the transform between events;
// every hit test works on one consistent snapshot of both.
package scene

import (
	"sync"

	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/internal/engine/picking"
)

// Frame is an immutable snapshot of the scene used for a single hit test.
type Frame struct {
	Mesh        *mesh.Mesh
	Intersector picking.Intersector
	Transform   picking.Transform
}

// Scene is safe for concurrent use: writers replace whole values under a
// lock and readers take a Frame copy.
type Scene struct {
	mu        sync.RWMutex
	mesh      *mesh.Mesh
	ix        picking.Intersector
	transform picking.Transform
	useBVH    bool
}

// New creates a scene around m. With useBVH the mesh is indexed by a
// bounding-volume hierarchy, otherwise triangles are scanned linearly.
func New(m *mesh.Mesh, tr picking.Transform, useBVH bool) *Scene {
	s := &Scene{useBVH: useBVH, transform: tr}
	s.mesh, s.ix = m, s.intersectorFor(m)
	return s
}

func (s *Scene) intersectorFor(m *mesh.Mesh) picking.Intersector {
	if s.useBVH {
		return picking.NewBVH(m, picking.DefaultLeafSize)
	}
	return picking.Linear{Mesh: m}
}

// SetMesh swaps the mesh wholesale. The acceleration structure is built
// before the lock is taken so in-flight hit tests are not blocked.
func (s *Scene) SetMesh(m *mesh.Mesh) {
	ix := s.intersectorFor(m)

	s.mu.Lock()
	s.mesh, s.ix = m, ix
	s.mu.Unlock()
}

// SetTransform replaces the projection and model-view matrices.
func (s *Scene) SetTransform(tr picking.Transform) {
	s.mu.Lock()
	s.transform = tr
	s.mu.Unlock()
}

// Mesh returns the current mesh.
func (s *Scene) Mesh() *mesh.Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mesh
}

// Transform returns the current transform.
func (s *Scene) Transform() picking.Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

// Snapshot returns the mesh, intersector and transform as one consistent Frame.
func (s *Scene) Snapshot() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Frame{Mesh: s.mesh, Intersector: s.ix, Transform: s.transform}
}

// HitTest runs the unproject and intersect pipeline for a viewport pixel
// against a fresh snapshot.
func (s *Scene) HitTest(screenX, screenY, viewportW, viewportH float32) (picking.HitResult, error) {
	f := s.Snapshot()
	return picking.HitTest(screenX, screenY, viewportW, viewportH, f.Transform, f.Intersector)
}
