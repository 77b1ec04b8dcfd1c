// Package mesh holds the indexed triangle list that strokes are painted onto.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/meshpaint/pkg/math"
)

// ErrInvalidMesh is returned when mesh buffers violate the indexing invariants.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle list with one UV per vertex.
// Buffers are flat, matching what is uploaded to the GPU:
// Vertices holds x,y,z triples, UVs holds u,v pairs and Indices holds
// one triple per triangle. A Mesh must not be mutated once built.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	UVs      []float32
}

// Bounds holds an axis-aligned bounding box in object space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Triangle is one resolved face of a mesh.
type Triangle struct {
	P0, P1, P2    math.Vec3
	UV0, UV1, UV2 math.Vec2
}

// New validates the buffers and returns a Mesh that shares them.
func New(vertices []float32, indices []uint32, uvs []float32) (*Mesh, error) {
	if len(vertices)%3 != 0 {
		return nil, fmt.Errorf("%w: vertex buffer length %d is not a multiple of 3", ErrInvalidMesh, len(vertices))
	}
	if len(uvs)%2 != 0 {
		return nil, fmt.Errorf("%w: uv buffer length %d is not a multiple of 2", ErrInvalidMesh, len(uvs))
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: index buffer length %d is not a multiple of 3", ErrInvalidMesh, len(indices))
	}

	limit := min(len(vertices)/3, len(uvs)/2)
	for i, idx := range indices {
		if int(idx) >= limit {
			return nil, fmt.Errorf("%w: index %d at position %d out of range (limit %d)", ErrInvalidMesh, idx, i, limit)
		}
	}

	return &Mesh{Vertices: vertices, Indices: indices, UVs: uvs}, nil
}

// MustNew is like New but panics on invalid buffers. Intended for built-in meshes.
func MustNew(vertices []float32, indices []uint32, uvs []float32) *Mesh {
	m, err := New(vertices, indices, uvs)
	if err != nil {
		panic(err)
	}
	return m
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle resolves the positions and UVs of triangle i.
func (m *Mesh) Triangle(i int) Triangle {
	i0 := int(m.Indices[i*3])
	i1 := int(m.Indices[i*3+1])
	i2 := int(m.Indices[i*3+2])

	return Triangle{
		P0:  math.V3(m.Vertices, i0*3),
		P1:  math.V3(m.Vertices, i1*3),
		P2:  math.V3(m.Vertices, i2*3),
		UV0: math.V2(m.UVs, i0*2),
		UV1: math.V2(m.UVs, i1*2),
		UV2: math.V2(m.UVs, i2*2),
	}
}

// Bounds returns the bounding box of all referenced vertices.
// An empty mesh returns a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Indices) == 0 {
		return Bounds{}
	}

	first := math.V3(m.Vertices, int(m.Indices[0])*3)
	b := Bounds{Min: first, Max: first}
	for _, idx := range m.Indices {
		p := math.V3(m.Vertices, int(idx)*3)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Center returns the center of the bounding box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Bounds returns the bounding box of the triangle.
func (t Triangle) Bounds() Bounds {
	return Bounds{
		Min: t.P0.Min(t.P1).Min(t.P2),
		Max: t.P0.Max(t.P1).Max(t.P2),
	}
}
