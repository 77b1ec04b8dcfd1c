package picking

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/pkg/math"
)

const (
	// DefaultLeafSize is the triangle count below which nodes stop splitting.
	DefaultLeafSize = 4

	// boxPadding grows node boxes so hits on a box face are never culled.
	boxPadding = 1e-4
)

// BVH is a bounding-volume hierarchy over a mesh's triangles.
// It returns the same results as Linear, including the tie-break on index.
type BVH struct {
	mesh  *mesh.Mesh
	nodes []bvhNode
	order []int // triangle indices, leaves reference ranges of it
}

type bvhNode struct {
	box         AABB
	left, right int // child node indices, -1 for leaves
	start, end  int // range into order for leaves
}

// NewBVH builds a hierarchy using median splits along the longest axis.
// leafSize <= 0 selects DefaultLeafSize.
func NewBVH(m *mesh.Mesh, leafSize int) *BVH {
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}

	count := m.TriangleCount()
	b := &BVH{
		mesh:  m,
		order: make([]int, count),
		nodes: make([]bvhNode, 0, 2*count/leafSize+1),
	}

	boxes := make([]AABB, count)
	centroids := make([]math.Vec3, count)
	for i := range count {
		boxes[i] = FromBounds(m.Triangle(i).Bounds())
		centroids[i] = boxes[i].Min.Add(boxes[i].Max).Scale(0.5)
		b.order[i] = i
	}

	if count > 0 {
		b.build(0, count, leafSize, boxes, centroids)
	}
	return b
}

func (b *BVH) build(start, end, leafSize int, boxes []AABB, centroids []math.Vec3) int {
	box := boxes[b.order[start]]
	centroidBox := NewAABB(centroids[b.order[start]], centroids[b.order[start]])
	for _, tri := range b.order[start+1 : end] {
		box = box.Union(boxes[tri])
		centroidBox = centroidBox.Union(NewAABB(centroids[tri], centroids[tri]))
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, bvhNode{
		box:   box.Expand(boxPadding),
		left:  -1,
		right: -1,
		start: start,
		end:   end,
	})

	if end-start <= leafSize {
		return idx
	}

	axis := centroidBox.LongestAxis()
	span := b.order[start:end]
	sort.SliceStable(span, func(i, j int) bool {
		return centroids[span[i]].Axis(axis) < centroids[span[j]].Axis(axis)
	})

	mid := start + (end-start)/2
	left := b.build(start, mid, leafSize, boxes, centroids)
	right := b.build(mid, end, leafSize, boxes, centroids)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	return idx
}

// Mesh returns the mesh the hierarchy was built over.
func (b *BVH) Mesh() *mesh.Mesh {
	return b.mesh
}

// NodeCount returns the number of nodes in the hierarchy.
func (b *BVH) NodeCount() int {
	return len(b.nodes)
}

// Intersect implements Intersector.
func (b *BVH) Intersect(ray Ray) HitResult {
	best := Miss
	bestT := float32(gomath.Inf(1))
	if len(b.nodes) == 0 {
		return best
	}

	stack := make([]int, 0, 64)
	stack = append(stack, 0)
	for len(stack) > 0 {
		node := &b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		tmin, _, hit := ray.slabs(node.box)
		// Equal distances are kept so a lower triangle index can still win.
		if !hit || tmin > bestT {
			continue
		}

		if node.left >= 0 {
			stack = append(stack, node.right, node.left)
			continue
		}

		for _, i := range b.order[node.start:node.end] {
			tri := b.mesh.Triangle(i)
			beta, gamma, t, ok := solveTriangle(ray, tri)
			if !ok || t > bestT || (t == bestT && i > best.Triangle) {
				continue
			}
			bestT = t
			best = hitFor(tri, i, beta, gamma, t)
		}
	}
	return best
}
