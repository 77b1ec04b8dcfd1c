package mesh

import "fmt"

// Square returns the unit square [-1,1]x[-1,1] at z=0, split into two
// triangles with UV (0,0) at the bottom-left corner and (1,1) at the top-right.
func Square() *Mesh {
	return MustNew(
		[]float32{
			-1, -1, 0,
			-1, 1, 0,
			1, -1, 0,
			1, 1, 0,
		},
		[]uint32{
			0, 1, 3,
			0, 3, 2,
		},
		[]float32{
			0, 0,
			0, 1,
			1, 0,
			1, 1,
		},
	)
}

// Folded returns the unit square plus a floor face that folds away from
// the bottom edge to z=-2, so the texture wraps over a corner.
func Folded() *Mesh {
	return MustNew(
		[]float32{
			-1, -1, 0,
			-1, 1, 0,
			1, -1, 0,
			1, 1, 0,
			-1, -1, -2,
			1, -1, -2,
		},
		[]uint32{
			0, 1, 3,
			0, 3, 2,
			0, 4, 2,
			4, 5, 2,
		},
		[]float32{
			0, 0,
			0, 1,
			1, 0,
			1, 1,
			0, 1,
			1, 1,
		},
	)
}

// Grid returns the unit square tessellated into divisions x divisions cells,
// with the same UV mapping as Square.
func Grid(divisions int) *Mesh {
	if divisions < 1 {
		divisions = 1
	}
	n := divisions + 1

	vertices := make([]float32, 0, n*n*3)
	uvs := make([]float32, 0, n*n*2)
	for row := range n {
		v := float32(row) / float32(divisions)
		for col := range n {
			u := float32(col) / float32(divisions)
			vertices = append(vertices, 2*u-1, 2*v-1, 0)
			uvs = append(uvs, u, v)
		}
	}

	indices := make([]uint32, 0, divisions*divisions*6)
	for row := range divisions {
		for col := range divisions {
			bl := uint32(row*n + col)
			br := bl + 1
			tl := bl + uint32(n)
			tr := tl + 1
			indices = append(indices, bl, tl, tr, bl, tr, br)
		}
	}

	return MustNew(vertices, indices, uvs)
}

// ByName returns a built-in mesh: "square", "folded" or "grid".
func ByName(name string, divisions int) (*Mesh, error) {
	switch name {
	case "", "square":
		return Square(), nil
	case "folded":
		return Folded(), nil
	case "grid":
		return Grid(divisions), nil
	default:
		return nil, fmt.Errorf("unknown mesh %q", name)
	}
}
