package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0, 5}, Vec3{-1, 0, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformPointHomogeneousDivide(t *testing.T) {
	var m Mat4 = Scale(1, 1, 1)
	m[15] = 2
	got := m.TransformPoint(Vec3{2, 4, 6})
	want := Vec3{1, 2, 3}
	if got != want {
		t.Errorf("TransformPoint with w=2: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// (1,0,0) rotated 90 degrees about Y lands on (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	// A point on the near plane maps to NDC z = -1, far plane to +1.
	near := m.TransformPoint(Vec3{0, 0, -0.1})
	far := m.TransformPoint(Vec3{0, 0, -100})
	if abs(near.Z+1) > 1e-3 {
		t.Errorf("near plane z = %f, want -1", near.Z)
	}
	if abs(far.Z-1) > 1e-3 {
		t.Errorf("far plane z = %f, want 1", far.Z)
	}
}

func TestInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"translate", Translate(1, -2, 3)},
		{"rotate", RotateX(0.3).Mul(RotateY(1.1))},
		{"perspective", Perspective(0.8, 1.5, 0.1, 100).Mul(Translate(0, 0, -5))},
		{"scale", Scale(2, 0.5, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if !ok {
				t.Fatal("expected matrix to be invertible")
			}
			product := tt.m.Mul(inv)
			id := Identity()
			for i := range product {
				if abs(product[i]-id[i]) > 1e-4 {
					t.Errorf("M * M^-1 element %d = %f, want %f", i, product[i], id[i])
				}
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"zero", Mat4{}},
		{"flatten z", Scale(1, 1, 0)},
		{"duplicate columns", Mat4{
			1, 2, 3, 0,
			1, 2, 3, 0,
			0, 0, 1, 0,
			0, 0, 0, 1,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.m.Inverse(); ok {
				t.Error("expected singular matrix to report !ok")
			}
		})
	}
}

func TestMulVec4(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.MulVec4(Vec4{1, 1, 1, 0})
	want := Vec4{1, 1, 1, 0}
	if got != want {
		t.Errorf("direction should ignore translation: got %v, want %v", got, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
