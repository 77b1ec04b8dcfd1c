package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	got := Vec2{1, 2}.Add(Vec2{3, 4})
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestBarycentric(t *testing.T) {
	a, b, c := Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1}
	tests := []struct {
		beta, gamma float32
		want        Vec2
	}{
		{0, 0, a},
		{1, 0, b},
		{0, 1, c},
		{0.25, 0.5, Vec2{0.25, 0.5}},
	}
	for _, tt := range tests {
		if got := Barycentric(a, b, c, tt.beta, tt.gamma); got != tt.want {
			t.Errorf("Barycentric(%v, %v) = %v, want %v", tt.beta, tt.gamma, got, tt.want)
		}
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, 0, -1}
	if got := a.Min(b); got != (Vec3{1, 0, -2}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{3, 5, -1}) {
		t.Errorf("Max = %v", got)
	}
	if a.Axis(0) != 1 || a.Axis(1) != 5 || a.Axis(2) != -2 {
		t.Errorf("Axis returned wrong components for %v", a)
	}
}

func TestV3FromSlice(t *testing.T) {
	s := []float32{0, 1, 2, 3, 4, 5}
	if got := V3(s, 3); got != (Vec3{3, 4, 5}) {
		t.Errorf("V3 = %v", got)
	}
	if got := V2(s, 4); got != (Vec2{4, 5}) {
		t.Errorf("V2 = %v", got)
	}
}
