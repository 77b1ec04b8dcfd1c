package main

import "testing"

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		x, y    float32
		wantErr bool
	}{
		{"200,240", 200, 240, false},
		{" 1.5 , 2.5 ", 1.5, 2.5, false},
		{"200", 0, 0, true},
		{"a,1", 0, 0, true},
		{"1,b", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parsePoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (x != tt.x || y != tt.y) {
			t.Errorf("parsePoint(%q) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.x, tt.y)
		}
	}
}
