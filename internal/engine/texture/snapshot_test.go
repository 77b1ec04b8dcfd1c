package texture

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSnapshots(t *testing.T) {
	c := newTestCanvas(t, DefaultOptions())
	dir := filepath.Join(t.TempDir(), "frames")
	s := NewSnapshots(dir, "stroke")

	if want := filepath.Join(dir, "stroke_0001.png"); s.NextFilename() != want {
		t.Errorf("NextFilename = %s, want %s", s.NextFilename(), want)
	}

	for i := range 2 {
		c.Paint(0.1*float32(i+1), 0.5, true)
		path, err := s.Capture(c)
		if err != nil {
			t.Fatalf("Capture %d: %v", i, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("frame %s not written: %v", path, err)
		}
	}
	if s.Count() != 2 {
		t.Errorf("Count = %d, want 2", s.Count())
	}
	if _, err := os.Stat(filepath.Join(dir, "stroke_0002.png")); err != nil {
		t.Errorf("second frame missing: %v", err)
	}
}
