package texture

import (
	"fmt"
	"os"
	"path/filepath"
)

// Snapshots writes numbered PNG frames of a canvas, one per texture upload.
type Snapshots struct {
	outputDir string
	prefix    string
	seq       int
}

// NewSnapshots creates a frame writer. Frames are named <prefix>_0001.png
// and so on inside outputDir.
func NewSnapshots(outputDir, prefix string) *Snapshots {
	return &Snapshots{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// Capture saves the canvas as the next frame and returns its path.
func (s *Snapshots) Capture(c *Canvas) (string, error) {
	// Create output directory if needed
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.NextFilename()
	if err := c.SavePNG(filename); err != nil {
		return "", fmt.Errorf("saving frame: %w", err)
	}
	s.seq++
	return filename, nil
}

// NextFilename returns the path the next frame will be written to.
func (s *Snapshots) NextFilename() string {
	filename := fmt.Sprintf("%s_%04d.png", s.prefix, s.seq+1)
	if s.outputDir != "" {
		filename = filepath.Join(s.outputDir, filename)
	}
	return filename
}

// Count returns the number of frames written.
func (s *Snapshots) Count() int {
	return s.seq
}
