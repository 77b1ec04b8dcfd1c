// Package replay loads recorded pointer and touch sessions and feeds them
// to a stroke controller.
package replay

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshpaint/internal/engine/input"
	"github.com/Faultbox/meshpaint/internal/logger"
)

// ErrEmptyScript is returned for a script without events.
var ErrEmptyScript = errors.New("replay script has no events")

// Script is a recorded input session. Event coordinates are client
// coordinates; Bounds is where the 3D view sat on screen.
type Script struct {
	Bounds input.Bounds  `yaml:"bounds"`
	Events []input.Event `yaml:"events"`
}

// Handler receives replayed events. *stroke.Controller satisfies it.
type Handler interface {
	SetBounds(b input.Bounds)
	Handle(e input.Event)
}

// Parse decodes a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and decodes a YAML script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay script: %w", err)
	}
	return Parse(data)
}

// Validate checks the view rectangle and that there is something to replay.
func (s *Script) Validate() error {
	if s.Bounds.Width <= 0 || s.Bounds.Height <= 0 {
		return fmt.Errorf("replay bounds must be positive, got %vx%v", s.Bounds.Width, s.Bounds.Height)
	}
	if len(s.Events) == 0 {
		return ErrEmptyScript
	}
	return nil
}

// Save validates the script and writes it as YAML.
func (s *Script) Save(path string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal replay script: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write replay script: %w", err)
	}
	return nil
}

// Run sets the handler's bounds and delivers every event in order.
// It returns the number of events delivered.
func Run(s *Script, h Handler) int {
	q := input.NewQueue()
	q.Push(s.Events...)
	count := q.Len()

	h.SetBounds(s.Bounds)
	q.Drain(h.Handle)

	logger.Debug("replay finished", zap.Int("events", count))
	return count
}

// Recorder collects events into a Script.
type Recorder struct {
	script Script
}

// NewRecorder creates a recorder for a view at bounds.
func NewRecorder(bounds input.Bounds) *Recorder {
	return &Recorder{script: Script{Bounds: bounds}}
}

// Record appends an event.
func (r *Recorder) Record(e input.Event) {
	r.script.Events = append(r.script.Events, e)
}

// Script returns the recorded session.
func (r *Recorder) Script() *Script {
	s := r.script
	s.Events = append([]input.Event(nil), r.script.Events...)
	return &s
}

// Line records a straight stroke from (x0, y0) to (x1, y1) in client
// coordinates: a down, steps evenly spaced moves ending on (x1, y1), and
// an up. touch records a one-finger touch sequence instead of a pointer.
func (r *Recorder) Line(x0, y0, x1, y1 float32, steps int, touch bool) {
	steps = max(steps, 1)
	down, move, up := input.PointerDown, input.PointerMove, input.PointerUp
	touches := 0
	if touch {
		down, move, up = input.TouchStart, input.TouchMove, input.TouchEnd
		touches = 1
	}

	r.Record(input.Event{Kind: down, X: x0, Y: y0, Touches: touches})
	for i := 1; i <= steps; i++ {
		f := float32(i) / float32(steps)
		r.Record(input.Event{Kind: move, X: x0 + (x1-x0)*f, Y: y0 + (y1-y0)*f, Touches: touches})
	}
	r.Record(input.Event{Kind: up})
}
