// Package input defines the pointer and touch events that drive painting,
// plus the view changes a session can interleave with them.
package input

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind identifies a pointer, touch or view event.
type Kind int

const (
	PointerDown Kind = iota
	PointerMove
	PointerUp
	TouchStart
	TouchMove
	TouchEnd

	Rotate // Value is the rotation slider in degrees
	Scale  // Value is the scale slider
	Drag   // X and Y are a drag delta in pixels
	Zoom   // Value is a wheel delta
	Mesh   // Name is a built-in mesh
)

var kindNames = [...]string{
	PointerDown: "down",
	PointerMove: "move",
	PointerUp:   "up",
	TouchStart:  "touchstart",
	TouchMove:   "touchmove",
	TouchEnd:    "touchend",
	Rotate:      "rotate",
	Scale:       "scale",
	Drag:        "drag",
	Zoom:        "zoom",
	Mesh:        "mesh",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts an event name such as "down" or "touchmove" to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// IsStroke reports whether the kind is pointer or touch input that paints.
// The other kinds change the view.
func (k Kind) IsStroke() bool {
	return k >= PointerDown && k <= TouchEnd
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes a kind as its name.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Event is a pointer or touch event in client coordinates, or a view change.
// Touches is the number of active touch points; zero for pointer events.
type Event struct {
	Kind    Kind    `yaml:"kind"`
	X       float32 `yaml:"x,omitempty"`
	Y       float32 `yaml:"y,omitempty"`
	Touches int     `yaml:"touches,omitempty"`
	Value   float32 `yaml:"value,omitempty"`
	Name    string  `yaml:"name,omitempty"`
}

// Bounds is the on-screen rectangle of the 3D view in client coordinates.
type Bounds struct {
	Left   float32 `yaml:"left"`
	Top    float32 `yaml:"top"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Local converts client coordinates to coordinates relative to the
// view's top-left corner.
func (b Bounds) Local(clientX, clientY float32) (x, y float32) {
	return clientX - b.Left, clientY - b.Top
}

// Queue buffers events between the input source and the dispatcher.
type Queue struct {
	events []Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Push appends events to the queue.
func (q *Queue) Push(events ...Event) {
	q.events = append(q.events, events...)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain calls fn for every pending event in arrival order and empties the queue.
func (q *Queue) Drain(fn func(Event)) {
	for _, e := range q.events {
		fn(e)
	}
	q.events = q.events[:0] // Keep capacity
}
