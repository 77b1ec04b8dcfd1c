// Package stroke turns pointer and touch events into paint strokes on a mesh.
//
// The Controller is a two-state machine. While Idle it waits for a pointer
// down or the first touch of a gesture; while Stroking every move is hit
// tested against the scene and forwarded to the painter as texture-space
// coordinates.
package stroke

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/meshpaint/internal/engine/input"
	"github.com/Faultbox/meshpaint/internal/engine/picking"
	"github.com/Faultbox/meshpaint/internal/logger"
)

// State is the controller's position in the stroke state machine.
type State int

const (
	Idle State = iota
	Stroking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Stroking:
		return "stroking"
	default:
		return "unknown"
	}
}

// HitTester maps a viewport pixel to a texture-space hit.
// *scene.Scene satisfies it.
type HitTester interface {
	HitTest(screenX, screenY, viewportW, viewportH float32) (picking.HitResult, error)
}

// PaintFunc receives texture coordinates of a stroke sample. isStart is true
// for the first sample of a stroke.
type PaintFunc func(u, v float32, isStart bool)

// Stats counts what the controller has processed since creation.
type Stats struct {
	Events   int // events delivered to an entry point
	Strokes  int // Idle to Stroking transitions
	Cancels  int // strokes ended by ambiguous multi-touch input
	Hits     int // samples forwarded to the painter
	Misses   int // hit tests that found no triangle
	Failures int // hit tests that could not build a ray
}

// Controller is the stroke state machine. It is not safe for concurrent
// use; events are expected from a single dispatch goroutine.
type Controller struct {
	target HitTester
	paint  PaintFunc
	bounds input.Bounds
	state  State
	stats  Stats
}

// NewController creates an Idle controller. bounds is the on-screen
// rectangle of the view in client coordinates.
func NewController(target HitTester, bounds input.Bounds, paint PaintFunc) *Controller {
	return &Controller{
		target: target,
		paint:  paint,
		bounds: bounds,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Stats returns a copy of the event counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// Bounds returns the view rectangle.
func (c *Controller) Bounds() input.Bounds {
	return c.bounds
}

// SetBounds updates the view rectangle after a resize or layout change.
func (c *Controller) SetBounds(b input.Bounds) {
	c.bounds = b
}

// Handle dispatches an event to the matching entry point.
func (c *Controller) Handle(e input.Event) {
	switch e.Kind {
	case input.PointerDown:
		c.PointerDown(e.X, e.Y)
	case input.PointerMove:
		c.PointerMove(e.X, e.Y)
	case input.PointerUp:
		c.PointerUp()
	case input.TouchStart:
		c.TouchStart(e.X, e.Y, e.Touches)
	case input.TouchMove:
		c.TouchMove(e.X, e.Y, e.Touches)
	case input.TouchEnd:
		c.TouchEnd()
	default:
		logger.Debug("ignoring event", zap.Stringer("kind", e.Kind))
	}
}

// PointerDown starts a stroke at the client point. A duplicate down while
// already stroking is ignored.
func (c *Controller) PointerDown(clientX, clientY float32) {
	c.stats.Events++
	if c.state == Stroking {
		return
	}
	c.begin(clientX, clientY)
}

// PointerMove continues the current stroke. Moves while Idle are ignored.
func (c *Controller) PointerMove(clientX, clientY float32) {
	c.stats.Events++
	if c.state != Stroking {
		return
	}
	c.sample(clientX, clientY, false)
}

// PointerUp ends the current stroke.
func (c *Controller) PointerUp() {
	c.stats.Events++
	c.state = Idle
}

// TouchStart starts a stroke for the first touch of a gesture. touches is
// the number of active touch points; zero is treated as one. A further
// touch while stroking cancels the stroke.
func (c *Controller) TouchStart(clientX, clientY float32, touches int) {
	c.stats.Events++
	touches = max(touches, 1)

	switch {
	case c.state == Stroking && touches > 1:
		c.cancel(touches)
	case c.state == Stroking:
		// Same gesture reported twice.
	case touches == 1:
		c.begin(clientX, clientY)
	}
}

// TouchMove continues the current stroke with a single touch point. Moves
// with more than one touch cancel the stroke.
func (c *Controller) TouchMove(clientX, clientY float32, touches int) {
	c.stats.Events++
	if c.state != Stroking {
		return
	}
	if touches = max(touches, 1); touches != 1 {
		c.cancel(touches)
		return
	}
	c.sample(clientX, clientY, false)
}

// TouchEnd ends the current stroke.
func (c *Controller) TouchEnd() {
	c.stats.Events++
	c.state = Idle
}

func (c *Controller) begin(clientX, clientY float32) {
	c.state = Stroking
	c.stats.Strokes++
	c.sample(clientX, clientY, true)
}

func (c *Controller) cancel(touches int) {
	c.state = Idle
	c.stats.Cancels++
	logger.Debug("stroke cancelled", zap.Int("touches", touches))
}

// sample hit tests a client point and forwards a hit to the painter.
// Failures leave the state untouched.
func (c *Controller) sample(clientX, clientY float32, isStart bool) {
	x, y := c.bounds.Local(clientX, clientY)
	hit, err := c.target.HitTest(x, y, c.bounds.Width, c.bounds.Height)
	if err != nil {
		c.stats.Failures++
		if errors.Is(err, picking.ErrNonInvertible) {
			logger.Warn("skipping sample: transform not invertible", zap.Error(err))
		} else {
			logger.Warn("skipping sample", zap.Error(err),
				zap.Float32("x", x), zap.Float32("y", y))
		}
		return
	}
	if !hit.Found {
		c.stats.Misses++
		logger.Debug("no intersection", zap.Float32("x", x), zap.Float32("y", y))
		return
	}

	c.stats.Hits++
	if c.paint != nil {
		c.paint(hit.U, hit.V, isStart)
	}
}
