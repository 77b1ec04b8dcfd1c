package stroke

import (
	"fmt"
	gomath "math"
	"testing"

	"github.com/Faultbox/meshpaint/internal/engine/input"
	"github.com/Faultbox/meshpaint/internal/engine/mesh"
	"github.com/Faultbox/meshpaint/internal/engine/picking"
	"github.com/Faultbox/meshpaint/internal/engine/scene"
	"github.com/Faultbox/meshpaint/pkg/math"
)

// fakeTarget hits for local x below 100 and reports u = x/100, v = y/100.
type fakeTarget struct {
	err   error
	calls int
	lastW float32
	lastH float32
}

func (f *fakeTarget) HitTest(x, y, w, h float32) (picking.HitResult, error) {
	f.calls++
	f.lastW, f.lastH = w, h
	if f.err != nil {
		return picking.Miss, f.err
	}
	if x >= 100 {
		return picking.Miss, nil
	}
	return picking.HitResult{U: x / 100, V: y / 100, T: 1, Found: true}, nil
}

type sample struct {
	u, v    float32
	isStart bool
}

type recorder struct {
	samples []sample
}

func (r *recorder) paint(u, v float32, isStart bool) {
	r.samples = append(r.samples, sample{u, v, isStart})
}

func (r *recorder) starts() []bool {
	out := make([]bool, len(r.samples))
	for i, s := range r.samples {
		out[i] = s.isStart
	}
	return out
}

var testBounds = input.Bounds{Left: 0, Top: 0, Width: 200, Height: 200}

func newTestController() (*Controller, *fakeTarget, *recorder) {
	target := &fakeTarget{}
	rec := &recorder{}
	return NewController(target, testBounds, rec.paint), target, rec
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPointerStroke(t *testing.T) {
	c, _, rec := newTestController()

	c.PointerDown(10, 10)
	c.PointerMove(20, 10)
	c.PointerMove(30, 10)
	c.PointerMove(40, 10)
	c.PointerUp()
	if c.State() != Idle {
		t.Fatalf("state after up = %v, want idle", c.State())
	}
	c.PointerDown(50, 50)

	want := []bool{true, false, false, false, true}
	if got := rec.starts(); !equalBools(got, want) {
		t.Fatalf("isStart sequence = %v, want %v", got, want)
	}
	if rec.samples[1].u != 0.2 || rec.samples[1].v != 0.1 {
		t.Errorf("second sample = %+v, want u=0.2 v=0.1", rec.samples[1])
	}

	st := c.Stats()
	if st.Strokes != 2 || st.Hits != 5 || st.Events != 6 {
		t.Errorf("stats = %+v", st)
	}
}

func TestMoveWhileIdleIgnored(t *testing.T) {
	c, target, rec := newTestController()
	c.PointerMove(10, 10)
	c.TouchMove(10, 10, 1)
	if target.calls != 0 || len(rec.samples) != 0 {
		t.Errorf("idle moves ran %d hit tests and painted %d samples", target.calls, len(rec.samples))
	}
	if c.State() != Idle {
		t.Errorf("state = %v, want idle", c.State())
	}
}

func TestMissEmitsNothing(t *testing.T) {
	c, _, rec := newTestController()

	// Down on empty space still starts the stroke.
	c.PointerDown(150, 10)
	if c.State() != Stroking {
		t.Fatalf("state = %v, want stroking", c.State())
	}
	c.PointerMove(160, 10)
	c.PointerMove(20, 10)

	if len(rec.samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(rec.samples))
	}
	if rec.samples[0].isStart {
		t.Error("sample after a missed down should continue the stroke")
	}
	if st := c.Stats(); st.Misses != 2 || st.Hits != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDuplicateDownIgnored(t *testing.T) {
	c, target, rec := newTestController()
	c.PointerDown(10, 10)
	c.PointerDown(20, 20)
	c.TouchStart(30, 30, 1)

	if target.calls != 1 {
		t.Errorf("hit tests = %d, want 1", target.calls)
	}
	if len(rec.samples) != 1 || !rec.samples[0].isStart {
		t.Errorf("samples = %+v, want one start", rec.samples)
	}
	if c.Stats().Strokes != 1 {
		t.Errorf("strokes = %d, want 1", c.Stats().Strokes)
	}
}

func TestSecondTouchCancels(t *testing.T) {
	c, _, rec := newTestController()

	c.TouchStart(10, 10, 1)
	c.TouchMove(20, 10, 1)
	c.TouchStart(80, 80, 2)
	if c.State() != Idle {
		t.Fatalf("state after second touch = %v, want idle", c.State())
	}
	before := len(rec.samples)

	// Remaining finger keeps moving and lifts; nothing is painted.
	c.TouchMove(30, 10, 1)
	c.TouchEnd()
	if len(rec.samples) != before {
		t.Errorf("painted %d samples after cancel", len(rec.samples)-before)
	}

	c.TouchStart(40, 40, 1)
	c.TouchMove(50, 40, 1)
	c.TouchEnd()

	want := []bool{true, false, true, false}
	if got := rec.starts(); !equalBools(got, want) {
		t.Fatalf("isStart sequence = %v, want %v", got, want)
	}
	if st := c.Stats(); st.Cancels != 1 || st.Strokes != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestMultiTouchMoveCancels(t *testing.T) {
	c, _, rec := newTestController()
	c.TouchStart(10, 10, 1)
	c.TouchMove(20, 10, 2)
	if c.State() != Idle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if len(rec.samples) != 1 {
		t.Errorf("got %d samples, want only the start", len(rec.samples))
	}
}

func TestMultiTouchStartWhileIdle(t *testing.T) {
	c, target, _ := newTestController()
	c.TouchStart(10, 10, 2)
	if c.State() != Idle || target.calls != 0 {
		t.Errorf("two-finger start began a stroke: state=%v calls=%d", c.State(), target.calls)
	}
}

func TestFailureKeepsState(t *testing.T) {
	c, target, rec := newTestController()
	c.PointerDown(10, 10)

	target.err = fmt.Errorf("%w: modelView", picking.ErrNonInvertible)
	c.PointerMove(20, 10)
	if c.State() != Stroking {
		t.Fatalf("state = %v, want stroking", c.State())
	}

	target.err = nil
	c.PointerMove(30, 10)
	want := []bool{true, false}
	if got := rec.starts(); !equalBools(got, want) {
		t.Errorf("isStart sequence = %v, want %v", got, want)
	}
	if c.Stats().Failures != 1 {
		t.Errorf("failures = %d, want 1", c.Stats().Failures)
	}

	// A failed down still enters Stroking.
	c.PointerUp()
	target.err = picking.ErrNonInvertible
	c.PointerDown(10, 10)
	if c.State() != Stroking {
		t.Errorf("state after failed down = %v, want stroking", c.State())
	}
}

func TestBoundsOffset(t *testing.T) {
	c, target, rec := newTestController()
	c.SetBounds(input.Bounds{Left: 100, Top: 50, Width: 320, Height: 240})

	c.PointerDown(110, 60)
	if len(rec.samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(rec.samples))
	}
	if s := rec.samples[0]; s.u != 0.1 || s.v != 0.1 {
		t.Errorf("sample = %+v, want u=0.1 v=0.1", s)
	}
	if target.lastW != 320 || target.lastH != 240 {
		t.Errorf("viewport = %vx%v, want 320x240", target.lastW, target.lastH)
	}
}

func TestHandleDispatch(t *testing.T) {
	c, _, rec := newTestController()
	events := []input.Event{
		{Kind: input.PointerDown, X: 10, Y: 10},
		{Kind: input.PointerMove, X: 20, Y: 10},
		{Kind: input.PointerUp},
		{Kind: input.TouchStart, X: 30, Y: 30, Touches: 1},
		{Kind: input.TouchMove, X: 40, Y: 30, Touches: 1},
		{Kind: input.TouchEnd},
		{Kind: input.Kind(99)},
	}
	for _, e := range events {
		c.Handle(e)
	}

	want := []bool{true, false, true, false}
	if got := rec.starts(); !equalBools(got, want) {
		t.Errorf("isStart sequence = %v, want %v", got, want)
	}
	if c.Stats().Events != 6 {
		t.Errorf("events = %d, want 6", c.Stats().Events)
	}
}

func TestNilPainter(t *testing.T) {
	c := NewController(&fakeTarget{}, testBounds, nil)
	c.PointerDown(10, 10)
	if c.Stats().Hits != 1 {
		t.Errorf("hits = %d, want 1", c.Stats().Hits)
	}
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Stroking.String() != "stroking" || State(7).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}

// TestSceneStroke drives the controller against a real scene: the unit
// square seen head on from z=3 fills the middle of the view.
func TestSceneStroke(t *testing.T) {
	const w, h = 400, 400
	tr := picking.Transform{
		Projection: math.Perspective(float32(gomath.Pi/4), 1, 0.1, 100),
		ModelView:  math.Translate(0, 0, -3),
	}
	sc := scene.New(mesh.Square(), tr, false)

	rec := &recorder{}
	c := NewController(sc, input.Bounds{Width: w, Height: h}, rec.paint)

	c.PointerDown(w/2, h/2)
	c.PointerMove(5, 5) // Corner of the view, outside the square.
	c.PointerUp()

	if len(rec.samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(rec.samples))
	}
	s := rec.samples[0]
	if !s.isStart || abs(s.u-0.5) > 1e-4 || abs(s.v-0.5) > 1e-4 {
		t.Errorf("center sample = %+v, want start at (0.5, 0.5)", s)
	}
	if c.Stats().Misses != 1 {
		t.Errorf("misses = %d, want 1", c.Stats().Misses)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
