// Package texture provides the 2D paint canvas that is mapped onto the mesh.
//
// Strokes arrive as texture coordinates. Coordinates follow the OpenGL
// convention with v growing upward, so the canvas flips v once when it
// converts to pixel rows.
package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Filter selects the resampling used when exporting a scaled texture.
type Filter string

const (
	FilterNearest Filter = "nearest"
	FilterLinear  Filter = "linear"
)

// Interpolator returns the x/image scaler for the filter.
func (f Filter) Interpolator() (draw.Interpolator, error) {
	switch f {
	case FilterNearest, "":
		return draw.NearestNeighbor, nil
	case FilterLinear:
		return draw.BiLinear, nil
	default:
		return nil, fmt.Errorf("unknown filter %q", string(f))
	}
}

// Options configures a Canvas.
type Options struct {
	Width        int
	Height       int
	LineWidth    float64
	GridLines    int    // grid lines drawn across the background, 0 for none
	RandomColors bool   // pick a new colour for every stroke
	StrokeColor  string // hex colour used when RandomColors is false
	Seed         uint64 // seed for stroke colours, 0 picks one at random
}

// DefaultOptions returns the canvas settings of the demo texture.
func DefaultOptions() Options {
	return Options{
		Width:        256,
		Height:       256,
		LineWidth:    3,
		GridLines:    32,
		RandomColors: true,
		StrokeColor:  "#ff0000",
	}
}

// Canvas is a paintable texture. It is not safe for concurrent use.
type Canvas struct {
	dc   *gg.Context
	opts Options
	rng  *rand.Rand

	color   gg.RGBA
	lastX   float64
	lastY   float64
	hasLast bool

	dirty   bool
	strokes int
}

// New creates a canvas filled with the default background. A missing line
// width or stroke colour falls back to DefaultOptions.
func New(opts Options) (*Canvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("texture size must be positive, got %dx%d", opts.Width, opts.Height)
	}
	def := DefaultOptions()
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	if opts.StrokeColor == "" {
		opts.StrokeColor = def.StrokeColor
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	c := &Canvas{
		dc:    gg.NewContext(opts.Width, opts.Height),
		opts:  opts,
		rng:   rand.New(rand.NewPCG(seed, seed>>1|1)),
		color: gg.Hex(opts.StrokeColor),
	}
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.SetLineJoin(gg.LineJoinRound)
	if err := c.Clear(); err != nil {
		c.dc.Close()
		return nil, err
	}
	return c, nil
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.opts.Width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.opts.Height }

// Clear resets the canvas to the background: two crossing diagonal
// gradients under a light grid.
func (c *Canvas) Clear() error {
	w, h := float64(c.opts.Width), float64(c.opts.Height)
	dc := c.dc

	dc.ClearWithColor(gg.Transparent)

	dc.SetFillBrush(gg.NewLinearGradientBrush(0, 0, w, h).
		AddColorStop(0, gg.RGBA2(1, 0, 0, 0.75)).
		AddColorStop(1, gg.RGBA2(0, 0, 1, 0.75)))
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill background: %w", err)
	}

	dc.SetFillBrush(gg.NewLinearGradientBrush(0, h, w, 0).
		AddColorStop(0, gg.RGBA2(1, 1, 1, 0)).
		AddColorStop(1, gg.RGBA2(0, 1, 0, 0.75)))
	dc.DrawRectangle(0, 0, w, h)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("fill background: %w", err)
	}

	if n := c.opts.GridLines; n > 0 {
		dc.SetLineWidth(1)
		dc.SetRGBA(1, 1, 1, 0.5)
		for i := 0; i <= n; i++ {
			x := w / float64(n) * float64(i)
			y := h / float64(n) * float64(i)
			dc.MoveTo(x, 0)
			dc.LineTo(x, h)
			dc.MoveTo(0, y)
			dc.LineTo(w, y)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("stroke grid: %w", err)
		}
	}

	c.hasLast = false
	c.dirty = true
	return nil
}

// PixelAt maps texture coordinates to canvas pixel coordinates.
// v = 1 is the top row.
func (c *Canvas) PixelAt(u, v float32) (x, y float64) {
	return float64(u) * float64(c.opts.Width), (1 - float64(v)) * float64(c.opts.Height)
}

// Paint draws a stroke sample. A start sample picks the stroke colour and
// drops a dot; later samples draw a line from the previous sample. A
// continuation without a previous sample is treated as a start.
func (c *Canvas) Paint(u, v float32, isStart bool) error {
	x, y := c.PixelAt(u, v)
	dc := c.dc

	if isStart || !c.hasLast {
		c.color = c.nextColor()
		c.strokes++
		c.lastX, c.lastY = x-1, y-1
		x, y = x+1, y+1
	}

	dc.SetLineWidth(c.opts.LineWidth)
	dc.SetStrokeBrush(gg.Solid(c.color))
	dc.MoveTo(c.lastX, c.lastY)
	dc.LineTo(x, y)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("stroke: %w", err)
	}

	c.lastX, c.lastY = x, y
	c.hasLast = true
	c.dirty = true
	return nil
}

func (c *Canvas) nextColor() gg.RGBA {
	if !c.opts.RandomColors {
		return gg.Hex(c.opts.StrokeColor)
	}
	rgb := c.rng.Uint32N(1 << 24)
	return gg.RGB(
		float64(rgb>>16&0xff)/255,
		float64(rgb>>8&0xff)/255,
		float64(rgb&0xff)/255,
	)
}

// StrokeColor returns the colour of the current stroke.
func (c *Canvas) StrokeColor() gg.RGBA {
	return c.color
}

// Strokes returns the number of strokes painted since creation.
func (c *Canvas) Strokes() int {
	return c.strokes
}

// Dirty reports whether the canvas changed since the last ClearDirty,
// meaning the texture needs to be uploaded again.
func (c *Canvas) Dirty() bool {
	return c.dirty
}

// ClearDirty marks the canvas as uploaded.
func (c *Canvas) ClearDirty() {
	c.dirty = false
}

// Image returns a copy of the canvas pixels. A failed GPU flush is ignored
// the same way SavePNG ignores it.
func (c *Canvas) Image() *image.RGBA {
	_ = c.dc.FlushGPU()
	return c.dc.Image().(*image.RGBA)
}

// pixels flushes pending GPU work and returns a copy of the canvas pixels.
func (c *Canvas) pixels() (*image.RGBA, error) {
	if err := c.dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flush canvas: %w", err)
	}
	return c.dc.Image().(*image.RGBA), nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Export writes the canvas as PNG, resampled by scale with the given filter.
func (c *Canvas) Export(w io.Writer, scale float64, filter Filter) error {
	if scale <= 0 {
		return fmt.Errorf("export scale must be positive, got %v", scale)
	}
	interp, err := filter.Interpolator()
	if err != nil {
		return err
	}

	src, err := c.pixels()
	if err != nil {
		return err
	}
	if scale == 1 {
		return png.Encode(w, src)
	}

	b := src.Bounds()
	dw := max(1, int(float64(b.Dx())*scale+0.5))
	dh := max(1, int(float64(b.Dy())*scale+0.5))
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	interp.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return png.Encode(w, dst)
}
