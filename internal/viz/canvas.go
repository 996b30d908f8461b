package viz

import (
	"math"
	"strings"

	"github.com/san-kum/lightpath/internal/sim"
)

// Braille cells hold 2x4 dots, offset from U+2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille raster of Width x Height cells, addressed in dots
// (2*Width x 4*Height).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= dotMask[y%4][x%2]
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&dotMask[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Line draws with Bresenham.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps plane coordinates onto canvas dots with equal scale on
// both axes. Braille dots are roughly twice as tall as wide, so the
// vertical extent is halved to keep circles round.
type Viewport struct {
	CX, CY float64
	Scale  float64 // dots per unit along x
	w, h   int
}

// Fit returns a viewport centred on the origin that contains every sample
// and a ring of the given radius.
func Fit(c *Canvas, samples []sim.Sample, ring float64) Viewport {
	maxX, maxY := ring, ring
	for _, s := range samples {
		if finite(s.X) && finite(s.Y) {
			maxX = math.Max(maxX, math.Abs(s.X))
			maxY = math.Max(maxY, math.Abs(s.Y))
		}
	}
	w, h := 2*c.Width, 4*c.Height
	scale := math.Inf(1)
	if maxX > 0 {
		scale = float64(w) / (2 * maxX)
	}
	if maxY > 0 {
		scale = math.Min(scale, float64(h)/maxY)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}
	return Viewport{Scale: 0.9 * scale, w: w, h: h}
}

func (v Viewport) Project(x, y float64) (int, int) {
	px := float64(v.w)/2 + (x-v.CX)*v.Scale
	py := float64(v.h)/2 - (y-v.CY)*v.Scale/2
	return int(math.Round(px)), int(math.Round(py))
}

// DrawPath rasterises consecutive samples as joined segments.
func (c *Canvas) DrawPath(v Viewport, samples []sim.Sample) {
	havePrev := false
	var px, py int
	for _, s := range samples {
		if !finite(s.X) || !finite(s.Y) {
			havePrev = false
			continue
		}
		x, y := v.Project(s.X, s.Y)
		if havePrev {
			c.Line(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// Circle draws a circle of plane radius r around the origin.
func (c *Canvas) Circle(v Viewport, r float64) {
	if r <= 0 {
		return
	}
	cx, cy := v.Project(0, 0)
	rx := r * v.Scale
	steps := max(16, int(4*rx))
	for i := 0; i < steps; i++ {
		th := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(cx+int(math.Round(rx*math.Cos(th))), cy+int(math.Round(rx/2*math.Sin(th))))
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
