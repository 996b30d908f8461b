package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/lightpath/internal/sim"
)

// Path is one trajectory to draw.
type Path struct {
	Label   string
	Color   string
	Samples []sim.Sample
}

// SVGOptions controls the figure. Horizon and PhotonSphere draw rings
// around the origin when positive.
type SVGOptions struct {
	Width        int
	Height       int
	Horizon      float64
	PhotonSphere float64
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 800, Height: 800}
}

var palette = []string{"#00ff9c", "#ff6b6b", "#4dabf7", "#ffd43b", "#cc5de8"}

// TrajectoryToSVG draws a single run.
func TrajectoryToSVG(res *sim.Result, opts SVGOptions) string {
	return PathsToSVG([]Path{{Samples: res.Samples}}, opts)
}

// PathsToSVG draws several paths on shared axes with equal x and y scale,
// so the rings stay circular.
func PathsToSVG(paths []Path, opts SVGOptions) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultSVGOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	n := 0
	for _, p := range paths {
		n += len(p.Samples)
	}
	if n < 2 {
		return ""
	}

	ring := math.Max(opts.Horizon, opts.PhotonSphere)
	minX, maxX := -ring, ring
	minY, maxY := -ring, ring
	for _, p := range paths {
		for _, s := range p.Samples {
			minX, maxX = math.Min(minX, s.X), math.Max(maxX, s.X)
			minY, maxY = math.Min(minY, s.Y), math.Max(maxY, s.Y)
		}
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := 0.5*(minX+maxX), 0.5*(minY+maxY)
	size := float64(min(opts.Width, opts.Height))
	scale := size / span

	toX := func(x float64) float64 { return float64(opts.Width)/2 + (x-cx)*scale }
	toY := func(y float64) float64 { return float64(opts.Height)/2 - (y-cy)*scale }

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, opts.Width, opts.Height, opts.Width, opts.Height)

	if opts.PhotonSphere > 0 {
		fmt.Fprintf(&sb, `<circle class="photon-sphere" cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#f59f00" stroke-dasharray="4 4"/>
`, toX(0), toY(0), opts.PhotonSphere*scale)
	}
	if opts.Horizon > 0 {
		fmt.Fprintf(&sb, `<circle class="horizon" cx="%.1f" cy="%.1f" r="%.1f" fill="#000000" stroke="#868e96"/>
`, toX(0), toY(0), opts.Horizon*scale)
	}

	for i, p := range paths {
		if len(p.Samples) < 2 {
			continue
		}
		color := p.Color
		if color == "" {
			color = palette[i%len(palette)]
		}

		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		for j, s := range p.Samples {
			if j == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", toX(s.X), toY(s.Y))
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", toX(s.X), toY(s.Y))
			}
		}
		sb.WriteString(`"/>
`)
		if p.Label != "" {
			fmt.Fprintf(&sb, `<text x="10" y="%d" fill="%s" font-family="monospace" font-size="14">%s</text>
`, 20+18*i, color, escape(p.Label))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
