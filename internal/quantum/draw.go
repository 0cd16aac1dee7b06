package quantum

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// StyleBW draws black gates and wires on a white background.
const StyleBW = "bw"

// MaxScale bounds the drawing scale factor.
const MaxScale = 4.0

// Style selects a drawing palette.
type Style struct {
	Name string
}

type palette struct {
	bg   color.Color
	fg   color.Color
	fill color.Color
}

func paletteFor(s Style) (palette, error) {
	switch s.Name {
	case StyleBW:
		return palette{bg: color.White, fg: color.Black, fill: color.White}, nil
	}
	return palette{}, errors.Errorf("unknown drawing style %q", s.Name)
}

// Geometry at scale 1.0, in pixels.
const (
	cellWidth    = 40
	rowHeight    = 40
	margin       = 16
	labelWidth   = 36
	boxSize      = 26
	dotRadius    = 5
	targetRadius = 11
	labelPadding = 10
)

var face = basicfont.Face7x13

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// layout assigns each op a starting column and a width in columns. An op blocks
// every wire between its lowest and highest qubit, so a vertical connector never
// crosses another gate.
func layout(c *Circuit) (cols, widths []int, total int) {
	next := make([]int, c.NumQubits)
	cols = make([]int, len(c.Ops))
	widths = make([]int, len(c.Ops))
	for i, op := range c.Ops {
		lo, hi := op.span()
		w := 1
		if drawsAsBox(op) && len(op.Qubits) > 1 {
			w = int(math.Ceil(float64(textWidth(boxLabel(op))+2*labelPadding) / cellWidth))
		}
		col := 0
		for q := lo; q <= hi; q++ {
			col = max(col, next[q])
		}
		for q := lo; q <= hi; q++ {
			next[q] = col + w
		}
		cols[i], widths[i] = col, w
		total = max(total, col+w)
	}
	return cols, widths, total
}

// drawsAsBox reports whether op is drawn as a labelled box rather than with
// control dots.
func drawsAsBox(op Op) bool {
	if op.Def != nil {
		return true
	}
	switch op.Name {
	case GateCX, GateCCX, GateC3X, GateC4X, GateMCX, GateCZ, GateMCZ:
		return false
	}
	return true
}

func boxLabel(op Op) string {
	if op.Label != "" {
		return op.Label
	}
	return strings.ToUpper(op.Name)
}

// Draw renders c as a circuit diagram. Scale multiplies the geometry; glyphs
// keep their bitmap size.
func Draw(c *Circuit, style Style, scale float64) (image.Image, error) {
	if c.NumQubits < 1 {
		return nil, errors.New("draw: circuit has no qubits")
	}
	if scale <= 0 || scale > MaxScale || math.IsNaN(scale) {
		return nil, errors.Errorf("draw: scale %v outside (0, %v]", scale, MaxScale)
	}
	pal, err := paletteFor(style)
	if err != nil {
		return nil, errors.Wrap(err, "draw")
	}

	px := func(v float64) int { return int(math.Round(v * scale)) }
	cols, widths, total := layout(c)
	total = max(total, 1)

	left := px(margin) + px(labelWidth)
	width := left + total*px(cellWidth) + px(margin)
	height := 2*px(margin) + c.NumQubits*px(rowHeight)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: pal.bg}, image.Point{}, draw.Src)

	cv := &canvas{
		img:   img,
		pal:   pal,
		thin:  max(1, px(1)),
		thick: max(1, px(2)),
	}
	wireY := func(q int) int { return px(margin) + q*px(rowHeight) + px(rowHeight)/2 }

	for q := 0; q < c.NumQubits; q++ {
		y := wireY(q)
		cv.text(fmt.Sprintf("q%d", q), px(margin), y)
		cv.hline(left, width-px(margin), y, cv.thin)
	}

	for i, op := range c.Ops {
		x0 := left + cols[i]*px(cellWidth)
		xc := x0 + widths[i]*px(cellWidth)/2
		lo, hi := op.span()

		if drawsAsBox(op) {
			half := px(boxSize) / 2
			w := half
			if widths[i] > 1 {
				w = widths[i]*px(cellWidth)/2 - px(4)
			}
			r := image.Rect(xc-w, wireY(lo)-half, xc+w, wireY(hi)+half)
			cv.box(r)
			label := boxLabel(op)
			cv.text(label, xc-textWidth(label)/2, (wireY(lo)+wireY(hi))/2)
			continue
		}

		cv.vline(xc, wireY(lo), wireY(hi), cv.thick)
		controls := op.Qubits[:len(op.Qubits)-1]
		for _, q := range controls {
			cv.disk(xc, wireY(q), px(dotRadius), pal.fg)
		}
		t := wireY(op.Target())
		switch op.Name {
		case GateCZ, GateMCZ:
			cv.disk(xc, t, px(dotRadius), pal.fg)
		default:
			r := px(targetRadius)
			cv.disk(xc, t, r, pal.fill)
			cv.ring(xc, t, r, cv.thick)
			cv.hline(xc-r, xc+r, t, cv.thick)
			cv.vline(xc, t-r, t+r, cv.thick)
		}
	}

	return img, nil
}

// EncodePNG encodes img as PNG bytes. The buffer is complete before it is returned.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

type canvas struct {
	img   *image.RGBA
	pal   palette
	thin  int
	thick int
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *canvas) hline(x1, x2, y, t int) {
	c.fill(image.Rect(x1, y-t/2, x2+1, y-t/2+t), c.pal.fg)
}

func (c *canvas) vline(x, y1, y2, t int) {
	c.fill(image.Rect(x-t/2, y1, x-t/2+t, y2+1), c.pal.fg)
}

func (c *canvas) box(r image.Rectangle) {
	c.fill(r, c.pal.fg)
	c.fill(r.Inset(c.thick), c.pal.fill)
}

func (c *canvas) disk(cx, cy, r int, col color.Color) {
	rr := r * r
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= rr {
				c.img.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

func (c *canvas) ring(cx, cy, r, t int) {
	outer := r * r
	inner := (r - t) * (r - t)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := dx*dx + dy*dy
			if d <= outer && d > inner {
				c.img.Set(cx+dx, cy+dy, c.pal.fg)
			}
		}
	}
}

// text draws s with its left edge at x, vertically centred on y.
func (c *canvas) text(s string, x, y int) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{C: c.pal.fg},
		Face: face,
		Dot:  fixed.P(x, y+(face.Ascent-face.Descent)/2),
	}
	d.DrawString(s)
}
