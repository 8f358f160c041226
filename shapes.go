package dmd

import (
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Pattern selects one of the hardware test patterns.
type Pattern byte

const (
	// PatternAlt0 lights every other pixel, starting with the top left one.
	PatternAlt0 Pattern = iota
	// PatternAlt1 is PatternAlt0 inverted.
	PatternAlt1
	// PatternStripe0 lights every other column, starting with the leftmost one.
	PatternStripe0
	// PatternStripe1 is PatternStripe0 inverted.
	PatternStripe1
)

// DrawLine draws a line from (x1, y1) to (x2, y2) with Bresenham's algorithm.
// Both endpoints are included and the same pixels are drawn whichever end comes first.
func (d *Dev) DrawLine(x1, y1, x2, y2 int, mode image1bit.Mode) {
	if x1 > x2 || (x1 == x2 && y1 > y2) {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	dy := y2 - y1
	dx := x2 - x1
	stepy := 1
	if dy < 0 {
		dy = -dy
		stepy = -1
	}
	stepx := 1
	if dx < 0 {
		dx = -dx
		stepx = -1
	}
	dy <<= 1
	dx <<= 1

	d.buf.SetBit(x1, y1, mode, true)
	if dx > dy {
		fraction := dy - (dx >> 1)
		for x1 != x2 {
			if fraction >= 0 {
				y1 += stepy
				fraction -= dx
			}
			x1 += stepx
			fraction += dy
			d.buf.SetBit(x1, y1, mode, true)
		}
	} else {
		fraction := dx - (dy >> 1)
		for y1 != y2 {
			if fraction >= 0 {
				x1 += stepx
				fraction -= dy
			}
			y1 += stepy
			fraction += dx
			d.buf.SetBit(x1, y1, mode, true)
		}
	}
}

// DrawCircle draws a circle of radius r centred on (cx, cy) with the midpoint
// algorithm. A radius of 0 draws the centre pixel; a negative radius draws nothing.
func (d *Dev) DrawCircle(cx, cy, r int, mode image1bit.Mode) {
	if r < 0 {
		return
	}
	if r == 0 {
		d.buf.SetBit(cx, cy, mode, true)
		return
	}
	x := 0
	y := r
	p := (5 - r*4) / 4
	d.circlePoints(cx, cy, x, y, mode)
	for x < y {
		x++
		if p < 0 {
			p += 2*x + 1
		} else {
			y--
			p += 2*(x-y) + 1
		}
		d.circlePoints(cx, cy, x, y, mode)
	}
}

// circlePoints draws the points mirrored from (x, y) in the first octant, each once.
func (d *Dev) circlePoints(cx, cy, x, y int, mode image1bit.Mode) {
	switch {
	case x == 0:
		d.buf.SetBit(cx, cy+y, mode, true)
		d.buf.SetBit(cx, cy-y, mode, true)
		d.buf.SetBit(cx+y, cy, mode, true)
		d.buf.SetBit(cx-y, cy, mode, true)
	case x == y:
		d.buf.SetBit(cx+x, cy+y, mode, true)
		d.buf.SetBit(cx-x, cy+y, mode, true)
		d.buf.SetBit(cx+x, cy-y, mode, true)
		d.buf.SetBit(cx-x, cy-y, mode, true)
	case x < y:
		d.buf.SetBit(cx+x, cy+y, mode, true)
		d.buf.SetBit(cx-x, cy+y, mode, true)
		d.buf.SetBit(cx+x, cy-y, mode, true)
		d.buf.SetBit(cx-x, cy-y, mode, true)
		d.buf.SetBit(cx+y, cy+x, mode, true)
		d.buf.SetBit(cx-y, cy+x, mode, true)
		d.buf.SetBit(cx+y, cy-x, mode, true)
		d.buf.SetBit(cx-y, cy-x, mode, true)
	}
}

// DrawBox draws the one pixel outline of the rectangle with corners (x1, y1) and
// (x2, y2), in any order. Corner pixels are drawn once so Toggle works.
func (d *Dev) DrawBox(x1, y1, x2, y2 int, mode image1bit.Mode) {
	x1, y1, x2, y2 = normRect(x1, y1, x2, y2)
	d.DrawLine(x1, y1, x2, y1, mode)
	if y2 != y1 {
		d.DrawLine(x1, y2, x2, y2, mode)
	}
	if y2-y1 > 1 {
		d.DrawLine(x1, y1+1, x1, y2-1, mode)
		if x2 != x1 {
			d.DrawLine(x2, y1+1, x2, y2-1, mode)
		}
	}
}

// DrawFilledBox draws the rectangle outline and fills its interior in the same mode.
func (d *Dev) DrawFilledBox(x1, y1, x2, y2 int, mode image1bit.Mode) {
	x1, y1, x2, y2 = normRect(x1, y1, x2, y2)
	d.DrawBox(x1, y1, x2, y2, mode)
	if y2-y1 < 2 {
		return
	}
	for x := x1 + 1; x < x2; x++ {
		d.DrawLine(x, y1+1, x, y2-1, mode)
	}
}

// DrawTestPattern fills the whole grid with p. Unknown patterns are ignored.
func (d *Dev) DrawTestPattern(p Pattern) {
	if p > PatternStripe1 {
		return
	}
	b := d.buf.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var on bool
			switch p {
			case PatternAlt0:
				on = (x+y)%2 == 0
			case PatternAlt1:
				on = (x+y)%2 != 0
			case PatternStripe0:
				on = x%2 == 0
			case PatternStripe1:
				on = x%2 != 0
			}
			d.buf.SetBit(x, y, image1bit.Normal, on)
		}
	}
}

func normRect(x1, y1, x2, y2 int) (int, int, int, int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return x1, y1, x2, y2
}
