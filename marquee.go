package dmd

import (
	"bytes"
	"image"
	"strings"

	"periph.io/x/devices/v3/dmd/image1bit"
)

// MaxMarqueeLength is the longest marquee text; longer text is truncated.
const MaxMarqueeLength = 255

type marquee struct {
	text   string
	width  int // Pixel width of one copy of the text, spacing included
	height int
	x, y   int
	active bool
}

// MarqueeState describes the running marquee.
//
// ExtentX and ExtentY are the scroll periods: the display size plus the text size.
// Stepping by a full extent leaves the display unchanged.
type MarqueeState struct {
	Text             string
	Width, Height    int
	OffsetX, OffsetY int
	ExtentX, ExtentY int
	Active           bool
}

// Marquee returns the state of the marquee.
func (d *Dev) Marquee() MarqueeState {
	s := MarqueeState{
		Text:    d.mq.text,
		Width:   d.mq.width,
		Height:  d.mq.height,
		OffsetX: d.mq.x,
		OffsetY: d.mq.y,
		Active:  d.mq.active,
	}
	if s.Active {
		s.ExtentX = d.buf.Rect.Dx() + s.Width
		s.ExtentY = d.buf.Rect.Dy() + s.Height
	}
	return s
}

// DrawMarquee starts a scrolling text band with the selected font and draws the text
// once with its top left corner at (left, top). It replaces any running marquee.
//
// A left offset at the right edge of the display starts the text just out of view,
// ready to scroll in. Text longer than MaxMarqueeLength bytes is truncated.
func (d *Dev) DrawMarquee(text string, left, top int) {
	if len(text) > MaxMarqueeLength {
		text = text[:MaxMarqueeLength]
	}
	w := 0
	for i := 0; i < len(text); i++ {
		if cw := d.CharWidth(text[i]); cw > 0 {
			w += cw + 1
		}
	}
	d.mq = marquee{
		text:   strings.Clone(text),
		width:  w,
		height: d.font.Height(),
		x:      left,
		y:      top,
		active: true,
	}
	d.eraseMarquee()
	d.renderMarquee(d.buf.Rect)
}

// StepMarquee moves the marquee by (dx, dy) pixels and redraws it. It reports whether
// any pixel changed.
//
// Once the text has left the display completely it comes back from the opposite
// edge, in both directions.
func (d *Dev) StepMarquee(dx, dy int) bool {
	if !d.mq.active {
		return false
	}
	copy(d.scratch, d.buf.Pix)
	d.eraseMarquee()
	d.mq.x += dx
	d.mq.y += dy
	d.wrapMarquee()
	d.renderMarquee(d.buf.Rect)
	return !bytes.Equal(d.scratch, d.buf.Pix)
}

// StepSplitMarquee3 scrolls the marquee one pixel left by shifting rows top to bottom
// (inclusive) from column start onwards, and drawing only the new rightmost column.
// Pixels left of start do not move.
//
// For a band covering the marquee rows with start 0, the result is the same as
// StepMarquee(-1, 0). It reports whether any pixel changed.
func (d *Dev) StepSplitMarquee3(top, bottom, start int) bool {
	if !d.mq.active {
		return false
	}
	copy(d.scratch, d.buf.Pix)
	d.mq.x--
	d.wrapMarquee()

	b := d.buf.Rect
	top = clamp(top, b.Min.Y, b.Max.Y-1)
	bottom = clamp(bottom, b.Min.Y, b.Max.Y-1)
	start = clamp(start, b.Min.X, b.Max.X-1)
	last := b.Max.X - 1
	for y := top; y <= bottom; y++ {
		for x := start; x < last; x++ {
			d.buf.SetBit(x, y, image1bit.Normal, bool(d.buf.BitAt(x+1, y)))
		}
		d.buf.SetBit(last, y, image1bit.Normal, false)
	}
	if top <= bottom {
		d.renderMarquee(image.Rect(last, top, last+1, bottom+1))
	}
	return !bytes.Equal(d.scratch, d.buf.Pix)
}

// eraseMarquee clears the full width rows under the marquee.
func (d *Dev) eraseMarquee() {
	b := d.buf.Rect
	for y := d.mq.y; y < d.mq.y+d.mq.height; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			d.buf.SetBit(x, y, image1bit.Normal, false)
		}
	}
}

// wrapMarquee keeps x in [-width, W) and y in [-height, H).
func (d *Dev) wrapMarquee() {
	b := d.buf.Rect
	m := &d.mq
	m.x = wrap(m.x, b.Min.X-m.width, b.Max.X)
	m.y = wrap(m.y, b.Min.Y-m.height, b.Max.Y)
}

// wrap brings v into [lo, hi) by whole periods of hi-lo.
func wrap(v, lo, hi int) int {
	period := hi - lo
	if v < lo {
		v += ((lo-v-1)/period + 1) * period
	}
	if v >= hi {
		v -= ((v-hi)/period + 1) * period
	}
	return v
}

func (d *Dev) renderMarquee(clip image.Rectangle) {
	if d.mq.width == 0 {
		return
	}
	d.drawText(d.mq.x, d.mq.y, d.mq.text, image1bit.Normal, clip)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
