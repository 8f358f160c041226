package dmd

import (
	"image"

	"periph.io/x/devices/v3/dmd/fonts"
	"periph.io/x/devices/v3/dmd/image1bit"
)

// SelectFont sets the font used by DrawChar, DrawString and the marquee.
//
// The table is not copied and must not change while selected.
func (d *Dev) SelectFont(f fonts.Table) {
	d.font = f
}

// Font returns the selected font.
func (d *Dev) Font() fonts.Table {
	return d.font
}

// CharWidth returns the width of c in the selected font, or 0 when the font does not
// cover it. A space is as wide as 'n' when the font has one.
func (d *Dev) CharWidth(c byte) int {
	if c == ' ' && d.font.Covers('n') {
		return d.font.Width('n')
	}
	return d.font.Width(c)
}

// DrawChar draws c with its top left corner at (x, y) and returns its width.
//
// The whole glyph cell is written, unlit pixels included, so mode applies to both.
// Characters the font does not cover draw nothing and return 0.
func (d *Dev) DrawChar(x, y int, c byte, mode image1bit.Mode) int {
	return d.drawChar(x, y, c, mode, d.buf.Rect)
}

// DrawString draws text starting at (x, y), one column of spacing after each
// character. Every byte of text is drawn; NUL bytes do not end the string.
func (d *Dev) DrawString(x, y int, text string, mode image1bit.Mode) {
	d.drawText(x, y, text, mode, d.buf.Rect)
}

// drawText draws text clipped to clip.
func (d *Dev) drawText(x, y int, text string, mode image1bit.Mode, clip image.Rectangle) {
	h := d.font.Height()
	if h == 0 || y >= clip.Max.Y || y+h <= clip.Min.Y {
		return
	}
	d.vline(x-1, y, h, mode, clip)
	for i := 0; i < len(text); i++ {
		if x >= clip.Max.X {
			break
		}
		w := d.CharWidth(text[i])
		if w == 0 {
			continue
		}
		if x+w >= clip.Min.X {
			d.drawChar(x, y, text[i], mode, clip)
			d.vline(x+w, y, h, mode, clip)
		}
		x += w + 1
	}
}

func (d *Dev) drawChar(x, y int, c byte, mode image1bit.Mode, clip image.Rectangle) int {
	h := d.font.Height()
	if c == ' ' {
		w := d.CharWidth(' ')
		for i := 0; i < w; i++ {
			d.vline(x+i, y, h, mode, clip)
		}
		return w
	}
	data, w := d.font.Glyph(c)
	if data == nil {
		return 0
	}
	rows := (h + 7) / 8
	for i := 0; i < rows; i++ {
		off := fonts.RowOffset(i, h)
		for j := 0; j < w; j++ {
			b := data[i*w+j]
			for k := 0; k < 8; k++ {
				// The last byte row of a tall glyph overlaps the previous one.
				row := off + k
				if row < i*8 || row >= h {
					continue
				}
				d.plot(x+j, y+row, mode, b&(1<<uint(k)) != 0, clip)
			}
		}
	}
	return w
}

// vline writes h unlit pixels down from (x, y).
func (d *Dev) vline(x, y, h int, mode image1bit.Mode, clip image.Rectangle) {
	for i := 0; i < h; i++ {
		d.plot(x, y+i, mode, false, clip)
	}
}

func (d *Dev) plot(x, y int, mode image1bit.Mode, on bool, clip image.Rectangle) {
	if image.Pt(x, y).In(clip) {
		d.buf.SetBit(x, y, mode, on)
	}
}
