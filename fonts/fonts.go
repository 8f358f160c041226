// Package fonts provides glyph tables for dot-matrix LED panels.
//
// A Table is a read-only byte table with a fixed header:
//
//	[0..1] total length, big endian (0 marks a fixed width font)
//	[2]    fixed width
//	[3]    glyph height
//	[4]    first character code
//	[5]    character count
//	[6..]  width table, one byte per character (variable width fonts only)
//	       followed by glyph data
//
// Each glyph is stored as ceil(height/8) byte rows of width column bytes. Bit k of a
// byte is pixel row 8*row+k, except for the last row of a glyph taller than 8 pixels,
// which is bottom aligned and starts at pixel row height-8.
package fonts

import (
	"errors"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Header offsets.
const (
	Length     = 0
	FixedWidth = 2
	Height     = 3
	FirstChar  = 4
	CharCount  = 5
	WidthTable = 6
)

// Table is a glyph table. The zero value has no glyphs.
type Table []byte

// Fixed reports whether every glyph has the same width.
func (t Table) Fixed() bool {
	if len(t) < WidthTable {
		return false
	}
	return t[Length] == 0 && t[Length+1] == 0
}

// Height returns the glyph height in pixels.
func (t Table) Height() int {
	if len(t) < WidthTable {
		return 0
	}
	return int(t[Height])
}

// FirstChar returns the first character code covered by the table.
func (t Table) FirstChar() byte {
	if len(t) < WidthTable {
		return 0
	}
	return t[FirstChar]
}

// CharCount returns the number of characters covered by the table.
func (t Table) CharCount() int {
	if len(t) < WidthTable {
		return 0
	}
	return int(t[CharCount])
}

// Covers reports whether c has a glyph in the table.
func (t Table) Covers(c byte) bool {
	first := int(t.FirstChar())
	return int(c) >= first && int(c) < first+t.CharCount()
}

// Width returns the width of the glyph for c, or 0 when c is not covered.
func (t Table) Width(c byte) int {
	if !t.Covers(c) {
		return 0
	}
	if t.Fixed() {
		return int(t[FixedWidth])
	}
	i := WidthTable + int(c-t.FirstChar())
	if i >= len(t) {
		return 0
	}
	return int(t[i])
}

// Glyph returns the glyph data for c and its width. data is nil when c is not covered
// or the table is truncated.
func (t Table) Glyph(c byte) (data []byte, width int) {
	if !t.Covers(c) {
		return nil, 0
	}
	rows := (t.Height() + 7) / 8
	idx := int(c - t.FirstChar())
	var index int
	if t.Fixed() {
		width = int(t[FixedWidth])
		index = WidthTable + idx*rows*width
	} else {
		if WidthTable+t.CharCount() > len(t) {
			return nil, 0
		}
		for i := 0; i < idx; i++ {
			index += int(t[WidthTable+i])
		}
		index = WidthTable + t.CharCount() + index*rows
		width = int(t[WidthTable+idx])
	}
	end := index + rows*width
	if end > len(t) {
		return nil, 0
	}
	return t[index:end], width
}

// RowOffset returns the first pixel row encoded by byte row row of a glyph of height h.
func RowOffset(row, h int) int {
	rows := (h + 7) / 8
	if row == rows-1 && rows > 1 {
		return h - 8
	}
	return row * 8
}

// Glyph is the bitmap of one character: Cols[x] holds the column at x, bit y set for a
// lit pixel.
type Glyph struct {
	Cols []uint32
}

// Build encodes glyphs for consecutive characters starting at first into a Table.
// All glyphs share height h (at most 32). A fixed width table is produced when every
// glyph has the same width.
func Build(first byte, h int, glyphs []Glyph) (Table, error) {
	if h <= 0 || h > 32 {
		return nil, errors.New("fonts: height must be between 1 and 32")
	}
	if len(glyphs) == 0 || len(glyphs) > 255 || int(first)+len(glyphs) > 256 {
		return nil, errors.New("fonts: character range out of bounds")
	}
	fixedW := len(glyphs[0].Cols)
	for _, g := range glyphs {
		if len(g.Cols) > 255 {
			return nil, errors.New("fonts: glyph too wide")
		}
		if len(g.Cols) != fixedW {
			fixedW = -1
		}
	}

	rows := (h + 7) / 8
	t := Table{0, 0, 0, byte(h), first, byte(len(glyphs))}
	if fixedW >= 0 {
		t[FixedWidth] = byte(fixedW)
	} else {
		for _, g := range glyphs {
			t = append(t, byte(len(g.Cols)))
		}
	}
	for _, g := range glyphs {
		for row := 0; row < rows; row++ {
			off := RowOffset(row, h)
			for _, col := range g.Cols {
				t = append(t, byte(col>>uint(off)))
			}
		}
	}
	if fixedW < 0 {
		if len(t) > 0xFFFF {
			return nil, errors.New("fonts: table too large")
		}
		t[Length] = byte(len(t) >> 8)
		t[Length+1] = byte(len(t))
	}
	return t, nil
}

// FromFace renders count characters starting at first from face into a Table.
// Glyph cells are the face's advance wide and ascent+descent high.
func FromFace(face font.Face, first byte, count int) (Table, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	h := ascent + m.Descent.Ceil()
	glyphs := make([]Glyph, 0, count)
	for i := 0; i < count; i++ {
		r := rune(int(first) + i)
		dr, mask, mp, adv, ok := face.Glyph(fixed.P(0, ascent), r)
		w := adv.Ceil()
		g := Glyph{Cols: make([]uint32, w)}
		if ok && mask != nil {
			for y := dr.Min.Y; y < dr.Max.Y; y++ {
				for x := dr.Min.X; x < dr.Max.X; x++ {
					if x < 0 || x >= w || y < 0 || y >= h {
						continue
					}
					p := image.Pt(mp.X+x-dr.Min.X, mp.Y+y-dr.Min.Y)
					if _, _, _, a := mask.At(p.X, p.Y).RGBA(); a >= 0x8000 {
						g.Cols[x] |= 1 << uint(y)
					}
				}
			}
		}
		glyphs = append(glyphs, g)
	}
	return Build(first, h, glyphs)
}

// Fixed7x13 returns the printable ASCII range of basicfont.Face7x13 as a fixed width
// table, 7 pixels wide and 13 pixels high.
var Fixed7x13 = sync.OnceValue(func() Table {
	t, err := FromFace(basicfont.Face7x13, ' ', '~'-' '+1)
	if err != nil {
		panic(err)
	}
	return t
})
