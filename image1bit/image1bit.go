// Package image1bit provides a 1-bit packed image format for dot-matrix LED panels.
//
// Pixels are packed 8 per byte, leftmost pixel in bit 7. Panels of 32x16 pixels are
// tiled into one buffer in scan row order; see NewPanels.
package image1bit

import (
	"image"
	"image/color"
)

const (
	// PanelWidth is the width of one panel in pixels.
	PanelWidth = 32
	// PanelHeight is the height of one panel in pixels.
	PanelHeight = 16
	// PanelBytes is the number of bytes one panel occupies in a scan row.
	PanelBytes = PanelWidth / 8
	// PanelSize is the number of bytes one panel occupies in the buffer.
	PanelSize = PanelBytes * PanelHeight
)

// bitMask maps a column within a byte to its mask.
var bitMask = [8]byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}

// Bit is a 1-bit color: On is a lit LED.
type Bit bool

const (
	Off Bit = false
	On  Bit = true
)

// RGBA implements color.Color.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Rec. 601 luma, thresholded at half scale.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Mode defines how a drawn pixel combines with the pixel already in the buffer.
type Mode uint8

const (
	// Normal sets the pixel to the requested value.
	Normal Mode = iota
	// Inverse sets the pixel to the complement of the requested value.
	Inverse
	// Toggle flips the pixel when the requested value is on.
	Toggle
	// Or lights the pixel when either value is on.
	Or
	// Nor sets the pixel to the complement of Or.
	Nor
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "Normal"
	case Inverse:
		return "Inverse"
	case Toggle:
		return "Toggle"
	case Or:
		return "Or"
	case Nor:
		return "Nor"
	default:
		return "Mode(?)"
	}
}

// Combine returns the pixel value produced by drawing req over cur in mode m.
// ok is false for an unknown mode.
func (m Mode) Combine(cur, req bool) (v bool, ok bool) {
	switch m {
	case Normal:
		return req, true
	case Inverse:
		return !req, true
	case Toggle:
		return cur != req, true
	case Or:
		return cur || req, true
	case Nor:
		return !(cur || req), true
	}
	return cur, false
}

// Panels is a grid of 32x16 panels stored in scan row order.
type Panels struct {
	Pix  []byte          // Pixel data (8 pixels per byte)
	Wide int             // Panels across
	High int             // Panels down
	Rect image.Rectangle // Image bounds, always anchored at 0,0
}

// NewPanels creates a zeroed buffer for a grid of wide x high panels.
// It returns nil when either dimension is not positive.
func NewPanels(wide, high int) *Panels {
	if wide <= 0 || high <= 0 {
		return nil
	}
	return &Panels{
		Pix:  make([]byte, wide*high*PanelSize),
		Wide: wide,
		High: high,
		Rect: image.Rect(0, 0, wide*PanelWidth, high*PanelHeight),
	}
}

// Total returns the number of panels in the grid.
func (p *Panels) Total() int {
	return p.Wide * p.High
}

// RowBytes returns the number of bytes in one scan row across all panels.
func (p *Panels) RowBytes() int {
	return p.Total() * PanelBytes
}

// ColorModel returns the color model of the image.
func (p *Panels) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *Panels) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Panels) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the pixel at (x, y). Pixels outside the grid are Off.
func (p *Panels) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set implements draw.Image.
func (p *Panels) Set(x, y int, c color.Color) {
	p.SetBit(x, y, Normal, bool(BitModel.Convert(c).(Bit)))
}

// SetBit composes on into the pixel at (x, y) using mode.
// Coordinates outside the grid and unknown modes are ignored.
func (p *Panels) SetBit(x, y int, mode Mode, on bool) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	v, ok := mode.Combine(p.Pix[offset]&mask != 0, on)
	if !ok {
		return
	}
	if v {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Fill sets every byte to 0x00, or to 0xFF when on is true.
func (p *Panels) Fill(on bool) {
	var b byte
	if on {
		b = 0xFF
	}
	for i := range p.Pix {
		p.Pix[i] = b
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// The global coordinate is first translated to a panel and a position inside it.
func (p *Panels) pixOffset(x, y int) (offset int, mask byte) {
	panel := x/PanelWidth + p.Wide*(y/PanelHeight)
	lx := x%PanelWidth + panel*PanelWidth
	ly := y % PanelHeight
	offset = lx/8 + ly*p.RowBytes()
	mask = bitMask[lx&7]
	return
}
