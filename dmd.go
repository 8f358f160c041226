package dmd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/dmd/fonts"
	"periph.io/x/devices/v3/dmd/image1bit"
)

// maxPanels is the largest grid the scan cursor can address.
const maxPanels = 255

// Opts is the configuration for a panel grid.
type Opts struct {
	// Panel grid
	Wide int // Panels across (default: 1)
	High int // Panels down (default: 1)

	// Brightness is the initial output enable duty, 1-255 (default: 255).
	Brightness uint16

	// DoubleBuffer makes ScanDisplay read the frame published by Show instead of
	// the drawing buffer. Use it when scanning from another goroutine.
	DoubleBuffer bool

	// Optional chip select of another device sharing the SPI bus. While it reads
	// Low, ScanDisplay skips its turn.
	OtherCS gpio.PinIn
}

// Dev is the device handle for a panel grid.
type Dev struct {
	// Communication
	sink Sink
	cs   gpio.PinIn // Bus arbitration (optional)

	// Pixel buffers
	buf     *image1bit.Panels
	front   atomic.Pointer[[]byte] // Published frame when double buffering
	double  bool
	scratch []byte // Previous frame for marquee change detection

	// Text
	font fonts.Table
	mq   marquee

	// Scan state
	phase      int
	cursor     int
	tx         []byte
	brightness uint16
	duty       gpio.Duty
	invert     bool

	// State
	halted bool
}

var _ display.Drawer = &Dev{}

// New creates a device driving a panel grid through sink.
//
// opts can be nil to use defaults (a single panel at full brightness).
func New(sink Sink, opts *Opts) (*Dev, error) {
	if sink == nil {
		return nil, errors.New("dmd: sink is required")
	}
	if opts == nil {
		opts = &Opts{}
	}
	o := *opts
	if o.Wide == 0 {
		o.Wide = 1
	}
	if o.High == 0 {
		o.High = 1
	}
	if o.Brightness == 0 {
		o.Brightness = MaxBrightness
	}

	d := &Dev{
		sink:   sink,
		cs:     o.OtherCS,
		double: o.DoubleBuffer,
	}
	if err := d.ChangeDMD(o.Wide, o.High); err != nil {
		return nil, err
	}
	d.setBrightness(o.Brightness)

	// Keep the rows dark until the first scan
	if err := d.sink.Enable(0); err != nil {
		return nil, fmt.Errorf("dmd: failed to disable output: %w", err)
	}
	return d, nil
}

// NewSPI creates a device whose pixel data is shifted over SPI at 4MHz, Mode0.
func NewSPI(p spi.Port, pins Pins, opts *Opts) (*Dev, error) {
	s, err := NewSPISink(p, pins)
	if err != nil {
		return nil, err
	}
	return New(s, opts)
}

// NewBitBang creates a device whose pixel data is shifted through GPIO lines.
func NewBitBang(pins Pins, opts *Opts) (*Dev, error) {
	s, err := NewBitBangSink(pins)
	if err != nil {
		return nil, err
	}
	return New(s, opts)
}

// ChangeDMD reallocates the buffer for a grid of wide x high panels.
//
// The previous content and any running marquee are dropped, and the scan restarts at
// phase 0. It must not run concurrently with ScanDisplay.
func (d *Dev) ChangeDMD(wide, high int) error {
	if wide <= 0 || high <= 0 || wide*high > maxPanels {
		return errors.New("dmd: panel grid must hold between 1 and 255 panels")
	}
	buf := image1bit.NewPanels(wide, high)
	if buf == nil {
		return errors.New("dmd: failed to allocate panel buffer")
	}
	d.buf = buf
	d.scratch = make([]byte, len(buf.Pix))
	d.tx = make([]byte, 0, 4*buf.RowBytes())
	if d.double {
		blank := make([]byte, len(buf.Pix))
		d.front.Store(&blank)
	}
	d.mq = marquee{}
	d.resetScan()
	return nil
}

// Panels returns the grid dimensions in panels.
func (d *Dev) Panels() (wide, high int) {
	return d.buf.Wide, d.buf.High
}

// WritePixel composes on into the pixel at (x, y) using mode.
// Coordinates outside the grid are ignored.
func (d *Dev) WritePixel(x, y int, mode image1bit.Mode, on bool) {
	d.buf.SetBit(x, y, mode, on)
}

// PixelAt reports whether the pixel at (x, y) is lit in the drawing buffer.
func (d *Dev) PixelAt(x, y int) bool {
	return bool(d.buf.BitAt(x, y))
}

// ClearScreen turns every pixel off, or on when normal is false.
func (d *Dev) ClearScreen(normal bool) {
	d.buf.Fill(!normal)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.buf.Rect
}

// Buffer returns the drawing buffer. It stays valid until the next ChangeDMD.
func (d *Dev) Buffer() *image1bit.Panels {
	return d.buf
}

// Write replaces the drawing buffer with raw pixel data in image1bit.Panels layout.
// The data must be exactly as long as the buffer.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errors.New("dmd: halted")
	}
	if len(pixels) != len(d.buf.Pix) {
		return 0, errors.New("dmd: invalid buffer size")
	}
	copy(d.buf.Pix, pixels)
	return len(pixels), nil
}

// Draw draws an image onto the drawing buffer.
// The dst rectangle specifies the destination region on the display.
// The src image is positioned at src point sp within the destination.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errors.New("dmd: halted")
	}
	// draw.Draw clips dst to the display and moves sp with it.
	draw.Draw(d.buf, dst, src, sp, draw.Src)
	return nil
}

// Show publishes the drawing buffer to the scan when double buffering.
// Without double buffering the scan reads the drawing buffer directly and Show is a
// no-op.
func (d *Dev) Show() error {
	if d.halted {
		return errors.New("dmd: halted")
	}
	if !d.double {
		return nil
	}
	frame := make([]byte, len(d.buf.Pix))
	copy(frame, d.buf.Pix)
	d.front.Store(&frame)
	return nil
}

// frame returns the bytes the scan clocks out.
func (d *Dev) frame() []byte {
	if d.double {
		if f := d.front.Load(); f != nil && len(*f) == len(d.buf.Pix) {
			return *f
		}
	}
	return d.buf.Pix
}

// Halt turns the rows off.
// After calling Halt, the device no longer scans and refuses Write, Draw and Show.
// The primitives that only touch the buffer keep working.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sink.Enable(0)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("dmd.Dev{%dx%d}", d.buf.Rect.Dx(), d.buf.Rect.Dy())
}
