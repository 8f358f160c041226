package dmd

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// MaxBrightness is the brightness at which the rows stay enabled between scans.
const MaxBrightness = 255

// ScanDisplay refreshes one row group: a quarter of the rows of every panel.
//
// Call it four times to refresh the whole grid, and keep calling it at a high rate
// (from the main loop or a ticker) to keep the image steady. The drawing buffer is read
// without locking; a frame drawn while a scan is in progress may show a partial
// update until the next four calls. Use Opts.DoubleBuffer when drawing and scanning
// run on different goroutines.
//
// When the other device on the bus holds its chip select, the call does nothing and
// returns nil; the next call tries again.
func (d *Dev) ScanDisplay() error {
	if d.halted {
		return errors.New("dmd: halted")
	}
	if d.cs != nil && d.cs.Read() == gpio.Low {
		return nil
	}

	// Turn the rows off while the row select lines change
	if err := d.sink.Enable(0); err != nil {
		return fmt.Errorf("dmd: failed to disable rows: %w", err)
	}
	if err := d.sink.SelectRows(d.phase); err != nil {
		return fmt.Errorf("dmd: failed to select rows: %w", err)
	}

	// Each panel chains four 8-bit shift registers per column byte, one per lit row
	// of the group, farthest row first.
	pix := d.frame()
	rowBytes := d.buf.RowBytes()
	offset := d.phase * rowBytes
	row1 := 4 * rowBytes
	row2 := 8 * rowBytes
	row3 := 12 * rowBytes
	tx := d.tx[:0]
	for i := 0; i < rowBytes; i++ {
		tx = append(tx,
			d.wire(pix[offset+i+row3]),
			d.wire(pix[offset+i+row2]),
			d.wire(pix[offset+i+row1]),
			d.wire(pix[offset+i]),
		)
	}
	d.tx = tx
	if err := d.sink.Shift(tx); err != nil {
		return fmt.Errorf("dmd: failed to shift row data: %w", err)
	}
	if err := d.sink.Latch(); err != nil {
		return fmt.Errorf("dmd: failed to latch: %w", err)
	}
	if err := d.sink.Enable(d.duty); err != nil {
		return fmt.Errorf("dmd: failed to enable rows: %w", err)
	}

	d.phase = (d.phase + 1) & 3
	d.cursor = row3 + d.phase*rowBytes
	return nil
}

// wire converts a buffer byte to the level sent to the panel.
// Panels light an LED for a zero bit.
func (d *Dev) wire(b byte) byte {
	if d.invert {
		return b
	}
	return ^b
}

// resetScan puts the scan back at row group 0.
func (d *Dev) resetScan() {
	d.phase = 0
	d.cursor = 12 * d.buf.RowBytes()
}

// Phase returns the row group the next ScanDisplay lights, 0-3.
func (d *Dev) Phase() int {
	return d.phase
}

// Cursor returns the buffer offset of the first byte the next ScanDisplay clocks out.
func (d *Dev) Cursor() int {
	return d.cursor
}

// SetBrightness sets the output enable duty cycle, 0 (dark) to 255 (always on).
// Larger values are clamped. Brightness does not depend on the pixel content.
func (d *Dev) SetBrightness(brightness uint16) error {
	if d.halted {
		return errors.New("dmd: halted")
	}
	d.setBrightness(brightness)
	return nil
}

func (d *Dev) setBrightness(brightness uint16) {
	if brightness > MaxBrightness {
		brightness = MaxBrightness
	}
	d.brightness = brightness
	d.duty = gpio.Duty(int64(brightness) * int64(gpio.DutyMax) / MaxBrightness)
}

// Brightness returns the current brightness, 0-255.
func (d *Dev) Brightness() uint16 {
	return d.brightness
}

// Invert inverts the displayed pixels (lit becomes dark and vice versa) without
// touching the drawing buffer.
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errors.New("dmd: halted")
	}
	d.invert = invert
	return nil
}
