package dmd

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

const (
	// BusClock is the SPI clock used to shift pixel data into the panels.
	BusClock = 4 * physic.MegaHertz
	// PWMFrequency is the output enable PWM frequency used for partial brightness.
	PWMFrequency = 5 * physic.KiloHertz
)

// Sink is the set of panel control lines driven by a scan.
type Sink interface {
	// SelectRows drives the two row select lines for group 0-3.
	SelectRows(group int) error
	// Shift clocks p into the panel shift registers, first byte first.
	Shift(p []byte) error
	// Latch copies the shift registers to the panel outputs.
	Latch() error
	// Enable sets the output enable duty cycle; 0 turns the rows off.
	Enable(duty gpio.Duty) error
}

// Pins are the GPIO lines wired to the panel connector.
type Pins struct {
	OE   gpio.PinOut // Output enable (PWM capable for partial brightness)
	A    gpio.PinOut // Row select, low bit
	B    gpio.PinOut // Row select, high bit
	CLK  gpio.PinOut // Shift clock (bit-bang only, the SPI bus drives it otherwise)
	SCLK gpio.PinOut // Latch strobe
	Data gpio.PinOut // Serial data (bit-bang only)
}

// PinNames names the panel lines for lookup in the GPIO registry.
type PinNames struct {
	OE, A, B, CLK, SCLK, Data string
}

// DefaultPinNames is the usual ESP32 style wiring: VSPI clock and MOSI on GPIO22 and
// GPIO2, row selects on GPIO5 and GPIO18, latch on GPIO26 and output enable on GPIO25.
var DefaultPinNames = PinNames{
	OE:   "GPIO25",
	A:    "GPIO5",
	B:    "GPIO18",
	CLK:  "GPIO22",
	SCLK: "GPIO26",
	Data: "GPIO2",
}

// Open resolves the names through gpioreg. Empty names are left nil.
func (n PinNames) Open() (Pins, error) {
	var p Pins
	for _, l := range []struct {
		name string
		pin  *gpio.PinOut
	}{
		{n.OE, &p.OE},
		{n.A, &p.A},
		{n.B, &p.B},
		{n.CLK, &p.CLK},
		{n.SCLK, &p.SCLK},
		{n.Data, &p.Data},
	} {
		if l.name == "" {
			continue
		}
		pin := gpioreg.ByName(l.name)
		if pin == nil {
			return Pins{}, fmt.Errorf("dmd: GPIO pin %s not found", l.name)
		}
		*l.pin = pin
	}
	return p, nil
}

// lines implements the row select, latch and output enable part of Sink.
type lines struct {
	pins Pins
}

func newLines(pins Pins) (lines, error) {
	if pins.OE == nil || pins.A == nil || pins.B == nil || pins.SCLK == nil {
		return lines{}, errors.New("dmd: OE, A, B and SCLK pins are required")
	}
	return lines{pins: pins}, nil
}

// SelectRows implements Sink.
//
// Group 0 lights rows 1, 5, 9 and 13 of every panel, group 1 rows 2, 6, 10 and 14,
// and so on.
func (l *lines) SelectRows(group int) error {
	if err := l.pins.B.Out(gpio.Level(group&2 != 0)); err != nil {
		return err
	}
	return l.pins.A.Out(gpio.Level(group&1 != 0))
}

// Latch implements Sink.
func (l *lines) Latch() error {
	if err := l.pins.SCLK.Out(gpio.High); err != nil {
		return err
	}
	return l.pins.SCLK.Out(gpio.Low)
}

// Enable implements Sink.
func (l *lines) Enable(duty gpio.Duty) error {
	switch {
	case duty <= 0:
		return l.pins.OE.Out(gpio.Low)
	case duty >= gpio.DutyMax:
		return l.pins.OE.Out(gpio.High)
	default:
		return l.pins.OE.PWM(duty, PWMFrequency)
	}
}

// SPISink shifts pixel data over an SPI bus.
type SPISink struct {
	lines
	c conn.Conn
}

// NewSPISink connects to p at BusClock, Mode0, 8-bit words. CLK and Data in pins are
// ignored; they are the bus clock and MOSI lines.
func NewSPISink(p spi.Port, pins Pins) (*SPISink, error) {
	l, err := newLines(pins)
	if err != nil {
		return nil, err
	}
	c, err := p.Connect(BusClock, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("dmd: %w", err)
	}
	return &SPISink{lines: l, c: c}, nil
}

// Shift implements Sink.
func (s *SPISink) Shift(p []byte) error {
	return s.c.Tx(p, nil)
}

func (s *SPISink) String() string {
	return fmt.Sprintf("dmd.SPISink{%s}", s.c)
}

// BitBangSink shifts pixel data by toggling the CLK and Data lines, MSB first.
type BitBangSink struct {
	lines
}

// NewBitBangSink returns a sink that drives every line as a plain GPIO.
func NewBitBangSink(pins Pins) (*BitBangSink, error) {
	l, err := newLines(pins)
	if err != nil {
		return nil, err
	}
	if pins.CLK == nil || pins.Data == nil {
		return nil, errors.New("dmd: CLK and Data pins are required")
	}
	return &BitBangSink{lines: l}, nil
}

// Shift implements Sink.
func (s *BitBangSink) Shift(p []byte) error {
	for _, b := range p {
		for mask := byte(0x80); mask != 0; mask >>= 1 {
			if err := s.pins.Data.Out(gpio.Level(b&mask != 0)); err != nil {
				return err
			}
			if err := s.pins.CLK.Out(gpio.High); err != nil {
				return err
			}
			if err := s.pins.CLK.Out(gpio.Low); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *BitBangSink) String() string {
	return "dmd.BitBangSink"
}
