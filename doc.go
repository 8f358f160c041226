// Package dmd drives grids of 32×16 monochrome dot-matrix LED panels.
//
// The panels are multiplexed: a scan lights one row in four at a time, so the host
// has to call ScanDisplay continuously (a few thousand times per second) to keep a
// steady image. Drawing happens in an in-memory buffer that the scan reads.
//
// # Panel Characteristics
//
// - 32×16 pixels, 1 bit per pixel
// - 1/4 scan: four row groups selected by two address lines (A, B)
// - Chained 8-bit shift registers loaded through a serial data and clock line
// - Output enable line, PWM capable, for brightness
// - Panels chain to form a grid of up to 255 panels
//
// # Hardware Connection
//
//	Panel Pin → System Pin
//	nOE       → GPIO (PWM capable), default GPIO25
//	A         → GPIO, default GPIO5
//	B         → GPIO, default GPIO18
//	CLK       → SPI Clock (SCLK), default GPIO22
//	SCLK      → GPIO latch, default GPIO26
//	R/DATA    → SPI Data (MOSI), default GPIO2
//	GND       → GND
//
// Without an SPI bus, NewBitBang drives CLK and DATA as plain GPIOs.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"time"
//
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/dmd"
//		"periph.io/x/devices/v3/dmd/fonts"
//		"periph.io/x/devices/v3/dmd/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		port, _ := spireg.Open("")
//		pins, _ := dmd.DefaultPinNames.Open()
//
//		dev, _ := dmd.NewSPI(port, pins, &dmd.Opts{Wide: 2, High: 1})
//		defer dev.Halt()
//
//		dev.SelectFont(fonts.Fixed7x13())
//		dev.DrawString(0, 0, "Hello", image1bit.Normal)
//		dev.DrawBox(0, 0, 63, 15, image1bit.Normal)
//
//		scan := time.NewTicker(250 * time.Microsecond)
//		for range scan.C {
//			dev.ScanDisplay()
//		}
//	}
//
// # Drawing Modes
//
// Every primitive composes its pixels with an image1bit.Mode:
//
//	image1bit.Normal  // pixel = value
//	image1bit.Inverse // pixel = !value
//	image1bit.Toggle  // pixel = pixel XOR value
//	image1bit.Or      // pixel = pixel OR value
//	image1bit.Nor     // pixel = !(pixel OR value)
//
// Boxes draw every pixel exactly once, so drawing one twice in Toggle mode restores
// the previous content.
//
// # Text and Marquee
//
// Fonts are byte tables in the fonts package layout. fonts.Fixed7x13 is built in and
// fonts.FromFace converts any golang.org/x/image/font face.
//
//	dev.DrawMarquee("Scrolling text", 64, 0)
//	for {
//		if dev.StepMarquee(-1, 0) {
//			// redraw happened
//		}
//		time.Sleep(30 * time.Millisecond)
//	}
//
// # Brightness
//
// Brightness is the output enable duty cycle, 0-255. It does not depend on the image.
//
//	dev.SetBrightness(64)
//
// # Concurrency
//
// The scan and the drawing primitives share the buffer without locking; a scan may
// show a frame that is being drawn. Set Opts.DoubleBuffer and call Show after
// drawing to make the scan read complete frames only. A Dev is otherwise not safe
// for concurrent use.
//
// # Compatibility with periph.io
//
// Dev implements display.Drawer and can be used with any periph.io tool or library
// expecting one.
package dmd
