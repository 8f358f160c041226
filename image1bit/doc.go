// Package image1bit provides a 1-bit image format for dot-matrix LED panel grids.
//
// Each panel is 32x16 pixels. A grid of panels is stored as 16 scan rows, each scan row
// holding 4 bytes per panel with the panels concatenated in panel index order
// (left to right, then top to bottom). Bit 7 of a byte is its leftmost pixel.
//
// Memory layout for a grid of two panels side by side (8 bytes per scan row):
//
//	Scan row 0: [p0 b0][p0 b1][p0 b2][p0 b3][p1 b0][p1 b1][p1 b2][p1 b3]
//	Scan row 1: ...
//
// A 2x2 grid keeps the same 16 scan rows but each holds 16 bytes: panels 0 and 1
// cover y 0-15, panels 2 and 3 cover y 16-31.
//
// This package provides:
//
// - Bit: a color type for one LED (On or Off)
// - BitModel: a color model converting standard Go colors to Bit
// - Mode: how a drawn pixel combines with the existing pixel
// - Panels: an image.Image and draw.Image implementation of the packed grid
//
// Example usage:
//
//	// Two panels side by side (64x16 pixels)
//	img := image1bit.NewPanels(2, 1)
//
//	// Light a pixel
//	img.SetBit(40, 3, image1bit.Normal, true)
//
//	// Flip it back
//	img.SetBit(40, 3, image1bit.Toggle, true)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
