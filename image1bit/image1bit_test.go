package image1bit

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestBitRGBA(t *testing.T) {
	tests := []struct {
		name string
		bit  Bit
		want uint32
	}{
		{"off", Off, 0x0000},
		{"on", On, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.bit.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)",
					r, g, b, a, tt.want, tt.want, tt.want, uint32(0xFFFF))
			}
		})
	}
}

func TestBitModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Bit
	}{
		{"bit passthrough", On, On},
		{"black", color.Black, Off},
		{"white", color.White, On},
		{"dark gray", color.RGBA{0x40, 0x40, 0x40, 0xFF}, Off},
		{"light gray", color.RGBA{0xC0, 0xC0, 0xC0, 0xFF}, On},
		{"pure blue", color.RGBA{0, 0, 0xFF, 0xFF}, Off},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BitModel.Convert(tt.input).(Bit)
			if result != tt.want {
				t.Errorf("BitModel.Convert(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestModeCombine(t *testing.T) {
	tests := []struct {
		mode Mode
		cur  bool
		req  bool
		want bool
	}{
		{Normal, false, true, true},
		{Normal, true, false, false},
		{Inverse, false, true, false},
		{Inverse, true, false, true},
		{Toggle, false, true, true},
		{Toggle, true, true, false},
		{Toggle, true, false, true},
		{Toggle, false, false, false},
		{Or, false, false, false},
		{Or, true, false, true},
		{Or, false, true, true},
		{Nor, false, false, true},
		{Nor, true, false, false},
		{Nor, false, true, false},
		{Nor, true, true, false},
	}

	for _, tt := range tests {
		got, ok := tt.mode.Combine(tt.cur, tt.req)
		if !ok {
			t.Errorf("%v.Combine(%v, %v) reported unknown mode", tt.mode, tt.cur, tt.req)
		}
		if got != tt.want {
			t.Errorf("%v.Combine(%v, %v) = %v, want %v", tt.mode, tt.cur, tt.req, got, tt.want)
		}
	}

	if _, ok := Mode(9).Combine(true, true); ok {
		t.Error("Mode(9).Combine should report an unknown mode")
	}
}

func TestNewPanels(t *testing.T) {
	tests := []struct {
		name         string
		wide, high   int
		wantNil      bool
		wantRect     image.Rectangle
		wantRowBytes int
		wantPixLen   int
	}{
		{"1x1", 1, 1, false, image.Rect(0, 0, 32, 16), 4, 64},
		{"2x1", 2, 1, false, image.Rect(0, 0, 64, 16), 8, 128},
		{"1x2", 1, 2, false, image.Rect(0, 0, 32, 32), 8, 128},
		{"3x2", 3, 2, false, image.Rect(0, 0, 96, 32), 24, 384},
		{"zero wide", 0, 1, true, image.Rectangle{}, 0, 0},
		{"negative high", 1, -1, true, image.Rectangle{}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewPanels(tt.wide, tt.high)
			if tt.wantNil {
				if img != nil {
					t.Errorf("NewPanels(%d, %d) = %v, want nil", tt.wide, tt.high, img)
				}
				return
			}
			if img.Rect != tt.wantRect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.wantRect)
			}
			if got := img.RowBytes(); got != tt.wantRowBytes {
				t.Errorf("RowBytes() = %d, want %d", got, tt.wantRowBytes)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestPanelsPixOffset(t *testing.T) {
	img := NewPanels(2, 2)

	tests := []struct {
		x, y   int
		offset int
		mask   byte
	}{
		{0, 0, 0, 0x80},
		{7, 0, 0, 0x01},
		{8, 0, 1, 0x80},
		{31, 0, 3, 0x01},
		{32, 0, 4, 0x80}, // Panel 1
		{0, 1, 16, 0x80}, // 16 bytes per scan row
		{0, 16, 8, 0x80}, // Panel 2 shares scan row 0
		{33, 17, 12 + 16, 0x40},
		{63, 31, 15 + 15*16, 0x01},
	}

	for _, tt := range tests {
		offset, mask := img.pixOffset(tt.x, tt.y)
		if offset != tt.offset || mask != tt.mask {
			t.Errorf("pixOffset(%d, %d) = (%d, 0x%02X), want (%d, 0x%02X)",
				tt.x, tt.y, offset, mask, tt.offset, tt.mask)
		}
	}
}

func TestPanelsSetBitRoundTrip(t *testing.T) {
	img := NewPanels(2, 2)
	b := img.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			on := (x*7+y*3)%5 == 0
			img.SetBit(x, y, Normal, on)
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			want := Bit((x*7+y*3)%5 == 0)
			if got := img.BitAt(x, y); got != want {
				t.Fatalf("BitAt(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPanelsToggleTwiceRestores(t *testing.T) {
	img := NewPanels(1, 1)
	img.SetBit(5, 5, Normal, true)

	before := append([]byte(nil), img.Pix...)
	for _, p := range []image.Point{{5, 5}, {6, 5}, {31, 15}} {
		img.SetBit(p.X, p.Y, Toggle, true)
		img.SetBit(p.X, p.Y, Toggle, true)
	}
	for i := range before {
		if img.Pix[i] != before[i] {
			t.Fatalf("Pix[%d] = 0x%02X after double toggle, want 0x%02X", i, img.Pix[i], before[i])
		}
	}
}

func TestPanelsOutOfBounds(t *testing.T) {
	img := NewPanels(1, 1)

	img.SetBit(-1, 0, Normal, true)
	img.SetBit(0, -1, Normal, true)
	img.SetBit(32, 0, Normal, true)
	img.SetBit(0, 16, Normal, true)

	for i, b := range img.Pix {
		if b != 0 {
			t.Fatalf("Pix[%d] = 0x%02X after out-of-bounds writes, want 0", i, b)
		}
	}
	if img.BitAt(-1, 0) != Off {
		t.Error("BitAt(-1, 0) should be Off")
	}
}

func TestPanelsUnknownModeIgnored(t *testing.T) {
	img := NewPanels(1, 1)
	img.SetBit(0, 0, Mode(42), true)
	if img.BitAt(0, 0) != Off {
		t.Error("unknown mode should not write")
	}
}

func TestPanelsFill(t *testing.T) {
	img := NewPanels(2, 1)

	img.Fill(true)
	for i, b := range img.Pix {
		if b != 0xFF {
			t.Fatalf("Pix[%d] = 0x%02X after Fill(true), want 0xFF", i, b)
		}
	}
	img.Fill(false)
	for i, b := range img.Pix {
		if b != 0x00 {
			t.Fatalf("Pix[%d] = 0x%02X after Fill(false), want 0x00", i, b)
		}
	}
}

func TestPanelsDraw(t *testing.T) {
	img := NewPanels(1, 1)
	draw.Draw(img, image.Rect(8, 0, 16, 1), image.NewUniform(color.White), image.Point{}, draw.Src)

	if img.Pix[1] != 0xFF {
		t.Errorf("Pix[1] = 0x%02X, want 0xFF", img.Pix[1])
	}
	if img.Pix[0] != 0 || img.Pix[2] != 0 {
		t.Errorf("neighbours changed: Pix[0] = 0x%02X, Pix[2] = 0x%02X", img.Pix[0], img.Pix[2])
	}
	if c, ok := img.At(8, 0).(Bit); !ok || c != On {
		t.Errorf("At(8, 0) = %v, want On", img.At(8, 0))
	}
	if img.ColorModel() != BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}
