package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// mustPixel builds a pixel or fails the test.
func mustPixel(t *testing.T, r, g, b int) Pixel {
	t.Helper()
	p, err := NewPixel(r, g, b)
	if err != nil {
		t.Fatalf("NewPixel(%d,%d,%d) failed: %v", r, g, b, err)
	}
	return p
}

// createTestGrid creates a 2x2 image with distinct pixels.
func createTestGrid(t *testing.T) *Image {
	t.Helper()
	img, err := FromGrid([][]Pixel{
		{{10, 20, 30}, {10, 20, 30}},
		{{30, 20, 10}, {0, 30, 30}},
	})
	if err != nil {
		t.Fatalf("FromGrid failed: %v", err)
	}
	return img
}

func TestNewPixel(t *testing.T) {
	p := mustPixel(t, 0, 128, 255)
	if p.R != 0 || p.G != 128 || p.B != 255 {
		t.Errorf("got %v, want (0,128,255)", p)
	}
}

func TestNewPixel_OutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
	}{
		{"negative red", -1, 0, 0},
		{"negative green", 0, -1, 0},
		{"negative blue", 0, 0, -1},
		{"red too large", 256, 0, 0},
		{"green too large", 0, 256, 0},
		{"blue too large", 0, 0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPixel(tt.r, tt.g, tt.b)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("NewPixel(%d,%d,%d): got %v, want ErrValidation", tt.r, tt.g, tt.b, err)
			}
		})
	}
}

func TestPixel_ValueAndIntensity(t *testing.T) {
	p := Pixel{R: 100, G: 150, B: 200}
	if p.Value() != 200 {
		t.Errorf("Value: got %d, want 200", p.Value())
	}
	if p.Intensity() != 150 {
		t.Errorf("Intensity: got %d, want 150", p.Intensity())
	}

	// Truncation: (1+1+0)/3 = 0
	if got := (Pixel{R: 1, G: 1}).Intensity(); got != 0 {
		t.Errorf("Intensity truncation: got %d, want 0", got)
	}
}

func TestNewImage(t *testing.T) {
	img, err := NewImage(3, 2)
	if err != nil {
		t.Fatalf("NewImage failed: %v", err)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", img.Width(), img.Height())
	}

	if _, err := NewImage(-1, 2); !errors.Is(err, ErrValidation) {
		t.Errorf("negative width: got %v, want ErrValidation", err)
	}
}

func TestNewImage_TooLarge(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"area wraps to zero", 1 << 32, 1 << 32},
		{"area overflows", 3037000500, 3037000500},
		{"over limit", 50000, 50000},
		{"one past limit", MaxPixels + 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewImage(tt.width, tt.height); !errors.Is(err, ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestFitsPixels(t *testing.T) {
	tests := []struct {
		width, height, limit int
		want                 bool
	}{
		{0, 1 << 40, 0, true},
		{3, 4, 12, true},
		{3, 4, 11, false},
		{1 << 32, 1 << 32, 1 << 62, false},
	}
	for _, tt := range tests {
		if got := FitsPixels(tt.width, tt.height, tt.limit); got != tt.want {
			t.Errorf("FitsPixels(%d, %d, %d) = %v, want %v", tt.width, tt.height, tt.limit, got, tt.want)
		}
	}
}

func TestFromGrid_Irregular(t *testing.T) {
	_, err := FromGrid([][]Pixel{
		{{1, 2, 3}, {4, 5, 6}},
		{{7, 8, 9}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestFromGrid_Empty(t *testing.T) {
	img, err := FromGrid(nil)
	if err != nil {
		t.Fatalf("FromGrid(nil) failed: %v", err)
	}
	if img.Width() != 0 || img.Height() != 0 {
		t.Errorf("dimensions: got %dx%d, want 0x0", img.Width(), img.Height())
	}
}

func TestFromGrid_CopiesInput(t *testing.T) {
	grid := [][]Pixel{{{1, 2, 3}}}
	img, err := FromGrid(grid)
	if err != nil {
		t.Fatalf("FromGrid failed: %v", err)
	}
	grid[0][0] = Pixel{9, 9, 9}

	p, _ := img.PixelAt(0, 0)
	if p != (Pixel{1, 2, 3}) {
		t.Errorf("image observed caller mutation: got %v", p)
	}
}

func TestImage_PixelAt(t *testing.T) {
	img := createTestGrid(t)

	p, err := img.PixelAt(1, 1)
	if err != nil {
		t.Fatalf("PixelAt failed: %v", err)
	}
	if p != (Pixel{0, 30, 30}) {
		t.Errorf("got %v, want (0,30,30)", p)
	}
}

func TestImage_PixelAt_OutOfBounds(t *testing.T) {
	img := createTestGrid(t)

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row too large", 2, 0},
		{"col too large", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := img.PixelAt(tt.row, tt.col); !errors.Is(err, ErrValidation) {
				t.Errorf("PixelAt(%d,%d): got %v, want ErrValidation", tt.row, tt.col, err)
			}
			if err := img.SetPixelAt(tt.row, tt.col, 0, 0, 0); !errors.Is(err, ErrValidation) {
				t.Errorf("SetPixelAt(%d,%d): got %v, want ErrValidation", tt.row, tt.col, err)
			}
		})
	}
}

func TestImage_SetPixelAt(t *testing.T) {
	img := createTestGrid(t)

	if err := img.SetPixelAt(0, 1, 255, 0, 128); err != nil {
		t.Fatalf("SetPixelAt failed: %v", err)
	}
	p, _ := img.PixelAt(0, 1)
	if p != (Pixel{255, 0, 128}) {
		t.Errorf("got %v, want (255,0,128)", p)
	}
}

func TestImage_SetPixelAt_InvalidChannel(t *testing.T) {
	img := createTestGrid(t)

	if err := img.SetPixelAt(0, 0, 0, 256, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}

	// Failed writes leave the pixel untouched
	p, _ := img.PixelAt(0, 0)
	if p != (Pixel{10, 20, 30}) {
		t.Errorf("pixel changed after failed write: %v", p)
	}
}

func TestImage_CloneIsIndependent(t *testing.T) {
	img := createTestGrid(t)
	c := img.Clone()

	if !img.Equal(c) {
		t.Fatal("clone differs from original")
	}
	if err := c.SetPixelAt(0, 0, 1, 1, 1); err != nil {
		t.Fatalf("SetPixelAt failed: %v", err)
	}
	if img.Equal(c) {
		t.Error("mutating the clone changed the original")
	}
}

func TestFromPixels_SizeMismatch(t *testing.T) {
	if _, err := FromPixels(2, 2, make([]Pixel, 3)); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestStdRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.NRGBA{255, 0, 0, 255})
	src.Set(7, 6, color.NRGBA{1, 2, 3, 255})

	img := FromStd(src)
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", img.Width(), img.Height())
	}

	p, _ := img.PixelAt(0, 0)
	if p != (Pixel{255, 0, 0}) {
		t.Errorf("(0,0): got %v, want (255,0,0)", p)
	}
	p, _ = img.PixelAt(1, 2)
	if p != (Pixel{1, 2, 3}) {
		t.Errorf("(1,2): got %v, want (1,2,3)", p)
	}

	translucent := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	translucent.Set(0, 0, color.NRGBA{200, 100, 50, 128})
	if p, _ := FromStd(translucent).PixelAt(0, 0); p != (Pixel{200, 100, 50}) {
		t.Errorf("translucent: got %v, want (200,100,50)", p)
	}

	back := FromStd(img.ToStd())
	if !img.Equal(back) {
		t.Error("ToStd/FromStd did not round-trip")
	}
}
