package transform

import (
	"errors"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// createEdgeTestImage creates a white image with a black rectangle in the middle.
func createEdgeTestImage(t *testing.T, width, height int) *imaging.Image {
	t.Helper()
	img := createUniformImage(t, width, height, imaging.Gray(255))
	for row := height / 4; row < 3*height/4; row++ {
		for col := width / 4; col < 3*width/4; col++ {
			if err := img.SetPixelAt(row, col, 0, 0, 0); err != nil {
				t.Fatalf("SetPixelAt failed: %v", err)
			}
		}
	}
	return img
}

func countWhite(img *imaging.Image) int {
	n := 0
	for _, p := range img.Pixels() {
		if p == imaging.Gray(255) {
			n++
		}
	}
	return n
}

func TestDetectEdges(t *testing.T) {
	img := createEdgeTestImage(t, 40, 40)
	out := DetectEdges(img, 50, 150)

	if out.Width() != 40 || out.Height() != 40 {
		t.Fatalf("dimensions: got %dx%d, want 40x40", out.Width(), out.Height())
	}
	if countWhite(out) == 0 {
		t.Error("no edges found around the rectangle")
	}
	for _, p := range out.Pixels() {
		if p != imaging.Gray(0) && p != imaging.Gray(255) {
			t.Fatalf("pixel %v is neither black nor white", p)
		}
	}
	// Far from the rectangle border there is nothing to detect.
	if p, _ := out.PixelAt(20, 20); p != imaging.Gray(0) {
		t.Errorf("center: got %v, want black", p)
	}
	if p, _ := out.PixelAt(1, 1); p != imaging.Gray(0) {
		t.Errorf("corner: got %v, want black", p)
	}
}

func TestDetectEdges_UniformImage(t *testing.T) {
	img := createUniformImage(t, 20, 20, imaging.Gray(128))
	if n := countWhite(DetectEdges(img, 50, 150)); n != 0 {
		t.Errorf("uniform image: got %d edge pixels, want 0", n)
	}
}

func TestDetectEdges_SmallImages(t *testing.T) {
	for _, sz := range []struct{ w, h int }{{0, 0}, {1, 1}, {2, 1}, {1, 3}} {
		img := createUniformImage(t, sz.w, sz.h, imaging.Gray(10))
		out := DetectEdges(img, 50, 150)
		if out.Width() != sz.w || out.Height() != sz.h {
			t.Errorf("%dx%d: got %dx%d", sz.w, sz.h, out.Width(), out.Height())
		}
	}
}

func TestNewEdgeDetect_Thresholds(t *testing.T) {
	tests := []struct {
		name      string
		low, high int
		wantErr   bool
	}{
		{"defaults", DefaultEdgeLow, DefaultEdgeHigh, false},
		{"equal", 100, 100, false},
		{"full range", 0, 255, false},
		{"negative low", -1, 100, true},
		{"high too large", 10, 256, true},
		{"inverted", 200, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEdgeDetect(tt.low, tt.high, "a", "b")
			if tt.wantErr && !errors.Is(err, imaging.ErrValidation) {
				t.Errorf("got %v, want ErrValidation", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
