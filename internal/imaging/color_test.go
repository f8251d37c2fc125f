package imaging

import (
	"errors"
	"testing"
)

// createUniformImage creates a width x height image filled with p.
func createUniformImage(t *testing.T, width, height int, p Pixel) *Image {
	t.Helper()
	pix := make([]Pixel, width*height)
	for i := range pix {
		pix[i] = p
	}
	img, err := FromPixels(width, height, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createUniformImage(t, 10, 10, Pixel{255, 128, 64})

	result, err := SampleColor(img, 5, 5)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB != (Pixel{255, 128, 64}) {
		t.Errorf("RGB: got %v, want (255,128,64)", result.RGB)
	}
	if result.Value != 255 {
		t.Errorf("Value: got %d, want 255", result.Value)
	}
	if result.Intensity != 149 {
		t.Errorf("Intensity: got %d, want 149", result.Intensity)
	}
}

func TestSampleColor_HSL(t *testing.T) {
	tests := []struct {
		name                string
		p                   Pixel
		wantH, wantS, wantL int
	}{
		{"red", Pixel{255, 0, 0}, 0, 100, 50},
		{"green", Pixel{0, 255, 0}, 120, 100, 50},
		{"blue", Pixel{0, 0, 255}, 240, 100, 50},
		{"white", Pixel{255, 255, 255}, 0, 0, 100},
		{"black", Pixel{0, 0, 0}, 0, 0, 0},
		{"gray", Pixel{128, 128, 128}, 0, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createUniformImage(t, 1, 1, tt.p)
			result, err := SampleColor(img, 0, 0)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			// Allow some tolerance for rounding
			if abs(result.HSL.H-tt.wantH) > 1 {
				t.Errorf("H: got %d, want %d", result.HSL.H, tt.wantH)
			}
			if abs(result.HSL.S-tt.wantS) > 1 {
				t.Errorf("S: got %d, want %d", result.HSL.S, tt.wantS)
			}
			if abs(result.HSL.L-tt.wantL) > 1 {
				t.Errorf("L: got %d, want %d", result.HSL.L, tt.wantL)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createUniformImage(t, 10, 10, Pixel{255, 0, 0})

	if _, err := SampleColor(img, 10, 0); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func TestDominantColors(t *testing.T) {
	// 80% red, 20% green
	img, _ := NewImage(10, 10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			if col < 8 {
				_ = img.SetPixelAt(row, col, 255, 0, 0)
			} else {
				_ = img.SetPixelAt(row, col, 0, 255, 0)
			}
		}
	}

	result, err := DominantColors(img, 5)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(result.Colors))
	}

	// The quantized red is #F00000 (255/16*16 = 240)
	if result.Colors[0].Hex != "#F00000" {
		t.Errorf("dominant hex: got %s, want #F00000", result.Colors[0].Hex)
	}
	if result.Colors[0].Percentage != 80 {
		t.Errorf("dominant percentage: got %f, want 80", result.Colors[0].Percentage)
	}
}

func TestDominantColors_Limit(t *testing.T) {
	result, err := DominantColors(createTestGrid(t), 1)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 1 {
		t.Errorf("expected 1 color, got %d", len(result.Colors))
	}
}

func TestDominantColors_InvalidCount(t *testing.T) {
	if _, err := DominantColors(createTestGrid(t), 0); !errors.Is(err, ErrValidation) {
		t.Errorf("got %v, want ErrValidation", err)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
