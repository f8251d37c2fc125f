package imaging

import "fmt"

// MaxChannel is the largest value a color channel may hold.
const MaxChannel = 255

// Pixel represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
//
// Pixel is a value type: assigning or returning it copies it.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// NewPixel creates a Pixel from integer channel values.
//
// Returns an error wrapping ErrValidation if any channel is outside [0,255].
func NewPixel(r, g, b int) (Pixel, error) {
	if !inRange(r) || !inRange(g) || !inRange(b) {
		return Pixel{}, fmt.Errorf("%w: RGB values must be in the range 0-255, got (%d,%d,%d)",
			ErrValidation, r, g, b)
	}
	return Pixel{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Gray returns a pixel whose three channels all equal v, clamped to [0,255].
func Gray(v int) Pixel {
	c := uint8(ClampChannel(v))
	return Pixel{R: c, G: c, B: c}
}

// Value returns the largest of the three channels.
func (p Pixel) Value() int {
	v := p.R
	if p.G > v {
		v = p.G
	}
	if p.B > v {
		v = p.B
	}
	return int(v)
}

// Intensity returns the truncated mean of the three channels.
func (p Pixel) Intensity() int {
	return (int(p.R) + int(p.G) + int(p.B)) / 3
}

// String formats the pixel as "(r,g,b)".
func (p Pixel) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.R, p.G, p.B)
}

// ClampChannel constrains v to [0,255].
func ClampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxChannel {
		return MaxChannel
	}
	return v
}

// ClampFloatChannel clamps v to [0,255] and truncates toward zero.
func ClampFloatChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > MaxChannel {
		return MaxChannel
	}
	return uint8(v)
}

func inRange(v int) bool {
	return v >= 0 && v <= MaxChannel
}
