package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Matrix is a 3x3 linear map applied to each pixel's [r,g,b] column vector.
// Row k produces output channel k.
type Matrix [3][3]float64

// Preset color matrices.
var (
	// Greyscale replicates Rec. 709 luma on all three output channels.
	Greyscale = Matrix{
		{0.2126, 0.7152, 0.0722},
		{0.2126, 0.7152, 0.0722},
		{0.2126, 0.7152, 0.0722},
	}

	// Sepia is the classic sepia tone matrix.
	Sepia = Matrix{
		{0.393, 0.769, 0.189},
		{0.349, 0.686, 0.168},
		{0.272, 0.534, 0.131},
	}
)

// NewMatrix converts rows into a Matrix.
//
// Returns an error wrapping ErrValidation unless rows has exactly three rows of
// exactly three entries.
func NewMatrix(rows [][]float64) (Matrix, error) {
	var m Matrix
	if len(rows) != 3 {
		return m, fmt.Errorf("%w: color matrix must have 3 rows, got %d", imaging.ErrValidation, len(rows))
	}
	for i, row := range rows {
		if len(row) != 3 {
			return m, fmt.Errorf("%w: color matrix must be square, row %d has %d entries",
				imaging.ErrValidation, i, len(row))
		}
		copy(m[i][:], row)
	}
	return m, nil
}

// ColorMatrix applies a Matrix to every pixel.
type ColorMatrix struct {
	endpoints
	name   string
	matrix Matrix
}

// NewColorMatrix creates a color transformation of src published as dst.
// name is the command name reported by Name, e.g. "sepia".
func NewColorMatrix(name string, m Matrix, src, dst string) (*ColorMatrix, error) {
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "color-transform"
	}
	return &ColorMatrix{endpoints: e, name: name, matrix: m}, nil
}

// Name returns the command name given at construction.
func (c *ColorMatrix) Name() string { return c.name }

// Apply writes the transformed image.
func (c *ColorMatrix) Apply(s Store) error {
	return c.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		return ApplyMatrix(img, c.matrix), nil
	})
}

// ApplyMatrix computes clamp(m · [r,g,b]) for every pixel, truncating each
// output channel toward zero.
func ApplyMatrix(img *imaging.Image, m Matrix) *imaging.Image {
	return mapPixels(img, func(p imaging.Pixel) imaging.Pixel {
		in := [3]float64{float64(p.R), float64(p.G), float64(p.B)}
		var out [3]uint8
		for k := 0; k < 3; k++ {
			var comp float64
			for l := 0; l < 3; l++ {
				comp += in[l] * m[k][l]
			}
			out[k] = imaging.ClampFloatChannel(comp)
		}
		return imaging.Pixel{R: out[0], G: out[1], B: out[2]}
	})
}
