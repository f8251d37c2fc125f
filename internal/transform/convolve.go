package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Kernel is a square convolution kernel of odd side length.
type Kernel struct {
	size    int
	weights []float64 // row-major, size*size
}

// Preset kernels.
var (
	// Blur is a 3x3 Gaussian-like blur:
	//
	//	1/16 1/8 1/16
	//	1/8  1/4 1/8
	//	1/16 1/8 1/16
	Blur = mustKernel([][]float64{
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
		{1.0 / 8, 1.0 / 4, 1.0 / 8},
		{1.0 / 16, 1.0 / 8, 1.0 / 16},
	})

	// Sharpen is a 5x5 kernel: center 1, inner ring 1/4, outer ring -1/8.
	Sharpen = mustKernel([][]float64{
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, 1.0 / 4, 1.0 / 4, 1.0 / 4, -1.0 / 8},
		{-1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8, -1.0 / 8},
	})
)

// NewKernel converts rows into a Kernel.
//
// Returns an error wrapping ErrValidation if rows is empty, has an even number
// of rows, or any row's length differs from the number of rows.
func NewKernel(rows [][]float64) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: invalid filter size %d, must be odd", imaging.ErrValidation, n)
	}
	k := Kernel{size: n, weights: make([]float64, 0, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return Kernel{}, fmt.Errorf("%w: filter matrix must be square, row %d has %d entries, want %d",
				imaging.ErrValidation, i, len(row), n)
		}
		k.weights = append(k.weights, row...)
	}
	return k, nil
}

func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length of the kernel.
func (k Kernel) Size() int { return k.size }

// At returns the weight at row a, column b.
func (k Kernel) At(a, b int) float64 { return k.weights[a*k.size+b] }

// Convolve applies a Kernel to every pixel.
type Convolve struct {
	endpoints
	name   string
	kernel Kernel
}

// NewConvolve creates a filter of src published as dst.
// name is the command name reported by Name, e.g. "blur".
func NewConvolve(name string, k Kernel, src, dst string) (*Convolve, error) {
	if k.size == 0 {
		return nil, fmt.Errorf("%w: filter kernel is empty", imaging.ErrValidation)
	}
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "filter"
	}
	return &Convolve{endpoints: e, name: name, kernel: k}, nil
}

// Name returns the command name given at construction.
func (c *Convolve) Name() string { return c.name }

// Apply writes the filtered image.
func (c *Convolve) Apply(s Store) error {
	return c.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		return ConvolveImage(img, c.kernel), nil
	})
}

// ConvolveImage applies k to img with clamp-to-edge sampling.
//
// For output pixel (i,j) and each channel the engine accumulates
//
//	Σ k[a][b] · src[clamp(i-offset+a)][clamp(j-offset+b)]
//
// where offset = size/2 and coordinates outside the image are clamped to the
// nearest border pixel. Every sample comes from the unmodified source. The
// sum is clamped to [0,255] and truncated.
func ConvolveImage(img *imaging.Image, k Kernel) *imaging.Image {
	w, h := img.Width(), img.Height()
	src := img.Pixels()
	dst := make([]imaging.Pixel, len(src))
	offset := k.size / 2

	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			var r, g, b float64
			for a := 0; a < k.size; a++ {
				row := clamp(i-offset+a, 0, h-1) * w
				for c := 0; c < k.size; c++ {
					p := src[row+clamp(j-offset+c, 0, w-1)]
					weight := k.weights[a*k.size+c]
					r += float64(p.R) * weight
					g += float64(p.G) * weight
					b += float64(p.B) * weight
				}
			}
			dst[i*w+j] = imaging.Pixel{
				R: imaging.ClampFloatChannel(r),
				G: imaging.ClampFloatChannel(g),
				B: imaging.ClampFloatChannel(b),
			}
		}
	}

	out, _ := imaging.FromPixels(w, h, dst)
	return out
}
