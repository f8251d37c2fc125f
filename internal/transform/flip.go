package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Direction selects the axis a Flip mirrors across.
type Direction string

const (
	Horizontal Direction = "horizontal" // mirror left-right
	Vertical   Direction = "vertical"   // mirror top-bottom
)

// Flip mirrors an image horizontally or vertically.
type Flip struct {
	endpoints
	dir Direction
}

// NewFlip creates a flip of src published as dst.
func NewFlip(dir Direction, src, dst string) (*Flip, error) {
	if dir != Horizontal && dir != Vertical {
		return nil, fmt.Errorf("%w: unknown flip direction %q", imaging.ErrValidation, dir)
	}
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	return &Flip{endpoints: e, dir: dir}, nil
}

// Name returns "horizontal-flip" or "vertical-flip".
func (f *Flip) Name() string { return string(f.dir) + "-flip" }

// Apply flips the source image.
func (f *Flip) Apply(s Store) error {
	return f.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		if f.dir == Horizontal {
			return FlipHorizontal(img), nil
		}
		return FlipVertical(img), nil
	})
}

// FlipHorizontal returns a copy of img with pixel (i,j) taken from (i, width-1-j).
func FlipHorizontal(img *imaging.Image) *imaging.Image {
	w, h := img.Width(), img.Height()
	src := img.Pixels()
	dst := make([]imaging.Pixel, len(src))
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			dst[i*w+j] = src[i*w+(w-1-j)]
		}
	}
	out, _ := imaging.FromPixels(w, h, dst)
	return out
}

// FlipVertical returns a copy of img with pixel (i,j) taken from (height-1-i, j).
func FlipVertical(img *imaging.Image) *imaging.Image {
	w, h := img.Width(), img.Height()
	src := img.Pixels()
	dst := make([]imaging.Pixel, len(src))
	for i := 0; i < h; i++ {
		copy(dst[i*w:(i+1)*w], src[(h-1-i)*w:(h-i)*w])
	}
	out, _ := imaging.FromPixels(w, h, dst)
	return out
}
