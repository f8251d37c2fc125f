package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// Image is a rectangular grid of pixels stored row-major in one buffer.
//
// The zero value is a valid empty (0x0) image. All accessors validate their
// coordinates; an Image can never hold an out-of-range channel because Pixel
// channels are 8-bit.
type Image struct {
	width  int
	height int
	pix    []Pixel
}

// MaxPixels is the largest pixel count NewImage will allocate.
const MaxPixels = 1 << 26

// NewImage creates a black image of the given size.
//
// Returns an error wrapping ErrValidation if either dimension is negative or
// the image would hold more than MaxPixels pixels.
func NewImage(width, height int) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: invalid image size %dx%d", ErrValidation, width, height)
	}
	if !FitsPixels(width, height, MaxPixels) {
		return nil, fmt.Errorf("%w: image size %dx%d exceeds %d pixels",
			ErrValidation, width, height, MaxPixels)
	}
	return &Image{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}, nil
}

// FitsPixels reports whether width*height is at most limit, without
// overflowing. Both dimensions must be non-negative.
func FitsPixels(width, height, limit int) bool {
	if width == 0 || height == 0 {
		return true
	}
	return height <= limit/width
}

// FromGrid builds an image from rows of pixels.
//
// Every row must have the same length. The grid is copied, so later changes to
// the slices do not affect the returned image. An empty grid yields a 0x0 image.
func FromGrid(grid [][]Pixel) (*Image, error) {
	height := len(grid)
	width := 0
	if height > 0 {
		width = len(grid[0])
	}
	for i, row := range grid {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d",
				ErrValidation, i, len(row), width)
		}
	}

	img := &Image{width: width, height: height, pix: make([]Pixel, 0, width*height)}
	for _, row := range grid {
		img.pix = append(img.pix, row...)
	}
	return img, nil
}

// Width returns the number of columns.
func (m *Image) Width() int { return m.width }

// Height returns the number of rows.
func (m *Image) Height() int { return m.height }

// InBounds reports whether (row, col) addresses a pixel of the image.
func (m *Image) InBounds(row, col int) bool {
	return row >= 0 && row < m.height && col >= 0 && col < m.width
}

// PixelAt returns a copy of the pixel at (row, col).
func (m *Image) PixelAt(row, col int) (Pixel, error) {
	if !m.InBounds(row, col) {
		return Pixel{}, m.boundsError(row, col)
	}
	return m.pix[row*m.width+col], nil
}

// SetPixelAt replaces the pixel at (row, col).
//
// Returns an error wrapping ErrValidation if the coordinates are outside the
// image or any channel is outside [0,255]. On error the image is unchanged.
func (m *Image) SetPixelAt(row, col, r, g, b int) error {
	if !m.InBounds(row, col) {
		return m.boundsError(row, col)
	}
	p, err := NewPixel(r, g, b)
	if err != nil {
		return err
	}
	m.pix[row*m.width+col] = p
	return nil
}

// at and set skip validation; callers iterate within bounds.
func (m *Image) at(row, col int) Pixel     { return m.pix[row*m.width+col] }
func (m *Image) set(row, col int, p Pixel) { m.pix[row*m.width+col] = p }

// Pixels returns a copy of the row-major pixel buffer.
func (m *Image) Pixels() []Pixel {
	out := make([]Pixel, len(m.pix))
	copy(out, m.pix)
	return out
}

// FromPixels builds a width x height image from a row-major buffer.
// The buffer is copied.
func FromPixels(width, height int, pix []Pixel) (*Image, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels cannot fill a %dx%d image",
			ErrValidation, len(pix), width, height)
	}
	out := make([]Pixel, len(pix))
	copy(out, pix)
	return &Image{width: width, height: height, pix: out}, nil
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	out := &Image{width: m.width, height: m.height, pix: make([]Pixel, len(m.pix))}
	copy(out.pix, m.pix)
	return out
}

// Equal reports whether both images have the same size and pixels.
func (m *Image) Equal(other *Image) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// FromStd converts any image.Image into an Image.
//
// Colors are converted to non-premultiplied NRGBA so translucent pixels keep
// their straight color. Alpha is discarded.
func FromStd(src image.Image) *Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	img := &Image{width: width, height: height, pix: make([]Pixel, width*height)}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(src.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			img.set(y, x, Pixel{R: c.R, G: c.G, B: c.B})
		}
	}
	return img
}

// ToStd converts the image into an opaque *image.RGBA with origin (0,0).
func (m *Image) ToStd() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			p := m.at(row, col)
			out.SetRGBA(col, row, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return out
}

func (m *Image) boundsError(row, col int) error {
	return fmt.Errorf("%w: row %d, col %d outside %dx%d image",
		ErrValidation, row, col, m.width, m.height)
}
