package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Component names a scalar derived from a pixel.
type Component string

const (
	Red       Component = "red"       // the red channel
	Green     Component = "green"     // the green channel
	Blue      Component = "blue"      // the blue channel
	Value     Component = "value"     // max(r,g,b)
	Intensity Component = "intensity" // (r+g+b)/3, truncated
	Luma      Component = "luma"      // greyscale color matrix
)

// Components lists every component Extract accepts.
var Components = []Component{Red, Green, Blue, Value, Intensity, Luma}

// Extract builds a greyscale image from one component of every pixel.
type Extract struct {
	endpoints
	component Component
}

// NewExtract creates a component extraction of src published as dst.
func NewExtract(c Component, src, dst string) (*Extract, error) {
	if _, ok := scalar(c); !ok && c != Luma {
		return nil, fmt.Errorf("%w: unknown component %q", imaging.ErrValidation, c)
	}
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	return &Extract{endpoints: e, component: c}, nil
}

// Name returns the command name, e.g. "red-component".
func (x *Extract) Name() string { return string(x.component) + "-component" }

// Apply writes the greyscale component image.
func (x *Extract) Apply(s Store) error {
	return x.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		return ExtractComponent(img, x.component)
	})
}

// ExtractComponent sets every channel of every pixel to the chosen component.
// Luma is delegated to the Greyscale color matrix.
func ExtractComponent(img *imaging.Image, c Component) (*imaging.Image, error) {
	if c == Luma {
		return ApplyMatrix(img, Greyscale), nil
	}
	fn, ok := scalar(c)
	if !ok {
		return nil, fmt.Errorf("%w: unknown component %q", imaging.ErrValidation, c)
	}
	return mapPixels(img, func(p imaging.Pixel) imaging.Pixel {
		return imaging.Gray(fn(p))
	}), nil
}

func scalar(c Component) (func(imaging.Pixel) int, bool) {
	switch c {
	case Red:
		return func(p imaging.Pixel) int { return int(p.R) }, true
	case Green:
		return func(p imaging.Pixel) int { return int(p.G) }, true
	case Blue:
		return func(p imaging.Pixel) int { return int(p.B) }, true
	case Value:
		return imaging.Pixel.Value, true
	case Intensity:
		return imaging.Pixel.Intensity, true
	}
	return nil, false
}

// Brighten adds a signed increment to every channel, clamping to [0,255].
type Brighten struct {
	endpoints
	increment int
}

// NewBrighten creates a brighten (positive increment) or darken (negative
// increment) of src published as dst.
func NewBrighten(increment int, src, dst string) (*Brighten, error) {
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	return &Brighten{endpoints: e, increment: increment}, nil
}

// Name returns "brighten".
func (b *Brighten) Name() string { return "brighten" }

// Apply writes the brightened image.
func (b *Brighten) Apply(s Store) error {
	return b.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		return BrightenImage(img, b.increment), nil
	})
}

// BrightenImage returns img with increment added to every channel.
func BrightenImage(img *imaging.Image, increment int) *imaging.Image {
	return mapPixels(img, func(p imaging.Pixel) imaging.Pixel {
		return imaging.Pixel{
			R: uint8(imaging.ClampChannel(int(p.R) + increment)),
			G: uint8(imaging.ClampChannel(int(p.G) + increment)),
			B: uint8(imaging.ClampChannel(int(p.B) + increment)),
		}
	})
}
