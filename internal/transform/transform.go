// Package transform implements the image transformations applied to a store.
//
// A Transform is a closed set of variants: Flip, Extract, Brighten,
// ColorMatrix, Convolve, Mosaic, EdgeDetect, Load and Save. Each is built by a
// constructor that validates every parameter up front, so a constructed
// Transform can only fail at Apply time for reasons outside its parameters
// (an unknown image name, an unreadable file).
//
// # Execution Model
//
// Apply reads the source image from the store (a private copy), computes a
// complete new pixel grid, and only then publishes it under the destination
// name. Source and destination may be the same name. If anything fails the
// store is left exactly as it was.
//
// The pixel engines (FlipHorizontal, ApplyMatrix, Convolve, ...) are also
// exported as pure functions over *imaging.Image for callers that do not need
// a store.
//
// # Determinism
//
// Every transformation is deterministic except Mosaic, whose seed placement
// draws from a caller-supplied RandomSource. Seeding that source identically
// reproduces the same mosaic.
package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// Store is the registry a Transform reads from and publishes to.
// *imaging.Store implements it.
type Store interface {
	Add(name string, img *imaging.Image) error
	Get(name string) (*imaging.Image, error)
}

// Transform is one unit of work over a Store.
type Transform interface {
	// Name returns the command name of the transformation, e.g. "mosaic".
	Name() string

	// Apply runs the transformation against s.
	Apply(s Store) error

	sealed()
}

// endpoints holds the source and destination image names shared by every
// store-to-store variant.
type endpoints struct {
	src string
	dst string
}

func newEndpoints(src, dst string) (endpoints, error) {
	if src == "" {
		return endpoints{}, fmt.Errorf("%w: source image name must not be empty", imaging.ErrValidation)
	}
	if dst == "" {
		return endpoints{}, fmt.Errorf("%w: destination image name must not be empty", imaging.ErrValidation)
	}
	return endpoints{src: src, dst: dst}, nil
}

// Source returns the name of the image the transformation reads.
func (e endpoints) Source() string { return e.src }

// Dest returns the name the result is published under.
func (e endpoints) Dest() string { return e.dst }

// run reads the source, maps it through fn and publishes the result.
func (e endpoints) run(s Store, fn func(*imaging.Image) (*imaging.Image, error)) error {
	src, err := s.Get(e.src)
	if err != nil {
		return err
	}
	out, err := fn(src)
	if err != nil {
		return err
	}
	return s.Add(e.dst, out)
}

func (endpoints) sealed() {}

// mapPixels builds a same-sized image whose every pixel is fn of the source pixel.
func mapPixels(img *imaging.Image, fn func(imaging.Pixel) imaging.Pixel) *imaging.Image {
	pix := img.Pixels()
	for i, p := range pix {
		pix[i] = fn(p)
	}
	out, _ := imaging.FromPixels(img.Width(), img.Height(), pix)
	return out
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
