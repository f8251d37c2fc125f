package codec

import (
	"fmt"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	model "github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// DefaultJPEGQuality is used when Options leaves JPEGQuality unset.
const DefaultJPEGQuality = 95

// Options tunes raster encoding.
type Options struct {
	// JPEGQuality is the JPEG quality from 1 to 100. Zero selects DefaultJPEGQuality.
	JPEGQuality int
}

func (o Options) encodeOptions() []imaging.EncodeOption {
	q := o.JPEGQuality
	if q <= 0 || q > 100 {
		q = DefaultJPEGQuality
	}
	return []imaging.EncodeOption{imaging.JPEGQuality(q)}
}

// DecodeRaster decodes any registered raster format (PNG, JPEG, GIF, BMP, TIFF,
// WebP) into an Image. Alpha is dropped.
func DecodeRaster(r io.Reader) (*model.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", model.ErrIO, err)
	}
	return model.FromStd(img), nil
}

// EncodeRaster writes img in the given format.
func EncodeRaster(w io.Writer, img *model.Image, format imaging.Format, opts Options) error {
	if err := imaging.Encode(w, img.ToStd(), format, opts.encodeOptions()...); err != nil {
		return fmt.Errorf("%w: failed to encode %s image: %v", model.ErrIO, format, err)
	}
	return nil
}
