package imaging

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in several representations.
type ColorResult struct {
	Hex       string   `json:"hex"` // Hex format "#RRGGBB"
	RGB       Pixel    `json:"rgb"`
	HSL       HSLColor `json:"hsl"`
	Value     int      `json:"value"`     // max(r,g,b)
	Intensity int      `json:"intensity"` // (r+g+b)/3
}

// SampleColor reports the color of the pixel at (row, col).
//
// Returns an error wrapping ErrValidation if the coordinates are outside the image.
//
// Hex and HSL are computed with go-colorful on the normalized channels. HSL
// components are truncated to integers: hue in degrees, saturation and
// lightness in percent.
func SampleColor(img *Image, row, col int) (*ColorResult, error) {
	p, err := img.PixelAt(row, col)
	if err != nil {
		return nil, err
	}
	return describe(p), nil
}

func describe(p Pixel) *ColorResult {
	c := toColorful(p)
	h, s, l := c.Hsl()
	return &ColorResult{
		Hex:       strings.ToUpper(c.Hex()),
		RGB:       p,
		HSL:       HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
		Value:     p.Value(),
		Intensity: p.Intensity(),
	}
}

func toColorful(p Pixel) colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string  `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64 `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        Pixel   `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors in an image,
// sorted by frequency in descending order.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the count most common colors from an image.
//
// Channels are quantized to multiples of 16 before counting so that nearly
// identical colors are grouped:
//
//	quantized = (original / 16) * 16
//
// Ties in frequency are ordered by hex value so results are stable.
// Returns an error wrapping ErrValidation if count is not positive.
func DominantColors(img *Image, count int) (*DominantColorsResult, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: color count must be positive, got %d", ErrValidation, count)
	}

	counts := make(map[Pixel]int)
	for _, p := range img.pix {
		q := Pixel{R: p.R / 16 * 16, G: p.G / 16 * 16, B: p.B / 16 * 16}
		counts[q]++
	}

	total := len(img.pix)
	colors := make([]ColorFrequency, 0, len(counts))
	for p, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        strings.ToUpper(toColorful(p).Hex()),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        p,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return &DominantColorsResult{Colors: colors}, nil
}
