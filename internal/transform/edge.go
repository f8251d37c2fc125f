package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// EdgeDetect marks the edges of an image in white on black.
type EdgeDetect struct {
	endpoints
	low, high int
}

// NewEdgeDetect creates an edge detection of src published as dst.
//
// Returns an error wrapping ErrValidation unless 0 <= low <= high <= 255.
func NewEdgeDetect(low, high int, src, dst string) (*EdgeDetect, error) {
	if low < 0 || high > imaging.MaxChannel || low > high {
		return nil, fmt.Errorf("%w: edge thresholds must satisfy 0 <= low <= high <= 255, got %d and %d",
			imaging.ErrValidation, low, high)
	}
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	return &EdgeDetect{endpoints: e, low: low, high: high}, nil
}

// Name returns "edge-detect".
func (d *EdgeDetect) Name() string { return "edge-detect" }

// Apply writes the edge image.
func (d *EdgeDetect) Apply(s Store) error {
	return d.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		return DetectEdges(img, d.low, d.high), nil
	})
}

// DetectEdges performs Canny-style edge detection.
//
// The output has the same size as img; edge pixels are white (255,255,255) and
// everything else is black.
//
// # Algorithm
//
//  1. Grayscale conversion using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B), normalized to 0-1
//
//  2. Gaussian blur: 5x5 kernel to reduce noise
//
//  3. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  4. Non-maximum suppression: thin edges to 1-pixel width by keeping only
//     local maxima in the gradient direction
//
//  5. Hysteresis thresholding:
//     - Pixels above high are strong edges (always kept)
//     - Pixels between low and high are kept only next to a strong edge
//     - Pixels below low are discarded
//
// Thresholds are on the 0-255 scale. Clean diagrams work well with 50/150,
// photographs with 100/200.
func DetectEdges(img *imaging.Image, low, high int) *imaging.Image {
	width, height := img.Width(), img.Height()
	src := img.Pixels()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			p := src[y*width+x]
			gray[y][x] = (0.299*float64(p.R) + 0.587*float64(p.G) + 0.114*float64(p.B)) / 255.0
		}
	}

	blurred := gaussianBlur(gray, width, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := blurred[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}
			n1, n2 := gradientNeighbors(magnitude, direction[y][x], x, y)
			if mag := magnitude[y][x]; mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	lowThresh := float64(low) / 255.0
	highThresh := float64(high) / 255.0
	dst := make([]imaging.Pixel, width*height)
	white := imaging.Gray(imaging.MaxChannel)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			switch {
			case val >= highThresh && val > 0:
				dst[y*width+x] = white
			case val >= lowThresh && val > 0 && hasStrongNeighbor(suppressed, x, y, highThresh):
				dst[y*width+x] = white
			}
		}
	}

	out, _ := imaging.FromPixels(width, height, dst)
	return out
}

// gradientNeighbors returns the two magnitudes on either side of (x,y) along
// the gradient direction, quantized to 45 degree steps.
func gradientNeighbors(magnitude [][]float64, angle float64, x, y int) (float64, float64) {
	switch {
	case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
		return magnitude[y][x-1], magnitude[y][x+1]
	case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
		return magnitude[y-1][x+1], magnitude[y+1][x-1]
	case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
		return magnitude[y-1][x], magnitude[y+1][x]
	default:
		return magnitude[y-1][x-1], magnitude[y+1][x+1]
	}
}

func hasStrongNeighbor(suppressed [][]float64, x, y int, highThresh float64) bool {
	height, width := len(suppressed), len(suppressed[0])
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			v := suppressed[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)]
			if v >= highThresh && v > 0 {
				return true
			}
		}
	}
	return false
}

// gaussianBlur applies a 5x5 Gaussian blur with sigma ≈ 1.4:
//
//	1  4  7  4  1
//	4 16 26 16  4
//	7 26 41 26  7
//	4 16 26 16  4
//	1  4  7  4  1
//
// normalized by the kernel sum 273. Border pixels use clamped edge values.
func gaussianBlur(img [][]float64, width, height int) [][]float64 {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					sum += img[clamp(y+ky, 0, height-1)][clamp(x+kx, 0, width-1)] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}
