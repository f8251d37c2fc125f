package transform

import (
	"fmt"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// RandomSource supplies the random draws for mosaic seed placement.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	// Intn returns a uniformly distributed integer in [0, n). n is always > 0.
	Intn(n int) int
}

// Point is a pixel position.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cluster is a seed position and the pixels assigned to it.
type Cluster struct {
	Seed    Point         `json:"seed"`
	Members []Point       `json:"members"`
	Color   imaging.Pixel `json:"color"` // mean of the members, truncated
}

// Mosaic partitions an image into irregular regions around random seeds and
// paints each region with its mean color.
type Mosaic struct {
	endpoints
	seeds    int
	rnd      RandomSource
	clusters []Cluster
}

// NewMosaic creates a mosaic of src with the given number of seeds, published
// as dst.
//
// Returns an error wrapping ErrValidation if seeds is not positive or rnd is nil.
func NewMosaic(seeds int, rnd RandomSource, src, dst string) (*Mosaic, error) {
	if seeds <= 0 {
		return nil, fmt.Errorf("%w: mosaic seed count must be positive, got %d", imaging.ErrValidation, seeds)
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: mosaic needs a random source", imaging.ErrValidation)
	}
	e, err := newEndpoints(src, dst)
	if err != nil {
		return nil, err
	}
	return &Mosaic{endpoints: e, seeds: seeds, rnd: rnd}, nil
}

// Name returns "mosaic".
func (m *Mosaic) Name() string { return "mosaic" }

// Clusters returns the clusters of the most recent successful Apply, in seed
// order. Clusters that attracted no pixels are included with no members.
func (m *Mosaic) Clusters() []Cluster { return m.clusters }

// Apply writes the mosaic image.
func (m *Mosaic) Apply(s Store) error {
	var clusters []Cluster
	err := m.run(s, func(img *imaging.Image) (*imaging.Image, error) {
		out, c, err := MosaicImage(img, m.seeds, m.rnd)
		if err != nil {
			return nil, err
		}
		clusters = c
		return out, nil
	})
	if err != nil {
		return err
	}
	m.clusters = clusters
	return nil
}

// MosaicImage recolors img into seeds regions.
//
// # Algorithm
//
//  1. Seed placement: PlaceSeeds splits the image rectangle recursively,
//     alternating width and height bisections, and drops one random point in
//     each leaf region.
//
//  2. Assignment: every pixel joins the seed at the smallest Euclidean distance
//     from its (row, col) position. On ties the seed that comes first in seed
//     order wins.
//
//  3. Recoloring: each cluster's R, G and B are averaged independently with
//     integer truncation, and every member pixel takes that color.
//
// An image with no pixels is returned unchanged with no clusters. Otherwise
// seeds must not exceed the pixel count.
func MosaicImage(img *imaging.Image, seeds int, rnd RandomSource) (*imaging.Image, []Cluster, error) {
	if seeds <= 0 {
		return nil, nil, fmt.Errorf("%w: mosaic seed count must be positive, got %d", imaging.ErrValidation, seeds)
	}
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 {
		return img.Clone(), nil, nil
	}
	if seeds > w*h {
		return nil, nil, fmt.Errorf("%w: mosaic seed count %d exceeds the %d pixels of a %dx%d image",
			imaging.ErrValidation, seeds, w*h, w, h)
	}

	points := PlaceSeeds(w, h, seeds, rnd)
	clusters := make([]Cluster, len(points))
	for i, p := range points {
		clusters[i].Seed = p
	}

	src := img.Pixels()
	owner := make([]int, len(src))
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := nearestSeed(points, row, col)
			owner[row*w+col] = c
			clusters[c].Members = append(clusters[c].Members, Point{Row: row, Col: col})
		}
	}

	for i := range clusters {
		var r, g, b int
		for _, p := range clusters[i].Members {
			px := src[p.Row*w+p.Col]
			r += int(px.R)
			g += int(px.G)
			b += int(px.B)
		}
		if n := len(clusters[i].Members); n > 0 {
			clusters[i].Color = imaging.Pixel{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n)}
		}
	}

	dst := make([]imaging.Pixel, len(src))
	for i, c := range owner {
		dst[i] = clusters[c].Color
	}
	out, _ := imaging.FromPixels(w, h, dst)
	return out, clusters, nil
}

// PlaceSeeds returns n seed positions inside a width x height rectangle.
//
// The rectangle's seed quota is split into n/2 and n-n/2 and the rectangle is
// bisected, along the width at even recursion depths and along the height at
// odd ones, with each half taking its share. A region with a quota of one draws
// its column then its row uniformly from its extent.
//
// A region with zero width or height is treated as one pixel wide (or tall) at
// its starting edge, so deep splits of small images stack seeds on that edge
// rather than failing. Only min(n, width*height) points are preallocated.
func PlaceSeeds(width, height, n int, rnd RandomSource) []Point {
	points := make([]Point, 0, max(min(n, width*height), 0))
	placeSeeds(0, width, 0, height, n, true, rnd, &points)
	return points
}

// placeSeeds covers columns [ws,we) and rows [hs,he).
func placeSeeds(ws, we, hs, he, n int, splitWidth bool, rnd RandomSource, points *[]Point) {
	if n == 1 {
		col := ws + rnd.Intn(max(we-ws, 1))
		row := hs + rnd.Intn(max(he-hs, 1))
		*points = append(*points, Point{Row: row, Col: col})
		return
	}
	if n < 1 {
		return
	}

	s1 := n / 2
	s2 := n - s1
	if splitWidth {
		mid := (ws + we) / 2
		placeSeeds(ws, mid, hs, he, s1, false, rnd, points)
		placeSeeds(mid, we, hs, he, s2, false, rnd, points)
	} else {
		mid := (hs + he) / 2
		placeSeeds(ws, we, hs, mid, s1, true, rnd, points)
		placeSeeds(ws, we, mid, he, s2, true, rnd, points)
	}
}

// nearestSeed returns the index of the closest seed to (row, col). Squared
// distances preserve the ordering of Euclidean distances exactly.
func nearestSeed(points []Point, row, col int) int {
	best := 0
	bestDist := sqDist(points[0], row, col)
	for i := 1; i < len(points); i++ {
		if d := sqDist(points[i], row, col); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(p Point, row, col int) int {
	dr := row - p.Row
	dc := col - p.Col
	return dr*dr + dc*dc
}
