package imaging

import (
	"github.com/anthonynsimon/bild/histogram"
)

// Bins is the number of buckets in each histogram table, one per channel value.
const Bins = MaxChannel + 1

// Histogram holds the frequency tables a display collaborator draws.
//
// Bucket v of each table counts the pixels whose channel (or intensity) equals v.
type Histogram struct {
	Red       [Bins]int `json:"red"`
	Green     [Bins]int `json:"green"`
	Blue      [Bins]int `json:"blue"`
	Intensity [Bins]int `json:"intensity"`
}

// NewHistogram counts the red, green, blue and intensity values of img.
//
// Intensity is the truncated mean (r+g+b)/3, the same value the
// intensity-component transformation produces.
func NewHistogram(img *Image) *Histogram {
	h := &Histogram{}
	if len(img.pix) == 0 {
		return h
	}

	rgba := histogram.NewRGBAHistogram(img.ToStd())
	copy(h.Red[:], rgba.R.Bins)
	copy(h.Green[:], rgba.G.Bins)
	copy(h.Blue[:], rgba.B.Bins)

	for _, p := range img.pix {
		h.Intensity[p.Intensity()]++
	}
	return h
}

// Max returns the largest bucket count across all four tables, which a
// renderer uses to scale its bars. An empty histogram returns 0.
func (h *Histogram) Max() int {
	max := 0
	for _, table := range [][Bins]int{h.Red, h.Green, h.Blue, h.Intensity} {
		for _, c := range table {
			if c > max {
				max = c
			}
		}
	}
	return max
}
