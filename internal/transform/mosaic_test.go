package transform

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ironsheep/image-transform-mcp/internal/imaging"
)

// zeroRand always draws the first value of the range.
type zeroRand struct{}

func (zeroRand) Intn(n int) int { return 0 }

func TestMosaicImage_OneSeedIsGlobalMean(t *testing.T) {
	out, clusters, err := MosaicImage(createTestGrid(t), 1, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("MosaicImage failed: %v", err)
	}
	if len(clusters) != 1 || len(clusters[0].Members) != 4 {
		t.Fatalf("got %d clusters, want one with 4 members", len(clusters))
	}

	// (10+10+30+0)/4, (20+20+20+30)/4, (30+30+10+30)/4
	want := createUniformImage(t, 2, 2, imaging.Pixel{R: 12, G: 22, B: 25})
	if !out.Equal(want) {
		t.Errorf("got %v, want all (12,22,25)", out.Pixels())
	}
}

func TestMosaicImage_TieGoesToFirstSeed(t *testing.T) {
	// zeroRand places the seeds at (0,0) and (0,2). Column 1 is equidistant.
	img := createGrid(t, [][]imaging.Pixel{
		{imaging.Gray(0), imaging.Gray(40), imaging.Gray(100), imaging.Gray(200)},
	})
	out, clusters, err := MosaicImage(img, 2, zeroRand{})
	if err != nil {
		t.Fatalf("MosaicImage failed: %v", err)
	}

	if clusters[0].Seed != (Point{0, 0}) || clusters[1].Seed != (Point{0, 2}) {
		t.Fatalf("seeds: got %v and %v", clusters[0].Seed, clusters[1].Seed)
	}
	want := []int{20, 20, 150, 150}
	for col, w := range want {
		if p, _ := out.PixelAt(0, col); p != imaging.Gray(w) {
			t.Errorf("col %d: got %v, want %v", col, p, imaging.Gray(w))
		}
	}
}

func TestMosaicImage_Reproducible(t *testing.T) {
	img := createGrid(t, [][]imaging.Pixel{
		{{R: 1, G: 2, B: 3}, {R: 40, G: 50, B: 60}, {R: 200, G: 10, B: 90}, {R: 7, G: 7, B: 7}},
		{{R: 90, G: 80, B: 70}, {R: 5, G: 250, B: 5}, {R: 33, G: 66, B: 99}, {R: 128, G: 0, B: 255}},
		{{R: 12, G: 34, B: 56}, {R: 255, G: 255, B: 255}, {R: 0, G: 0, B: 0}, {R: 61, G: 62, B: 63}},
	})

	a, _, err := MosaicImage(img, 3, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("MosaicImage failed: %v", err)
	}
	b, _, err := MosaicImage(img, 3, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("MosaicImage failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("identical random sources produced different mosaics")
	}
}

func TestMosaicImage_ClustersCoverImage(t *testing.T) {
	img := createUniformImage(t, 9, 6, imaging.Pixel{R: 3, G: 6, B: 9})
	out, clusters, err := MosaicImage(img, 5, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("MosaicImage failed: %v", err)
	}
	if len(clusters) != 5 {
		t.Fatalf("got %d clusters, want 5", len(clusters))
	}

	seen := make(map[Point]bool)
	for _, c := range clusters {
		for _, p := range c.Members {
			if seen[p] {
				t.Fatalf("pixel %v assigned twice", p)
			}
			seen[p] = true
			if got, _ := out.PixelAt(p.Row, p.Col); got != c.Color {
				t.Errorf("pixel %v: got %v, want cluster color %v", p, got, c.Color)
			}
		}
	}
	if len(seen) != 9*6 {
		t.Errorf("clusters cover %d pixels, want %d", len(seen), 9*6)
	}
	if !out.Equal(img) {
		t.Error("mosaic of a uniform image changed its color")
	}
}

func TestMosaicImage_Empty(t *testing.T) {
	img, _ := imaging.NewImage(0, 0)
	out, clusters, err := MosaicImage(img, 3, zeroRand{})
	if err != nil {
		t.Fatalf("MosaicImage failed: %v", err)
	}
	if out.Width() != 0 || out.Height() != 0 || clusters != nil {
		t.Errorf("got %dx%d with %d clusters, want empty", out.Width(), out.Height(), len(clusters))
	}
}

func TestPlaceSeeds_InBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	sizes := []struct{ w, h, n int }{
		{1, 1, 1},
		{1, 1, 8},
		{2, 1, 5},
		{1, 3, 7},
		{10, 10, 100},
		{10, 10, 250},
		{640, 480, 1000},
	}

	for _, sz := range sizes {
		points := PlaceSeeds(sz.w, sz.h, sz.n, rnd)
		if len(points) != sz.n {
			t.Errorf("%dx%d n=%d: got %d seeds", sz.w, sz.h, sz.n, len(points))
		}
		for _, p := range points {
			if p.Row < 0 || p.Row >= sz.h || p.Col < 0 || p.Col >= sz.w {
				t.Errorf("%dx%d n=%d: seed %v out of bounds", sz.w, sz.h, sz.n, p)
			}
		}
	}
}

func TestPlaceSeeds_Bisects(t *testing.T) {
	// Four seeds: split the width, then each half's height.
	points := PlaceSeeds(8, 6, 4, zeroRand{})
	want := []Point{{0, 0}, {3, 0}, {0, 4}, {3, 4}}
	if len(points) != len(want) {
		t.Fatalf("got %d seeds, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("seed %d: got %v, want %v", i, points[i], want[i])
		}
	}
}

func TestNewMosaic(t *testing.T) {
	for _, seeds := range []int{0, -1} {
		if _, err := NewMosaic(seeds, zeroRand{}, "a", "b"); !errors.Is(err, imaging.ErrValidation) {
			t.Errorf("seeds=%d: got %v, want ErrValidation", seeds, err)
		}
	}
	if _, err := NewMosaic(3, nil, "a", "b"); !errors.Is(err, imaging.ErrValidation) {
		t.Errorf("nil random: got %v, want ErrValidation", err)
	}
	if _, _, err := MosaicImage(createTestGrid(t), 0, zeroRand{}); !errors.Is(err, imaging.ErrValidation) {
		t.Errorf("MosaicImage seeds=0: got %v, want ErrValidation", err)
	}
}

func TestMosaicImage_TooManySeeds(t *testing.T) {
	img := createTestGrid(t)

	for _, seeds := range []int{5, 1 << 62} {
		if _, _, err := MosaicImage(img, seeds, zeroRand{}); !errors.Is(err, imaging.ErrValidation) {
			t.Errorf("seeds=%d on 2x2: got %v, want ErrValidation", seeds, err)
		}
	}
	if _, clusters, err := MosaicImage(img, 4, zeroRand{}); err != nil || len(clusters) != 4 {
		t.Errorf("seeds=4 on 2x2: got %d clusters, err %v", len(clusters), err)
	}

	s := storeWith(t, "koala", img)
	m, err := NewMosaic(1<<62, zeroRand{}, "koala", "tiles")
	if err != nil {
		t.Fatalf("NewMosaic failed: %v", err)
	}
	if err := m.Apply(s); !errors.Is(err, imaging.ErrValidation) {
		t.Errorf("Apply: got %v, want ErrValidation", err)
	}
	if _, err := s.Get("tiles"); err == nil {
		t.Error("destination published after failure")
	}
}

// rejectingStore serves images from a Store but refuses every Add.
type rejectingStore struct {
	*imaging.Store
}

func (rejectingStore) Add(name string, img *imaging.Image) error {
	return errors.New("store is read-only")
}

func TestMosaic_ClustersKeptOnFailedPublish(t *testing.T) {
	s := storeWith(t, "koala", createTestGrid(t))

	m, err := NewMosaic(2, rand.New(rand.NewSource(9)), "koala", "tiles")
	if err != nil {
		t.Fatalf("NewMosaic failed: %v", err)
	}
	if err := m.Apply(s); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	before := m.Clusters()

	if err := m.Apply(rejectingStore{s}); err == nil {
		t.Fatal("Apply to a rejecting store succeeded")
	}
	after := m.Clusters()
	if len(after) != len(before) || &after[0] != &before[0] {
		t.Error("failed Apply replaced the clusters of the last successful Apply")
	}
}

func TestMosaic_Apply(t *testing.T) {
	s := storeWith(t, "koala", createTestGrid(t))

	m, err := NewMosaic(2, rand.New(rand.NewSource(9)), "koala", "tiles")
	if err != nil {
		t.Fatalf("NewMosaic failed: %v", err)
	}
	if m.Clusters() != nil {
		t.Error("Clusters before Apply should be nil")
	}
	if err := m.Apply(s); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(m.Clusters()) != 2 {
		t.Errorf("got %d clusters, want 2", len(m.Clusters()))
	}
	mustGet(t, s, "tiles")
}
