package rtree

import (
	"testing"

	"github.com/halvorsen/rtree/geom"
)

// rectFixture is a terse (x0, y0, x1, y1) shorthand for building test
// rectangles without going through the validating geom constructor by hand.
type rectFixture struct{ x0, y0, x1, y1 float64 }

type rectFixtures []rectFixture

func (fs rectFixtures) build(t *testing.T) []geom.Rectangle {
	t.Helper()
	out := make([]geom.Rectangle, len(fs))
	for i, f := range fs {
		r, err := geom.NewRectangle([2]float64{f.x0, f.x1}, [2]float64{f.y0, f.y1})
		if err != nil {
			t.Fatalf("NewRectangle: %v", err)
		}
		out[i] = *r
	}
	return out
}

func TestFindWorstPairPicksMaximumWaste(t *testing.T) {
	rects := rectFixtures{
		{0, 0, 1, 1},         // small, near origin
		{0, 0, 1, 1},         // identical to above: combining wastes nothing
		{100, 100, 101, 101}, // far away: combining with either of the above wastes the most
	}.build(t)

	i, j := findWorstPair(rects)
	if !(i == 2 || j == 2) {
		t.Errorf("expected the far-away rectangle (index 2) to be one of the seeds, got (%d, %d)", i, j)
	}
}

func TestQuadraticSplitRespectsMinChildren(t *testing.T) {
	// Eight identical unit rectangles: every enlargement delta is zero, so
	// the algorithm must fall back on the drain rule to keep both groups
	// at least minChildren large.
	fixtures := make([]rectFixture, 8)
	for i := range fixtures {
		fixtures[i] = rectFixture{0, 0, 1, 1}
	}
	rects := rectFixtures(fixtures).build(t)

	groups := quadraticSplit(rects, 2, 8)
	if len(groups.g1) < 2 {
		t.Errorf("G1 has %d members, want >= 2", len(groups.g1))
	}
	if len(groups.g2) < 2 {
		t.Errorf("G2 has %d members, want >= 2", len(groups.g2))
	}
	if len(groups.g1)+len(groups.g2) != 8 {
		t.Errorf("groups do not partition all 8 candidates: %d + %d", len(groups.g1), len(groups.g2))
	}
	seen := map[int]bool{}
	for _, idx := range append(append([]int{}, groups.g1...), groups.g2...) {
		if seen[idx] {
			t.Errorf("index %d assigned to both groups", idx)
		}
		seen[idx] = true
	}
}

func TestQuadraticSplitSeparatesDistantClusters(t *testing.T) {
	fixtures := []rectFixture{
		{0, 0, 1, 1}, {0, 1, 1, 2}, {1, 0, 2, 1}, {1, 1, 2, 2},
		{100, 100, 101, 101}, {100, 101, 101, 102}, {101, 100, 102, 101}, {101, 101, 102, 102},
	}
	rects := rectFixtures(fixtures).build(t)

	groups := quadraticSplit(rects, 2, 8)
	low, high := map[int]bool{}, map[int]bool{}
	for _, idx := range groups.g1 {
		if idx < 4 {
			low[idx] = true
		} else {
			high[idx] = true
		}
	}
	if len(low) > 0 && len(high) > 0 {
		t.Errorf("expected quadratic split to separate the two spatial clusters, G1 mixed both: low=%v high=%v", low, high)
	}
}
