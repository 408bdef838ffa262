package rtree

import (
	"math"

	"github.com/halvorsen/rtree/arena"
	"github.com/halvorsen/rtree/geom"
)

// splitTieEpsilon is the tolerance used when comparing enlargement deltas
// for an exact tie during quadratic partitioning.
const splitTieEpsilon = 1e-9

// findWorstPair picks the pair of rectangles whose combination wastes the
// most area (the classic Guttman seed choice). Pairs are enumerated in
// index-lexicographic order and the first pair achieving the maximum is
// kept, so results are deterministic for equal-area ties.
func findWorstPair(rects []geom.Rectangle) (i, j int) {
	invariant(len(rects) >= 2, "findWorstPair needs at least two candidates, got %d", len(rects))

	bestWaste := math.Inf(-1)
	bestI, bestJ := 0, 1
	for a := 0; a < len(rects); a++ {
		for b := a + 1; b < len(rects); b++ {
			u, err := geom.Union(&rects[a], &rects[b])
			invariant(err == nil, "findWorstPair union: %v", err)
			waste := u.Area() - rects[a].Area() - rects[b].Area()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = a, b
			}
		}
	}
	return bestI, bestJ
}

// splitGroups is the outcome of quadraticSplit: two disjoint index sets
// over the original candidate slice, and their combined MBRs.
type splitGroups struct {
	g1, g2 []int
	m1, m2 geom.Rectangle
}

// quadraticSplit partitions the len(rects) candidates, identified by
// their index into rects, into two groups honoring
// minChildren/maxChildren, using Guttman's quadratic seed-and-grow
// heuristic.
func quadraticSplit(rects []geom.Rectangle, minChildren, maxChildren int) splitGroups {
	n := len(rects)
	invariant(n >= 2, "quadraticSplit needs at least two candidates, got %d", n)

	s1, s2 := findWorstPair(rects)

	// side[k]: 0 = unassigned, 1 = G1, 2 = G2.
	side := make([]int, n)
	side[s1] = 1
	side[s2] = 2
	m1 := rects[s1].Clone()
	m2 := rects[s2].Clone()
	g1Count := 1

	unassigned := make([]int, 0, n-2)
	for k := 0; k < n; k++ {
		if k != s1 && k != s2 {
			unassigned = append(unassigned, k)
		}
	}

	for len(unassigned) > 0 &&
		g1Count < maxChildren-minChildren &&
		(n-g1Count-len(unassigned)) < maxChildren-minChildren {

		bestD := math.Inf(1)
		bestPos := -1
		bestSide := 0
		for pos, k := range unassigned {
			d1 := unionArea(&m1, &rects[k]) - m1.Area()
			d2 := unionArea(&m2, &rects[k]) - m2.Area()

			var d float64
			var candSide int
			if math.Abs(d1-d2) < splitTieEpsilon {
				if m1.Area() <= m2.Area() {
					candSide, d = 1, d1
				} else {
					candSide, d = 2, d2
				}
			} else if d1 < d2 {
				candSide, d = 1, d1
			} else {
				candSide, d = 2, d2
			}

			if d < bestD {
				bestD = d
				bestPos = pos
				bestSide = candSide
			}
		}

		k := unassigned[bestPos]
		unassigned = append(unassigned[:bestPos], unassigned[bestPos+1:]...)
		side[k] = bestSide
		if bestSide == 1 {
			invariant(geom.UnionInPlace(&m1, &rects[k]) == nil, "quadraticSplit: dimension mismatch growing M1")
			g1Count++
		} else {
			invariant(geom.UnionInPlace(&m2, &rects[k]) == nil, "quadraticSplit: dimension mismatch growing M2")
		}
	}

	// Drain the rest onto whichever side is still below min_children.
	for _, k := range unassigned {
		if g1Count < minChildren {
			side[k] = 1
			invariant(geom.UnionInPlace(&m1, &rects[k]) == nil, "quadraticSplit: dimension mismatch draining to M1")
			g1Count++
		} else {
			side[k] = 2
			invariant(geom.UnionInPlace(&m2, &rects[k]) == nil, "quadraticSplit: dimension mismatch draining to M2")
		}
	}

	var g1, g2 []int
	for k := 0; k < n; k++ {
		if side[k] == 1 {
			g1 = append(g1, k)
		} else {
			g2 = append(g2, k)
		}
	}
	invariant(len(g1) >= minChildren, "quadraticSplit produced G1 of size %d < minChildren %d", len(g1), minChildren)
	invariant(len(g2) >= minChildren, "quadraticSplit produced G2 of size %d < minChildren %d", len(g2), minChildren)

	return splitGroups{g1: g1, g2: g2, m1: m1, m2: m2}
}

func unionArea(a, b *geom.Rectangle) float64 {
	u, err := geom.Union(a, b)
	invariant(err == nil, "unionArea: %v", err)
	return u.Area()
}

// split resolves overflow at n, whose children number maxChildren, by
// partitioning them per quadraticSplit and applying the result (4.4.5).
// It recurses up toward the root when a parent itself overflows as a
// result, and grows a new level when the root overflows.
func (t *Tree[T]) split(n arena.Handle) {
	node := t.get(n)
	children := node.Children()
	invariant(len(children) == t.maxChildren,
		"split called on a node with %d children, want %d", len(children), t.maxChildren)

	rects := make([]geom.Rectangle, len(children))
	for i, h := range children {
		rects[i] = t.get(h).MBR()
	}

	groups := quadraticSplit(rects, t.minChildren, t.maxChildren)
	g1 := handlesAt(children, groups.g1)
	g2 := handlesAt(children, groups.g2)

	parent, hasParent := t.get(n).Parent()
	if !hasParent {
		t.splitRoot(n, g1, g2, groups.m1, groups.m2)
		return
	}
	t.splitNonRoot(n, parent, g1, g2, groups.m1, groups.m2)
}

func handlesAt(handles []arena.Handle, indices []int) []arena.Handle {
	out := make([]arena.Handle, len(indices))
	for i, idx := range indices {
		out[i] = handles[idx]
	}
	return out
}

// splitRoot handles the "N is root" case of 4.4.5: two fresh internal
// nodes become the new children of the (unchanged) root handle, growing
// the tree's height by one.
func (t *Tree[T]) splitRoot(root arena.Handle, g1, g2 []arena.Handle, m1, m2 geom.Rectangle) {
	left := t.arena.Insert(newInternal[T](m1, root, true))
	for _, h := range g1 {
		t.get(h).SetParent(left)
	}
	t.get(left).SetChildren(g1)

	right := t.arena.Insert(newInternal[T](m2, root, true))
	for _, h := range g2 {
		t.get(h).SetParent(right)
	}
	t.get(right).SetChildren(g2)

	t.get(root).SetChildren([]arena.Handle{left, right})
}

// splitNonRoot handles the "N is non-root" case of 4.4.5: N is reused as
// the left group, a new node R is created for the right group and
// attached to N's parent, splitting that parent in turn if it now
// overflows.
func (t *Tree[T]) splitNonRoot(n, parent arena.Handle, g1, g2 []arena.Handle, m1, m2 geom.Rectangle) {
	t.get(n).SetMBR(m1)
	t.get(n).SetChildren(g1) // members already have parent = n

	right := t.arena.Insert(newInternal[T](m2, parent, true))
	for _, h := range g2 {
		t.get(h).SetParent(right)
	}
	t.get(right).SetChildren(g2)

	t.get(parent).AppendChild(right)

	if t.get(parent).ChildCount() >= t.maxChildren {
		t.split(parent)
	}
}
