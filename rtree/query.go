package rtree

import (
	"github.com/halvorsen/rtree/arena"
	"github.com/halvorsen/rtree/geom"
)

// search is the single downward traversal engine behind all three public
// query operations. It walks a DFS stack from the root, descending into
// any child whose MBR satisfies descend, and emitting every leaf it
// reaches that way. Because the tree is a tree and not a DAG, each leaf
// is reachable by exactly one path, so results never repeat.
func (t *Tree[T]) search(descend func(mbr *geom.Rectangle) bool) []arena.Handle {
	var results []arena.Handle
	stack := []arena.Handle{t.root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.get(h)
		if node.IsLeaf() {
			results = append(results, h)
			continue
		}
		for _, child := range node.Children() {
			mbr := t.get(child).MBR()
			if descend(&mbr) {
				stack = append(stack, child)
			}
		}
	}
	return results
}

// PointLookup returns the handles of every leaf whose rectangle contains
// point p.
func (t *Tree[T]) PointLookup(p []float64) ([]arena.Handle, error) {
	if len(p) != t.dim {
		return nil, &geom.DimensionMismatchError{Want: t.dim, Got: len(p)}
	}
	return t.search(func(mbr *geom.Rectangle) bool {
		ok, err := geom.ContainsPoint(mbr, p)
		invariant(err == nil, "PointLookup: %v", err)
		return ok
	}), nil
}

// RegionIntersectionLookup returns the handles of every leaf whose
// rectangle intersects r.
func (t *Tree[T]) RegionIntersectionLookup(r *geom.Rectangle) ([]arena.Handle, error) {
	if r.Dim() != t.dim {
		return nil, &geom.DimensionMismatchError{Want: t.dim, Got: r.Dim()}
	}
	return t.search(func(mbr *geom.Rectangle) bool {
		ok, err := geom.IntersectsRect(mbr, r)
		invariant(err == nil, "RegionIntersectionLookup: %v", err)
		return ok
	}), nil
}

// RegionContainmentLookup returns the handles of every leaf whose
// rectangle contains r.
func (t *Tree[T]) RegionContainmentLookup(r *geom.Rectangle) ([]arena.Handle, error) {
	if r.Dim() != t.dim {
		return nil, &geom.DimensionMismatchError{Want: t.dim, Got: r.Dim()}
	}
	return t.search(func(mbr *geom.Rectangle) bool {
		ok, err := geom.ContainsRect(mbr, r)
		invariant(err == nil, "RegionContainmentLookup: %v", err)
		return ok
	}), nil
}
