package rtree

import (
	"github.com/halvorsen/rtree/arena"
	"github.com/halvorsen/rtree/geom"
)

// DefaultMinChildren and DefaultMaxChildren are the fanout bounds used by
// New. They match the values worked through in the concrete scenarios
// this package's tests are built from.
const (
	DefaultMinChildren = 2
	DefaultMaxChildren = 8
)

// Tree is a height-balanced spatial index over axis-aligned rectangles in
// a fixed number of dimensions. The zero value is not usable; construct
// one with New or NewWithLimits.
type Tree[T any] struct {
	dim         int
	minChildren int
	maxChildren int
	arena       *arena.Arena[Node[T]]
	root        arena.Handle
	seeded      bool // false until the first entry is inserted
}

// New creates an empty tree over dim axes, using DefaultMinChildren and
// DefaultMaxChildren.
//
// Example:
//
//	t := rtree.New[string](2)
//	r, _ := geom.NewRectangle([2]float64{0, 2}, [2]float64{0, 2})
//	t.Insert(r, "A")
//	hits, _ := t.PointLookup([]float64{1, 1})
func New[T any](dim int) *Tree[T] {
	t, err := NewWithLimits[T](dim, DefaultMinChildren, DefaultMaxChildren)
	if err != nil {
		// DefaultMinChildren/DefaultMaxChildren are always valid; a
		// failure here means dim itself is bad.
		panic(err)
	}
	return t
}

// NewWithLimits creates an empty tree with custom fanout bounds. It
// returns a *ConfigError if dim < 1 or the bounds don't satisfy
// 2 <= minChildren <= maxChildren/2.
func NewWithLimits[T any](dim, minChildren, maxChildren int) (*Tree[T], error) {
	if dim < 1 {
		return nil, &ConfigError{Dim: dim, MinChildren: minChildren, MaxChildren: maxChildren,
			Reason: "dim must be >= 1"}
	}
	if minChildren < 2 {
		return nil, &ConfigError{Dim: dim, MinChildren: minChildren, MaxChildren: maxChildren,
			Reason: "minChildren must be >= 2"}
	}
	if minChildren > maxChildren/2 {
		return nil, &ConfigError{Dim: dim, MinChildren: minChildren, MaxChildren: maxChildren,
			Reason: "minChildren must be <= maxChildren/2"}
	}

	a := arena.New[Node[T]]()
	rootNode := newInternal[T](geom.Infinite(dim), arena.Handle{}, false)
	root := a.Insert(rootNode)

	return &Tree[T]{
		dim:         dim,
		minChildren: minChildren,
		maxChildren: maxChildren,
		arena:       a,
		root:        root,
	}, nil
}

// Dim returns the number of axes entries in this tree are defined over.
func (t *Tree[T]) Dim() int { return t.dim }

// RootHandle returns the handle of the root node.
func (t *Tree[T]) RootHandle() arena.Handle { return t.root }

// RootNode returns a read-only view of the root node directly.
func (t *Tree[T]) RootNode() (*Node[T], error) {
	return t.arena.Get(t.root)
}

// GetNode returns a read-only view of the node h refers to.
func (t *Tree[T]) GetNode(h arena.Handle) (*Node[T], error) {
	return t.arena.Get(h)
}

// get fetches the node at h, aborting if h is somehow invalid: every
// handle this package hands to itself came from its own arena and must
// still be live, so a failure here is a bug in the tree, not bad input.
func (t *Tree[T]) get(h arena.Handle) *Node[T] {
	return t.arena.MustGet(h)
}

// Insert adds rect with an associated payload to the tree.
//
// Example:
//
//	r, _ := geom.NewRectangle([2]float64{0, 1}, [2]float64{0, 1})
//	err := t.Insert(r, myPayload)
func (t *Tree[T]) Insert(rect *geom.Rectangle, payload T) error {
	if rect.Dim() != t.dim {
		return &geom.DimensionMismatchError{Want: t.dim, Got: rect.Dim()}
	}

	// Step 1: grow or seed the root's MBR directly off the inserted
	// rectangle, independent of tree structure.
	root := t.get(t.root)
	if !t.seeded {
		root.SetMBR(rect.Clone())
		t.seeded = true
	} else {
		mbr := root.MBR()
		rootMBR := mbr.Clone()
		if err := geom.UnionInPlace(&rootMBR, rect); err != nil {
			return err
		}
		root.SetMBR(rootMBR)
	}

	// Step 2: descend via choose-subtree to the leaf-parent level.
	target := t.chooseLeafParent(rect)

	// Step 3: attach a new leaf at target.
	leaf := newLeaf(rect.Clone(), payload, target)
	leafHandle := t.arena.Insert(leaf)
	t.get(target).AppendChild(leafHandle)

	// Step 4: split on overflow.
	if t.get(target).ChildCount() >= t.maxChildren {
		t.split(target)
	}
	return nil
}

// chooseLeafParent descends from the root, picking the subtree that
// enlarges least at each internal level, until it reaches a node with no
// children or whose children are leaves.
func (t *Tree[T]) chooseLeafParent(rect *geom.Rectangle) arena.Handle {
	cur := t.root
	for {
		node := t.get(cur)
		children := node.Children()
		if len(children) == 0 {
			return cur
		}
		if t.get(children[0]).IsLeaf() {
			return cur
		}
		cur = t.chooseChild(children, rect)
	}
}

// chooseChild implements 4.4.2's choose-subtree rule over one internal
// node's children, all of which are themselves internal.
func (t *Tree[T]) chooseChild(children []arena.Handle, rect *geom.Rectangle) arena.Handle {
	// Prefer a child that already contains rect outright, first-seen.
	for _, h := range children {
		child := t.get(h)
		mbr := child.MBR()
		contains, err := geom.ContainsRect(&mbr, rect)
		invariant(err == nil, "choose-subtree: %v", err)
		if contains {
			return h
		}
	}

	// Otherwise the child minimising enlargement, first-seen on ties.
	var best arena.Handle
	bestEnlargement := 0.0
	haveBest := false
	for _, h := range children {
		child := t.get(h)
		mbr := child.MBR()
		union, err := geom.Union(&mbr, rect)
		invariant(err == nil, "choose-subtree union: %v", err)
		enlargement := union.Area() - mbr.Area()
		if !haveBest || enlargement < bestEnlargement {
			best = h
			bestEnlargement = enlargement
			haveBest = true
		}
	}
	invariant(haveBest, "chooseChild called with no children")

	// This is the only place MBRs grow on the descent: overwrite the
	// chosen child's MBR with the union before descending into it.
	chosen := t.get(best)
	mbr := chosen.MBR()
	union, err := geom.Union(&mbr, rect)
	invariant(err == nil, "choose-subtree union: %v", err)
	chosen.SetMBR(union)
	return best
}
