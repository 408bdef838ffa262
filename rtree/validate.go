package rtree

import (
	"fmt"

	"github.com/halvorsen/rtree/arena"
	"github.com/halvorsen/rtree/geom"
)

// ValidateConsistency recursively walks the tree from the root and
// panics if any structural invariant is violated: every child's MBR
// must fit inside its parent's, every child's recorded parent must be
// the node that lists it, and the number of nodes reached this way must
// equal the number of live nodes in the arena (no orphans, no cycles).
//
// This is a debug tool for tests, not something production callers are
// expected to run on a hot path.
func (t *Tree[T]) ValidateConsistency() {
	visited := 0
	t.walk(t.root, &visited)
	if live := t.arena.Len(); visited != live {
		panic(fmt.Sprintf("rtree: consistency check failed: visited %d nodes, arena has %d live", visited, live))
	}
}

func (t *Tree[T]) walk(h arena.Handle, visited *int) {
	*visited++
	node := t.get(h)
	if node.IsLeaf() {
		return
	}
	parentMBR := node.MBR()
	for _, child := range node.Children() {
		childNode := t.get(child)
		childMBR := childNode.MBR()

		contains, err := geom.ContainsRect(&parentMBR, &childMBR)
		invariant(err == nil, "ValidateConsistency: %v", err)
		if !contains {
			panic(fmt.Sprintf("rtree: consistency check failed: parent MBR does not contain child MBR (parent=%v child=%v)", parentMBR, childMBR))
		}

		childParent, hasParent := childNode.Parent()
		if !hasParent || childParent != h {
			panic(fmt.Sprintf("rtree: consistency check failed: child's parent handle does not point back to %v", h))
		}

		t.walk(child, visited)
	}
}
