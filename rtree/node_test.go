package rtree

import (
	"testing"

	"github.com/halvorsen/rtree/arena"
	"github.com/halvorsen/rtree/geom"
)

func TestNewLeafAndInternal(t *testing.T) {
	mbr := geom.Infinite(2)
	root := newInternal[string](mbr, arena.Handle{}, false)
	if root.IsLeaf() {
		t.Error("newInternal produced a leaf")
	}
	if _, hasParent := root.Parent(); hasParent {
		t.Error("root should report no parent")
	}

	leaf := newLeaf(mbr, "payload", arena.Handle{})
	if !leaf.IsLeaf() {
		t.Error("newLeaf produced an internal node")
	}
	p, ok := leaf.Payload()
	if !ok || p != "payload" {
		t.Errorf("Payload() = %v, %v; want \"payload\", true", p, ok)
	}
	if _, ok := root.Payload(); ok {
		t.Error("internal node should not report a payload")
	}
}

func TestNodeChildMutators(t *testing.T) {
	mbr := geom.Infinite(1)
	n := newInternal[int](mbr, arena.Handle{}, false)
	if n.HasChildren() {
		t.Error("fresh node should have no children")
	}

	h1 := arena.Handle{}
	n.AppendChild(h1)
	if n.ChildCount() != 1 {
		t.Errorf("ChildCount() = %d, want 1", n.ChildCount())
	}

	prior := n.ClearChildren()
	if len(prior) != 1 {
		t.Errorf("ClearChildren returned %d entries, want 1", len(prior))
	}
	if n.HasChildren() {
		t.Error("HasChildren should be false after ClearChildren")
	}
}

func TestNodeSetParentAndMBR(t *testing.T) {
	n := newLeaf(geom.Infinite(2), 7, arena.Handle{})
	newParent := arena.Handle{}
	n.SetParent(newParent)
	if parent, ok := n.Parent(); !ok || parent != newParent {
		t.Errorf("Parent() = %v, %v", parent, ok)
	}

	r, err := geom.NewRectangle([2]float64{0, 1}, [2]float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	n.SetMBR(*r)
	if got := n.MBR(); got.Area() != 1 {
		t.Errorf("MBR area = %v, want 1", got.Area())
	}
}
