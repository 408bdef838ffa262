// Package arena implements a generational arena: a store that hands out
// stable, opaque Handles to values instead of pointers.
//
// The R-tree needs this because nodes form a tree with parent pointers:
// a parent owns its children but a child also refers back to its parent,
// and splitting reads one node while mutating another. Expressing that
// with real pointers means two nodes own each other, which Go's ownership
// model (like Rust's, which the original implementation used
// generational_arena to work around) doesn't give a clean answer to.
// Storing every node in one arena and referring to other nodes only by
// Handle turns every such reference into "look this up in the arena"
// instead of a pointer cycle.
package arena

import "fmt"

// Handle is a stable, opaque reference to a value stored in an Arena. It
// survives until the value is removed (rtree never removes nodes, so in
// practice a Handle is valid for the lifetime of the tree).
type Handle struct {
	index      uint32
	generation uint32
}

// InvalidHandleError is returned when a Handle is used against an Arena
// that didn't produce it, or after the slot it names was reused by a
// later Insert.
type InvalidHandleError struct {
	Handle Handle
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("arena: handle %v does not refer to a live value", e.Handle)
}

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Arena stores values of type T and hands out Handles to them. The zero
// value is ready to use.
type Arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
	len      int
}

// New creates an empty Arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Insert stores value and returns a Handle that can be used to retrieve
// or mutate it.
func (a *Arena[T]) Insert(value T) Handle {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := &a.slots[idx]
		s.occupied = true
		s.value = value
		a.len++
		return Handle{index: idx, generation: s.generation}
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{generation: 0, occupied: true, value: value})
	a.len++
	return Handle{index: idx, generation: 0}
}

func (a *Arena[T]) slotFor(h Handle) (*slot[T], error) {
	if int(h.index) >= len(a.slots) {
		return nil, &InvalidHandleError{Handle: h}
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, &InvalidHandleError{Handle: h}
	}
	return s, nil
}

// Get returns a pointer to the value h refers to, for both reading and
// in-place mutation. The pointer is only valid until the next Insert or
// Remove, which may reuse the backing slice.
func (a *Arena[T]) Get(h Handle) (*T, error) {
	s, err := a.slotFor(h)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// MustGet is like Get but panics on an invalid handle. Used internally by
// the tree, which treats a bad handle as a programmer error rather than
// something a caller can recover from.
func (a *Arena[T]) MustGet(h Handle) *T {
	v, err := a.Get(h)
	if err != nil {
		panic(err)
	}
	return v
}

// Remove deletes the value h refers to and frees its slot for reuse.
// Any handle referring to this slot, including h, becomes invalid: a
// later Insert may reuse the slot but will bump its generation, so the
// old handle will not alias the new value.
func (a *Arena[T]) Remove(h Handle) error {
	s, err := a.slotFor(h)
	if err != nil {
		return err
	}
	var zero T
	s.value = zero
	s.occupied = false
	s.generation++
	a.freeList = append(a.freeList, h.index)
	a.len--
	return nil
}

// Len returns the number of live (non-removed) values in the arena.
func (a *Arena[T]) Len() int { return a.len }

// Each calls f for every live value in the arena, in slot order. f must
// not insert or remove values into the same arena.
func (a *Arena[T]) Each(f func(Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			f(Handle{index: uint32(i), generation: s.generation}, &s.value)
		}
	}
}
