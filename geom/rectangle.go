// Package geom implements the geometry kernel the R-tree is built on:
// axis-aligned rectangles in k-dimensional space, their area, and the
// containment/intersection/union relations between them.
package geom

import (
	"fmt"
	"math"
)

// Interval is a closed axis range [Low, High], with Low <= High.
type Interval struct {
	Low, High float64
}

// length returns High - Low.
func (iv Interval) length() float64 { return iv.High - iv.Low }

// Rectangle is a minimum bounding region: one Interval per axis. All
// rectangles compared against each other must share the same dimension.
type Rectangle struct {
	intervals []Interval
}

// DimensionMismatchError is returned whenever two shapes, or a shape and a
// tree, disagree on the number of axes they're defined over.
type DimensionMismatchError struct {
	Want, Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("geom: dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// UnsupportedOperationError is reserved for geometric operations that
// aren't defined for a given pair of operands (no shape beyond Rectangle
// exists yet, so this is currently unused outside of plumbing).
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("geom: unsupported operation: %s", e.Op)
}

// NewRectangle builds a Rectangle from one (low, high) pair per axis.
// It returns a *DimensionMismatchError-free validation error if any axis
// has low > high.
func NewRectangle(bounds ...[2]float64) (*Rectangle, error) {
	intervals := make([]Interval, len(bounds))
	for i, b := range bounds {
		if b[0] > b[1] {
			return nil, fmt.Errorf("geom: axis %d has low %v > high %v", i, b[0], b[1])
		}
		intervals[i] = Interval{Low: b[0], High: b[1]}
	}
	return &Rectangle{intervals: intervals}, nil
}

// NewPointRectangle builds a zero-area Rectangle around a single point,
// one interval [v,v] per coordinate.
func NewPointRectangle(point []float64) *Rectangle {
	intervals := make([]Interval, len(point))
	for i, v := range point {
		intervals[i] = Interval{Low: v, High: v}
	}
	return &Rectangle{intervals: intervals}
}

// Infinite returns a Rectangle spanning the representable range on every
// axis. It is used as the root's sentinel MBR before the first insert (see
// rtree.New): any real rectangle is trivially contained in it.
func Infinite(dim int) Rectangle {
	intervals := make([]Interval, dim)
	for i := range intervals {
		intervals[i] = Interval{Low: -math.MaxFloat64, High: math.MaxFloat64}
	}
	return Rectangle{intervals: intervals}
}

// Dim returns the number of axes this rectangle is defined over.
func (r *Rectangle) Dim() int { return len(r.intervals) }

// Interval returns the bounds of axis i.
func (r *Rectangle) Interval(i int) Interval { return r.intervals[i] }

// Clone returns an independent copy of r.
func (r *Rectangle) Clone() Rectangle {
	intervals := make([]Interval, len(r.intervals))
	copy(intervals, r.intervals)
	return Rectangle{intervals: intervals}
}

func checkDims(a, b *Rectangle) error {
	if a.Dim() != b.Dim() {
		return &DimensionMismatchError{Want: a.Dim(), Got: b.Dim()}
	}
	return nil
}

// Area returns the product of side lengths; zero if any side is
// degenerate (zero-width).
func (r *Rectangle) Area() float64 {
	area := 1.0
	for _, iv := range r.intervals {
		area *= iv.length()
	}
	return area
}

// ContainsRect reports whether r fully contains other: low <= low and
// high >= high on every axis. Returns a *DimensionMismatchError if the
// dimensions differ.
func ContainsRect(r, other *Rectangle) (bool, error) {
	if err := checkDims(r, other); err != nil {
		return false, err
	}
	for i, iv := range r.intervals {
		o := other.intervals[i]
		if iv.Low > o.Low || iv.High < o.High {
			return false, nil
		}
	}
	return true, nil
}

// IntersectsRect reports whether r and other overlap, including the case
// where they merely touch along a border (closed rectangles).
func IntersectsRect(r, other *Rectangle) (bool, error) {
	if err := checkDims(r, other); err != nil {
		return false, err
	}
	for i, iv := range r.intervals {
		o := other.intervals[i]
		if iv.Low > o.High || iv.High < o.Low {
			return false, nil
		}
	}
	return true, nil
}

// ContainsPoint reports whether r contains p: low <= p <= high on every
// axis. Returns a *DimensionMismatchError if p's length differs from r's
// dimension.
func ContainsPoint(r *Rectangle, p []float64) (bool, error) {
	if len(p) != r.Dim() {
		return false, &DimensionMismatchError{Want: r.Dim(), Got: len(p)}
	}
	for i, iv := range r.intervals {
		if p[i] < iv.Low || p[i] > iv.High {
			return false, nil
		}
	}
	return true, nil
}

// Union returns a new Rectangle that is the axis-wise (min(low), max(high))
// of a and b. Returns a *DimensionMismatchError if the dimensions differ.
func Union(a, b *Rectangle) (Rectangle, error) {
	if err := checkDims(a, b); err != nil {
		return Rectangle{}, err
	}
	intervals := make([]Interval, a.Dim())
	for i, iv := range a.intervals {
		o := b.intervals[i]
		intervals[i] = Interval{
			Low:  math.Min(iv.Low, o.Low),
			High: math.Max(iv.High, o.High),
		}
	}
	return Rectangle{intervals: intervals}, nil
}

// UnionInPlace grows a to also cover b, axis-wise. Returns a
// *DimensionMismatchError (and leaves a untouched) if the dimensions
// differ.
func UnionInPlace(a *Rectangle, b *Rectangle) error {
	if err := checkDims(a, b); err != nil {
		return err
	}
	for i := range a.intervals {
		o := b.intervals[i]
		if o.Low < a.intervals[i].Low {
			a.intervals[i].Low = o.Low
		}
		if o.High > a.intervals[i].High {
			a.intervals[i].High = o.High
		}
	}
	return nil
}

// Center returns the midpoint of r on every axis.
func (r *Rectangle) Center() []float64 {
	p := make([]float64, r.Dim())
	for i, iv := range r.intervals {
		p[i] = iv.Low + (iv.High-iv.Low)/2
	}
	return p
}
