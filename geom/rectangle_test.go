package geom

import (
	"math"
	"testing"
)

func rect(t *testing.T, bounds ...[2]float64) *Rectangle {
	t.Helper()
	r, err := NewRectangle(bounds...)
	if err != nil {
		t.Fatalf("NewRectangle(%v) failed: %v", bounds, err)
	}
	return r
}

func TestNewRectangleRejectsLowGreaterThanHigh(t *testing.T) {
	if _, err := NewRectangle([2]float64{5, 2}); err == nil {
		t.Error("expected an error for low > high")
	}
}

func TestArea(t *testing.T) {
	cases := []struct {
		bounds [][2]float64
		want   float64
	}{
		{[][2]float64{{0, 2}, {0, 2}}, 4},
		{[][2]float64{{0, 0}, {0, 5}}, 0}, // degenerate axis
		{[][2]float64{{-1, 1}, {-1, 1}, {-1, 1}}, 8},
	}
	for _, c := range cases {
		r := rect(t, c.bounds...)
		if got := r.Area(); got != c.want {
			t.Errorf("Area(%v) = %v, want %v", c.bounds, got, c.want)
		}
	}
}

func TestContainsRect(t *testing.T) {
	outer := rect(t, [2]float64{0, 10}, [2]float64{0, 10})
	inner := rect(t, [2]float64{2, 8}, [2]float64{2, 8})
	straddling := rect(t, [2]float64{5, 15}, [2]float64{5, 15})

	if ok, err := ContainsRect(outer, inner); err != nil || !ok {
		t.Errorf("ContainsRect(outer, inner) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := ContainsRect(outer, straddling); err != nil || ok {
		t.Errorf("ContainsRect(outer, straddling) = %v, %v; want false, nil", ok, err)
	}
	if ok, err := ContainsRect(inner, outer); err != nil || ok {
		t.Errorf("ContainsRect(inner, outer) = %v, %v; want false, nil", ok, err)
	}
}

func TestContainsRectDimensionMismatch(t *testing.T) {
	a := rect(t, [2]float64{0, 1}, [2]float64{0, 1})
	b := rect(t, [2]float64{0, 1})
	if _, err := ContainsRect(a, b); err == nil {
		t.Error("expected a DimensionMismatchError")
	} else if _, ok := err.(*DimensionMismatchError); !ok {
		t.Errorf("expected *DimensionMismatchError, got %T", err)
	}
}

func TestIntersectsRectTouchingBorders(t *testing.T) {
	a := rect(t, [2]float64{0, 2}, [2]float64{0, 2})
	b := rect(t, [2]float64{2, 4}, [2]float64{2, 4})
	ok, err := IntersectsRect(a, b)
	if err != nil || !ok {
		t.Errorf("touching rectangles should intersect, got %v, %v", ok, err)
	}
	// symmetry
	ok2, _ := IntersectsRect(b, a)
	if ok != ok2 {
		t.Error("IntersectsRect should be symmetric")
	}
}

func TestContainsPoint(t *testing.T) {
	r := rect(t, [2]float64{0, 2}, [2]float64{0, 2})
	cases := []struct {
		p    []float64
		want bool
	}{
		{[]float64{1, 1}, true},
		{[]float64{0, 0}, true},
		{[]float64{2, 2}, true},
		{[]float64{2.5, 2.5}, false},
		{[]float64{-1, 0}, false},
	}
	for _, c := range cases {
		got, err := ContainsPoint(r, c.p)
		if err != nil {
			t.Fatalf("ContainsPoint(%v) errored: %v", c.p, err)
		}
		if got != c.want {
			t.Errorf("ContainsPoint(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestUnionIsSymmetricAndContainsBoth(t *testing.T) {
	a := rect(t, [2]float64{0, 2}, [2]float64{0, 2})
	b := rect(t, [2]float64{1, 3}, [2]float64{-1, 1})
	u, err := Union(a, b)
	if err != nil {
		t.Fatalf("Union errored: %v", err)
	}
	if ok, _ := ContainsRect(&u, a); !ok {
		t.Error("union should contain a")
	}
	if ok, _ := ContainsRect(&u, b); !ok {
		t.Error("union should contain b")
	}
	if u.Area() < math.Max(a.Area(), b.Area()) {
		t.Error("union area should be >= max(area(a), area(b))")
	}
}

func TestUnionInPlace(t *testing.T) {
	a := rect(t, [2]float64{0, 1}, [2]float64{0, 1})
	b := rect(t, [2]float64{-1, 0.5}, [2]float64{2, 3})
	if err := UnionInPlace(a, b); err != nil {
		t.Fatalf("UnionInPlace errored: %v", err)
	}
	if a.Interval(0).Low != -1 || a.Interval(0).High != 1 {
		t.Errorf("axis 0 = %v, want [-1, 1]", a.Interval(0))
	}
	if a.Interval(1).Low != 0 || a.Interval(1).High != 3 {
		t.Errorf("axis 1 = %v, want [0, 3]", a.Interval(1))
	}
}

func TestInfiniteContainsAnyRectangle(t *testing.T) {
	inf := Infinite(2)
	r := rect(t, [2]float64{-1e200, 1e200}, [2]float64{-1e200, 1e200})
	ok, err := ContainsRect(&inf, r)
	if err != nil || !ok {
		t.Errorf("infinite rectangle should contain everything, got %v, %v", ok, err)
	}
}

func TestNewPointRectangleIsZeroAreaAndContainsOnlyItsPoint(t *testing.T) {
	p := NewPointRectangle([]float64{1, 2, 3})
	if p.Area() != 0 {
		t.Errorf("Area() = %v, want 0", p.Area())
	}
	for i, want := range []float64{1, 2, 3} {
		if iv := p.Interval(i); iv.Low != want || iv.High != want {
			t.Errorf("Interval(%d) = %v, want [%v, %v]", i, iv, want, want)
		}
	}
	ok, err := ContainsPoint(p, []float64{1, 2, 3})
	if err != nil || !ok {
		t.Errorf("ContainsPoint(p, its own point) = %v, %v; want true, nil", ok, err)
	}
	ok, err = ContainsPoint(p, []float64{1, 2, 3.1})
	if err != nil || ok {
		t.Errorf("ContainsPoint(p, a different point) = %v, %v; want false, nil", ok, err)
	}
}

func TestCenter(t *testing.T) {
	r := rect(t, [2]float64{0, 4}, [2]float64{-2, 2})
	c := r.Center()
	if c[0] != 2 || c[1] != 0 {
		t.Errorf("Center() = %v, want [2 0]", c)
	}
}
