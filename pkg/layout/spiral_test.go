package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

func TestSpiralStartsAtCenter(t *testing.T) {
	for _, scale := range []int{1, 5, 15, 1000} {
		s := NewSpiral(geom.Pt(100, -40), scale)
		if got := s.Point(0); got != geom.Pt(100, -40) {
			t.Errorf("scale %d: Point(0) = %v, want center", scale, got)
		}
	}
}

func TestSpiralRadiusMonotonic(t *testing.T) {
	s := NewSpiral(geom.Pt(0, 0), 10)
	prev := -1.0
	for n := range 5000 {
		r := s.Radius(n)
		if r < prev {
			t.Fatalf("Radius(%d) = %f < Radius(%d) = %f", n, r, n-1, prev)
		}
		prev = r
	}
}

func TestSpiralPointTruncates(t *testing.T) {
	s := NewSpiral(geom.Pt(0, 0), 10)
	for n := range 200 {
		angle := float64(n) * GoldenAngle
		radius := s.Radius(n)
		want := geom.Pt(int(radius*math.Cos(angle)), int(radius*math.Sin(angle)))
		if got := s.Point(n); got != want {
			t.Fatalf("Point(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestSpiralPointsIndependent(t *testing.T) {
	s := NewSpiral(geom.Pt(3, 4), 7)

	take := func(k int) []geom.Point {
		var out []geom.Point
		for p := range s.Points() {
			out = append(out, p)
			if len(out) == k {
				break
			}
		}
		return out
	}

	first := take(50)
	second := take(50)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sequence differs at %d: %v vs %v", i, first[i], second[i])
		}
		if first[i] != s.Point(i) {
			t.Fatalf("Points()[%d] = %v, Point(%d) = %v", i, first[i], i, s.Point(i))
		}
	}
}

func TestSpiralDefaultFactor(t *testing.T) {
	a := Spiral{Center: geom.Pt(0, 0), Scale: 12}
	b := NewSpiral(geom.Pt(0, 0), 12)
	for n := range 100 {
		if a.Point(n) != b.Point(n) {
			t.Fatalf("zero factor should behave like the default at step %d", n)
		}
	}
}

func TestSpiralCursor(t *testing.T) {
	s := NewSpiral(geom.Pt(10, 10), 5)
	c := NewSpiralCursor(s)
	if c.Step() != 0 {
		t.Fatalf("new cursor at step %d", c.Step())
	}
	for n := range 20 {
		if got, want := c.Next(), s.Point(n); got != want {
			t.Fatalf("Next() #%d = %v, want %v", n, got, want)
		}
	}
	if c.Step() != 20 {
		t.Errorf("Step() = %d, want 20", c.Step())
	}
	if c.Scale() != 5 {
		t.Errorf("Scale() = %d, want 5", c.Scale())
	}

	saved := c
	c.Next()
	if saved.Step() != 20 {
		t.Error("copied cursor advanced with the original")
	}
}
