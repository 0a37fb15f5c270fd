package layout

import (
	"iter"
	"math"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// GoldenAngle is the angular increment between successive spiral steps,
// π(3 − √5) radians.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// DefaultRadiusStepFactor controls how quickly the spiral radius grows per
// revolution, relative to the spiral scale.
const DefaultRadiusStepFactor = 0.05

// Spiral is a deterministic phyllotactic spiral of integer points.
//
// The point at step n lies at angle n·GoldenAngle and radius
// Scale·RadiusStepFactor·angle/2π from Center, with both coordinates
// truncated toward zero. The radius never decreases with n.
type Spiral struct {
	Center           geom.Point
	Scale            int
	RadiusStepFactor float64
}

// NewSpiral returns a spiral with the default radius step factor.
func NewSpiral(center geom.Point, scale int) Spiral {
	return Spiral{Center: center, Scale: scale, RadiusStepFactor: DefaultRadiusStepFactor}
}

// Point returns the spiral point at step n.
func (s Spiral) Point(n int) geom.Point {
	angle := float64(n) * GoldenAngle
	radius := float64(s.Scale) * s.factor() * (angle / (2 * math.Pi))
	return geom.Point{
		X: s.Center.X + int(radius*math.Cos(angle)),
		Y: s.Center.Y + int(radius*math.Sin(angle)),
	}
}

// Radius returns the unrounded radius at step n.
func (s Spiral) Radius(n int) float64 {
	return float64(s.Scale) * s.factor() * (float64(n) * GoldenAngle / (2 * math.Pi))
}

// Points returns the infinite sequence of spiral points starting at step 0.
// Every call starts a fresh, independent sequence.
func (s Spiral) Points() iter.Seq[geom.Point] {
	return func(yield func(geom.Point) bool) {
		for n := 0; ; n++ {
			if !yield(s.Point(n)) {
				return
			}
		}
	}
}

func (s Spiral) factor() float64 {
	if s.RadiusStepFactor <= 0 {
		return DefaultRadiusStepFactor
	}
	return s.RadiusStepFactor
}

// SpiralCursor is a resumable position in a spiral.
// The zero value is not usable; create cursors with NewSpiralCursor.
type SpiralCursor struct {
	spiral Spiral
	step   int
}

// NewSpiralCursor returns a cursor at step 0 of s.
func NewSpiralCursor(s Spiral) SpiralCursor {
	return SpiralCursor{spiral: s}
}

// Next returns the point at the current step and advances the cursor.
func (c *SpiralCursor) Next() geom.Point {
	p := c.spiral.Point(c.step)
	c.step++
	return p
}

// Step returns the index of the next point Next will return.
func (c SpiralCursor) Step() int { return c.step }

// Scale returns the scale of the underlying spiral.
func (c SpiralCursor) Scale() int { return c.spiral.Scale }

// Spiral returns the underlying spiral.
func (c SpiralCursor) Spiral() Spiral { return c.spiral }
