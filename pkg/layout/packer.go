package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

// DefaultAttemptBudget is the maximum number of spiral points tried for a
// single placement.
const DefaultAttemptBudget = 10_000

// compactionDivisor sets the initial compaction step to a tenth of the
// rectangle's smaller side.
const compactionDivisor = 10

// Sentinel errors returned by [Packer.PlaceNext].
var (
	// ErrInvalidSize is returned for a size with a non-positive dimension.
	ErrInvalidSize = errors.New("invalid rectangle size")

	// ErrPlacementExhausted is returned when no collision-free position was
	// found within the attempt budget.
	ErrPlacementExhausted = errors.New("placement exhausted")
)

// Option configures a Packer.
type Option func(*Packer)

// WithAttemptBudget sets the number of spiral points tried per placement.
// Values below 1 are ignored.
func WithAttemptBudget(n int) Option {
	return func(p *Packer) {
		if n > 0 {
			p.budget = n
		}
	}
}

// WithRadiusStepFactor sets the spiral's radial growth factor.
// Values that are not positive are ignored.
func WithRadiusStepFactor(f float64) Option {
	return func(p *Packer) {
		if f > 0 {
			p.factor = f
		}
	}
}

// Stats counts the work done by a Packer's successful placements.
type Stats struct {
	Placed   int `json:"placed"`   // successful placements
	Attempts int `json:"attempts"` // spiral points drawn
	Rescales int `json:"rescales"` // times the spiral was rebuilt at a finer scale
	Moves    int `json:"moves"`    // accepted compaction moves
}

// Packer places rectangles around a fixed center without overlap.
// It is not safe for concurrent use.
type Packer struct {
	center geom.Point
	budget int
	factor float64

	placed []geom.Rect
	cursor SpiralCursor
	stats  Stats
}

// NewPacker returns a packer centered on center.
func NewPacker(center geom.Point, opts ...Option) *Packer {
	p := &Packer{
		center: center,
		budget: DefaultAttemptBudget,
		factor: DefaultRadiusStepFactor,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cursor = NewSpiralCursor(p.spiral(math.MaxInt))
	return p
}

// PlaceNext finds a position for a rectangle of the given size, records it,
// and returns it.
//
// The returned rectangle overlaps no rectangle returned earlier. On error
// nothing about the packer changes, including the spiral position: retrying
// the same size after ErrPlacementExhausted repeats the same search and
// fails again. Callers that want to keep going should pass a smaller size or
// build the packer with a larger attempt budget.
func (p *Packer) PlaceNext(size geom.Size) (geom.Rect, error) {
	if !size.Valid() {
		return geom.Rect{}, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	saved := p.cursor
	if d := size.Min(); d < p.cursor.Scale() {
		p.cursor = NewSpiralCursor(p.spiral(d))
	}

	r, attempts, ok := p.search(size)
	if !ok {
		p.cursor = saved
		return geom.Rect{}, fmt.Errorf("%w: no free position for %v within %d attempts",
			ErrPlacementExhausted, size, p.budget)
	}
	if p.cursor.Scale() != saved.Scale() {
		p.stats.Rescales++
	}

	r, moves := p.compact(r)
	p.placed = append(p.placed, r)
	p.stats.Placed++
	p.stats.Attempts += attempts
	p.stats.Moves += moves
	return r, nil
}

// search draws spiral points until a rectangle centered on one of them is
// free, or the budget runs out.
func (p *Packer) search(size geom.Size) (geom.Rect, int, bool) {
	for i := range p.budget {
		candidate := geom.RectAround(p.cursor.Next(), size)
		if !p.collides(candidate) {
			return candidate, i + 1, true
		}
	}
	return geom.Rect{}, p.budget, false
}

// compact slides r toward the center while it stays collision-free and
// reports how many moves it made.
func (p *Packer) compact(r geom.Rect) (geom.Rect, int) {
	step := max(1, r.Size().Min()/compactionDivisor)
	moves := 0
	for {
		d := p.center.Sub(r.Center())
		if d.X == 0 && d.Y == 0 {
			return r, moves
		}
		dx := geom.Sign(d.X) * min(step, geom.Abs(d.X))
		dy := geom.Sign(d.Y) * min(step, geom.Abs(d.Y))

		if moved, ok := p.tryMove(r, dx, dy); ok {
			r = moved
			moves++
			continue
		}
		if dx != 0 && dy != 0 {
			if moved, ok := p.tryMove(r, dx, 0); ok {
				r = moved
				moves++
				continue
			}
			if moved, ok := p.tryMove(r, 0, dy); ok {
				r = moved
				moves++
				continue
			}
		}

		if step == 1 {
			return r, moves
		}
		step = max(1, step/2)
	}
}

func (p *Packer) tryMove(r geom.Rect, dx, dy int) (geom.Rect, bool) {
	moved := r.Translate(dx, dy)
	if p.collides(moved) {
		return r, false
	}
	return moved, true
}

func (p *Packer) collides(r geom.Rect) bool {
	for _, placed := range p.placed {
		if r.Overlaps(placed) {
			return true
		}
	}
	return false
}

func (p *Packer) spiral(scale int) Spiral {
	return Spiral{Center: p.center, Scale: scale, RadiusStepFactor: p.factor}
}

// Center returns the fixed center the packer was built with.
func (p *Packer) Center() geom.Point { return p.center }

// Len returns the number of placed rectangles.
func (p *Packer) Len() int { return len(p.placed) }

// Placed returns a copy of the placed rectangles in placement order.
func (p *Packer) Placed() []geom.Rect {
	out := make([]geom.Rect, len(p.placed))
	copy(out, p.placed)
	return out
}

// Scale returns the current spiral scale, or false before the first
// successful placement.
func (p *Packer) Scale() (int, bool) {
	s := p.cursor.Scale()
	return s, s != math.MaxInt
}

// Step returns the current position of the spiral cursor.
func (p *Packer) Step() int { return p.cursor.Step() }

// RadiusStepFactor returns the radial growth factor of the packer's spiral.
func (p *Packer) RadiusStepFactor() float64 { return p.cursor.Spiral().RadiusStepFactor }

// AttemptBudget returns the per-placement attempt budget.
func (p *Packer) AttemptBudget() int { return p.budget }

// Stats returns a snapshot of the packer's counters.
func (p *Packer) Stats() Stats { return p.stats }
