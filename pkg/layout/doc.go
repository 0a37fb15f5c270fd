// Package layout places rectangles around a center point for tag clouds.
//
// # Overview
//
// The [Packer] is the placement engine. Callers feed it one [geom.Size] at a
// time, in the order the rectangles should claim space (typically the most
// important word first), and it returns a [geom.Rect] that overlaps nothing
// placed before:
//
//	p := layout.NewPacker(geom.Pt(600, 450))
//	for _, s := range sizes {
//	    r, err := p.PlaceNext(s)
//	    if err != nil {
//	        return err
//	    }
//	    draw(r)
//	}
//
// # Algorithm
//
// Candidate centers come from a golden-angle [Spiral] anchored at the packer's
// center. Step 0 of the spiral is the center itself, so the first rectangle is
// always centered exactly. The spiral's radial growth is proportional to the
// smallest rectangle dimension requested so far; when a smaller rectangle
// arrives the spiral is rebuilt at the finer scale and restarted from step 0.
// Rectangles already placed are never moved.
//
// For each request the packer draws spiral points until the rectangle
// centered on one of them overlaps nothing. The search is bounded by an
// attempt budget ([DefaultAttemptBudget], see [WithAttemptBudget]).
//
// The accepted rectangle is then compacted: it slides toward the center,
// first diagonally, then along X, then along Y, with a step that starts at a
// tenth of its smaller side and halves whenever no move is possible. Each move
// is clamped to the remaining distance so the rectangle never overshoots the
// center. This is a local hill climb and may stop short of the best position.
//
// # Errors
//
// [Packer.PlaceNext] fails with [ErrInvalidSize] for non-positive dimensions and with
// [ErrPlacementExhausted] when the attempt budget runs out. A failed call
// leaves the packer exactly as it was.
//
// # Concurrency
//
// A Packer is not safe for concurrent use, and results depend on the full
// history of calls. Build one Packer per cloud; independent clouds can be
// laid out in parallel with their own packers.
//
// # Bounds
//
// The packer guarantees only non-overlap. [Bounds] and [CheckFits] let callers
// compare the placed extent with a target canvas.
package layout
