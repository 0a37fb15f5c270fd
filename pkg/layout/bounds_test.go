package layout

import (
	"errors"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/geom"
)

func TestBounds(t *testing.T) {
	tests := []struct {
		name  string
		rects []geom.Rect
		want  geom.Rect
	}{
		{"empty", nil, geom.Rect{}},
		{"single", []geom.Rect{{X: 3, Y: 4, W: 5, H: 6}}, geom.Rect{X: 3, Y: 4, W: 5, H: 6}},
		{
			"spread",
			[]geom.Rect{{X: -5, Y: -5, W: 10, H: 10}, {X: -5, Y: 5, W: 10, H: 10}, {X: 5, Y: -5, W: 10, H: 10}},
			geom.Rect{X: -5, Y: -5, W: 20, H: 20},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bounds(tt.rects); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckFits(t *testing.T) {
	canvas := geom.Rect{X: 0, Y: 0, W: 100, H: 100}

	if err := CheckFits(nil, canvas); err != nil {
		t.Errorf("empty layout: %v", err)
	}
	if err := CheckFits([]geom.Rect{{X: 0, Y: 0, W: 100, H: 100}}, canvas); err != nil {
		t.Errorf("exact fit: %v", err)
	}

	err := CheckFits([]geom.Rect{{X: 10, Y: 10, W: 20, H: 20}, {X: 90, Y: -10, W: 30, H: 15}}, canvas)
	if !errors.Is(err, ErrBoundsExceeded) {
		t.Fatalf("error = %v, want ErrBoundsExceeded", err)
	}
	var be *BoundsError
	if !errors.As(err, &be) {
		t.Fatalf("error %T is not a *BoundsError", err)
	}
	if want := (geom.Rect{X: 10, Y: -10, W: 110, H: 40}); be.Extent != want {
		t.Errorf("Extent = %v, want %v", be.Extent, want)
	}
	if want := geom.Sz(120, 110); be.Required() != want {
		t.Errorf("Required() = %v, want %v", be.Required(), want)
	}
}
