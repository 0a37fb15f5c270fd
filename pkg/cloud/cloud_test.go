package cloud

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layout"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// boxMeasurer measures every character as half the font size wide.
type boxMeasurer struct {
	fail string
}

func (m boxMeasurer) Measure(text string, size int) (geom.Size, error) {
	if text == m.fail {
		return geom.Size{}, fmt.Errorf("cannot measure %q", text)
	}
	return geom.Sz(max(1, len(text)*size/2), size), nil
}

func sampleTags() []tags.Tag {
	return []tags.Tag{
		{Text: "gopher", Frequency: 9, FontSize: 40},
		{Text: "cloud", Frequency: 4, FontSize: 30},
		{Text: "tag", Frequency: 2, FontSize: 20},
		{Text: "go", Frequency: 1, FontSize: 10},
	}
}

func TestArrange(t *testing.T) {
	center := geom.Pt(600, 450)
	l, err := Arrange(sampleTags(), layout.NewPacker(center), boxMeasurer{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Tags) != 4 {
		t.Fatalf("placed %d tags, want 4", len(l.Tags))
	}
	if l.Center != center {
		t.Errorf("Center = %v, want %v", l.Center, center)
	}
	if got := l.Tags[0].Rect; got != geom.RectAround(center, geom.Sz(120, 40)) {
		t.Errorf("first tag at %v, want centered", got)
	}
	for i, tg := range l.Tags {
		if tg.Text != sampleTags()[i].Text {
			t.Errorf("tag %d = %q, order not preserved", i, tg.Text)
		}
		for j := i + 1; j < len(l.Tags); j++ {
			if tg.Rect.Overlaps(l.Tags[j].Rect) {
				t.Errorf("%q overlaps %q", tg.Text, l.Tags[j].Text)
			}
		}
	}
	if l.Stats.Placed != 4 {
		t.Errorf("Stats.Placed = %d, want 4", l.Stats.Placed)
	}
}

func TestArrangeExhausted(t *testing.T) {
	in := []tags.Tag{
		{Text: "a", FontSize: 10},
		{Text: "b", FontSize: 10},
		{Text: "c", FontSize: 10},
	}
	p := layout.NewPacker(geom.Pt(0, 0), layout.WithAttemptBudget(1))

	l, err := Arrange(in, p, boxMeasurer{})
	if !tcerrors.Is(err, tcerrors.ErrCodePlacementExhausted) {
		t.Fatalf("err = %v, want PLACEMENT_EXHAUSTED", err)
	}
	if !errors.Is(err, layout.ErrPlacementExhausted) {
		t.Error("error should wrap layout.ErrPlacementExhausted")
	}
	if len(l.Tags) != 1 || l.Tags[0].Text != "a" {
		t.Errorf("partial layout = %+v, want only %q", l.Tags, "a")
	}
}

func TestArrangeMeasureError(t *testing.T) {
	l, err := Arrange(sampleTags(), layout.NewPacker(geom.Pt(0, 0)), boxMeasurer{fail: "tag"})
	if !tcerrors.Is(err, tcerrors.ErrCodeInvalidSize) {
		t.Fatalf("err = %v, want INVALID_SIZE", err)
	}
	if len(l.Tags) != 2 {
		t.Errorf("placed %d tags before the failure, want 2", len(l.Tags))
	}
}

func TestCanvas(t *testing.T) {
	tests := []struct {
		name string
		l    Layout
		want geom.Rect
	}{
		{
			name: "explicit",
			l:    Layout{Width: 1200, Height: 900},
			want: geom.Rect{X: 0, Y: 0, W: 1200, H: 900},
		},
		{
			name: "auto empty",
			l:    Layout{Center: geom.Pt(400, 300)},
			want: geom.Rect{X: 0, Y: 0, W: 800, H: 600},
		},
		{
			name: "auto small",
			l:    Layout{Tags: []tags.Tag{{Rect: geom.Rect{X: -50, Y: -10, W: 100, H: 20}}}},
			want: geom.Rect{X: -400, Y: -300, W: 800, H: 600},
		},
		{
			name: "auto large",
			l:    Layout{Tags: []tags.Tag{{Rect: geom.Rect{X: 0, Y: 0, W: 1000, H: 600}}}},
			want: geom.Rect{X: -100, Y: -100, W: 1200, H: 800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.Canvas(); got != tt.want {
				t.Errorf("Canvas() = %v, want %v", got, tt.want)
			}
			if err := tt.l.Fit(); tt.l.Width == 0 && err != nil {
				t.Errorf("auto canvas should always fit: %v", err)
			}
		})
	}
}

func TestFit(t *testing.T) {
	l := Layout{
		Width:  100,
		Height: 100,
		Tags:   []tags.Tag{{Text: "wide", Rect: geom.Rect{X: 50, Y: 10, W: 80, H: 20}}},
	}
	err := l.Fit()
	if !tcerrors.Is(err, tcerrors.ErrCodeBoundsExceeded) {
		t.Fatalf("err = %v, want BOUNDS_EXCEEDED", err)
	}
	if !errors.Is(err, layout.ErrBoundsExceeded) {
		t.Error("error should wrap layout.ErrBoundsExceeded")
	}
	if got := tcerrors.UserMessage(err); !strings.HasPrefix(got, "cloud needs a 130x100 canvas") {
		t.Errorf("UserMessage = %q", got)
	}

	l.Width = 200
	if err := l.Fit(); err != nil {
		t.Errorf("wider canvas should fit: %v", err)
	}
}

func TestLayoutJSON(t *testing.T) {
	l, err := Arrange(sampleTags(), layout.NewPacker(geom.Pt(0, 0)), boxMeasurer{})
	if err != nil {
		t.Fatal(err)
	}
	l.Background = tags.Indigo

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Background != tags.Indigo || back.Stats != l.Stats || len(back.Tags) != len(l.Tags) {
		t.Fatalf("round trip mismatch:\n%s", data)
	}
	for i := range l.Tags {
		if back.Tags[i] != l.Tags[i] {
			t.Errorf("tag %d = %+v, want %+v", i, back.Tags[i], l.Tags[i])
		}
	}
}
