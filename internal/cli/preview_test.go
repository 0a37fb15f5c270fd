package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

func previewLayout() cloud.Layout {
	return cloud.Layout{
		Center: geom.Pt(50, 50),
		Width:  100,
		Height: 100,
		Tags: []tags.Tag{
			{Text: "big", Frequency: 3, FontSize: 23, Rect: geom.Rect{X: 20, Y: 40, W: 60, H: 20}},
			{Text: "sm", Frequency: 1, FontSize: 21, Rect: geom.Rect{X: 0, Y: 0, W: 10, H: 10}},
		},
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewModelNavigation(t *testing.T) {
	var m tea.Model = newPreviewModel(previewLayout(), nil)
	step := func() int { return m.(previewModel).step }

	if step() != 1 {
		t.Fatalf("initial step = %d, want 1", step())
	}
	m, _ = m.Update(key("l"))
	if step() != 2 {
		t.Errorf("after l: step = %d, want 2", step())
	}
	m, _ = m.Update(key("l"))
	if step() != 2 {
		t.Errorf("step should stop at the last tag, got %d", step())
	}
	m, _ = m.Update(key("g"))
	if step() != 1 {
		t.Errorf("after g: step = %d, want 1", step())
	}
	m, _ = m.Update(key("h"))
	if step() != 1 {
		t.Errorf("step should not go below 1, got %d", step())
	}
	m, _ = m.Update(key("G"))
	if step() != 2 {
		t.Errorf("after G: step = %d, want 2", step())
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewModelResize(t *testing.T) {
	var m tea.Model = newPreviewModel(previewLayout(), nil)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 10, Height: 5})
	pm := m.(previewModel)
	if pm.cols != previewMinCols || pm.rows != previewMinRows {
		t.Errorf("grid = %dx%d, want minimum %dx%d", pm.cols, pm.rows, previewMinCols, previewMinRows)
	}
}

func TestPreviewView(t *testing.T) {
	m := newPreviewModel(previewLayout(), errors.New("out of room"))
	view := m.View()
	for _, want := range []string{"Tag Cloud Preview", "[1/2]", "big"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "out of room") {
		t.Error("error shown before the last step")
	}

	m.step = 2
	if !strings.Contains(m.View(), "out of room") {
		t.Error("error should be shown on the last step")
	}
}

func TestDrawGrid(t *testing.T) {
	l := previewLayout()
	grid := drawGrid(l, 2, 10, 10)

	if len(grid) != 10 || len(grid[0]) != 10 {
		t.Fatalf("grid is %dx%d", len(grid[0]), len(grid))
	}

	// "big" covers cells 2-7 by 4-5 and writes its word on row 4.
	row := string(runesOf(grid[4]))
	if !strings.Contains(row, "big") {
		t.Errorf("row 4 = %q, want the word", row)
	}
	if grid[5][2].owner != 0 || grid[5][2].r != '·' {
		t.Errorf("cell (2,5) = %+v, want filler of tag 0", grid[5][2])
	}
	if grid[0][0].owner != 1 {
		t.Errorf("cell (0,0) owner = %d, want tag 1", grid[0][0].owner)
	}
	if grid[9][9].owner != -1 {
		t.Errorf("cell (9,9) should be empty")
	}

	hidden := drawGrid(l, 1, 10, 10)
	if hidden[0][0].owner != -1 {
		t.Error("tag beyond the visible count was drawn")
	}
}

func TestDrawGridTruncatesWords(t *testing.T) {
	l := cloud.Layout{Width: 100, Height: 100, Tags: []tags.Tag{
		{Text: "extraordinary", Rect: geom.Rect{X: 0, Y: 0, W: 30, H: 10}},
	}}
	grid := drawGrid(l, 1, 10, 10)
	if got := string(runesOf(grid[0][:3])); got != "ext" {
		t.Errorf("row 0 = %q, want truncated word", got)
	}
}

func TestCellSpan(t *testing.T) {
	view := geom.Rect{W: 100, H: 100}
	tests := []struct {
		r              geom.Rect
		x0, y0, x1, y1 int
	}{
		{geom.Rect{X: 0, Y: 0, W: 100, H: 100}, 0, 0, 10, 10},
		{geom.Rect{X: 25, Y: 25, W: 10, H: 10}, 2, 2, 4, 4},
		{geom.Rect{X: 50, Y: 50, W: 1, H: 1}, 5, 5, 6, 6},
		{geom.Rect{X: 99, Y: 99, W: 1, H: 1}, 9, 9, 10, 10},
	}
	for _, tt := range tests {
		x0, y0, x1, y1 := cellSpan(tt.r, view, 10, 10)
		if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
			t.Errorf("cellSpan(%v) = %d,%d,%d,%d, want %d,%d,%d,%d",
				tt.r, x0, y0, x1, y1, tt.x0, tt.y0, tt.x1, tt.y1)
		}
	}
}

func runesOf(cells []cell) []rune {
	out := make([]rune, len(cells))
	for i, c := range cells {
		out[i] = c.r
	}
	return out
}
