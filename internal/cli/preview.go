package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/tags"
)

// Preview grid limits.
const (
	previewMinCols = 20
	previewMinRows = 8
	previewChrome  = 7 // lines used by title, help and status
)

var (
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	previewEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Step through the placements of a tag cloud in the terminal",
		Long: `Preview lays out the input like generate does and shows the tags on a
character grid, one placement at a time.

Keys: → / l / space next, ← / h previous, g first, G all, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), c.config.Generate.flagValues()); err != nil {
				return err
			}
			return c.runPreview(cmd, &opts)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()

	popts, err := opts.pipelineOptions(cmd)
	if err != nil {
		return err
	}
	words, err := pipeline.Words(popts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	l, placeErr := runner.Arrange(ctx, words, popts)
	if placeErr != nil && len(l.Tags) == 0 {
		return placeErr
	}

	final, err := tea.NewProgram(newPreviewModel(l, placeErr), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(previewModel); ok && m.err != nil {
		printWarning("%s", tcerrors.UserMessage(m.err))
	}
	return nil
}

// =============================================================================
// previewModel - Step-through placement viewer
// =============================================================================

// previewModel is the bubbletea model for the placement preview.
type previewModel struct {
	layout cloud.Layout
	err    error // placement error after the last tag, if any
	step   int   // number of tags shown
	cols   int
	rows   int
}

func newPreviewModel(l cloud.Layout, err error) previewModel {
	return previewModel{
		layout: l,
		err:    err,
		step:   min(1, len(l.Tags)),
		cols:   80,
		rows:   24 - previewChrome,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", " ", "n":
			if m.step < len(m.layout.Tags) {
				m.step++
			}
		case "left", "h", "p":
			if m.step > 1 {
				m.step--
			}
		case "home", "g":
			m.step = min(1, len(m.layout.Tags))
		case "end", "G":
			m.step = len(m.layout.Tags)
		}
	case tea.WindowSizeMsg:
		m.cols = max(previewMinCols, msg.Width-2)
		m.rows = max(previewMinRows, msg.Height-previewChrome)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Tag Cloud Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("→ next  ← previous  g first  G all  q quit"))
	b.WriteString("\n")

	grid := drawGrid(m.layout, m.step, m.cols, m.rows)
	b.WriteString(previewFrameStyle.Render(m.renderGrid(grid)))
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

// status describes the most recently shown tag.
func (m previewModel) status() string {
	total := len(m.layout.Tags)
	if m.step == 0 {
		return StyleDim.Render("no tags placed")
	}
	t := m.layout.Tags[m.step-1]
	line := fmt.Sprintf("[%d/%d] %s  %s",
		m.step, total,
		StyleHighlight.Render(t.Text),
		StyleDim.Render(fmt.Sprintf("freq %d · size %d · %v", t.Frequency, t.FontSize, t.Rect)))
	if m.step == total && m.err != nil {
		line += "\n" + StyleWarning.Render(tcerrors.UserMessage(m.err))
	}
	return line
}

func (m previewModel) renderGrid(grid [][]cell) string {
	lines := make([]string, len(grid))
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			switch {
			case c.owner < 0:
				b.WriteString(previewEmptyStyle.Render(string(c.r)))
			case c.owner == m.step-1:
				b.WriteString(StyleHighlight.Bold(true).Render(string(c.r)))
			default:
				b.WriteString(tagStyle(m.layout.Tags[c.owner]).Render(string(c.r)))
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func tagStyle(t tags.Tag) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", t.Color.R, t.Color.G, t.Color.B)))
}

// =============================================================================
// Grid
// =============================================================================

// cell is one character of the preview grid. owner is the index of the tag
// covering it, or -1.
type cell struct {
	r     rune
	owner int
}

// drawGrid scales the first visible tags of l onto a cols×rows character
// grid covering the canvas and the tags. Each tag fills its cells with dots
// and writes as much of its word as fits on its middle row.
func drawGrid(l cloud.Layout, visible, cols, rows int) [][]cell {
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' ', owner: -1}
		}
	}

	view := l.Canvas().Union(l.Bounds())
	if view.Empty() {
		return grid
	}

	for i, t := range l.Tags[:min(visible, len(l.Tags))] {
		x0, y0, x1, y1 := cellSpan(t.Rect, view, cols, rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = cell{r: '·', owner: i}
			}
		}

		word := []rune(t.Text)
		if n := x1 - x0; len(word) > n {
			word = word[:n]
		}
		mid := (y0 + y1 - 1) / 2
		start := x0 + (x1-x0-len(word))/2
		for k, r := range word {
			grid[mid][start+k] = cell{r: r, owner: i}
		}
	}
	return grid
}

// cellSpan returns the half-open cell range covered by r. Every rectangle
// covers at least one cell.
func cellSpan(r, view geom.Rect, cols, rows int) (x0, y0, x1, y1 int) {
	x0 = clamp((r.X-view.X)*cols/view.W, 0, cols-1)
	y0 = clamp((r.Y-view.Y)*rows/view.H, 0, rows-1)
	x1 = clamp(ceilDiv((r.Right()-view.X)*cols, view.W), x0+1, cols)
	y1 = clamp(ceilDiv((r.Bottom()-view.Y)*rows, view.H), y0+1, rows)
	return x0, y0, x1, y1
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
