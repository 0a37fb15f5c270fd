package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	tcerrors "github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/geom"
	"github.com/matzehuels/tagcloud/pkg/layout"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	centerX int
	centerY int
	budget  int
	radius  float64
}

// packOutput is what pack prints.
type packOutput struct {
	Center geom.Point   `json:"center"`
	Factor float64      `json:"radius_factor"`
	Rects  []geom.Rect  `json:"rects"`
	Bounds geom.Rect    `json:"bounds"`
	Stats  layout.Stats `json:"stats"`
	Error  string       `json:"error,omitempty"`
}

// packCommand creates the pack command, which runs the placement engine on
// raw rectangle sizes.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack [file]",
		Short: "Place raw rectangles and print their positions as JSON",
		Long: `Pack reads one "W H" pair per line from the file or stdin and places the
rectangles in input order. Blank lines and lines starting with # are skipped.

On failure the rectangles placed so far are still printed.`,
		Example: `  printf '120 40\n60 20\n60 20\n' | tagcloud pack --center-x 400 --center-y 300`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					if os.IsNotExist(err) {
						return tcerrors.Wrap(tcerrors.ErrCodeFileNotFound, err, "input %s", args[0])
					}
					return err
				}
				defer f.Close()
				in = f
			}
			return runPack(in, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.centerX, "center-x", 0, "spiral center x")
	cmd.Flags().IntVar(&opts.centerY, "center-y", 0, "spiral center y")
	cmd.Flags().IntVar(&opts.budget, "budget", 0, "spiral attempts per rectangle (default 10000)")
	cmd.Flags().Float64Var(&opts.radius, "radius-factor", 0, "spiral radius step factor (default 0.05)")

	return cmd
}

func runPack(r io.Reader, w io.Writer, opts packOpts) error {
	sizes, err := readSizes(r)
	if err != nil {
		return err
	}

	var popts []layout.Option
	if opts.budget > 0 {
		popts = append(popts, layout.WithAttemptBudget(opts.budget))
	}
	if opts.radius < 0 {
		return tcerrors.New(tcerrors.ErrCodeInvalidInput, "radius factor must be positive, got %g", opts.radius)
	}
	if opts.radius > 0 {
		popts = append(popts, layout.WithRadiusStepFactor(opts.radius))
	}
	p := layout.NewPacker(geom.Pt(opts.centerX, opts.centerY), popts...)

	var placeErr error
	for i, s := range sizes {
		if _, err := p.PlaceNext(s); err != nil {
			placeErr = fmt.Errorf("rectangle %d (%v): %w", i+1, s, err)
			break
		}
	}

	out := packOutput{
		Center: p.Center(),
		Factor: p.RadiusStepFactor(),
		Rects:  p.Placed(),
		Stats:  p.Stats(),
	}
	if out.Rects == nil {
		out.Rects = []geom.Rect{}
	}
	out.Bounds = layout.Bounds(out.Rects)
	if placeErr != nil {
		out.Error = placeErr.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	return placeErr
}

// readSizes parses "W H" lines.
func readSizes(r io.Reader) ([]geom.Size, error) {
	var sizes []geom.Size
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return nil, tcerrors.New(tcerrors.ErrCodeInvalidInput, "line %d: want \"W H\", got %q", line, s)
		}
		w, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, tcerrors.New(tcerrors.ErrCodeInvalidInput, "line %d: bad width %q", line, fields[0])
		}
		h, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, tcerrors.New(tcerrors.ErrCodeInvalidInput, "line %d: bad height %q", line, fields[1])
		}
		sizes = append(sizes, geom.Sz(w, h))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return sizes, nil
}
