package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/phanxgames/flipbook"
)

type inspectOptions struct {
	progress   float64
	drawOrder  bool
	jsonOutput bool
}

// leafRow is one leaf in inspect and simulate output.
type leafRow struct {
	Leaf       string  `json:"leaf"`
	Rotation   float64 `json:"rotation"`
	ZIndex     int     `json:"zIndex"`
	Brightness float64 `json:"brightness"`
	Fold       string  `json:"fold"`
}

type frameReport struct {
	Progress float64   `json:"progress"`
	Smoothed float64   `json:"smoothed"`
	Settled  bool      `json:"settled"`
	TiltX    float64   `json:"tiltX"`
	TiltZ    float64   `json:"tiltZ"`
	Leaves   []leafRow `json:"leaves"`
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func newInspectCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print every leaf's transform at a given progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.progress, "progress", "p", 0, "Smoothed progress to derive the frame from")
	cmd.Flags().BoolVar(&opts.drawOrder, "draw-order", false, "List leaves back to front instead of spine order")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runInspect(cmd *cobra.Command, rootFlags *rootFlags, opts *inspectOptions) error {
	cfg, err := loadConfig("inspect", rootFlags)
	if err != nil {
		return err
	}
	if err := cfg.Book.Validate(); err != nil {
		return newCommandError("inspect", "validating book", err, "Check the book section of your config.")
	}

	store := flipbook.NewProgressStore(cfg.Book.TotalSteps())
	store.Set(opts.progress)
	p := store.Get()
	frame := flipbook.ComputeFrame(cfg.Book, p, p, true, nil)

	report := newFrameReport(&frame, opts.drawOrder)
	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return renderFrameTable(cmd.OutOrStdout(), report)
}

func newFrameReport(f *flipbook.Frame, drawOrder bool) frameReport {
	var leaves []flipbook.LeafTransform
	if drawOrder {
		leaves = f.DrawOrder(nil)
	} else {
		leaves = append(leaves, f.Front)
		leaves = append(leaves, f.Pages...)
		leaves = append(leaves, f.Back)
	}
	rows := make([]leafRow, 0, len(leaves))
	for _, l := range leaves {
		rows = append(rows, leafRow{
			Leaf:       leafName(l),
			Rotation:   l.Rotation,
			ZIndex:     l.ZIndex,
			Brightness: l.Brightness,
			Fold:       l.Fold.String(),
		})
	}
	return frameReport{
		Progress: f.Progress,
		Smoothed: f.Smoothed,
		Settled:  f.Settled,
		TiltX:    f.TiltX,
		TiltZ:    f.TiltZ,
		Leaves:   rows,
	}
}

func leafName(l flipbook.LeafTransform) string {
	if l.Kind == flipbook.LeafPage {
		return fmt.Sprintf("page %d", l.Index)
	}
	return l.Kind.String() + " cover"
}

func renderFrameTable(out io.Writer, r frameReport) error {
	fmt.Fprintf(out, "%s %.3f  %s %.3f  %s %v\n",
		headerStyle.Render("progress"), r.Progress,
		headerStyle.Render("smoothed"), r.Smoothed,
		headerStyle.Render("settled"), r.Settled)
	fmt.Fprintf(out, "%s x=%.2f z=%.2f\n", headerStyle.Render("tilt"), r.TiltX, r.TiltZ)
	if len(r.Leaves) == 0 {
		return nil
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEAF\tROTATION\tZ\tBRIGHTNESS\tFOLD")
	for _, row := range r.Leaves {
		fmt.Fprintf(tw, "%s\t%.1f\t%d\t%.2f\t%s\n", row.Leaf, row.Rotation, row.ZIndex, row.Brightness, row.Fold)
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
