package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/phanxgames/flipbook"
)

type simulateOptions struct {
	wheel      float64
	drag       float64
	dragFrames int
	start      float64
	scriptPath string
	tps        int
	maxFrames  int
	jsonOutput bool
	leaves     bool
}

type simulateReport struct {
	Ticks   int            `json:"ticks"`
	Settled bool           `json:"settled"`
	Frame   frameReport    `json:"frame"`
	Shots   []snapshotInfo `json:"snapshots,omitempty"`
}

type snapshotInfo struct {
	Label    string  `json:"label"`
	Tick     uint64  `json:"tick"`
	Smoothed float64 `json:"smoothed"`
}

func newSimulateCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run wheel and drag input headlessly and report where the book settles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.wheel, "wheel", 0, "Total wheel delta in scroll units, delivered one wheel unit per tick")
	cmd.Flags().Float64Var(&opts.drag, "drag", 0, "Horizontal drag distance in pixels")
	cmd.Flags().IntVar(&opts.dragFrames, "drag-frames", 10, "Ticks the drag is spread over")
	cmd.Flags().Float64Var(&opts.start, "start", 0, "Progress to start from")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "Replay a JSON input script")
	cmd.Flags().IntVar(&opts.tps, "tps", 60, "Simulated ticks per second")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 600, "Give up settling after this many ticks")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.leaves, "leaves", false, "Include every leaf of the final frame")

	return cmd
}

func runSimulate(cmd *cobra.Command, rootFlags *rootFlags, opts *simulateOptions) error {
	cfg, err := loadConfig("simulate", rootFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, "simulate", rootFlags, cfg)
	if err != nil {
		return err
	}

	book, err := flipbook.NewBook(cfg.Book)
	if err != nil {
		return newCommandError("simulate", "creating book", err, "Check the book section of your config.")
	}
	defer book.Dispose()
	book.SetLogger(log.Zerolog())
	book.SetDebugMode(rootFlags.debug || cfg.Log.Debug)
	book.Restore(opts.start)

	sim := flipbook.NewSimulator(book, opts.tps)
	if opts.scriptPath != "" {
		runner, err := loadScript(opts.scriptPath)
		if err != nil {
			return newCommandError("simulate", "loading script", err, "Check the script's JSON and action names.")
		}
		sim.SetScript(runner)
	}

	b := book.Bounds()
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2
	injectWheel(sim, cx, cy, opts.wheel, cfg.Book.WheelUnit)
	if opts.drag != 0 {
		sim.InjectDrag(cx, cy, cx+opts.drag, cy, opts.dragFrames)
	}

	ticks, settled := sim.Settle(opts.maxFrames)
	report := simulateReport{
		Ticks:   ticks,
		Settled: settled,
		Frame:   newFrameReport(book.Frame(), false),
	}
	if !opts.leaves {
		report.Frame.Leaves = nil
	}
	for _, s := range sim.Snapshots() {
		report.Shots = append(report.Shots, snapshotInfo{Label: s.Label, Tick: s.Tick, Smoothed: s.Frame.Smoothed})
	}

	if opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	return renderSimulateReport(cmd, report)
}

// injectWheel splits total into wheel events of at most unit each.
func injectWheel(sim *flipbook.Simulator, x, y, total, unit float64) {
	if total == 0 || unit <= 0 {
		return
	}
	sign := math.Copysign(1, total)
	remaining := math.Abs(total)
	for remaining > 0 {
		d := math.Min(unit, remaining)
		sim.InjectWheel(x, y, sign*d)
		remaining -= d
	}
}

func renderSimulateReport(cmd *cobra.Command, r simulateReport) error {
	out := cmd.OutOrStdout()
	status := "settled"
	if !r.Settled {
		status = "still moving"
	}
	fmt.Fprintf(out, "%s after %d ticks\n", headerStyle.Render(status), r.Ticks)
	for _, s := range r.Shots {
		fmt.Fprintf(out, "snapshot %q at tick %d: smoothed %.3f\n", s.Label, s.Tick, s.Smoothed)
	}
	return renderFrameTable(out, r.Frame)
}
