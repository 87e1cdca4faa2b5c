package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dxdlab/dxd/pkg/config"
	dxderrors "github.com/dxdlab/dxd/pkg/errors"
	"github.com/dxdlab/dxd/pkg/parse"
)

func (c *CLI) solveCommand() *cobra.Command {
	var (
		format    int
		detector  string
		threads   int
		timeout   time.Duration
		decompose bool
		out       string
		tui       bool
	)

	cmd := &cobra.Command{
		Use:   "solve <input-file>",
		Short: "Count the exact covers of a sparse 0/1 matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := dxderrors.ValidateFormat(format); err != nil {
				return err
			}
			if err := dxderrors.ValidateDetector(detector); err != nil {
				return err
			}

			resolvedThreads := threads
			if !cmd.Flags().Changed("threads") {
				resolvedThreads = defaultThreads(cfg)
			} else if err := dxderrors.ValidateThreads(resolvedThreads); err != nil {
				return err
			}
			resolvedDetector := detector
			if !cmd.Flags().Changed("detector") {
				resolvedDetector = cfg.DefaultDetector
			}

			req := solveRequest{
				InputPath:          args[0],
				Format:             parse.Format(format),
				Detector:           resolvedDetector,
				Threads:            resolvedThreads,
				TimeBudget:         timeout,
				Decompose:          decompose,
				DecomposeThreshold: cfg.DecomposeThreshold,
				BuildDAG:           true,
				Cfg:                cfg,
			}

			var outcome *solveOutcome
			if tui {
				outcome, err = runSolveWithTUI(cmd.Context(), req)
			} else {
				logger.Info("loading matrix", "file", args[0], "format", format)
				prog := newProgress(logger)
				outcome, err = runSolve(cmd.Context(), req)
				if err == nil {
					prog.done("solve complete")
				}
			}
			if err != nil {
				return err
			}

			logger.Info("solve finished",
				"rows", outcome.Rows, "cols", outcome.Cols,
				"count", outcome.Count.String(), "elapsed", outcome.Elapsed,
				"peak_blocks", outcome.PeakBlocks, "timed_out", outcome.TimedOut,
				"dag_nodes", outcome.DAG.NumNodes())

			if outcome.TimedOut {
				printWarning("time budget exceeded before the search finished")
			} else {
				printSuccess("solve complete")
			}
			printKeyValue("count", outcome.Count.String())
			printStats(outcome.DAG.NumNodes(), outcome.PeakBlocks, false)

			report := formatRunReport(outcome)
			if out == "" {
				out = "run_results.txt"
			}
			if err := os.WriteFile(out, []byte(report), 0o644); err != nil {
				return err
			}
			printFile(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&format, "format", int(parse.Format1), "input format: 1, 2 or 3")
	cmd.Flags().StringVar(&detector, "detector", config.DetectorETT, "row-graph detector: ett or unionfind")
	cmd.Flags().IntVar(&threads, "threads", 0, "worker goroutines, at least 1 (default: config default_threads, else GOMAXPROCS)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "time budget (0 = use config default)")
	cmd.Flags().BoolVar(&decompose, "decompose", true, "enable dynamic row-graph decomposition")
	cmd.Flags().StringVar(&out, "out", "", "output file for the run report (default run_results.txt)")
	cmd.Flags().BoolVar(&tui, "tui", false, "show a live progress display instead of plain log lines")

	return cmd
}

func formatRunReport(o *solveOutcome) string {
	status := "complete"
	if o.TimedOut {
		status = "timed out"
	}
	return fmt.Sprintf(
		"dxd run report\nstatus: %s\nrows: %d\ncols: %d\ncount: %s\nelapsed: %s\npeak_blocks: %d\ndag_nodes: %d\n",
		status, o.Rows, o.Cols, o.Count.String(), o.Elapsed, o.PeakBlocks, o.DAG.NumNodes(),
	)
}
