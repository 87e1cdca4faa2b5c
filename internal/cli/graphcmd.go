package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dxdlab/dxd/pkg/config"
	dxderrors "github.com/dxdlab/dxd/pkg/errors"
	"github.com/dxdlab/dxd/pkg/parse"
	"github.com/dxdlab/dxd/pkg/render"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   int
		detector string
		out      string
		maxNodes int
	)

	cmd := &cobra.Command{
		Use:   "graph <input-file>",
		Short: "Export the compiled DAG for a solve as DOT, SVG or PNG",
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
			resolvedDetector := detector
			if !cmd.Flags().Changed("detector") {
				resolvedDetector = cfg.DefaultDetector
			}

			prog := newProgress(logger)
			outcome, err := runSolve(cmd.Context(), solveRequest{
				InputPath:          args[0],
				Format:             parse.Format(format),
				Detector:           resolvedDetector,
				Threads:            1, // graph mode solves single-threaded for a stable DAG
				Decompose:          true,
				DecomposeThreshold: cfg.DecomposeThreshold,
				BuildDAG:           true,
				Cfg:                cfg,
			})
			if err != nil {
				return err
			}
			prog.done("dag compiled")

			if out == "" {
				out = "dag.dot"
			}
			dot := render.ToDOT(outcome.DAG, outcome.Node, render.Options{MaxNodes: maxNodes})

			var writeErr error
			switch ext := strings.ToLower(filepath.Ext(out)); ext {
			case ".dot", "":
				writeErr = os.WriteFile(out, []byte(dot), 0o644)
			case ".svg":
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				writeErr = os.WriteFile(out, svg, 0o644)
			case ".png":
				svg, err := render.RenderSVG(dot)
				if err != nil {
					return err
				}
				png, err := render.ToPNG(svg, 1.0)
				if err != nil {
					return err
				}
				writeErr = os.WriteFile(out, png, 0o644)
			default:
				return fmt.Errorf("unsupported graph output extension %q", ext)
			}
			if writeErr != nil {
				return writeErr
			}

			printSuccess("dag compiled")
			printStats(outcome.DAG.NumNodes(), outcome.PeakBlocks, false)
			printFile(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&format, "format", int(parse.Format1), "input format: 1, 2 or 3")
	cmd.Flags().StringVar(&detector, "detector", config.DetectorETT, "row-graph detector: ett or unionfind")
	cmd.Flags().StringVar(&out, "out", "", "output file: .dot, .svg or .png (default dag.dot)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 5000, "truncate the exported graph past this many nodes")

	return cmd
}
