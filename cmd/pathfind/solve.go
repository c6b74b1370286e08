package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/grid"
	"github.com/pdrpinto/pathfinder/internal/config"
)

type solveOutput struct {
	Found         bool         `json:"found"`
	Cost          float64      `json:"cost"`
	ExpandedNodes int          `json:"expanded"`
	Discovered    int          `json:"discovered"`
	Path          []grid.Point `json:"path,omitempty"`
}

func newSolveCommand(flags *rootFlags) *cobra.Command {
	var f config.Config
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search a map from start to goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			overlayFlags(cmd, &cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cfg.Map == "" {
				return fmt.Errorf("no map given (--map or map in config)")
			}

			g, err := cfg.LoadGrid()
			if err != nil {
				return err
			}
			start, goal, err := cfg.Endpoints(g)
			if err != nil {
				return err
			}
			options, err := cfg.Options(pathfinder.WithLogger(logger))
			if err != nil {
				return err
			}

			logger.Info("searching", "map", cfg.Map, "start", start, "goal", goal,
				"width", g.Width, "height", g.Height)
			result, err := pathfinder.FindPath[grid.Point](cmd.Context(), g, start, goal, options...)
			if err != nil {
				return err
			}

			if cfg.Output.Render != "" {
				if err := renderFile(cfg.Output.Render, g, result, cfg.Output.Scale); err != nil {
					return err
				}
				logger.Info("rendered", "file", cfg.Output.Render)
			}
			if err := report(cmd.OutOrStdout(), cfg.Output.Format, g, result); err != nil {
				return err
			}
			if !result.Found {
				return errNoPath
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.Map, "map", "m", "", "text map (.txt, .map) or image file")
	fs.IntVar(&f.Threshold, "threshold", grid.DefaultThreshold, "image luminance below which pixels are walls")
	fs.StringVar(&f.Start, "from", "", "start cell x,y (default: S marker)")
	fs.StringVar(&f.Goal, "to", "", "goal cell x,y (default: G marker)")
	fs.BoolVar(&f.Diagonal, "diagonal", false, "allow diagonal moves")
	fs.StringVar(&f.Heuristic, "heuristic", "", fmt.Sprintf("one of %v (default: manhattan, octile with --diagonal)", grid.HeuristicNames()))
	fs.StringVar(&f.Search.Queue, "queue", pathfinder.QueueHeap.String(), "priority queue: heap or linear")
	fs.IntVar(&f.Search.Workers, "workers", 1, "goroutines evaluating neighbours")
	fs.BoolVar(&f.Search.Reopen, "reopen", false, "reopen finalized nodes on cheaper routes")
	fs.IntVar(&f.Search.MaxExpansions, "max-expansions", 0, "give up after this many expansions (0: no limit)")
	fs.StringVarP(&f.Output.Format, "format", "o", "text", "output format: text or json")
	fs.StringVar(&f.Output.Render, "render", "", "write a PNG of the search to this file")
	fs.IntVar(&f.Output.Scale, "scale", 8, "PNG pixels per cell")
	return cmd
}

// overlayFlags copies every flag the user set over the config file values.
func overlayFlags(cmd *cobra.Command, cfg *config.Config, f config.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("map", func() { cfg.Map = f.Map })
	set("threshold", func() { cfg.Threshold = f.Threshold })
	set("from", func() { cfg.Start = f.Start })
	set("to", func() { cfg.Goal = f.Goal })
	set("diagonal", func() { cfg.Diagonal = f.Diagonal })
	set("heuristic", func() { cfg.Heuristic = f.Heuristic })
	set("queue", func() { cfg.Search.Queue = f.Search.Queue })
	set("workers", func() { cfg.Search.Workers = f.Search.Workers })
	set("reopen", func() { cfg.Search.Reopen = f.Search.Reopen })
	set("max-expansions", func() { cfg.Search.MaxExpansions = f.Search.MaxExpansions })
	set("format", func() { cfg.Output.Format = f.Output.Format })
	set("render", func() { cfg.Output.Render = f.Output.Render })
	set("scale", func() { cfg.Output.Scale = f.Output.Scale })
}

func renderFile(path string, g *grid.Grid, result pathfinder.Result[grid.Point], scale int) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Render(out, result.Path, result.Table, scale); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func report(w io.Writer, format string, g *grid.Grid, result pathfinder.Result[grid.Point]) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(solveOutput{
			Found:         result.Found,
			Cost:          result.TotalCost,
			ExpandedNodes: result.ExpandedNodes,
			Discovered:    result.Table.Len(),
			Path:          result.Path,
		})
	}
	if !result.Found {
		_, err := fmt.Fprintf(w, "no path (expanded %d, discovered %d)\n", result.ExpandedNodes, result.Table.Len())
		return err
	}
	_, err := fmt.Fprintf(w, "%scost %g, %d steps, expanded %d, discovered %d\n",
		g.Format(result.Path), result.TotalCost, len(result.Path)-1, result.ExpandedNodes, result.Table.Len())
	return err
}
