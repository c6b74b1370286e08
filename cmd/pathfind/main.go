// Command pathfind solves a grid map with the A* engine.
//
//	pathfind solve --map maze.txt --diagonal --render out.png
//	pathfind config init pathfind.toml
package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"

	"cogentcore.org/core/base/errors"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder/internal/config"
	"github.com/pdrpinto/pathfinder/internal/logx"
)

var errNoPath = stderrors.New("no path found")

type rootFlags struct {
	configFile string
	debug      bool
	verbose    bool
	quiet      bool
}

// loadConfig reads the config file, if any, and sets up the default logger.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	logger := logx.New(cmd.ErrOrStderr(), logx.LevelFromFlags(f.debug, f.verbose, f.quiet))
	slog.SetDefault(logger)

	cfg := config.Default()
	if f.configFile != "" {
		var err error
		if cfg, err = config.Load(f.configFile); err != nil {
			return cfg, logger, err
		}
		logger.Info("loaded config", "file", f.configFile)
	}
	return cfg, logger, nil
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "pathfind",
		Short:         "Find minimum-cost paths on grid maps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "TOML or YAML config file")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log every expansion")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log progress")
	root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(newSolveCommand(flags), newConfigCommand(flags))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	switch {
	case err == nil:
	case stderrors.Is(err, errNoPath):
		os.Exit(2)
	default:
		errors.Log(err)
		os.Exit(1)
	}
}
