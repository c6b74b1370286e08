// Package config holds the settings shared by the pathfind and vizweb
// commands. Files are TOML or YAML, picked by extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/grid"
)

// Config is the full command configuration.
type Config struct {
	// Map is a text map (.txt, .map) or an image file.
	Map string `toml:"map" yaml:"map"`

	// Threshold is the luminance below which image pixels are walls.
	Threshold int `toml:"threshold" yaml:"threshold"`

	// Start and Goal are "x,y"; empty uses the S and G markers of a text map.
	Start string `toml:"start" yaml:"start"`
	Goal  string `toml:"goal" yaml:"goal"`

	Diagonal  bool   `toml:"diagonal" yaml:"diagonal"`
	Heuristic string `toml:"heuristic" yaml:"heuristic"`

	Search Search `toml:"search" yaml:"search"`
	Output Output `toml:"output" yaml:"output"`
	Server Server `toml:"server" yaml:"server"`
}

// Search holds engine options.
type Search struct {
	Queue         string `toml:"queue" yaml:"queue"`
	Workers       int    `toml:"workers" yaml:"workers"`
	Reopen        bool   `toml:"reopen" yaml:"reopen"`
	MaxExpansions int    `toml:"max_expansions" yaml:"max_expansions"`
}

// Output controls how pathfind reports a result.
type Output struct {
	// Format is "text" or "json".
	Format string `toml:"format" yaml:"format"`

	// Render, if set, is a PNG file to draw the search into.
	Render string `toml:"render" yaml:"render"`
	Scale  int    `toml:"scale" yaml:"scale"`
}

// Server configures the step-by-step visualiser.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`

	// Watch reloads Map when it changes on disk.
	Watch bool `toml:"watch" yaml:"watch"`

	// Random grid parameters, used when Map is empty.
	Width    int     `toml:"width" yaml:"width"`
	Height   int     `toml:"height" yaml:"height"`
	Clusters int     `toml:"clusters" yaml:"clusters"`
	Steps    int     `toml:"steps" yaml:"steps"`
	Density  float64 `toml:"density" yaml:"density"`

	// IntervalMillis is the delay between snapshots streamed over /ws.
	IntervalMillis int `toml:"interval_millis" yaml:"interval_millis"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Threshold: grid.DefaultThreshold,
		Search: Search{
			Queue:   pathfinder.QueueHeap.String(),
			Workers: 1,
		},
		Output: Output{
			Format: "text",
			Scale:  8,
		},
		Server: Server{
			Addr:           ":8080",
			Width:          40,
			Height:         24,
			Clusters:       8,
			Steps:          200,
			Density:        0.25,
			IntervalMillis: 50,
		},
	}
}

var ErrUnknownFormat = errors.New("config: unknown file format")

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in the format its extension names.
func Save(cfg Config, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(cfg)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// QueueKind parses Search.Queue.
func (s Search) QueueKind() (pathfinder.QueueKind, error) {
	switch s.Queue {
	case "", pathfinder.QueueHeap.String():
		return pathfinder.QueueHeap, nil
	case pathfinder.QueueLinear.String():
		return pathfinder.QueueLinear, nil
	}
	return 0, fmt.Errorf("config: unknown queue %q", s.Queue)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("config: threshold %d out of range", c.Threshold)
	}
	if _, err := grid.HeuristicByName(c.Heuristic); err != nil {
		return err
	}
	if _, err := c.Search.QueueKind(); err != nil {
		return err
	}
	if c.Search.Workers < 0 || c.Search.MaxExpansions < 0 {
		return errors.New("config: workers and max_expansions must not be negative")
	}
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Output.Scale < 1 {
		return fmt.Errorf("config: scale %d must be at least 1", c.Output.Scale)
	}
	for _, p := range []string{c.Start, c.Goal} {
		if p == "" {
			continue
		}
		if _, err := grid.ParsePoint(p); err != nil {
			return err
		}
	}
	return nil
}

// Options returns the engine options for c. Extra options are appended.
func (c Config) Options(extra ...pathfinder.Option) ([]pathfinder.Option, error) {
	kind, err := c.Search.QueueKind()
	if err != nil {
		return nil, err
	}
	options := []pathfinder.Option{
		pathfinder.WithQueue(kind),
		pathfinder.WithWorkers(c.Search.Workers),
		pathfinder.WithReopen(c.Search.Reopen),
		pathfinder.WithMaxExpansions(c.Search.MaxExpansions),
	}
	return append(options, extra...), nil
}

// LoadGrid loads Map and applies Diagonal and Heuristic.
func (c Config) LoadGrid() (*grid.Grid, error) {
	g, err := grid.Load(c.Map, uint8(c.Threshold))
	if err != nil {
		return nil, err
	}
	c.Apply(g)
	return g, nil
}

// Apply sets the movement mode and heuristic of g. c must be valid.
func (c Config) Apply(g *grid.Grid) {
	g.Diagonal = c.Diagonal
	h, _ := grid.HeuristicByName(c.Heuristic)
	g.SetHeuristic(h)
}

// Endpoints resolves Start and Goal against the markers of g.
func (c Config) Endpoints(g *grid.Grid) (start, goal grid.Point, err error) {
	start, goal = g.Start, g.Goal
	if c.Start != "" {
		if start, err = grid.ParsePoint(c.Start); err != nil {
			return
		}
	} else if !g.HasStart {
		return start, goal, errors.New("config: no start given and map has no S marker")
	}
	if c.Goal != "" {
		if goal, err = grid.ParsePoint(c.Goal); err != nil {
			return
		}
	} else if !g.HasGoal {
		return start, goal, errors.New("config: no goal given and map has no G marker")
	}
	if !g.In(start) || !g.In(goal) {
		return start, goal, fmt.Errorf("%w: start %v goal %v", grid.ErrOutOfBounds, start, goal)
	}
	return start, goal, nil
}
