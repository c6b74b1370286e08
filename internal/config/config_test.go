package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/grid"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
map = "maze.txt"
diagonal = true
heuristic = "octile"

[search]
queue = "linear"
max_expansions = 1000

[server]
watch = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "maze.txt", cfg.Map)
	assert.True(t, cfg.Diagonal)
	assert.Equal(t, "octile", cfg.Heuristic)
	assert.Equal(t, "linear", cfg.Search.Queue)
	assert.Equal(t, 1000, cfg.Search.MaxExpansions)
	assert.True(t, cfg.Server.Watch)
	// untouched fields keep their defaults
	assert.Equal(t, 1, cfg.Search.Workers)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())

	kind, err := cfg.Search.QueueKind()
	require.NoError(t, err)
	assert.Equal(t, pathfinder.QueueLinear, kind)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
start: "1,2"
goal: "3,4"
search:
  workers: 4
  reopen: true
output:
  format: json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1,2", cfg.Start)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.True(t, cfg.Search.Reopen)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.ini")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Map = "world.png"
	cfg.Search.Reopen = true
	for _, name := range []string{"out.toml", "out.yml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, Save(cfg, path))
		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded, name)
	}
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"heuristic": func(c *Config) { c.Heuristic = "chebyshev" },
		"queue":     func(c *Config) { c.Search.Queue = "fibonacci" },
		"workers":   func(c *Config) { c.Search.Workers = -1 },
		"format":    func(c *Config) { c.Output.Format = "xml" },
		"scale":     func(c *Config) { c.Output.Scale = 0 },
		"threshold": func(c *Config) { c.Threshold = 300 },
		"start":     func(c *Config) { c.Start = "one,two" },
	} {
		cfg := Default()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestEndpoints(t *testing.T) {
	g, err := grid.Parse(strings.NewReader("S..\n..G\n"))
	require.NoError(t, err)

	cfg := Default()
	start, goal, err := cfg.Endpoints(g)
	require.NoError(t, err)
	assert.Equal(t, grid.Point{X: 0, Y: 0}, start)
	assert.Equal(t, grid.Point{X: 2, Y: 1}, goal)

	cfg.Goal = "1,0"
	_, goal, err = cfg.Endpoints(g)
	require.NoError(t, err)
	assert.Equal(t, grid.Point{X: 1, Y: 0}, goal)

	cfg.Goal = "9,9"
	_, _, err = cfg.Endpoints(g)
	assert.ErrorIs(t, err, grid.ErrOutOfBounds)

	plain := grid.New(2, 2)
	_, _, err = Default().Endpoints(plain)
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	options, err := Default().Options(pathfinder.WithReopen(true))
	require.NoError(t, err)
	assert.Len(t, options, 5)
}
