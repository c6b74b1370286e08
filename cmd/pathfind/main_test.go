package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const maze = `S..#
.#..
...G
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeMap(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maze.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestSolveText(t *testing.T) {
	out, err := run(t, "solve", "--map", writeMap(t, maze))
	require.NoError(t, err)
	assert.Contains(t, out, "cost 5, 5 steps")
	assert.True(t, strings.HasPrefix(out, "S"))
	assert.Equal(t, 4, strings.Count(out, "*"))
}

func TestSolveJSON(t *testing.T) {
	out, err := run(t, "solve", "--map", writeMap(t, maze), "--format", "json", "--from", "0,2", "--diagonal")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.Found)
	assert.Equal(t, 3.0, got.Cost)
	assert.Len(t, got.Path, 4)
}

func TestSolveNoPath(t *testing.T) {
	out, err := run(t, "solve", "--map", writeMap(t, "S#G\n"))
	assert.ErrorIs(t, err, errNoPath)
	assert.Contains(t, out, "no path")
}

func TestSolveRender(t *testing.T) {
	render := filepath.Join(t.TempDir(), "out.png")
	_, err := run(t, "solve", "--map", writeMap(t, maze), "--render", render, "--scale", "2")
	require.NoError(t, err)

	f, err := os.Open(render)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestSolveConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "pathfind.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
map = "`+filepath.ToSlash(writeMap(t, maze))+`"
[output]
format = "json"
`), 0o644))

	out, err := run(t, "--config", cfgPath, "solve", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "cost 5")
}

func TestSolveInvalidFlags(t *testing.T) {
	_, err := run(t, "solve", "--map", writeMap(t, maze), "--queue", "fibonacci")
	assert.Error(t, err)

	_, err = run(t, "solve")
	assert.Error(t, err)
}

func TestConfigInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfind.yaml")
	_, err := run(t, "config", "init", path)
	require.NoError(t, err)

	_, err = run(t, "config", "init", path)
	assert.Error(t, err)

	out, err := run(t, "--config", path, "config", "check")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}
