package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runApp(t *testing.T, args ...string) (exitCode int, stderr string) {
	t.Helper()
	app := newApp()
	var errOut bytes.Buffer
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(_ *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			errOut.WriteString(err.Error())
		}
	}
	err := app.Run(append([]string{"geojson2csv", "--logLevel", "error"}, args...))
	if err != nil && exitCode == 0 {
		exitCode = -1
	}
	return exitCode, errOut.String()
}

func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[5.387,52.155]},"properties":{"name":"Amersfoort"}}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestNoArguments(t *testing.T) {
	code, stderr := runApp(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, usageMessage)
}

func TestConvertsOnlyTheFirstArgument(t *testing.T) {
	dir := t.TempDir()
	first := writeInput(t, dir, "first.geojson")
	second := writeInput(t, dir, "second.geojson")

	code, _ := runApp(t, first, second)
	assert.Equal(t, 0, code)

	raw, err := os.ReadFile(filepath.Join(dir, "first.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "name,wkt,LAT,LNG\n")
	assert.Contains(t, string(raw), "Amersfoort,")
	_, err = os.Stat(filepath.Join(dir, "second.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExistingOutputNeedsOverwrite(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "points.geojson")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "points.csv"), []byte("old\n"), 0o644))

	code, _ := runApp(t, input)
	assert.Equal(t, exitFailure, code)

	code, _ = runApp(t, "--overwrite", input)
	assert.Equal(t, 0, code)
	raw, err := os.ReadFile(filepath.Join(dir, "points.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "old")
}

func TestMissingInput(t *testing.T) {
	code, _ := runApp(t, filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Equal(t, exitFailure, code)
}

func TestInvalidLogLevel(t *testing.T) {
	code, stderr := runApp(t, "--logLevel", "loud", "x.geojson")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "invalid log level")
}
