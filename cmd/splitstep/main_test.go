package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitstep/internal/output"
	"splitstep/internal/sims/langevin"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func resolveArgs(t *testing.T, args ...string) (langevin.Config, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	flags := newConfigFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return flags.resolve(cmd)
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := resolveArgs(t)
	require.NoError(t, err)
	assert.Equal(t, langevin.DefaultConfig(), cfg)
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("params:\n  a: 1.5\n  dt: 0.05\nm: 8\nworkers: 2\n"), 0o644))

	cfg, err := resolveArgs(t, "--config", path, "--m", "6", "--set", "workers=4", "--set", "dt=0.2")
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Params.A, "file beats defaults")
	assert.Equal(t, 6, cfg.M, "changed flag beats file")
	assert.Equal(t, 4, cfg.Workers, "--set beats file")
	assert.Equal(t, 0.2, cfg.Params.Dt, "--set beats file")
	assert.Equal(t, 1.0, cfg.Params.B, "untouched keys keep defaults")
}

func TestResolveUnchangedFlagsDoNotOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("m: 8\n"), 0o644))

	cfg, err := resolveArgs(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.M)
}

func TestResolveErrors(t *testing.T) {
	_, err := resolveArgs(t, "--set", "nonsense")
	assert.Error(t, err)

	_, err = resolveArgs(t, "--set", "bogus=1")
	assert.ErrorContains(t, err, "unknown key")

	_, err = resolveArgs(t, "--workers", "3")
	assert.ErrorIs(t, err, langevin.ErrInvalidConfig)

	_, err = resolveArgs(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveRejectsBadValues(t *testing.T) {
	for _, args := range [][]string{
		{"--workers", "0"},
		{"--workers=-2"},
		{"--set", "a=abc"},
		{"--set", "m=seventeen"},
		{"--set", "workers=0"},
	} {
		_, err := resolveArgs(t, args...)
		assert.ErrorIs(t, err, langevin.ErrInvalidConfig, "%v", args)
	}
}

func TestCoeffsCommand(t *testing.T) {
	out, err := execute(t, "coeffs", "--m", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "sites             1024")
	assert.Contains(t, out, "beta              1.34701")
	assert.Contains(t, out, "iterations        100000")
}

func TestRunPlotAndRunsCommands(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.sqlite")

	out, err := execute(t, "run", "--a", "3", "--m", "6", "--workers", "2", "--timespan", "20",
		"--out", dir, "--db", db, "--label", "smoke")
	require.NoError(t, err)
	assert.Contains(t, out, "[t=5]")

	logPath := filepath.Join(dir, output.LogFileName(3))
	recs, err := output.ReadTextLogFile(logPath)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, 5.0, recs[0].Time)

	out, err = execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "smoke")

	pngPath := filepath.Join(dir, "decay.png")
	_, err = execute(t, "plot", logPath, "-o", pngPath)
	require.NoError(t, err)
	info, err := os.Stat(pngPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSweepCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "sweep", "--m", "6", "--workers", "2", "--timespan", "20",
		"--a-from=-5", "--a-to=3", "--a-steps", "2", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "transition between a=-5 (absorbed) and a=3 (active)")

	for _, a := range []float64{-5, 3} {
		_, err := os.Stat(filepath.Join(dir, output.LogFileName(a)))
		assert.NoError(t, err)
	}
}

func TestRunsCommandMissingDatabase(t *testing.T) {
	_, err := execute(t, "runs", "--db", filepath.Join(t.TempDir(), "none.sqlite"))
	assert.Error(t, err)
}

func TestParseSetsTrimsSpace(t *testing.T) {
	got, err := parseSets([]string{" a = 1.9 "}, configKeys())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1.9"}, got)
	assert.False(t, strings.Contains(got["a"], " "))
}
