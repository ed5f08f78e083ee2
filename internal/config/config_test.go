package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.MaxLoops)
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryFile)
	assert.Equal(t, DefaultPrompt, cfg.Prompt)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, FileUsed())
}

func TestLoadConfigFile(t *testing.T) {
	Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "corvo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_loops: 500\nprompt: \"corvo> \"\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxLoops)
	assert.Equal(t, "corvo> ", cfg.Prompt)
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryFile, "unset keys keep their defaults")
	assert.Equal(t, path, FileUsed())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	Reset()
	dir := t.TempDir()
	path := filepath.Join(dir, "corvo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_loops: 500\n"), 0o644))
	t.Setenv("CORVO_MAX_LOOPS", "900")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.MaxLoops)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	Reset()
	t.Setenv("CORVO_MAX_LOOPS", "900")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-loops", 0, "")
	require.NoError(t, flags.Parse([]string{"--max-loops", "25"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxLoops)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	Reset()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-loops", 0, "")
	flags.String("work-dir", "", "")
	require.NoError(t, flags.Parse(nil))

	dir := t.TempDir()
	path := filepath.Join(dir, "corvo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_loops: 7\n"), 0o644))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxLoops, "a flag left at its default must not mask the file")
}

func TestLoadRejectsNegativeMaxLoops(t *testing.T) {
	Reset()
	t.Setenv("CORVO_MAX_LOOPS", "-1")
	_, err := Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_loops")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	Reset()
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}
