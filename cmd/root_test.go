// cmd/root_test.go
package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/config"
	"github.com/xkilldash9x/lattice/internal/mocks"
)

func TestRootCmd_VersionFlag(t *testing.T) {
	resetForTest(t)
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestVersionCmd(t *testing.T) {
	resetForTest(t)
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lattice version "+Version+"\n", out)
}

func TestRootCmd_NoArgs(t *testing.T) {
	resetForTest(t)
	out, err := executeCommand(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Lattice replays pointer and keyboard input")
	assert.Contains(t, out, "replay")
}

func TestRootCmd_ExplicitConfigMustExist(t *testing.T) {
	resetForTest(t)
	_, err := executeCommand(t, "--config", "/does/not/exist.yaml", "replay", "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize configuration")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	resetForTest(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.yaml", "document:\n  viewport_width: -1\n")
	scenario := writeFile(t, dir, "s.yaml", passingScenario)

	_, err := executeCommand(t, "--config", cfg, "replay", scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "viewport_width")
}

func TestGetConfigFromContext(t *testing.T) {
	_, err := getConfigFromContext(context.Background())
	assert.Error(t, err)

	want := config.NewDefaultConfig()
	got, err := getConfigFromContext(context.WithValue(context.Background(), configKey, want))
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestGetConfigFromContext_Interface(t *testing.T) {
	m := new(mocks.MockConfig)
	m.On("Replay").Return(config.ReplayConfig{Concurrency: 3, OutputFormat: "json"})
	m.On("SetReplayOutputFormat", "text").Return()

	got, err := getConfigFromContext(context.WithValue(context.Background(), configKey, config.Interface(m)))
	require.NoError(t, err)
	got.SetReplayOutputFormat("text")
	assert.Equal(t, 3, got.Replay().Concurrency)
	m.AssertExpectations(t)
}
