// cmd/helpers_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/lattice/internal/config"
	"github.com/xkilldash9x/lattice/internal/observability"
)

// resetForTest clears package state and silences the global logger.
func resetForTest(t *testing.T) {
	t.Helper()
	cfgFile = ""
	observability.ResetForTest()
	observability.InitializeLogger(config.LoggerConfig{Level: "fatal", Format: "console", ServiceName: "test"})
	t.Cleanup(observability.ResetForTest)
	// Keep a config.yaml in the working directory from leaking in.
	t.Chdir(t.TempDir())
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const passingScenario = `
name: checkbox click
html: <input id="cb" type="checkbox">
layout:
  - {selector: //body, width: 800, height: 600}
  - {selector: "//input[@id='cb']", width: 20, height: 20}
events:
  - {type: click, x: 5, y: 5}
expect:
  checked:
    - {selector: "//input[@id='cb']", checked: true}
`

const failingScenario = `
name: expects the impossible
html: <input id="cb" type="checkbox">
events:
  - {type: click, x: 5, y: 5}
expect:
  checked:
    - {selector: "//input[@id='cb']", checked: true}
`
