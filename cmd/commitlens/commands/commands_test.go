package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/commitlens/cmd/commitlens/commands"
	"github.com/Sumatoshi-tech/commitlens/pkg/replay"
)

const testLog = `commit,file,line,length,depth,type,author,datetime
a1,web/app.js,1,20,0,,Ann,2024-03-03T02:00:00Z
a1,web/app.js,2,31,1,,Ann,2024-03-03T02:00:00Z
b2,web/site.css,1,12,0,,Bo,2024-03-06T10:30:00Z
c3,main.go,1,40,2,,Cy,2024-03-08T22:15:00Z
`

const testScript = `{"events": [
  {"type": "progress", "progress": 0},
  {"type": "clear"},
  {"type": "focus", "index": 2}
]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := commands.NewRootCommand()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--quiet"))

	err := root.Execute()

	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"summary", "render", "replay", "mcp", "version"}, names)

	for _, flag := range []string{"config", "verbose", "quiet", "git", "revision"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commitlens ")
}

func TestSummaryCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "summary", writeFile(t, "log.csv", testLog), "--no-color", "--points")
	require.NoError(t, err)
	assert.Contains(t, out, "COMMIT SUMMARY")
	assert.Contains(t, out, "3/3 commits")
	assert.Contains(t, out, "web/app.js")
	assert.Contains(t, out, "Ann")
}

func TestSummaryCommand_MissingFileDegrades(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "summary", filepath.Join(t.TempDir(), "missing.csv"), "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "0/0 commits")
}

func TestSummaryCommand_SourceErrors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "summary")
	require.ErrorIs(t, err, commands.ErrNoSource)

	_, err = execute(t, "summary", "log.csv", "--git", t.TempDir())
	require.ErrorIs(t, err, commands.ErrTooManySources)
}

func TestRenderCommand_RequiresOutput(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "render", writeFile(t, "log.csv", testLog))
	require.ErrorIs(t, err, commands.ErrNoOutput)
}

func TestRenderCommand_WritesPage(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "page.html")
	script := writeFile(t, "script.json", `{"events": [{"type": "brush_end", "rect": [0, 0, 1000, 450]}]}`)

	_, err := execute(t, "render", writeFile(t, "log.csv", testLog), "-o", output, "--script", script, "--title", "Demo")
	require.NoError(t, err)

	page, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<!DOCTYPE html>")
	assert.Contains(t, string(page), "Demo")
	assert.Contains(t, string(page), "main.go")
}

func TestReplayCommand_JSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "replay", writeFile(t, "log.csv", testLog), writeFile(t, "script.json", testScript), "--format", "json")
	require.NoError(t, err)

	var digests []replay.Digest

	require.NoError(t, json.Unmarshal([]byte(out), &digests))
	require.Len(t, digests, 3)
	assert.Equal(t, []string{"a1"}, digests[0].Visible)
	assert.Equal(t, 2, digests[2].Focused)
	assert.Len(t, digests[2].Visible, 3)
}

func TestReplayCommand_Errors(t *testing.T) {
	t.Parallel()

	logPath := writeFile(t, "log.csv", testLog)

	_, err := execute(t, "replay", logPath, writeFile(t, "script.json", testScript), "--format", "xml")
	require.ErrorIs(t, err, replay.ErrUnknownFormat)

	_, err = execute(t, "replay", logPath, writeFile(t, "bad.json", `{"events": [{"type": "zoom"}]}`))
	require.ErrorIs(t, err, replay.ErrInvalidScript)
}

func TestMCPCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewMCPCommand()
	require.NotNil(t, cmd)
	assert.NotEmpty(t, cmd.Long)

	flag := cmd.Flags().Lookup("metrics-addr")
	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}
