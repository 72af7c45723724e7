package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueprintkit/blueprintkit/internal/adapters/inbound/cli"
	"github.com/blueprintkit/blueprintkit/internal/domain"
)

const fixtureDir = "../../../../testdata/projects/python-api"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "blueprintkit dev (none)\n", out)
}

func TestMCPCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "--help")
	assert.NoError(t, err)
	_, err = run(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}

func TestRootHasCommands(t *testing.T) {
	root := cli.NewRootCmdForTest()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"validate", "report", "rules", "init", "mcp", "version"} {
		assert.True(t, names[want], "missing command %q", want)
	}
	assert.NotNil(t, root.PersistentFlags().ShorthandLookup("v"))
}

func TestValidateCommand_JSON(t *testing.T) {
	out, err := run(t, "validate", fixtureDir, "--json", "--no-record")
	require.NoError(t, err)

	var result domain.ValidationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 80, result.Overall)
	assert.Equal(t, "A", result.Grade)
	assert.Equal(t, "api-service", result.Application.Type)
}

func TestValidateCommand_DefaultSummary(t *testing.T) {
	out, err := run(t, "validate", fixtureDir, "--no-record")
	require.NoError(t, err)
	assert.Contains(t, out, "blueprintkit")
	assert.Contains(t, out, "80 / 100")
	assert.Contains(t, out, "Recommendations")
}

func TestValidateCommand_CI(t *testing.T) {
	_, err := run(t, "validate", fixtureDir, "--no-record", "--ci", "--min", "100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum 100")

	_, err = run(t, "validate", fixtureDir, "--no-record", "--ci", "--min", "1")
	assert.NoError(t, err)
}

func TestValidateCommand_Badge(t *testing.T) {
	out, err := run(t, "validate", fixtureDir, "--no-record", "--badge")
	require.NoError(t, err)
	assert.Equal(t, "https://img.shields.io/badge/blueprintkit-80%2F100-green\n", out)
}

func TestValidateCommand_Markdown(t *testing.T) {
	out, err := run(t, "validate", fixtureDir, "--no-record", "--markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Validation Report: python-api")
	assert.Contains(t, out, "## Recommendations")
}

func TestValidateCommand_OutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "report.md")
	out, err := run(t, "validate", fixtureDir, "--no-record", "--output", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Validation Report: python-api")
}

func TestValidateCommand_History(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# demo\n"), 0644))

	_, err := run(t, "validate", dir)
	require.NoError(t, err)
	_, err = run(t, "validate", dir)
	require.NoError(t, err)

	out, err := run(t, "validate", dir, "--history")
	require.NoError(t, err)
	assert.Contains(t, out, "Validation History")
	assert.Contains(t, out, "/100")
}

func TestValidateCommand_ConflictingSources(t *testing.T) {
	_, err := run(t, "validate", fixtureDir, "--git", "--archive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidateCommand_MissingPath(t *testing.T) {
	_, err := run(t, "validate", filepath.Join(t.TempDir(), "nope"), "--no-record")
	assert.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	out, err := run(t, "report", fixtureDir, "--title", "Demo API", "--timestamp")
	require.NoError(t, err)
	assert.Contains(t, out, "# Validation Report: Demo API")
	assert.Contains(t, out, "_Generated ")
}

func TestRulesCommand(t *testing.T) {
	out, err := run(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "authentication")
	assert.Contains(t, out, "Grading scale")

	out, err = run(t, "rules", "--json")
	require.NoError(t, err)
	var tables []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tables))
	assert.Len(t, tables, 3)
}
