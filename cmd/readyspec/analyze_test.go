package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/readyspec/analysis"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand_TextArgument(t *testing.T) {
	out, err := runCommand(t, "",
		"analyze", "The system should load fast and handle errors properly")
	require.NoError(t, err)

	assert.Contains(t, out, "Readiness: 67.5/100 (Needs clarification)")
	assert.Contains(t, out, "[Weak modality]")
	assert.Contains(t, out, "[Subjective term]")
	assert.Contains(t, out, "Clarification questions:")
}

func TestAnalyzeCommand_JSONOutput(t *testing.T) {
	out, err := runCommand(t, "",
		"analyze", "--json", "User logs in with valid user ID and password")
	require.NoError(t, err)

	var result analysis.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 87.5, result.ReadinessScore)
	assert.Equal(t, analysis.ReadinessReady, result.ReadinessLevel)
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	out, err := runCommand(t, "The page must render within 2 seconds.", "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "Readiness: 100.0/100 (Ready for automation)")
}

func TestAnalyzeCommand_FilesAndGlobs(t *testing.T) {
	dir := t.TempDir()
	reqA := filepath.Join(dir, "req-a.txt")
	reqB := filepath.Join(dir, "req-b.txt")
	require.NoError(t, os.WriteFile(reqA, []byte("The page should load fast."), 0o644))
	require.NoError(t, os.WriteFile(reqB, []byte("User logs in with valid user ID."), 0o644))

	out, err := runCommand(t, "", "analyze", "--glob", filepath.Join(dir, "*.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "== "+reqA)
	assert.Contains(t, out, "== "+reqB)

	out, err = runCommand(t, "", "analyze", reqA)
	require.NoError(t, err)
	assert.Contains(t, out, "== "+reqA)

	_, err = runCommand(t, "", "analyze", "--glob", filepath.Join(dir, "*.missing"))
	assert.ErrorContains(t, err, "matched no files")
}

func TestCatalogValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: team-1
rules:
  - name: modality
    category: Weak modality
    weight: 20
    message: "weak term '{match}'"
    trigger:
      kind: literal
      literals: ["should"]
`), 0o644))

	out, err := runCommand(t, "", "catalog", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid (version team-1, 1 rules)")

	require.NoError(t, os.WriteFile(path, []byte("rules: ["), 0o644))
	_, err = runCommand(t, "", "catalog", "validate", path)
	assert.Error(t, err)
}

func TestCatalogShowCommand(t *testing.T) {
	out, err := runCommand(t, "", "catalog", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog builtin-1")
	assert.Contains(t, out, "subjective-term")
	assert.Contains(t, out, "state-assumption")
}

func TestConfigInitCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	out, err := runCommand(t, "", "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, ".config", "readyspec", "config.yaml")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "server:")

	// A second run leaves the existing file alone.
	require.NoError(t, os.WriteFile(path, []byte("# edited\n"), 0o644))
	_, err = runCommand(t, "", "config", "init")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# edited\n", string(data))
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "readyspec version")
}
