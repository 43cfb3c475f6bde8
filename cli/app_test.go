package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/edwloef/chomsky/cli"
	"github.com/edwloef/chomsky/cli/commands/run"
	"github.com/edwloef/chomsky/internal/errors"
	"github.com/edwloef/chomsky/internal/report"
	"github.com/edwloef/chomsky/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anbnJSON = `{
  "var_symbols": ["S"],
  "term_symbols": ["a", "b"],
  "start_symbol": "S",
  "rules": [
    {"from": "S", "to": "aSb"},
    {"from": "S", "to": ""}
  ]
}`

const anbnHCL = `
var_symbols  = ["S"]
term_symbols = ["a", "b"]
start_symbol = "S"

rule {
  from = "S"
  to   = "aSb"
}

rule {
  from = "S"
  to   = ""
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts := options.NewOptionsWithWriters(&stdout, &stderr)
	err := cli.NewApp(opts).RunContext(context.Background(), append([]string{cli.AppName}, args...))

	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "anbn.json", anbnJSON)
	hclPath := writeFile(t, dir, "anbn.hcl", anbnHCL)

	expected := "iterations: 2\n\"\"\n\"ab\"\n"

	testCases := []struct {
		name string
		args []string
	}{
		{name: "positional cap", args: []string{"run", jsonPath, "2"}},
		{name: "flag cap", args: []string{"run", "--max-iters", "2", jsonPath}},
		{name: "parallel", args: []string{"run", "--scheduler", "parallel", "--parallelism", "2", jsonPath, "2"}},
		{name: "hcl", args: []string{"run", hclPath, "2"}},
		{name: "default command", args: []string{jsonPath, "2"}},
		{name: "default command with flags", args: []string{"--scheduler", "parallel", jsonPath, "2"}},
		{name: "cap before command", args: []string{"--max-iters", "2", "run", jsonPath}},
		{name: "cap after command wins", args: []string{"--max-iters", "5", "run", "--max-iters", "2", jsonPath}},
		{name: "scheduler before command", args: []string{"--scheduler", "parallel", "--parallelism", "2", "run", jsonPath, "2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runApp(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, expected, stdout)
		})
	}
}

func TestRunCommandJSONReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "anbn.json", anbnJSON)

	stdout, _, err := runApp(t, "run", "--output-format", "json", "--scheduler", "parallel", path, "3")
	require.NoError(t, err)
	require.NoError(t, report.ValidateJSONReport([]byte(stdout)))

	parsed, err := report.ParseJSONReport([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.Iterations)
	assert.Equal(t, []string{"", "aabb", "ab"}, parsed.Words)
	assert.Equal(t, "parallel", parsed.Scheduler)
}

func TestRunCommandOutputFileAndSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "anbn.json", anbnJSON)
	output := filepath.Join(dir, "words.csv")

	stdout, stderr, err := runApp(t, "run", "--output-format", "csv", "--output-file", output, "--summary", path, "1")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Derivation Summary")

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	words, err := report.ParseCSVWords(data)
	require.NoError(t, err)
	assert.Equal(t, []report.CSVWord{{Word: "", Length: 0}}, words)
}

func TestRunFlagsBeforeCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "anbn.json", anbnJSON)
	output := filepath.Join(dir, "report.json")

	// a^n b^n never reaches a fixpoint, so an ignored cap would never return
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer

	opts := options.NewOptionsWithWriters(&stdout, &stderr)
	args := []string{
		cli.AppName,
		"--max-iters", "1",
		"--scheduler", "parallel",
		"--format", "json",
		"--output-file", output,
		"--summary",
		"run", path,
	}

	require.NoError(t, cli.NewApp(opts).RunContext(ctx, args))

	assert.Equal(t, 1, opts.MaxIters)
	assert.Equal(t, "parallel", opts.Scheduler)
	assert.Equal(t, "json", opts.OutputFormat)
	assert.True(t, opts.Summary)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Derivation Summary")

	data, err := os.ReadFile(output)
	require.NoError(t, err)

	parsed, err := report.ParseJSONReport(data)
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Iterations)
	assert.Equal(t, []string{""}, parsed.Words)
	require.NotNil(t, parsed.MaxIters)
	assert.Equal(t, 1, *parsed.MaxIters)
}

func TestRunFlagsFromEnv(t *testing.T) {
	t.Setenv("CHOMSKY_MAX_ITERS", "5")

	dir := t.TempDir()
	path := writeFile(t, dir, "anbn.json", anbnJSON)

	stdout, _, err := runApp(t, "run", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "iterations: 5\n"))

	// a flag given before the command name beats the env var
	stdout, _, err = runApp(t, "--max-iters", "1", "run", path)
	require.NoError(t, err)
	assert.Equal(t, "iterations: 1\n\"\"\n", stdout)
}

func TestRunCommandCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "anbn.json", anbnJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer

	opts := options.NewOptionsWithWriters(&stdout, &stderr)
	err := cli.NewApp(opts).RunContext(ctx, []string{cli.AppName, "run", path})
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, run.CanceledExitCode, errors.ExitCode(err))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Derivation canceled")
}

func TestRunCommandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := writeFile(t, dir, "anbn.json", anbnJSON)
	emptyPattern := writeFile(t, dir, "empty.json", `{"var_symbols": [], "term_symbols": ["a"], "start_symbol": "S", "rules": [{"from": "", "to": "a"}]}`)
	malformed := writeFile(t, dir, "malformed.json", `{"var_symbols": [`)
	missingField := writeFile(t, dir, "missing.json", `{"var_symbols": [], "term_symbols": ["a"], "rules": []}`)
	undeclared := writeFile(t, dir, "undeclared.json", `{"var_symbols": ["S"], "term_symbols": ["a"], "start_symbol": "S", "rules": [{"from": "S", "to": "aXa"}]}`)

	testCases := []struct {
		name     string
		args     []string
		contains string
		exitCode int
	}{
		{name: "missing file", args: []string{"run", filepath.Join(dir, "nope.json")}, contains: "nope.json", exitCode: 1},
		{name: "malformed", args: []string{"run", malformed}, contains: "malformed.json", exitCode: 1},
		{name: "missing field", args: []string{"run", missingField}, contains: "start_symbol", exitCode: 1},
		{name: "empty pattern", args: []string{"run", emptyPattern}, contains: "source pattern must not be empty", exitCode: 1},
		{name: "strict", args: []string{"run", "--strict", undeclared}, contains: `symbol "X"`, exitCode: 1},
		{name: "invalid max iters", args: []string{"run", valid, "many"}, contains: "invalid max-iters", exitCode: 2},
		{name: "negative max iters", args: []string{"run", valid, "-1"}, exitCode: 2},
		{name: "too many args", args: []string{"run", valid, "1", "2"}, contains: "too many arguments", exitCode: 2},
		{name: "missing grammar", args: []string{"run"}, contains: "missing grammar file", exitCode: 2},
		{name: "unknown scheduler", args: []string{"run", "--scheduler", "threaded", valid}, contains: "unknown scheduler", exitCode: 1},
		{name: "unknown format", args: []string{"run", "--output-format", "yaml", valid}, contains: "unsupported report format", exitCode: 1},
		{name: "unknown scheduler before command", args: []string{"--scheduler", "threaded", "run", valid}, contains: "unknown scheduler", exitCode: 1},
		{name: "strict before command", args: []string{"--strict", "run", undeclared}, contains: `symbol "X"`, exitCode: 1},
		{name: "unknown log level", args: []string{"--log-level", "loud", "run", valid}, exitCode: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runApp(t, tc.args...)
			require.Error(t, err)
			assert.Empty(t, stdout, "no partial output on failure")
			assert.Equal(t, tc.exitCode, errors.ExitCode(err))

			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "grammars/anbn.json", anbnJSON)
	writeFile(t, dir, "grammars/nested/anbn.hcl", anbnHCL)

	stdout, _, err := runApp(t, "validate", filepath.Join(dir, "grammars/**/*.json"), filepath.Join(dir, "grammars/**/*.hcl"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 2)

	writeFile(t, dir, "grammars/broken.json", `{"rules": "none"}`)
	writeFile(t, dir, "grammars/nested/broken.hcl", `rule {`)

	stdout, _, err = runApp(t, "validate", filepath.Join(dir, "grammars/**/*.json"), filepath.Join(dir, "grammars/**/*.hcl"))
	require.Error(t, err)

	var multiErr *errors.MultiError
	require.ErrorAs(t, err, &multiErr)
	assert.Equal(t, 2, multiErr.Len())
	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 2, "valid files are still listed")

	undeclared := writeFile(t, dir, "strict/undeclared.json", `{"var_symbols": ["S"], "term_symbols": ["a"], "start_symbol": "S", "rules": [{"from": "S", "to": "aXa"}]}`)

	_, _, err = runApp(t, "validate", undeclared)
	require.NoError(t, err)

	_, _, err = runApp(t, "--strict", "validate", undeclared)
	require.Error(t, err)

	_, _, err = runApp(t, "validate", filepath.Join(dir, "*.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no grammar file matches")
}

func TestSchemaCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, "start_symbol")

	stdout, _, err = runApp(t, "schema", "report")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Iterations")

	_, _, err = runApp(t, "schema", "config")
	require.Error(t, err)
}

func TestLogFormatJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "anbn.json", anbnJSON)

	_, stderr, err := runApp(t, "--log-level", "debug", "--log-format", "json", "run", path, "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"generation":1`)
}
