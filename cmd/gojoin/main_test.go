package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/gojoin/logger"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func invoke(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func inputs(t *testing.T, left, right string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "left.txt", left), writeFile(t, dir, "right.txt", right)
}

func TestRun_Join(t *testing.T) {
	f1, f2 := inputs(t, "a 1\nb 2\nc 3\n", "a X\nc Y\n")
	res := invoke(t, "", f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a 1 X\nc 3 Y\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestRun_Stdin(t *testing.T) {
	_, f2 := inputs(t, "", "k X\n")
	res := invoke(t, "k 1\nk 2\n", "-", f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "k 1 X\nk 2 X\n", res.stdout)
}

func TestRun_Flags(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		flags []string
		want  string
	}{
		{"unpaired file 1", "a 1\nb 2\n", "a X\n", []string{"-a", "1"}, "a 1 X\nb 2\n"},
		{"unpaired file 2", "a 1\n", "a X\nz Y\n", []string{"--unpaired=2"}, "a 1 X\nz Y\n"},
		{"ignore case", "A 1\n", "a X\n", []string{"-i"}, "A 1 X\n"},
		{"separator", "a,,1\n", "a,x\n", []string{"-t", ","}, "a,,1,x\n"},
		{"whole line", "a b\nc d\n", "a b\n", []string{"-t", ""}, "a b\n"},
		{"per-side fields", "1 a\n2 b\n", "b Y\n", []string{"-1", "2", "-2", "1"}, "b 2 Y\n"},
		{"shared field", "x a\n", "y a\n", []string{"-j", "2"}, "a x y\n"},
		{"crlf input", "a 1\r\n", "a X\r\n", nil, "a 1 X\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f1, f2 := inputs(t, tc.left, tc.right)
			res := invoke(t, "", append(tc.flags, f1, f2)...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tc.want, res.stdout)
		})
	}
}

func TestRun_FatalDiagnostics(t *testing.T) {
	f1, f2 := inputs(t, "a 1\n", "a 2\n")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"both stdin", []string{"-", "-"}, "gojoin: both files cannot be standard input\n"},
		{"separator too long", []string{"-t", "::", f1, f2}, "gojoin: multi-character tab ::\n"},
		{"separator not utf-8", []string{"-t", "\xff", f1, f2}, "gojoin: multi-character tab \xff\n"},
		{"incompatible fields", []string{"-j", "1", "-1", "2", f1, f2}, "gojoin: incompatible join fields 1, 2\n"},
		{"bad file number", []string{"-a", "3", f1, f2}, "gojoin: invalid file number: 3\n"},
		{"zero field", []string{"-j", "0", f1, f2}, "gojoin: invalid field number: '0'\n"},
		{"non-numeric field", []string{"-1", "x", f1, f2}, "gojoin: invalid field number: 'x'\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := invoke(t, "", tc.args...)
			assert.Equal(t, 1, res.code)
			assert.Equal(t, tc.want, res.stderr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	f1, _ := inputs(t, "a 1\n", "")
	missing := filepath.Join(t.TempDir(), "nope.txt")
	res := invoke(t, "", f1, missing)
	assert.Equal(t, 1, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "gojoin: "+missing+": "), res.stderr)
	assert.Equal(t, 1, strings.Count(res.stderr, "\n"), "a single diagnostic line")
}

func TestRun_CheckOrder(t *testing.T) {
	f1, f2 := inputs(t, "a 1\nc 2\nb 3\n", "a X\nc Y\nd Z\n")

	res := invoke(t, "", f1, f2)
	assert.Equal(t, 0, res.code, "order is not checked by default")

	res = invoke(t, "", "--check-order", f1, f2)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "a 1 X\n", res.stdout)
	assert.Equal(t, "gojoin: "+f1+`:3: is not sorted: "b" after "c"`+"\n", res.stderr)
}

func TestRun_Operands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"none", nil, "gojoin: missing operand\n"},
		{"one", []string{"a"}, "gojoin: missing operand after 'a'\n"},
		{"three", []string{"a", "b", "c"}, "gojoin: extra operand 'c'\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := invoke(t, "", tc.args...)
			assert.Equal(t, 1, res.code)
			assert.True(t, strings.HasPrefix(res.stderr, tc.want), res.stderr)
			assert.Contains(t, res.stderr, "Try 'gojoin --help'")
		})
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	res := invoke(t, "", "--nope", "a", "b")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown flag: --nope")
	assert.Contains(t, res.stderr, "Try 'gojoin --help'")
}

func TestRun_HelpAndVersion(t *testing.T) {
	res := invoke(t, "", "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Usage: gojoin [OPTION]... FILE1 FILE2")
	assert.Contains(t, res.stdout, "--check-order")

	res = invoke(t, "", "-V")
	assert.Equal(t, 0, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, "gojoin "), res.stdout)
}

func TestRun_ConfigFile(t *testing.T) {
	f1, f2 := inputs(t, "A 1\n", "a X\n")
	cfgPath := writeFile(t, t.TempDir(), "gojoin.yaml", "join:\n  ignore_case: true\n")

	res := invoke(t, "", "--config", cfgPath, f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "A 1 X\n", res.stdout)

	res = invoke(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), f1, f2)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "missing.yaml")
}

func TestRun_Environment(t *testing.T) {
	f1, f2 := inputs(t, "a,1\n", "a,X\n")
	t.Setenv("GOJOIN_JOIN_SEPARATOR", ",")

	res := invoke(t, "", f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a,1,X\n", res.stdout)

	res = invoke(t, "", "-t", ";", f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout, "flags take precedence over the environment")
}

func TestRun_DebugLogsGoToStderr(t *testing.T) {
	f1, f2 := inputs(t, "a 1\n", "a X\n")
	res := invoke(t, "", "--log-level", "debug", f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "a 1 X\n", res.stdout)
	assert.Contains(t, res.stderr, "join finished")
}

func TestRun_DebugLogsFailurePhase(t *testing.T) {
	f1, f2 := inputs(t, "a 1\n", "a X\n")

	res := invoke(t, "", "--log-level", "debug", "-t", "::", f1, f2)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "gojoin failed")
	assert.Contains(t, res.stderr, "phase:setup")
	assert.Contains(t, res.stderr, "code:SEPARATOR_TOO_LONG")

	missing := filepath.Join(t.TempDir(), "nope.txt")
	res = invoke(t, "", "--log-level", "debug", f1, missing)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "phase:run")
	assert.Contains(t, res.stderr, "code:IO_FAULT")
	assert.True(t, strings.HasSuffix(res.stderr, "gojoin: "+missing+": no such file or directory\n"), res.stderr)
}

func TestRun_EnvFile(t *testing.T) {
	f1, f2 := inputs(t, "A 1\n", "a X\n")
	envPath := writeFile(t, t.TempDir(), "join.env", "GOJOIN_JOIN_IGNORE_CASE=true\n")
	t.Cleanup(func() { os.Unsetenv("GOJOIN_JOIN_IGNORE_CASE") })

	res := invoke(t, "", "--env-file", envPath, f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "A 1 X\n", res.stdout)

	res = invoke(t, "", "--env-file", filepath.Join(t.TempDir(), "missing.env"), f1, f2)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "missing.env")
}

func TestRun_RunIDFromEnvironment(t *testing.T) {
	f1, f2 := inputs(t, "a 1\n", "a X\n")
	t.Setenv("GOJOIN_RUN_ID", "nightly-7")
	t.Setenv("GOJOIN_LOGGING_FORMAT", "json")

	res := invoke(t, "", "--log-level", "debug", f1, f2)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, `"run_id":"nightly-7"`)
	assert.Contains(t, res.stderr, `"component":"join"`)
}
