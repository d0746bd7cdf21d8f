package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	app := newApp()
	var out, errout bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errout
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"calc"}, args...))
	return out.String(), errout.String(), err
}

func TestArgs(t *testing.T) {
	out, _, err := runApp(t, "", "1+1", "2*(3+4)", "sin(pi/2)")
	require.NoError(t, err)
	assert.Equal(t, "2.00000\n14.00000\n1.00000\n", out)
}

func TestStdin(t *testing.T) {
	out, _, err := runApp(t, "1+1\n\n  2 * (3 + 4)\nsin(pi/2)\n")
	require.NoError(t, err)
	assert.Equal(t, "2.00000\n14.00000\n1.00000\n", out)
}

func TestInFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "exprs.txt")
	require.NoError(t, os.WriteFile(name, []byte("exp(0)\ncos(0)\n"), 0o644))
	out, _, err := runApp(t, "ignored", "--in", name, "8-3-2")
	require.NoError(t, err)
	assert.Equal(t, "1.00000\n1.00000\n3.00000\n", out)
}

func TestMissingInFile(t *testing.T) {
	_, errout, err := runApp(t, "", "--in", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	assert.Contains(t, errout, "reading input")
}

func TestNoExpressions(t *testing.T) {
	_, _, err := runApp(t, "\n\n")
	assert.EqualError(t, err, "no expressions")
}

func TestFailureStops(t *testing.T) {
	out, errout, err := runApp(t, "", "1+1", "(1+2", "3")
	require.Error(t, err)
	assert.Equal(t, "2.00000\n", out)
	assert.Contains(t, errout, "expected )")
	assert.Contains(t, err.Error(), "4: expected ), found end of input")
}

func TestKeepGoing(t *testing.T) {
	out, errout, err := runApp(t, "", "--keep-going", "1+@", "1+1", "foo(1)", "3")
	require.Error(t, err)
	assert.Equal(t, "2.00000\n3.00000\n", out)
	assert.Contains(t, errout, `unrecognized token \"@\"`)
	assert.Contains(t, errout, `unrecognized token \"FOO\"`)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestJobs(t *testing.T) {
	args := []string{"--jobs", "4"}
	var want strings.Builder
	for i := 1; i <= 20; i++ {
		args = append(args, strings.Repeat("1+", i)+"0")
		want.WriteString(strconv.Itoa(i) + ".00000\n")
	}
	out, _, err := runApp(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, want.String(), out)
}

func TestPrec(t *testing.T) {
	out, _, err := runApp(t, "", "--prec", "256", "--digits", "50", "pi")
	require.NoError(t, err)
	assert.Equal(t, "3.14159265358979323846264338327950288419716939937511\n", out)
}

func TestDigits(t *testing.T) {
	out, _, err := runApp(t, "", "-d", "2", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "0.33\n", out)

	_, _, err = runApp(t, "", "--digits", "-1", "1")
	assert.Error(t, err)
}

func TestDigitsEnv(t *testing.T) {
	t.Setenv("CALC_DIGITS", "1")
	out, _, err := runApp(t, "", "e")
	require.NoError(t, err)
	assert.Equal(t, "2.7\n", out)
}

func TestLenient(t *testing.T) {
	_, _, err := runApp(t, "", "1+1)")
	assert.Error(t, err)

	out, _, err := runApp(t, "", "--lenient", "1+1)")
	require.NoError(t, err)
	assert.Equal(t, "2.00000\n", out)
}

func TestEcho(t *testing.T) {
	out, _, err := runApp(t, "", "--echo", " 2 * pi ")
	require.NoError(t, err)
	assert.Equal(t, "2*PI : 6.28319\n", out)
}

func TestNegativeArgument(t *testing.T) {
	out, _, err := runApp(t, "", "--", "-2*3")
	require.NoError(t, err)
	assert.Equal(t, "-6.00000\n", out)
}

func TestDivideByZero(t *testing.T) {
	out, _, err := runApp(t, "", "1/0", "-1/0")
	require.NoError(t, err)
	assert.Equal(t, "+Inf\n-Inf\n", out)
}

func TestLogFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "calc.log")
	_, _, err := runApp(t, "", "--log-file", name, "--log-level", "debug", "1")
	require.NoError(t, err)
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"token"`)
	assert.Contains(t, string(b), `"msg":"evaluated"`)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := runApp(t, "", "--log-level", "loud", "1")
	assert.Error(t, err)
}
