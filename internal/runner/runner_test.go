package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
}

func TestExecRunner_ExitCode(t *testing.T) {
	skipOnWindows(t)

	tests := []struct {
		name       string
		args       []string
		expectCode int
	}{
		{"exit 0", []string{"-c", "exit 0"}, 0},
		{"exit 1", []string{"-c", "exit 1"}, 1},
		{"exit 42", []string{"-c", "exit 42"}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := NewExecRunner().Run(context.Background(), "sh", tt.args, RunOpts{})
			require.NoError(t, err)
			assert.Equal(t, tt.expectCode, code)
		})
	}
}

func TestExecRunner_StreamsOutputAndUsesDir(t *testing.T) {
	skipOnWindows(t)

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code, err := NewExecRunner().Run(context.Background(), "sh",
		[]string{"-c", "echo out; echo err >&2; touch marker"},
		RunOpts{Dir: dir, Stdout: &stdout, Stderr: &stderr})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
	_, err = os.Stat(filepath.Join(dir, "marker"))
	assert.NoError(t, err)
}

func TestExecRunner_CommandNotFound(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), "young-ng-no-such-binary", nil, RunOpts{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommandNotFound))
	assert.Contains(t, err.Error(), "young-ng-no-such-binary")
}

func TestCheck(t *testing.T) {
	skipOnWindows(t)
	r := NewExecRunner()

	require.NoError(t, Check(context.Background(), r, "sh", []string{"-c", "exit 0"}, RunOpts{}))

	err := Check(context.Background(), r, "sh", []string{"-c", "exit 3"}, RunOpts{})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "sh -c exit 3 exited with status 3", exitErr.Error())
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "npm", CommandLine("npm", nil))
	assert.Equal(t, "npm i -D eslint@^9", CommandLine("npm", []string{"i", "-D", "eslint@^9"}))
}
