package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	restore := SetOutput(&stdout, &stderr)

	prevNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		restore()
		color.NoColor = prevNoColor
	})
	return &stdout, &stderr
}

func TestStep(t *testing.T) {
	stdout, stderr := capture(t)

	Step("Create temp workspace...\n")

	assert.Equal(t, "[scaffold] Create temp workspace...\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestSuccessAndWarning(t *testing.T) {
	stdout, _ := capture(t)

	Success("done\n")
	Success("✓ already marked\n")
	Warning("careful\n")

	assert.Equal(t, "✓ done\n✓ already marked\n⚠️  careful\n", stdout.String())
}

func TestFailure(t *testing.T) {
	t.Run("prints prefixed error to stderr", func(t *testing.T) {
		stdout, stderr := capture(t)

		err := Failure(errors.New("npm exited with status 1"), nil)
		require.Error(t, err)
		assert.Equal(t, "[scaffold] failed", err.Error())

		assert.Empty(t, stdout.String())
		assert.Equal(t, "[scaffold] Failed: npm exited with status 1\n", stderr.String())
	})

	t.Run("prints single suggestion", func(t *testing.T) {
		_, stderr := capture(t)

		Failure(errors.New("boom"), []string{"Try this fix"})
		assert.Contains(t, stderr.String(), "\nTry this fix\n")
	})

	t.Run("numbers multiple suggestions", func(t *testing.T) {
		_, stderr := capture(t)

		Failure(errors.New("boom"), []string{"First option", "Second option"})
		assert.Contains(t, stderr.String(), "Either:\n  1. First option\n  2. Second option\n")
	})
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		_, stderr := capture(t)

		err := Error("Invalid configuration", "version must be 1.0", []string{})
		require.Error(t, err)
		require.Equal(t, "Invalid configuration", err.Error())
		assert.Equal(t, "[scaffold] Invalid configuration\n\nversion must be 1.0\n", stderr.String())
	})
}
