package store

import (
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunWithoutCommand(t *testing.T) {
	assert.ErrorIs(t, NewRunner(nil).Run(context.Background()), ErrNoCommand)
	assert.ErrorIs(t, NewRunner([]string{""}).Run(context.Background()), ErrNoCommand)
}

func TestRunSuccess(t *testing.T) {
	requireShell(t)
	logger, hook := test.NewNullLogger()
	r := &Runner{Command: []string{"sh", "-c", "echo stored"}, Logger: logger}
	require.NoError(t, r.Run(context.Background()))
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "running store command", hook.AllEntries()[0].Message)
}

func TestRunNonZeroExit(t *testing.T) {
	requireShell(t)
	r := &Runner{Command: []string{"sh", "-c", "echo disk full >&2; exit 3"}}
	err := r.Run(context.Background())
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "disk full")
}

func TestRunMissingBinary(t *testing.T) {
	r := NewRunner([]string{"definitely-not-a-store-binary-xyz"})
	err := r.Run(context.Background())
	assert.ErrorIs(t, err, exec.ErrNotFound)
}
