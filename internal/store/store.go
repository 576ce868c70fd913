// Package store runs the external process that persists collected data.
// Its outcome never affects transfer or alert state.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrNoCommand is returned when no store command is configured.
var ErrNoCommand = errors.New("no store command configured")

// Runner executes the configured command once per Run.
type Runner struct {
	Command []string
	Dir     string
	Logger  logrus.FieldLogger
}

// NewRunner returns a Runner for command, e.g. []string{"python", "store_data.py"}.
func NewRunner(command []string) *Runner {
	return &Runner{Command: command, Logger: logrus.StandardLogger()}
}

// Run executes the command and waits for it. A non-zero exit is returned as
// an error that includes the command's combined output.
func (r *Runner) Run(ctx context.Context) error {
	if len(r.Command) == 0 || r.Command[0] == "" {
		return ErrNoCommand
	}
	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Dir = r.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	logger.WithField("command", strings.Join(r.Command, " ")).Info("running store command")
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg != "" {
			return fmt.Errorf("run %s: %w: %s", r.Command[0], err, msg)
		}
		return fmt.Errorf("run %s: %w", r.Command[0], err)
	}
	logger.WithField("output", strings.TrimSpace(out.String())).Debug("store command finished")
	return nil
}
