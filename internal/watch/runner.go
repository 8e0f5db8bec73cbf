package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

var ErrEmptyCommand = errors.New("empty command")

// CommandRunner is a Runner which executes an external command. The changed
// path and operation are exposed to the command as DEBOUNCE_PATH and
// DEBOUNCE_OP environment variables.
type CommandRunner struct {
	Command []string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
	Log     zerolog.Logger
}

var _ Runner = (*CommandRunner)(nil)

// Run implements Runner. The command is killed if ctx is done before it exits.
func (r *CommandRunner) Run(ctx context.Context, event fsnotify.Event) error {
	if len(r.Command) == 0 {
		return ErrEmptyCommand
	}

	cmd := exec.CommandContext(ctx, r.Command[0], r.Command[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = append(os.Environ(),
		"DEBOUNCE_PATH="+event.Name,
		"DEBOUNCE_OP="+opString(event.Op),
	)

	r.Log.Debug().Strs("command", r.Command).Msg("starting command")

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", r.Command[0], err)
	}

	return nil
}

func opString(op fsnotify.Op) string {
	if op == 0 {
		return ""
	}

	return op.String()
}
