package watch

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRunner_Run(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	tests := []struct {
		name       string
		command    []string
		event      fsnotify.Event
		wantStdout string
		wantErr    string
	}{
		{
			name: "environment",
			command: []string{
				"sh", "-c", `printf '%s %s' "$DEBOUNCE_PATH" "$DEBOUNCE_OP"`,
			},
			event:      fsnotify.Event{Name: "main.go", Op: fsnotify.Write},
			wantStdout: "main.go WRITE",
		},
		{
			name: "no event",
			command: []string{
				"sh", "-c", `printf '[%s][%s]' "$DEBOUNCE_PATH" "$DEBOUNCE_OP"`,
			},
			wantStdout: "[][]",
		},
		{
			name:    "failing command",
			command: []string{"sh", "-c", "exit 3"},
			wantErr: "sh: exit status 3",
		},
		{
			name:    "empty command",
			wantErr: "empty command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			r := &CommandRunner{
				Command: tt.command,
				Dir:     t.TempDir(),
				Stdout:  &stdout,
				Log:     zerolog.Nop(),
			}

			err := r.Run(context.Background(), tt.event)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, stdout.String())
		})
	}
}
