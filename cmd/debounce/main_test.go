package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romdo/go-debounce/v2/internal/config"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestLinesCmd(t *testing.T) {
	input := "one\ntwo\nthree\n"

	tests := []struct {
		name    string
		args    []string
		config  string
		want    string
		wantErr string
	}{
		{
			name: "trailing",
			args: []string{"lines", "--wait", "1h"},
			want: "three\n",
		},
		{
			name: "leading",
			args: []string{"lines", "--wait", "1h", "--leading"},
			want: "one\n",
		},
		{
			name: "leading and trailing",
			args: []string{"lines", "-w", "1h", "--leading", "--trailing"},
			want: "one\nthree\n",
		},
		{
			name:   "config file",
			args:   []string{"lines"},
			config: "debounce:\n  wait: 1h\n  leading: true\n",
			want:   "one\n",
		},
		{
			name:   "flags override config file",
			args:   []string{"lines", "--leading=false"},
			config: "debounce:\n  wait: 1h\n  leading: true\n",
			want:   "three\n",
		},
		{
			name:    "negative wait",
			args:    []string{"lines", "--wait", "-1s"},
			wantErr: config.ErrNegativeWait.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.config != "" {
				path := filepath.Join(t.TempDir(), "debounce.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))
				args = append(args, "--config", path)
			}

			got, err := execute(t, input, args...)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchCmd_noCommand(t *testing.T) {
	_, err := execute(t, "", "watch", t.TempDir())

	assert.ErrorIs(t, err, config.ErrNoCommand)
}
