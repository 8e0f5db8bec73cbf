package main

import (
	"github.com/spf13/cobra"

	"github.com/romdo/go-debounce/v2/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var runOnStart bool
	var ignore []string

	cmd := &cobra.Command{
		Use:   "watch [path...] -- command [arg...]",
		Short: "Run a command when files change",
		Long: `Watches the given paths recursively, and runs the command once
changes have stopped for the wait duration. The last changed path and its
operation are passed to the command in DEBOUNCE_PATH and DEBOUNCE_OP.
Without "--", all arguments are paths and the command comes from the config
file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Watch

			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				if dash > 0 {
					cfg.Paths = args[:dash]
				}
				cfg.Command = args[dash:]
			} else if len(args) > 0 {
				cfg.Paths = args
			}
			if cmd.Flags().Changed("run-on-start") {
				cfg.RunOnStart = runOnStart
			}
			cfg.Ignore = append(cfg.Ignore, ignore...)

			if err := cfg.Validate(); err != nil {
				return err
			}

			runner := &watch.CommandRunner{
				Command: cfg.Command,
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
				Log:     a.log,
			}

			w, err := watch.New(cfg, a.cfg.Debounce, runner, a.log)
			if err != nil {
				return err
			}

			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "run the command once at startup")
	cmd.Flags().StringSliceVarP(&ignore, "ignore", "i", nil, "glob of paths to ignore (repeatable)")

	return cmd
}
