package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/romdo/go-debounce/v2/internal/linefilter"
)

func newLinesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lines",
		Short: "Debounce lines read from stdin",
		Long: `Reads lines from stdin and writes only the lines selected by the
debounce mode to stdout. With the default trailing mode, the last line of each
burst is written once the input has been quiet for the wait duration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := linefilter.New(cmd.OutOrStdout(), a.cfg.Debounce, a.log)
			if err != nil {
				return err
			}

			err = linefilter.Run(cmd.Context(), cmd.InOrStdin(), f)
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}
}
