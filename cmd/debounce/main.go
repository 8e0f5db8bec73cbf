// Command debounce debounces lines of input or file system changes.
//
// Usage:
//
//	tail -f app.log | debounce lines --wait 1s
//	debounce watch src -- make build
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/romdo/go-debounce/v2/internal/config"
	"github.com/romdo/go-debounce/v2/internal/logging"
)

// app carries state shared between commands once flags are parsed.
type app struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "debounce",
		Short: "Debounce lines of input or file system changes",
		Long: `debounce collapses bursts of events into a single action, once
the events have stopped for the configured wait duration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "path to YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.DurationP("wait", "w", 0, "quiet period before acting (default 250ms)")
	flags.Duration("max-wait", 0, "maximum time a burst may delay acting")
	flags.Bool("leading", false, "act on the first event of a burst")
	flags.Bool("trailing", false, "act after a burst (default unless --leading)")

	cmd.AddCommand(newLinesCmd(a), newWatchCmd(a))

	return cmd
}

// setup loads the config file, applies flags given on the command line, and
// creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("wait") {
		cfg.Debounce.Wait, _ = flags.GetDuration("wait")
	}
	if flags.Changed("max-wait") {
		cfg.Debounce.MaxWait, _ = flags.GetDuration("max-wait")
	}
	if flags.Changed("leading") {
		cfg.Debounce.Leading, _ = flags.GetBool("leading")
	}
	if flags.Changed("trailing") {
		cfg.Debounce.Trailing, _ = flags.GetBool("trailing")
	}
	if a.verbose {
		cfg.Logging.Level = zerolog.LevelDebugValue
	}

	if err := cfg.Debounce.Validate(); err != nil {
		return err
	}

	log, err := logging.Setup(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.NoColor)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log

	a.log.Debug().
		Dur("wait", cfg.Debounce.Wait).
		Dur("max_wait", cfg.Debounce.MaxWait).
		Bool("leading", cfg.Debounce.Leading).
		Bool("trailing", cfg.Debounce.TrailingEdge()).
		Msg("configuration loaded")

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
