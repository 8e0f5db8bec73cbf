// Package logging sets up the zerolog logger used by the debounce command.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a console logger writing to w at the given level. Setting
// DEBOUNCE_VERBOSE in the environment forces debug level. Timestamps show the
// time elapsed since Setup was called.
func Setup(w io.Writer, level string, noColor bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if os.Getenv("DEBOUNCE_VERBOSE") != "" {
		lvl = zerolog.DebugLevel
	}

	if os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	startTime := time.Now()
	writer := zerolog.ConsoleWriter{
		Out:     w,
		NoColor: noColor,
		FormatTimestamp: func(any) string {
			return elapsed(time.Since(startTime))
		},
	}

	logger := zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
	logger.Debug().Str("level", lvl.String()).Msg("logging configured")

	return logger, nil
}

// elapsed formats d as [+hh:mm:ss.mmm].
func elapsed(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("[+%02d:%02d:%02d.%03d]", hours, minutes, seconds, millis)
}
