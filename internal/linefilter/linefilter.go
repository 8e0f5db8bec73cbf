// Package linefilter debounces lines of text: of each burst of lines, only the
// ones selected by the debounce mode are written to the output.
package linefilter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/romdo/go-debounce/v2"
	"github.com/romdo/go-debounce/v2/internal/config"
)

// Filter writes debounced lines to an output writer.
type Filter struct {
	d        *debounce.Debouncer[io.Writer, string]
	out      io.Writer
	trailing bool
	log      zerolog.Logger

	mux sync.Mutex
	err error
}

// New returns a Filter writing to out. Extra options are applied after the
// ones derived from cfg.
func New(
	out io.Writer,
	cfg config.DebounceConfig,
	log zerolog.Logger,
	opts ...debounce.Option,
) (*Filter, error) {
	f := &Filter{
		out:      &lockedWriter{w: out},
		trailing: cfg.TrailingEdge(),
		log:      log,
	}

	opts = append(cfg.Options(), append([]debounce.Option{
		debounce.WithLogger(log),
		debounce.OnError(f.setErr),
	}, opts...)...)

	d, err := debounce.New(cfg.Wait, writeLines, opts...)
	if err != nil {
		return nil, err
	}
	f.d = d

	return f, nil
}

// Line records a line. It returns an error if writing a previous or the
// current line failed.
func (f *Filter) Line(s string) error {
	if err := f.d.Invoke(f.out, s); err != nil {
		return err
	}

	return f.Err()
}

// Close ends the current burst. Pending lines are written when the filter
// invokes on the trailing edge, and discarded otherwise. Close returns once
// every write started by the debouncer has finished.
func (f *Filter) Close() error {
	if !f.trailing {
		f.stop()

		return f.Err()
	}

	err := f.d.Flush()
	f.d.Wait()
	if err != nil {
		return err
	}

	return f.Err()
}

// stop discards pending lines and waits for in-flight writes.
func (f *Filter) stop() {
	f.d.Cancel()
	f.d.Wait()
}

// Err returns the first error encountered writing a trailing edge line.
func (f *Filter) Err() error {
	f.mux.Lock()
	defer f.mux.Unlock()

	return f.err
}

func (f *Filter) setErr(err error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	f.log.Error().Err(err).Msg("failed to write line")
	if f.err == nil {
		f.err = err
	}
}

// Run feeds every line of in to f until in is exhausted or ctx is done, and
// then closes f.
func Run(ctx context.Context, in io.Reader, f *Filter) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				scanErr <- ctx.Err()

				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			f.stop()

			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					f.stop()

					return fmt.Errorf("failed to read input: %w", err)
				}

				return f.Close()
			}

			if err := f.Line(line); err != nil {
				f.stop()

				return err
			}
		}
	}
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// lockedWriter serializes writes, as leading and trailing edge invocations may
// happen on different goroutines.
type lockedWriter struct {
	mux sync.Mutex
	w   io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mux.Lock()
	defer lw.mux.Unlock()

	return lw.w.Write(p)
}
