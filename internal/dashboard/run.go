// ABOUTME: Run wires the render loop, the key reader, and fetch completions together
// ABOUTME: The controller goroutine is the only writer of dashboard state

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/mauromedda/postdash/pkg/tui"
	"github.com/mauromedda/postdash/pkg/tui/input"
	"github.com/mauromedda/postdash/pkg/tui/key"
	"github.com/mauromedda/postdash/pkg/tui/terminal"
)

// Run draws the dashboard on term and processes input until Quit, ctx
// cancellation, or end of input. Any other error is fatal and returned for
// display on exit. The terminal must already be in raw mode.
func (c *Controller) Run(ctx context.Context, term terminal.Terminal) error {
	w, h, err := term.Size()
	if err != nil {
		return fmt.Errorf("reading terminal size: %w", err)
	}

	c.mu.Lock()
	c.ctx = ctx
	interval := c.opts.Interval
	c.mu.Unlock()

	screen := tui.NewScreen(term, w, h, c.Frame)
	screen.SetInterval(interval)
	term.OnResize(func(w, h int) { screen.SetSize(w, h) })

	_, _ = term.Write([]byte(tui.HideCursor))
	screen.Start()
	defer func() {
		screen.Stop()
		_, _ = term.Write([]byte(tui.ClearScreen + tui.MoveTo(1, 1, tui.ShowCursor)))
	}()

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	keys := make(chan key.Key)
	readErr := make(chan error, 1)
	go readKeys(readCtx, term, keys, readErr)

	log.Info().Int("width", w).Int("height", h).Dur("interval", interval).Msg("dashboard running")
	for {
		select {
		case <-ctx.Done():
			return nil
		case k := <-keys:
			if err := c.HandleKey(k); err != nil {
				log.Error().Err(err).Msg("input loop failed")
				return err
			}
			if c.Quitting() {
				return nil
			}
		case r := <-c.fetch.Results():
			c.Apply(r)
		case opts := <-c.optsCh:
			c.mu.Lock()
			c.applyOptionsLocked(opts)
			c.mu.Unlock()
			screen.SetInterval(opts.Interval)
			log.Info().Dur("interval", opts.Interval).Bool("borderless", opts.Borderless).Msg("display settings reloaded")
		case <-c.keysCh:
			c.mu.Lock()
			c.applyKeysLocked()
			c.mu.Unlock()
			log.Info().Msg("key bindings reloaded")
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				log.Info().Msg("input closed")
				return nil
			}
			log.Error().Err(err).Msg("reading input failed")
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// readKeys forwards every decoded keystroke until the read fails or ctx is
// cancelled. One read may carry several keys.
func readKeys(ctx context.Context, term terminal.Terminal, keys chan<- key.Key, errs chan<- error) {
	report := func(err error) {
		select {
		case errs <- err:
		default:
		}
	}
	defer terminal.RecoverGoroutine(report)

	buf := input.NewStdinBuffer(term, func(k key.Key) {
		select {
		case keys <- k:
		case <-ctx.Done():
		}
	})
	if err := buf.Start(ctx); err != nil && ctx.Err() == nil {
		report(err)
	}
}
