// Package spinning provides a spinning symbol to display while the AI is thinking, and the
// handling of interruptions that restores the terminal.
package spinning

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

// Spinning displays a spinning symbol until Done is called.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeMoon  = []rune("🌑🌒🌓🌔🌕🌖🌗🌘")
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else before calling New.
	Theme = ThemeClock

	// Output where the spinning symbol is written.
	Output io.Writer = os.Stdout

	// Period between symbol changes.
	Period = 250 * time.Millisecond
)

// SafeInterrupt will capture SigInt (Ctrl+C) and SigTerm and call the provided onInterrupt.
// If the program hasn't exited after gracePeriod, it will call Reset to reset the terminal
// and exit.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutting down %s period expired, exiting.", gracePeriod)
	}()
}

// Reset terminal: make cursor visible, restore default terminal colors.
func Reset() {
	_, _ = fmt.Fprint(Output, "\033[?25h\033[39;49;0m\n")
}

// New starts a spinning display, after the message, that runs on a separate goroutine.
// It stops when Spinning.Done is called or the context is cancelled.
func New(ctx context.Context, message string) *Spinning {
	s := &Spinning{}
	ctx, s.cancel = context.WithCancel(ctx)
	theme := Theme
	if len(theme) == 0 {
		theme = ThemeAscii
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(Period)
		defer ticker.Stop()
		_, _ = fmt.Fprint(Output, "\033[?25l")       // Hide cursor.
		defer fmt.Fprint(Output, "\033[?25h\r\033[K") // Restore cursor and clear the line.

		for idx := 0; ; idx = (idx + 1) % len(theme) {
			_, _ = fmt.Fprintf(Output, "\r%s %c ", message, theme[idx])
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinning and waits for the display to be cleared.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}
