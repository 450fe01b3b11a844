// Package clipboard copies generated snippets to the system clipboard and
// tracks the short-lived "copied" indicator shown after a copy.
package clipboard

import (
	"context"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/logging"
)

// DefaultResetDelay is how long the copied indicator stays on.
const DefaultResetDelay = 2000 * time.Millisecond

// WriteFunc writes text to a clipboard.
type WriteFunc func(text string) error

// SystemWrite writes to the OS clipboard.
func SystemWrite(text string) error {
	return clipboard.WriteAll(text)
}

// Indicator is the copied flag. Every Mark schedules its own revert and
// no revert is ever cancelled, so overlapping copies clear the flag when
// the earliest timer fires.
type Indicator struct {
	mu       sync.Mutex
	copied   bool
	delay    time.Duration
	after    func(time.Duration, func())
	onChange func(bool)
}

// NewIndicator creates an indicator that reverts after delay. A
// non-positive delay uses DefaultResetDelay.
func NewIndicator(delay time.Duration) *Indicator {
	if delay <= 0 {
		delay = DefaultResetDelay
	}
	return &Indicator{
		delay: delay,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// OnChange registers a callback run after every flip of the flag.
func (i *Indicator) OnChange(fn func(copied bool)) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.onChange = fn
}

// Delay returns the revert delay.
func (i *Indicator) Delay() time.Duration {
	return i.delay
}

// Copied reports the current flag.
func (i *Indicator) Copied() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.copied
}

// Mark turns the flag on and schedules it off.
func (i *Indicator) Mark() {
	i.set(true)
	i.after(i.delay, func() { i.set(false) })
}

func (i *Indicator) set(v bool) {
	i.mu.Lock()
	i.copied = v
	fn := i.onChange
	i.mu.Unlock()

	if fn != nil {
		fn(v)
	}
}

// Copier writes snippets to the clipboard and drives an Indicator.
type Copier struct {
	write     WriteFunc
	indicator *Indicator
	logger    logging.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithWriter replaces the clipboard writer.
func WithWriter(w WriteFunc) Option {
	return func(c *Copier) {
		c.write = w
	}
}

// WithLogger sets the logger used for failed writes.
func WithLogger(l logging.Logger) Option {
	return func(c *Copier) {
		c.logger = l
	}
}

// NewCopier creates a copier driving indicator.
func NewCopier(indicator *Indicator, opts ...Option) *Copier {
	c := &Copier{
		write:     SystemWrite,
		indicator: indicator,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.indicator == nil {
		c.indicator = NewIndicator(DefaultResetDelay)
	}
	return c
}

// Indicator returns the copied indicator.
func (c *Copier) Indicator() *Indicator {
	return c.indicator
}

// Copy starts writing text and flips the indicator right away. The write
// result arrives on the returned channel; a failure is logged and does not
// affect the indicator.
func (c *Copier) Copy(ctx context.Context, text string) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)
		if err := c.write(text); err != nil {
			ferr := errors.NewIOError(errors.ErrCodeClipboard, "failed to copy to clipboard", err)
			c.logger.Warn(ctx, ferr, "Clipboard write failed", "bytes", len(text))
			done <- ferr
			return
		}
		c.logger.Debug(ctx, "Snippet copied", "bytes", len(text))
	}()

	c.indicator.Mark()
	return done
}
