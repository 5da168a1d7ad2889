package session

import (
	"fmt"
	"sync"
	"time"
)

// UrgentThreshold is the remaining-seconds boundary below which the display
// switches to its urgent styling.
const UrgentThreshold = 30

// Countdown is a one-shot cancellable timer: armed with a number of seconds,
// it ticks down once per second and invokes its expiry callback exactly once
// when it reaches zero. Stop is idempotent and guarantees no callback fires
// after it returns a teardown.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	interval  time.Duration
	stopped   bool
	done      chan struct{}
}

func NewCountdown(seconds int) *Countdown {
	return newCountdown(seconds, time.Second)
}

func newCountdown(seconds int, interval time.Duration) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		remaining: seconds,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start arms the countdown. onTick receives the remaining seconds after each
// decrement; onExpire runs exactly once, at zero, never before. Either
// callback may be nil.
func (c *Countdown) Start(onTick func(remaining int), onExpire func()) {
	go c.run(onTick, onExpire)
}

func (c *Countdown) run(onTick func(remaining int), onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.stopped {
				c.mu.Unlock()
				return
			}
			if c.remaining > 0 {
				c.remaining--
			}
			remaining := c.remaining
			expired := remaining == 0
			if expired {
				// Mark stopped before invoking the callback so a
				// concurrent Stop cannot race a second fire.
				c.stopped = true
				close(c.done)
			}
			c.mu.Unlock()

			if onTick != nil {
				onTick(remaining)
			}
			if expired {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop cancels the countdown. After Stop returns, onExpire will never fire.
// Stopping an already expired or stopped countdown is a no-op.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.done)
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Urgent reports whether the display should switch to its urgent styling.
func (c *Countdown) Urgent() bool {
	return c.Remaining() < UrgentThreshold
}

// FormatClock renders remaining seconds as m:ss for the question header.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
