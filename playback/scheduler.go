package playback

import (
	"sync"
	"time"
)

// Token cancels one scheduled callback. Cancel is idempotent.
type Token interface {
	Cancel()
}

// Scheduler runs fn every period until the returned Token is cancelled.
type Scheduler interface {
	Schedule(fn func(), period time.Duration) Token
}

// TickerScheduler fires callbacks from a time.Ticker in its own goroutine.
type TickerScheduler struct{}

// Schedule implements Scheduler.
func (TickerScheduler) Schedule(fn func(), period time.Duration) Token {
	t := &tickerToken{ticker: time.NewTicker(period), done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				fn()
			}
		}
	}()

	return t
}

type tickerToken struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *tickerToken) Cancel() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}

// ManualScheduler fires callbacks only when Tick is called. It is meant for
// tests and for driving a controller from an external event loop.
type ManualScheduler struct {
	mu     sync.Mutex
	tokens []*manualToken
}

type manualToken struct {
	fn        func()
	period    time.Duration
	cancelled bool
	owner     *ManualScheduler
}

func (t *manualToken) Cancel() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	t.cancelled = true
}

// Schedule implements Scheduler.
func (m *ManualScheduler) Schedule(fn func(), period time.Duration) Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualToken{fn: fn, period: period, owner: m}
	m.tokens = append(m.tokens, t)

	return t
}

// Tick fires every live callback once, in scheduling order, and reports
// how many fired.
func (m *ManualScheduler) Tick() int {
	m.mu.Lock()
	var live []func()
	kept := m.tokens[:0]
	for _, t := range m.tokens {
		if !t.cancelled {
			live = append(live, t.fn)
			kept = append(kept, t)
		}
	}
	m.tokens = kept
	m.mu.Unlock()

	for _, fn := range live {
		fn()
	}

	return len(live)
}

// Live reports how many tokens are not cancelled.
func (m *ManualScheduler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tokens {
		if !t.cancelled {
			n++
		}
	}

	return n
}

// Period returns the period of the most recent live token, or 0.
func (m *ManualScheduler) Period() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.tokens) - 1; i >= 0; i-- {
		if !m.tokens[i].cancelled {
			return m.tokens[i].period
		}
	}

	return 0
}

// Capture returns the callbacks of every token, cancelled or not, so tests
// can fire a callback after its token was cancelled.
func (m *ManualScheduler) Capture() []func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]func(), len(m.tokens))
	for i, t := range m.tokens {
		out[i] = t.fn
	}

	return out
}
