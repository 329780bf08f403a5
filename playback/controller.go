package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/katalvlaran/algotrace/internal/logging"
	"github.com/katalvlaran/algotrace/internal/metrics"
	"github.com/katalvlaran/algotrace/trace"
)

// DefaultSpeed is the autoplay period used when none is configured.
const DefaultSpeed = 500 * time.Millisecond

// Options configures a Controller.
type Options struct {
	Scheduler Scheduler
	Speed     time.Duration
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Derivers  []Deriver
	Observers []func(View)
}

// Option mutates Options.
type Option func(*Options)

// WithScheduler replaces the real-time TickerScheduler.
func WithScheduler(s Scheduler) Option { return func(o *Options) { o.Scheduler = s } }

// WithSpeed sets the initial autoplay period. Non-positive values are ignored.
func WithSpeed(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.Speed = d
		}
	}
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithMetrics records index and tick metrics.
func WithMetrics(m *metrics.Metrics) Option { return func(o *Options) { o.Metrics = m } }

// WithDeriver registers a derived-state accumulator.
func WithDeriver(d Deriver) Option { return func(o *Options) { o.Derivers = append(o.Derivers, d) } }

// WithObserver registers fn to receive a View after every change.
// Observers run outside the controller lock and may call back into it.
// Views arrive in the order the changes happened, never concurrently, though
// possibly on the goroutine of a later change.
func WithObserver(fn func(View)) Option {
	return func(o *Options) { o.Observers = append(o.Observers, fn) }
}

// DefaultOptions uses a TickerScheduler, DefaultSpeed and a no-op logger.
func DefaultOptions() Options {
	return Options{Scheduler: TickerScheduler{}, Speed: DefaultSpeed, Logger: logging.NewNop()}
}

// Controller is the playback state machine over one trace.
// All methods are safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	opts  Options
	id    string
	tr    trace.Trace[any]
	index int
	state State
	speed time.Duration

	token Token
	epoch uint64

	pending  []View
	draining bool
}

// New creates an Idle controller.
func New(opts ...Option) *Controller {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Scheduler == nil {
		o.Scheduler = TickerScheduler{}
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	id := uuid.NewString()
	o.Logger = o.Logger.With("session", id)

	return &Controller{opts: o, id: id, speed: o.Speed}
}

// Session is the controller's unique id, also attached to its log lines.
func (c *Controller) Session() string { return c.id }

// Load replaces the trace, cancels any timer, and moves to Ready at index
// 0. An empty trace is refused and the previous one is kept.
func (c *Controller) Load(t trace.Trace[any]) error {
	if t.Empty() {
		return ErrEmptyTrace
	}
	c.mu.Lock()
	c.stopLocked()
	c.tr = t
	c.index = 0
	c.state = StateReady
	c.replayLocked()
	c.opts.Logger.Info("trace loaded", "algorithm", t.Algorithm(), "steps", t.Len())
	c.queueLocked()
	c.mu.Unlock()
	c.flush()

	return nil
}

// Generate runs gen and loads its trace. If gen fails, the error is
// returned and the current trace, index and state are left untouched.
func (c *Controller) Generate(gen func() (trace.Trace[any], error)) error {
	t, err := gen()
	if err != nil {
		c.opts.Logger.Warn("generation rejected", "error", err)
		return errors.Wrap(err, "playback: generate")
	}

	return c.Load(t)
}

// Play starts autoplay from Ready or Paused. Other states are unchanged.
func (c *Controller) Play() {
	c.mu.Lock()
	if c.state != StateReady && c.state != StatePaused {
		c.mu.Unlock()
		return
	}
	c.state = StateRunning
	c.startLocked()
	c.opts.Logger.Debug("play", "index", c.index, "speed", c.speed)
	c.queueLocked()
	c.mu.Unlock()
	c.flush()
}

// Pause stops autoplay. Only Running is affected.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.state = StatePaused
	c.opts.Logger.Debug("pause", "index", c.index)
	c.queueLocked()
	c.mu.Unlock()
	c.flush()
}

// Next advances one step. At the last step it only marks Complete and
// cancels the timer.
func (c *Controller) Next() {
	c.mu.Lock()
	changed := c.nextLocked()
	if changed {
		c.queueLocked()
	}
	c.mu.Unlock()
	c.flush()
}

// Prev steps back one step; at index 0 it does nothing.
func (c *Controller) Prev() {
	c.mu.Lock()
	if c.state == StateIdle || c.index == 0 {
		c.mu.Unlock()
		return
	}
	c.seekLocked(c.index - 1)
	c.queueLocked()
	c.mu.Unlock()
	c.flush()
}

// GoToStep clamps k into [0, Len-1], moves there and rebuilds derived
// state by replaying steps 0..k.
func (c *Controller) GoToStep(k int) {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return
	}
	c.seekLocked(min(max(k, 0), c.tr.Len()-1))
	c.queueLocked()
	c.mu.Unlock()
	c.flush()
}

// Reset returns to Ready at index 0 with derived state rebuilt from step 0.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return
	}
	c.stopLocked()
	c.index = 0
	c.state = StateReady
	c.replayLocked()
	c.opts.Logger.Debug("reset")
	c.queueLocked()
	c.mu.Unlock()
	c.flush()
}

// SetSpeed changes the autoplay period, rescheduling if Running.
func (c *Controller) SetSpeed(d time.Duration) error {
	if d <= 0 {
		return errors.Wrapf(ErrInvalidSpeed, "%s", d)
	}
	c.mu.Lock()
	c.speed = d
	if c.state == StateRunning {
		c.stopLocked()
		c.startLocked()
	}
	c.queueLocked()
	c.mu.Unlock()
	c.flush()

	return nil
}

// Close cancels any live timer. The controller stays readable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	if c.state == StateRunning {
		c.state = StatePaused
	}
}

// State reports the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Index reports the current step index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len reports the number of steps of the loaded trace.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr.Len()
}

// Speed reports the autoplay period.
func (c *Controller) Speed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Current returns the step at the current index.
func (c *Controller) Current() (trace.Step[any], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr.At(c.index)
}

// Derived returns every Deriver's value in registration order.
func (c *Controller) Derived() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.derivedLocked()
}

// Snapshot returns a consistent View.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// tick is the scheduled callback for epoch.
func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if epoch != c.epoch || c.state != StateRunning {
		c.opts.Metrics.Stale()
		c.opts.Logger.Debug("stale tick dropped", "epoch", epoch, "current", c.epoch)
		c.mu.Unlock()
		return
	}
	c.opts.Metrics.Tick()
	changed := c.nextLocked()
	if changed {
		c.queueLocked()
	}
	c.mu.Unlock()
	c.flush()
}

func (c *Controller) nextLocked() bool {
	if c.state == StateIdle {
		return false
	}
	last := c.tr.Len() - 1
	if c.index >= last {
		if c.state == StateComplete {
			return false
		}
		c.stopLocked()
		c.state = StateComplete
		return true
	}
	c.index++
	step, _ := c.tr.At(c.index)
	for _, d := range c.opts.Derivers {
		d.Apply(step)
	}
	c.settleLocked()

	return true
}

// seekLocked moves to k and replays derived state.
func (c *Controller) seekLocked(k int) {
	c.index = k
	c.replayLocked()
	c.settleLocked()
}

// settleLocked fixes the state after the index moved.
func (c *Controller) settleLocked() {
	c.opts.Metrics.Index(c.index)
	switch {
	case c.index == c.tr.Len()-1:
		if c.state != StateComplete {
			c.stopLocked()
			c.state = StateComplete
			c.opts.Logger.Debug("complete", "steps", c.tr.Len())
		}
	case c.state == StateComplete, c.state == StateReady && c.index > 0:
		c.state = StatePaused
	}
}

func (c *Controller) replayLocked() {
	for _, d := range c.opts.Derivers {
		d.Reset()
	}
	for i := 0; i <= c.index; i++ {
		step, _ := c.tr.At(i)
		for _, d := range c.opts.Derivers {
			d.Apply(step)
		}
	}
	c.opts.Metrics.Index(c.index)
}

func (c *Controller) startLocked() {
	c.stopLocked()
	epoch := c.epoch
	c.token = c.opts.Scheduler.Schedule(func() { c.tick(epoch) }, c.speed)
}

// stopLocked cancels the live token and invalidates its epoch.
func (c *Controller) stopLocked() {
	if c.token != nil {
		c.token.Cancel()
		c.token = nil
	}
	c.epoch++
}

func (c *Controller) derivedLocked() []any {
	if len(c.opts.Derivers) == 0 {
		return nil
	}
	out := make([]any, len(c.opts.Derivers))
	for i, d := range c.opts.Derivers {
		out[i] = d.Value()
	}

	return out
}

func (c *Controller) viewLocked() View {
	step, ok := c.tr.At(c.index)

	return View{
		Session:   c.id,
		Algorithm: c.tr.Algorithm(),
		State:     c.state,
		Index:     c.index,
		Len:       c.tr.Len(),
		Speed:     c.speed,
		Step:      step,
		HasStep:   ok,
		Derived:   c.derivedLocked(),
	}
}

// queueLocked appends the current view for delivery by flush.
func (c *Controller) queueLocked() {
	if len(c.opts.Observers) == 0 {
		return
	}
	c.pending = append(c.pending, c.viewLocked())
}

// flush delivers queued views in the order they were taken. One caller
// drains at a time; views queued meanwhile, including those from observers
// calling back into the controller, are delivered by that caller.
func (c *Controller) flush() {
	c.mu.Lock()
	if c.draining {
		c.mu.Unlock()
		return
	}
	c.draining = true
	for len(c.pending) > 0 {
		v := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()
		for _, fn := range c.opts.Observers {
			fn(v)
		}
		c.mu.Lock()
	}
	c.pending = nil
	c.draining = false
	c.mu.Unlock()
}
