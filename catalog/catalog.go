package catalog

import (
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/algotrace/internal/logging"
	"github.com/katalvlaran/algotrace/internal/metrics"
	"github.com/katalvlaran/algotrace/trace"
)

var (
	// ErrUnknownAlgorithm indicates a name with no registered generator.
	ErrUnknownAlgorithm = errors.New("catalog: unknown algorithm")

	// ErrDuplicateAlgorithm indicates a second registration under one name.
	ErrDuplicateAlgorithm = errors.New("catalog: algorithm already registered")

	// ErrInvalidParams is wrapped by every rejected parameter set.
	ErrInvalidParams = errors.New("catalog: invalid parameters")
)

// Generator runs one algorithm over decoded params.
type Generator func(params map[string]any) (trace.Trace[any], error)

// Entry describes one registered algorithm.
type Entry struct {
	Name    string
	Family  string
	Summary string

	// Defaults is the params struct used when a key is absent.
	Defaults any

	Generate Generator
}

// Options configures a Registry.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the logger used for generation events.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithMetrics records generated and rejected traces on m.
func WithMetrics(m *metrics.Metrics) Option { return func(o *Options) { o.Metrics = m } }

// DefaultOptions returns a silent registry configuration.
func DefaultOptions() Options {
	return Options{Logger: logging.NewNop()}
}

// Registry is a name-keyed set of generators. It is not safe for concurrent
// registration; Generate may be called concurrently once registration ends.
type Registry struct {
	opts    Options
	entries map[string]Entry
}

// New returns a Registry holding every built-in algorithm.
func New(opts ...Option) *Registry {
	r := NewEmpty(opts...)
	for _, e := range Builtins() {
		if err := r.Register(e); err != nil {
			panic(errors.NewAssertionErrorWithWrappedErrf(err, "catalog: built-in %q", e.Name))
		}
	}

	return r
}

// NewEmpty returns a Registry with no entries.
func NewEmpty(opts ...Option) *Registry {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}

	return &Registry{opts: o, entries: map[string]Entry{}}
}

// Register adds e.
//
// Error Conditions:
//   - ErrDuplicateAlgorithm : e.Name is already registered.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Generate == nil {
		return errors.AssertionFailedf("catalog: entry needs a name and a generator")
	}
	if _, ok := r.entries[e.Name]; ok {
		return errors.Wrapf(ErrDuplicateAlgorithm, "%q", e.Name)
	}
	r.entries[e.Name] = e

	return nil
}

// Lookup returns the entry for name.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}

	return e, nil
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Entries returns every entry ordered by family, then name.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// Generate runs the named algorithm with params. Absent keys take the
// entry's defaults; unknown keys are rejected.
func (r *Registry) Generate(name string, params map[string]any) (trace.Trace[any], error) {
	e, err := r.Lookup(name)
	if err != nil {
		return trace.Trace[any]{}, err
	}
	tr, err := e.Generate(params)
	if err != nil {
		r.opts.Metrics.Rejected(name)
		r.opts.Logger.Warn("trace rejected", "algorithm", name, "error", err)
		return trace.Trace[any]{}, err
	}
	r.opts.Metrics.Generated(name, tr.Len())
	r.opts.Logger.Info("trace generated", "algorithm", name, "steps", tr.Len())

	return tr, nil
}

// Generator binds name and params into a thunk for playback.Controller.Generate.
func (r *Registry) Generator(name string, params map[string]any) func() (trace.Trace[any], error) {
	return func() (trace.Trace[any], error) { return r.Generate(name, params) }
}
