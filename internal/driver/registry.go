package driver

import (
	"fmt"

	"github.com/born-ml/gradspeed/internal/algo"
	"github.com/born-ml/gradspeed/internal/backend/codegen"
	"github.com/born-ml/gradspeed/internal/backend/double"
	"github.com/born-ml/gradspeed/internal/backend/forward"
	"github.com/born-ml/gradspeed/internal/backend/graph"
	"github.com/born-ml/gradspeed/internal/backend/jit"
	"github.com/born-ml/gradspeed/internal/backend/replay"
	"github.com/born-ml/gradspeed/internal/backend/reverse"
	"github.com/born-ml/gradspeed/internal/speed"
	"github.com/born-ml/gradspeed/internal/tape"
)

// Backend describes one way of evaluating an algorithm.
type Backend struct {
	Name        string
	Description string

	// Supports reports whether the backend can run the named algorithm.
	Supports func(algorithm string) bool

	// New constructs an unconfigured target for the named algorithm.
	New func(algorithm string) (speed.Target, error)
}

// Registry maps backend names to backends, preserving registration order.
type Registry struct {
	backends []Backend
	index    map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds b. Names must be unique.
func (r *Registry) Register(b Backend) error {
	if _, ok := r.index[b.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateBackend, b.Name)
	}
	if b.Supports == nil {
		b.Supports = algo.Known
	}
	r.index[b.Name] = len(r.backends)
	r.backends = append(r.backends, b)
	return nil
}

// Lookup returns the backend called name.
func (r *Registry) Lookup(name string) (Backend, bool) {
	i, ok := r.index[name]
	if !ok {
		return Backend{}, false
	}
	return r.backends[i], true
}

// Names returns the registered backend names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name
	}
	return names
}

// Backends returns the registered backends in registration order.
func (r *Registry) Backends() []Backend {
	return append([]Backend(nil), r.backends...)
}

// Construct builds the target selected by c. c must have been validated.
func (r *Registry) Construct(c Config) (speed.Target, error) {
	b, ok := r.Lookup(c.Backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return b.New(c.Algorithm)
}

// wrap returns a constructor that builds the algorithm over S and hands it
// to newTarget.
func wrap[S any, T speed.Target](newTarget func(algo.Algorithm[S]) T) func(string) (speed.Target, error) {
	return func(name string) (speed.Target, error) {
		a, err := algo.New[S](name)
		if err != nil {
			return nil, err
		}
		return newTarget(a), nil
	}
}

// Default returns a registry holding the built-in backends.
func Default() *Registry {
	r := NewRegistry()
	for _, b := range []Backend{
		{
			Name:        "double",
			Description: "plain float64 evaluation, no derivative",
			New:         wrap[float64](double.New),
		},
		{
			Name:        "forward",
			Description: "vector forward mode",
			New:         wrap[forward.Dual](forward.New),
		},
		{
			Name:        "reverse",
			Description: "eager reverse mode, records on every call",
			New:         wrap[tape.Var](reverse.New),
		},
		{
			Name:        "tape",
			Description: "reverse mode, records once and replays",
			New:         wrap[tape.Var](replay.New),
		},
		{
			Name:        "jit",
			Description: "recording compiled to Go closures",
			New:         wrap[tape.Var](jit.New),
		},
		{
			Name:        "codegen",
			Description: "recording translated to JavaScript",
			New:         wrap[tape.Var](codegen.New),
		},
		{
			Name:        "graph",
			Description: "hash-consed recording with dead code elimination",
			New:         wrap[tape.Var](graph.New),
		},
	} {
		if err := r.Register(b); err != nil {
			panic(err)
		}
	}
	return r
}
