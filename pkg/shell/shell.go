// Package shell hosts one chart's derived geometry across input updates.
//
// A [Wrapper] owns a single derived-state slot. Each [Wrapper.Update] runs
// the recompute check, re-derives when it fires, runs the render check, and
// then stores the new inputs. Transient interaction changes keep the same
// derived state, so hosts can compare it by pointer.
//
// A Wrapper is not safe for concurrent use.
package shell

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/gate"
	"github.com/matzehuels/chartgeom/pkg/observability"
)

// View is what a host renders: the current inputs together with the derived
// state computed from them.
type View[G any] struct {
	Inputs  *chart.Inputs      `json:"-"`
	Derived *derive.Derived[G] `json:"derived"`
}

// Update is the result of [Wrapper.Update].
type Update[G any] struct {
	View       View[G] `json:"view"`
	Recomputed bool    `json:"recomputed"`
	Render     bool    `json:"render"`
}

// Decision returns the gate outcome of u.
func (u Update[G]) Decision() gate.Decision {
	return gate.Decision{Recompute: u.Recomputed, Render: u.Render}
}

// Renderer is called with the view whenever the host must repaint.
type Renderer[G any] func(View[G])

// Option configures a [Wrapper].
type Option func(*config)

type config struct {
	logger   *log.Logger
	hooks    observability.DeriveHooks
	renderer any
}

// WithLogger sets the logger used for per-update debug lines.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithHooks overrides the globally registered derive hooks.
func WithHooks(h observability.DeriveHooks) Option {
	return func(c *config) { c.hooks = h }
}

// WithRenderer sets the callback invoked with the initial view and after
// every update whose render check passes. A renderer for a different
// geometry type than the wrapper's is ignored with a warning.
func WithRenderer[G any](r Renderer[G]) Option {
	return func(c *config) { c.renderer = r }
}

// Wrapper holds the inputs and derived state of one chart instance.
type Wrapper[G any] struct {
	pipeline *derive.Pipeline[G]
	inputs   *chart.Inputs
	derived  *derive.Derived[G]
	render   Renderer[G]
	logger   *log.Logger
	hooks    observability.DeriveHooks
}

// New creates a wrapper and derives its initial state from in.
func New[G any](in *chart.Inputs, p *derive.Pipeline[G], opts ...Option) *Wrapper[G] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.hooks == nil {
		cfg.hooks = observability.Derive()
	}

	w := &Wrapper[G]{
		pipeline: p,
		inputs:   in,
		logger:   cfg.logger,
		hooks:    cfg.hooks,
	}
	if cfg.renderer != nil {
		r, ok := cfg.renderer.(Renderer[G])
		if !ok {
			w.logger.Warn("renderer ignored: geometry type mismatch",
				"renderer", fmt.Sprintf("%T", cfg.renderer),
				"want", fmt.Sprintf("%T", w.render))
		}
		w.render = r
	}
	w.derived = w.derive(in)
	if w.render != nil {
		w.render(w.View())
	}
	return w
}

// Update moves the wrapper to next. The derived state is replaced only when
// next differs from the current inputs in something that affects geometry.
func (w *Wrapper[G]) Update(next *chart.Inputs) Update[G] {
	prev, prevDerived := w.inputs, w.derived

	decision, derived := gate.Evaluate(prev, next, prevDerived, w.derive)
	w.derived = derived
	w.inputs = next

	w.hooks.OnDecision(decision.Recompute, decision.Render)
	w.logger.Debug("chart update", "recompute", decision.Recompute, "render", decision.Render)

	view := w.View()
	if decision.Render && w.render != nil {
		w.render(view)
	}
	return Update[G]{View: view, Recomputed: decision.Recompute, Render: decision.Render}
}

// View returns the current inputs and derived state.
func (w *Wrapper[G]) View() View[G] {
	return View[G]{Inputs: w.inputs, Derived: w.derived}
}

// Inputs returns the current inputs.
func (w *Wrapper[G]) Inputs() *chart.Inputs { return w.inputs }

// Derived returns the current derived state.
func (w *Wrapper[G]) Derived() *derive.Derived[G] { return w.derived }

func (w *Wrapper[G]) derive(in *chart.Inputs) *derive.Derived[G] {
	found := w.pipeline.Discover(in)
	items := len(found)
	w.hooks.OnDeriveStart(items)
	start := time.Now()

	d := w.pipeline.DeriveItems(in, found)

	elapsed := time.Since(start)
	w.hooks.OnDeriveComplete(items, elapsed)
	w.logger.Debug("derived geometry", "items", items, "elapsed", elapsed)
	return d
}
