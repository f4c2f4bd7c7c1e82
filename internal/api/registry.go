package api

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/chartgeom/pkg/cache"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/errors"
	"github.com/matzehuels/chartgeom/pkg/shell"
)

// Chart is one hosted chart instance.
//
// The wrapper is not safe for concurrent use, so every access goes through
// the chart's mutex.
type Chart struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	fingerprint string
	wrapper     *shell.Wrapper[compose.Geometry]
}

// Snapshot is a consistent copy of a chart's state.
type Snapshot struct {
	ID          string                            `json:"id"`
	Items       []*chart.Item                     `json:"items"`
	Interaction chart.Interaction                 `json:"interaction"`
	Derived     *derive.Derived[compose.Geometry] `json:"derived"`
}

// Registry holds hosted charts keyed by a random id.
type Registry struct {
	mu       sync.RWMutex
	charts   map[string]*Chart
	pipeline *derive.Pipeline[compose.Geometry]
	logger   *log.Logger
}

// NewRegistry creates an empty registry whose charts derive through p.
func NewRegistry(p *derive.Pipeline[compose.Geometry], logger *log.Logger) *Registry {
	return &Registry{
		charts:   make(map[string]*Chart),
		pipeline: p,
		logger:   logger,
	}
}

// Create builds spec and hosts it under a new id.
func (r *Registry) Create(spec *chartspec.Spec) (Snapshot, error) {
	rows, fp, err := resolve(spec)
	if err != nil {
		return Snapshot{}, err
	}
	in, err := spec.BuildWithRows(rows)
	if err != nil {
		return Snapshot{}, err
	}

	c := &Chart{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		fingerprint: fp,
	}
	c.wrapper = shell.New(in, r.pipeline, shell.WithLogger(r.logger.With("chart", c.ID[:8])))

	r.mu.Lock()
	r.charts[c.ID] = c
	r.mu.Unlock()

	r.logger.Debug("chart created", "id", c.ID)
	return c.snapshot(r.pipeline), nil
}

// Get returns the chart with the given id.
func (r *Registry) Get(id string) (*Chart, error) {
	r.mu.RLock()
	c, ok := r.charts[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	return c, nil
}

// Snapshot returns the current state of the chart with the given id.
func (r *Registry) Snapshot(id string) (Snapshot, error) {
	c, err := r.Get(id)
	if err != nil {
		return Snapshot{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(r.pipeline), nil
}

// Interact applies the transient fields of st to the chart. Structural
// fields are rejected.
func (r *Registry) Interact(id string, st chartspec.Step) (shell.Update[compose.Geometry], Snapshot, error) {
	if st.Structural() {
		return shell.Update[compose.Geometry]{}, Snapshot{}, errors.New(errors.ErrCodeInvalidInput,
			"interaction updates accept only chart_x, chart_y, active_tooltip_index and tooltip_active")
	}
	c, err := r.Get(id)
	if err != nil {
		return shell.Update[compose.Geometry]{}, Snapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.wrapper.Inputs().Clone()
	st.ApplyInteraction(&next.Interaction)
	u := c.wrapper.Update(next)
	return u, c.snapshot(r.pipeline), nil
}

// Replace swaps the chart's spec. Interaction state carries over. A spec
// identical to the current one reuses the current inputs, so nothing is
// recomputed.
func (r *Registry) Replace(id string, spec *chartspec.Spec) (shell.Update[compose.Geometry], Snapshot, error) {
	c, err := r.Get(id)
	if err != nil {
		return shell.Update[compose.Geometry]{}, Snapshot{}, err
	}
	rows, fp, err := resolve(spec)
	if err != nil {
		return shell.Update[compose.Geometry]{}, Snapshot{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.wrapper.Inputs()
	var next *chart.Inputs
	if fp == c.fingerprint {
		next = cur.Clone()
	} else {
		next, err = spec.BuildWithRows(rows)
		if err != nil {
			return shell.Update[compose.Geometry]{}, Snapshot{}, err
		}
		next.Interaction = cur.Interaction
	}
	u := c.wrapper.Update(next)
	c.fingerprint = fp
	return u, c.snapshot(r.pipeline), nil
}

// Delete removes the chart with the given id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.charts[id]; !ok {
		return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	delete(r.charts, id)
	r.logger.Debug("chart deleted", "id", id)
	return nil
}

// Len returns the number of hosted charts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.charts)
}

// IDs returns the ids of all hosted charts in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.charts))
	for id := range r.charts {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// snapshot must be called with c.mu held.
func (c *Chart) snapshot(p *derive.Pipeline[compose.Geometry]) Snapshot {
	view := c.wrapper.View()
	return Snapshot{
		ID:          c.ID,
		Items:       p.Discover(view.Inputs),
		Interaction: view.Inputs.Interaction,
		Derived:     view.Derived,
	}
}

// resolve loads the rows of spec and fingerprints it. Specs that read
// from the filesystem are refused.
func resolve(spec *chartspec.Spec) ([]chart.Row, string, error) {
	if spec == nil {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "no chart spec")
	}
	if spec.DataFile != "" {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "data_file is not supported over HTTP; send rows inline in data")
	}
	if err := spec.Validate(); err != nil {
		return nil, "", err
	}
	rows, err := spec.Rows()
	if err != nil {
		return nil, "", err
	}
	fp, err := spec.Fingerprint()
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "fingerprint spec")
	}
	return rows, cache.Hash(fp), nil
}
