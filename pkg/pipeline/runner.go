package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartgeom/pkg/buildinfo"
	"github.com/matzehuels/chartgeom/pkg/cache"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/chartspec"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/errors"
	"github.com/matzehuels/chartgeom/pkg/observability"
	"github.com/matzehuels/chartgeom/pkg/render/nodelink"
)

// Runner derives chart specs with caching.
//
// The Runner holds no per-call state. Multiple goroutines can share one
// Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	pipeline *derive.Pipeline[compose.Geometry]
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log output is discarded.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		pipeline: compose.NewPipeline(),
	}
}

// Pipeline returns the derivation pipeline used by the runner.
func (r *Runner) Pipeline() *derive.Pipeline[compose.Geometry] {
	return r.pipeline
}

// Derive resolves spec and returns its derived geometry, reading it from the
// cache when an entry for the same spec and build exists.
func (r *Runner) Derive(ctx context.Context, spec *chartspec.Spec, opts Options) (*Result, error) {
	in, specHash, err := r.prepare(spec)
	if err != nil {
		return nil, err
	}
	items := r.pipeline.Discover(in)
	result := &Result{
		Inputs:   in,
		Items:    items,
		SpecHash: specHash,
		Stats:    Stats{Items: len(items), Rows: len(in.Data)},
	}

	key := r.Keyer.GeometryKey(specHash, cache.GeometryKeyOpts{
		ItemTypes:   compose.ItemTypes,
		StackOffset: spec.StackOffset,
		Version:     buildinfo.CacheVersion(),
	})
	hooks := observability.Cache()

	if !opts.Refresh {
		var cached derive.Derived[compose.Geometry]
		err := cache.GetJSON(ctx, r.Cache, key, &cached)
		switch {
		case err == nil && len(cached.AllComposedData) == len(items):
			hooks.OnCacheHit(ctx, "geometry")
			r.Logger.Debug("geometry cache hit", "hash", specHash[:12])
			result.Derived = &cached
			result.CacheHit = true
			return result, nil
		case err != nil && !stderrors.Is(err, cache.ErrCacheMiss):
			r.Logger.Warn("geometry cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, "geometry")
	}

	start := time.Now()
	result.Derived = r.pipeline.Derive(in)
	result.Stats.DeriveTime = time.Since(start)
	r.Logger.Info("derived geometry",
		"items", len(items),
		"rows", len(in.Data),
		"duration", result.Stats.DeriveTime)

	size, err := cache.SetJSON(ctx, r.Cache, key, result.Derived, cache.TTLGeometry)
	if err != nil {
		r.Logger.Warn("geometry cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, "geometry", size)
	}
	return result, nil
}

// Topology renders the item, axis and stack structure of spec as DOT or SVG.
// The boolean result reports a cache hit. Only SVG output is cached since
// DOT generation is cheap.
func (r *Runner) Topology(ctx context.Context, spec *chartspec.Spec, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateGraphFormat(format); err != nil {
		return nil, false, err
	}
	in, specHash, err := r.prepare(spec)
	if err != nil {
		return nil, false, err
	}
	dot := nodelink.ToDOT(in, r.pipeline.Discover(in), nodelink.Options{Detailed: opts.Detailed})
	if format == FormatDOT {
		return []byte(dot), false, nil
	}

	key := r.Keyer.ArtifactKey(specHash, cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: opts.Detailed,
		Version:  buildinfo.CacheVersion(),
	})
	hooks := observability.Cache()
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("artifact cache read failed", "error", err)
		}
		if hit {
			hooks.OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, "artifact")
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render topology")
	}
	if err := r.Cache.Set(ctx, key, svg, cache.TTLArtifact); err != nil {
		r.Logger.Warn("artifact cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(svg))
	}
	return svg, false, nil
}

// prepare builds the inputs of spec and hashes its fingerprint.
func (r *Runner) prepare(spec *chartspec.Spec) (*chart.Inputs, string, error) {
	if spec == nil {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "no chart spec")
	}
	in, err := spec.Build()
	if err != nil {
		return nil, "", err
	}
	fp, err := spec.Fingerprint()
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "fingerprint spec")
	}
	return in, cache.Hash(fp), nil
}
