// Package pipeline runs chart specs through derivation with a cross-process
// cache.
//
// The wrapper in [shell] keeps one derived state per chart in memory. This
// package serves the other entry points: a CLI invocation or a stateless API
// request that derives a spec from scratch. Both go through [Runner], so they
// share cache keys and produce identical results.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Derive(ctx, spec, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	for i, g := range result.Derived.AllComposedData {
//	    fmt.Println(result.Items[i].Label(), len(g.Rects))
//	}
//
// Topology diagrams of a spec are produced by [Runner.Topology].
//
// [shell]: github.com/matzehuels/chartgeom/pkg/shell
package pipeline

import (
	"time"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/errors"
)

// Output formats.
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatDOT   = "dot"
	FormatSVG   = "svg"
)

// ValidDeriveFormats is the set of formats derived geometry can be printed in.
var ValidDeriveFormats = map[string]bool{
	FormatJSON:  true,
	FormatTable: true,
}

// ValidGraphFormats is the set of formats a topology diagram can be rendered to.
var ValidGraphFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// Options configures a single runner call.
type Options struct {
	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Detailed adds data keys and sizing hints to topology labels.
	Detailed bool `json:"detailed,omitempty"`
}

// Result is the outcome of [Runner.Derive].
type Result struct {
	// Inputs are the resolved chart inputs. They are rebuilt on every call,
	// cache hit or not.
	Inputs *chart.Inputs `json:"-"`

	// Items are the discovered items, parallel to Derived.AllComposedData.
	Items []*chart.Item `json:"items"`

	Derived  *derive.Derived[compose.Geometry] `json:"derived"`
	SpecHash string                            `json:"spec_hash"`
	Stats    Stats                             `json:"stats"`
	CacheHit bool                              `json:"cache_hit"`
}

// Stats holds counters and timings of a derivation.
type Stats struct {
	Items      int           `json:"items"`
	Rows       int           `json:"rows"`
	DeriveTime time.Duration `json:"derive_time"`
}

// ValidateDeriveFormat checks that format can print derived geometry.
func ValidateDeriveFormat(format string) error {
	if !ValidDeriveFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be json or table)", format)
	}
	return nil
}

// ValidateGraphFormat checks that format can render a topology diagram.
func ValidateGraphFormat(format string) error {
	if !ValidGraphFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be dot or svg)", format)
	}
	return nil
}
