package cartesian

import (
	"strconv"
	"strings"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/scale"
)

// Value reads key from row as a number. Numeric strings are parsed; missing
// or non-numeric values report false.
func Value(row chart.Row, key string) (float64, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	if f, ok := scale.ToFloat(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	return 0, false
}

// PercentValue resolves g against total. Percent gaps are a share of total;
// pixel gaps are taken as is. The result never exceeds total.
func PercentValue(g chart.Gap, total float64) float64 {
	v := g.Value
	if g.Percent {
		v = total * g.Value / 100
	}
	if v > total {
		return total
	}
	return v
}
