package chartspec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/chartgeom/pkg/chart"
)

// Gap is a [chart.Gap] that decodes from a number of pixels or a
// percentage string such as "10%".
type Gap chart.Gap

// ParseGap converts a decoded TOML or JSON value into a gap.
func ParseGap(v any) (Gap, error) {
	switch x := v.(type) {
	case nil:
		return Gap{}, nil
	case int64:
		return Gap{Value: float64(x)}, nil
	case int:
		return Gap{Value: float64(x)}, nil
	case float64:
		return Gap{Value: x}, nil
	case string:
		s := strings.TrimSpace(x)
		pct := strings.HasSuffix(s, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return Gap{}, fmt.Errorf("invalid gap %q", x)
		}
		return Gap{Value: f, Percent: pct}, nil
	}
	return Gap{}, fmt.Errorf("invalid gap %v", v)
}

// UnmarshalTOML implements toml.Unmarshaler.
func (g *Gap) UnmarshalTOML(v any) error {
	parsed, err := ParseGap(v)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Gap) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return g.UnmarshalTOML(v)
}

// MarshalJSON writes percentages as strings and pixels as numbers.
func (g Gap) MarshalJSON() ([]byte, error) {
	if g.Percent {
		return json.Marshal(g.String())
	}
	return json.Marshal(g.Value)
}

// String formats g the way it is written in spec files.
func (g Gap) String() string {
	s := strconv.FormatFloat(g.Value, 'f', -1, 64)
	if g.Percent {
		return s + "%"
	}
	return s
}
