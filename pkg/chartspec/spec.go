package chartspec

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/errors"
	"github.com/matzehuels/chartgeom/pkg/io"
)

// Defaults applied by [Spec.Build] to unset fields.
const (
	DefaultWidth     = 600.0
	DefaultHeight    = 400.0
	DefaultTickCount = 5
	DefaultAxisID    = "0"
)

// Format names a spec encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Spec is a chart definition as written in a spec file.
type Spec struct {
	Layout         string       `toml:"layout" json:"layout,omitempty"`
	Width          float64      `toml:"width" json:"width,omitempty"`
	Height         float64      `toml:"height" json:"height,omitempty"`
	Margin         chart.Margin `toml:"margin" json:"margin"`
	BarSize        float64      `toml:"bar_size" json:"bar_size,omitempty"`
	BarGap         Gap          `toml:"bar_gap" json:"bar_gap"`
	BarCategoryGap Gap          `toml:"bar_category_gap" json:"bar_category_gap"`
	MaxBarSize     float64      `toml:"max_bar_size" json:"max_bar_size,omitempty"`
	StackOffset    string       `toml:"stack_offset" json:"stack_offset,omitempty"`

	XAxes []AxisSpec `toml:"x_axis" json:"x_axis,omitempty"`
	YAxes []AxisSpec `toml:"y_axis" json:"y_axis,omitempty"`
	Items []ItemSpec `toml:"item" json:"item,omitempty"`

	Data     []map[string]any `toml:"data" json:"data,omitempty"`
	DataFile string           `toml:"data_file" json:"data_file,omitempty"`
	Sheet    string           `toml:"sheet" json:"sheet,omitempty"`

	// dir resolves DataFile. It is the directory of the loaded file.
	dir string
}

// AxisSpec defines one axis.
type AxisSpec struct {
	ID      string `toml:"id" json:"id,omitempty"`
	Type    string `toml:"type" json:"type"`
	DataKey string `toml:"data_key" json:"data_key,omitempty"`

	// Domain fixes a number axis' extent as [min, max]. When empty the
	// extent is taken from the data.
	Domain []float64 `toml:"domain" json:"domain,omitempty"`

	// Categories fixes a category axis' values. When empty they are the
	// distinct values of DataKey in row order, or the row indices.
	Categories []any `toml:"categories" json:"categories,omitempty"`

	Ticks        []any   `toml:"ticks" json:"ticks,omitempty"`
	TickCount    int     `toml:"tick_count" json:"tick_count,omitempty"`
	PaddingInner float64 `toml:"padding_inner" json:"padding_inner,omitempty"`
	PaddingOuter float64 `toml:"padding_outer" json:"padding_outer,omitempty"`
}

// ItemSpec defines one graphical item.
type ItemSpec struct {
	Kind         string  `toml:"kind" json:"kind"`
	Name         string  `toml:"name" json:"name,omitempty"`
	DataKey      string  `toml:"data_key" json:"data_key"`
	XAxisID      string  `toml:"x_axis_id" json:"x_axis_id,omitempty"`
	YAxisID      string  `toml:"y_axis_id" json:"y_axis_id,omitempty"`
	StackID      string  `toml:"stack_id" json:"stack_id,omitempty"`
	BarSize      float64 `toml:"bar_size" json:"bar_size,omitempty"`
	MaxBarSize   float64 `toml:"max_bar_size" json:"max_bar_size,omitempty"`
	MinPointSize float64 `toml:"min_point_size" json:"min_point_size,omitempty"`
	Hide         bool    `toml:"hide" json:"hide,omitempty"`
}

// Label returns the item's name, or its data key when unnamed.
func (it ItemSpec) Label() string {
	if it.Name != "" {
		return it.Name
	}
	return it.DataKey
}

// Load reads a spec from path. The format is chosen by extension: .json is
// JSON, anything else TOML. A relative data_file resolves against the
// directory of path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "spec %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read spec %s", path)
	}
	format := FormatTOML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes a spec. Specs parsed from bytes have no base directory, so
// a data_file must be resolvable from the working directory.
func Parse(data []byte, format Format) (*Spec, error) {
	var s Spec
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json spec")
		}
	case FormatTOML, "":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml spec")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown spec key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported spec format %q", format)
	}
	return &s, nil
}

// Clone returns a copy of s whose axis and item lists can be modified
// independently. Data rows are shared.
func (s *Spec) Clone() *Spec {
	c := *s
	c.XAxes = append([]AxisSpec(nil), s.XAxes...)
	c.YAxes = append([]AxisSpec(nil), s.YAxes...)
	c.Items = append([]ItemSpec(nil), s.Items...)
	return &c
}

// Rows returns the data rows of s, reading data_file when set.
func (s *Spec) Rows() ([]chart.Row, error) {
	if s.DataFile != "" {
		path := s.DataFile
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		return io.ImportRows(path, s.Sheet)
	}
	rows := make([]chart.Row, len(s.Data))
	for i, r := range s.Data {
		rows[i] = chart.Row(r)
	}
	return rows, nil
}

// Fingerprint returns a stable hash input for s: its canonical JSON with the
// data rows resolved, so a changed data file changes the fingerprint.
func (s *Spec) Fingerprint() ([]byte, error) {
	rows, err := s.Rows()
	if err != nil {
		return nil, err
	}
	c := s.Clone()
	c.DataFile, c.Sheet = "", ""
	c.Data = make([]map[string]any, len(rows))
	for i, r := range rows {
		c.Data[i] = r
	}
	return json.Marshal(c)
}
