package chartspec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/compose"
	"github.com/matzehuels/chartgeom/pkg/errors"
	"github.com/matzehuels/chartgeom/pkg/gate"
)

const sampleTOML = `
width = 600
height = 400
bar_category_gap = "10%"

[[x_axis]]
type = "category"
data_key = "month"

[[y_axis]]
type = "number"

[[item]]
kind = "bar"
data_key = "uv"
stack_id = "a"

[[item]]
kind = "bar"
data_key = "pv"
stack_id = "a"

[[item]]
kind = "line"
name = "trend"
data_key = "amt"

[[data]]
month = "Jan"
uv = 4
pv = 2
amt = 3

[[data]]
month = "Feb"
uv = 3
pv = 5
amt = 6
`

func mustParse(t *testing.T) *Spec {
	t.Helper()
	s, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestBuild(t *testing.T) {
	in, err := mustParse(t).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if in.Layout != chart.LayoutHorizontal {
		t.Errorf("Layout = %q, want horizontal", in.Layout)
	}
	if in.Items != nil {
		t.Error("Items should be left for discovery")
	}
	if len(in.Children) != 5 {
		t.Errorf("len(Children) = %d, want 2 axes + 3 items", len(in.Children))
	}
	if in.BarCategoryGap != chart.Percent(10) {
		t.Errorf("BarCategoryGap = %+v", in.BarCategoryGap)
	}

	x := in.XAxisMap["0"]
	if x == nil || x.Type != chart.AxisCategory {
		t.Fatalf("x axis = %+v", x)
	}
	if got := x.Scale.Domain(); len(got) != 2 || got[0] != "Jan" || got[1] != "Feb" {
		t.Errorf("x domain = %v", got)
	}

	y := in.YAxisMap["0"]
	if got := y.Scale.Domain(); got[0] != 0.0 || got[1] != 8.0 {
		t.Errorf("y domain = %v, want stacked extent [0 8]", got)
	}
	if len(y.NiceTicks) != 5 {
		t.Errorf("y nice ticks = %v", y.NiceTicks)
	}
	if c, _ := y.Scale.Map(0); c != 400 {
		t.Errorf("y(0) = %v, want bottom of plot", c)
	}

	sg := in.StackGroups["0"]
	if sg == nil || !sg.HasStack {
		t.Fatalf("stack groups = %+v", in.StackGroups)
	}
	if g := sg.Group("a"); g == nil || len(g.Items) != 2 {
		t.Errorf("stack a = %+v", g)
	}
}

func TestBuildDerive(t *testing.T) {
	in, err := mustParse(t).Build()
	if err != nil {
		t.Fatal(err)
	}
	d := compose.NewPipeline().Derive(in)

	if len(d.AllComposedData) != 3 {
		t.Fatalf("len(AllComposedData) = %d, want 3", len(d.AllComposedData))
	}
	uv, pv := d.AllComposedData[0], d.AllComposedData[1]
	if len(uv.Rects) != 2 || len(pv.Rects) != 2 {
		t.Fatalf("rects = %d, %d", len(uv.Rects), len(pv.Rects))
	}
	if uv.Rects[0].X != pv.Rects[0].X || uv.Rects[0].Width != pv.Rects[0].Width {
		t.Error("stacked bars should share a slot")
	}
	if pv.Rects[0].Span != (chart.Span{4, 6}) {
		t.Errorf("pv span = %v, want [4 6]", pv.Rects[0].Span)
	}
	if len(d.AxisTicks) != 2 {
		t.Errorf("AxisTicks = %v", d.AxisTicks)
	}
}

func TestParseGap(t *testing.T) {
	tests := []struct {
		in      any
		want    Gap
		wantErr bool
	}{
		{nil, Gap{}, false},
		{int64(4), Gap{Value: 4}, false},
		{2.5, Gap{Value: 2.5}, false},
		{"10%", Gap{Value: 10, Percent: true}, false},
		{" 7 ", Gap{Value: 7}, false},
		{"wide", Gap{}, true},
		{true, Gap{}, true},
	}
	for _, tt := range tests {
		got, err := ParseGap(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseGap(%v) = %+v, %v", tt.in, got, err)
		}
	}

	if s := (Gap{Value: 10, Percent: true}).String(); s != "10%" {
		t.Errorf("String() = %q", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
		code   errors.Code
	}{
		{"bad layout", func(s *Spec) { s.Layout = "radial" }, errors.ErrCodeInvalidLayout},
		{"negative width", func(s *Spec) { s.Width = -1 }, errors.ErrCodeInvalidInput},
		{"stack offset", func(s *Spec) { s.StackOffset = "wiggle" }, errors.ErrCodeInvalidInput},
		{"data and file", func(s *Spec) { s.DataFile = "rows.csv" }, errors.ErrCodeInvalidInput},
		{"no y axis", func(s *Spec) { s.YAxes = nil }, errors.ErrCodeInvalidAxis},
		{"duplicate axis", func(s *Spec) { s.XAxes = append(s.XAxes, s.XAxes[0]) }, errors.ErrCodeInvalidAxis},
		{"axis type", func(s *Spec) { s.XAxes[0].Type = "time" }, errors.ErrCodeInvalidAxis},
		{"category value axis", func(s *Spec) { s.YAxes[0].Type = "category" }, errors.ErrCodeInvalidAxis},
		{"domain arity", func(s *Spec) { s.YAxes[0].Domain = []float64{1} }, errors.ErrCodeInvalidAxis},
		{"padding", func(s *Spec) { s.XAxes[0].PaddingInner = 2 }, errors.ErrCodeInvalidAxis},
		{"item kind", func(s *Spec) { s.Items[0].Kind = "pie" }, errors.ErrCodeInvalidItem},
		{"item data key", func(s *Spec) { s.Items[0].DataKey = "" }, errors.ErrCodeInvalidItem},
		{"item axis", func(s *Spec) { s.Items[0].YAxisID = "right" }, errors.ErrCodeInvalidItem},
		{"stack id", func(s *Spec) { s.Items[0].StackID = "a b" }, errors.ErrCodeInvalidItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t)
			tt.mutate(s)
			err := s.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}

	if err := mustParse(t).Validate(); err != nil {
		t.Errorf("sample spec: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("colour = 1\n"), FormatTOML); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown toml key: %v", err)
	}
	if _, err := Parse([]byte(`{"colour": 1}`), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown json key: %v", err)
	}
	if _, err := Parse([]byte("{}"), "yaml"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("yaml: %v", err)
	}
}

func TestLoadWithDataFile(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "rows.csv")
	if err := os.WriteFile(csv, []byte("name,value\na,1\nb,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	spec := `{
		"layout": "vertical",
		"data_file": "rows.csv",
		"bar_gap": 4,
		"x_axis": [{"type": "number"}],
		"y_axis": [{"type": "category", "data_key": "name"}],
		"item": [{"kind": "bar", "data_key": "value"}]
	}`
	path := filepath.Join(dir, "chart.json")
	if err := os.WriteFile(path, []byte(spec), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.BarGap != (Gap{Value: 4}) {
		t.Errorf("BarGap = %+v", s.BarGap)
	}
	in, err := s.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(in.Data) != 2 || in.Layout != chart.LayoutVertical {
		t.Errorf("data = %v layout = %q", in.Data, in.Layout)
	}
	if r := in.YAxisMap["0"].Scale.Range(); r != [2]float64{0, 400} {
		t.Errorf("category y range = %v, want top to bottom", r)
	}

	fp1, err := s.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csv, []byte("name,value\na,1\nb,3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	fp2, _ := s.Fingerprint()
	if string(fp1) == string(fp2) {
		t.Error("fingerprint should change with the data file")
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing spec: %v", err)
	}
}

func TestReplayInputs(t *testing.T) {
	s := mustParse(t)
	x, idx, on := 120.0, 1, true
	layout := "vertical"
	r := &Replay{Updates: []Step{
		{ChartX: &x, ActiveTooltipIndex: &idx, TooltipActive: &on},
		{Hide: []string{"trend"}},
		{Layout: &layout},
	}}

	steps, err := r.Inputs(s)
	if err != nil {
		t.Fatalf("Inputs: %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("len = %d, want initial + 3", len(steps))
	}

	hover := steps[1]
	if hover.ChartX != 120 || hover.ActiveTooltipIndex != 1 || !hover.TooltipActive {
		t.Errorf("interaction = %+v", hover.Interaction)
	}
	if gate.ShouldRecompute(steps[0], hover) {
		t.Error("interaction step should not require a recompute")
	}

	hidden := steps[2]
	if !gate.ShouldRecompute(hover, hidden) {
		t.Error("hide step should require a recompute")
	}
	if n := len(compose.NewPipeline().Discover(hidden)); n != 2 {
		t.Errorf("items after hide = %d, want 2", n)
	}
	if hidden.Interaction != hover.Interaction {
		t.Error("structural step should carry interaction over")
	}

	vertical := steps[3]
	if vertical.Layout != chart.LayoutVertical || vertical.XAxisMap["0"].Type != chart.AxisNumber {
		t.Errorf("layout step: layout %q, x type %q", vertical.Layout, vertical.XAxisMap["0"].Type)
	}

	if s.Items[2].Hide {
		t.Error("replay mutated the original spec")
	}

	bad := &Replay{Updates: []Step{{Hide: []string{"nope"}}}}
	if _, err := bad.Inputs(s); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown item: %v", err)
	}
}

func TestLoadReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.toml")
	content := "[[update]]\nchart_x = 10\n\n[[update]]\nhide = [\"uv\"]\nbar_gap = \"5%\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if len(r.Updates) != 2 || r.Updates[0].Structural() || !r.Updates[1].Structural() {
		t.Fatalf("updates = %+v", r.Updates)
	}
	if *r.Updates[1].BarGap != (Gap{Value: 5, Percent: true}) {
		t.Errorf("bar_gap = %+v", *r.Updates[1].BarGap)
	}
}
