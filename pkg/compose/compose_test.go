package compose

import (
	"reflect"
	"testing"

	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/derive"
	"github.com/matzehuels/chartgeom/pkg/scale"
)

func categoryAxis(id string) *chart.Axis {
	return &chart.Axis{
		ID:      id,
		Type:    chart.AxisCategory,
		DataKey: "cat",
		Scale:   scale.NewBand([]any{"a", "b"}, [2]float64{0, 100}, scale.BandOptions{}),
	}
}

func valueAxis(id string, rng [2]float64) *chart.Axis {
	return &chart.Axis{
		ID:    id,
		Type:  chart.AxisNumber,
		Scale: scale.NewLinear(0, 10, rng),
	}
}

func horizontalContext(item *chart.Item, rows ...chart.Row) *derive.Context {
	x := categoryAxis("x")
	return &derive.Context{
		Inputs:   &chart.Inputs{Props: chart.Props{Layout: chart.LayoutHorizontal, Data: rows}},
		XAxis:    x,
		YAxis:    valueAxis("y", [2]float64{100, 0}),
		XTicks:   cartesian.Routines{}.Ticks(x),
		DataKey:  item.DataKey,
		Item:     item,
		BandSize: 50,
	}
}

func TestBar(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindBar, DataKey: "v"}
		ctx := horizontalContext(item, chart.Row{"cat": "a", "v": 5}, chart.Row{"cat": "b", "v": 10})
		ctx.BarPosition = []derive.BarPlacement{{Item: item, Offset: 5, Size: 40}}

		g, ok := Bar(ctx)
		if !ok {
			t.Fatal("Bar() declined")
		}
		want := []Box{{X: 5, Y: 50, Width: 40, Height: 50}, {X: 55, Y: 0, Width: 40, Height: 100}}
		if len(g.Rects) != len(want) {
			t.Fatalf("len(Rects) = %d, want %d", len(g.Rects), len(want))
		}
		for i, r := range g.Rects {
			if r.Box != want[i] {
				t.Errorf("Rects[%d] = %+v, want %+v", i, r.Box, want[i])
			}
		}
		if g.Rects[1].Value != 10 || g.Rects[1].Span != (chart.Span{0, 10}) {
			t.Errorf("Rects[1] value = %v span = %v", g.Rects[1].Value, g.Rects[1].Span)
		}
	})

	t.Run("vertical", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindBar, DataKey: "v"}
		y := categoryAxis("y")
		ctx := &derive.Context{
			Inputs:      &chart.Inputs{Props: chart.Props{Layout: chart.LayoutVertical, Data: []chart.Row{{"cat": "b", "v": 5}}}},
			XAxis:       valueAxis("x", [2]float64{0, 100}),
			YAxis:       y,
			YTicks:      cartesian.Routines{}.Ticks(y),
			DataKey:     "v",
			Item:        item,
			BandSize:    50,
			BarPosition: []derive.BarPlacement{{Item: item, Offset: 5, Size: 40}},
		}
		g, ok := Bar(ctx)
		if !ok || len(g.Rects) != 1 {
			t.Fatalf("Bar() = %+v, %v", g, ok)
		}
		if want := (Box{X: 0, Y: 55, Width: 50, Height: 40}); g.Rects[0].Box != want {
			t.Errorf("Rects[0] = %+v, want %+v", g.Rects[0].Box, want)
		}
	})

	t.Run("stacked spans", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindBar, DataKey: "v", StackID: "s"}
		ctx := horizontalContext(item, chart.Row{"cat": "a", "v": 3})
		ctx.BarPosition = []derive.BarPlacement{{Item: item, Offset: 0, Size: 50}}
		ctx.StackedData = []chart.Span{{2, 14}}

		g, _ := Bar(ctx)
		r := g.Rects[0]
		if !r.Stacked || r.Span != (chart.Span{2, 10}) {
			t.Errorf("span = %v stacked = %v, want clamped [2 10]", r.Span, r.Stacked)
		}
		if r.Y != 0 || r.Height != 80 {
			t.Errorf("y = %v height = %v, want 0 80", r.Y, r.Height)
		}
	})

	t.Run("min point size", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindBar, DataKey: "v", MinPointSize: 3}
		ctx := horizontalContext(item, chart.Row{"cat": "a", "v": 0})
		ctx.BarPosition = []derive.BarPlacement{{Item: item, Size: 50}}

		g, _ := Bar(ctx)
		if r := g.Rects[0]; r.Y != 97 || r.Height != 3 {
			t.Errorf("y = %v height = %v, want 97 3", r.Y, r.Height)
		}
	})

	t.Run("declines without placement", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindBar, DataKey: "v"}
		ctx := horizontalContext(item, chart.Row{"cat": "a", "v": 1})
		if _, ok := Bar(ctx); ok {
			t.Error("Bar() composed without a placement")
		}
	})

	t.Run("declines without axes", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindBar, DataKey: "v"}
		ctx := &derive.Context{
			Inputs:      &chart.Inputs{},
			Item:        item,
			BarPosition: []derive.BarPlacement{{Item: item}},
		}
		if _, ok := Bar(ctx); ok {
			t.Error("Bar() composed without axes")
		}
	})
}

func TestLine(t *testing.T) {
	item := &chart.Item{Kind: chart.KindLine, DataKey: "v"}
	ctx := horizontalContext(item, chart.Row{"cat": "a", "v": 5}, chart.Row{"cat": "b"})

	g, ok := Line(ctx)
	if !ok {
		t.Fatal("Line() declined")
	}
	want := []Point{
		{X: 25, Y: 50, Value: 5, Index: 0, Defined: true},
		{X: 75, Y: 0, Index: 1},
	}
	if !reflect.DeepEqual(g.Points, want) {
		t.Errorf("Points = %+v, want %+v", g.Points, want)
	}
}

func TestCategoryLookup(t *testing.T) {
	tests := []struct {
		name   string
		domain []any
		rows   []chart.Row
		want   []float64
	}{
		{
			name:   "mixed numeric types",
			domain: []any{int64(2000), int64(2001)},
			rows:   []chart.Row{{"cat": 2001.0, "v": 5}, {"cat": "2000", "v": 5}},
			want:   []float64{75, 25},
		},
		{
			name:   "uncomparable values",
			domain: []any{[]any{"a"}, []any{"b"}},
			rows:   []chart.Row{{"cat": []any{"b"}, "v": 5}, {"cat": []any{"a"}, "v": 5}},
			want:   []float64{75, 25},
		},
		{
			name:   "unknown value uses row index",
			domain: []any{"a", "b"},
			rows:   []chart.Row{{"cat": "a", "v": 5}, {"cat": "z", "v": 5}},
			want:   []float64{25, 75},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &chart.Item{Kind: chart.KindLine, DataKey: "v"}
			ctx := horizontalContext(item, tt.rows...)
			ctx.XAxis.Scale = scale.NewBand(tt.domain, [2]float64{0, 100}, scale.BandOptions{})
			ctx.XTicks = cartesian.Routines{}.Ticks(ctx.XAxis)

			g, ok := Line(ctx)
			if !ok {
				t.Fatal("Line() declined")
			}
			if len(g.Points) != len(tt.want) {
				t.Fatalf("len(Points) = %d, want %d", len(g.Points), len(tt.want))
			}
			for i, p := range g.Points {
				if p.X != tt.want[i] {
					t.Errorf("Points[%d].X = %v, want %v", i, p.X, tt.want[i])
				}
			}
		})
	}
}

func TestArea(t *testing.T) {
	t.Run("unstacked", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindArea, DataKey: "v"}
		g, ok := Area(horizontalContext(item, chart.Row{"cat": "a", "v": 5}))
		if !ok {
			t.Fatal("Area() declined")
		}
		if p := g.Points[0]; p.X != 25 || p.Y != 50 {
			t.Errorf("Points[0] = %+v", p)
		}
		if b := g.BaseLine[0]; b.Y != 100 || b.Value != 0 {
			t.Errorf("BaseLine[0] = %+v", b)
		}
	})

	t.Run("stacked", func(t *testing.T) {
		item := &chart.Item{Kind: chart.KindArea, DataKey: "v", StackID: "s"}
		ctx := horizontalContext(item, chart.Row{"cat": "a", "v": 3}, chart.Row{"cat": "b", "v": 10})
		ctx.StackedData = []chart.Span{{2, 5}, {0, 10}}

		g, _ := Area(ctx)
		if g.Points[0].Y != 50 || g.BaseLine[0].Y != 80 {
			t.Errorf("row 0 top = %v base = %v, want 50 80", g.Points[0].Y, g.BaseLine[0].Y)
		}
		if g.Points[1].Y != 0 || g.BaseLine[1].Y != 100 {
			t.Errorf("row 1 top = %v base = %v, want 0 100", g.Points[1].Y, g.BaseLine[1].Y)
		}
	})
}

func TestComposedUnknownKind(t *testing.T) {
	ctx := &derive.Context{Item: &chart.Item{Kind: "pie"}}
	if g, ok := Composed(ctx); ok || !g.IsEmpty() {
		t.Errorf("Composed() = %+v, %v", g, ok)
	}
}

func TestPipeline(t *testing.T) {
	bar := &chart.Item{Kind: chart.KindBar, DataKey: "v", XAxisID: "x", YAxisID: "y"}
	line := &chart.Item{Kind: chart.KindLine, DataKey: "v", XAxisID: "x", YAxisID: "y"}
	rows := []chart.Row{{"cat": "a", "v": 5}, {"cat": "b", "v": 10}}
	items := []*chart.Item{bar, line}

	in := &chart.Inputs{
		Items: items,
		Props: chart.Props{
			Layout:      chart.LayoutHorizontal,
			XAxisMap:    chart.AxisMap{"x": categoryAxis("x")},
			YAxisMap:    chart.AxisMap{"y": valueAxis("y", [2]float64{100, 0})},
			StackGroups: cartesian.BuildStackGroups(rows, items, chart.LayoutHorizontal, cartesian.OffsetNone),
			Data:        rows,
		},
	}

	d := derive.New(cartesian.Routines{}, Composed).Derive(in)
	if len(d.AllComposedData) != 2 {
		t.Fatalf("len(AllComposedData) = %d, want 2", len(d.AllComposedData))
	}
	if got := d.AllComposedData[0]; got.Kind != chart.KindBar || len(got.Rects) != 2 {
		t.Errorf("bar geometry = %+v", got)
	}
	if got := d.AllComposedData[0].Rects[0].Box; got != (Box{X: 0, Y: 50, Width: 50, Height: 50}) {
		t.Errorf("first bar = %+v", got)
	}
	if got := d.AllComposedData[1]; got.Kind != chart.KindLine || len(got.Points) != 2 {
		t.Errorf("line geometry = %+v", got)
	}
	if len(d.AxisTicks) != 2 {
		t.Errorf("len(AxisTicks) = %d, want 2", len(d.AxisTicks))
	}
}
