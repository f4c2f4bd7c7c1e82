package chartspec

import (
	"github.com/matzehuels/chartgeom/pkg/cartesian"
	"github.com/matzehuels/chartgeom/pkg/chart"
	"github.com/matzehuels/chartgeom/pkg/errors"
)

// Validate checks s for errors that would make [Spec.Build] fail or produce
// meaningless geometry. It does not read data files.
func (s *Spec) Validate() error {
	switch chart.Layout(s.Layout) {
	case "", chart.LayoutHorizontal, chart.LayoutVertical:
	default:
		return errors.New(errors.ErrCodeInvalidLayout, "unsupported layout %q (want horizontal or vertical)", s.Layout)
	}
	if s.Width < 0 || s.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width and height must not be negative")
	}
	if s.BarSize < 0 || s.MaxBarSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bar sizes must not be negative")
	}
	if s.BarGap.Value < 0 || s.BarCategoryGap.Value < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "gaps must not be negative")
	}
	if s.StackOffset != "" && !cartesian.ValidStackOffsets[cartesian.StackOffset(s.StackOffset)] {
		return errors.New(errors.ErrCodeInvalidInput, "unknown stack offset %q", s.StackOffset)
	}
	if s.DataFile != "" {
		if len(s.Data) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "data and data_file are mutually exclusive")
		}
		if err := errors.ValidatePath(s.DataFile); err != nil {
			return err
		}
	}

	xIDs, err := validateAxes("x", s.XAxes)
	if err != nil {
		return err
	}
	yIDs, err := validateAxes("y", s.YAxes)
	if err != nil {
		return err
	}

	numeric, side := s.YAxes, "y"
	if chart.Layout(s.Layout) == chart.LayoutVertical {
		numeric, side = s.XAxes, "x"
	}
	for _, a := range numeric {
		if chart.AxisType(a.Type) != chart.AxisNumber {
			return errors.New(errors.ErrCodeInvalidAxis, "%s axis %q must be a number axis under %s layout", side, axisID(a.ID), s.layout())
		}
	}

	for i, it := range s.Items {
		switch chart.ItemKind(it.Kind) {
		case chart.KindBar, chart.KindLine, chart.KindArea:
		default:
			return errors.New(errors.ErrCodeInvalidItem, "item %d: unknown kind %q", i, it.Kind)
		}
		if err := errors.ValidateDataKey(it.DataKey); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidItem, err, "item %d", i)
		}
		if !xIDs[axisID(it.XAxisID)] {
			return errors.New(errors.ErrCodeInvalidItem, "item %q: unknown x axis %q", it.Label(), axisID(it.XAxisID))
		}
		if !yIDs[axisID(it.YAxisID)] {
			return errors.New(errors.ErrCodeInvalidItem, "item %q: unknown y axis %q", it.Label(), axisID(it.YAxisID))
		}
		if it.StackID != "" {
			if err := errors.ValidateIdentifier(errors.ErrCodeInvalidItem, "stack", it.StackID); err != nil {
				return err
			}
		}
		if it.BarSize < 0 || it.MaxBarSize < 0 {
			return errors.New(errors.ErrCodeInvalidItem, "item %q: bar sizes must not be negative", it.Label())
		}
	}
	return nil
}

func validateAxes(side string, axes []AxisSpec) (map[string]bool, error) {
	if len(axes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidAxis, "at least one %s axis is required", side)
	}
	ids := make(map[string]bool, len(axes))
	for _, a := range axes {
		id := axisID(a.ID)
		if err := errors.ValidateIdentifier(errors.ErrCodeInvalidAxis, side+" axis", id); err != nil {
			return nil, err
		}
		if ids[id] {
			return nil, errors.New(errors.ErrCodeInvalidAxis, "duplicate %s axis id %q", side, id)
		}
		ids[id] = true

		switch chart.AxisType(a.Type) {
		case chart.AxisCategory, chart.AxisNumber:
		default:
			return nil, errors.New(errors.ErrCodeInvalidAxis, "%s axis %q: unknown type %q", side, id, a.Type)
		}
		if len(a.Domain) != 0 && len(a.Domain) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidAxis, "%s axis %q: domain needs exactly two values", side, id)
		}
		if a.TickCount < 0 {
			return nil, errors.New(errors.ErrCodeInvalidAxis, "%s axis %q: tick_count must not be negative", side, id)
		}
		if a.PaddingInner < 0 || a.PaddingInner > 1 || a.PaddingOuter < 0 || a.PaddingOuter > 1 {
			return nil, errors.New(errors.ErrCodeInvalidAxis, "%s axis %q: padding must be within [0, 1]", side, id)
		}
		if a.DataKey != "" {
			if err := errors.ValidateDataKey(a.DataKey); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidAxis, err, "%s axis %q", side, id)
			}
		}
	}
	return ids, nil
}

func axisID(id string) string {
	if id == "" {
		return DefaultAxisID
	}
	return id
}
