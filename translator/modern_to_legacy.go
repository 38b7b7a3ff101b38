package translator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/gdsii"
	"github.com/GiridharSalana/laykit/oasis"
)

// ModernToLegacy converts a modern File into a legacy Library. Every
// coordinate must fit in 32 bits; the first that doesn't produces a
// CoordinateOverflowError (spec §3's modern->legacy direction is lossy
// and can fail).
func ModernToLegacy(f *oasis.File, opts ...Option) (*gdsii.Library, error) {
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}

	version, err := strconv.Atoi(f.Version)
	if err != nil {
		version = 5
	}

	unit := f.Unit
	if unit == 0 {
		unit = 1000
	}

	lib := &gdsii.Library{
		Name: "MAIN", Version: int16(version),
		UserUnit: 1e-6, DatabaseUnit: 1e-6 / unit,
	}

	for _, cell := range f.Cells {
		st := gdsii.Structure{Name: cell.Name}

		for _, el := range cell.Elements {
			converted, err := modernElementToLegacy(el, o)
			if err != nil {
				return nil, fmt.Errorf("laykit/translator: cell %q: %w", cell.Name, err)
			}
			st.Elements = append(st.Elements, converted...)
		}

		lib.Structures = append(lib.Structures, st)
	}

	return lib, nil
}

func coord32(v int64, field string) (int32, error) {
	if v > math32Max || v < math32Min {
		return 0, &errs.CoordinateOverflowError{Value: v, Field: field}
	}

	return int32(v), nil
}

const (
	math32Max = int64(1) << 31 - 1
	math32Min = -(int64(1) << 31)
)

func modernPropsToLegacy(props []oasis.Property) []gdsii.Property {
	if len(props) == 0 {
		return nil
	}

	out := make([]gdsii.Property, 0, len(props))
	for i, p := range props {
		value := p.Name
		if len(p.Values) > 0 && p.Values[0].Kind == oasis.PropValueAString {
			value = p.Values[0].String
		}

		out = append(out, gdsii.Property{Attr: int16(i + 1), Value: value})
	}

	return out
}

func modernPointsToLegacy(anchor oasis.Point, points []oasis.Point) ([]gdsii.Point, error) {
	out := make([]gdsii.Point, 0, len(points)+2)

	x, y, err := coordPair(anchor.X, anchor.Y)
	if err != nil {
		return nil, err
	}
	out = append(out, gdsii.Point{X: x, Y: y})

	for _, p := range points {
		px, py, err := coordPair(p.X, p.Y)
		if err != nil {
			return nil, err
		}
		out = append(out, gdsii.Point{X: px, Y: py})
	}

	out = append(out, out[0])

	return out, nil
}

func coordPair(x, y int64) (int32, int32, error) {
	ix, err := coord32(x, "x")
	if err != nil {
		return 0, 0, err
	}
	iy, err := coord32(y, "y")
	if err != nil {
		return 0, 0, err
	}

	return ix, iy, nil
}

func modernElementToLegacy(el oasis.Element, o Options) ([]gdsii.Element, error) {
	switch v := el.(type) {
	case oasis.Rectangle:
		return rectangleToLegacy(v)
	case oasis.Polygon:
		return polygonToLegacy(v)
	case oasis.Path:
		return pathToLegacy(v)
	case oasis.Trapezoid:
		return trapezoidToLegacy(v)
	case oasis.CTrapezoid:
		return ctrapezoidToLegacy(v)
	case oasis.Circle:
		return circleToLegacy(v, o)
	case oasis.Text:
		return textToLegacy(v)
	case oasis.Placement:
		return placementToLegacy(v, o)
	default:
		return nil, errs.ErrUnsupportedFeature
	}
}

func expandRepeated[T any](base T, rep *oasis.Repetition, clone func(dx, dy int64) T) []T {
	out := []T{base}
	if rep == nil {
		return out
	}

	for _, off := range rep.Offsets {
		out = append(out, clone(off.X, off.Y))
	}

	return out
}

func rectangleToLegacy(r oasis.Rectangle) ([]gdsii.Element, error) {
	x, y, err := coordPair(r.X, r.Y)
	if err != nil {
		return nil, err
	}

	w, err := coord32(int64(r.Width), "width")
	if err != nil {
		return nil, err
	}
	h, err := coord32(int64(r.Height), "height")
	if err != nil {
		return nil, err
	}

	props := modernPropsToLegacy(r.Properties)
	layer, datatype := r.ElementLayer()

	elements := expandRepeated(gdsii.Boundary{}, r.Repetition, func(dx, dy int64) gdsii.Boundary {
		ddx, _ := coord32(dx, "repetition dx")
		ddy, _ := coord32(dy, "repetition dy")

		return gdsii.Boundary{
			Layer: int16(layer), Datatype: int16(datatype),
			XY: rectanglePoints(x+ddx, y+ddy, w, h), Properties: props,
		}
	})
	elements[0] = gdsii.Boundary{
		Layer: int16(layer), Datatype: int16(datatype),
		XY: rectanglePoints(x, y, w, h), Properties: props,
	}

	out := make([]gdsii.Element, len(elements))
	for i, e := range elements {
		out[i] = e
	}

	return out, nil
}

func polygonToLegacy(p oasis.Polygon) ([]gdsii.Element, error) {
	xy, err := modernPointsToLegacy(oasis.Point{X: p.X, Y: p.Y}, p.Points)
	if err != nil {
		return nil, err
	}

	layer, datatype := p.ElementLayer()

	return []gdsii.Element{gdsii.Boundary{
		Layer: int16(layer), Datatype: int16(datatype),
		XY: xy, Properties: modernPropsToLegacy(p.Properties),
	}}, nil
}

func pathToLegacy(p oasis.Path) ([]gdsii.Element, error) {
	xy, err := modernPointsToLegacy(oasis.Point{X: p.X, Y: p.Y}, p.Points)
	if err != nil {
		return nil, err
	}

	width, err := coord32(int64(p.HalfWidth)*2, "half-width")
	if err != nil {
		return nil, err
	}

	layer, datatype := p.ElementLayer()
	pathType := gdsii.PathFlush
	var beginExtn, endExtn *int32

	if p.StartExtension != 0 || p.EndExtension != 0 {
		pathType = gdsii.PathCustomExtn
		be, err := coord32(p.StartExtension, "start extension")
		if err != nil {
			return nil, err
		}
		ee, err := coord32(p.EndExtension, "end extension")
		if err != nil {
			return nil, err
		}
		beginExtn, endExtn = &be, &ee
	}

	return []gdsii.Element{gdsii.Path{
		Layer: int16(layer), Datatype: int16(datatype), PathType: pathType,
		Width: &width, BeginExtn: beginExtn, EndExtn: endExtn,
		XY: xy[:len(xy)-1], Properties: modernPropsToLegacy(p.Properties),
	}}, nil
}

// trapezoidToLegacy demotes a Trapezoid to its four-vertex Boundary
// outline: the two parallel edges at Width/Height apart, offset by
// DeltaA/DeltaB.
func trapezoidToLegacy(t oasis.Trapezoid) ([]gdsii.Element, error) {
	x, y, err := coordPair(t.X, t.Y)
	if err != nil {
		return nil, err
	}
	w, err := coord32(int64(t.Width), "width")
	if err != nil {
		return nil, err
	}
	h, err := coord32(int64(t.Height), "height")
	if err != nil {
		return nil, err
	}
	da, err := coord32(t.DeltaA, "delta a")
	if err != nil {
		return nil, err
	}
	db, err := coord32(t.DeltaB, "delta b")
	if err != nil {
		return nil, err
	}

	var xy []gdsii.Point
	if t.Vertical {
		xy = []gdsii.Point{
			{X: x, Y: y + da}, {X: x + w, Y: y + db},
			{X: x + w, Y: y + h - db}, {X: x, Y: y + h - da}, {X: x, Y: y + da},
		}
	} else {
		xy = []gdsii.Point{
			{X: x + da, Y: y}, {X: x + w - db, Y: y},
			{X: x + w - db, Y: y + h}, {X: x + da, Y: y + h}, {X: x + da, Y: y},
		}
	}

	layer, datatype := t.ElementLayer()

	return []gdsii.Element{gdsii.Boundary{
		Layer: int16(layer), Datatype: int16(datatype),
		XY: xy, Properties: modernPropsToLegacy(t.Properties),
	}}, nil
}

func ctrapezoidToLegacy(c oasis.CTrapezoid) ([]gdsii.Element, error) {
	x, y, err := coordPair(c.X, c.Y)
	if err != nil {
		return nil, err
	}
	w, err := coord32(int64(c.Width), "width")
	if err != nil {
		return nil, err
	}
	h, err := coord32(int64(c.Height), "height")
	if err != nil {
		return nil, err
	}

	outline, err := ctrapezoidOutline(c.Type, int64(w), int64(h))
	if err != nil {
		return nil, err
	}

	xy := make([]gdsii.Point, 0, len(outline)+1)
	for _, p := range outline {
		xy = append(xy, gdsii.Point{X: x + int32(p.X), Y: y + int32(p.Y)})
	}
	xy = append(xy, xy[0])

	layer, datatype := c.ElementLayer()

	return []gdsii.Element{gdsii.Boundary{
		Layer: int16(layer), Datatype: int16(datatype),
		XY: xy, Properties: modernPropsToLegacy(c.Properties),
	}}, nil
}

// circleToLegacy demotes a Circle to a regular polygon Boundary with
// Options.CircleSegments vertices, per spec §4.4's explicit allowance.
func circleToLegacy(c oasis.Circle, o Options) ([]gdsii.Element, error) {
	x, y, err := coordPair(c.X, c.Y)
	if err != nil {
		return nil, err
	}
	r, err := coord32(int64(c.Radius), "radius")
	if err != nil {
		return nil, err
	}

	n := o.CircleSegments
	if n < 3 {
		n = 32
	}

	xy := make([]gdsii.Point, 0, n+1)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		xy = append(xy, gdsii.Point{
			X: x + int32(float64(r)*math.Cos(theta)),
			Y: y + int32(float64(r)*math.Sin(theta)),
		})
	}
	xy = append(xy, xy[0])

	layer, datatype := c.ElementLayer()

	return []gdsii.Element{gdsii.Boundary{
		Layer: int16(layer), Datatype: int16(datatype),
		XY: xy, Properties: modernPropsToLegacy(c.Properties),
	}}, nil
}

func textToLegacy(t oasis.Text) ([]gdsii.Element, error) {
	x, y, err := coordPair(t.X, t.Y)
	if err != nil {
		return nil, err
	}

	layer, datatype := t.ElementLayer()

	return []gdsii.Element{gdsii.Text{
		Layer: int16(layer), TextType: int16(datatype),
		Position: gdsii.Point{X: x, Y: y}, Value: t.Value,
		Properties: modernPropsToLegacy(t.Properties),
	}}, nil
}

// placementToLegacy demotes a Placement to an SREF, or to an AREF when
// its Repetition is a regular grid; any other repetition kind is
// expanded to one SREF per instance.
func placementToLegacy(p oasis.Placement, o Options) ([]gdsii.Element, error) {
	x, y, err := coordPair(p.X, p.Y)
	if err != nil {
		return nil, err
	}

	transform := transformToLegacy(p)

	// A regular grid always maps to AREF, regardless of
	// ExpandIrregularRepetitions: that flag governs only repetition
	// kinds GDSII's array record cannot represent at all.
	if p.Repetition != nil && p.Repetition.Kind == oasis.RepRegularGrid {
		colEndX, err := coord32(p.X+p.Repetition.XStep*int64(p.Repetition.Columns), "array column end")
		if err != nil {
			return nil, err
		}
		rowEndY, err := coord32(p.Y+p.Repetition.YStep*int64(p.Repetition.Rows), "array row end")
		if err != nil {
			return nil, err
		}

		return []gdsii.Element{gdsii.ArrayRef{
			Name: p.CellName, Columns: int16(p.Repetition.Columns), Rows: int16(p.Repetition.Rows),
			Origin: gdsii.Point{X: x, Y: y}, ColEnd: gdsii.Point{X: colEndX, Y: y}, RowEnd: gdsii.Point{X: x, Y: rowEndY},
			Transform: transform, Properties: modernPropsToLegacy(p.Properties),
		}}, nil
	}

	elements := expandRepeated(gdsii.StructRef{}, p.Repetition, func(dx, dy int64) gdsii.StructRef {
		ddx, _ := coord32(dx, "repetition dx")
		ddy, _ := coord32(dy, "repetition dy")

		return gdsii.StructRef{
			Name: p.CellName, Position: gdsii.Point{X: x + ddx, Y: y + ddy},
			Transform: transform, Properties: modernPropsToLegacy(p.Properties),
		}
	})
	elements[0] = gdsii.StructRef{
		Name: p.CellName, Position: gdsii.Point{X: x, Y: y},
		Transform: transform, Properties: modernPropsToLegacy(p.Properties),
	}

	out := make([]gdsii.Element, len(elements))
	for i, e := range elements {
		out[i] = e
	}

	return out, nil
}

func transformToLegacy(p oasis.Placement) *gdsii.Transform {
	if !p.FlipX && p.Magnification == 1.0 && p.Angle == 0 {
		return nil
	}

	mag := p.Magnification
	angle := p.Angle

	return &gdsii.Transform{Reflect: p.FlipX, Magnification: &mag, Angle: &angle}
}
