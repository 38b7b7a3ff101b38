package translator

import (
	"fmt"
	"math"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/gdsii"
	"github.com/GiridharSalana/laykit/oasis"
)

// LegacyToModern converts a legacy Library into a modern File, widening
// every 32-bit coordinate to 64 bits (spec §3's legacy->modern direction
// never overflows).
func LegacyToModern(lib *gdsii.Library, opts ...Option) (*oasis.File, error) {
	o, err := apply(opts)
	if err != nil {
		return nil, err
	}

	f := &oasis.File{
		Version: fmt.Sprintf("%d", lib.Version),
		Unit:    lib.UserUnit / lib.DatabaseUnit,
	}

	rects := newRectDetectCache()

	for _, st := range lib.Structures {
		cell := oasis.Cell{Name: st.Name}

		for _, el := range st.Elements {
			converted, err := legacyElementToModern(el, o, rects)
			if err != nil {
				return nil, err
			}
			cell.Elements = append(cell.Elements, converted...)
		}

		f.Cells = append(f.Cells, cell)
	}

	return f, nil
}

func legacyElementToModern(el gdsii.Element, o Options, rects *rectDetectCache) ([]oasis.Element, error) {
	switch v := el.(type) {
	case gdsii.Boundary:
		return []oasis.Element{boundaryToModern(v, o, rects)}, nil

	case gdsii.Path:
		return []oasis.Element{pathToModern(v)}, nil

	case gdsii.Text:
		return []oasis.Element{textToModern(v)}, nil

	case gdsii.StructRef:
		return []oasis.Element{srefToModern(v)}, nil

	case gdsii.ArrayRef:
		return arefToModern(v, o)

	case gdsii.Box:
		// A Box is, by convention, a closed rectangle outline; reuse the
		// same detection as Boundary, falling back to a Polygon.
		return []oasis.Element{boxToModern(v, o, rects)}, nil

	case gdsii.Node:
		return []oasis.Element{nodeToModern(v)}, nil

	default:
		return nil, fmt.Errorf("laykit/translator: unrecognized legacy element: %w", errs.ErrUnsupportedFeature)
	}
}

func legacyPropsToModern(props []gdsii.Property) []oasis.Property {
	if len(props) == 0 {
		return nil
	}

	out := make([]oasis.Property, len(props))
	for i, p := range props {
		out[i] = oasis.Property{
			Name: fmt.Sprintf("attr%d", p.Attr),
			Values: []oasis.PropertyValue{
				{Kind: oasis.PropValueAString, String: p.Value},
			},
		}
	}

	return out
}

func pointsToModern(xy []gdsii.Point) []oasis.Point {
	out := make([]oasis.Point, len(xy))
	for i, p := range xy {
		out[i] = oasis.Point{X: int64(p.X), Y: int64(p.Y)}
	}

	return out
}

func boundaryToModern(b gdsii.Boundary, o Options, rects *rectDetectCache) oasis.Element {
	props := legacyPropsToModern(b.Properties)

	if o.DetectRectangles {
		if x, y, w, h, ok := rects.detect(b.XY); ok {
			r := oasis.NewRectangle(uint64(b.Layer), uint64(b.Datatype), x, y, uint64(w), uint64(h))
			r.Properties = props

			return r
		}
	}

	// Polygon points exclude the closing repeat of the anchor vertex.
	anchor := b.XY[0]
	rest := b.XY[1:]
	if len(b.XY) > 0 && b.XY[len(b.XY)-1] == anchor {
		rest = b.XY[1 : len(b.XY)-1]
	}

	poly := oasis.NewPolygon(uint64(b.Layer), uint64(b.Datatype), int64(anchor.X), int64(anchor.Y), pointsToModern(rest))
	poly.Properties = props

	return poly
}

func boxToModern(b gdsii.Box, o Options, rects *rectDetectCache) oasis.Element {
	props := legacyPropsToModern(b.Properties)

	if o.DetectRectangles {
		if x, y, w, h, ok := rects.detect(b.XY); ok {
			r := oasis.NewRectangle(uint64(b.Layer), uint64(b.BoxType), x, y, uint64(w), uint64(h))
			r.Properties = props

			return r
		}
	}

	anchor := b.XY[0]
	poly := oasis.NewPolygon(uint64(b.Layer), uint64(b.BoxType), int64(anchor.X), int64(anchor.Y), pointsToModern(b.XY[1:]))
	poly.Properties = props

	return poly
}

func nodeToModern(n gdsii.Node) oasis.Element {
	props := legacyPropsToModern(n.Properties)
	anchor := n.XY[0]

	poly := oasis.NewPolygon(uint64(n.Layer), uint64(n.NodeType), int64(anchor.X), int64(anchor.Y), pointsToModern(n.XY[1:]))
	poly.Properties = props

	return poly
}

func pathToModern(p gdsii.Path) oasis.Element {
	props := legacyPropsToModern(p.Properties)

	var halfWidth uint64
	if p.Width != nil {
		halfWidth = uint64(abs32(*p.Width)) / 2
	}

	var startExt, endExt int64
	if p.PathType == gdsii.PathCustomExtn {
		if p.BeginExtn != nil {
			startExt = int64(*p.BeginExtn)
		}
		if p.EndExtn != nil {
			endExt = int64(*p.EndExtn)
		}
	} else if p.PathType == gdsii.PathSquare || p.PathType == gdsii.PathRound {
		// Round endcaps have no direct modern analogue; approximating
		// them as a half-width square extension preserves the endcap's
		// extent instead of silently truncating it.
		startExt = int64(halfWidth)
		endExt = int64(halfWidth)
	}

	anchor := p.XY[0]

	path := oasis.NewPath(uint64(p.Layer), uint64(p.Datatype), int64(anchor.X), int64(anchor.Y),
		halfWidth, startExt, endExt, pointsToModern(p.XY[1:]))
	path.Properties = props

	return path
}

func textToModern(t gdsii.Text) oasis.Element {
	text := oasis.NewText(uint64(t.Layer), uint64(t.TextType), int64(t.Position.X), int64(t.Position.Y), t.Value)
	text.Properties = legacyPropsToModern(t.Properties)

	return text
}

func srefToModern(s gdsii.StructRef) oasis.Element {
	p := oasis.NewPlacement(s.Name, int64(s.Position.X), int64(s.Position.Y))
	p.Properties = legacyPropsToModern(s.Properties)
	applyTransformToModern(&p, s.Transform)

	return p
}

func applyTransformToModern(p *oasis.Placement, t *gdsii.Transform) {
	if t == nil {
		return
	}

	p.FlipX = t.Reflect
	if t.Magnification != nil {
		p.Magnification = *t.Magnification
	}
	if t.Angle != nil {
		p.Angle = math.Mod(*t.Angle, 360)
		p.AngleIsArbitrary = math.Mod(p.Angle, 90) != 0
	}
}

// arefToModern converts an ArrayRef into one Placement carrying a
// RepRegularGrid repetition. The steps are the column-end x and row-end y
// displacements from the origin divided by the column and row counts; the
// y of ColEnd and the x of RowEnd are not used.
func arefToModern(a gdsii.ArrayRef, o Options) ([]oasis.Element, error) {
	if a.Columns == 0 || a.Rows == 0 {
		return nil, errs.ErrZeroDimensionArray
	}

	xStep := (int64(a.ColEnd.X) - int64(a.Origin.X)) / int64(a.Columns)
	yStep := (int64(a.RowEnd.Y) - int64(a.Origin.Y)) / int64(a.Rows)

	placement := oasis.NewPlacement(a.Name, int64(a.Origin.X), int64(a.Origin.Y))
	placement.Properties = legacyPropsToModern(a.Properties)
	applyTransformToModern(&placement, a.Transform)
	placement.Repetition = &oasis.Repetition{
		Kind: oasis.RepRegularGrid,
		Columns: int(a.Columns), Rows: int(a.Rows),
		XStep: xStep, YStep: yStep,
		Offsets: regularGridOffsets(int(a.Columns), int(a.Rows), xStep, yStep),
	}

	return []oasis.Element{placement}, nil
}

// regularGridOffsets expands a regular grid's compact Columns/Rows/XStep/
// YStep form into the explicit per-instance offset list every Repetition
// carries, row by row (column varying fastest) and excluding the anchor
// instance at (0, 0), so
// callers that only consult Offsets (rather than the compact fields) see
// the same grid.
func regularGridOffsets(columns, rows int, xStep, yStep int64) []oasis.Point {
	offsets := make([]oasis.Point, 0, columns*rows-1)

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			if row == 0 && col == 0 {
				continue
			}
			offsets = append(offsets, oasis.Point{X: int64(col) * xStep, Y: int64(row) * yStep})
		}
	}

	return offsets
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}

	return v
}
