package oasis

import (
	"io"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/format"
	"github.com/GiridharSalana/laykit/framing"
)

// Write serializes f as a complete modern stream: magic, START, the
// CELLNAME/TEXTSTRING name tables gathered from f, every cell's CELL
// record followed by its elements, and END. Property names are written
// inline with each property; no PROPNAME/PROPSTRING records are emitted.
//
// Every cell and element is written explicitly (this package's writer
// never re-derives a modal-inherited value the caller didn't already
// collapse), so ModalState.Reset only needs to run implicitly once per
// cell to keep the delta-against-modal encoding in appendElementHeader
// honest.
func Write(w io.Writer, f *File) error {
	enc, err := newEncoder(f)
	if err != nil {
		return err
	}

	enc.buf = append(enc.buf, enc.cellsBuf...)
	enc.appendEnd()

	_, err = w.Write(enc.buf)
	return err
}

// WriteCompressed serializes f the same way Write does, but wraps every
// cell's records in a single CBLOCK record (deflate), exercising the
// same compression path an archival writer would use to shrink a large
// modern stream (spec §4.3's CBLOCK container).
func WriteCompressed(w io.Writer, f *File) error {
	enc, err := newEncoder(f)
	if err != nil {
		return err
	}

	block, err := deflateCBlock(enc.cellsBuf)
	if err != nil {
		return err
	}

	enc.buf = framing.AppendUvarint(enc.buf, uint64(format.RecCBlock))
	enc.buf = append(enc.buf, block...)
	enc.appendEnd()

	_, err = w.Write(enc.buf)
	return err
}

func newEncoder(f *File) (*encoder, error) {
	enc := &encoder{names: NewNameTable()}

	enc.collectNames(f)

	enc.appendStart(f)
	enc.appendNameTable()

	for _, cell := range f.Cells {
		enc.modal = NewModalState()
		enc.appendCellBegin(cell)

		for _, el := range cell.Elements {
			if err := enc.appendElement(el); err != nil {
				return nil, err
			}
		}
	}

	return enc, nil
}

type encoder struct {
	buf      []byte
	cellsBuf []byte
	names    *NameTable
	modal    *ModalState

	cellIDs map[string]uint64
	textIDs map[string]uint64
}

// collectNames performs the writer's name-table pre-pass: every cell's
// own name, every cell name referenced by a Placement, and every distinct
// Text value is assigned a sequential id in first-occurrence order so
// that elements can reference names by id instead of repeating the
// string. The name tables carry these ids as explicit-id records.
func (e *encoder) collectNames(f *File) {
	e.cellIDs = make(map[string]uint64)
	e.textIDs = make(map[string]uint64)

	for _, cell := range f.Cells {
		if _, ok := e.cellIDs[cell.Name]; !ok {
			e.cellIDs[cell.Name] = uint64(len(e.cellIDs))
		}

		for _, el := range cell.Elements {
			switch v := el.(type) {
			case Placement:
				if _, ok := e.cellIDs[v.CellName]; !ok {
					e.cellIDs[v.CellName] = uint64(len(e.cellIDs))
				}
			case Text:
				if _, ok := e.textIDs[v.Value]; !ok {
					e.textIDs[v.Value] = uint64(len(e.textIDs))
				}
			}
		}
	}
}

func (e *encoder) appendNameTable() {
	ordered := make([]string, len(e.cellIDs))
	for name, id := range e.cellIDs {
		ordered[id] = name
	}
	for id, name := range ordered {
		e.buf = framing.AppendUvarint(e.buf, uint64(format.RecCellNameExp))
		e.buf = framing.WriteOASISString(e.buf, name)
		e.buf = framing.AppendUvarint(e.buf, uint64(id))
	}

	ordered = make([]string, len(e.textIDs))
	for value, id := range e.textIDs {
		ordered[id] = value
	}
	for id, value := range ordered {
		e.buf = framing.AppendUvarint(e.buf, uint64(format.RecTextStringExp))
		e.buf = framing.WriteOASISString(e.buf, value)
		e.buf = framing.AppendUvarint(e.buf, uint64(id))
	}
}

func (e *encoder) appendStart(f *File) {
	e.buf = append(e.buf, magic...)
	e.buf = framing.AppendUvarint(e.buf, uint64(format.RecStart))
	e.buf = framing.WriteOASISString(e.buf, f.Version)
	e.buf = framing.AppendModalReal(e.buf, f.Unit)
	e.buf = append(e.buf, 0) // offset-table flag: none
}

func (e *encoder) appendEnd() {
	e.buf = framing.AppendUvarint(e.buf, uint64(format.RecEnd))
	e.buf = framing.WriteOASISString(e.buf, "")
	e.buf = append(e.buf, 0) // validation scheme: none
}

func (e *encoder) appendCellBegin(cell Cell) {
	e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecCellName))
	e.cellsBuf = framing.WriteOASISString(e.cellsBuf, cell.Name)
}

func (e *encoder) appendElement(el Element) error {
	switch v := el.(type) {
	case Rectangle:
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecRectangle))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Size: v.Width, Size2: v.Height, Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, true, true)
		return nil

	case Circle:
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecCircle))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Size: v.Radius, Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, true, false)
		return nil

	case Trapezoid:
		id := format.RecTrapezoidA
		if v.Vertical {
			id = format.RecTrapezoidB
		}
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(id))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Size: v.Width, Size2: v.Height, Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, true, true)
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, v.DeltaA)
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, v.DeltaB)
		return nil

	case CTrapezoid:
		if v.Type < 0 || v.Type > 25 {
			return &errs.UnsupportedFeatureError{Feature: "CTrapezoid type out of range"}
		}
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecCTrapezoid))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Size: v.Width, Size2: v.Height, Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, true, true)
		e.cellsBuf = append(e.cellsBuf, byte(v.Type))
		return nil

	case Polygon:
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecPolygon))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, false, false)
		e.appendPoints(v.Points)
		return nil

	case Path:
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecPath))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Size: v.HalfWidth, Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, true, false)
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, v.StartExtension)
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, v.EndExtension)
		e.appendPoints(v.Points)
		return nil

	case Text:
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecText))
		e.cellsBuf = appendElementHeader(e.cellsBuf, elementHeader{
			Layer: v.Layer, Datatype: v.Datatype, X: v.X, Y: v.Y,
			Repetition: v.Repetition, Properties: v.Properties,
		}, e.modal, false, false)
		e.cellsBuf = framing.AppendUvarint(e.cellsBuf, e.textIDs[v.Value])
		return nil

	case Placement:
		e.appendPlacement(v)
		return nil

	default:
		return &errs.UnsupportedFeatureError{Feature: "unrecognized element kind"}
	}
}

func (e *encoder) appendPoints(points []Point) {
	e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(len(points)))
	for _, p := range points {
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, p.X)
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, p.Y)
	}
}

func (e *encoder) appendPlacement(p Placement) {
	e.cellsBuf = framing.AppendUvarint(e.cellsBuf, uint64(format.RecPlacement))
	e.cellsBuf = framing.AppendUvarint(e.cellsBuf, e.cellIDs[p.CellName])

	xChanged := p.X != e.modal.GeometryX
	yChanged := p.Y != e.modal.GeometryY
	magPresent := p.Magnification != 1.0
	hasRep := p.Repetition != nil
	hasProps := len(p.Properties) > 0

	var flags byte
	if p.FlipX {
		flags |= 0x01
	}
	if xChanged {
		flags |= 0x02
	}
	if yChanged {
		flags |= 0x04
	}
	if magPresent {
		flags |= 0x08
	}
	if p.AngleIsArbitrary {
		flags |= 0x10
	}
	if hasRep {
		flags |= 0x20
	}
	if hasProps {
		flags |= 0x40
	}

	e.cellsBuf = append(e.cellsBuf, flags)

	if xChanged {
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, p.X)
		e.modal.GeometryX = p.X
	}
	if yChanged {
		e.cellsBuf = framing.AppendVarint(e.cellsBuf, p.Y)
		e.modal.GeometryY = p.Y
	}
	if magPresent {
		e.cellsBuf = framing.AppendModalReal(e.cellsBuf, p.Magnification)
	}
	if p.AngleIsArbitrary {
		e.cellsBuf = framing.AppendModalReal(e.cellsBuf, p.Angle)
	} else {
		e.cellsBuf = append(e.cellsBuf, byte(normalizeOrthogonalAngle(p.Angle)))
	}
	if hasRep {
		e.cellsBuf = AppendRepetition(e.cellsBuf, p.Repetition)
	}
	if hasProps {
		e.cellsBuf = appendProperties(e.cellsBuf, p.Properties)
	}
}

// normalizeOrthogonalAngle maps {0, 90, 180, 270} to the 2-bit code
// stored for a non-arbitrary placement angle.
func normalizeOrthogonalAngle(angle float64) int {
	switch angle {
	case 90:
		return 1
	case 180:
		return 2
	case 270:
		return 3
	default:
		return 0
	}
}
