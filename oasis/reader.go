package oasis

import (
	"bytes"
	"fmt"
	"io"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/format"
	"github.com/GiridharSalana/laykit/framing"
)

// magic is the 13-byte sequence every modern stream opens with.
var magic = []byte("%SEMI-OASIS\r\n")

// Read parses a complete modern stream, resolving every name-table
// reference before returning.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) < len(magic) || !bytes.Equal(data[:len(magic)], magic) {
		return nil, errs.ErrBadMagic
	}

	dec := &decoder{data: data, pos: len(magic), names: NewNameTable(), modal: NewModalState()}

	if err := dec.readStart(); err != nil {
		return nil, err
	}

	f := &File{Version: dec.version, Unit: dec.unit, names: dec.names}

	for {
		id, err := dec.peekRecordID()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch id {
		case format.RecEnd:
			if err := dec.readEnd(); err != nil {
				return nil, err
			}
			return f, nil

		case format.RecCellRef, format.RecCellName:
			cell, err := dec.readCellBegin()
			if err != nil {
				return nil, err
			}
			f.Cells = append(f.Cells, cell)
			dec.modal.Reset()

		case format.RecCellNameImp, format.RecCellNameExp,
			format.RecTextStringImp, format.RecTextStringExp,
			format.RecPropNameImp, format.RecPropNameExp,
			format.RecPropStringImp, format.RecPropStringExp,
			format.RecLayerNameData, format.RecLayerNameText:
			if err := dec.readNameRecord(id); err != nil {
				return nil, err
			}

		case format.RecPad:
			dec.pos++

		case format.RecCBlock:
			dec.pos++ // consume the already-peeked single-byte record id

			payload, consumed, err := inflateCBlock(dec.data[dec.pos:])
			if err != nil {
				return nil, err
			}

			rest := dec.data[dec.pos+consumed:]
			spliced := make([]byte, 0, len(dec.data[:dec.pos])+len(payload)+len(rest))
			spliced = append(spliced, dec.data[:dec.pos]...)
			spliced = append(spliced, payload...)
			spliced = append(spliced, rest...)
			dec.data = spliced

		default:
			if len(f.Cells) == 0 {
				return nil, fmt.Errorf("laykit: element record before first cell: %w", errs.ErrUnexpectedRecord)
			}

			el, err := dec.readElement(id)
			if err != nil {
				return nil, err
			}

			cell := &f.Cells[len(f.Cells)-1]
			cell.Elements = append(cell.Elements, el)
		}
	}

	return f, nil
}

type decoder struct {
	data  []byte
	pos   int
	names *NameTable
	modal *ModalState

	version string
	unit    float64
}

func (d *decoder) peekRecordID() (format.RecordID, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}

	v, _, err := framing.Uvarint(d.data[d.pos:])
	if err != nil {
		return 0, err
	}

	return format.RecordID(v), nil
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.data) {
		return 0, errs.ErrUnexpectedEOF
	}

	b := d.data[d.pos]
	d.pos++

	return b, nil
}

func (d *decoder) readUvarint() (uint64, error) {
	v, n, err := framing.Uvarint(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n

	return v, nil
}

func (d *decoder) readVarint() (int64, error) {
	v, n, err := framing.Varint(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n

	return v, nil
}

func (d *decoder) readModalReal() (float64, error) {
	v, _, n, err := framing.ReadModalReal(d.data[d.pos:])
	if err != nil {
		return 0, err
	}
	d.pos += n

	return v, nil
}

func (d *decoder) readString() (string, error) {
	s, n, err := framing.ReadOASISString(d.data[d.pos:])
	if err != nil {
		return "", err
	}
	d.pos += n

	return s, nil
}

func (d *decoder) readHeader() (elementHeader, error) {
	h, n, err := readElementHeader(d.data[d.pos:], d.modal)
	if err != nil {
		return elementHeader{}, err
	}
	d.pos += n

	return h, nil
}

// readStart consumes the record-id byte plus the START record's version
// string, modal-real unit, and offset-table flag. Only the "no offset
// table" form (flag 0) is supported; a set flag is a recognized but
// unimplemented feature (spec §9 allows readers to reject such tables
// outright rather than parse them for information they may ignore).
func (d *decoder) readStart() error {
	id, err := d.readUvarint()
	if err != nil {
		return err
	}
	if format.RecordID(id) != format.RecStart {
		return fmt.Errorf("laykit: expected START record: %w", errs.ErrUnexpectedRecord)
	}

	d.version, err = d.readString()
	if err != nil {
		return err
	}

	d.unit, err = d.readModalReal()
	if err != nil {
		return err
	}

	flag, err := d.readByte()
	if err != nil {
		return err
	}
	if flag != 0 {
		return &errs.UnsupportedFeatureError{Feature: "OASIS offset table"}
	}

	return nil
}

// readEnd consumes the END record: a padding string and a validation
// scheme byte, discarding any signature bytes unread, per spec §9's
// allowance that the validation signature may be ignored.
func (d *decoder) readEnd() error {
	id, err := d.readUvarint()
	if err != nil {
		return err
	}
	if format.RecordID(id) != format.RecEnd {
		return fmt.Errorf("laykit: expected END record: %w", errs.ErrUnexpectedRecord)
	}

	if _, err := d.readString(); err != nil {
		return err
	}

	scheme, err := d.readByte()
	if err != nil {
		return err
	}
	if scheme != 0 {
		if d.pos+4 > len(d.data) {
			return errs.ErrUnexpectedEOF
		}
		d.pos += 4
	}

	return nil
}

func (d *decoder) readNameRecord(id format.RecordID) error {
	d.pos++ // consume the already-peeked single-byte record id

	var class NameClass
	switch id {
	case format.RecCellNameImp, format.RecCellNameExp:
		class = NameClassCell
	case format.RecTextStringImp, format.RecTextStringExp:
		class = NameClassText
	case format.RecPropNameImp, format.RecPropNameExp:
		class = NameClassPropName
	case format.RecPropStringImp, format.RecPropStringExp:
		class = NameClassPropString
	case format.RecLayerNameData, format.RecLayerNameText:
		class = NameClassLayerName
	}

	name, err := d.readString()
	if err != nil {
		return err
	}

	switch id {
	case format.RecCellNameImp, format.RecTextStringImp, format.RecPropNameImp,
		format.RecPropStringImp:
		return d.names.AddImplicit(class, name)

	case format.RecLayerNameData, format.RecLayerNameText:
		// Interval bounds (layer/datatype or texttype ranges) are not
		// modeled; only the name<->id mapping survives, consistent with
		// the reduced modal scope documented on ModalState.
		nameID, err := d.readUvarint()
		if err != nil {
			return err
		}

		return d.names.AddExplicit(class, nameID, name)

	default:
		nameID, err := d.readUvarint()
		if err != nil {
			return err
		}

		return d.names.AddExplicit(class, nameID, name)
	}
}

func (d *decoder) readCellBegin() (Cell, error) {
	id, err := d.readUvarint()
	if err != nil {
		return Cell{}, err
	}

	var name string
	if format.RecordID(id) == format.RecCellName {
		name, err = d.readString()
		if err != nil {
			return Cell{}, err
		}
	} else {
		num, err := d.readUvarint()
		if err != nil {
			return Cell{}, err
		}
		name = fmt.Sprintf("#%d", num)
	}

	return Cell{Name: name}, nil
}

func (d *decoder) readElement(id format.RecordID) (Element, error) {
	d.pos++ // consume the already-peeked single-byte record id

	switch id {
	case format.RecPlacement, format.RecPlacementXY:
		return d.readPlacement()
	case format.RecText:
		return d.readText()
	case format.RecRectangle:
		return d.readRectangle()
	case format.RecPolygon:
		return d.readPolygon()
	case format.RecPath:
		return d.readPath()
	case format.RecTrapezoidA, format.RecTrapezoidB:
		return d.readTrapezoid(id == format.RecTrapezoidB)
	case format.RecCTrapezoid:
		return d.readCTrapezoid()
	case format.RecCircle:
		return d.readCircle()
	default:
		return nil, fmt.Errorf("laykit: record id %d: %w", id, errs.ErrUnknownRecord)
	}
}

func (d *decoder) readRectangle() (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	return Rectangle{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, Width: h.Size, Height: h.Size2,
	}, nil
}

func (d *decoder) readCircle() (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	return Circle{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, Radius: h.Size,
	}, nil
}

func (d *decoder) readTrapezoid(vertical bool) (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	deltaA, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	deltaB, err := d.readVarint()
	if err != nil {
		return nil, err
	}

	return Trapezoid{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, Width: h.Size, Height: h.Size2,
		DeltaA: deltaA, DeltaB: deltaB, Vertical: vertical,
	}, nil
}

func (d *decoder) readCTrapezoid() (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	typ, err := d.readByte()
	if err != nil {
		return nil, err
	}
	if typ > 25 {
		return nil, &errs.UnsupportedFeatureError{Feature: "CTrapezoid type out of range"}
	}

	return CTrapezoid{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, Type: int(typ), Width: h.Size, Height: h.Size2,
	}, nil
}

func (d *decoder) readPolygon() (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	points, err := d.readPoints()
	if err != nil {
		return nil, err
	}

	return Polygon{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, Points: points,
	}, nil
}

func (d *decoder) readPath() (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	startExt, err := d.readVarint()
	if err != nil {
		return nil, err
	}
	endExt, err := d.readVarint()
	if err != nil {
		return nil, err
	}

	points, err := d.readPoints()
	if err != nil {
		return nil, err
	}

	return Path{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, HalfWidth: h.Size,
		StartExtension: startExt, EndExtension: endExt, Points: points,
	}, nil
}

func (d *decoder) readPoints() ([]Point, error) {
	count, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	points := make([]Point, count)
	for i := range points {
		x, err := d.readVarint()
		if err != nil {
			return nil, err
		}
		y, err := d.readVarint()
		if err != nil {
			return nil, err
		}
		points[i] = Point{X: x, Y: y}
	}

	return points, nil
}

func (d *decoder) readText() (Element, error) {
	h, err := d.readHeader()
	if err != nil {
		return nil, err
	}

	nameID, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	value, err := d.names.Resolve(NameClassText, nameID)
	if err != nil {
		return nil, err
	}

	return Text{
		elementBase: elementBase{Layer: h.Layer, Datatype: h.Datatype, Properties: h.Properties, Repetition: h.Repetition},
		X: h.X, Y: h.Y, Value: value,
	}, nil
}

func (d *decoder) readPlacement() (Element, error) {
	nameID, err := d.readUvarint()
	if err != nil {
		return nil, err
	}

	cellName, err := d.names.Resolve(NameClassCell, nameID)
	if err != nil {
		return nil, err
	}

	flags, err := d.readByte()
	if err != nil {
		return nil, err
	}

	p := Placement{CellName: cellName, Magnification: 1.0}
	p.FlipX = flags&0x01 != 0

	if flags&0x02 != 0 {
		x, err := d.readVarint()
		if err != nil {
			return nil, err
		}
		d.modal.GeometryX = x
	}
	p.X = d.modal.GeometryX

	if flags&0x04 != 0 {
		y, err := d.readVarint()
		if err != nil {
			return nil, err
		}
		d.modal.GeometryY = y
	}
	p.Y = d.modal.GeometryY

	if flags&0x08 != 0 {
		mag, err := d.readModalReal()
		if err != nil {
			return nil, err
		}
		p.Magnification = mag
	}

	if flags&0x10 != 0 {
		p.AngleIsArbitrary = true
		angle, err := d.readModalReal()
		if err != nil {
			return nil, err
		}
		p.Angle = angle
	} else {
		code, err := d.readByte()
		if err != nil {
			return nil, err
		}
		p.Angle = float64(code) * 90
	}

	if flags&0x20 != 0 {
		rep, n, err := ReadRepetition(d.data[d.pos:])
		if err != nil {
			return nil, err
		}
		p.Repetition = rep
		d.pos += n
	}

	if flags&0x40 != 0 {
		props, n, err := readProperties(d.data[d.pos:])
		if err != nil {
			return nil, err
		}
		p.Properties = props
		d.pos += n
	}

	return p, nil
}
