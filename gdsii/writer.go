package gdsii

import (
	"io"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/format"
	"github.com/GiridharSalana/laykit/framing"
)

// Write serializes lib to w in the canonical legacy stream record order
// described by spec §4.2: HEADER, BGNLIB, LIBNAME, UNITS, then one
// BGNSTR..ENDSTR block per structure, then ENDLIB.
func Write(w io.Writer, lib *Library) error {
	if err := writeHeaderRecords(w, lib); err != nil {
		return err
	}

	for _, st := range lib.Structures {
		if err := writeStructure(w, st); err != nil {
			return err
		}
	}

	return writeEndlib(w)
}

// writeHeaderRecords emits HEADER, BGNLIB, LIBNAME, and UNITS: the fixed
// preamble shared by Write and StreamWriter.
func writeHeaderRecords(w io.Writer, lib *Library) error {
	if err := writeInt16Record(w, format.HEADER, []int16{lib.Version}); err != nil {
		return err
	}

	bgnlib := append(timestampFields(lib.Modified), timestampFields(lib.Created)...)
	if err := writeInt16Record(w, format.BGNLIB, bgnlib); err != nil {
		return err
	}

	if err := writeASCIIRecord(w, format.LIBNAME, lib.Name); err != nil {
		return err
	}

	units, err := encodeReal8s([]float64{lib.UserUnit, lib.DatabaseUnit})
	if err != nil {
		return err
	}

	return WriteRawRecord(w, format.UNITS, format.Real8, units)
}

// writeEndlib emits the ENDLIB record that terminates every legacy stream.
func writeEndlib(w io.Writer) error {
	return WriteRawRecord(w, format.ENDLIB, format.NoData, nil)
}

func timestampFields(ts Timestamp) []int16 {
	return []int16{ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second}
}

func writeStructure(w io.Writer, st Structure) error {
	bgnstr := append(timestampFields(st.Modified), timestampFields(st.Created)...)
	if err := writeInt16Record(w, format.BGNSTR, bgnstr); err != nil {
		return err
	}
	if err := writeASCIIRecord(w, format.STRNAME, st.Name); err != nil {
		return err
	}

	for _, el := range st.Elements {
		if err := writeElement(w, el); err != nil {
			return err
		}
	}

	return WriteRawRecord(w, format.ENDSTR, format.NoData, nil)
}

// writeElement emits one element in the canonical field order spec §4.2
// requires: the opening record, LAYER/DATATYPE-or-equivalent, geometry
// modifiers, XY, then properties, then ENDEL.
func writeElement(w io.Writer, el Element) error {
	switch e := el.(type) {
	case Boundary:
		if len(e.XY) < 4 {
			return errs.ErrStructuralViolation
		}
		if err := WriteRawRecord(w, format.BOUNDARY, format.NoData, nil); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.LAYER, []int16{e.Layer}); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.DATATYPE, []int16{e.Datatype}); err != nil {
			return err
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY(e.XY)); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	case Path:
		if len(e.XY) < 2 {
			return errs.ErrStructuralViolation
		}
		if err := WriteRawRecord(w, format.PATH, format.NoData, nil); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.LAYER, []int16{e.Layer}); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.DATATYPE, []int16{e.Datatype}); err != nil {
			return err
		}
		if e.PathType != PathFlush {
			if err := writeInt16Record(w, format.PATHTYPE, []int16{int16(e.PathType)}); err != nil {
				return err
			}
		}
		if e.Width != nil {
			if err := writeInt32Record(w, format.WIDTH, []int32{*e.Width}); err != nil {
				return err
			}
		}
		if e.PathType == PathCustomExtn {
			if e.BeginExtn != nil {
				if err := writeInt32Record(w, format.BGNEXTN, []int32{*e.BeginExtn}); err != nil {
					return err
				}
			}
			if e.EndExtn != nil {
				if err := writeInt32Record(w, format.ENDEXTN, []int32{*e.EndExtn}); err != nil {
					return err
				}
			}
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY(e.XY)); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	case Text:
		if err := WriteRawRecord(w, format.TEXT, format.NoData, nil); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.LAYER, []int16{e.Layer}); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.TEXTTYPE, []int16{e.TextType}); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.PRESENTATION, []int16{int16(e.Presentation)}); err != nil {
			return err
		}
		if e.Transform != nil {
			if err := writeTransform(w, e.Transform); err != nil {
				return err
			}
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY([]Point{e.Position})); err != nil {
			return err
		}
		if err := writeASCIIRecord(w, format.STRING, e.Value); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	case StructRef:
		if err := WriteRawRecord(w, format.SREF, format.NoData, nil); err != nil {
			return err
		}
		if err := writeASCIIRecord(w, format.SNAME, e.Name); err != nil {
			return err
		}
		if e.Transform != nil {
			if err := writeTransform(w, e.Transform); err != nil {
				return err
			}
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY([]Point{e.Position})); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	case ArrayRef:
		if e.Columns == 0 || e.Rows == 0 {
			return errs.ErrZeroDimensionArray
		}
		if err := WriteRawRecord(w, format.AREF, format.NoData, nil); err != nil {
			return err
		}
		if err := writeASCIIRecord(w, format.SNAME, e.Name); err != nil {
			return err
		}
		if e.Transform != nil {
			if err := writeTransform(w, e.Transform); err != nil {
				return err
			}
		}
		if err := writeInt16Record(w, format.COLROW, []int16{e.Columns, e.Rows}); err != nil {
			return err
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY([]Point{e.Origin, e.ColEnd, e.RowEnd})); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	case Node:
		if len(e.XY) == 0 {
			return errs.ErrStructuralViolation
		}
		if err := WriteRawRecord(w, format.NODE, format.NoData, nil); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.LAYER, []int16{e.Layer}); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.NODETYPE, []int16{e.NodeType}); err != nil {
			return err
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY(e.XY)); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	case Box:
		if len(e.XY) == 0 {
			return errs.ErrStructuralViolation
		}
		if err := WriteRawRecord(w, format.BOX, format.NoData, nil); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.LAYER, []int16{e.Layer}); err != nil {
			return err
		}
		if err := writeInt16Record(w, format.BOXTYPE, []int16{e.BoxType}); err != nil {
			return err
		}
		if err := WriteRawRecord(w, format.XY, format.Int4, encodeXY(e.XY)); err != nil {
			return err
		}

		return writeTrailer(w, e.Properties)

	default:
		return errs.ErrUnknownRecord
	}
}

func writeTransform(w io.Writer, t *Transform) error {
	var bits uint16
	if t.Reflect {
		bits |= 0x8000
	}
	if t.AbsMagnification {
		bits |= 0x0004
	}
	if t.AbsAngle {
		bits |= 0x0002
	}

	if err := writeInt16Record(w, format.STRANS, []int16{int16(bits)}); err != nil {
		return err
	}

	if t.Magnification != nil {
		mag, err := encodeReal8s([]float64{*t.Magnification})
		if err != nil {
			return err
		}
		if err := WriteRawRecord(w, format.MAG, format.Real8, mag); err != nil {
			return err
		}
	}
	if t.Angle != nil {
		ang, err := encodeReal8s([]float64{*t.Angle})
		if err != nil {
			return err
		}
		if err := WriteRawRecord(w, format.ANGLE, format.Real8, ang); err != nil {
			return err
		}
	}

	return nil
}

func writeTrailer(w io.Writer, props []Property) error {
	for _, p := range props {
		if err := writeInt16Record(w, format.PROPATTR, []int16{p.Attr}); err != nil {
			return err
		}
		if err := writeASCIIRecord(w, format.PROPVALUE, p.Value); err != nil {
			return err
		}
	}

	return WriteRawRecord(w, format.ENDEL, format.NoData, nil)
}

func writeInt16Record(w io.Writer, rt format.RecordType, vals []int16) error {
	return WriteRawRecord(w, rt, format.Int2, encodeInt16s(vals))
}

func writeInt32Record(w io.Writer, rt format.RecordType, vals []int32) error {
	return WriteRawRecord(w, rt, format.Int4, encodeInt32s(vals))
}

func writeASCIIRecord(w io.Writer, rt format.RecordType, s string) error {
	return WriteRawRecord(w, rt, format.ASCIIStr, framing.PadASCII(s))
}
