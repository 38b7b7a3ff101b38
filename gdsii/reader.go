package gdsii

import (
	"io"
	"os"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/format"
	"github.com/GiridharSalana/laykit/framing"
)

// Read parses a complete legacy stream into a Library.
//
// It drives the same state machine as StreamReader but accumulates every
// structure into memory; for very large libraries, prefer StreamReader.
func Read(r io.Reader) (*Library, error) {
	lib := &Library{}

	sr := NewStreamReader(r)

	header, err := sr.ReadHeader()
	if err != nil {
		return nil, err
	}

	lib.Name = header.Name
	lib.Version = header.Version
	lib.UserUnit = header.UserUnit
	lib.DatabaseUnit = header.DatabaseUnit
	lib.Created = header.Created
	lib.Modified = header.Modified

	for {
		st, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		lib.Structures = append(lib.Structures, *st)
	}

	return lib, nil
}

// LibraryHeader carries the fields of BGNLIB/LIBNAME/UNITS, parsed ahead of
// the per-structure loop.
type LibraryHeader struct {
	Version      int16
	Name         string
	UserUnit     float64
	DatabaseUnit float64
	Created      Timestamp
	Modified     Timestamp
}

// readerState names the legacy stream grammar's states, per spec §4.2's
// production rules: a strict HEADER -> BGNLIB -> (LIBNAME -> UNITS) ->
// structure* -> ENDLIB sequence, each structure itself BGNSTR -> STRNAME ->
// element* -> ENDSTR.
type readerState int

const (
	stateExpectHeader readerState = iota
	stateExpectBgnlib
	stateExpectLibname
	stateExpectUnits
	stateInLibrary // expects BGNSTR or ENDLIB
	stateDone
)

// StreamReader drives the legacy stream grammar one structure at a time,
// so a caller can process arbitrarily large libraries without
// materializing the whole tree, per spec §5.
type StreamReader struct {
	r     io.Reader
	state readerState
}

// NewStreamReader wraps r. Call ReadHeader before Next.
//
// If r is an *os.File, NewStreamReader issues a one-time sequential
// read-ahead hint to the kernel (a no-op on non-unix platforms).
func NewStreamReader(r io.Reader) *StreamReader {
	if f, ok := r.(*os.File); ok {
		hintSequentialReadAhead(f)
	}

	return &StreamReader{r: bufferedReadAhead(r), state: stateExpectHeader}
}

// ReadHeader consumes HEADER, BGNLIB, LIBNAME, and UNITS, returning the
// parsed library-level fields.
func (sr *StreamReader) ReadHeader() (LibraryHeader, error) {
	if sr.state != stateExpectHeader {
		return LibraryHeader{}, errs.ErrUnexpectedRecord
	}

	var hdr LibraryHeader

	rec, err := ReadRawRecord(sr.r)
	if err != nil {
		return LibraryHeader{}, err
	}
	if rec.Type != format.HEADER {
		return LibraryHeader{}, errs.ErrUnexpectedRecord
	}

	vals, err := decodeInt16s(rec.Data)
	if err != nil || len(vals) != 1 {
		return LibraryHeader{}, errs.ErrBadRecordLength
	}
	hdr.Version = vals[0]

	rec, err = ReadRawRecord(sr.r)
	if err != nil {
		return LibraryHeader{}, err
	}
	if rec.Type != format.BGNLIB {
		return LibraryHeader{}, errs.ErrUnexpectedRecord
	}

	ts, err := decodeInt16s(rec.Data)
	if err != nil || len(ts) != 12 {
		return LibraryHeader{}, errs.ErrBadRecordLength
	}
	hdr.Modified = Timestamp{Year: ts[0], Month: ts[1], Day: ts[2], Hour: ts[3], Minute: ts[4], Second: ts[5]}
	hdr.Created = Timestamp{Year: ts[6], Month: ts[7], Day: ts[8], Hour: ts[9], Minute: ts[10], Second: ts[11]}

	rec, err = ReadRawRecord(sr.r)
	if err != nil {
		return LibraryHeader{}, err
	}
	if rec.Type != format.LIBNAME {
		return LibraryHeader{}, errs.ErrUnexpectedRecord
	}
	hdr.Name = framing.TrimASCIIPad(rec.Data)

	rec, err = ReadRawRecord(sr.r)
	if err != nil {
		return LibraryHeader{}, err
	}
	if rec.Type != format.UNITS {
		return LibraryHeader{}, errs.ErrUnexpectedRecord
	}

	units, err := decodeReal8s(rec.Data)
	if err != nil || len(units) != 2 {
		return LibraryHeader{}, errs.ErrBadRecordLength
	}
	hdr.UserUnit = units[0]
	hdr.DatabaseUnit = units[1]

	sr.state = stateInLibrary

	return hdr, nil
}

// Next returns the next structure in the library, or io.EOF once ENDLIB
// has been consumed.
func (sr *StreamReader) Next() (*Structure, error) {
	if sr.state != stateInLibrary {
		return nil, errs.ErrUnexpectedRecord
	}

	rec, err := ReadRawRecord(sr.r)
	if err != nil {
		return nil, err
	}

	if rec.Type == format.ENDLIB {
		sr.state = stateDone
		return nil, io.EOF
	}
	if rec.Type != format.BGNSTR {
		return nil, errs.ErrUnexpectedRecord
	}

	st := &Structure{}

	ts, err := decodeInt16s(rec.Data)
	if err != nil || len(ts) != 12 {
		return nil, errs.ErrBadRecordLength
	}
	st.Modified = Timestamp{Year: ts[0], Month: ts[1], Day: ts[2], Hour: ts[3], Minute: ts[4], Second: ts[5]}
	st.Created = Timestamp{Year: ts[6], Month: ts[7], Day: ts[8], Hour: ts[9], Minute: ts[10], Second: ts[11]}

	rec, err = ReadRawRecord(sr.r)
	if err != nil {
		return nil, err
	}
	if rec.Type != format.STRNAME {
		return nil, errs.ErrUnexpectedRecord
	}
	st.Name = framing.TrimASCIIPad(rec.Data)

	for {
		rec, err = ReadRawRecord(sr.r)
		if err != nil {
			return nil, err
		}

		if rec.Type == format.ENDSTR {
			break
		}

		if !isElementOpener(rec.Type) {
			// An unrecognized record between elements is skipped rather
			// than treated as an element opener; ReadRawRecord has
			// already consumed it in full, so skipping is simply not
			// dispatching it to readElement. Unknown records inside an
			// element body remain a hard error (readElement's default
			// case).
			continue
		}

		el, err := readElement(sr.r, rec)
		if err != nil {
			return nil, err
		}

		st.Elements = append(st.Elements, el)
	}

	return st, nil
}

// readElement parses one element body, given its opening record (the
// element-kind record itself: BOUNDARY, PATH, SREF, AREF, TEXT, NODE, or
// BOX), consuming records from r until ENDEL.
func readElement(r io.Reader, open RawRecord) (Element, error) {
	var (
		layer, datatype, textType, nodeType, boxType int16
		pathType                                      PathType
		width, beginExtn, endExtn                     *int32
		xy                                             []Point
		presentation                                   uint16
		transform                                      *Transform
		sname                                          string
		colRow                                          [2]int16
		text                                            string
		props                                           []Property
	)

	for {
		rec, err := ReadRawRecord(r)
		if err != nil {
			return nil, err
		}

		switch rec.Type {
		case format.ENDEL:
			return buildElement(open.Type, layer, datatype, textType, nodeType, boxType,
				pathType, width, beginExtn, endExtn, xy, presentation, transform, sname,
				colRow, text, props)

		case format.LAYER:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			layer = v[0]

		case format.DATATYPE:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			datatype = v[0]

		case format.TEXTTYPE:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			textType = v[0]

		case format.NODETYPE:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			nodeType = v[0]

		case format.BOXTYPE:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			boxType = v[0]

		case format.PATHTYPE:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			pathType = PathType(v[0])

		case format.WIDTH:
			v, err := decodeInt32s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			width = &v[0]

		case format.BGNEXTN:
			v, err := decodeInt32s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			beginExtn = &v[0]

		case format.ENDEXTN:
			v, err := decodeInt32s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			endExtn = &v[0]

		case format.XY:
			xy, err = decodeXY(rec.Data)
			if err != nil {
				return nil, err
			}

		case format.PRESENTATION:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			presentation = uint16(v[0])

		case format.STRANS:
			transform, err = readStrans(rec)
			if err != nil {
				return nil, err
			}

		case format.MAG:
			if transform == nil {
				return nil, errs.ErrUnexpectedRecord
			}

			v, err := decodeReal8s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			transform.Magnification = &v[0]

		case format.ANGLE:
			if transform == nil {
				return nil, errs.ErrUnexpectedRecord
			}

			v, err := decodeReal8s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}
			transform.Angle = &v[0]

		case format.SNAME:
			sname = framing.TrimASCIIPad(rec.Data)

		case format.COLROW:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 2 {
				return nil, errs.ErrBadRecordLength
			}
			colRow[0], colRow[1] = v[0], v[1]

		case format.STRING:
			text = framing.TrimASCIIPad(rec.Data)

		case format.PROPATTR:
			v, err := decodeInt16s(rec.Data)
			if err != nil || len(v) != 1 {
				return nil, errs.ErrBadRecordLength
			}

			valRec, err := ReadRawRecord(r)
			if err != nil {
				return nil, err
			}
			if valRec.Type != format.PROPVALUE {
				return nil, errs.ErrUnexpectedRecord
			}

			props = append(props, Property{Attr: v[0], Value: framing.TrimASCIIPad(valRec.Data)})

		default:
			return nil, errs.ErrUnknownRecord
		}
	}
}

// readStrans decodes the STRANS bit-flag record into a Transform. The
// optional MAG/ANGLE records that may follow it are read by readElement,
// which fills in the returned Transform's Magnification and Angle.
func readStrans(strans RawRecord) (*Transform, error) {
	v, err := decodeInt16s(strans.Data)
	if err != nil || len(v) != 1 {
		return nil, errs.ErrBadRecordLength
	}

	bits := uint16(v[0])
	t := &Transform{
		Reflect:          bits&0x8000 != 0,
		AbsMagnification: bits&0x0004 != 0,
		AbsAngle:         bits&0x0002 != 0,
	}

	return t, nil
}

// buildElement assembles the accumulated per-record fields into the
// concrete Element variant matching the element's opening record type.
func buildElement(
	kind format.RecordType,
	layer, datatype, textType, nodeType, boxType int16,
	pathType PathType,
	width, beginExtn, endExtn *int32,
	xy []Point,
	presentation uint16,
	transform *Transform,
	sname string,
	colRow [2]int16,
	text string,
	props []Property,
) (Element, error) {
	switch kind {
	case format.BOUNDARY:
		return Boundary{Layer: layer, Datatype: datatype, XY: xy, Properties: props}, nil

	case format.PATH:
		return Path{
			Layer: layer, Datatype: datatype, PathType: pathType,
			Width: width, BeginExtn: beginExtn, EndExtn: endExtn,
			XY: xy, Properties: props,
		}, nil

	case format.TEXT:
		if len(xy) != 1 {
			return nil, errs.ErrStructuralViolation
		}

		return Text{
			Layer: layer, TextType: textType, Presentation: presentation,
			Transform: transform, Position: xy[0], Value: text, Properties: props,
		}, nil

	case format.SREF:
		if len(xy) != 1 {
			return nil, errs.ErrStructuralViolation
		}

		return StructRef{Name: sname, Position: xy[0], Transform: transform, Properties: props}, nil

	case format.AREF:
		if len(xy) != 3 {
			return nil, errs.ErrStructuralViolation
		}

		return ArrayRef{
			Name: sname, Columns: colRow[0], Rows: colRow[1],
			Origin: xy[0], ColEnd: xy[1], RowEnd: xy[2],
			Transform: transform, Properties: props,
		}, nil

	case format.NODE:
		return Node{Layer: layer, NodeType: nodeType, XY: xy, Properties: props}, nil

	case format.BOX:
		return Box{Layer: layer, BoxType: boxType, XY: xy, Properties: props}, nil

	default:
		return nil, errs.ErrUnknownRecord
	}
}

// isElementOpener reports whether kind opens one of the recognized element
// types. A record type appearing between elements that fails this check is
// skipped rather than misread as an element; readElement's default case
// still rejects an unknown record type found inside an element body.
func isElementOpener(kind format.RecordType) bool {
	switch kind {
	case format.BOUNDARY, format.PATH, format.TEXT, format.SREF, format.AREF, format.NODE, format.BOX:
		return true
	default:
		return false
	}
}
