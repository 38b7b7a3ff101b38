package oasis

import "github.com/GiridharSalana/laykit/framing"

// RepetitionKind is the repetition record's leading type tag (spec §4.3,
// "type 0..11").
type RepetitionKind uint8

const (
	RepInherit      RepetitionKind = 0
	RepRegularGrid  RepetitionKind = 1
	RepRegularX     RepetitionKind = 2
	RepRegularY     RepetitionKind = 3
	RepVaryingXGrid RepetitionKind = 4
	RepVaryingX     RepetitionKind = 5
	RepVaryingYGrid RepetitionKind = 6
	RepVaryingY     RepetitionKind = 7
	RepDiagonalGrid RepetitionKind = 8
	RepDiagonal     RepetitionKind = 9
	RepArbitraryGrid RepetitionKind = 10
	RepArbitrary    RepetitionKind = 11
)

// Repetition describes a set of repeated instances of one element, one
// placement, or one piece of geometry.
//
// Every kind is normalized into Offsets: the displacement of every repeat
// after the first, relative to the element's own anchor, in stream
// order. Columns/Rows/XStep/YStep additionally capture the compact form
// for RepRegularGrid/RepRegularX/RepRegularY, so a writer can re-emit the
// most compact applicable type instead of always falling back to the
// general point list; it is geometrically equivalent either way, which is
// all spec §4.3 requires of a normalizing reader.
type Repetition struct {
	Kind    RepetitionKind
	Columns, Rows int
	XStep, YStep  int64
	Offsets       []Point
}

// AppendRepetition encodes r onto buf.
func AppendRepetition(buf []byte, r *Repetition) []byte {
	if r == nil || r.Kind == RepInherit {
		return framing.AppendUvarint(buf, uint64(RepInherit))
	}

	switch r.Kind {
	case RepRegularGrid:
		buf = framing.AppendUvarint(buf, uint64(RepRegularGrid))
		buf = framing.AppendUvarint(buf, uint64(r.Columns-2))
		buf = framing.AppendUvarint(buf, uint64(r.Rows-2))
		buf = framing.AppendVarint(buf, r.XStep)
		buf = framing.AppendVarint(buf, r.YStep)

		return buf

	case RepRegularX:
		buf = framing.AppendUvarint(buf, uint64(RepRegularX))
		buf = framing.AppendUvarint(buf, uint64(r.Columns-2))
		buf = framing.AppendVarint(buf, r.XStep)

		return buf

	case RepRegularY:
		buf = framing.AppendUvarint(buf, uint64(RepRegularY))
		buf = framing.AppendUvarint(buf, uint64(r.Rows-2))
		buf = framing.AppendVarint(buf, r.YStep)

		return buf

	default:
		// Every other kind (varying, diagonal, arbitrary) is re-emitted
		// as the general arbitrary point list (type 11): geometrically
		// equivalent to any original type, per spec §4.3.
		buf = framing.AppendUvarint(buf, uint64(RepArbitrary))
		buf = framing.AppendUvarint(buf, uint64(len(r.Offsets)))

		for _, p := range r.Offsets {
			buf = framing.AppendVarint(buf, p.X)
			buf = framing.AppendVarint(buf, p.Y)
		}

		return buf
	}
}

// ReadRepetition decodes one repetition from the start of data, returning
// it and the number of bytes consumed.
func ReadRepetition(data []byte) (*Repetition, int, error) {
	kindVal, n, err := framing.Uvarint(data)
	if err != nil {
		return nil, 0, err
	}

	kind := RepetitionKind(kindVal)
	total := n

	switch kind {
	case RepInherit:
		return nil, total, nil

	case RepRegularGrid:
		cols, n2, err := framing.Uvarint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		rows, n2, err := framing.Uvarint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		xstep, n2, err := framing.Varint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		ystep, n2, err := framing.Varint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		r := &Repetition{
			Kind: kind, Columns: int(cols) + 2, Rows: int(rows) + 2,
			XStep: xstep, YStep: ystep,
		}
		r.Offsets = regularGridOffsets(r.Columns, r.Rows, xstep, ystep)

		return r, total, nil

	case RepRegularX:
		cols, n2, err := framing.Uvarint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		xstep, n2, err := framing.Varint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		r := &Repetition{Kind: kind, Columns: int(cols) + 2, XStep: xstep}
		r.Offsets = regularGridOffsets(r.Columns, 1, xstep, 0)

		return r, total, nil

	case RepRegularY:
		rows, n2, err := framing.Uvarint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		ystep, n2, err := framing.Varint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		r := &Repetition{Kind: kind, Rows: int(rows) + 2, YStep: ystep}
		r.Offsets = regularGridOffsets(1, r.Rows, 0, ystep)

		return r, total, nil

	default:
		// RepVaryingXGrid/RepVaryingX/RepVaryingYGrid/RepVaryingY/
		// RepDiagonalGrid/RepDiagonal/RepArbitraryGrid/RepArbitrary all
		// share the explicit-point-list wire shape: a count followed by
		// that many (dx, dy) pairs, per spec §4.3's type 2-11 summary.
		count, n2, err := framing.Uvarint(data[total:])
		if err != nil {
			return nil, 0, err
		}
		total += n2

		offsets := make([]Point, count)
		for i := range offsets {
			dx, n2, err := framing.Varint(data[total:])
			if err != nil {
				return nil, 0, err
			}
			total += n2

			dy, n2, err := framing.Varint(data[total:])
			if err != nil {
				return nil, 0, err
			}
			total += n2

			offsets[i] = Point{X: dx, Y: dy}
		}

		return &Repetition{Kind: kind, Offsets: offsets}, total, nil
	}
}

// regularGridOffsets expands a regular columns x rows grid of step
// (xstep, ystep) into the full displacement list, excluding the (0,0)
// origin instance.
func regularGridOffsets(columns, rows int, xstep, ystep int64) []Point {
	offsets := make([]Point, 0, columns*rows-1)

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			if row == 0 && col == 0 {
				continue
			}

			offsets = append(offsets, Point{X: int64(col) * xstep, Y: int64(row) * ystep})
		}
	}

	return offsets
}
