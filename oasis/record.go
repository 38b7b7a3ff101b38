package oasis

import (
	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/framing"
)

// info-byte bits shared by every element kind's uniform modal-context
// frame (see ModalState's doc comment for why this package's info-byte
// covers only these fields).
const (
	infoLayer      = 1 << 0
	infoDatatype   = 1 << 1
	infoX          = 1 << 2
	infoY          = 1 << 3
	infoSize       = 1 << 4
	infoSize2      = 1 << 5
	infoRepetition = 1 << 6
	infoProperties = 1 << 7
)

// elementHeader is the uniform (layer, datatype, x, y, size, size2,
// repetition, properties) frame shared by every shape's info byte.
type elementHeader struct {
	Layer, Datatype uint64
	X, Y            int64
	Size, Size2     uint64
	Repetition      *Repetition
	Properties      []Property
}

func appendElementHeader(buf []byte, h elementHeader, modal *ModalState, hasSize, hasSize2 bool) []byte {
	var info uint8

	if h.Layer != modal.Layer {
		info |= infoLayer
	}
	if h.Datatype != modal.Datatype {
		info |= infoDatatype
	}
	if h.X != modal.GeometryX {
		info |= infoX
	}
	if h.Y != modal.GeometryY {
		info |= infoY
	}
	if hasSize && h.Size != modal.Size {
		info |= infoSize
	}
	if hasSize2 && h.Size2 != modal.Size2 {
		info |= infoSize2
	}
	if h.Repetition != nil {
		info |= infoRepetition
	}
	if len(h.Properties) > 0 {
		info |= infoProperties
	}

	buf = append(buf, info)

	if info&infoLayer != 0 {
		buf = framing.AppendUvarint(buf, h.Layer)
	}
	if info&infoDatatype != 0 {
		buf = framing.AppendUvarint(buf, h.Datatype)
	}
	if info&infoX != 0 {
		buf = framing.AppendVarint(buf, h.X)
	}
	if info&infoY != 0 {
		buf = framing.AppendVarint(buf, h.Y)
	}
	if info&infoSize != 0 {
		buf = framing.AppendUvarint(buf, h.Size)
	}
	if info&infoSize2 != 0 {
		buf = framing.AppendUvarint(buf, h.Size2)
	}
	if info&infoRepetition != 0 {
		buf = AppendRepetition(buf, h.Repetition)
	}
	if info&infoProperties != 0 {
		buf = appendProperties(buf, h.Properties)
	}

	modal.Layer, modal.Datatype, modal.GeometryX, modal.GeometryY = h.Layer, h.Datatype, h.X, h.Y
	if hasSize {
		modal.Size = h.Size
	}
	if hasSize2 {
		modal.Size2 = h.Size2
	}
	if h.Repetition != nil {
		modal.Repetition = h.Repetition
	}

	return buf
}

func readElementHeader(data []byte, modal *ModalState) (elementHeader, int, error) {
	if len(data) == 0 {
		return elementHeader{}, 0, errs.ErrUnexpectedEOF
	}

	info := data[0]
	pos := 1

	h := elementHeader{
		Layer: modal.Layer, Datatype: modal.Datatype,
		X: modal.GeometryX, Y: modal.GeometryY,
		Size: modal.Size, Size2: modal.Size2,
		Repetition: modal.Repetition,
	}

	if info&infoLayer != 0 {
		v, n, err := framing.Uvarint(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Layer = v
		pos += n
	}
	if info&infoDatatype != 0 {
		v, n, err := framing.Uvarint(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Datatype = v
		pos += n
	}
	if info&infoX != 0 {
		v, n, err := framing.Varint(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.X = v
		pos += n
	}
	if info&infoY != 0 {
		v, n, err := framing.Varint(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Y = v
		pos += n
	}
	if info&infoSize != 0 {
		v, n, err := framing.Uvarint(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Size = v
		pos += n
	}
	if info&infoSize2 != 0 {
		v, n, err := framing.Uvarint(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Size2 = v
		pos += n
	}
	if info&infoRepetition != 0 {
		rep, n, err := ReadRepetition(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Repetition = rep
		pos += n
	}
	if info&infoProperties != 0 {
		props, n, err := readProperties(data[pos:])
		if err != nil {
			return elementHeader{}, 0, err
		}
		h.Properties = props
		pos += n
	}

	modal.Layer, modal.Datatype, modal.GeometryX, modal.GeometryY = h.Layer, h.Datatype, h.X, h.Y
	modal.Size, modal.Size2 = h.Size, h.Size2
	if h.Repetition != nil {
		modal.Repetition = h.Repetition
	}

	return h, pos, nil
}

// appendProperties appends a varint property count, then each property as
// a name (varint-length string) followed by a varint value count and that
// many values, each a kind tag byte followed by the value in that kind's
// encoding (modal real, unsigned or signed varint, or string).
func appendProperties(buf []byte, props []Property) []byte {
	buf = framing.AppendUvarint(buf, uint64(len(props)))

	for _, p := range props {
		buf = framing.WriteOASISString(buf, p.Name)
		buf = framing.AppendUvarint(buf, uint64(len(p.Values)))

		for _, v := range p.Values {
			buf = append(buf, byte(v.Kind))

			switch v.Kind {
			case PropValueReal:
				buf = framing.AppendModalReal(buf, v.Real)
			case PropValueUnsignedInt:
				buf = framing.AppendUvarint(buf, uint64(v.Int))
			case PropValueSignedInt:
				buf = framing.AppendVarint(buf, v.Int)
			case PropValueAString, PropValueBString, PropValueNString:
				buf = framing.WriteOASISString(buf, v.String)
			}
		}
	}

	return buf
}

func readProperties(data []byte) ([]Property, int, error) {
	count, n, err := framing.Uvarint(data)
	if err != nil {
		return nil, 0, err
	}

	pos := n
	props := make([]Property, count)

	for i := range props {
		name, n, err := framing.ReadOASISString(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += n
		props[i].Name = name

		valCount, n, err := framing.Uvarint(data[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += n

		props[i].Values = make([]PropertyValue, valCount)
		for j := range props[i].Values {
			if pos >= len(data) {
				return nil, 0, errs.ErrUnexpectedEOF
			}

			kind := PropertyValueKind(data[pos])
			pos++

			v := PropertyValue{Kind: kind}

			switch kind {
			case PropValueReal:
				real, _, n, err := framing.ReadModalReal(data[pos:])
				if err != nil {
					return nil, 0, err
				}
				v.Real = real
				pos += n

			case PropValueUnsignedInt:
				u, n, err := framing.Uvarint(data[pos:])
				if err != nil {
					return nil, 0, err
				}
				v.Int = int64(u)
				pos += n

			case PropValueSignedInt:
				s, n, err := framing.Varint(data[pos:])
				if err != nil {
					return nil, 0, err
				}
				v.Int = s
				pos += n

			case PropValueAString, PropValueBString, PropValueNString:
				s, n, err := framing.ReadOASISString(data[pos:])
				if err != nil {
					return nil, 0, err
				}
				v.String = s
				pos += n
			}

			props[i].Values[j] = v
		}
	}

	return props, pos, nil
}
