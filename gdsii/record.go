package gdsii

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/GiridharSalana/laykit/endian"
	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/format"
	"github.com/GiridharSalana/laykit/framing"
)

// recordHeaderSize is the 4-byte [u16 length][u8 type][u8 data-type] header
// that precedes every legacy stream record, per spec §4.1.
const recordHeaderSize = 4

// engine is the legacy format's fixed byte order: big-endian, always.
var engine = endian.GetBigEndianEngine()

// RawRecord is a single decoded record frame: its type, data type, and raw
// payload bytes (not including the 4-byte header).
type RawRecord struct {
	Type     format.RecordType
	DataType format.DataType
	Data     []byte
}

// ReadRawRecord reads one record frame from r.
//
// It returns io.EOF only when r is exhausted exactly at a record
// boundary (the natural end of a well-formed stream after ENDLIB);
// any other truncation yields errs.ErrUnexpectedEOF, and a length field
// smaller than the 4-byte header yields errs.ErrBadRecordLength.
func ReadRawRecord(r io.Reader) (RawRecord, error) {
	var header [recordHeaderSize]byte

	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return RawRecord{}, io.EOF
		}

		return RawRecord{}, errs.ErrUnexpectedEOF
	}

	length := engine.Uint16(header[0:2])
	if int(length) < recordHeaderSize {
		return RawRecord{}, errs.ErrBadRecordLength
	}

	payload := make([]byte, int(length)-recordHeaderSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return RawRecord{}, errs.ErrUnexpectedEOF
	}

	return RawRecord{
		Type:     format.RecordType(header[2]),
		DataType: format.DataType(header[3]),
		Data:     payload,
	}, nil
}

// WriteRawRecord writes one record frame to w: a 4-byte header followed
// by payload. The caller is responsible for padding ASCII payloads to an
// even length before calling this (see framing.PadASCII).
func WriteRawRecord(w io.Writer, rt format.RecordType, dt format.DataType, payload []byte) error {
	length := recordHeaderSize + len(payload)
	if length > 0xFFFF {
		return errs.ErrBadRecordLength
	}

	var header [recordHeaderSize]byte
	engine.PutUint16(header[0:2], uint16(length))
	header[2] = byte(rt)
	header[3] = byte(dt)

	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}

	return nil
}

// decodeInt16s decodes a big-endian array of 16-bit signed integers.
func decodeInt16s(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, errs.ErrBadRecordLength
	}

	out := make([]int16, len(data)/2)
	for i := range out {
		out[i] = int16(engine.Uint16(data[i*2:]))
	}

	return out, nil
}

func encodeInt16s(vals []int16) []byte {
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		engine.PutUint16(out[i*2:], uint16(v))
	}

	return out
}

// decodeInt32s decodes a big-endian array of 32-bit signed integers (used
// for XY coordinate payloads).
func decodeInt32s(data []byte) ([]int32, error) {
	if len(data)%4 != 0 {
		return nil, errs.ErrBadRecordLength
	}

	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = int32(engine.Uint32(data[i*4:]))
	}

	return out, nil
}

func encodeInt32s(vals []int32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		engine.PutUint32(out[i*4:], uint32(v))
	}

	return out
}

// decodeReal8s decodes a big-endian array of legacy 8-byte reals.
func decodeReal8s(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, errs.ErrBadRecordLength
	}

	out := make([]float64, len(data)/8)
	for i := range out {
		bits := binary.BigEndian.Uint64(data[i*8:])
		out[i] = framing.DecodeReal8(framing.Real8Bits(bits))
	}

	return out, nil
}

func encodeReal8s(vals []float64) ([]byte, error) {
	out := make([]byte, len(vals)*8)

	for i, v := range vals {
		bits, err := framing.EncodeReal8(v)
		if err != nil {
			return nil, err
		}

		binary.BigEndian.PutUint64(out[i*8:], uint64(bits))
	}

	return out, nil
}

// decodeXY decodes an XY record payload into Points.
func decodeXY(data []byte) ([]Point, error) {
	ints, err := decodeInt32s(data)
	if err != nil {
		return nil, err
	}
	if len(ints)%2 != 0 {
		return nil, errs.ErrBadRecordLength
	}

	out := make([]Point, len(ints)/2)
	for i := range out {
		out[i] = Point{X: ints[i*2], Y: ints[i*2+1]}
	}

	return out, nil
}

func encodeXY(pts []Point) []byte {
	ints := make([]int32, 0, len(pts)*2)
	for _, p := range pts {
		ints = append(ints, p.X, p.Y)
	}

	return encodeInt32s(ints)
}
