package framing

import "github.com/GiridharSalana/laykit/errs"

// maxVarintBytes bounds an OASIS unsigned varint to 10 bytes in total (70
// bits of payload, the fewest bytes that hold any 64-bit value), per spec
// §4.1: decoders MUST reject sequences longer than this with a distinct
// overflow error.
const maxVarintBytes = 10

// PutUvarint encodes an unsigned 64-bit integer as an OASIS unsigned
// varint: 7 payload bits per byte, little-endian, with the high bit of
// each byte set on all but the last byte.
//
// It returns the number of bytes written into buf, which must have
// capacity for at least 10 bytes.
func PutUvarint(buf []byte, v uint64) int {
	i := 0
	for v >= 0x80 {
		buf[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	buf[i] = byte(v)

	return i + 1
}

// AppendUvarint appends the unsigned-varint encoding of v to buf and
// returns the extended slice.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}

	return append(buf, byte(v))
}

// Uvarint decodes an unsigned OASIS varint from the start of data.
//
// It returns the decoded value and the number of bytes consumed. A
// returned count of 0 means data was exhausted before the terminal byte;
// a returned error of errs.ErrVarintOverflow means the first 10 bytes
// were all continuation bytes and an 11th byte followed.
func Uvarint(data []byte) (uint64, int, error) {
	var v uint64

	for i := 0; i < len(data); i++ {
		b := data[i]
		if i >= maxVarintBytes {
			return 0, 0, errs.ErrVarintOverflow
		}

		v |= uint64(b&0x7F) << (7 * i)
		if b < 0x80 {
			return v, i + 1, nil
		}
	}

	return 0, 0, nil
}

// ZigZagEncode maps a signed 64-bit integer to an unsigned one so that
// small-magnitude negative numbers encode in few varint bytes: n -> (n <<
// 1) XOR (n >> 63).
func ZigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// PutVarint encodes a signed integer using zig-zag followed by unsigned
// varint encoding, writing into buf (which must have capacity for at
// least 10 bytes) and returning the number of bytes written.
func PutVarint(buf []byte, n int64) int {
	return PutUvarint(buf, ZigZagEncode(n))
}

// AppendVarint appends the zig-zag + varint encoding of n to buf.
func AppendVarint(buf []byte, n int64) []byte {
	return AppendUvarint(buf, ZigZagEncode(n))
}

// Varint decodes a signed OASIS varint (zig-zag + unsigned varint) from
// the start of data, returning the value and the number of bytes
// consumed.
func Varint(data []byte) (int64, int, error) {
	u, n, err := Uvarint(data)
	if err != nil {
		return 0, 0, err
	}
	if n == 0 {
		return 0, 0, nil
	}

	return ZigZagDecode(u), n, nil
}
