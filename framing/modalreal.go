package framing

import (
	"encoding/binary"
	"math"

	"github.com/GiridharSalana/laykit/errs"
)

// ModalRealKind is the leading unsigned-varint tag of an OASIS modal real,
// selecting one of the eight representations in spec §4.1.
type ModalRealKind uint8

const (
	RealPositiveInteger   ModalRealKind = 0
	RealNegativeInteger   ModalRealKind = 1
	RealPositiveReciprocal ModalRealKind = 2
	RealNegativeReciprocal ModalRealKind = 3
	RealPositiveRatio     ModalRealKind = 4
	RealNegativeRatio     ModalRealKind = 5
	RealFloat32           ModalRealKind = 6
	RealFloat64           ModalRealKind = 7
)

// maxCompactDenominator bounds the denominator search for the ratio forms
// (tags 4/5); values beyond this are written as tag 7 (IEEE double).
const maxCompactDenominator = 1 << 20

// AppendModalReal appends the most compact modal-real encoding that
// exactly represents v: an integer (tag 0/1) if |v| is a whole number
// below 2^32, a reciprocal (tag 2/3) if 1/|v| is, a small-denominator
// ratio (tag 4/5) if one can be found, otherwise an IEEE double (tag 7). Readers MUST accept all eight
// forms; this writer never emits tag 6 (float32), reserving single
// precision for values read from a file that already used it.
func AppendModalReal(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		// Not representable exactly; fall back to the nearest double form,
		// matching NaN/Inf's own bit pattern.
		return appendTag7(buf, v)
	}

	neg := math.Signbit(v)
	mag := math.Abs(v)

	if mag == math.Trunc(mag) && mag < (1<<32) {
		tag := RealPositiveInteger
		if neg {
			tag = RealNegativeInteger
		}

		buf = AppendUvarint(buf, uint64(tag))
		return AppendUvarint(buf, uint64(mag))
	}

	if mag > 0 {
		recip := 1 / mag
		if recip == math.Trunc(recip) && recip < (1<<32) {
			tag := RealPositiveReciprocal
			if neg {
				tag = RealNegativeReciprocal
			}

			buf = AppendUvarint(buf, uint64(tag))
			return AppendUvarint(buf, uint64(recip))
		}
	}

	if num, den, ok := exactRatio(mag); ok {
		tag := RealPositiveRatio
		if neg {
			tag = RealNegativeRatio
		}

		buf = AppendUvarint(buf, uint64(tag))
		buf = AppendUvarint(buf, num)
		return AppendUvarint(buf, den)
	}

	return appendTag7(buf, v)
}

func appendTag7(buf []byte, v float64) []byte {
	buf = AppendUvarint(buf, uint64(RealFloat64))
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	return append(buf, tmp[:]...)
}

// exactRatio searches for a small-denominator fraction num/den that
// exactly reproduces mag (mag > 0, not an integer or reciprocal) using a
// continued-fraction expansion, the standard technique for finding the
// best rational approximations of a real number.
func exactRatio(mag float64) (num, den uint64, ok bool) {
	// Continued fraction convergents p/q of mag.
	var p0, p1 uint64 = 0, 1
	var q0, q1 uint64 = 1, 0
	x := mag

	for i := 0; i < 32; i++ {
		a := math.Floor(x)
		if a < 0 || a >= (1<<32) {
			return 0, 0, false
		}

		ai := uint64(a)
		p2 := ai*p1 + p0
		q2 := ai*q1 + q0

		if q2 == 0 || q2 > maxCompactDenominator {
			break
		}

		p0, p1 = p1, p2
		q0, q1 = q1, q2

		if float64(p1)/float64(q1) == mag {
			return p1, q1, true
		}

		frac := x - a
		if frac == 0 {
			break
		}

		x = 1 / frac
	}

	return 0, 0, false
}

// ReadModalReal decodes a modal real from the start of data, returning its
// value as a float64, the kind tag that was used, and the number of bytes
// consumed.
func ReadModalReal(data []byte) (value float64, kind ModalRealKind, n int, err error) {
	tagVal, tn, err := Uvarint(data)
	if err != nil {
		return 0, 0, 0, err
	}
	if tn == 0 {
		return 0, 0, 0, nil
	}

	kind = ModalRealKind(tagVal)
	rest := data[tn:]

	switch kind {
	case RealPositiveInteger, RealNegativeInteger, RealPositiveReciprocal, RealNegativeReciprocal:
		u, un, uerr := Uvarint(rest)
		if uerr != nil {
			return 0, 0, 0, uerr
		}
		if un == 0 {
			return 0, 0, 0, nil
		}

		v := float64(u)
		switch kind {
		case RealNegativeInteger:
			v = -v
		case RealPositiveReciprocal:
			v = 1 / v
		case RealNegativeReciprocal:
			v = -1 / v
		}

		return v, kind, tn + un, nil

	case RealPositiveRatio, RealNegativeRatio:
		numU, n1, e1 := Uvarint(rest)
		if e1 != nil {
			return 0, 0, 0, e1
		}
		if n1 == 0 {
			return 0, 0, 0, nil
		}

		denU, n2, e2 := Uvarint(rest[n1:])
		if e2 != nil {
			return 0, 0, 0, e2
		}
		if n2 == 0 {
			return 0, 0, 0, nil
		}

		v := float64(numU) / float64(denU)
		if kind == RealNegativeRatio {
			v = -v
		}

		return v, kind, tn + n1 + n2, nil

	case RealFloat32:
		if len(rest) < 4 {
			return 0, 0, 0, nil
		}

		bits := binary.LittleEndian.Uint32(rest[:4])
		return float64(math.Float32frombits(bits)), kind, tn + 4, nil

	case RealFloat64:
		if len(rest) < 8 {
			return 0, 0, 0, nil
		}

		bits := binary.LittleEndian.Uint64(rest[:8])
		return math.Float64frombits(bits), kind, tn + 8, nil

	default:
		return 0, 0, 0, errs.ErrBadRecordLength
	}
}
