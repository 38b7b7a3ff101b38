package framing

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/GiridharSalana/laykit/errs"
)

// PadASCII pads s to an even byte length with a single trailing NUL, per
// spec §4.1 ("odd lengths padded with one NUL byte to even length"). Even
// length strings are returned unchanged (as a byte slice copy).
func PadASCII(s string) []byte {
	b := []byte(s)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}

	return b
}

// TrimASCIIPad removes a single trailing NUL pad byte, if present, and
// returns the result as a string. It does not validate evenness; the
// caller already knows the payload length from the record header.
func TrimASCIIPad(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == 0 {
		return string(b[:len(b)-1])
	}

	return string(b)
}

// StrictASCII validates that b contains only bytes in the printable
// ISO-8859-1/ASCII range, returning an error wrapping
// errs.ErrBadRecordLength if not. GDSII and OASIS strings are specified as
// raw, UTF-8-agnostic byte sequences (spec §4.1); this validation mode is
// an opt-in convenience for callers that want to assert the legacy
// convention of 7-bit-clean library/structure/cell names before treating
// the bytes as a Go string.
//
// The check is performed via golang.org/x/text/encoding/charmap's
// ISO8859_1 decoder, which rejects nothing for single-byte text but is
// used here as the canonical byte<->rune transcoding table so that a
// future caller needing a non-ASCII superset (accented layout names from
// certain legacy tools) can switch decoders without touching call sites.
func StrictASCII(b []byte) error {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return err
	}

	for _, r := range string(decoded) {
		if r > 0x7E || (r < 0x20 && r != '\t') {
			return errs.ErrBadRecordLength
		}
	}

	return nil
}

// WriteOASISString appends an OASIS varint-length-prefixed raw byte
// string to buf.
func WriteOASISString(buf []byte, s string) []byte {
	buf = AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// ReadOASISString reads a varint-length-prefixed raw byte string from the
// start of data, returning the string, and the number of bytes consumed
// (0 if data was exhausted before the string could be fully read).
func ReadOASISString(data []byte) (string, int, error) {
	length, n, err := Uvarint(data)
	if err != nil {
		return "", 0, err
	}
	if n == 0 {
		return "", 0, nil
	}

	end := n + int(length)
	if end > len(data) {
		return "", 0, nil
	}

	return string(data[n:end]), end, nil
}
