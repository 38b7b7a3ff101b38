// Package detect identifies which of the two interchange formats a byte
// stream holds, by sniffing its leading bytes: OASIS's fixed magic string,
// or the first four bytes of a GDSII stream's mandatory leading HEADER
// record.
package detect

import "bytes"

// Kind identifies a sniffed stream format.
type Kind uint8

const (
	Unknown Kind = iota
	Legacy       // GDSII
	Modern       // OASIS
)

func (k Kind) String() string {
	switch k {
	case Legacy:
		return "gdsii"
	case Modern:
		return "oasis"
	default:
		return "unknown"
	}
}

// oasisMagic is the fixed 13-byte prefix every OASIS stream begins with.
var oasisMagic = []byte("%SEMI-OASIS\r\n")

// gdsiiHeaderPrefix is the 4-byte frame every GDSII stream begins with: a
// 2-byte big-endian record length of 6, the HEADER record type (0x00),
// and the 2-byte-integer data type (0x02). The HEADER record is
// mandatory and always first, so this prefix reliably identifies a
// legacy stream without needing to parse further.
var gdsiiHeaderPrefix = []byte{0x00, 0x06, 0x00, 0x02}

// Format sniffs a Kind from the leading bytes of a stream. Callers
// typically pass the first 16 bytes read via a buffered peek; fewer
// bytes than either prefix requires yields Unknown rather than an error,
// since a genuinely truncated stream will fail again, more informatively,
// when the caller attempts a full parse.
func Format(head []byte) Kind {
	if len(head) >= len(oasisMagic) && bytes.Equal(head[:len(oasisMagic)], oasisMagic) {
		return Modern
	}
	if len(head) >= len(gdsiiHeaderPrefix) && bytes.Equal(head[:len(gdsiiHeaderPrefix)], gdsiiHeaderPrefix) {
		return Legacy
	}

	return Unknown
}
