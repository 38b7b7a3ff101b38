package oasis

import (
	"github.com/GiridharSalana/laykit/compress"
	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/framing"
)

// cblockScheme identifies the CBLOCK compression-type field (record id
// 34). Only deflate (type 0) is supported, for both reading and writing.
const (
	cblockSchemeDeflate = 0
)

// inflateCBlock decodes a CBLOCK payload — comp-type, uncompressed byte
// count, compressed byte count, then that many compressed bytes — into
// the record stream it wraps. Per spec §9's explicit allowance, any
// scheme other than deflate is rejected with a distinct unsupported-
// feature error rather than silently misparsed.
func inflateCBlock(data []byte) (payload []byte, consumed int, err error) {
	scheme, n, err := framing.Uvarint(data)
	if err != nil {
		return nil, 0, err
	}
	pos := n

	if scheme != cblockSchemeDeflate {
		return nil, 0, &errs.UnsupportedFeatureError{Feature: "CBLOCK compression scheme"}
	}

	uncompSize, n, err := framing.Uvarint(data[pos:])
	if err != nil {
		return nil, 0, err
	}
	pos += n

	compSize, n, err := framing.Uvarint(data[pos:])
	if err != nil {
		return nil, 0, err
	}
	pos += n

	if pos+int(compSize) > len(data) {
		return nil, 0, errs.ErrUnexpectedEOF
	}

	compressed := data[pos : pos+int(compSize)]
	pos += int(compSize)

	codec := compress.NewDeflateCompressor()
	out, err := codec.Decompress(compressed)
	if err != nil {
		return nil, 0, err
	}
	if uint64(len(out)) != uncompSize {
		return nil, 0, errs.ErrBadRecordLength
	}

	return out, pos, nil
}

// deflateCBlock compresses payload into a complete CBLOCK record body
// (scheme, uncompressed size, compressed size, compressed bytes),
// excluding the leading record-id varint.
func deflateCBlock(payload []byte) ([]byte, error) {
	codec := compress.NewDeflateCompressor()

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, err
	}

	buf := framing.AppendUvarint(nil, cblockSchemeDeflate)
	buf = framing.AppendUvarint(buf, uint64(len(payload)))
	buf = framing.AppendUvarint(buf, uint64(len(compressed)))
	buf = append(buf, compressed...)

	return buf, nil
}
