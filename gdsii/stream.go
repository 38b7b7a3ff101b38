package gdsii

import (
	"bufio"
	"io"

	"github.com/GiridharSalana/laykit/compress"
	"github.com/GiridharSalana/laykit/internal/pool"
)

// StreamWriter emits a legacy stream one structure at a time, so a caller
// translating or generating a large library never holds more than one
// structure's elements in memory, per spec §5.
//
// Close must be called after the last WriteStructure to emit ENDLIB.
type StreamWriter struct {
	w      io.Writer
	header LibraryHeader
}

// NewStreamWriter begins a legacy stream: it writes HEADER, BGNLIB,
// LIBNAME, and UNITS immediately.
func NewStreamWriter(w io.Writer, header LibraryHeader) (*StreamWriter, error) {
	lib := &Library{
		Name: header.Name, Version: header.Version,
		UserUnit: header.UserUnit, DatabaseUnit: header.DatabaseUnit,
		Created: header.Created, Modified: header.Modified,
	}

	if err := writeHeaderRecords(w, lib); err != nil {
		return nil, err
	}

	return &StreamWriter{w: w, header: header}, nil
}

// WriteStructure emits one complete structure block.
func (sw *StreamWriter) WriteStructure(st Structure) error {
	return writeStructure(sw.w, st)
}

// Close emits ENDLIB. It does not close any underlying writer.
func (sw *StreamWriter) Close() error {
	return writeEndlib(sw.w)
}

// SpillWriter wraps an io.Writer with an in-memory staging buffer (an
// internal/pool ByteBuffer) that is block-compressed before each flush. It
// is meant for a StreamWriter whose destination is slow or remote (e.g.
// network storage), where batching and compressing writes amortizes
// overhead; it plays no role in the legacy wire format itself; the bytes it
// buffers are already fully-formed legacy records, and the compressed
// container it produces is a private spill format (see Flush). This
// package provides no reader for that format.
type SpillWriter struct {
	dest      io.Writer
	buf       *pool.ByteBuffer
	codec     compress.Codec
	threshold int
}

// NewSpillWriter creates a SpillWriter flushing to dest once its staging
// buffer reaches threshold bytes. A nil codec defaults to LZ4, chosen for
// decompression speed since spill data is typically read back soon after
// being written.
func NewSpillWriter(dest io.Writer, threshold int, codec compress.Codec) *SpillWriter {
	if codec == nil {
		codec = compress.NewLZ4Compressor()
	}
	if threshold <= 0 {
		threshold = pool.BlobBufferDefaultSize
	}

	return &SpillWriter{
		dest:      dest,
		buf:       pool.NewByteBuffer(threshold),
		codec:     codec,
		threshold: threshold,
	}
}

// Write implements io.Writer, staging data and flushing once the threshold
// is reached.
func (s *SpillWriter) Write(data []byte) (int, error) {
	s.buf.MustWrite(data)

	if s.buf.Len() >= s.threshold {
		if err := s.Flush(); err != nil {
			return 0, err
		}
	}

	return len(data), nil
}

// Flush compresses and emits any staged bytes as one length-prefixed
// block: a little-endian uint32 compressed length, followed by the
// compressed bytes. An empty staging buffer flushes nothing.
func (s *SpillWriter) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}

	compressed, err := s.codec.Compress(s.buf.Bytes())
	if err != nil {
		return err
	}

	var lenBuf [4]byte
	length := uint32(len(compressed))
	lenBuf[0] = byte(length)
	lenBuf[1] = byte(length >> 8)
	lenBuf[2] = byte(length >> 16)
	lenBuf[3] = byte(length >> 24)

	if _, err := s.dest.Write(lenBuf[:]); err != nil {
		return err
	}
	if _, err := s.dest.Write(compressed); err != nil {
		return err
	}

	s.buf.Reset()

	return nil
}

// bufferedReadAhead wraps r in a large bufio.Reader sized for sequential
// whole-library scans, reducing syscall count when reading a legacy
// stream from disk or network.
func bufferedReadAhead(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(r, 256*1024)
}
