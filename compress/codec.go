package compress

import "fmt"

// CompressionType identifies a block compression algorithm applied after a
// codec has framed its records: OASIS CBLOCK bodies and the optional GDSII
// streaming spill buffer both carry one of these.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionDeflate
	CompressionZstd
	CompressionS2
	CompressionLZ4
)

func (t CompressionType) String() string {
	switch t {
	case CompressionNone:
		return "None"
	case CompressionDeflate:
		return "Deflate"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a byte slice as a single block.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats reports the outcome of a single compress operation, for
// callers that want to log or tune algorithm choice per record.
type CompressionStats struct {
	Algorithm      CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio is CompressedSize/OriginalSize; values below 1.0 mean
// the block shrank.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings is the percentage reduction in size, negative when
// compression added overhead.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec constructs a Codec for compressionType. target names the
// caller's context (e.g. "cblock" or "spill buffer") for error messages.
func CreateCodec(compressionType CompressionType, target string) (Codec, error) {
	switch compressionType {
	case CompressionNone:
		return NewNoOpCompressor(), nil
	case CompressionDeflate:
		return NewDeflateCompressor(), nil
	case CompressionZstd:
		return NewZstdCompressor(), nil
	case CompressionS2:
		return NewS2Compressor(), nil
	case CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[CompressionType]Codec{
	CompressionNone:    NewNoOpCompressor(),
	CompressionDeflate: NewDeflateCompressor(),
	CompressionZstd:    NewZstdCompressor(),
	CompressionS2:      NewS2Compressor(),
	CompressionLZ4:     NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for compressionType.
func GetCodec(compressionType CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
