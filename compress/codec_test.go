package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionType_String(t *testing.T) {
	cases := []struct {
		t    CompressionType
		want string
	}{
		{CompressionNone, "None"},
		{CompressionDeflate, "Deflate"},
		{CompressionZstd, "Zstd"},
		{CompressionS2, "S2"},
		{CompressionLZ4, "LZ4"},
		{CompressionType(0xFF), "Unknown"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, c.t.String())
	}
}

func TestCompressionStats_Calculations(t *testing.T) {
	s := CompressionStats{OriginalSize: 1000, CompressedSize: 300}
	require.InDelta(t, 0.3, s.CompressionRatio(), 0.001)
	require.InDelta(t, 70.0, s.SpaceSavings(), 0.001)

	zero := CompressionStats{OriginalSize: 0, CompressedSize: 100}
	require.Equal(t, 0.0, zero.CompressionRatio())
}

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp":    NewNoOpCompressor(),
		"LZ4":     NewLZ4Compressor(),
		"S2":      NewS2Compressor(),
		"Zstd":    NewZstdCompressor(),
		"Deflate": NewDeflateCompressor(),
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"small_text", []byte("BOUNDARY layer=1 datatype=0")},
		{"repeated_pattern", bytes.Repeat([]byte("XY00"), 500)},
		{"binary_data", []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD}},
		{"highly_compressible", make([]byte, 256*1024)},
	}

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestCreateCodec_InvalidType(t *testing.T) {
	_, err := CreateCodec(CompressionType(0xFF), "cblock")
	require.Error(t, err)
}

func TestGetCodec_Builtin(t *testing.T) {
	codec, err := GetCodec(CompressionDeflate)
	require.NoError(t, err)
	require.NotNil(t, codec)
}
