package framing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReal8_Zero(t *testing.T) {
	bits, err := EncodeReal8(0)
	require.NoError(t, err)
	require.Equal(t, Real8Bits(0), bits)
	require.Equal(t, 0.0, DecodeReal8(0))
}

func TestReal8_RoundTrip(t *testing.T) {
	values := []float64{
		1.0, -1.0, 0.5, -0.5, 1000.0, 1e-9, -1e-9, 0.001, 3.14159265358979,
		1.0 / 3.0, 2.0, 16.0, 256.0, 1.0 / 16.0, 123456.789, -987654321.123,
		1e-6, 1e6, 2.5e-12,
	}

	for _, v := range values {
		bits, err := EncodeReal8(v)
		require.NoError(t, err)

		got := DecodeReal8(bits)
		require.Equal(t, v, got, "round-trip mismatch for %v", v)
	}
}

func TestReal8_EncodeDecodeBitExact(t *testing.T) {
	// decode(encode(x)) == x bit-exactly, per spec §8.
	require := require.New(t)

	for _, v := range []float64{1, -1, 42.5, 0.1, -0.1, 7.0, 1.0 / 7.0} {
		bits, err := EncodeReal8(v)
		require.NoError(err)
		require.Equal(v, DecodeReal8(bits))
	}
}

func TestReal8_NonFinite(t *testing.T) {
	_, err := EncodeReal8(posInf())
	require.Error(t, err)
}

func posInf() float64 {
	var x float64 = 1
	return x / zero()
}

func zero() float64 { return 0 }
