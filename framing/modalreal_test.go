package framing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModalReal_IntegerForms(t *testing.T) {
	buf := AppendModalReal(nil, 42)
	v, kind, n, err := ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealPositiveInteger, kind)
	require.Equal(t, len(buf), n)
	require.Equal(t, 42.0, v)

	buf = AppendModalReal(nil, -42)
	v, kind, n, err = ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealNegativeInteger, kind)
	require.Equal(t, len(buf), n)
	require.Equal(t, -42.0, v)
}

func TestModalReal_ReciprocalForms(t *testing.T) {
	buf := AppendModalReal(nil, 0.25)
	v, kind, _, err := ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealPositiveReciprocal, kind)
	require.Equal(t, 0.25, v)

	buf = AppendModalReal(nil, -0.125)
	v, kind, _, err = ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealNegativeReciprocal, kind)
	require.Equal(t, -0.125, v)
}

func TestModalReal_RatioForm(t *testing.T) {
	// 2/3 has no exact integer or reciprocal form, so it falls to the
	// small-denominator ratio tag.
	buf := AppendModalReal(nil, 2.0/3.0)
	v, kind, _, err := ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealPositiveRatio, kind)
	require.Equal(t, 2.0/3.0, v)
}

func TestModalReal_DoubleFallback(t *testing.T) {
	weird := 1.2345678901234567
	buf := AppendModalReal(nil, weird)
	v, kind, n, err := ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealFloat64, kind)
	require.Equal(t, len(buf), n)
	require.Equal(t, weird, v)
}

func TestModalReal_Float32Decode(t *testing.T) {
	// Readers MUST accept all eight forms, including the single-precision
	// tag that this package's writer never emits itself.
	buf := []byte{6, 0, 0, 0x80, 0x3F} // tag=6, float32 1.0 little-endian
	v, kind, n, err := ReadModalReal(buf)
	require.NoError(t, err)
	require.Equal(t, RealFloat32, kind)
	require.Equal(t, 1.0, v)
	require.Equal(t, 5, n)
}
