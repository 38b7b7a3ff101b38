package framing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GiridharSalana/laykit/errs"
)

func TestUvarint_BoundaryValues(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{0, []byte{0x00}},
	}

	for _, c := range cases {
		buf := make([]byte, 10)
		n := PutUvarint(buf, c.v)
		require.Equal(t, c.want, buf[:n])

		got, n2, err := Uvarint(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, n2)
		require.Equal(t, c.v, got)
	}
}

func TestUvarint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 126, 127, 128, 255, 16383, 16384, 1 << 20, 1 << 40, 1<<64 - 1}

	for _, v := range values {
		buf := make([]byte, 10)
		n := PutUvarint(buf, v)

		got, n2, err := Uvarint(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, n2)
		require.Equal(t, v, got)
	}
}

func TestUvarint_Overflow(t *testing.T) {
	// 11 continuation bytes, none terminal: must be rejected.
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0x80
	}

	_, _, err := Uvarint(data)
	require.ErrorIs(t, err, errs.ErrVarintOverflow)
}

func TestZigZag_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 1000, -1000, 1<<62 - 1, -(1 << 62)}

	for _, v := range values {
		u := ZigZagEncode(v)
		got := ZigZagDecode(u)
		require.Equal(t, v, got)
	}
}

func TestVarint_SignedRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -127, 128, -128, 1 << 40, -(1 << 40)}

	for _, v := range values {
		buf := make([]byte, 10)
		n := PutVarint(buf, v)

		got, n2, err := Varint(buf[:n])
		require.NoError(t, err)
		require.Equal(t, n, n2)
		require.Equal(t, v, got)
	}
}
