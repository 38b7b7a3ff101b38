package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name string
		head []byte
		want Kind
	}{
		{"oasis magic", []byte("%SEMI-OASIS\r\n\x01\x02\x03"), Modern},
		{"gdsii header", []byte{0x00, 0x06, 0x00, 0x02, 0x00, 0x05}, Legacy},
		{"empty", nil, Unknown},
		{"short", []byte{0x00, 0x06}, Unknown},
		{"garbage", []byte("not a layout file"), Unknown},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Format(c.head))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "gdsii", Legacy.String())
	assert.Equal(t, "oasis", Modern.String())
	assert.Equal(t, "unknown", Unknown.String())
}
