package laykit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GiridharSalana/laykit/gdsii"
	"github.com/GiridharSalana/laykit/oasis"
)

func sampleLibrary() *gdsii.Library {
	return &gdsii.Library{
		Name: "TOP", Version: 5, UserUnit: 1e-6, DatabaseUnit: 1e-9,
		Structures: []gdsii.Structure{
			{
				Name: "CELL1",
				Elements: []gdsii.Element{
					gdsii.Boundary{
						Layer: 1, Datatype: 0,
						XY: []gdsii.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0}},
					},
				},
			},
		},
	}
}

// TestWriteLegacy_ReadLegacy_RoundTrip verifies the top-level GDSII
// convenience wrappers round-trip a library.
func TestWriteLegacy_ReadLegacy_RoundTrip(t *testing.T) {
	lib := sampleLibrary()

	var buf bytes.Buffer
	require.NoError(t, WriteLegacy(&buf, lib))

	got, err := ReadLegacy(&buf)
	require.NoError(t, err)
	require.Equal(t, lib.Name, got.Name)
	require.Len(t, got.Structures, 1)
	require.Equal(t, "CELL1", got.Structures[0].Name)
}

// TestLegacyToModern_WriteModern_RoundTrip verifies a legacy library can
// be translated to modern and written as an OASIS stream.
func TestLegacyToModern_WriteModern_RoundTrip(t *testing.T) {
	lib := sampleLibrary()

	modern, err := LegacyToModern(lib)
	require.NoError(t, err)
	require.Len(t, modern.Cells, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteModern(&buf, modern))

	got, err := ReadModern(&buf)
	require.NoError(t, err)
	require.Len(t, got.Cells, 1)
}

func TestDetectFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteModern(&buf, &oasis.File{Version: "1.0", Unit: 1000}))

	require.Equal(t, "oasis", DetectFormat(buf.Bytes()).String())

	buf.Reset()
	require.NoError(t, WriteLegacy(&buf, sampleLibrary()))
	require.Equal(t, "gdsii", DetectFormat(buf.Bytes()).String())
}
