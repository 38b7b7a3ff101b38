package gdsii

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleLibrary() *Library {
	ts := TimestampFromTime(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	return &Library{
		Name:         "A",
		Version:      600,
		UserUnit:     0.001,
		DatabaseUnit: 1e-9,
		Created:      ts,
		Modified:     ts,
		Structures: []Structure{
			{
				Name:     "TOP",
				Created:  ts,
				Modified: ts,
				Elements: []Element{
					Boundary{
						Layer: 1, Datatype: 0,
						XY: []Point{{0, 0}, {1000, 0}, {1000, 500}, {0, 500}, {0, 0}},
					},
				},
			},
		},
	}
}

func TestLibrary_RoundTrip(t *testing.T) {
	lib := sampleLibrary()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, lib, got)
}

func TestLibrary_MinimalRectangleScenario(t *testing.T) {
	lib := sampleLibrary()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, lib, got)

	b, ok := got.Structures[0].Elements[0].(Boundary)
	require.True(t, ok)
	require.Equal(t, []Point{{0, 0}, {1000, 0}, {1000, 500}, {0, 500}, {0, 0}}, b.XY)
}

func TestLibrary_RoundTrip_AllElementKinds(t *testing.T) {
	ts := TimestampFromTime(time.Now())
	mag := 2.0
	angle := 90.0
	width := int32(50)

	lib := &Library{
		Name: "B", Version: 600, UserUnit: 1, DatabaseUnit: 1e-9, Created: ts, Modified: ts,
		Structures: []Structure{
			{
				Name: "CELL", Created: ts, Modified: ts,
				Elements: []Element{
					Boundary{Layer: 1, Datatype: 0, XY: []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}},
					Path{
						Layer: 2, Datatype: 1, PathType: PathRound, Width: &width,
						XY: []Point{{0, 0}, {100, 0}, {100, 100}},
					},
					Text{
						Layer: 3, TextType: 0, Presentation: 0,
						Transform: &Transform{Reflect: true, AbsMagnification: true, Magnification: &mag, AbsAngle: true, Angle: &angle},
						Position:  Point{5, 5}, Value: "label",
						Properties: []Property{{Attr: 1, Value: "note"}},
					},
					StructRef{Name: "CELL2", Position: Point{20, 20}},
					ArrayRef{
						Name: "CELL2", Columns: 3, Rows: 2,
						Origin: Point{0, 0}, ColEnd: Point{300, 0}, RowEnd: Point{0, 200},
					},
					Node{Layer: 4, NodeType: 0, XY: []Point{{1, 1}, {2, 2}}},
					Box{Layer: 5, BoxType: 0, XY: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
				},
			},
			{Name: "CELL2", Created: ts, Modified: ts},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, lib, got)
}

func TestStreamWriter_MatchesWrite(t *testing.T) {
	lib := sampleLibrary()

	var direct bytes.Buffer
	require.NoError(t, Write(&direct, lib))

	var streamed bytes.Buffer
	sw, err := NewStreamWriter(&streamed, LibraryHeader{
		Name: lib.Name, Version: lib.Version, UserUnit: lib.UserUnit,
		DatabaseUnit: lib.DatabaseUnit, Created: lib.Created, Modified: lib.Modified,
	})
	require.NoError(t, err)

	for _, st := range lib.Structures {
		require.NoError(t, sw.WriteStructure(st))
	}
	require.NoError(t, sw.Close())

	require.Equal(t, direct.Bytes(), streamed.Bytes())
}

func TestStreamReader_Next_ReturnsEOFAtEndlib(t *testing.T) {
	lib := sampleLibrary()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	sr := NewStreamReader(&buf)
	_, err := sr.ReadHeader()
	require.NoError(t, err)

	st, err := sr.Next()
	require.NoError(t, err)
	require.Equal(t, "TOP", st.Name)

	_, err = sr.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestLibrary_EmptyElementListWritesAndReads(t *testing.T) {
	ts := TimestampFromTime(time.Now())
	lib := &Library{
		Name: "EMPTY", Version: 600, UserUnit: 1, DatabaseUnit: 1e-9, Created: ts, Modified: ts,
		Structures: []Structure{{Name: "BLANK", Created: ts, Modified: ts}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, lib, got)
}

func TestBoundary_RejectsTooFewPoints(t *testing.T) {
	lib := &Library{
		Name: "BAD", Version: 600, UserUnit: 1, DatabaseUnit: 1e-9,
		Structures: []Structure{{
			Name:     "S",
			Elements: []Element{Boundary{Layer: 1, XY: []Point{{0, 0}, {1, 1}}}},
		}},
	}

	var buf bytes.Buffer
	require.Error(t, Write(&buf, lib))
}

func TestArrayRef_RejectsZeroDimension(t *testing.T) {
	lib := &Library{
		Name: "BAD", Version: 600, UserUnit: 1, DatabaseUnit: 1e-9,
		Structures: []Structure{{
			Name: "S",
			Elements: []Element{ArrayRef{
				Name: "C", Columns: 0, Rows: 2,
				Origin: Point{0, 0}, ColEnd: Point{1, 0}, RowEnd: Point{0, 1},
			}},
		}},
	}

	var buf bytes.Buffer
	require.Error(t, Write(&buf, lib))
}

func TestPoint_CoordinateBoundary(t *testing.T) {
	const maxI32 = int32(1<<31 - 1)
	const minI32 = -int32(1 << 31)

	lib := &Library{
		Name: "B", Version: 600, UserUnit: 1, DatabaseUnit: 1e-9,
		Structures: []Structure{{
			Name: "S",
			Elements: []Element{Boundary{
				Layer: 1,
				XY:    []Point{{minI32, minI32}, {maxI32, minI32}, {maxI32, maxI32}, {minI32, maxI32}, {minI32, minI32}},
			}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lib))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, lib, got)
}
