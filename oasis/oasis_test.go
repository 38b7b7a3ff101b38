package oasis

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GiridharSalana/laykit/errs"
)

func sampleFile() *File {
	return &File{
		Version: "1.0",
		Unit:    1000,
		Cells: []Cell{
			{
				Name: "TOP",
				Elements: []Element{
					Rectangle{
						elementBase: elementBase{Layer: 1, Datatype: 0},
						X: 0, Y: 0, Width: 1000, Height: 2000,
					},
					Text{
						elementBase: elementBase{Layer: 2, Datatype: 0},
						X: 500, Y: 500, Value: "pin1",
					},
					Placement{
						CellName: "CONTACT", X: 100, Y: 200, Magnification: 1.0,
					},
				},
			},
			{
				Name: "CONTACT",
				Elements: []Element{
					Circle{
						elementBase: elementBase{Layer: 3, Datatype: 1},
						X: 0, Y: 0, Radius: 50,
					},
				},
			},
		},
	}
}

func TestFile_RoundTrip(t *testing.T) {
	f := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f))

	got, err := Read(&buf)
	require.NoError(t, err)

	require.Equal(t, f.Version, got.Version)
	require.Equal(t, f.Unit, got.Unit)
	require.Len(t, got.Cells, 2)

	require.Equal(t, "TOP", got.Cells[0].Name)
	require.Len(t, got.Cells[0].Elements, 3)

	rect, ok := got.Cells[0].Elements[0].(Rectangle)
	require.True(t, ok)
	require.Equal(t, uint64(1000), rect.Width)
	require.Equal(t, uint64(2000), rect.Height)
	layer, datatype := rect.ElementLayer()
	require.Equal(t, uint64(1), layer)
	require.Equal(t, uint64(0), datatype)

	text, ok := got.Cells[0].Elements[1].(Text)
	require.True(t, ok)
	require.Equal(t, "pin1", text.Value)

	placement, ok := got.Cells[0].Elements[2].(Placement)
	require.True(t, ok)
	require.Equal(t, "CONTACT", placement.CellName)
	require.Equal(t, int64(100), placement.X)
	require.Equal(t, int64(200), placement.Y)
	require.Equal(t, 1.0, placement.Magnification)

	circle, ok := got.Cells[1].Elements[0].(Circle)
	require.True(t, ok)
	require.Equal(t, uint64(50), circle.Radius)
}

func TestFile_RoundTrip_Compressed(t *testing.T) {
	f := sampleFile()

	var buf bytes.Buffer
	require.NoError(t, WriteCompressed(&buf, f))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Cells, 2)
	require.Equal(t, "TOP", got.Cells[0].Name)
}

func TestFile_RejectsBadMagic(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not an oasis file at all")))
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestPolygon_PreservesPointList(t *testing.T) {
	f := &File{
		Version: "1.0", Unit: 1000,
		Cells: []Cell{{
			Name: "TOP",
			Elements: []Element{
				Polygon{
					elementBase: elementBase{Layer: 5, Datatype: 0},
					X: 0, Y: 0,
					Points: []Point{{X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
				},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f))

	got, err := Read(&buf)
	require.NoError(t, err)

	poly, ok := got.Cells[0].Elements[0].(Polygon)
	require.True(t, ok)
	require.Equal(t, f.Cells[0].Elements[0].(Polygon).Points, poly.Points)
}

func TestElement_ModalDeltaEncoding(t *testing.T) {
	f := &File{
		Version: "1.0", Unit: 1000,
		Cells: []Cell{{
			Name: "TOP",
			Elements: []Element{
				Rectangle{elementBase: elementBase{Layer: 1, Datatype: 0}, X: 0, Y: 0, Width: 100, Height: 100},
				Rectangle{elementBase: elementBase{Layer: 1, Datatype: 0}, X: 0, Y: 0, Width: 100, Height: 100},
			},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, f))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got.Cells[0].Elements, 2)

	for _, el := range got.Cells[0].Elements {
		r := el.(Rectangle)
		require.Equal(t, uint64(100), r.Width)
		require.Equal(t, uint64(100), r.Height)
	}
}

func TestNameTable_MixedIDStyleRejected(t *testing.T) {
	nt := NewNameTable()
	require.NoError(t, nt.AddImplicit(NameClassCell, "A"))
	err := nt.AddExplicit(NameClassCell, 5, "B")
	require.ErrorIs(t, err, errs.ErrMixedNameIDStyle)
}

func TestNameTable_UnresolvedReference(t *testing.T) {
	nt := NewNameTable()
	_, err := nt.Resolve(NameClassText, 0)
	require.ErrorIs(t, err, errs.ErrUnresolvedName)
}

func TestNameTable_OutOfOrderExplicitDefinition(t *testing.T) {
	nt := NewNameTable()
	require.NoError(t, nt.AddExplicit(NameClassPropName, 3, "width"))
	require.NoError(t, nt.AddExplicit(NameClassPropName, 1, "height"))

	name, err := nt.Resolve(NameClassPropName, 3)
	require.NoError(t, err)
	require.Equal(t, "width", name)
}

func TestRepetition_RegularGridRoundTrip(t *testing.T) {
	r := &Repetition{Kind: RepRegularGrid, Columns: 3, Rows: 2, XStep: 100, YStep: 200}

	buf := AppendRepetition(nil, r)
	got, n, err := ReadRepetition(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, 3, got.Columns)
	require.Equal(t, 2, got.Rows)
	require.Len(t, got.Offsets, 5)
}

func TestRepetition_ArbitraryRoundTrip(t *testing.T) {
	r := &Repetition{
		Kind: RepArbitrary,
		Offsets: []Point{{X: 10, Y: 0}, {X: 20, Y: 5}, {X: -5, Y: -5}},
	}

	buf := AppendRepetition(nil, r)
	got, n, err := ReadRepetition(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, r.Offsets, got.Offsets)
}

func TestRepetition_VaryingXReEncodesAsArbitrary(t *testing.T) {
	r := &Repetition{Kind: RepVaryingX, Offsets: []Point{{X: 3, Y: 0}, {X: 9, Y: 0}}}

	buf := AppendRepetition(nil, r)
	got, _, err := ReadRepetition(buf)
	require.NoError(t, err)
	require.Equal(t, RepArbitrary, got.Kind)
	require.Equal(t, r.Offsets, got.Offsets)
}

func TestRepetition_Inherit(t *testing.T) {
	buf := AppendRepetition(nil, nil)
	got, n, err := ReadRepetition(buf)
	require.NoError(t, err)
	require.Nil(t, got)
	require.Equal(t, len(buf), n)
}

func TestModalState_ResetClearsEveryField(t *testing.T) {
	m := NewModalState()
	m.Layer = 5
	m.GeometryX = 100
	m.Repetition = &Repetition{Kind: RepRegularX}

	m.Reset()

	require.Equal(t, uint64(0), m.Layer)
	require.Equal(t, int64(0), m.GeometryX)
	require.Nil(t, m.Repetition)
}

func TestProperties_RoundTrip(t *testing.T) {
	props := []Property{
		{
			Name: "width",
			Values: []PropertyValue{
				{Kind: PropValueReal, Real: 1.5},
				{Kind: PropValueUnsignedInt, Int: 42},
				{Kind: PropValueSignedInt, Int: -7},
				{Kind: PropValueAString, String: "hello"},
			},
		},
	}

	buf := appendProperties(nil, props)
	got, n, err := readProperties(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	require.Equal(t, props, got)
}

func TestCTrapezoid_RejectsOutOfRangeType(t *testing.T) {
	f := &File{
		Version: "1.0", Unit: 1000,
		Cells: []Cell{{
			Name: "TOP",
			Elements: []Element{
				CTrapezoid{elementBase: elementBase{Layer: 1}, X: 0, Y: 0, Type: 99, Width: 10, Height: 10},
			},
		}},
	}

	var buf bytes.Buffer
	err := Write(&buf, f)
	require.Error(t, err)

	var unsupported *errs.UnsupportedFeatureError
	require.ErrorAs(t, err, &unsupported)
}
