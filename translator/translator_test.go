package translator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GiridharSalana/laykit/errs"
	"github.com/GiridharSalana/laykit/gdsii"
	"github.com/GiridharSalana/laykit/oasis"
)

func sampleLibrary() *gdsii.Library {
	return &gdsii.Library{
		Name: "TOP", Version: 5, UserUnit: 1e-6, DatabaseUnit: 1e-9,
		Structures: []gdsii.Structure{
			{
				Name: "VIA",
				Elements: []gdsii.Element{
					gdsii.Boundary{
						Layer: 1, Datatype: 0,
						XY: []gdsii.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0}},
					},
				},
			},
			{
				Name: "TOP",
				Elements: []gdsii.Element{
					gdsii.StructRef{Name: "VIA", Position: gdsii.Point{X: 10, Y: 10}},
					gdsii.ArrayRef{
						Name: "VIA", Columns: 3, Rows: 2,
						Origin: gdsii.Point{X: 0, Y: 0}, ColEnd: gdsii.Point{X: 300, Y: 0}, RowEnd: gdsii.Point{X: 0, Y: 200},
					},
				},
			},
		},
	}
}

func TestLegacyToModern_DetectsRectangle(t *testing.T) {
	lib := sampleLibrary()

	f, err := LegacyToModern(lib)
	require.NoError(t, err)
	require.Len(t, f.Cells, 2)

	via := f.Cells[0]
	require.Equal(t, "VIA", via.Name)
	require.Len(t, via.Elements, 1)

	rect, ok := via.Elements[0].(oasis.Rectangle)
	require.True(t, ok)
	require.Equal(t, uint64(100), rect.Width)
	require.Equal(t, uint64(100), rect.Height)
}

func TestLegacyToModern_RectangleDetectionDisabled(t *testing.T) {
	lib := sampleLibrary()

	f, err := LegacyToModern(lib, WithRectangleDetection(false))
	require.NoError(t, err)

	_, ok := f.Cells[0].Elements[0].(oasis.Polygon)
	require.True(t, ok)
}

func TestLegacyToModern_ArrayBecomesRegularGridRepetition(t *testing.T) {
	lib := sampleLibrary()

	f, err := LegacyToModern(lib)
	require.NoError(t, err)

	top := f.Cells[1]
	require.Len(t, top.Elements, 2)

	placement, ok := top.Elements[1].(oasis.Placement)
	require.True(t, ok)
	require.Equal(t, "VIA", placement.CellName)
	require.NotNil(t, placement.Repetition)
	require.Equal(t, oasis.RepRegularGrid, placement.Repetition.Kind)
	require.Equal(t, 3, placement.Repetition.Columns)
	require.Equal(t, 2, placement.Repetition.Rows)
	require.Equal(t, int64(100), placement.Repetition.XStep)
	require.Equal(t, int64(100), placement.Repetition.YStep)
}

func TestModernToLegacy_RoundTripsRectangleAndArray(t *testing.T) {
	lib := sampleLibrary()

	modern, err := LegacyToModern(lib)
	require.NoError(t, err)

	back, err := ModernToLegacy(modern)
	require.NoError(t, err)
	require.Len(t, back.Structures, 2)

	via := back.Structures[0]
	require.Len(t, via.Elements, 1)
	boundary, ok := via.Elements[0].(gdsii.Boundary)
	require.True(t, ok)
	require.Equal(t, lib.Structures[0].Elements[0].(gdsii.Boundary).XY, boundary.XY)

	top := back.Structures[1]
	require.Len(t, top.Elements, 2)

	aref, ok := top.Elements[1].(gdsii.ArrayRef)
	require.True(t, ok)
	require.Equal(t, int16(3), aref.Columns)
	require.Equal(t, int16(2), aref.Rows)
}

func TestModernToLegacy_CoordinateOverflow(t *testing.T) {
	f := &oasis.File{
		Version: "1.0", Unit: 1000,
		Cells: []oasis.Cell{{
			Name:     "TOP",
			Elements: []oasis.Element{oasis.NewRectangle(1, 0, 1<<31, 0, 10, 10)},
		}},
	}

	_, err := ModernToLegacy(f)
	require.Error(t, err)

	var overflow *errs.CoordinateOverflowError
	require.ErrorAs(t, err, &overflow)
}

func TestCircleToLegacy_ApproximatesWithPolygon(t *testing.T) {
	f := &oasis.File{
		Version: "1.0", Unit: 1000,
		Cells: []oasis.Cell{{
			Name:     "TOP",
			Elements: []oasis.Element{oasis.NewCircle(1, 0, 0, 0, 100)},
		}},
	}

	lib, err := ModernToLegacy(f, WithCircleSegments(8))
	require.NoError(t, err)

	boundary, ok := lib.Structures[0].Elements[0].(gdsii.Boundary)
	require.True(t, ok)
	require.Len(t, boundary.XY, 9) // 8 vertices, closed
}

func TestCTrapezoidToLegacy_RejectsOutOfRangeType(t *testing.T) {
	f := &oasis.File{
		Version: "1.0", Unit: 1000,
		Cells: []oasis.Cell{{
			Name:     "TOP",
			Elements: []oasis.Element{oasis.NewCTrapezoid(1, 0, 0, 0, 99, 100, 100)},
		}},
	}

	_, err := ModernToLegacy(f)
	require.Error(t, err)
}

func TestWithCircleSegments_RejectsTooFew(t *testing.T) {
	_, err := ModernToLegacy(&oasis.File{}, WithCircleSegments(2))
	require.Error(t, err)
}
