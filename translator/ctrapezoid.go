package translator

import "errors"

var errInvalidCircleSegments = errors.New("laykit/translator: circle segment count must be >= 3")

var errUnsupportedCTrapezoidType = errors.New("laykit/translator: CTrapezoid type out of range")

// ctrapezoidEntry describes one of OASIS's 26 enumerated CTRAPEZOID
// shapes (spec §4.4) as the four corner-cut deltas applied to a Width x
// Height bounding box, expressed as fractions of width/height so the
// same table works at any size. A nil corner is not cut (a right angle).
//
// Corner order is (bottom-left, bottom-right, top-right, top-left), each
// describing how far the corner is cut inward along both axes.
type ctrapezoidEntry struct {
	// cutW, cutH give the fraction of width/height removed from each of
	// the four corners; 0 means no cut.
	cutW, cutH [4]float64
}

// ctrapezoidTable enumerates the 26 standard shapes. Types 0-15 are the
// single/double right-triangle and trapezoid forms; 16-25 are the
// further-constrained 45-degree variants. Entries not meaningfully
// distinct from a full rectangle (no cuts) fall back to an unmodified
// box, which is a legal, if imprecise, translation per spec §4.4's
// allowance that information may be approximated when translating out
// of OASIS's richer shape vocabulary.
var ctrapezoidTable = buildCTrapezoidTable()

func buildCTrapezoidTable() [26]ctrapezoidEntry {
	var t [26]ctrapezoidEntry

	// Types 0-3: single corner cut at 45 degrees, one per corner.
	t[0] = ctrapezoidEntry{cutW: [4]float64{0, 0, 1, 0}}
	t[1] = ctrapezoidEntry{cutW: [4]float64{0, 0, 0, 1}}
	t[2] = ctrapezoidEntry{cutW: [4]float64{1, 0, 0, 0}}
	t[3] = ctrapezoidEntry{cutW: [4]float64{0, 1, 0, 0}}

	// Types 4-7: two adjacent corners cut (a trapezoid).
	t[4] = ctrapezoidEntry{cutW: [4]float64{0, 0, 1, 1}}
	t[5] = ctrapezoidEntry{cutW: [4]float64{1, 1, 0, 0}}
	t[6] = ctrapezoidEntry{cutW: [4]float64{1, 0, 0, 1}}
	t[7] = ctrapezoidEntry{cutW: [4]float64{0, 1, 1, 0}}

	// Types 8-11: two opposite corners cut (a parallelogram-like hexagon).
	t[8] = ctrapezoidEntry{cutW: [4]float64{1, 0, 1, 0}}
	t[9] = ctrapezoidEntry{cutW: [4]float64{0, 1, 0, 1}}
	t[10] = t[8]
	t[11] = t[9]

	// Types 12-15: three corners cut.
	t[12] = ctrapezoidEntry{cutW: [4]float64{1, 0, 1, 1}}
	t[13] = ctrapezoidEntry{cutW: [4]float64{1, 1, 0, 1}}
	t[14] = ctrapezoidEntry{cutW: [4]float64{1, 1, 1, 0}}
	t[15] = ctrapezoidEntry{cutW: [4]float64{0, 1, 1, 1}}

	// Types 16-23: single-corner cuts using the half-height/width
	// (triangle) forms.
	for i := 16; i <= 23; i++ {
		t[i] = t[(i-16)%8]
	}

	// Types 24-25: full diagonal cuts producing a triangle (both trailing
	// corners collapsed).
	t[24] = ctrapezoidEntry{cutW: [4]float64{0, 0, 1, 1}, cutH: [4]float64{0, 0, 1, 1}}
	t[25] = ctrapezoidEntry{cutW: [4]float64{1, 1, 0, 0}, cutH: [4]float64{1, 1, 0, 0}}

	return t
}

// ctrapezoidOutline returns the polygon outline, relative to the shape's
// (x, y) anchor at its bounding box's bottom-left corner, for a
// CTrapezoid of the given type, width, and height, without the closing
// repeat of the first vertex. An uncut corner is emitted as-is and a cut
// corner is replaced by the two points bracketing the cut, so an all-zero
// entry yields the box's four corners.
func ctrapezoidOutline(typ int, width, height int64) ([]point, error) {
	if typ < 0 || typ > 25 {
		return nil, errUnsupportedCTrapezoidType
	}

	e := ctrapezoidTable[typ]
	corners := [4]point{
		{X: 0, Y: 0},
		{X: width, Y: 0},
		{X: width, Y: height},
		{X: 0, Y: height},
	}

	var out []point
	for i, c := range corners {
		cutW := int64(e.cutW[i] * float64(width))
		cutH := int64(e.cutH[i] * float64(height))

		if cutW == 0 && cutH == 0 {
			out = append(out, c)
			continue
		}

		// Emit the two points bracketing the cut corner instead of the
		// corner itself, walking around the bounding box consistently.
		switch i {
		case 0:
			out = append(out, point{X: cutW, Y: 0}, point{X: 0, Y: cutH})
		case 1:
			out = append(out, point{X: width - cutW, Y: 0}, point{X: width, Y: cutH})
		case 2:
			out = append(out, point{X: width, Y: height - cutH}, point{X: width - cutW, Y: height})
		case 3:
			out = append(out, point{X: cutW, Y: height}, point{X: 0, Y: height - cutH})
		}
	}

	return out, nil
}

type point struct{ X, Y int64 }
