package oasis

// Point is an (x, y) coordinate pair in modern database units, 64-bit to
// give room for the legacy->modern widening conversion the translator
// performs (spec §3).
type Point struct {
	X, Y int64
}

// PropertyValue is OASIS's tagged property-value union: a property may
// carry a real, an integer of several signed/unsigned widths, a string,
// or a raw byte string. Exactly one field is meaningful per Kind.
type PropertyValueKind uint8

const (
	PropValueReal PropertyValueKind = iota
	PropValueUnsignedInt
	PropValueSignedInt
	PropValueAString
	PropValueBString
	PropValueNString
)

type PropertyValue struct {
	Kind   PropertyValueKind
	Real   float64
	Int    int64
	String string
}

// Property is a name (resolved through the PROPNAME name table) plus an
// ordered list of values.
type Property struct {
	Name   string
	Values []PropertyValue
	// StandardPropertyName, if non-empty, bypasses name-table resolution
	// for the small set of reserved "S_*" standard properties.
	StandardPropertyName string
}

// Element is the closed tagged union of modern geometric elements.
type Element interface {
	isElement()
	ElementLayer() (layer, datatype uint64)
	ElementProperties() []Property
}

type elementBase struct {
	Layer, Datatype uint64
	Properties      []Property
	// Repetition is nil for a singly-placed element.
	Repetition *Repetition
}

func (e elementBase) ElementLayer() (uint64, uint64)    { return e.Layer, e.Datatype }
func (e elementBase) ElementProperties() []Property     { return e.Properties }

func newBase(layer, datatype uint64) elementBase {
	return elementBase{Layer: layer, Datatype: datatype}
}

// Rectangle is an axis-aligned box: anchor plus width/height.
type Rectangle struct {
	elementBase
	X, Y          int64
	Width, Height uint64
}

func (Rectangle) isElement() {}

// Polygon is a closed point-list shape: an anchor plus a sequence of
// points relative to it (the list does not repeat the anchor).
type Polygon struct {
	elementBase
	X, Y   int64
	Points []Point
}

func (Polygon) isElement() {}

// Path is an open polyline with a uniform half-width and independent
// start/end extensions.
type Path struct {
	elementBase
	X, Y                 int64
	HalfWidth            uint64
	StartExtension       int64
	EndExtension         int64
	Points               []Point
}

func (Path) isElement() {}

// Trapezoid is OASIS's compact four-sided shape: a bounding w/h plus two
// signed deltas describing the slanted edges.
type Trapezoid struct {
	elementBase
	X, Y          int64
	Width, Height uint64
	DeltaA, DeltaB int64
	// Vertical indicates the trapezoid's parallel edges run vertically
	// (TRAPEZOID record variant B) rather than horizontally (variant A).
	Vertical bool
}

func (Trapezoid) isElement() {}

// CTrapezoid is OASIS's 26-entry enumerated trapezoid/triangle shape
// table (CTRAPEZOID record), identified by a type index 0-25.
type CTrapezoid struct {
	elementBase
	X, Y          int64
	Type          int
	Width, Height uint64
}

func (CTrapezoid) isElement() {}

// Circle is a center point and radius.
type Circle struct {
	elementBase
	X, Y   int64
	Radius uint64
}

func (Circle) isElement() {}

// Text is a string (resolved through the TEXTSTRING name table) placed at
// a point.
type Text struct {
	elementBase
	X, Y  int64
	Value string
}

func (Text) isElement() {}

// Placement instances a cell (resolved through the CELLNAME name table),
// with an optional transform and repetition.
type Placement struct {
	elementBase
	CellName string
	X, Y     int64
	FlipX    bool
	// Magnification is 1.0 when absent from the record.
	Magnification float64
	// Angle is in degrees, one of {0, 90, 180, 270} unless AngleIsArbitrary.
	Angle            float64
	AngleIsArbitrary bool
}

func (Placement) isElement() {}

// NewRectangle builds a Rectangle. Properties and Repetition can be set
// on the returned value afterward.
func NewRectangle(layer, datatype uint64, x, y int64, width, height uint64) Rectangle {
	return Rectangle{elementBase: newBase(layer, datatype), X: x, Y: y, Width: width, Height: height}
}

// NewPolygon builds a Polygon anchored at (x, y).
func NewPolygon(layer, datatype uint64, x, y int64, points []Point) Polygon {
	return Polygon{elementBase: newBase(layer, datatype), X: x, Y: y, Points: points}
}

// NewPath builds a Path anchored at (x, y).
func NewPath(layer, datatype uint64, x, y int64, halfWidth uint64, startExt, endExt int64, points []Point) Path {
	return Path{
		elementBase: newBase(layer, datatype), X: x, Y: y, HalfWidth: halfWidth,
		StartExtension: startExt, EndExtension: endExt, Points: points,
	}
}

// NewTrapezoid builds a Trapezoid.
func NewTrapezoid(layer, datatype uint64, x, y int64, width, height uint64, deltaA, deltaB int64, vertical bool) Trapezoid {
	return Trapezoid{
		elementBase: newBase(layer, datatype), X: x, Y: y, Width: width, Height: height,
		DeltaA: deltaA, DeltaB: deltaB, Vertical: vertical,
	}
}

// NewCTrapezoid builds a CTrapezoid.
func NewCTrapezoid(layer, datatype uint64, x, y int64, typ int, width, height uint64) CTrapezoid {
	return CTrapezoid{elementBase: newBase(layer, datatype), X: x, Y: y, Type: typ, Width: width, Height: height}
}

// NewCircle builds a Circle.
func NewCircle(layer, datatype uint64, x, y int64, radius uint64) Circle {
	return Circle{elementBase: newBase(layer, datatype), X: x, Y: y, Radius: radius}
}

// NewText builds a Text element.
func NewText(layer, datatype uint64, x, y int64, value string) Text {
	return Text{elementBase: newBase(layer, datatype), X: x, Y: y, Value: value}
}

// NewPlacement builds a Placement instancing cellName at (x, y) with
// magnification 1.0 and angle 0.
func NewPlacement(cellName string, x, y int64) Placement {
	return Placement{CellName: cellName, X: x, Y: y, Magnification: 1.0}
}

// Cell is a named collection of elements, identified either by an
// explicit name or (until name-table resolution) by a reference number.
type Cell struct {
	Name     string
	Elements []Element
}

// File is the root modern object: the format version, the database unit
// (database units per user unit, a modal real in the wire format), and an
// ordered sequence of cells.
type File struct {
	Version string
	// Unit is the number of database units per user unit.
	Unit float64
	Cells []Cell

	names *NameTable
}

// Names returns the file's resolved name table. It is populated during
// Read and is nil on a File constructed directly for Write.
func (f *File) Names() *NameTable { return f.names }
