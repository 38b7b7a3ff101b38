package gdsii

import "time"

// Point is an (x, y) coordinate pair in legacy database units. Legacy
// coordinates are 32-bit signed integers on the wire but are kept as
// int32 in memory to make overflow on write a compile-time impossibility
// for values that originate here, and a detectable error only when they
// arrive from a translation out of the 64-bit modern model.
type Point struct {
	X, Y int32
}

// Timestamp is GDSII's packed six-field date: year, month, day, hour,
// minute, second, each a 16-bit signed integer, per spec §3.
type Timestamp struct {
	Year, Month, Day, Hour, Minute, Second int16
}

// TimestampFromTime converts a time.Time to a Timestamp, truncating to
// whole seconds.
func TimestampFromTime(t time.Time) Timestamp {
	return Timestamp{
		Year: int16(t.Year()), Month: int16(t.Month()), Day: int16(t.Day()),
		Hour: int16(t.Hour()), Minute: int16(t.Minute()), Second: int16(t.Second()),
	}
}

// Time converts a Timestamp back to a time.Time in UTC.
func (ts Timestamp) Time() time.Time {
	return time.Date(int(ts.Year), time.Month(ts.Month), int(ts.Day),
		int(ts.Hour), int(ts.Minute), int(ts.Second), 0, time.UTC)
}

// Property is a (16-bit attribute key, string value) pair attachable to
// any element, per spec §3.
type Property struct {
	Attr  int16
	Value string
}

// Transform is GDSII's STrans: reflect-about-x flag, absolute-magnification
// and absolute-angle flags, and optional magnification/rotation.
type Transform struct {
	Reflect        bool
	AbsMagnification bool
	AbsAngle       bool
	// Magnification is nil when the MAG record was absent (default 1.0).
	Magnification *float64
	// Angle is in degrees; nil when the ANGLE record was absent (default 0.0).
	Angle *float64
}

// Element is the closed tagged union of legacy stream elements. Each
// variant below implements it; type-switch on the concrete type to
// handle them, the idiomatic Go equivalent of a closed sum type.
type Element interface {
	isElement()
	// ElementProperties returns the element's (possibly empty) property
	// list, shared by every variant.
	ElementProperties() []Property
}

// Boundary is a closed polygon: layer, datatype, and a vertex sequence
// whose first and last points coincide (length >= 4).
type Boundary struct {
	Layer, Datatype int16
	XY              []Point
	Properties      []Property
}

func (Boundary) isElement()                     {}
func (b Boundary) ElementProperties() []Property { return b.Properties }

// PathType enumerates the legacy path endpoint styles referenced by
// spec §4.4's legacy<->modern mapping table.
type PathType int16

const (
	PathFlush      PathType = 0
	PathRound      PathType = 1
	PathSquare     PathType = 2
	PathCustomExtn PathType = 4
)

// Path is an open polyline: layer, datatype, path type, optional width,
// optional begin/end extensions (only meaningful for PathCustomExtn),
// and a vertex sequence of at least two points.
type Path struct {
	Layer, Datatype int16
	PathType        PathType
	Width           *int32
	BeginExtn       *int32
	EndExtn         *int32
	XY              []Point
	Properties      []Property
}

func (Path) isElement()                     {}
func (p Path) ElementProperties() []Property { return p.Properties }

// Text is a single annotated string: layer, text type, presentation bits,
// optional transform, position, and string value.
type Text struct {
	Layer, TextType int16
	Presentation    uint16
	Transform       *Transform
	Position        Point
	Value           string
	Properties      []Property
}

func (Text) isElement()                     {}
func (t Text) ElementProperties() []Property { return t.Properties }

// StructRef (SREF) is a single instance of another structure.
type StructRef struct {
	Name       string
	Position   Point
	Transform  *Transform
	Properties []Property
}

func (StructRef) isElement()                     {}
func (s StructRef) ElementProperties() []Property { return s.Properties }

// ArrayRef (AREF) is a regular 2-D array of instances of another
// structure, anchored by three points: origin, column-end, row-end.
type ArrayRef struct {
	Name       string
	Columns    int16
	Rows       int16
	Origin     Point
	ColEnd     Point
	RowEnd     Point
	Transform  *Transform
	Properties []Property
}

func (ArrayRef) isElement()                     {}
func (a ArrayRef) ElementProperties() []Property { return a.Properties }

// Node is a legacy electrical-node marker: a layer/node-type-tagged
// vertex sequence with no fill semantics.
type Node struct {
	Layer, NodeType int16
	XY              []Point
	Properties      []Property
}

func (Node) isElement()                     {}
func (n Node) ElementProperties() []Property { return n.Properties }

// Box is a legacy box marker: a layer/box-type-tagged vertex sequence,
// conventionally five points describing a closed rectangle.
type Box struct {
	Layer, BoxType int16
	XY             []Point
	Properties     []Property
}

func (Box) isElement()                     {}
func (b Box) ElementProperties() []Property { return b.Properties }

// Structure is a named, timestamped sequence of elements.
type Structure struct {
	Name         string
	Created      Timestamp
	Modified     Timestamp
	Elements     []Element
}

// Library is the root legacy object: name, version, unit pair, and an
// ordered sequence of structures.
type Library struct {
	Name string
	// Version is the GDSII stream format version (from the HEADER record).
	Version int16
	// UserUnit is the size, in meters, of one user (logical) unit.
	UserUnit float64
	// DatabaseUnit is the size, in meters, of one database (integer
	// coordinate) unit.
	DatabaseUnit float64
	Created      Timestamp
	Modified     Timestamp
	Structures   []Structure
}

// FindStructure returns the structure with the given name, if present.
func (l *Library) FindStructure(name string) (*Structure, bool) {
	for i := range l.Structures {
		if l.Structures[i].Name == name {
			return &l.Structures[i], true
		}
	}

	return nil, false
}
