package format

// RecordID identifies an OASIS record by its leading unsigned-varint id
// byte, per spec §4.3's principal record-id set.
type RecordID uint8

// OASIS record ids.
const (
	RecPad        RecordID = 0
	RecStart      RecordID = 1
	RecEnd        RecordID = 2
	RecCellNameImp RecordID = 3
	RecCellNameExp RecordID = 4
	RecTextStringImp RecordID = 5
	RecTextStringExp RecordID = 6
	RecPropNameImp RecordID = 7
	RecPropNameExp RecordID = 8
	RecPropStringImp RecordID = 9
	RecPropStringExp RecordID = 10
	RecLayerNameData RecordID = 11
	RecLayerNameText RecordID = 12
	RecCellRef    RecordID = 13
	RecCellName   RecordID = 14
	RecPlacement     RecordID = 17
	RecPlacementXY   RecordID = 18
	RecText       RecordID = 19
	RecRectangle  RecordID = 20
	RecPolygon    RecordID = 21
	RecPath       RecordID = 22
	RecTrapezoidA RecordID = 23
	RecTrapezoidB RecordID = 24
	RecCTrapezoid RecordID = 25
	RecCircle     RecordID = 26
	RecPropertyFull  RecordID = 28
	RecPropertyRepeat RecordID = 29
	RecXName0     RecordID = 30
	RecXName1     RecordID = 31
	RecXElement   RecordID = 32
	RecXGeometry2 RecordID = 33
	RecCBlock     RecordID = 34
)

var recordIDNames = map[RecordID]string{
	RecPad: "PAD", RecStart: "START", RecEnd: "END",
	RecCellNameImp: "CELLNAME", RecCellNameExp: "CELLNAME",
	RecTextStringImp: "TEXTSTRING", RecTextStringExp: "TEXTSTRING",
	RecPropNameImp: "PROPNAME", RecPropNameExp: "PROPNAME",
	RecPropStringImp: "PROPSTRING", RecPropStringExp: "PROPSTRING",
	RecLayerNameData: "LAYERNAME", RecLayerNameText: "LAYERNAME",
	RecCellRef: "CELL", RecCellName: "CELL",
	RecPlacement: "PLACEMENT", RecPlacementXY: "PLACEMENT",
	RecText: "TEXT", RecRectangle: "RECTANGLE", RecPolygon: "POLYGON",
	RecPath: "PATH", RecTrapezoidA: "TRAPEZOID", RecTrapezoidB: "TRAPEZOID",
	RecCTrapezoid: "CTRAPEZOID", RecCircle: "CIRCLE",
	RecPropertyFull: "PROPERTY", RecPropertyRepeat: "PROPERTY",
	RecXName0: "XNAME", RecXName1: "XNAME", RecXElement: "XELEMENT",
	RecXGeometry2: "XGEOMETRY", RecCBlock: "CBLOCK",
}

func (r RecordID) String() string {
	if name, ok := recordIDNames[r]; ok {
		return name
	}

	return "UNKNOWN"
}

// ShapeKind names the kind of in-memory geometric element, used by the
// translator to describe what an element mapped to or from without
// coupling to either format's own element type.
type ShapeKind uint8

const (
	ShapeBoundary ShapeKind = iota
	ShapeRectangle
	ShapePolygon
	ShapePath
	ShapeTrapezoid
	ShapeCTrapezoid
	ShapeCircle
	ShapeText
	ShapePlacement
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBoundary:
		return "Boundary"
	case ShapeRectangle:
		return "Rectangle"
	case ShapePolygon:
		return "Polygon"
	case ShapePath:
		return "Path"
	case ShapeTrapezoid:
		return "Trapezoid"
	case ShapeCTrapezoid:
		return "CTrapezoid"
	case ShapeCircle:
		return "Circle"
	case ShapeText:
		return "Text"
	case ShapePlacement:
		return "Placement"
	default:
		return "Unknown"
	}
}
