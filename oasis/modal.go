package oasis

// ModalState is the OASIS reader/writer's sliding per-cell default set
// (spec §4.3, "modal context"). It is kept as an explicit value here
// rather than hidden state on File or Cell, so the in-memory model stays
// free of codec artifacts, per the design note that modal context belongs
// to the reader/writer, not the data model.
//
// This implementation's info-byte covers layer, datatype, geometry
// position, a primary/secondary size pair, repetition, and properties —
// the fields shared by every element kind. Point lists (polygon/path
// vertices), placement transforms, and text/cell-name references are
// always written explicitly; see DESIGN.md for why that scope was chosen.
//
// Reset must be called at the start of every cell; every field reverts to
// its wire-format default at that point.
type ModalState struct {
	Layer, Datatype uint64
	GeometryX, GeometryY int64
	Size, Size2     uint64
	Repetition      *Repetition
}

// NewModalState returns a freshly reset modal state, as at the start of a
// cell.
func NewModalState() *ModalState {
	return &ModalState{}
}

// Reset reverts every slot, as required at every CELL record.
func (m *ModalState) Reset() {
	*m = ModalState{}
}
