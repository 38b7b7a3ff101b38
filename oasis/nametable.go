package oasis

import "github.com/GiridharSalana/laykit/errs"

// NameClass identifies one of the five independently-numbered OASIS name
// spaces (spec §4.3).
type NameClass int

const (
	NameClassCell NameClass = iota
	NameClassText
	NameClassPropName
	NameClassPropString
	NameClassLayerName
)

// idStyle tracks whether a name class has committed to implicit
// (sequential-from-zero) or explicit (record-supplied) id assignment;
// spec §4.3 forbids mixing the two within one class.
type idStyle int

const (
	idStyleUnset idStyle = iota
	idStyleImplicit
	idStyleExplicit
)

// nameClassTable holds the forward (id -> name) and reverse (name -> id)
// maps for one name class, plus the next implicit id to assign.
type nameClassTable struct {
	style     idStyle
	byID      map[uint64]string
	nextID    uint64
}

func newNameClassTable() *nameClassTable {
	return &nameClassTable{byID: make(map[uint64]string)}
}

// addImplicit records a name assigned the next sequential id, per the
// class's scan order. It is an error to call this after addExplicit has
// been used for the same class.
func (t *nameClassTable) addImplicit(name string) error {
	if t.style == idStyleExplicit {
		return errs.ErrMixedNameIDStyle
	}
	t.style = idStyleImplicit

	t.byID[t.nextID] = name
	t.nextID++

	return nil
}

// addExplicit records a name at a record-supplied id.
func (t *nameClassTable) addExplicit(id uint64, name string) error {
	if t.style == idStyleImplicit {
		return errs.ErrMixedNameIDStyle
	}
	t.style = idStyleExplicit

	t.byID[id] = name

	return nil
}

func (t *nameClassTable) resolve(id uint64) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}

// NameTable is the two-phase-resolved set of all five OASIS name classes.
// During a scan, every CELLNAME/TEXTSTRING/PROPNAME/PROPSTRING/LAYERNAME
// record is recorded via Add*; references are resolved only after the
// whole file has been scanned (or lazily, via Resolve), per spec §4.3.
type NameTable struct {
	classes [5]*nameClassTable
}

// NewNameTable creates an empty table.
func NewNameTable() *NameTable {
	nt := &NameTable{}
	for i := range nt.classes {
		nt.classes[i] = newNameClassTable()
	}

	return nt
}

// AddImplicit records name as the next sequential id in class.
func (nt *NameTable) AddImplicit(class NameClass, name string) error {
	return nt.classes[class].addImplicit(name)
}

// AddExplicit records name at the given id in class.
func (nt *NameTable) AddExplicit(class NameClass, id uint64, name string) error {
	return nt.classes[class].addExplicit(id, name)
}

// Resolve looks up a name by id within class, returning
// errs.ErrUnresolvedName if no record ever defined it.
func (nt *NameTable) Resolve(class NameClass, id uint64) (string, error) {
	name, ok := nt.classes[class].resolve(id)
	if !ok {
		return "", errs.ErrUnresolvedName
	}

	return name, nil
}
