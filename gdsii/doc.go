// Package gdsii implements the legacy GDSII stream format: its big-endian,
// length-prefixed record framing, the record-sequence state machine that
// turns a stream of records into a library/structure/element tree (and
// back), and the in-memory data model that tree is built from.
//
// Reading a file:
//
//	lib, err := gdsii.Read(r)
//
// Writing one back:
//
//	err := gdsii.Write(w, lib)
//
// For very large libraries, StreamReader processes one structure at a
// time without materializing the whole library, per spec §5.
package gdsii
