// Package oasis implements the modern OASIS layout format: its
// self-delimiting record stream, varint/zigzag/modal-real value encoding,
// two-phase name-table resolution, per-cell modal context, and repetition
// compression, plus the in-memory data model those records build.
//
// Reading a file:
//
//	f, err := oasis.Read(r)
//
// Writing one back:
//
//	err := oasis.Write(w, f)
package oasis
