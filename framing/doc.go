// Package framing provides the binary framing primitives shared by the
// gdsii and oasis codecs: endian-correct integer access, the legacy
// 8-byte real encoding, the modern unsigned/signed varint and modal-real
// encodings, and raw string readers/writers.
//
// Nothing in this package understands records, elements, or hierarchy;
// it operates purely on byte slices and values, the way the teacher
// repository's endian package underlies its higher-level codecs.
package framing
