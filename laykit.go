// Package laykit reads, writes, and translates between the two binary
// interchange formats used for IC mask layouts: legacy GDSII and modern
// OASIS.
//
// # Core features
//
//   - Full GDSII stream codec (gdsii package): boundaries, paths, text,
//     structure references, arrays, nodes, and boxes.
//   - Full OASIS codec (oasis package): all twelve repetition kinds
//     normalized to a uniform offset list, modal-context delta encoding,
//     two-phase name-table resolution, and CBLOCK (deflate) compression.
//   - A pure, allocation-light translator (translator package) converting
//     between the two in-memory models in both directions, including
//     axis-aligned rectangle detection, CTrapezoid outline expansion, and
//     array/repetition collapsing.
//   - Format sniffing (detect package) to identify a stream without a
//     file extension.
//
// # Basic usage
//
//	lib, err := laykit.ReadLegacy(r)
//	modern, err := laykit.LegacyToModern(lib)
//	err = laykit.WriteModern(w, modern)
//
// This file provides thin convenience wrappers around the gdsii, oasis,
// translator, and detect packages for the common cases; for fine-grained
// control (functional options on either codec or the translator) use
// those packages directly.
package laykit

import (
	"io"

	"github.com/GiridharSalana/laykit/detect"
	"github.com/GiridharSalana/laykit/gdsii"
	"github.com/GiridharSalana/laykit/oasis"
	"github.com/GiridharSalana/laykit/translator"
)

// ReadLegacy reads a GDSII stream into a Library.
func ReadLegacy(r io.Reader) (*gdsii.Library, error) {
	return gdsii.Read(r)
}

// WriteLegacy writes a Library as a GDSII stream.
func WriteLegacy(w io.Writer, lib *gdsii.Library) error {
	sw, err := gdsii.NewStreamWriter(w, gdsii.LibraryHeader{
		Name: lib.Name, Version: lib.Version,
		UserUnit: lib.UserUnit, DatabaseUnit: lib.DatabaseUnit,
		Created: lib.Created, Modified: lib.Modified,
	})
	if err != nil {
		return err
	}

	for _, st := range lib.Structures {
		if err := sw.WriteStructure(st); err != nil {
			return err
		}
	}

	return sw.Close()
}

// ReadModern reads an OASIS stream into a File.
func ReadModern(r io.Reader) (*oasis.File, error) {
	return oasis.Read(r)
}

// WriteModern writes a File as an uncompressed OASIS stream.
func WriteModern(w io.Writer, f *oasis.File) error {
	return oasis.Write(w, f)
}

// WriteModernCompressed writes a File as an OASIS stream with its cell
// bodies wrapped in a deflate CBLOCK.
func WriteModernCompressed(w io.Writer, f *oasis.File) error {
	return oasis.WriteCompressed(w, f)
}

// LegacyToModern converts a GDSII Library into an OASIS File.
func LegacyToModern(lib *gdsii.Library, opts ...translator.Option) (*oasis.File, error) {
	return translator.LegacyToModern(lib, opts...)
}

// ModernToLegacy converts an OASIS File into a GDSII Library. Coordinates
// outside the 32-bit legacy range produce an errs.CoordinateOverflowError.
func ModernToLegacy(f *oasis.File, opts ...translator.Option) (*gdsii.Library, error) {
	return translator.ModernToLegacy(f, opts...)
}

// DetectFormat sniffs which format a stream holds from its leading bytes.
// Pass at least 13 bytes (the OASIS magic length) for a reliable result;
// fewer may yield detect.Unknown even for a valid stream.
func DetectFormat(head []byte) detect.Kind {
	return detect.Format(head)
}
