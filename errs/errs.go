// Package errs defines the closed error taxonomy shared by the gdsii, oasis,
// framing, and translator packages.
//
// Every error the codec can return is one of the sentinels declared here, or
// wraps one of them via fmt.Errorf("...: %w", errs.ErrX). Callers should use
// errors.Is against these sentinels rather than comparing error strings.
package errs

import "errors"

// Sentinel errors with no associated payload.
var (
	// ErrUnexpectedEOF indicates the stream ended in the middle of a record.
	ErrUnexpectedEOF = errors.New("laykit: unexpected end of stream mid-record")

	// ErrBadMagic indicates a modern file did not begin with the 13-byte
	// "%SEMI-OASIS\r\n" magic sequence.
	ErrBadMagic = errors.New("laykit: bad OASIS magic")

	// ErrBadRecordLength indicates a record's length field is inconsistent
	// with the stream position or with its record type.
	ErrBadRecordLength = errors.New("laykit: bad record length")

	// ErrBadDataType indicates a GDSII record carries the wrong data-type
	// code for its record type.
	ErrBadDataType = errors.New("laykit: bad data type for record")

	// ErrUnexpectedRecord indicates a record type is illegal in the current
	// legacy state-machine state.
	ErrUnexpectedRecord = errors.New("laykit: unexpected record in current state")

	// ErrUnknownRecord indicates an unrecognized record type was found where
	// unknown records are fatal (inside an element body).
	ErrUnknownRecord = errors.New("laykit: unknown record type")

	// ErrVarintOverflow indicates an OASIS unsigned varint ran longer than
	// 10 bytes (beyond 64 bits).
	ErrVarintOverflow = errors.New("laykit: varint overflow")

	// ErrBadRepetition indicates an OASIS repetition type is unknown or its
	// parameters are malformed.
	ErrBadRepetition = errors.New("laykit: bad repetition")

	// ErrUnresolvedName indicates an OASIS name-table reference was never
	// defined by a CELLNAME/TEXTSTRING/PROPNAME/PROPSTRING/LAYERNAME record.
	ErrUnresolvedName = errors.New("laykit: unresolved name-table reference")

	// ErrMixedNameIDStyle indicates a name class mixed implicit and
	// explicit id assignment within a single file.
	ErrMixedNameIDStyle = errors.New("laykit: mixed implicit/explicit name ids")

	// ErrUnbalancedStructure indicates BGNSTR/ENDSTR or BGNLIB/ENDLIB did
	// not balance.
	ErrUnbalancedStructure = errors.New("laykit: unbalanced BGNSTR/ENDSTR or BGNLIB/ENDLIB")

	// ErrStructuralViolation indicates a §3 data-model invariant was
	// violated while writing (e.g. an unclosed Boundary).
	ErrStructuralViolation = errors.New("laykit: structural invariant violated")

	// ErrUndefinedCellReference indicates a Placement/StructRef/ArrayRef
	// targets a structure or cell not present in the file being translated.
	ErrUndefinedCellReference = errors.New("laykit: undefined cell or structure reference")

	// ErrZeroDimensionArray indicates an ArrayRef or regular Repetition has
	// a zero column or row count.
	ErrZeroDimensionArray = errors.New("laykit: zero-dimension array")
)

// Real8RangeError reports that a double could not be encoded as a legacy
// Real8 because it is outside the representable range after clamping.
type Real8RangeError struct {
	Value float64
}

func (e *Real8RangeError) Error() string {
	return "laykit: Real8 value out of representable range"
}

func (e *Real8RangeError) Unwrap() error { return errReal8OutOfRange }

var errReal8OutOfRange = errors.New("laykit: Real8 exponent out of range")

// ErrReal8OutOfRange is the sentinel matched by errors.Is(err, errs.ErrReal8OutOfRange).
var ErrReal8OutOfRange = errReal8OutOfRange

// CoordinateOverflowError reports that a 64-bit modern coordinate does not
// fit in the 32-bit legacy coordinate space.
type CoordinateOverflowError struct {
	// Value is the offending coordinate.
	Value int64
	// Field names which coordinate component overflowed, e.g. "x" or "y".
	Field string
}

func (e *CoordinateOverflowError) Error() string {
	return "laykit: coordinate overflow: " + e.Field
}

func (e *CoordinateOverflowError) Unwrap() error { return errCoordinateOverflow }

var errCoordinateOverflow = errors.New("laykit: coordinate exceeds 32-bit range")

// ErrCoordinateOverflow is the sentinel matched by
// errors.Is(err, errs.ErrCoordinateOverflow).
var ErrCoordinateOverflow = errCoordinateOverflow

// UnsupportedFeatureError reports a recognized but unimplemented feature,
// e.g. a CBLOCK compression scheme other than deflate, or a CTrapezoid type
// outside the 0-25 table.
type UnsupportedFeatureError struct {
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return "laykit: unsupported feature: " + e.Feature
}

func (e *UnsupportedFeatureError) Unwrap() error { return errUnsupportedFeature }

var errUnsupportedFeature = errors.New("laykit: unsupported feature")

// ErrUnsupportedFeature is the sentinel matched by
// errors.Is(err, errs.ErrUnsupportedFeature).
var ErrUnsupportedFeature = errUnsupportedFeature
