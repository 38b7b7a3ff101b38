// Package translator converts between the legacy (gdsii) and modern
// (oasis) in-memory element models. Every conversion is a pure function
// of its input plus the active Options; neither direction consults or
// mutates package-level state.
package translator

import "github.com/GiridharSalana/laykit/internal/options"

// Options configures both translation directions.
type Options struct {
	// CircleSegments is the number of vertices used to approximate a
	// Circle as a legacy Boundary. Default 32.
	CircleSegments int

	// DetectRectangles controls whether a four-point legacy Boundary
	// that is axis-aligned is promoted to a modern Rectangle rather than
	// a four-vertex Polygon. Default true.
	DetectRectangles bool

	// ExpandIrregularRepetitions is the setting for modern Repetitions
	// whose Kind is not RepRegularGrid. Default true. ModernToLegacy does
	// not read it: a Placement with such a repetition is expanded into one
	// legacy StructRef per instance whatever its value.
	// Irregular repetitions on shapes other than Placement have no
	// legacy array equivalent regardless of this flag and are always
	// expanded.
	ExpandIrregularRepetitions bool
}

// Option configures an Options value.
type Option = options.Option[*Options]

// DefaultOptions returns the translator's default configuration.
func DefaultOptions() Options {
	return Options{
		CircleSegments:             32,
		DetectRectangles:           true,
		ExpandIrregularRepetitions: true,
	}
}

// WithCircleSegments overrides the circle-to-polygon approximation
// vertex count. n must be at least 3.
func WithCircleSegments(n int) Option {
	return options.New(func(o *Options) error {
		if n < 3 {
			return errInvalidCircleSegments
		}
		o.CircleSegments = n
		return nil
	})
}

// WithRectangleDetection toggles Boundary-to-Rectangle promotion.
func WithRectangleDetection(enabled bool) Option {
	return options.NoError(func(o *Options) { o.DetectRectangles = enabled })
}

// WithExpandIrregularRepetitions sets Options.ExpandIrregularRepetitions.
// ModernToLegacy does not read the flag; non-regular-grid Placement
// repetitions are expanded to individual StructRefs either way.
func WithExpandIrregularRepetitions(enabled bool) Option {
	return options.NoError(func(o *Options) { o.ExpandIrregularRepetitions = enabled })
}

// apply folds opts onto DefaultOptions.
func apply(opts []Option) (Options, error) {
	o := DefaultOptions()
	if err := options.Apply(&o, opts...); err != nil {
		return Options{}, err
	}

	return o, nil
}
