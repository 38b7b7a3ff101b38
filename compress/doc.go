// Package compress provides block compression codecs used by the legacy
// stream's optional spill buffer and the modern format's CBLOCK container.
//
// # Algorithms
//
//   - None: passthrough, returning its input unchanged
//   - Deflate: OASIS's only standardized CBLOCK scheme (compression-type 0
//     in the CBLOCK record), the one scheme the oasis package reads and
//     writes
//   - Zstd, S2, LZ4: general-purpose block codecs available for the GDSII
//     streaming writer's spill buffer, where no format-mandated scheme
//     applies and throughput matters more than interoperability
//
// All codecs implement Codec (Compress + Decompress) and are safe for
// concurrent use.
package compress
