// Package imaging provides the pixel data model for the transformation engine.
//
// This package implements the value types every transformation consumes and
// produces: Pixel, Image and the named-image Store, together with read-only
// analysis helpers (histograms, color sampling, dominant colors) and the bridge
// to the standard library's image.Image interface used by external codecs.
//
// # Coordinate System
//
// Pixels are addressed by (row, col), both 0-based:
//   - row: vertical position (0 = topmost row), valid range 0 to height-1
//   - col: horizontal position (0 = leftmost column), valid range 0 to width-1
//
// When converting to or from image.Image, col maps to X and row maps to Y.
//
// # Copy Semantics
//
// An Image owns a contiguous row-major buffer. Pixels are values and are copied
// on every read. The Store copies an Image when it is added and again when it is
// returned, so a caller can never observe another holder's later mutations.
//
// # Thread Safety
//
// The Store is safe for concurrent use; every call takes one lock and works on
// a private copy. An Image is not synchronized: a holder that shares one Image
// between goroutines must coordinate writes itself.
//
// # Error Handling
//
// Every failure wraps one of three sentinels so callers can classify it with
// errors.Is:
//   - ErrValidation: out-of-range channels, out-of-bounds coordinates, malformed
//     grids, kernels or matrices
//   - ErrNotFound: an unknown image name
//   - ErrIO: missing files, undecodable files, unsupported extensions
package imaging
