// Package errs defines the sentinel errors returned by blendpack.
//
// Callers can classify failures with errors.Is:
//
//	err := blend.CompressBuffers(...)
//	if errors.Is(err, errs.ErrTableOverflow) {
//	    // resize the tuple table and retry
//	}
package errs

import "errors"

var (
	// ErrTableOverflow indicates that the number of unique bone index tuples
	// exceeds the caller-provided table capacity. The required size is still
	// reported so the caller can allocate a larger table and retry.
	ErrTableOverflow = errors.New("tuple table overflow")

	// ErrUnsupportedParams indicates that the requested compression method
	// cannot represent the requested bone count, tuple count and vertex size
	// combination, even after parameter completion.
	ErrUnsupportedParams = errors.New("unsupported compression parameters")

	// ErrInvalidInput indicates malformed vertex data, such as negative
	// weights or weights that do not sum to one within tolerance.
	ErrInvalidInput = errors.New("invalid vertex input")

	// ErrInvalidHeaderSize indicates a blob header of the wrong length.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates that blob data does not start with the
	// blendpack magic number.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidSectionOffset indicates that a blob section offset points
	// outside the blob or sections overlap.
	ErrInvalidSectionOffset = errors.New("invalid section offset")

	// ErrChecksumMismatch indicates that a blob payload digest does not match
	// the stored digest.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")
)
