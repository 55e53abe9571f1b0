package qrcodegen

import "errors"

// Encode-side error kinds (§7).
var (
	// ErrCapacityExceeded means the data does not fit any (version, ECL)
	// combination allowed by the builder's constraints.
	ErrCapacityExceeded = errors.New("qrcodegen: capacity exceeded")

	// ErrInvalidConfig means the builder was given an incompatible fixed
	// version, fixed ECL, fixed mask, or segment combination.
	ErrInvalidConfig = errors.New("qrcodegen: invalid configuration")

	// ErrKanjiOutOfRange means a byte pair given to a forced Kanji segment
	// is not a valid Shift-JIS double-byte code point.
	ErrKanjiOutOfRange = errors.New("qrcodegen: kanji byte pair out of range")
)

// Decode-side error kinds used by the qrcodegen package's shared metadata
// decoders (BCH, segment parsing). The image-pipeline-specific errors
// (NoFinders, GeometryAmbiguous, ...) live in package detect; the
// RS-uncorrectable and segment errors live here because qrcodegen's own
// decode helpers (Deinterleave, BitReader, DecodeKanji) return them and the
// detect package's pipeline reports them too.
var (
	// ErrFormatUnrecoverable means both copies of the 15-bit format-info
	// codeword are farther than Hamming distance 3 from every valid
	// codeword.
	ErrFormatUnrecoverable = errors.New("qrcodegen: format info unrecoverable")

	// ErrVersionUnrecoverable means both copies of the 18-bit version-info
	// codeword (version >= 7) are farther than Hamming distance 3 from
	// every valid codeword, and no geometric estimate can substitute.
	ErrVersionUnrecoverable = errors.New("qrcodegen: version info unrecoverable")

	// ErrEcUncorrectable means Reed-Solomon decoding failed for at least
	// one codeword block.
	ErrEcUncorrectable = errors.New("qrcodegen: error correction uncorrectable")

	// ErrSegmentMalformed means a mode indicator or character-count
	// indicator produced an impossible segment length while parsing a
	// decoded bit stream.
	ErrSegmentMalformed = errors.New("qrcodegen: segment malformed")
)
