package huffman

import "errors"

// Build errors. A constructor that returns one of these returns no CodeBook.
var (
	ErrEmptyAlphabet  = errors.New("huffman: empty alphabet")
	ErrLengthOverflow = errors.New("huffman: code length overflow")
	ErrZeroLength     = errors.New("huffman: zero code length")
	ErrSizeMismatch   = errors.New("huffman: code, length and symbol counts differ")
	ErrCodeRange      = errors.New("huffman: code has bits above its length")
	ErrPrefixConflict = errors.New("huffman: overlapping prefix codes")
	ErrZeroFrequency  = errors.New("huffman: zero symbol frequency")
	ErrSingleSymbol   = errors.New("huffman: single-symbol alphabet has no code")
	ErrPrefixBits     = errors.New("huffman: prefix table width out of range")
)

// Decode and encode errors.
var (
	ErrInvalidCode   = errors.New("huffman: invalid code")
	ErrUnknownSymbol = errors.New("huffman: symbol not in codebook")
	ErrOrderMismatch = errors.New("huffman: bit order mismatch")
	ErrSymbolCount   = errors.New("huffman: negative symbol count")
)
