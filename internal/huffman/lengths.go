package huffman

import "fmt"

// CodesFromLengths assigns canonical codes from code lengths alone. Codes of
// one length are consecutive in entry order, and the first code of each
// length follows the last code of the previous length shifted left by one.
// Entries with length zero get no code.
func CodesFromLengths(lengths []uint8) ([]Code, error) {
	var maxLen uint8
	for _, l := range lengths {
		maxLen = max(maxLen, l)
	}
	if maxLen == 0 {
		return nil, ErrEmptyAlphabet
	}
	if maxLen > MaxCodeLength {
		return nil, fmt.Errorf("%w: length %d", ErrLengthOverflow, maxLen)
	}

	lencounts := make([]uint64, maxLen+1)
	for _, l := range lengths {
		lencounts[l]++
	}
	lencounts[0] = 0

	codes := make([]Code, len(lengths))
	var first uint64
	for l := uint8(1); l <= maxLen; l++ {
		first = (first + lencounts[l-1]) << 1
		cur := first
		for i, li := range lengths {
			if li != l {
				continue
			}
			if cur >= 1<<l {
				return nil, fmt.Errorf("%w: lengths are oversubscribed at %d bits", ErrPrefixConflict, l)
			}
			codes[i] = Code{Bits: uint32(cur), Length: l}
			cur++
		}
	}
	return codes, nil
}

// FromLengths builds a CodeBook from code lengths with CodesFromLengths.
// symbols may be nil, in which case entry i codes symbol i. Entries with
// length zero are left out.
func FromLengths(lengths []uint8, symbols []uint32, opts Options) (*CodeBook, error) {
	if symbols != nil && len(symbols) != len(lengths) {
		return nil, fmt.Errorf("%w: %d lengths, %d symbols", ErrSizeMismatch, len(lengths), len(symbols))
	}
	codes, err := CodesFromLengths(lengths)
	if err != nil {
		return nil, err
	}

	var bits, syms []uint32
	var lens []uint8
	for i, c := range codes {
		if c.Length == 0 {
			continue
		}
		sym := uint32(i)
		if symbols != nil {
			sym = symbols[i]
		}
		bits = append(bits, c.Bits)
		lens = append(lens, c.Length)
		syms = append(syms, sym)
	}
	return FromTable(0, bits, lens, syms, opts)
}
