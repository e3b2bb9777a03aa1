package huffman

import "fmt"

// prefixEntry is one slot of the direct lookup table. ok is false for slots
// no short code reaches.
type prefixEntry struct {
	symbol uint32
	length uint8
	ok     bool
}

// bucketEntry is a long code in stream-native form.
type bucketEntry struct {
	code   uint32
	symbol uint32
}

// CodeBook maps the symbols of a closed alphabet to prefix codes and decodes
// them. Codes of up to PrefixBits bits resolve with one table lookup; longer
// codes are scanned per length. A CodeBook is immutable once built and may be
// shared by any number of concurrent decoders.
type CodeBook struct {
	order      BitOrder
	prefixBits uint8
	maxLength  uint8
	prefix     []prefixEntry
	buckets    [][]bucketEntry
	entries    []Entry
	index      map[uint32]int
}

// FromTable builds a CodeBook from explicit codes. codes[i] is a
// lengths[i]-bit path assigned to symbols[i], or to i when symbols is nil.
// A maxLength of zero is derived from lengths. The codes must be prefix-free;
// overlapping short codes are rejected, overlaps involving longer codes are
// not detected.
func FromTable(maxLength uint8, codes []uint32, lengths []uint8, symbols []uint32, opts Options) (*CodeBook, error) {
	if len(codes) != len(lengths) || (symbols != nil && len(symbols) != len(codes)) {
		return nil, fmt.Errorf("%w: %d codes, %d lengths, %d symbols", ErrSizeMismatch, len(codes), len(lengths), len(symbols))
	}
	if len(codes) == 0 {
		return nil, ErrEmptyAlphabet
	}
	if err := opts.validOrder(); err != nil {
		return nil, err
	}
	p, err := opts.prefixBits()
	if err != nil {
		return nil, err
	}

	if maxLength == 0 {
		for _, l := range lengths {
			maxLength = max(maxLength, l)
		}
	}
	if maxLength > MaxCodeLength {
		return nil, fmt.Errorf("%w: max length %d", ErrLengthOverflow, maxLength)
	}

	cb := &CodeBook{
		order:      opts.Order,
		prefixBits: p,
		maxLength:  maxLength,
		prefix:     make([]prefixEntry, 1<<p),
		entries:    make([]Entry, 0, len(codes)),
		index:      make(map[uint32]int, len(codes)),
	}
	if maxLength > p {
		cb.buckets = make([][]bucketEntry, maxLength-p)
	}

	for i, length := range lengths {
		if length == 0 {
			return nil, fmt.Errorf("%w: entry %d", ErrZeroLength, i)
		}
		if length > maxLength {
			return nil, fmt.Errorf("%w: entry %d has length %d, max %d", ErrLengthOverflow, i, length, maxLength)
		}
		if length < 32 && codes[i]>>length != 0 {
			return nil, fmt.Errorf("%w: entry %d code %#x length %d", ErrCodeRange, i, codes[i], length)
		}

		symbol := uint32(i)
		if symbols != nil {
			symbol = symbols[i]
		}
		code := Code{Bits: codes[i], Length: length}

		if length <= p {
			if err := cb.fill(code, symbol); err != nil {
				return nil, err
			}
		} else {
			b := length - 1 - p
			cb.buckets[b] = append(cb.buckets[b], bucketEntry{code: code.native(cb.order), symbol: symbol})
		}

		if _, dup := cb.index[symbol]; !dup {
			cb.index[symbol] = len(cb.entries)
		}
		cb.entries = append(cb.entries, Entry{Symbol: symbol, Code: code})
	}
	return cb, nil
}

// fill writes symbol into every prefix-table slot the short code reaches.
func (cb *CodeBook) fill(code Code, symbol uint32) error {
	native := code.native(cb.order)
	span := uint32(1) << (cb.prefixBits - code.Length)
	for k := uint32(0); k < span; k++ {
		idx := prefixIndex(cb.order, native, code.Length, cb.prefixBits, k)
		slot := &cb.prefix[idx]
		if slot.ok {
			return fmt.Errorf("%w: symbol %d (%s) and symbol %d at slot %#x", ErrPrefixConflict, symbol, code, slot.symbol, idx)
		}
		*slot = prefixEntry{symbol: symbol, length: code.Length, ok: true}
	}
	return nil
}

// Order returns the stream bit order the book was built for.
func (cb *CodeBook) Order() BitOrder { return cb.order }

// PrefixBits returns the width of the direct lookup table.
func (cb *CodeBook) PrefixBits() uint8 { return cb.prefixBits }

// MaxLength returns the longest code length the book accepts.
func (cb *CodeBook) MaxLength() uint8 { return cb.maxLength }

// Size returns the number of entries in the book.
func (cb *CodeBook) Size() int { return len(cb.entries) }

// Entries returns the symbol/code pairs in construction order.
func (cb *CodeBook) Entries() []Entry {
	out := make([]Entry, len(cb.entries))
	copy(out, cb.entries)
	return out
}

// Code returns the code assigned to symbol.
func (cb *CodeBook) Code(symbol uint32) (Code, bool) {
	i, ok := cb.index[symbol]
	if !ok {
		return Code{}, false
	}
	return cb.entries[i].Code, true
}
