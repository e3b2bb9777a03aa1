package huffman

import "fmt"

// node is a vertex of the merge tree. Leaves keep the position of their
// input frequency; internal nodes are appended as they are created.
type node struct {
	freq      uint64
	leaf      bool
	zero, one int
}

// CanonicalCodes runs the Huffman merge over freqs and returns the code of
// each entry, index-aligned with freqs.
//
// Each round scans all live nodes in position order and picks the two with
// the smallest frequency; only a strictly smaller frequency displaces a
// candidate, so among equal frequencies the earliest node wins both roles.
// The first pick becomes the zero child of the new node, the second the one
// child. The bit is prepended to the path of every leaf below it, so the
// root decision ends up in the highest bit of each code.
func CanonicalCodes(freqs []Frequency) ([]Code, error) {
	switch len(freqs) {
	case 0:
		return nil, ErrEmptyAlphabet
	case 1:
		return nil, fmt.Errorf("%w: symbol %d", ErrSingleSymbol, freqs[0].Symbol)
	}

	nodes := make([]node, len(freqs), 2*len(freqs)-1)
	for i, f := range freqs {
		if f.Count == 0 {
			return nil, fmt.Errorf("%w: symbol %d", ErrZeroFrequency, f.Symbol)
		}
		nodes[i] = node{freq: uint64(f.Count), leaf: true}
	}

	codes := make([]Code, len(freqs))
	queue := make([]int, 0, len(nodes))
	appendBit := func(top int, bit uint32) error {
		queue = append(queue[:0], top)
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			n := nodes[idx]
			if !n.leaf {
				queue = append(queue, n.zero, n.one)
				continue
			}
			c := &codes[idx]
			if c.Length == MaxCodeLength {
				return fmt.Errorf("%w: symbol %d needs more than %d bits", ErrLengthOverflow, freqs[idx].Symbol, MaxCodeLength)
			}
			c.Bits |= bit << c.Length
			c.Length++
		}
		return nil
	}

	for {
		first, second := -1, -1
		for idx := range nodes {
			f := nodes[idx].freq
			if f == 0 {
				continue
			}
			switch {
			case first < 0 || f < nodes[first].freq:
				first, second = idx, first
			case second < 0 || f < nodes[second].freq:
				second = idx
			}
		}
		if second < 0 {
			break
		}

		sum := nodes[first].freq + nodes[second].freq
		nodes[first].freq = 0
		nodes[second].freq = 0
		nodes = append(nodes, node{freq: sum, zero: first, one: second})
		if err := appendBit(first, 0); err != nil {
			return nil, err
		}
		if err := appendBit(second, 1); err != nil {
			return nil, err
		}
	}
	return codes, nil
}

// FromFrequencies builds a CodeBook from symbol frequencies with
// CanonicalCodes. Every count must be non-zero and at least two symbols are
// required.
func FromFrequencies(freqs []Frequency, opts Options) (*CodeBook, error) {
	codes, err := CanonicalCodes(freqs)
	if err != nil {
		return nil, err
	}
	bits := make([]uint32, len(codes))
	lengths := make([]uint8, len(codes))
	symbols := make([]uint32, len(codes))
	for i, c := range codes {
		bits[i] = c.Bits
		lengths[i] = c.Length
		symbols[i] = freqs[i].Symbol
	}
	return FromTable(0, bits, lengths, symbols, opts)
}

// FromCounts builds a CodeBook where counts[i] is the frequency of symbol i.
// Zero counts are left out of the alphabet.
func FromCounts(counts []uint32, opts Options) (*CodeBook, error) {
	freqs := make([]Frequency, 0, len(counts))
	for sym, count := range counts {
		if count != 0 {
			freqs = append(freqs, Frequency{Symbol: uint32(sym), Count: count})
		}
	}
	return FromFrequencies(freqs, opts)
}
