package huffman

import (
	"fmt"
	"strings"
)

const (
	// MaxCodeLength is the longest code a CodeBook can hold.
	MaxCodeLength uint8 = 32
	// DefaultPrefixBits is the width of the direct lookup table used when
	// Options.PrefixBits is zero.
	DefaultPrefixBits uint8 = 8
	// MaxPrefixBits bounds the direct lookup table to 64K entries.
	MaxPrefixBits uint8 = 16
)

// Code is a prefix code written as a root-to-leaf path: the first bit on the
// wire is bit Length-1 of Bits, the last is bit 0.
type Code struct {
	Bits   uint32
	Length uint8
}

// String renders the code as its path, e.g. "110".
func (c Code) String() string {
	var sb strings.Builder
	for i := int(c.Length) - 1; i >= 0; i-- {
		if c.Bits>>uint(i)&1 != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Entry pairs a symbol with its code.
type Entry struct {
	Symbol uint32
	Code   Code
}

// Frequency is the occurrence count of one symbol.
type Frequency struct {
	Symbol uint32
	Count  uint32
}

// Options configures how a CodeBook lays out its lookup table.
type Options struct {
	// Order is the bit order of the streams the book will decode.
	Order BitOrder
	// PrefixBits is the direct lookup table width; zero selects
	// DefaultPrefixBits.
	PrefixBits uint8
}

func (o Options) prefixBits() (uint8, error) {
	switch {
	case o.PrefixBits == 0:
		return DefaultPrefixBits, nil
	case o.PrefixBits > MaxPrefixBits:
		return 0, fmt.Errorf("%w: %d", ErrPrefixBits, o.PrefixBits)
	}
	return o.PrefixBits, nil
}

func (o Options) validOrder() error {
	if o.Order != MSBFirst && o.Order != LSBFirst {
		return fmt.Errorf("%w: unknown order %d", ErrOrderMismatch, o.Order)
	}
	return nil
}
