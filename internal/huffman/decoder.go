package huffman

import (
	"errors"
	"fmt"
	"io"
)

// BitReader is the cursor a CodeBook decodes from.
type BitReader interface {
	// PeekBits returns the next n (<= 32) bits without consuming them,
	// zero-padded past the end of the data.
	PeekBits(n uint8) (uint32, error)
	// Skip consumes n bits.
	Skip(n uint8) error
	// MSBFirst reports the cursor's bit order.
	MSBFirst() bool
}

// Decode reads one symbol from r. A bit sequence that matches no code yields
// ErrInvalidCode. io.EOF means r was already exhausted; data that ends inside
// a code is io.ErrUnexpectedEOF. When the bits left cannot start any code the
// error matches both ErrInvalidCode and the cursor error.
func (cb *CodeBook) Decode(r BitReader) (uint32, error) {
	if OrderOf(r.MSBFirst()) != cb.order {
		return 0, fmt.Errorf("%w: book is %s, reader is %s", ErrOrderMismatch, cb.order, OrderOf(r.MSBFirst()))
	}

	code, err := r.PeekBits(cb.prefixBits)
	if err != nil {
		return 0, err
	}
	code &= uint32(len(cb.prefix) - 1)
	if e := cb.prefix[code]; e.ok {
		if err := r.Skip(e.length); err != nil {
			return 0, err
		}
		return e.symbol, nil
	}

	if err := r.Skip(cb.prefixBits); err != nil {
		return 0, errors.Join(ErrInvalidCode, err)
	}
	for i, bucket := range cb.buckets {
		bit, err := r.PeekBits(1)
		if errors.Is(err, io.EOF) {
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		if err := r.Skip(1); err != nil {
			return 0, err
		}
		if cb.order == MSBFirst {
			code = code<<1 | bit
		} else {
			code |= bit << (uint(cb.prefixBits) + uint(i))
		}
		for _, e := range bucket {
			if e.code == code {
				return e.symbol, nil
			}
		}
	}
	return 0, ErrInvalidCode
}

// DecodeN decodes exactly n symbols. On error the symbols decoded so far are
// returned with it.
func (cb *CodeBook) DecodeN(r BitReader, n int) ([]uint32, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrSymbolCount, n)
	}
	out := make([]uint32, 0, n)
	for len(out) < n {
		sym, err := cb.Decode(r)
		if err != nil {
			return out, fmt.Errorf("huffman: symbol %d: %w", len(out), err)
		}
		out = append(out, sym)
	}
	return out, nil
}

// DecodeUntil decodes symbols up to, not including, the first occurrence of
// sentinel. Running out of data first is io.ErrUnexpectedEOF.
func (cb *CodeBook) DecodeUntil(r BitReader, sentinel uint32) ([]uint32, error) {
	var out []uint32
	for {
		sym, err := cb.Decode(r)
		if errors.Is(err, io.EOF) {
			return out, io.ErrUnexpectedEOF
		}
		if err != nil {
			return out, fmt.Errorf("huffman: symbol %d: %w", len(out), err)
		}
		if sym == sentinel {
			return out, nil
		}
		out = append(out, sym)
	}
}
