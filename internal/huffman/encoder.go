package huffman

import "fmt"

// BitWriter is the sink a CodeBook encodes into. WriteBits emits the low n
// bits of value in the writer's own order: bit n-1 first for MSB-first
// writers, bit 0 first for LSB-first writers.
type BitWriter interface {
	WriteBits(value uint32, n uint8) error
	MSBFirst() bool
}

// Encode writes the code of symbol to w.
func (cb *CodeBook) Encode(w BitWriter, symbol uint32) error {
	if OrderOf(w.MSBFirst()) != cb.order {
		return fmt.Errorf("%w: book is %s, writer is %s", ErrOrderMismatch, cb.order, OrderOf(w.MSBFirst()))
	}
	c, ok := cb.Code(symbol)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownSymbol, symbol)
	}
	return w.WriteBits(c.native(cb.order), c.Length)
}

// EncodeAll writes the codes of symbols in order.
func (cb *CodeBook) EncodeAll(w BitWriter, symbols []uint32) error {
	for i, sym := range symbols {
		if err := cb.Encode(w, sym); err != nil {
			return fmt.Errorf("huffman: symbol %d: %w", i, err)
		}
	}
	return nil
}
