package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/jdeng/gohuffman/internal/bitstream"
	"github.com/jdeng/gohuffman/internal/fourxm"
	"github.com/jdeng/gohuffman/internal/huffman"
)

// Errors returned by codebook construction and decoding.
var (
	ErrEmptyAlphabet  = huffman.ErrEmptyAlphabet
	ErrSingleSymbol   = huffman.ErrSingleSymbol
	ErrLengthOverflow = huffman.ErrLengthOverflow
	ErrPrefixConflict = huffman.ErrPrefixConflict
	ErrInvalidCode    = huffman.ErrInvalidCode
	ErrUnknownSymbol  = huffman.ErrUnknownSymbol
	ErrOrderMismatch  = huffman.ErrOrderMismatch
	ErrSymbolCount    = huffman.ErrSymbolCount
)

// BitOrder selects how bits are taken out of each byte of a stream.
type BitOrder int

const (
	// MSBFirst reads bit 7 of each byte first.
	MSBFirst BitOrder = iota
	// LSBFirst reads bit 0 of each byte first.
	LSBFirst
)

func (o BitOrder) String() string {
	switch o {
	case MSBFirst:
		return "MSBFirst"
	case LSBFirst:
		return "LSBFirst"
	default:
		return fmt.Sprintf("BitOrder(%d)", int(o))
	}
}

func (o BitOrder) internal() huffman.BitOrder {
	switch o {
	case MSBFirst:
		return huffman.MSBFirst
	case LSBFirst:
		return huffman.LSBFirst
	default:
		return huffman.BitOrder(0xff)
	}
}

// Options configures codebook construction.
type Options struct {
	// Order is the bit order of the streams the codebook reads and writes.
	Order BitOrder
	// PrefixBits sizes the direct lookup table. Zero selects 8.
	PrefixBits int
}

func (o Options) internal() (huffman.Options, error) {
	if o.PrefixBits < 0 || o.PrefixBits > int(huffman.MaxPrefixBits) {
		return huffman.Options{}, fmt.Errorf("%w: %d", huffman.ErrPrefixBits, o.PrefixBits)
	}
	return huffman.Options{Order: o.Order.internal(), PrefixBits: uint8(o.PrefixBits)}, nil
}

// Frequency is the weight of one symbol.
type Frequency struct {
	Symbol uint32
	Count  uint32
}

// Code is a prefix code with the first transmitted bit in the highest of its
// Length bits.
type Code struct {
	Bits   uint32
	Length int
}

func (c Code) String() string {
	return huffman.Code{Bits: c.Bits, Length: uint8(c.Length)}.String()
}

// Entry pairs a symbol with its code.
type Entry struct {
	Symbol uint32
	Code   Code
}

// CodeBook decodes and encodes symbols with a fixed prefix code.
type CodeBook struct {
	cb *huffman.CodeBook
}

// FromTable builds a codebook from explicit codes. symbols may be nil, in
// which case entry i codes symbol i. A maxLength of zero is derived from
// lengths.
func FromTable(maxLength int, codes []uint32, lengths []uint8, symbols []uint32, opts Options) (*CodeBook, error) {
	if maxLength < 0 || maxLength > int(huffman.MaxCodeLength) {
		return nil, fmt.Errorf("%w: max length %d", huffman.ErrLengthOverflow, maxLength)
	}
	o, err := opts.internal()
	if err != nil {
		return nil, err
	}
	cb, err := huffman.FromTable(uint8(maxLength), codes, lengths, symbols, o)
	if err != nil {
		return nil, err
	}
	return &CodeBook{cb: cb}, nil
}

// FromFrequencies builds an optimal codebook. Every count must be non-zero.
func FromFrequencies(freqs []Frequency, opts Options) (*CodeBook, error) {
	o, err := opts.internal()
	if err != nil {
		return nil, err
	}
	in := make([]huffman.Frequency, len(freqs))
	for i, f := range freqs {
		in[i] = huffman.Frequency{Symbol: f.Symbol, Count: f.Count}
	}
	cb, err := huffman.FromFrequencies(in, o)
	if err != nil {
		return nil, err
	}
	return &CodeBook{cb: cb}, nil
}

// FromCounts builds an optimal codebook where counts[i] is the frequency of
// symbol i. Symbols with a zero count get no code.
func FromCounts(counts []uint32, opts Options) (*CodeBook, error) {
	o, err := opts.internal()
	if err != nil {
		return nil, err
	}
	cb, err := huffman.FromCounts(counts, o)
	if err != nil {
		return nil, err
	}
	return &CodeBook{cb: cb}, nil
}

// FromLengths builds a codebook from code lengths, assigning canonical codes
// in entry order. Entries with length zero get no code.
func FromLengths(lengths []uint8, symbols []uint32, opts Options) (*CodeBook, error) {
	o, err := opts.internal()
	if err != nil {
		return nil, err
	}
	cb, err := huffman.FromLengths(lengths, symbols, o)
	if err != nil {
		return nil, err
	}
	return &CodeBook{cb: cb}, nil
}

// LoadStatistics builds the token codebook of a 4XM I-frame from the
// frequency table at the start of its prefix stream. It returns the offset of
// the token words within data.
func LoadStatistics(data []byte) (*CodeBook, int, error) {
	cb, offset, err := fourxm.LoadStatistics(data)
	if err != nil {
		return nil, 0, err
	}
	return &CodeBook{cb: cb}, offset, nil
}

// BlockTypeBook returns one of the four static 4XM block type codebooks.
func BlockTypeBook(i int) (*CodeBook, error) {
	cb, err := fourxm.BlockTypeBook(i)
	if err != nil {
		return nil, err
	}
	return &CodeBook{cb: cb}, nil
}

// Order returns the bit order the codebook was built for.
func (c *CodeBook) Order() BitOrder {
	if c.cb.Order() == huffman.LSBFirst {
		return LSBFirst
	}
	return MSBFirst
}

// MaxLength returns the longest code length the codebook accepts.
func (c *CodeBook) MaxLength() int { return int(c.cb.MaxLength()) }

// Size returns the number of coded symbols.
func (c *CodeBook) Size() int { return c.cb.Size() }

// Code returns the code of symbol.
func (c *CodeBook) Code(symbol uint32) (Code, bool) {
	code, ok := c.cb.Code(symbol)
	return Code{Bits: code.Bits, Length: int(code.Length)}, ok
}

// Codes returns every entry in construction order.
func (c *CodeBook) Codes() []Entry {
	entries := c.cb.Entries()
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Symbol: e.Symbol, Code: Code{Bits: e.Code.Bits, Length: int(e.Code.Length)}}
	}
	return out
}

// Decode reads one symbol from r.
func (c *CodeBook) Decode(r *Reader) (uint32, error) {
	return c.cb.Decode(r.r)
}

// DecodeN reads n symbols from r. On error the symbols decoded so far are
// returned with it.
func (c *CodeBook) DecodeN(r *Reader, n int) ([]uint32, error) {
	return c.cb.DecodeN(r.r, n)
}

// DecodeUntil reads symbols up to, not including, sentinel.
func (c *CodeBook) DecodeUntil(r *Reader, sentinel uint32) ([]uint32, error) {
	return c.cb.DecodeUntil(r.r, sentinel)
}

// DecodeAll reads symbols until the stream is exhausted. Padding bits in the
// final byte decode as extra symbols when they form a complete code, and
// return io.ErrUnexpectedEOF with the symbols so far when they do not.
func (c *CodeBook) DecodeAll(r *Reader) ([]uint32, error) {
	var out []uint32
	for {
		sym, err := c.cb.Decode(r.r)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, sym)
	}
}

// Encode writes the code of symbol to w.
func (c *CodeBook) Encode(w *Writer, symbol uint32) error {
	return c.cb.Encode(w.w, symbol)
}

// EncodeAll writes the codes of symbols to w.
func (c *CodeBook) EncodeAll(w *Writer, symbols []uint32) error {
	return c.cb.EncodeAll(w.w, symbols)
}

// Reader is a bit source for decoding.
type Reader struct {
	r huffman.BitReader
}

// NewReader reads bits from data in the given order.
func NewReader(data []byte, order BitOrder) *Reader {
	if order == LSBFirst {
		return &Reader{r: bitstream.NewLSBReader(data)}
	}
	return &Reader{r: bitstream.NewReader(data)}
}

// NewWord32LEReader reads MSB-first bits from 32-bit little-endian words.
func NewWord32LEReader(data []byte) *Reader {
	return &Reader{r: bitstream.NewWord32LEReader(data)}
}

// NewStreamReader reads MSB-first bits from in.
func NewStreamReader(in io.Reader) *Reader {
	return &Reader{r: bitstream.NewStreamReader(in)}
}

// Writer is a bit sink for encoding. Close must be called to flush the last
// partial byte.
type Writer struct {
	w *bitstream.Writer
}

// NewWriter writes bits to out in the given order.
func NewWriter(out io.Writer, order BitOrder) *Writer {
	if order == LSBFirst {
		return &Writer{w: bitstream.NewLSBWriter(out)}
	}
	return &Writer{w: bitstream.NewWriter(out)}
}

// Close pads the last byte with zero bits and flushes it.
func (w *Writer) Close() error {
	return w.w.Close()
}
