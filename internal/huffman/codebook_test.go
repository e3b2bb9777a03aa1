package huffman

import (
	"errors"
	"testing"
)

func TestFromTableExplicit(t *testing.T) {
	cb, err := FromTable(0, []uint32{0b0, 0b10, 0b11}, []uint8{1, 2, 2}, []uint32{'A', 'B', 'C'}, Options{})
	if err != nil {
		t.Fatalf("FromTable failed: %v", err)
	}
	if cb.MaxLength() != 2 {
		t.Errorf("Expected derived max length 2, got %d", cb.MaxLength())
	}

	// 0 10 11 0
	data := packBits(t, "010110", MSBFirst)
	got, err := cb.DecodeN(newReader(data, MSBFirst), 4)
	if err != nil {
		t.Fatalf("DecodeN failed: %v", err)
	}
	want := []uint32{'A', 'B', 'C', 'A'}
	if !equalSymbols(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFromTableSymbolsDefaultToIndex(t *testing.T) {
	cb, err := FromTable(0, []uint32{0b1, 0b01, 0b00}, []uint8{1, 2, 2}, nil, Options{})
	if err != nil {
		t.Fatalf("FromTable failed: %v", err)
	}
	for sym, path := range []string{"1", "01", "00"} {
		c, ok := cb.Code(uint32(sym))
		if !ok || c.String() != path {
			t.Errorf("symbol %d: expected %s, got %s (ok=%v)", sym, path, c, ok)
		}
	}
}

func TestFromTableExplicitMaxLength(t *testing.T) {
	cb, err := FromTable(12, []uint32{0, 1}, []uint8{1, 1}, nil, Options{})
	if err != nil {
		t.Fatalf("FromTable failed: %v", err)
	}
	if cb.MaxLength() != 12 {
		t.Errorf("Expected max length 12, got %d", cb.MaxLength())
	}
	if len(cb.buckets) != 4 {
		t.Errorf("Expected 4 buckets, got %d", len(cb.buckets))
	}
}

func TestFromTableErrors(t *testing.T) {
	tests := []struct {
		name      string
		maxLength uint8
		codes     []uint32
		lengths   []uint8
		symbols   []uint32
		opts      Options
		want      error
	}{
		{"empty", 0, nil, nil, nil, Options{}, ErrEmptyAlphabet},
		{"codes vs lengths", 0, []uint32{0, 1}, []uint8{1}, nil, Options{}, ErrSizeMismatch},
		{"symbols", 0, []uint32{0, 1}, []uint8{1, 1}, []uint32{5}, Options{}, ErrSizeMismatch},
		{"zero length", 0, []uint32{0, 1}, []uint8{1, 0}, nil, Options{}, ErrZeroLength},
		{"max length", 33, []uint32{0, 1}, []uint8{1, 1}, nil, Options{}, ErrLengthOverflow},
		{"derived max length", 0, []uint32{0, 1}, []uint8{1, 40}, nil, Options{}, ErrLengthOverflow},
		{"length above max", 2, []uint32{0, 0b110}, []uint8{1, 3}, nil, Options{}, ErrLengthOverflow},
		{"code range", 0, []uint32{0, 0b100}, []uint8{1, 2}, nil, Options{}, ErrCodeRange},
		{"conflict", 0, []uint32{0b0, 0b01}, []uint8{1, 2}, nil, Options{}, ErrPrefixConflict},
		{"duplicate", 0, []uint32{0b10, 0b10}, []uint8{2, 2}, nil, Options{}, ErrPrefixConflict},
		{"conflict lsb", 0, []uint32{0b1, 0b10}, []uint8{1, 2}, nil, Options{Order: LSBFirst}, ErrPrefixConflict},
		{"prefix bits", 0, []uint32{0, 1}, []uint8{1, 1}, nil, Options{PrefixBits: 17}, ErrPrefixBits},
		{"order", 0, []uint32{0, 1}, []uint8{1, 1}, nil, Options{Order: BitOrder(9)}, ErrOrderMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, err := FromTable(tt.maxLength, tt.codes, tt.lengths, tt.symbols, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if cb != nil {
				t.Fatal("Expected no CodeBook on error")
			}
		})
	}
}

func TestFromTablePrefixLayout(t *testing.T) {
	// "1" and "01" with a 4-bit table.
	for _, order := range []BitOrder{MSBFirst, LSBFirst} {
		cb, err := FromTable(0, []uint32{0b1, 0b01, 0b00}, []uint8{1, 2, 2}, []uint32{10, 20, 30}, Options{Order: order, PrefixBits: 4})
		if err != nil {
			t.Fatalf("%s: FromTable failed: %v", order, err)
		}
		for idx, e := range cb.prefix {
			if !e.ok {
				t.Fatalf("%s: slot %#x left empty in a complete code", order, idx)
			}
			// The first stream bit of the slot is bit 3 (MSB) or bit 0 (LSB).
			first, second := idx>>3&1, idx>>2&1
			if order == LSBFirst {
				first, second = idx&1, idx>>1&1
			}
			want := uint32(30)
			switch {
			case first == 1:
				want = 10
			case second == 1:
				want = 20
			}
			if e.symbol != want {
				t.Errorf("%s: slot %#04b holds %d, expected %d", order, idx, e.symbol, want)
			}
		}
	}
}

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{Code{Bits: 0, Length: 1}, "0"},
		{Code{Bits: 0b110, Length: 3}, "110"},
		{Code{Bits: 0b1, Length: 4}, "0001"},
		{Code{}, ""},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code{%b, %d}: expected %q, got %q", tt.code.Bits, tt.code.Length, tt.want, got)
		}
	}
}

func TestReverseBits(t *testing.T) {
	tests := []struct {
		x    uint32
		n    uint8
		want uint32
	}{
		{0b1, 1, 0b1},
		{0b10, 2, 0b01},
		{0b110, 3, 0b011},
		{0b1011, 4, 0b1101},
		{0x80000000, 32, 1},
		{0xff, 0, 0},
	}
	for _, tt := range tests {
		if got := reverseBits(tt.x, tt.n); got != tt.want {
			t.Errorf("reverseBits(%b, %d): expected %b, got %b", tt.x, tt.n, tt.want, got)
		}
	}
}
