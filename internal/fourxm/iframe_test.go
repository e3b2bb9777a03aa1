package fourxm

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/jdeng/gohuffman/internal/bitstream"
	"github.com/jdeng/gohuffman/internal/huffman"
)

func buildIFrame(bits, prefix []byte, tokenCount uint32) []byte {
	var out []byte
	out = binary.LittleEndian.AppendUint32(out, uint32(len(bits)))
	out = append(out, bits...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(prefix)/4))
	out = binary.LittleEndian.AppendUint32(out, tokenCount)
	return append(out, prefix...)
}

// blockStats codes 0 as "0", 2 as "10", 0x13 as "110" and EndOfBlock as "111".
var blockStats = []byte{0x00, 0x02, 4, 0, 2, 0x13, 0x13, 1, 0x00, 0x00, 0x00, 0x00}

func TestParseIFrame(t *testing.T) {
	bits := []byte{0xAA, 0xBB, 0xCC}
	prefix := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	frame, err := ParseIFrame(buildIFrame(bits, prefix, 42))
	if err != nil {
		t.Fatalf("ParseIFrame returned error: %v", err)
	}
	if string(frame.Bitstream) != string(bits) {
		t.Fatalf("unexpected bitstream: got % x, want % x", frame.Bitstream, bits)
	}
	if string(frame.Prefix) != string(prefix) {
		t.Fatalf("unexpected prefix: got % x, want % x", frame.Prefix, prefix)
	}
	if frame.TokenCount != 42 {
		t.Fatalf("unexpected token count: got %d, want 42", frame.TokenCount)
	}
}

func TestParseIFrame_Truncated(t *testing.T) {
	data := buildIFrame([]byte{0xAA, 0xBB}, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 1)
	for _, n := range []int{0, 3, 5, 9, len(data) - 1} {
		if _, err := ParseIFrame(data[:n]); !errors.Is(err, ErrTruncated) {
			t.Errorf("length %d: expected ErrTruncated, got %v", n, err)
		}
	}
}

func TestParseIFrame_TrailingBytes(t *testing.T) {
	data := append(buildIFrame(nil, []byte{1, 2, 3, 4}, 1), 0xFF)
	if _, err := ParseIFrame(data); err == nil {
		t.Fatal("expected error for trailing bytes")
	}
}

func TestIFrameTokens(t *testing.T) {
	// 0 10 110 111
	prefix := []byte{0x01, 0x03, 4, 2, 1, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, 0x5B}
	frame, err := ParseIFrame(buildIFrame(nil, prefix, 4))
	if err != nil {
		t.Fatalf("ParseIFrame returned error: %v", err)
	}
	tokens, err := frame.Tokens(int(frame.TokenCount))
	if err != nil {
		t.Fatalf("Tokens returned error: %v", err)
	}
	want := []uint32{1, 2, 3, EndOfBlock}
	if len(tokens) != len(want) {
		t.Fatalf("unexpected token count: got %d, want %d", len(tokens), len(want))
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: got %d, want %d", i, tokens[i], want[i])
		}
	}
}

func TestIFrameBlocks(t *testing.T) {
	// Tokens: block 0 is DC size 2, run 1 size 3, end; block 1 is DC size 2, end.
	// 10 110 0 10 0
	prefix := append(append([]byte{}, blockStats...), 0x00, 0x00, 0x00, 0xB2)
	// Levels: 11 (3), 010 (-5), 01 (-2)
	bits := []byte{0xD2}

	frame, err := ParseIFrame(buildIFrame(bits, prefix, 0))
	if err != nil {
		t.Fatalf("ParseIFrame returned error: %v", err)
	}
	blocks, err := frame.Blocks(2)
	if err != nil {
		t.Fatalf("Blocks returned error: %v", err)
	}
	if blocks[0][0] != 3 {
		t.Errorf("block 0 DC: got %d, want 3", blocks[0][0])
	}
	// Zigzag position 2 is raster index 8.
	if blocks[0][8] != -5 {
		t.Errorf("block 0 AC: got %d, want -5", blocks[0][8])
	}
	if blocks[1][0] != 1 {
		t.Errorf("block 1 DC: got %d, want 1", blocks[1][0])
	}
	for i, v := range blocks[1][1:] {
		if v != 0 {
			t.Errorf("block 1 AC %d: got %d, want 0", i+1, v)
		}
	}
}

func TestIFrameBlocks_DCRun(t *testing.T) {
	// 110 decodes to 0x13 in DC position.
	prefix := append(append([]byte{}, blockStats...), 0x00, 0x00, 0x00, 0xC0)
	frame, err := ParseIFrame(buildIFrame([]byte{0x00}, prefix, 0))
	if err != nil {
		t.Fatalf("ParseIFrame returned error: %v", err)
	}
	if _, err := frame.Blocks(1); !errors.Is(err, ErrDCRun) {
		t.Fatalf("expected ErrDCRun, got %v", err)
	}
}

func TestIFrameBlocks_LevelsExhausted(t *testing.T) {
	// DC size 2 with no level bits.
	prefix := append(append([]byte{}, blockStats...), 0x00, 0x00, 0x00, 0x80)
	frame, err := ParseIFrame(buildIFrame(nil, prefix, 0))
	if err != nil {
		t.Fatalf("ParseIFrame returned error: %v", err)
	}
	blocks, err := frame.Blocks(1)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no complete blocks, got %d", len(blocks))
	}
}

func TestIFrame_NegativeCount(t *testing.T) {
	prefix := append(append([]byte{}, blockStats...), 0x00, 0x00, 0x00, 0xB2)
	frame, err := ParseIFrame(buildIFrame([]byte{0xD2}, prefix, 0))
	if err != nil {
		t.Fatalf("ParseIFrame returned error: %v", err)
	}
	if _, err := frame.Blocks(-1); !errors.Is(err, ErrBlockCount) {
		t.Errorf("Blocks(-1): expected ErrBlockCount, got %v", err)
	}
	if _, err := frame.Tokens(-1); !errors.Is(err, huffman.ErrSymbolCount) {
		t.Errorf("Tokens(-1): expected huffman.ErrSymbolCount, got %v", err)
	}
}

func TestReadSigned(t *testing.T) {
	tests := []struct {
		n    uint8
		raw  uint32
		want int32
	}{
		{1, 0, -1},
		{1, 1, 1},
		{2, 0, -3},
		{2, 1, -2},
		{2, 2, 2},
		{3, 3, -4},
		{3, 7, 7},
	}
	for _, tt := range tests {
		data := []byte{byte(tt.raw << (8 - tt.n))}
		got, err := readSigned(bitstream.NewReader(data), tt.n)
		if err != nil {
			t.Fatalf("readSigned(%d) returned error: %v", tt.n, err)
		}
		if got != tt.want {
			t.Errorf("readSigned(%d, %b): got %d, want %d", tt.n, tt.raw, got, tt.want)
		}
	}
}
