package fourxm

import (
	"encoding/binary"
	"fmt"

	"github.com/jdeng/gohuffman/internal/bitstream"
	"github.com/jdeng/gohuffman/internal/huffman"
)

// IFrame holds the two streams of an intra frame chunk. Bitstream carries
// the coefficient level bits (bytes read MSB-first). Prefix starts with the
// statistics table, followed by the token stream in 32-bit little-endian
// words.
type IFrame struct {
	Bitstream  []byte
	Prefix     []byte
	TokenCount uint32
}

// Block is one 8x8 block of coefficient levels in raster order.
type Block [64]int32

var zigzag = [64]uint8{
	0, 1, 8, 16, 9, 2, 3, 10, 17, 24, 32, 25, 18, 11, 4,
	5, 12, 19, 26, 33, 40, 48, 41, 34, 27, 20, 13, 6, 7,
	14, 21, 28, 35, 42, 49, 56, 57, 50, 43, 36, 29, 22,
	15, 23, 30, 37, 44, 51, 58, 59, 52, 45, 38, 31, 39,
	46, 53, 60, 61, 54, 47, 55, 62, 63,
}

// ParseIFrame splits an I-frame payload. The layout is a little-endian
// bitstream size, the bitstream, the prefix size in 4-byte words, the token
// count and the prefix stream. The returned slices alias payload.
func ParseIFrame(payload []byte) (*IFrame, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: I-frame header needs 4 bytes, have %d", ErrTruncated, len(payload))
	}
	bitstreamSize := uint64(binary.LittleEndian.Uint32(payload))
	offset := uint64(4)
	if uint64(len(payload)) < offset+bitstreamSize+8 {
		return nil, fmt.Errorf("%w: I-frame bitstream of %d bytes", ErrTruncated, bitstreamSize)
	}
	frame := &IFrame{Bitstream: payload[offset : offset+bitstreamSize]}
	offset += bitstreamSize

	prefixSize := uint64(binary.LittleEndian.Uint32(payload[offset:])) * 4
	frame.TokenCount = binary.LittleEndian.Uint32(payload[offset+4:])
	offset += 8
	if uint64(len(payload))-offset < prefixSize {
		return nil, fmt.Errorf("%w: I-frame prefix stream of %d bytes, have %d", ErrTruncated, prefixSize, uint64(len(payload))-offset)
	}
	frame.Prefix = payload[offset : offset+prefixSize]
	offset += prefixSize
	if offset != uint64(len(payload)) {
		return nil, fmt.Errorf("fourxm: %d trailing bytes after I-frame prefix stream", uint64(len(payload))-offset)
	}
	return frame, nil
}

// Statistics builds the token codebook from the prefix stream and returns a
// reader positioned at the first token.
func (f *IFrame) Statistics() (*huffman.CodeBook, *bitstream.Reader, error) {
	cb, offset, err := LoadStatistics(f.Prefix)
	if err != nil {
		return nil, nil, err
	}
	return cb, bitstream.NewWord32LEReader(f.Prefix[offset:]), nil
}

// Tokens decodes the first n tokens of the prefix stream.
func (f *IFrame) Tokens(n int) ([]uint32, error) {
	cb, tokens, err := f.Statistics()
	if err != nil {
		return nil, err
	}
	return cb.DecodeN(tokens, n)
}

// Blocks decodes n coefficient blocks. Each block starts with a DC token
// giving the size of a DC difference in the bitstream, followed by AC tokens
// that pack a zero run in the high nibble and a level size in the low nibble.
// Token 0 ends a block early and 0xf0 skips sixteen positions. DC values are
// predicted from the previous block. Levels are not dequantized.
func (f *IFrame) Blocks(n int) ([]Block, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBlockCount, n)
	}
	cb, tokens, err := f.Statistics()
	if err != nil {
		return nil, err
	}
	levels := bitstream.NewReader(f.Bitstream)

	blocks := make([]Block, n)
	var lastDC int32
	for i := range blocks {
		if err := decodeBlock(cb, tokens, levels, &lastDC, &blocks[i]); err != nil {
			return blocks[:i], fmt.Errorf("fourxm: block %d: %w", i, err)
		}
	}
	return blocks, nil
}

func decodeBlock(cb *huffman.CodeBook, tokens, levels *bitstream.Reader, lastDC *int32, b *Block) error {
	dc, err := cb.Decode(tokens)
	if err != nil {
		return err
	}
	if dc>>4 != 0 {
		return fmt.Errorf("%w: token 0x%x", ErrDCRun, dc)
	}
	diff, err := readSigned(levels, uint8(dc))
	if err != nil {
		return err
	}
	*lastDC += diff
	b[0] = *lastDC

	for idx := 1; idx < len(b); {
		token, err := cb.Decode(tokens)
		if err != nil {
			return err
		}
		switch token {
		case 0:
			return nil
		case 0xf0:
			idx += 16
		default:
			idx += int(token >> 4)
			size := uint8(token & 0x0f)
			if size != 0 && idx < len(b) {
				v, err := readSigned(levels, size)
				if err != nil {
					return err
				}
				b[zigzag[idx]] = v
				idx++
			}
		}
	}
	return nil
}

// readSigned reads an n-bit level. Values with the top bit clear are
// negative: 0..2^(n-1)-1 map to -(2^n-1)..-2^(n-1).
func readSigned(r *bitstream.Reader, n uint8) (int32, error) {
	if n == 0 {
		return 0, nil
	}
	v, err := r.ReadBits(n)
	if err != nil {
		return 0, err
	}
	if v&(1<<(n-1)) == 0 {
		return int32(v) + 1 - int32(1)<<n, nil
	}
	return int32(v), nil
}
