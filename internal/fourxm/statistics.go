package fourxm

import (
	"errors"
	"fmt"

	"github.com/jdeng/gohuffman/internal/huffman"
)

// EndOfBlock is the extra symbol appended to every statistics table.
const EndOfBlock = 256

var (
	ErrTruncated  = errors.New("fourxm: truncated data")
	ErrDCRun      = errors.New("fourxm: run code in DC position")
	ErrBlockType  = errors.New("fourxm: no block type book for this size")
	ErrBlockCount = errors.New("fourxm: negative block count")
)

// LoadStatistics parses the frequency table at the start of an I-frame
// prefix stream and builds its codebook. The table is a sequence of groups
// start, end, freq[start..end]; the byte following a group is the next start,
// and a start of zero ends the table. EndOfBlock is added with frequency 1.
//
// The returned offset is the position of the first token word, which follows
// the table on a 4-byte boundary.
func LoadStatistics(data []byte) (*huffman.CodeBook, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: statistics header needs 2 bytes, have %d", ErrTruncated, len(data))
	}
	var counts [EndOfBlock + 1]uint32
	start, end := int(data[0]), int(data[1])
	pos := 2
	for {
		n := end - start + 1
		if n < 0 {
			n = 0
		}
		if len(data)-pos < n+1 {
			return nil, 0, fmt.Errorf("%w: statistics group %d..%d at offset %d", ErrTruncated, start, end, pos)
		}
		for sym := start; sym <= end; sym++ {
			counts[sym] = uint32(data[pos])
			pos++
		}
		start = int(data[pos])
		pos++
		if start == 0 {
			break
		}
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: statistics group end at offset %d", ErrTruncated, pos)
		}
		end = int(data[pos])
		pos++
	}
	counts[EndOfBlock] = 1

	cb, err := huffman.FromCounts(counts[:], huffman.Options{})
	if err != nil {
		return nil, 0, fmt.Errorf("fourxm: statistics: %w", err)
	}
	offset := (pos + 3) &^ 3
	if offset > len(data) {
		offset = len(data)
	}
	return cb, offset, nil
}
