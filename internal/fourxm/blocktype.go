package fourxm

import (
	"fmt"
	"sync"

	"github.com/jdeng/gohuffman/internal/huffman"
)

// Block type codes read from a P-frame block type stream.
const (
	BlockSplitHeight = 1
	BlockSplitWidth  = 2
	BlockLiteral     = 6
)

var blockTypeCounts = [4][]uint32{
	{16, 8, 4, 2, 1, 1},
	{8, 0, 4, 2, 1, 1},
	{8, 4, 0, 2, 1, 1},
	{8, 0, 0, 4, 2, 1, 1},
}

var blockTypeBooks = func() (books [4]func() (*huffman.CodeBook, error)) {
	for i := range books {
		counts := blockTypeCounts[i]
		books[i] = sync.OnceValues(func() (*huffman.CodeBook, error) {
			return huffman.FromCounts(counts, huffman.Options{})
		})
	}
	return books
}()

// sizeToBook maps [log2h][log2w] of a block to its block type book.
var sizeToBook = [4][4]int{
	{-1, 3, 1, 1},
	{3, 0, 0, 0},
	{2, 0, 0, 0},
	{2, 0, 0, 0},
}

// BlockTypeBook returns one of the four static block type codebooks. Books
// are built on first use and shared.
func BlockTypeBook(i int) (*huffman.CodeBook, error) {
	if i < 0 || i >= len(blockTypeBooks) {
		return nil, fmt.Errorf("%w: index %d", ErrBlockType, i)
	}
	return blockTypeBooks[i]()
}

// BlockTypeBookFor returns the block type codebook used for a block of
// 1<<log2w by 1<<log2h pixels.
func BlockTypeBookFor(log2w, log2h int) (*huffman.CodeBook, error) {
	if log2w < 0 || log2h < 0 || log2w >= 4 || log2h >= 4 || sizeToBook[log2h][log2w] < 0 {
		return nil, fmt.Errorf("%w: log2 size %dx%d", ErrBlockType, log2w, log2h)
	}
	return BlockTypeBook(sizeToBook[log2h][log2w])
}
