package huffman

import (
	"errors"
	"strings"
	"testing"

	"github.com/jdeng/gohuffman/internal/bitstream"
)

// packBits packs a string of '0'/'1' into bytes, first bit first, in the
// given stream order. Trailing bits are zero.
func packBits(t *testing.T, bits string, order BitOrder) []byte {
	t.Helper()
	out := make([]byte, (len(bits)+7)/8)
	for i, ch := range bits {
		switch ch {
		case '0':
		case '1':
			if order == LSBFirst {
				out[i/8] |= 1 << (i % 8)
			} else {
				out[i/8] |= 0x80 >> (i % 8)
			}
		default:
			t.Fatalf("bad bit %q in %q", ch, bits)
		}
	}
	return out
}

func newReader(data []byte, order BitOrder) *bitstream.Reader {
	if order == LSBFirst {
		return bitstream.NewLSBReader(data)
	}
	return bitstream.NewReader(data)
}

// treeNode is a plain binary trie used as an independent reference decoder.
type treeNode struct {
	child  [2]*treeNode
	symbol uint32
	leaf   bool
}

func buildTree(t *testing.T, entries []Entry) *treeNode {
	t.Helper()
	root := &treeNode{}
	for _, e := range entries {
		n := root
		for _, ch := range e.Code.String() {
			b := ch - '0'
			if n.leaf {
				t.Fatalf("code %s for symbol %d passes through a leaf", e.Code, e.Symbol)
			}
			if n.child[b] == nil {
				n.child[b] = &treeNode{}
			}
			n = n.child[b]
		}
		if n.leaf || n.child[0] != nil || n.child[1] != nil {
			t.Fatalf("code %s for symbol %d is not a leaf", e.Code, e.Symbol)
		}
		n.leaf = true
		n.symbol = e.Symbol
	}
	return root
}

// walkDecode decodes a '0'/'1' string one bit at a time.
func walkDecode(root *treeNode, bits string) ([]uint32, error) {
	var out []uint32
	n := root
	for _, ch := range bits {
		n = n.child[ch-'0']
		if n == nil {
			return out, errors.New("walk: no such code")
		}
		if n.leaf {
			out = append(out, n.symbol)
			n = root
		}
	}
	if n != root {
		return out, errors.New("walk: trailing partial code")
	}
	return out, nil
}

func pathString(t *testing.T, cb *CodeBook, symbols []uint32) string {
	t.Helper()
	var sb strings.Builder
	for _, s := range symbols {
		c, ok := cb.Code(s)
		if !ok {
			t.Fatalf("symbol %d not in book", s)
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

func equalSymbols(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
