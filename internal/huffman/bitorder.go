package huffman

import "math/bits"

// BitOrder is the convention by which a stream's bytes become a bit sequence.
type BitOrder uint8

const (
	// MSBFirst streams read bit 7 of each byte first. A peek of n bits
	// returns the first bit in position n-1.
	MSBFirst BitOrder = iota
	// LSBFirst streams read bit 0 of each byte first. A peek of n bits
	// returns the first bit in position 0.
	LSBFirst
)

func (o BitOrder) String() string {
	switch o {
	case MSBFirst:
		return "msb"
	case LSBFirst:
		return "lsb"
	}
	return "unknown"
}

// OrderOf maps a cursor's MSBFirst report to a BitOrder.
func OrderOf(msbFirst bool) BitOrder {
	if msbFirst {
		return MSBFirst
	}
	return LSBFirst
}

// reverseBits reverses the low n bits of x.
func reverseBits(x uint32, n uint8) uint32 {
	if n == 0 {
		return 0
	}
	return bits.Reverse32(x) >> (32 - n)
}

// native returns c as it appears in a peek of c.Length bits.
func (c Code) native(order BitOrder) uint32 {
	if order == LSBFirst {
		return reverseBits(c.Bits, c.Length)
	}
	return c.Bits
}

// prefixIndex returns the k-th of the 1<<(p-length) table slots whose first
// length stream bits equal the native code.
func prefixIndex(order BitOrder, native uint32, length, p uint8, k uint32) uint32 {
	if order == LSBFirst {
		return native | k<<length
	}
	return native<<(p-length) | k
}
