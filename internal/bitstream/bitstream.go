package bitstream

import (
	"errors"
	"io"
)

const maxSpanSize = 256 * 1024 * 1024

var errTooManyBits = errors.New("bitstream: more than 32 bits requested")

// Reader is a bit cursor over an in-memory buffer. Bits are delivered either
// most-significant-bit first (bit 7 of each byte is read first) or
// least-significant-bit first (bit 0 first).
type Reader struct {
	buf    []byte
	byteIx uint32
	bitIx  uint32
	lsb    bool
}

// NewReader constructs an MSB-first reader over data. Inputs above 256 MB are
// ignored and result in an empty buffer.
func NewReader(data []byte) *Reader {
	if len(data) > maxSpanSize {
		data = nil
	}
	return &Reader{buf: data}
}

// NewLSBReader constructs an LSB-first reader over data.
func NewLSBReader(data []byte) *Reader {
	r := NewReader(data)
	r.lsb = true
	return r
}

// NewWord32LEReader constructs an MSB-first reader over a stream of 32-bit
// little-endian words, as used by 4XM prefix streams. A trailing partial word
// is zero-padded.
func NewWord32LEReader(data []byte) *Reader {
	if len(data) > maxSpanSize {
		data = nil
	}
	swapped := make([]byte, (len(data)+3)&^3)
	copy(swapped, data)
	for i := 0; i < len(swapped); i += 4 {
		swapped[i], swapped[i+3] = swapped[i+3], swapped[i]
		swapped[i+1], swapped[i+2] = swapped[i+2], swapped[i+1]
	}
	return &Reader{buf: swapped}
}

// MSBFirst reports whether the first bit of each byte is its most significant.
func (bs *Reader) MSBFirst() bool { return !bs.lsb }

// PeekBits returns the next count bits without advancing. For an MSB-first
// reader the first bit lands in bit count-1 of the result, for an LSB-first
// reader in bit 0. Bits past the end of the buffer read as zero; io.EOF is
// returned only when no bits remain at all.
func (bs *Reader) PeekBits(count uint8) (uint32, error) {
	if count > 32 {
		return 0, errTooManyBits
	}
	left := bs.BitsLeft()
	if left == 0 {
		return 0, io.EOF
	}
	avail := uint32(count)
	if avail > left {
		avail = left
	}

	pos := bs.BitPos()
	var result uint32
	if bs.lsb {
		for i := uint32(0); i < avail; i++ {
			result |= bs.bitAt(pos+i) << i
		}
		return result, nil
	}
	for i := uint32(0); i < avail; i++ {
		result = (result << 1) | bs.bitAt(pos+i)
	}
	return result << (uint32(count) - avail), nil
}

// Skip advances the cursor by count bits. Skipping past the end leaves the
// cursor at the end and returns io.ErrUnexpectedEOF.
func (bs *Reader) Skip(count uint8) error {
	if uint32(count) > bs.BitsLeft() {
		bs.SetBitPos(bs.lengthInBits())
		return io.ErrUnexpectedEOF
	}
	bs.SetBitPos(bs.BitPos() + uint32(count))
	return nil
}

// ReadBits reads count bits in the reader's bit order. Unlike PeekBits it
// fails with io.ErrUnexpectedEOF when fewer than count bits remain.
func (bs *Reader) ReadBits(count uint8) (uint32, error) {
	if count == 0 {
		return 0, nil
	}
	if uint32(count) > bs.BitsLeft() {
		if bs.BitsLeft() == 0 {
			return 0, io.EOF
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, err := bs.PeekBits(count)
	if err != nil {
		return 0, err
	}
	return value, bs.Skip(count)
}

// ReadBit returns the next single bit as a uint32.
func (bs *Reader) ReadBit() (uint32, error) {
	if !bs.InBounds() {
		return 0, io.EOF
	}
	value := bs.bitAt(bs.BitPos())
	bs.advanceBit()
	return value, nil
}

// AlignByte advances the stream to the next byte boundary.
func (bs *Reader) AlignByte() {
	if bs.bitIx != 0 {
		bs.byteIx++
		bs.bitIx = 0
	}
}

// BitPos returns the absolute bit position from the start of the stream.
func (bs *Reader) BitPos() uint32 {
	return (bs.byteIx << 3) + bs.bitIx
}

// SetBitPos positions the stream at the provided bit offset, clamped to the
// end of the buffer.
func (bs *Reader) SetBitPos(bitPos uint32) {
	if bitPos > bs.lengthInBits() {
		bitPos = bs.lengthInBits()
	}
	bs.byteIx = bitPos >> 3
	bs.bitIx = bitPos & 7
}

// BitsLeft returns the number of unread bits.
func (bs *Reader) BitsLeft() uint32 {
	pos := bs.BitPos()
	if pos >= bs.lengthInBits() {
		return 0
	}
	return bs.lengthInBits() - pos
}

// InBounds reports whether the current byte index is within the buffer.
func (bs *Reader) InBounds() bool {
	return bs.byteIx < uint32(len(bs.buf))
}

func (bs *Reader) lengthInBits() uint32 {
	return uint32(len(bs.buf)) * 8
}

func (bs *Reader) bitAt(pos uint32) uint32 {
	b := bs.buf[pos>>3]
	if bs.lsb {
		return uint32(b>>(pos&7)) & 0x01
	}
	return uint32(b>>(7-(pos&7))) & 0x01
}

func (bs *Reader) advanceBit() {
	if bs.bitIx == 7 {
		bs.byteIx++
		bs.bitIx = 0
	} else {
		bs.bitIx++
	}
}
