package bitstream

import (
	"io"

	"github.com/icza/bitio"
)

// Writer packs bit fields into bytes. An MSB-first writer emits bit n-1 of
// each field first and fills bytes from bit 7 down; it is backed by
// bitio.Writer. An LSB-first writer emits bit 0 first and fills bytes from
// bit 0 up, which bitio does not offer.
type Writer struct {
	msb *bitio.Writer

	out  io.Writer
	acc  uint64
	nacc uint8
	err  error
}

// NewWriter returns an MSB-first writer.
func NewWriter(out io.Writer) *Writer {
	return &Writer{msb: bitio.NewWriter(out)}
}

// NewLSBWriter returns an LSB-first writer.
func NewLSBWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// MSBFirst reports the bit order of the writer.
func (w *Writer) MSBFirst() bool { return w.msb != nil }

// WriteBits writes the low count bits of value.
func (w *Writer) WriteBits(value uint32, count uint8) error {
	if count > 32 {
		return errTooManyBits
	}
	if w.msb != nil {
		return w.msb.WriteBits(uint64(value), count)
	}
	if w.err != nil {
		return w.err
	}
	w.acc |= (uint64(value) & lowMask(count)) << w.nacc
	w.nacc += count
	if w.nacc >= 32 {
		var buf [4]byte
		for i := range buf {
			buf[i] = byte(w.acc)
			w.acc >>= 8
		}
		w.nacc -= 32
		w.write(buf[:])
	}
	return w.err
}

// Close pads the last partial byte with zero bits and flushes it. It does
// not close the underlying io.Writer.
func (w *Writer) Close() error {
	if w.msb != nil {
		return w.msb.Close()
	}
	var buf [4]byte
	n := 0
	for w.nacc > 0 {
		buf[n] = byte(w.acc)
		n++
		w.acc >>= 8
		if w.nacc > 8 {
			w.nacc -= 8
		} else {
			w.nacc = 0
		}
	}
	w.write(buf[:n])
	return w.err
}

func (w *Writer) write(buf []byte) {
	if w.err != nil || len(buf) == 0 {
		return
	}
	_, w.err = w.out.Write(buf)
}
