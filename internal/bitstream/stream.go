package bitstream

import (
	"errors"
	"io"

	"github.com/icza/bitio"
)

// StreamReader is an MSB-first bit cursor over an io.Reader. bitio has no
// lookahead, so up to 40 bits are buffered in a window to serve PeekBits.
type StreamReader struct {
	in     *bitio.Reader
	window uint64 // unread bits, the next one at bit count-1
	count  uint8
	eof    bool
}

// NewStreamReader wraps in. The reader is buffered by bitio when in is not
// already an io.ByteReader.
func NewStreamReader(in io.Reader) *StreamReader {
	return &StreamReader{in: bitio.NewReader(in)}
}

// MSBFirst always reports true; bitio delivers bits high to low.
func (s *StreamReader) MSBFirst() bool { return true }

// PeekBits returns the next count bits without consuming them, zero-padded
// past the end of the input.
func (s *StreamReader) PeekBits(count uint8) (uint32, error) {
	if count > 32 {
		return 0, errTooManyBits
	}
	if err := s.fill(count); err != nil {
		return 0, err
	}
	if s.count == 0 {
		return 0, io.EOF
	}
	if s.count >= count {
		return uint32(s.window>>(s.count-count)) & uint32(lowMask(count)), nil
	}
	return uint32(s.window&lowMask(s.count)) << (count - s.count), nil
}

// Skip consumes count bits. Running past the end drains the window and
// returns io.ErrUnexpectedEOF.
func (s *StreamReader) Skip(count uint8) error {
	if count > 32 {
		return errTooManyBits
	}
	if err := s.fill(count); err != nil {
		return err
	}
	if s.count < count {
		s.window, s.count = 0, 0
		return io.ErrUnexpectedEOF
	}
	s.count -= count
	s.window &= lowMask(s.count)
	return nil
}

// ReadBits consumes and returns count bits, failing if fewer remain.
func (s *StreamReader) ReadBits(count uint8) (uint32, error) {
	if count > 32 {
		return 0, errTooManyBits
	}
	if err := s.fill(count); err != nil {
		return 0, err
	}
	if s.count < count {
		if s.count == 0 {
			return 0, io.EOF
		}
		return 0, io.ErrUnexpectedEOF
	}
	value, _ := s.PeekBits(count)
	return value, s.Skip(count)
}

func (s *StreamReader) fill(count uint8) error {
	for s.count < count && !s.eof {
		b, err := s.in.ReadBits(8)
		if errors.Is(err, io.EOF) {
			s.eof = true
			break
		}
		if err != nil {
			return err
		}
		s.window = s.window<<8 | b
		s.count += 8
	}
	return nil
}

func lowMask(n uint8) uint64 {
	return 1<<n - 1
}
