package decode

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/webbmaffian/go-deflog"
)

// ReadHeader reads and validates a stream header.
func ReadHeader(r io.Reader) (h deflog.StreamHeader, err error) {
	var b [deflog.StreamHeaderSize]byte

	if _, err = io.ReadFull(r, b[:]); err != nil {
		return
	}

	err = h.Decode(b[:])
	return
}

// Stream reads size-prefixed frames following a stream header.
type Stream struct {
	r      *bufio.Reader
	header deflog.StreamHeader
	buf    [deflog.MaxFrameSize]byte
	read   bool
}

func NewStream(r io.Reader) *Stream {
	return &Stream{
		r: bufio.NewReader(r),
	}
}

// Header returns the stream header, reading it if no frame has been read yet.
func (s *Stream) Header() (h deflog.StreamHeader, err error) {
	if err = s.readHeader(); err != nil {
		return
	}

	return s.header, nil
}

// Next returns the next raw frame. The slice is only valid until the next
// call. io.EOF is returned at a clean end of stream.
func (s *Stream) Next() (frame []byte, err error) {
	if err = s.readHeader(); err != nil {
		return
	}

	var prefix [deflog.FramePrefixSize]byte

	if _, err = io.ReadFull(s.r, prefix[:]); err != nil {
		return
	}

	size := int(binary.BigEndian.Uint16(prefix[:]))

	if size < deflog.MinFrameSize {
		return nil, deflog.ErrTooShort
	}

	if size > deflog.MaxFrameSize {
		return nil, deflog.ErrTooLong
	}

	if _, err = io.ReadFull(s.r, s.buf[:size]); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return
	}

	return s.buf[:size], nil
}

func (s *Stream) readHeader() (err error) {
	if s.read {
		return
	}

	if s.header, err = ReadHeader(s.r); err != nil {
		return
	}

	s.read = true
	return
}

// SplitDatagram splits one datagram into its header and frames. Datagram
// clients send the header and a frame in the same packet.
func SplitDatagram(b []byte, fn func(h deflog.StreamHeader, frame []byte) error) (err error) {
	var h deflog.StreamHeader

	if err = h.Decode(b); err != nil {
		return
	}

	b = b[deflog.StreamHeaderSize:]

	for len(b) > 0 {
		if len(b) < deflog.FramePrefixSize {
			return deflog.ErrTooShort
		}

		size := int(binary.BigEndian.Uint16(b))
		b = b[deflog.FramePrefixSize:]

		if size > len(b) {
			return deflog.ErrTooShort
		}

		if err = fn(h, b[:size]); err != nil {
			return
		}

		b = b[size:]
	}

	return
}
