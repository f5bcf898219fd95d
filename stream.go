package deflog

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

/*
	Stream header, sent once per connection or file:
		4 bytes magic "DFLG"
		1 byte (uint8) version
		12 bytes XID session
		16 bytes UUID build ID of the intern table

	Every frame on a stream is prefixed by its size:
		2 bytes (uint16, big endian) length (X)
		X bytes frame
*/

const (
	StreamMagic      = "DFLG"
	StreamVersion    = 1
	StreamHeaderSize = 4 + 1 + 12 + 16
	FramePrefixSize  = 2
)

type StreamHeader struct {
	Session xid.ID
	BuildID uuid.UUID
}

func (h *StreamHeader) Encode(b []byte) (s int) {
	s += copy(b[s:], StreamMagic)
	b[s] = StreamVersion
	s++
	s += copy(b[s:], h.Session[:])
	s += copy(b[s:], h.BuildID[:])
	return
}

func (h *StreamHeader) Decode(b []byte) (err error) {
	if len(b) < StreamHeaderSize {
		return ErrTooShort
	}

	if string(b[:4]) != StreamMagic || b[4] != StreamVersion {
		return ErrBadMagic
	}

	if h.Session, err = xid.FromBytes(b[5:17]); err != nil {
		return
	}

	copy(h.BuildID[:], b[17:StreamHeaderSize])
	return
}

// PutFrame writes the size prefix followed by frame into b and returns the
// number of bytes used. b must hold at least FramePrefixSize+len(frame).
func PutFrame(b []byte, frame []byte) int {
	binary.BigEndian.PutUint16(b, uint16(len(frame)))
	return FramePrefixSize + copy(b[FramePrefixSize:], frame)
}
