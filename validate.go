package deflog

import (
	"encoding/binary"
)

// ValidateFrame checks the fixed part of a frame. Arguments are
// self-describing and can only be checked by decoding them.
func ValidateFrame(b []byte) (err error) {
	if len(b) < MinFrameSize {
		return ErrTooShort
	}

	if len(b) > MaxFrameSize {
		return ErrTooLong
	}

	if b[0]&^(headerSeverityMask|headerTimestamp) != 0 {
		return ErrCorruptFrame
	}

	sev, hasTimestamp := DecodeHeader(b[0])

	if !sev.Valid() {
		return ErrInvalidSeverity
	}

	if binary.LittleEndian.Uint16(b[1:3]) == 0 {
		return ErrInvalidTag
	}

	if hasTimestamp {
		if _, n := binary.Uvarint(b[3:]); n <= 0 {
			return ErrCorruptFrame
		}
	}

	return
}
