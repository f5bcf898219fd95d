package deflog

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/webbmaffian/go-deflog/intern"
)

/*
	0. Header
		1 byte (uint8)
			bits 0-2: severity
			bit 7: timestamp present
	1. Format
		2 bytes (uint16, little endian) interned format string
	2. Timestamp (optional)
		uvarint, microseconds since the Unix epoch
	3. Arguments
		each argument encoded with its shape tag, see Format

	Primitive encodings used by the arguments:
		tag, istr      2 bytes (uint16, little endian)
		u8/i8, bool    1 byte
		u16/i16        2 bytes little endian
		u32/i32, char  4 bytes little endian
		u64/i64        8 bytes little endian
		f32, f64       IEEE 754 bits, little endian
		isize          zig-zag varint
		usize, length  uvarint
		str, [u8]      uvarint length (X), X bytes
*/

const (
	MaxFrameSize = 1024
	MinFrameSize = 3

	headerSeverityMask = 0x07
	headerTimestamp    = 0x80
)

// Encoder writes one frame into a fixed buffer. It never allocates and never
// fails: once the buffer is exhausted further writes are discarded and the
// frame is marked as truncated.
type Encoder struct {
	buf       [MaxFrameSize]byte
	size      int
	truncated bool
}

var _ Writer = (*Encoder)(nil)

func (e *Encoder) Reset() {
	e.size = 0
	e.truncated = false
}

// Begin resets the encoder and writes the frame header.
func (e *Encoder) Begin(sev Severity, format intern.Tag, ts time.Time) {
	e.Reset()
	header := uint8(sev) & headerSeverityMask

	if !ts.IsZero() {
		header |= headerTimestamp
	}

	e.U8(header)
	e.Tag(format)

	if !ts.IsZero() {
		e.Uvarint(uint64(ts.UnixMicro()))
	}
}

// Frame returns the encoded frame. The slice is only valid until the next
// Begin or Reset.
func (e *Encoder) Frame() []byte {
	return e.buf[:e.size]
}

func (e *Encoder) Len() int {
	return e.size
}

func (e *Encoder) Truncated() bool {
	return e.truncated
}

// reserve returns the next n bytes of the buffer, or nil when they don't fit.
func (e *Encoder) reserve(n int) []byte {
	if e.truncated || e.size+n > MaxFrameSize {
		e.truncated = true
		return nil
	}

	b := e.buf[e.size : e.size+n]
	e.size += n
	return b
}

func (e *Encoder) Tag(t intern.Tag) {
	e.U16(uint16(t))
}

func (e *Encoder) IStr(t intern.Tag) {
	e.U16(uint16(t))
}

func (e *Encoder) U8(v uint8) {
	if b := e.reserve(1); b != nil {
		b[0] = v
	}
}

func (e *Encoder) U16(v uint16) {
	if b := e.reserve(2); b != nil {
		binary.LittleEndian.PutUint16(b, v)
	}
}

func (e *Encoder) U32(v uint32) {
	if b := e.reserve(4); b != nil {
		binary.LittleEndian.PutUint32(b, v)
	}
}

func (e *Encoder) U64(v uint64) {
	if b := e.reserve(8); b != nil {
		binary.LittleEndian.PutUint64(b, v)
	}
}

func (e *Encoder) Uvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)

	if b := e.reserve(n); b != nil {
		copy(b, tmp[:n])
	}
}

func (e *Encoder) Varint(v int64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], v)

	if b := e.reserve(n); b != nil {
		copy(b, tmp[:n])
	}
}

func (e *Encoder) F32(v float32) {
	e.U32(math.Float32bits(v))
}

func (e *Encoder) F64(v float64) {
	e.U64(math.Float64bits(v))
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.U8(1)
	} else {
		e.U8(0)
	}
}

func (e *Encoder) Str(v string) {
	e.Uvarint(uint64(len(v)))

	if b := e.reserve(len(v)); b != nil {
		copy(b, v)
	}
}

func (e *Encoder) Bytes(v []byte) {
	e.Uvarint(uint64(len(v)))

	if b := e.reserve(len(v)); b != nil {
		copy(b, v)
	}
}

// DecodeHeader splits the first byte of a frame.
func DecodeHeader(h uint8) (sev Severity, hasTimestamp bool) {
	return Severity(h & headerSeverityMask), h&headerTimestamp != 0
}
