package deflog

import (
	"time"

	"github.com/webbmaffian/go-deflog/intern"
)

type (
	U8    uint8
	U16   uint16
	U32   uint32
	U64   uint64
	I8    int8
	I16   int16
	I32   int32
	I64   int64
	Int   int
	Uint  uint
	F32   float32
	F64   float64
	Bool  bool
	Char  rune
	Str   string
	Bytes []byte

	// IStr is a reference to an interned string. Only the tag is written.
	IStr intern.Tag
)

func (v U8) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagU8)
	f.U8(uint8(v))
}

func (v U16) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagU16)
	f.U16(uint16(v))
}

func (v U32) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagU32)
	f.U32(uint32(v))
}

func (v U64) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagU64)
	f.U64(uint64(v))
}

func (v I8) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagI8)
	f.U8(uint8(v))
}

func (v I16) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagI16)
	f.U16(uint16(v))
}

func (v I32) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagI32)
	f.U32(uint32(v))
}

func (v I64) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagI64)
	f.U64(uint64(v))
}

// Int and Uint are platform sized, so they go out as varints.
func (v Int) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagIsize)
	f.Varint(int64(v))
}

func (v Uint) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagUsize)
	f.Uvarint(uint64(v))
}

func (v F32) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagF32)
	f.F32(float32(v))
}

func (v F64) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagF64)
	f.F64(float64(v))
}

func (v Bool) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagBool)
	f.Bool(bool(v))
}

func (v Char) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagChar)
	f.U32(uint32(v))
}

func (v Str) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagStr)
	f.Str(string(v))
}

func (v Bytes) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagBytes)
	f.Bytes(v)
}

func (v IStr) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagIStr)
	f.IStr(intern.Tag(v))
}

// Duration is written as whole seconds and the nanosecond remainder.
// Negative durations are clamped to zero.
type Duration time.Duration

func (v Duration) EncodeLog(f *Formatter) {
	d := time.Duration(v)

	if d < 0 {
		d = 0
	}

	f.TagIfNeeded(intern.TagDuration)
	f.U64(uint64(d / time.Second))
	f.U32(uint32(d % time.Second))
}

// Unit is the empty value. Only its tag is ever written.
type Unit struct{}

func (Unit) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagUnit)
}

// Phantom is a zero-sized marker carrying a type parameter and nothing else.
type Phantom[T any] struct{}

func (Phantom[T]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagPhantom)
}
