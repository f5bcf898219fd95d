package deflog

import "github.com/webbmaffian/go-deflog/intern"

// Format is implemented by every value that can be logged. A value whose type
// does not implement it cannot be passed to a log call, so an unrepresentable
// argument is a compile error rather than a runtime one.
type Format interface {
	EncodeLog(f *Formatter)
}

// Writer appends primitive encodings to a frame. Implementations must not
// fail; running out of space is recorded by the writer itself.
type Writer interface {
	Tag(t intern.Tag)
	U8(v uint8)
	U16(v uint16)
	U32(v uint32)
	U64(v uint64)
	Uvarint(v uint64)
	Varint(v int64)
	F32(v float32)
	F64(v float64)
	Bool(v bool)
	Str(v string)
	Bytes(v []byte)
	IStr(t intern.Tag)
}

// Formatter is the cursor threaded through one argument's encoding. Besides
// forwarding primitive writes it carries a single bit of state: whether the
// next value has to be preceded by its shape tag.
type Formatter struct {
	w       Writer
	omitTag bool
}

func NewFormatter(w Writer) Formatter {
	return Formatter{w: w}
}

// NeedsTag reports whether the value about to be written must write its tag.
func (f *Formatter) NeedsTag() bool {
	return !f.omitTag
}

// WithTag runs fn with NeedsTag forced true and restores the previous state
// afterwards. Payloads whose concrete type a decoder cannot know from the
// enclosing tag are always written through WithTag.
func (f *Formatter) WithTag(fn func(f *Formatter)) {
	prev := f.omitTag
	f.omitTag = false
	defer func() { f.omitTag = prev }()
	fn(f)
}

// withoutTag runs fn with NeedsTag forced false. Only homogeneous sequences
// use it, after their first element has established the shape.
func (f *Formatter) withoutTag(fn func(f *Formatter)) {
	prev := f.omitTag
	f.omitTag = true
	defer func() { f.omitTag = prev }()
	fn(f)
}

// TagIfNeeded writes t when the ambient state requires a tag.
func (f *Formatter) TagIfNeeded(t intern.Tag) {
	if !f.omitTag {
		f.w.Tag(t)
	}
}

// Encode writes v in a fresh top-level context, where a tag is required.
// A nil v is written as Unit.
func (f *Formatter) Encode(v Format) {
	if v == nil {
		v = Unit{}
	}

	f.WithTag(v.EncodeLog)
}

func (f *Formatter) Tag(t intern.Tag) { f.w.Tag(t) }
func (f *Formatter) U8(v uint8) { f.w.U8(v) }
func (f *Formatter) U16(v uint16) { f.w.U16(v) }
func (f *Formatter) U32(v uint32) { f.w.U32(v) }
func (f *Formatter) U64(v uint64) { f.w.U64(v) }
func (f *Formatter) Uvarint(v uint64) { f.w.Uvarint(v) }
func (f *Formatter) Varint(v int64) { f.w.Varint(v) }
func (f *Formatter) F32(v float32) { f.w.F32(v) }
func (f *Formatter) F64(v float64) { f.w.F64(v) }
func (f *Formatter) Bool(v bool) { f.w.Bool(v) }
func (f *Formatter) Str(v string) { f.w.Str(v) }
func (f *Formatter) Bytes(v []byte) { f.w.Bytes(v) }
func (f *Formatter) IStr(t intern.Tag) { f.w.IStr(t) }
