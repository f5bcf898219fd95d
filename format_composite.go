package deflog

import "github.com/webbmaffian/go-deflog/intern"

// Option is a value that may be absent. The payload's own type is not implied
// by the option's tag, so a present payload always carries its tag.
type Option[T Format] struct {
	v    T
	some bool
}

func Some[T Format](v T) Option[T] {
	return Option[T]{v: v, some: true}
}

func None[T Format]() Option[T] {
	return Option[T]{}
}

// OptionOf wraps a pointer; nil is None.
func OptionOf[T Format](p *T) Option[T] {
	if p == nil {
		return Option[T]{}
	}

	return Some(*p)
}

func (o Option[T]) Get() (T, bool) {
	return o.v, o.some
}

func (o Option[T]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagOption)

	if !o.some {
		f.U8(0)
		return
	}

	f.U8(1)
	encodeTagged(f, o.v)
}

// Result holds either a success value or a failure value.
type Result[T, E Format] struct {
	ok    T
	err   E
	isErr bool
}

func Ok[T, E Format](v T) Result[T, E] {
	return Result[T, E]{ok: v}
}

func Err[T, E Format](e E) Result[T, E] {
	return Result[T, E]{err: e, isErr: true}
}

func (r Result[T, E]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagResult)

	if r.isErr {
		f.U8(0)
		encodeTagged(f, r.err)
		return
	}

	f.U8(1)
	encodeTagged(f, r.ok)
}

// Slice is a variable-length homogeneous sequence. Its length is always
// written; the first element carries its tag and the rest reuse that shape.
type Slice[T Format] []T

func (s Slice[T]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagSlice)
	f.Uvarint(uint64(len(s)))
	encodeElems(f, s)
}

// Array is a fixed-length homogeneous sequence. Go cannot tie the length to
// the type, so arrays of one type may differ in length and every array
// writes its length just like a Slice.
type Array[T Format] []T

func (a Array[T]) EncodeLog(f *Formatter) {
	f.TagIfNeeded(intern.TagArray)
	f.Uvarint(uint64(len(a)))
	encodeElems(f, a)
}

func encodeElems[T Format](f *Formatter, elems []T) {
	if len(elems) == 0 {
		return
	}

	encodeTagged(f, elems[0])

	f.withoutTag(func(f *Formatter) {
		for i := 1; i < len(elems); i++ {
			encode(f, elems[i])
		}
	})
}

// Ref logs the value behind a pointer. Like any indirection it adds nothing
// of its own to the stream. A nil pointer logs the zero value of T, which
// keeps the shape of homogeneous sequences intact, or Unit when T is an
// interface.
type Ref[T Format] struct {
	P *T
}

func RefOf[T Format](p *T) Ref[T] {
	return Ref[T]{P: p}
}

func (r Ref[T]) EncodeLog(f *Formatter) {
	var v T

	if r.P != nil {
		v = *r.P
	}

	encode(f, v)
}

// isInterface reports whether T is an interface type, the only kind of type
// whose zero value converts to a nil any.
func isInterface[T any]() bool {
	var zero T
	return any(zero) == nil
}

// encode writes v in the ambient context. Values of an interface type may
// change shape from one element to the next, so they are written as TagDyn
// followed by the value with its own tag; a nil interface is written as Unit.
func encode[T Format](f *Formatter, v T) {
	if isInterface[T]() {
		f.TagIfNeeded(intern.TagDyn)
		f.Encode(v)
		return
	}

	v.EncodeLog(f)
}

// encodeTagged is encode with NeedsTag forced true.
func encodeTagged[T Format](f *Formatter, v T) {
	prev := f.omitTag
	f.omitTag = false
	encode(f, v)
	f.omitTag = prev
}
