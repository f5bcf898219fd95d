// Package decode turns deflog frames back into values on the host side.
//
// Arguments are self-describing: every top-level argument starts with a shape
// tag. Inside homogeneous sequences only the first element is tagged, so the
// decoder learns the element shape from it and applies it to the rest.
package decode

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/webbmaffian/go-deflog"
	"github.com/webbmaffian/go-deflog/intern"
)

var (
	ErrShortFrame     = errors.New("unexpected end of frame")
	ErrUnknownShape   = errors.New("unknown shape tag")
	ErrUnknownFormat  = errors.New("unknown format tag")
	ErrDiscriminant   = errors.New("invalid discriminant")
	ErrTrailingBytes  = errors.New("trailing bytes after arguments")
	ErrSequenceLength = errors.New("sequence length out of range")
)

// Sequences of zero-sized elements are the only ones not bounded by the
// frame size.
const maxSequenceLen = 1 << 16

type Frame struct {
	Severity deflog.Severity
	Tag      intern.Tag
	Format   string
	Time     time.Time
	Args     []Value
}

// Message substitutes the rendered arguments into the format string's
// placeholders, in order. Placeholders without an argument are left as is.
func (fr Frame) Message() string {
	var b strings.Builder
	s := fr.Format
	arg := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '{' && i+1 < len(s) && s[i+1] == '{':
			b.WriteByte('{')
			i++

		case c == '}' && i+1 < len(s) && s[i+1] == '}':
			b.WriteByte('}')
			i++

		case c == '{':
			end := strings.IndexByte(s[i:], '}')

			if end < 0 || arg >= len(fr.Args) {
				b.WriteByte(c)
				continue
			}

			fr.Args[arg].write(&b)
			arg++
			i += end

		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

type Decoder struct {
	Table *intern.Table
}

func NewDecoder(table *intern.Table) *Decoder {
	if table == nil {
		table = intern.Default
	}

	return &Decoder{Table: table}
}

func (d *Decoder) DecodeFrame(b []byte) (fr Frame, err error) {
	if err = deflog.ValidateFrame(b); err != nil {
		return
	}

	r := reader{b: b}
	sev, hasTimestamp := deflog.DecodeHeader(r.u8())
	fr.Severity = sev
	fr.Tag = intern.Tag(r.u16())

	var ok bool

	if fr.Format, ok = d.Table.Lookup(fr.Tag); !ok {
		return fr, fmt.Errorf("%w: %d", ErrUnknownFormat, fr.Tag)
	}

	if hasTimestamp {
		fr.Time = time.UnixMicro(int64(r.uvarint()))
	}

	for r.err == nil && r.pos < len(r.b) {
		v, _ := d.value(&r, nil, true)

		if r.err != nil {
			break
		}

		fr.Args = append(fr.Args, v)
	}

	err = r.err
	return
}

// DecodeValue decodes a single tagged value, requiring it to fill b exactly.
func (d *Decoder) DecodeValue(b []byte) (v Value, err error) {
	r := reader{b: b}
	v, _ = d.value(&r, nil, true)

	if r.err == nil && r.pos != len(b) {
		r.err = ErrTrailingBytes
	}

	return v, r.err
}

// kindDyn is the shape of a TagDyn value. It never appears in a Value: the
// wrapped value is returned in its place.
const kindDyn Kind = 0xff

type shape struct {
	kind  Kind
	arity int
	elem  *shape
	elems []*shape
}

func shapeOf(tag intern.Tag) (sh *shape, err error) {
	if n := intern.TupleArity(tag); n > 0 {
		return &shape{kind: KindTuple, arity: n, elems: make([]*shape, n)}, nil
	}

	if tag == intern.TagDyn {
		return &shape{kind: kindDyn}, nil
	}

	if !intern.IsBuiltin(tag) || tag > intern.TagDuration {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, tag)
	}

	// Builtin tags up to TagDuration map one to one onto kinds.
	return &shape{kind: Kind(tag)}, nil
}

// value decodes one value. A tagged value starts with its shape tag and
// produces a freshly learned shape; an untagged one reuses known.
func (d *Decoder) value(r *reader, known *shape, tagged bool) (v Value, sh *shape) {
	if tagged {
		var err error

		if sh, err = shapeOf(intern.Tag(r.u16())); err != nil {
			r.fail(err)
			return
		}
	} else {
		if sh = known; sh == nil {
			r.fail(ErrUnknownShape)
			return
		}
	}

	if sh.kind == kindDyn {
		v, _ = d.value(r, nil, true)
		return
	}

	v.Kind = sh.kind

	switch sh.kind {
	case KindU8:
		v.Uint = uint64(r.u8())
	case KindU16:
		v.Uint = uint64(r.u16())
	case KindU32:
		v.Uint = uint64(r.u32())
	case KindU64:
		v.Uint = r.u64()
	case KindI8:
		v.Int = int64(int8(r.u8()))
	case KindI16:
		v.Int = int64(int16(r.u16()))
	case KindI32:
		v.Int = int64(int32(r.u32()))
	case KindI64:
		v.Int = int64(r.u64())
	case KindIsize:
		v.Int = r.varint()
	case KindUsize:
		v.Uint = r.uvarint()
	case KindF32:
		v.Float = float64(math.Float32frombits(r.u32()))
	case KindF64:
		v.Float = math.Float64frombits(r.u64())
	case KindBool:
		v.Bool = r.u8() != 0
	case KindChar:
		v.Uint = uint64(r.u32())
	case KindStr:
		v.Str = string(r.bytes())
	case KindIStr:
		tag := intern.Tag(r.u16())
		s, ok := d.Table.Lookup(tag)

		if !ok {
			r.fail(fmt.Errorf("%w: istr %d", ErrUnknownFormat, tag))
		}

		v.Str = s
	case KindBytes:
		v.Bytes = append([]byte(nil), r.bytes()...)
	case KindDuration:
		secs := r.u64()
		nanos := r.u32()
		v.Duration = time.Duration(secs)*time.Second + time.Duration(nanos)

	case KindUnit, KindPhantom:

	case KindOption, KindResult:
		switch r.u8() {
		case 0:
		case 1:
			v.Bool = true
		default:
			r.fail(ErrDiscriminant)
			return
		}

		if sh.kind == KindOption && !v.Bool {
			return
		}

		payload, _ := d.value(r, nil, true)
		v.Elems = []Value{payload}

	case KindTuple:
		v.Elems = make([]Value, sh.arity)

		for i := range v.Elems {
			if tagged {
				v.Elems[i], sh.elems[i] = d.value(r, nil, true)
			} else {
				v.Elems[i], _ = d.value(r, sh.elems[i], false)
			}
		}

	case KindSlice, KindArray:
		n := r.uvarint()

		if n > maxSequenceLen {
			r.fail(ErrSequenceLength)
			return
		}

		if n == 0 {
			break
		}

		var first Value
		first, sh.elem = d.value(r, nil, true)

		if r.err != nil {
			return
		}

		// Every untagged element takes at least one byte unless it is zero-sized.
		if !zeroSized(sh.elem) && int(n)-1 > len(r.b)-r.pos {
			r.fail(ErrShortFrame)
			return
		}

		v.Elems = make([]Value, 1, n)
		v.Elems[0] = first

		for i := uint64(1); i < n && r.err == nil; i++ {
			ev, _ := d.value(r, sh.elem, false)
			v.Elems = append(v.Elems, ev)
		}
	}

	return
}

func zeroSized(sh *shape) bool {
	switch sh.kind {
	case KindUnit, KindPhantom:
		return true

	case KindTuple:
		for _, e := range sh.elems {
			if !zeroSized(e) {
				return false
			}
		}

		return true
	}

	return false
}

type reader struct {
	b   []byte
	pos int
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}

	if n < 0 || r.pos+n > len(r.b) {
		r.fail(ErrShortFrame)
		return nil
	}

	b := r.b[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}

	return 0
}

func (r *reader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}

	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}

	return 0
}

func (r *reader) u64() uint64 {
	if b := r.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}

	return 0
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}

	v, n := binary.Uvarint(r.b[r.pos:])

	if n <= 0 {
		r.fail(ErrShortFrame)
		return 0
	}

	r.pos += n
	return v
}

func (r *reader) varint() int64 {
	if r.err != nil {
		return 0
	}

	v, n := binary.Varint(r.b[r.pos:])

	if n <= 0 {
		r.fail(ErrShortFrame)
		return 0
	}

	r.pos += n
	return v
}

func (r *reader) bytes() []byte {
	n := r.uvarint()

	if n > uint64(len(r.b)) {
		r.fail(ErrShortFrame)
		return nil
	}

	return r.take(int(n))
}
