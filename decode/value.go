package decode

import (
	"strconv"
	"strings"
	"time"
)

type Kind uint8

const (
	KindInvalid Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindI8
	KindI16
	KindI32
	KindI64
	KindIsize
	KindUsize
	KindF32
	KindF64
	KindBool
	KindChar
	KindStr
	KindIStr
	KindBytes
	KindOption
	KindResult
	KindUnit
	KindPhantom
	KindSlice
	KindArray
	KindDuration
	KindTuple
)

// Value is one decoded argument. Which fields are meaningful depends on Kind:
// unsigned integers and chars use Uint, signed integers Int, floats Float,
// bool/option/result Bool (true for Some and Ok), strings Str (the resolved
// text for IStr), bytes Bytes, durations Duration, and every composite Elems.
type Value struct {
	Kind     Kind
	Uint     uint64
	Int      int64
	Float    float64
	Bool     bool
	Str      string
	Bytes    []byte
	Duration time.Duration
	Elems    []Value
}

func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Kind {
	case KindU8, KindU16, KindU32, KindU64, KindUsize:
		b.WriteString(strconv.FormatUint(v.Uint, 10))

	case KindI8, KindI16, KindI32, KindI64, KindIsize:
		b.WriteString(strconv.FormatInt(v.Int, 10))

	case KindF32:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 32))

	case KindF64:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))

	case KindBool:
		b.WriteString(strconv.FormatBool(v.Bool))

	case KindChar:
		b.WriteString(strconv.QuoteRune(rune(v.Uint)))

	case KindStr, KindIStr:
		b.WriteString(strconv.Quote(v.Str))

	case KindBytes:
		b.WriteByte('[')

		for i, c := range v.Bytes {
			if i > 0 {
				b.WriteString(", ")
			}

			b.WriteString(strconv.Itoa(int(c)))
		}

		b.WriteByte(']')

	case KindOption:
		if !v.Bool {
			b.WriteString("None")
			return
		}

		b.WriteString("Some(")
		v.Elems[0].write(b)
		b.WriteByte(')')

	case KindResult:
		if v.Bool {
			b.WriteString("Ok(")
		} else {
			b.WriteString("Err(")
		}

		v.Elems[0].write(b)
		b.WriteByte(')')

	case KindUnit:
		b.WriteString("()")

	case KindPhantom:
		b.WriteString("PhantomData")

	case KindDuration:
		b.WriteString("Duration { secs: ")
		b.WriteString(strconv.FormatInt(int64(v.Duration/time.Second), 10))
		b.WriteString(", nanos: ")
		b.WriteString(strconv.FormatInt(int64(v.Duration%time.Second), 10))
		b.WriteString(" }")

	case KindTuple:
		b.WriteByte('(')
		writeList(b, v.Elems)
		b.WriteByte(')')

	case KindSlice, KindArray:
		b.WriteByte('[')
		writeList(b, v.Elems)
		b.WriteByte(']')

	default:
		b.WriteString("<invalid>")
	}
}

func writeList(b *strings.Builder, vs []Value) {
	for i := range vs {
		if i > 0 {
			b.WriteString(", ")
		}

		vs[i].write(b)
	}
}
