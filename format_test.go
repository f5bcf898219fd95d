package deflog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/webbmaffian/go-deflog/intern"
)

func encodeValue(v Format) []byte {
	var e Encoder
	f := NewFormatter(&e)
	f.Encode(v)
	return append([]byte(nil), e.Frame()...)
}

func tag(t intern.Tag) []byte {
	return []byte{byte(t), byte(t >> 8)}
}

func join(parts ...[]byte) (b []byte) {
	for _, p := range parts {
		b = append(b, p...)
	}

	return
}

func TestEncodePrimitives(t *testing.T) {
	tests := []struct {
		name string
		v    Format
		want []byte
	}{
		{"u8", U8(7), join(tag(intern.TagU8), []byte{7})},
		{"u16", U16(0x0102), join(tag(intern.TagU16), []byte{2, 1})},
		{"u32", U32(1), join(tag(intern.TagU32), []byte{1, 0, 0, 0})},
		{"i8", I8(-1), join(tag(intern.TagI8), []byte{0xff})},
		{"i64", I64(-2), join(tag(intern.TagI64), []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})},
		{"isize", Int(-1), join(tag(intern.TagIsize), []byte{1})},
		{"usize", Uint(300), join(tag(intern.TagUsize), []byte{0xac, 0x02})},
		{"f32", F32(1), join(tag(intern.TagF32), []byte{0, 0, 0x80, 0x3f})},
		{"bool", Bool(true), join(tag(intern.TagBool), []byte{1})},
		{"char", Char('A'), join(tag(intern.TagChar), []byte{'A', 0, 0, 0})},
		{"str", Str("hi"), join(tag(intern.TagStr), []byte{2, 'h', 'i'})},
		{"bytes", Bytes{9, 8}, join(tag(intern.TagBytes), []byte{2, 9, 8})},
		{"istr", IStr(40), join(tag(intern.TagIStr), tag(40))},
		{"unit", Unit{}, tag(intern.TagUnit)},
		{"phantom", Phantom[U8]{}, tag(intern.TagPhantom)},
		{"duration", Duration(time.Second + 5), join(tag(intern.TagDuration), []byte{1, 0, 0, 0, 0, 0, 0, 0, 5, 0, 0, 0})},
		{"negative duration", Duration(-time.Second), join(tag(intern.TagDuration), make([]byte, 12))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, encodeValue(tt.v))
		})
	}
}

func TestUntaggedPrimitivesWriteOnlyTheValue(t *testing.T) {
	var e Encoder
	f := NewFormatter(&e)

	f.withoutTag(func(f *Formatter) {
		require.False(t, f.NeedsTag())
		U16(5).EncodeLog(f)
		Str("a").EncodeLog(f)
		Unit{}.EncodeLog(f)
	})

	require.Equal(t, []byte{5, 0, 1, 'a'}, e.Frame())
}

func TestWithTagRestoresState(t *testing.T) {
	var e Encoder
	f := NewFormatter(&e)
	require.True(t, f.NeedsTag())

	f.withoutTag(func(f *Formatter) {
		f.WithTag(func(f *Formatter) {
			require.True(t, f.NeedsTag())
		})

		require.False(t, f.NeedsTag())
	})

	require.True(t, f.NeedsTag())
}

func TestOptionPayloadIsAlwaysTagged(t *testing.T) {
	require.Equal(t, join(tag(intern.TagOption), []byte{1}, tag(intern.TagU8), []byte{5}), encodeValue(Some(U8(5))))
	require.Equal(t, join(tag(intern.TagOption), []byte{0}), encodeValue(None[U8]()))

	var e Encoder
	f := NewFormatter(&e)

	f.withoutTag(func(f *Formatter) {
		Some(U8(5)).EncodeLog(f)
	})

	require.Equal(t, join([]byte{1}, tag(intern.TagU8), []byte{5}), e.Frame())
}

func TestResultPayloadIsAlwaysTagged(t *testing.T) {
	require.Equal(t,
		join(tag(intern.TagResult), []byte{1}, tag(intern.TagStr), []byte{2, 'o', 'k'}),
		encodeValue(Ok[Str, U8]("ok")),
	)

	require.Equal(t,
		join(tag(intern.TagResult), []byte{0}, tag(intern.TagU8), []byte{3}),
		encodeValue(Err[Str, U8](3)),
	)
}

func TestTupleElementsUseAmbientContext(t *testing.T) {
	v := Tup2(U8(1), Bool(true))
	require.Equal(t, join(tag(intern.TagTuple2), tag(intern.TagU8), []byte{1}, tag(intern.TagBool), []byte{1}), encodeValue(v))

	var e Encoder
	f := NewFormatter(&e)

	f.withoutTag(func(f *Formatter) {
		v.EncodeLog(f)
	})

	require.Equal(t, []byte{1, 1}, e.Frame())
}

func TestSliceTagsOnlyTheFirstElement(t *testing.T) {
	require.Equal(t,
		join(tag(intern.TagSlice), []byte{3}, tag(intern.TagU8), []byte{1, 2, 3}),
		encodeValue(Slice[U8]{1, 2, 3}),
	)

	require.Equal(t, join(tag(intern.TagSlice), []byte{0}), encodeValue(Slice[U8]{}))

	// The option payloads stay tagged even though the options are not.
	require.Equal(t,
		join(tag(intern.TagSlice), []byte{2},
			tag(intern.TagOption), []byte{1}, tag(intern.TagU8), []byte{1},
			[]byte{1}, tag(intern.TagU8), []byte{2}),
		encodeValue(Slice[Option[U8]]{Some(U8(1)), Some(U8(2))}),
	)
}

func TestArrayAlwaysWritesItsLength(t *testing.T) {
	require.Equal(t,
		join(tag(intern.TagArray), []byte{2}, tag(intern.TagU16), []byte{1, 0, 2, 0}),
		encodeValue(Array[U16]{1, 2}),
	)

	// Untagged arrays still carry their length, so lengths may differ.
	require.Equal(t,
		join(tag(intern.TagSlice), []byte{2},
			tag(intern.TagArray), []byte{1}, tag(intern.TagU8), []byte{7},
			[]byte{2}, tag(intern.TagU8), []byte{8, 9}),
		encodeValue(Slice[Array[U8]]{{7}, {8, 9}}),
	)
}

func TestInterfaceElementsAreWrapped(t *testing.T) {
	require.Equal(t,
		join(tag(intern.TagSlice), []byte{2},
			tag(intern.TagDyn), tag(intern.TagU8), []byte{1},
			tag(intern.TagStr), []byte{1, 'x'}),
		encodeValue(Slice[Format]{U8(1), Str("x")}),
	)

	require.Equal(t,
		join(tag(intern.TagTuple2), tag(intern.TagU8), []byte{1}, tag(intern.TagDyn), tag(intern.TagBool), []byte{0}),
		encodeValue(Tup2[U8, Format](1, Bool(false))),
	)
}

func TestNilInterfacesEncodeAsUnit(t *testing.T) {
	require.NotPanics(t, func() {
		require.Equal(t, join(tag(intern.TagDyn), tag(intern.TagUnit)), encodeValue(Ref[Format]{}))
	})

	var nilFormat Format
	require.Equal(t, join(tag(intern.TagDyn), tag(intern.TagUnit)), encodeValue(RefOf(&nilFormat)))
	require.Equal(t, join(tag(intern.TagOption), []byte{1}, tag(intern.TagDyn), tag(intern.TagUnit)), encodeValue(Some[Format](nil)))
	require.Equal(t, tag(intern.TagUnit), encodeValue(nil))
}

func TestRefDelegates(t *testing.T) {
	v := U32(9)
	require.Equal(t, encodeValue(v), encodeValue(RefOf(&v)))
	require.Equal(t, encodeValue(U32(0)), encodeValue(RefOf[U32](nil)))

	require.Equal(t, encodeValue(Some(U8(1))), encodeValue(OptionOf(&[]U8{1}[0])))
	require.Equal(t, encodeValue(None[U8]()), encodeValue(OptionOf[U8](nil)))
}

func TestEncoderTruncates(t *testing.T) {
	var e Encoder
	e.Begin(INFO, 40, time.Time{})

	f := NewFormatter(&e)
	f.Encode(make(Bytes, MaxFrameSize))

	require.True(t, e.Truncated())
	require.LessOrEqual(t, e.Len(), MaxFrameSize)

	e.Reset()
	require.False(t, e.Truncated())
	require.Zero(t, e.Len())
}

func BenchmarkEncodeSlice(b *testing.B) {
	var e Encoder
	v := Slice[Tuple2[U16, Str]]{
		Tup2(U16(1), Str("lorem")),
		Tup2(U16(2), Str("ipsum")),
		Tup2(U16(3), Str("dolor")),
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Reset()
		f := NewFormatter(&e)
		f.Encode(v)
	}
}
