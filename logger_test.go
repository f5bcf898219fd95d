package deflog

import (
	"bytes"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/webbmaffian/go-deflog/intern"
)

type frameCapture struct {
	frames [][]byte
}

func (c *frameCapture) WriteFrame(frame []byte) {
	c.frames = append(c.frames, append([]byte(nil), frame...))
}

type discardSink struct{}

func (discardSink) WriteFrame([]byte) {}

func TestLoggerFrames(t *testing.T) {
	var c frameCapture
	l := New(&c)

	l.Trace(40)
	l.Debug(41, U8(1))
	l.Info(42, U8(1), Bool(false))
	l.Warn(43)
	l.Error(0x0102)

	require.Equal(t, [][]byte{
		{byte(TRACE), 40, 0},
		join([]byte{byte(DEBUG), 41, 0}, tag(intern.TagU8), []byte{1}),
		join([]byte{byte(INFO), 42, 0}, tag(intern.TagU8), []byte{1}, tag(intern.TagBool), []byte{0}),
		{byte(WARN), 43, 0},
		{byte(ERROR), 2, 1},
	}, c.frames)

	for _, frame := range c.frames {
		require.NoError(t, ValidateFrame(frame))
	}
}

func TestLoggerTimestamps(t *testing.T) {
	var c frameCapture
	now := time.UnixMicro(300)

	l := New(&c, LoggerOptions{
		Timestamps: true,
		TimeNow:    func() time.Time { return now },
	})

	l.Info(40)

	require.Equal(t, []byte{byte(INFO) | headerTimestamp, 40, 0, 0xac, 0x02}, c.frames[0])

	sev, hasTimestamp := DecodeHeader(c.frames[0][0])
	require.Equal(t, INFO, sev)
	require.True(t, hasTimestamp)
}

func TestLoggerWrite(t *testing.T) {
	var c frameCapture
	l := New(&c)

	l.Write(WARN, 40, func(f *Formatter) {
		f.Encode(U8(1))
		f.Encode(Str("x"))
	})

	var direct frameCapture
	New(&direct).Log(WARN, 40, U8(1), Str("x"))

	require.Equal(t, direct.frames, c.frames)
}

func TestLoggerDropsOversizedFrames(t *testing.T) {
	var c frameCapture
	l := New(&c)

	l.Info(40, make(Bytes, MaxFrameSize))
	l.Info(40, Bytes{1})

	require.Len(t, c.frames, 1)
	require.Equal(t, uint64(1), l.Dropped())
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	table := intern.NewTable()
	sink := NewWriterSink(&buf, table, nil)

	l := New(sink)
	l.Info(40, U8(1))
	l.Warn(41)

	b := buf.Bytes()

	var h StreamHeader
	require.NoError(t, h.Decode(b))
	require.Equal(t, sink.Header(), h)
	require.Equal(t, table.BuildID, h.BuildID)

	b = b[StreamHeaderSize:]
	require.Equal(t, join([]byte{0, 6, byte(INFO), 40, 0}, tag(intern.TagU8), []byte{1}), b[:8])
	require.Equal(t, []byte{0, 3, byte(WARN), 41, 0}, b[8:])
}

func TestLoggerDefaultClock(t *testing.T) {
	var c frameCapture
	New(&c, LoggerOptions{Timestamps: true}).Info(40)

	_, hasTimestamp := DecodeHeader(c.frames[0][0])
	require.True(t, hasTimestamp)

	us, n := binary.Uvarint(c.frames[0][3:])
	require.Positive(t, n)
	require.WithinDuration(t, time.Now(), time.UnixMicro(int64(us)), time.Second)
}

func TestDbg(t *testing.T) {
	var c frameCapture
	l := New(&c)
	table := intern.NewTable()

	format := DbgTag(table, "x + 1")
	s, ok := table.Lookup(format)
	require.True(t, ok)
	require.Regexp(t, `^\[logger_test\.go:\d+\] x \+ 1 = \{\}$`, s)

	require.Equal(t, I32(43), Dbg(l, format, I32(43)))

	pair := Dbg(l, DbgTag(table, "(x - 2, x + 2)"), Tup2(I32(40), I32(44)))
	require.Equal(t, I32(40), pair.V0)
	require.Equal(t, I32(44), pair.V1)

	here := DbgTag(table, "")
	DbgHere(l, here)

	require.Len(t, c.frames, 3)
	require.Equal(t, join([]byte{byte(TRACE)}, tag(format), tag(intern.TagI32), []byte{43, 0, 0, 0}), c.frames[0])
	require.Equal(t, join([]byte{byte(TRACE)}, tag(here)), c.frames[2])

	s, _ = table.Lookup(here)
	require.Regexp(t, `^\[logger_test\.go:\d+\]$`, s)
}

func TestDbgTagEscapesBraces(t *testing.T) {
	table := intern.NewTable()
	s, _ := table.Lookup(DbgTag(table, "m{k}"))

	require.Regexp(t, `\] m\{\{k\}\} = \{\}$`, s)
}

func BenchmarkLog(b *testing.B) {
	l := New(discardSink{})
	format := intern.Intern("value {} of {}")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.Info(format, U32(i), Str("lorem ipsum"))
	}
}

func BenchmarkLogWrite(b *testing.B) {
	l := New(discardSink{})
	format := intern.Intern("value {} of {}")

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.Write(INFO, format, func(f *Formatter) {
			f.Encode(U32(i))
			f.Encode(Str("lorem ipsum"))
		})
	}
}
