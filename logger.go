package deflog

import (
	"sync/atomic"
	"time"

	"github.com/webbmaffian/go-deflog/intern"
)

type LoggerOptions struct {
	// Stamp every frame with the time returned by TimeNow. Default: off
	Timestamps bool

	// Clock used for timestamps. Default: time.Now (see FastTimeNow for a
	// cheaper alternative)
	TimeNow func() time.Time

	Pool  EncoderPool
	Debug Debugger
}

func (opt *LoggerOptions) setDefaults() {
	if opt.Timestamps && opt.TimeNow == nil {
		opt.TimeNow = time.Now
	}

	if opt.Pool == nil {
		opt.Pool = NewEncoderPool()
	}

	if opt.Debug == nil {
		opt.Debug = nilDebugger{}
	}
}

// Logger encodes log statements into frames and hands them to a sink. It
// performs no filtering: call sites are admitted or removed at build time by
// the constants deflog-gen generates.
type Logger struct {
	sink    FrameSink
	opt     LoggerOptions
	dropped atomic.Uint64
}

func New(sink FrameSink, options ...LoggerOptions) *Logger {
	var opt LoggerOptions

	if options != nil {
		opt = options[0]
	}

	opt.setDefaults()

	return &Logger{
		sink: sink,
		opt:  opt,
	}
}

func (l *Logger) Trace(format intern.Tag, args ...Format) {
	l.Log(TRACE, format, args...)
}

func (l *Logger) Debug(format intern.Tag, args ...Format) {
	l.Log(DEBUG, format, args...)
}

func (l *Logger) Info(format intern.Tag, args ...Format) {
	l.Log(INFO, format, args...)
}

func (l *Logger) Warn(format intern.Tag, args ...Format) {
	l.Log(WARN, format, args...)
}

func (l *Logger) Error(format intern.Tag, args ...Format) {
	l.Log(ERROR, format, args...)
}

func (l *Logger) Log(sev Severity, format intern.Tag, args ...Format) {
	e := l.begin(sev, format)
	f := NewFormatter(e)

	for i := range args {
		f.Encode(args[i])
	}

	l.finish(e)
}

// Write lets fn encode the arguments directly, which avoids boxing them into
// Format interfaces. Each value written by fn should go through f.Encode.
func (l *Logger) Write(sev Severity, format intern.Tag, fn func(f *Formatter)) {
	e := l.begin(sev, format)
	f := NewFormatter(e)
	fn(&f)
	l.finish(e)
}

// Dropped returns the number of frames discarded for not fitting in
// MaxFrameSize.
func (l *Logger) Dropped() uint64 {
	return l.dropped.Load()
}

func (l *Logger) begin(sev Severity, format intern.Tag) *Encoder {
	var ts time.Time

	if l.opt.Timestamps {
		ts = l.opt.TimeNow()
	}

	e := l.opt.Pool.Acquire()
	e.Begin(sev, format, ts)
	return e
}

func (l *Logger) finish(e *Encoder) {
	if e.Truncated() {
		l.dropped.Add(1)
		l.opt.Debug.Notice("dropped frame: %s", ErrTruncated)
	} else {
		l.sink.WriteFrame(e.Frame())
	}

	l.opt.Pool.Release(e)
}
