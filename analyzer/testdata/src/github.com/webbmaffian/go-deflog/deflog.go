// Stub of the deflog package for analyzer tests.
package deflog

type Severity uint8

const (
	TRACE Severity = iota
	DEBUG
	INFO
	WARN
	ERROR
)

type Tag uint16

type Formatter struct{}

type Logger struct{}

func (l *Logger) Trace(format Tag, args ...any)                         {}
func (l *Logger) Debug(format Tag, args ...any)                         {}
func (l *Logger) Info(format Tag, args ...any)                          {}
func (l *Logger) Warn(format Tag, args ...any)                          {}
func (l *Logger) Error(format Tag, args ...any)                         {}
func (l *Logger) Log(sev Severity, format Tag, args ...any)             {}
func (l *Logger) Write(sev Severity, format Tag, fn func(f *Formatter)) {}
func (l *Logger) Dropped() uint64                                       { return 0 }

func Dbg[T any](l *Logger, format Tag, v T) T { return v }
func DbgHere(l *Logger, format Tag)           {}
