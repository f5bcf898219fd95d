package deflog

import "github.com/fatih/color"

// Debugger receives diagnostics about the logging machinery itself, such as
// connection attempts and dropped frames. It is never used for log frames.
type Debugger interface {
	Info(string, ...any)
	Notice(string, ...any)
	Debug(string, ...any)
	Error(error)
}

var _ Debugger = nilDebugger{}

type nilDebugger struct{}

func (d nilDebugger) Info(_ string, _ ...any)   {}
func (d nilDebugger) Notice(_ string, _ ...any) {}
func (d nilDebugger) Debug(_ string, _ ...any)  {}
func (d nilDebugger) Error(_ error)             {}

var _ Debugger = debuggerStdout{}

type debuggerStdout struct{}

// DebuggerStdout prints diagnostics to stdout, colored by importance.
func DebuggerStdout() Debugger {
	return debuggerStdout{}
}

func (d debuggerStdout) Info(s string, args ...any) {
	color.Cyan(s, args...)
}

func (d debuggerStdout) Notice(s string, args ...any) {
	color.Yellow(s, args...)
}

func (d debuggerStdout) Debug(s string, args ...any) {
	color.White(s, args...)
}

func (d debuggerStdout) Error(err error) {
	color.Red("%s", err)
}
