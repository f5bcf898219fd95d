package a

import "github.com/webbmaffian/go-deflog"

const (
	logTrace = false
	logDebug = false
	logInfo  = true
	logWarn  = true
	logError = true
)

const verbose = logDebug && logTrace

type other struct{}

func (other) Debug(format deflog.Tag) {}

func calls(l *deflog.Logger, sev deflog.Severity) {
	l.Info(1)
	l.Warn(1)
	l.Error(1)
	l.Dropped()

	l.Debug(1) // want `Debug call at debug is disabled in a but still compiled; guard it with "if logDebug"`
	l.Trace(1) // want `Trace call at trace is disabled in a but still compiled; guard it with "if logTrace"`

	if logDebug {
		l.Debug(1)
	}

	if verbose {
		for i := 0; i < 3; i++ {
			l.Trace(1)
		}
	}

	if logInfo {
		l.Trace(1) // want `Trace call at trace is disabled`
	}

	if logDebug {
	} else {
		l.Debug(1) // want `Debug call at debug is disabled`
	}

	l.Log(deflog.INFO, 1)
	l.Log(deflog.DEBUG, 1) // want `Log call at debug is disabled`
	l.Log(sev, 1)          // want `severity passed to Log is not constant`

	l.Write(deflog.ERROR, 1, func(f *deflog.Formatter) {})
	l.Write(deflog.TRACE, 1, func(f *deflog.Formatter) {}) // want `Write call at trace is disabled`

	other{}.Debug(1)

	_ = deflog.Dbg(l, 1, 5) // want `Dbg call at trace is disabled in a but still compiled; guard it with "if logTrace"`
	deflog.DbgHere(l, 1)    // want `DbgHere call at trace is disabled`

	if logTrace {
		_ = deflog.Dbg[int](l, 1, 5)
		deflog.DbgHere(l, 1)
	}
}
