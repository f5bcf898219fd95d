package sub

import "github.com/webbmaffian/go-deflog"

func calls(l *deflog.Logger) {
	l.Debug(1)
	l.Trace(1) // want `Trace call at trace is disabled in a::sub but still compiled; guard it with "if logTrace"`
}
