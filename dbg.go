package deflog

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/webbmaffian/go-deflog/intern"
)

var braceEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// DbgTag interns the format of a Dbg call site: the caller's file and line,
// then expr and a placeholder for its value. An empty expr interns the
// location alone, for DbgHere. Call it once per call site, typically in a
// package level var. A nil table means intern.Default.
func DbgTag(table *intern.Table, expr string) intern.Tag {
	if table == nil {
		table = intern.Default
	}

	loc := "?"

	if _, file, line, ok := runtime.Caller(1); ok {
		loc = filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	if expr == "" {
		return table.Intern("[" + loc + "]")
	}

	return table.Intern("[" + loc + "] " + braceEscaper.Replace(expr) + " = {}")
}

// Dbg logs v at TRACE and returns it unchanged, so it can wrap an expression
// in place:
//
//	var tagDbgSum = deflog.DbgTag(nil, "a + b")
//
//	total := deflog.Dbg(logger, tagDbgSum, deflog.I32(a+b))
//
// Several values are logged together by passing a tuple.
func Dbg[T Format](l *Logger, format intern.Tag, v T) T {
	l.Write(TRACE, format, func(f *Formatter) {
		encode(f, v)
	})

	return v
}

// DbgHere logs the location interned by DbgTag with an empty expression.
func DbgHere(l *Logger, format intern.Tag) {
	l.Log(TRACE, format)
}
