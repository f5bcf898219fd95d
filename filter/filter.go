// Package filter decides at build time which log call sites may emit
// anything at all.
//
// A filter specification is a comma separated list of directives:
//
//	path=level   minimum severity for a namespace path
//	path         the same with an implied level of trace
//	level        fallback for the calling crate itself
//
// Later directives take precedence over earlier ones.
package filter

import (
	"go/token"
	"strings"

	"github.com/webbmaffian/go-deflog"
)

// Separator joins the segments of a namespace path.
const Separator = "::"

type Entry struct {
	Path     string
	Severity deflog.Severity
}

// EnvFilter is an immutable table of namespace paths and their minimum
// severities, scoped to one crate.
type EnvFilter struct {
	crate   string
	entries []Entry
}

// New returns the filter used when no specification is given: only errors
// from the crate pass.
func New(crate string) *EnvFilter {
	return &EnvFilter{
		crate:   crate,
		entries: []Entry{{Path: crate, Severity: deflog.ERROR}},
	}
}

// Parse builds the table from a specification. Directives are walked right
// to left so that the first one seen for a path is the last one written.
func Parse(spec string, crate string) (f *EnvFilter, err error) {
	if crate == "" {
		return nil, ErrMissingCrate
	}

	directives := strings.Split(spec, ",")
	f = &EnvFilter{crate: crate}

	var (
		fallback    deflog.Severity
		hasFallback bool
	)

	for i := len(directives) - 1; i >= 0; i-- {
		d := directives[i]
		path, sev := d, deflog.TRACE

		if idx := strings.LastIndexByte(d, '='); idx >= 0 {
			var ok bool
			path = d[:idx]

			if sev, ok = deflog.ParseSeverity(d[idx+1:]); !ok {
				return nil, &DirectiveError{Directive: d, Token: d[idx+1:], Err: ErrUnknownSeverity}
			}
		} else if s, ok := deflog.ParseSeverity(d); ok {
			if !hasFallback {
				fallback, hasFallback = s, true
			}

			continue
		}

		if err = validatePath(d, path); err != nil {
			return nil, err
		}

		// Plain textual prefix: "kratextra" is kept for crate "krate".
		if !strings.HasPrefix(path, crate) {
			continue
		}

		if _, exists := f.Lookup(path); !exists {
			f.entries = append(f.entries, Entry{Path: path, Severity: sev})
		}
	}

	if _, exists := f.Lookup(crate); !exists {
		if !hasFallback {
			fallback = deflog.ERROR
		}

		f.entries = append(f.entries, Entry{Path: crate, Severity: fallback})
	}

	return
}

// validatePath checks every segment of path. A lone underscore is an
// identifier in Go but not a valid path segment.
func validatePath(directive, path string) error {
	if path == "" {
		return &DirectiveError{Directive: directive, Token: path, Err: ErrEmptyPath}
	}

	for _, seg := range strings.Split(path, Separator) {
		if seg == "_" || !token.IsIdentifier(seg) {
			return &DirectiveError{Directive: directive, Token: seg, Err: ErrInvalidIdentifier}
		}
	}

	return nil
}

func (f *EnvFilter) Crate() string {
	return f.crate
}

// Entries returns a copy of the table in construction order.
func (f *EnvFilter) Entries() []Entry {
	return append([]Entry(nil), f.entries...)
}

// Lookup returns the minimum severity configured for exactly path.
func (f *EnvFilter) Lookup(path string) (sev deflog.Severity, ok bool) {
	for _, e := range f.entries {
		if e.Path == path {
			return e.Severity, true
		}
	}

	return
}

// AllowedPrefixes returns every path whose minimum severity lets sev through.
func (f *EnvFilter) AllowedPrefixes(sev deflog.Severity) (prefixes []string) {
	for _, e := range f.entries {
		if sev.Allows(e.Severity) {
			prefixes = append(prefixes, e.Path)
		}
	}

	return
}

// Compile returns the admission predicate for sev, or nil when nothing may
// be logged at sev anywhere.
func (f *EnvFilter) Compile(sev deflog.Severity) *Predicate {
	prefixes := f.AllowedPrefixes(sev)

	if len(prefixes) == 0 {
		return nil
	}

	return &Predicate{prefixes: prefixes}
}

// Enabled reports whether a call site at path may log at sev.
func (f *EnvFilter) Enabled(sev deflog.Severity, path string) bool {
	return f.Compile(sev).Match(path)
}
