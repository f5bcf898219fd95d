// Package codegen renders the per-package constants that decide at compile
// time which log statements exist.
package codegen

import (
	"bytes"
	"go/format"
	"go/token"
	"strings"
	"text/template"

	"github.com/webbmaffian/go-deflog"
	"github.com/webbmaffian/go-deflog/filter"
)

var fileTemplate = template.Must(template.New("deflog").Parse(`// Code generated by deflog-gen. DO NOT EDIT.

package {{ .Package }}

// Log statements in this package are guarded by these constants, e.g.
//
//	if {{ .Prefix }}Debug {
//		logger.Debug(...)
//	}
//
// A false constant removes the statement from the build.
const (
	{{ .Prefix }}Namespace = {{ printf "%q" .Namespace }}
{{- range .Levels }}
	{{ .Name }} = {{ .Enabled }}
{{- end }}
)
`))

type File struct {
	Package   string
	Namespace string
	Prefix    string
}

type level struct {
	Name    string
	Enabled bool
}

// ConstName is the name of the constant guarding sev.
func ConstName(prefix string, sev deflog.Severity) string {
	name := sev.String()
	return prefix + strings.ToUpper(name[:1]) + name[1:]
}

// Render produces the formatted source of the constants file for one
// package.
func Render(file File, f *filter.EnvFilter) (src []byte, err error) {
	if !token.IsIdentifier(file.Package) {
		return nil, &InvalidNameError{Kind: "package", Name: file.Package}
	}

	if file.Prefix == "" {
		file.Prefix = "log"
	}

	if !token.IsIdentifier(file.Prefix) {
		return nil, &InvalidNameError{Kind: "prefix", Name: file.Prefix}
	}

	data := struct {
		File
		Levels []level
	}{File: file}

	for _, sev := range deflog.Severities {
		data.Levels = append(data.Levels, level{
			Name:    ConstName(file.Prefix, sev),
			Enabled: f.Enabled(sev, file.Namespace),
		})
	}

	var buf bytes.Buffer

	if err = fileTemplate.Execute(&buf, data); err != nil {
		return
	}

	return format.Source(buf.Bytes())
}

type InvalidNameError struct {
	Kind string
	Name string
}

func (e *InvalidNameError) Error() string {
	return "invalid " + e.Kind + " name: " + e.Name
}
