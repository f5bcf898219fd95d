// Command deflog-vet reports log statements that the build filter disables
// but that are not compiled away.
//
//	deflog-vet -filter 'app::net=debug,info' ./...
package main

import (
	"github.com/webbmaffian/go-deflog/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
