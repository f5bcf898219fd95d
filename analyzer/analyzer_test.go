package analyzer_test

import (
	"testing"

	"github.com/webbmaffian/go-deflog/analyzer"
	"golang.org/x/tools/go/analysis/analysistest"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()

	for name, value := range map[string]string{
		"crate":  "a",
		"module": "a",
		"filter": "a::sub=debug,info",
	} {
		if err := analyzer.Analyzer.Flags.Set(name, value); err != nil {
			t.Fatal(err)
		}
	}

	analysistest.Run(t, testdata, analyzer.Analyzer, "a", "a/sub")
}
