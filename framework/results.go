package framework

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Results is the accumulated outcome of a test run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID TestID
	Errors []error
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the path of a test in the suite hierarchy, e.g.
// "redirects/follows an HTTP 302 redirect".
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a colorized summary of the test run to stdout.
func PrintResults(results Results) {
	if results.OK() {
		color.Green("All tests passed (%d)", len(results.Tests))
		return
	}
	color.Red("FAILED TESTS (%d/%d):", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("    - %s\n", line)
			}
		}
	}
}
