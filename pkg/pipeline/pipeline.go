// Package pipeline runs the analyze flow: parse a SARIF file, emit a summary,
// optionally write a markdown report, and apply gate enforcement.
//
// Run takes structured options and returns the exit code with the captured
// user-facing output, so the CLI layer and the self-validation harness drive
// the identical code path.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/demaconsulting/SarifMark/internal/log"
	"github.com/demaconsulting/SarifMark/pkg/format"
	"github.com/demaconsulting/SarifMark/pkg/sarif"
)

// EnforcementFailureMessage is the fixed line emitted when enforcement trips.
// External tooling greps for it, so the wording is a contract.
const EnforcementFailureMessage = "Error: Issues found in SARIF file"

const (
	ExitOK      = 0
	ExitFailure = 1
)

// Options selects the work for one analyze invocation.
type Options struct {
	SarifFile   string
	ReportFile  string
	ReportDepth int
	Heading     string
	Enforce     bool
}

// Result is the observable outcome of one analyze invocation.
type Result struct {
	ExitCode int
	Output   string
}

// Run executes the analyze flow and captures its output. It never panics on
// bad input; every failure becomes a single "Error: ..." line with a failure
// exit code.
func Run(opts Options) Result {
	out := new(strings.Builder)

	report, err := sarif.ParseFile(opts.SarifFile)
	if err != nil {
		return fail(out, err)
	}

	fmt.Fprintf(out, "Tool: %s %s\n", report.ToolName, report.ToolVersion)
	fmt.Fprintf(out, "Results: %d\n", report.Count())
	for _, result := range report.Results {
		log.Debugf("result: %s", format.Summarize(result.String(), 120, format.ClipRight))
	}

	if opts.ReportFile != "" {
		markdown, err := report.RenderMarkdown(opts.ReportDepth, opts.Heading)
		if err != nil {
			return fail(out, err)
		}
		if err := os.WriteFile(opts.ReportFile, []byte(markdown), 0o644); err != nil {
			return fail(out, err)
		}
		fmt.Fprintf(out, "Report written to %s\n", opts.ReportFile)
		log.Infof("markdown report written to %s", opts.ReportFile)
	}

	if opts.Enforce && report.Count() > 0 {
		log.Warnf("enforcement tripped: %d results", report.Count())
		fmt.Fprintln(out, EnforcementFailureMessage)
		return Result{ExitCode: ExitFailure, Output: out.String()}
	}

	return Result{ExitCode: ExitOK, Output: out.String()}
}

func fail(out *strings.Builder, err error) Result {
	fmt.Fprintf(out, "Error: %v\n", err)
	return Result{ExitCode: ExitFailure, Output: out.String()}
}
