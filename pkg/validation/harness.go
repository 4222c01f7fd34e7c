// Package validation provides the self-validation harness: it drives the
// full analyze pipeline against a fixed synthetic SARIF document and records
// pass/fail outcomes for each check.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/demaconsulting/SarifMark/internal/log"
	"github.com/demaconsulting/SarifMark/pkg/pipeline"
)

var ErrUnsupportedFormat = errors.New("unsupported results format")

type Outcome string

const (
	OutcomePassed Outcome = "Passed"
	OutcomeFailed Outcome = "Failed"
)

const (
	codeBase  = "sarifmark"
	className = "SarifMark.Validation"
)

// TestRecord is the finalized outcome of one check.
type TestRecord struct {
	Name         string
	ClassName    string
	CodeBase     string
	Duration     time.Duration
	Outcome      Outcome
	ErrorMessage string
}

// Summary accumulates check records and aggregate counts.
type Summary struct {
	Records []TestRecord
	Total   int
	Passed  int
	Failed  int
}

func (s *Summary) add(record TestRecord) {
	s.Records = append(s.Records, record)
	s.Total++
	if record.Outcome == OutcomePassed {
		s.Passed++
	} else {
		s.Failed++
	}
}

// RunFunc is the pipeline entry point the harness exercises.
type RunFunc func(pipeline.Options) pipeline.Result

// Harness runs the end-to-end checks. The run function defaults to
// pipeline.Run and is injectable for harness tests.
type Harness struct {
	run RunFunc
}

func NewHarness() *Harness {
	return &Harness{run: pipeline.Run}
}

func NewHarnessWithRunFunc(run RunFunc) *Harness {
	return &Harness{run: run}
}

// syntheticDocument is the known-good input: one tool, two findings.
const syntheticDocument = `{
  "version": "2.1.0",
  "runs": [
    {
      "tool": {
        "driver": {
          "name": "MockTool",
          "version": "1.0.0"
        }
      },
      "results": [
        {
          "ruleId": "MOCK001",
          "level": "warning",
          "message": { "text": "Mock warning finding" },
          "locations": [
            {
              "physicalLocation": {
                "artifactLocation": { "uri": "src/Program.cs" },
                "region": { "startLine": 42 }
              }
            }
          ]
        },
        {
          "ruleId": "MOCK002",
          "level": "error",
          "message": { "text": "Mock error finding" },
          "locations": [
            {
              "physicalLocation": {
                "artifactLocation": { "uri": "src/Helper.cs" },
                "region": { "startLine": 15 }
              }
            }
          ]
        }
      ]
    }
  ]
}`

// Run executes the checks in order. A failing or panicking check is recorded
// and never aborts the remaining checks.
func (h *Harness) Run() Summary {
	summary := Summary{}
	summary.add(h.runCheck("Ingestion", h.checkIngestion))
	summary.add(h.runCheck("Rendering", h.checkRendering))
	summary.add(h.runCheck("Enforcement", h.checkEnforcement))
	log.Infof("validation complete: %d total, %d passed, %d failed",
		summary.Total, summary.Passed, summary.Failed)
	return summary
}

// runCheck gives the check a fresh scratch directory, removed on every exit
// path, and converts errors and panics into a failed record.
func (h *Harness) runCheck(name string, check func(scratchDir string) error) (record TestRecord) {
	record = TestRecord{
		Name:      name,
		ClassName: className,
		CodeBase:  codeBase,
		Outcome:   OutcomePassed,
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			record.Outcome = OutcomeFailed
			record.ErrorMessage = fmt.Sprintf("panic: %v", r)
		}
		record.Duration = time.Since(start)
		log.Infof("check %s: %s", record.Name, record.Outcome)
	}()

	scratchDir := filepath.Join(os.TempDir(), "sarifmark-validate-"+uuid.NewString())
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		record.Outcome = OutcomeFailed
		record.ErrorMessage = err.Error()
		return record
	}
	defer os.RemoveAll(scratchDir)

	if err := check(scratchDir); err != nil {
		record.Outcome = OutcomeFailed
		record.ErrorMessage = err.Error()
	}
	return record
}

func writeSyntheticDocument(scratchDir string) (string, error) {
	path := filepath.Join(scratchDir, "mock.sarif")
	return path, os.WriteFile(path, []byte(syntheticDocument), 0o644)
}

func (h *Harness) checkIngestion(scratchDir string) error {
	sarifFile, err := writeSyntheticDocument(scratchDir)
	if err != nil {
		return err
	}

	result := h.run(pipeline.Options{SarifFile: sarifFile})
	if result.ExitCode != pipeline.ExitOK {
		return fmt.Errorf("exit code %d: %s", result.ExitCode, result.Output)
	}
	return outputContains(result.Output, "Tool: MockTool 1.0.0", "Results: 2")
}

func (h *Harness) checkRendering(scratchDir string) error {
	sarifFile, err := writeSyntheticDocument(scratchDir)
	if err != nil {
		return err
	}

	reportFile := filepath.Join(scratchDir, "report.md")
	result := h.run(pipeline.Options{
		SarifFile:   sarifFile,
		ReportFile:  reportFile,
		ReportDepth: 1,
	})
	if result.ExitCode != pipeline.ExitOK {
		return fmt.Errorf("exit code %d: %s", result.ExitCode, result.Output)
	}

	markdown, err := os.ReadFile(reportFile)
	if err != nil {
		return fmt.Errorf("report file not produced: %v", err)
	}
	return outputContains(string(markdown), "MockTool Analysis", "Found 2 results")
}

func (h *Harness) checkEnforcement(scratchDir string) error {
	sarifFile, err := writeSyntheticDocument(scratchDir)
	if err != nil {
		return err
	}

	result := h.run(pipeline.Options{SarifFile: sarifFile, Enforce: true})
	if result.ExitCode == pipeline.ExitOK {
		return fmt.Errorf("expected failure exit code, got %d", result.ExitCode)
	}
	return outputContains(result.Output, pipeline.EnforcementFailureMessage)
}

func outputContains(text string, expected ...string) error {
	for _, want := range expected {
		if !strings.Contains(text, want) {
			return fmt.Errorf("output missing %q", want)
		}
	}
	return nil
}
