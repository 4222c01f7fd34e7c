// Package trx serializes test outcomes into the Visual Studio TRX format.
// The schema is externally defined; only the elements test reporting tools
// consume are written.
package trx

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Fixed ids defined by the TRX schema for unit tests and the default list.
const (
	unitTestType  = "13cdc9d9-ddb5-4fa4-a97d-d965ccfc6d4b"
	defaultListID = "8c84fa94-04c1-424b-9868-57a2d4851a1d"
)

// TestResult is one recorded outcome to serialize.
type TestResult struct {
	Name         string
	ClassName    string
	CodeBase     string
	Duration     time.Duration
	Passed       bool
	ErrorMessage string
}

type testRun struct {
	XMLName         xml.Name        `xml:"TestRun"`
	ID              string          `xml:"id,attr"`
	Name            string          `xml:"name,attr"`
	XMLNS           string          `xml:"xmlns,attr"`
	Times           times           `xml:"Times"`
	Results         results         `xml:"Results"`
	TestDefinitions testDefinitions `xml:"TestDefinitions"`
	TestEntries     testEntries     `xml:"TestEntries"`
	TestLists       testLists       `xml:"TestLists"`
	ResultSummary   resultSummary   `xml:"ResultSummary"`
}

type times struct {
	Creation string `xml:"creation,attr"`
	Start    string `xml:"start,attr"`
	Finish   string `xml:"finish,attr"`
}

type results struct {
	UnitTestResults []unitTestResult `xml:"UnitTestResult"`
}

type unitTestResult struct {
	ExecutionID string  `xml:"executionId,attr"`
	TestID      string  `xml:"testId,attr"`
	TestName    string  `xml:"testName,attr"`
	Duration    string  `xml:"duration,attr"`
	Outcome     string  `xml:"outcome,attr"`
	TestType    string  `xml:"testType,attr"`
	TestListID  string  `xml:"testListId,attr"`
	Output      *output `xml:"Output,omitempty"`
}

type output struct {
	ErrorInfo errorInfo `xml:"ErrorInfo"`
}

type errorInfo struct {
	Message string `xml:"Message"`
}

type testDefinitions struct {
	UnitTests []unitTest `xml:"UnitTest"`
}

type unitTest struct {
	ID         string     `xml:"id,attr"`
	Name       string     `xml:"name,attr"`
	Execution  execution  `xml:"Execution"`
	TestMethod testMethod `xml:"TestMethod"`
}

type execution struct {
	ID string `xml:"id,attr"`
}

type testMethod struct {
	CodeBase  string `xml:"codeBase,attr"`
	ClassName string `xml:"className,attr"`
	Name      string `xml:"name,attr"`
}

type testEntries struct {
	Entries []testEntry `xml:"TestEntry"`
}

type testEntry struct {
	TestID      string `xml:"testId,attr"`
	ExecutionID string `xml:"executionId,attr"`
	TestListID  string `xml:"testListId,attr"`
}

type testLists struct {
	Lists []testList `xml:"TestList"`
}

type testList struct {
	Name string `xml:"name,attr"`
	ID   string `xml:"id,attr"`
}

type resultSummary struct {
	Outcome  string   `xml:"outcome,attr"`
	Counters counters `xml:"Counters"`
}

type counters struct {
	Total    int `xml:"total,attr"`
	Executed int `xml:"executed,attr"`
	Passed   int `xml:"passed,attr"`
	Failed   int `xml:"failed,attr"`
}

// Encode writes a TRX document for the given results.
func Encode(w io.Writer, runName string, testResults []TestResult) error {
	now := time.Now().UTC().Format(time.RFC3339)
	run := testRun{
		ID:    uuid.NewString(),
		Name:  runName,
		XMLNS: "http://microsoft.com/schemas/VisualStudio/TeamTest/2010",
		Times: times{Creation: now, Start: now, Finish: now},
		TestLists: testLists{Lists: []testList{
			{Name: "Results Not in a List", ID: defaultListID},
		}},
		ResultSummary: resultSummary{Outcome: "Completed"},
	}

	for _, result := range testResults {
		testID := uuid.NewString()
		executionID := uuid.NewString()

		utr := unitTestResult{
			ExecutionID: executionID,
			TestID:      testID,
			TestName:    result.Name,
			Duration:    formatDuration(result.Duration),
			Outcome:     outcome(result.Passed),
			TestType:    unitTestType,
			TestListID:  defaultListID,
		}
		if !result.Passed && result.ErrorMessage != "" {
			utr.Output = &output{ErrorInfo: errorInfo{Message: result.ErrorMessage}}
		}

		run.Results.UnitTestResults = append(run.Results.UnitTestResults, utr)
		run.TestDefinitions.UnitTests = append(run.TestDefinitions.UnitTests, unitTest{
			ID:        testID,
			Name:      result.Name,
			Execution: execution{ID: executionID},
			TestMethod: testMethod{
				CodeBase:  result.CodeBase,
				ClassName: result.ClassName,
				Name:      result.Name,
			},
		})
		run.TestEntries.Entries = append(run.TestEntries.Entries, testEntry{
			TestID:      testID,
			ExecutionID: executionID,
			TestListID:  defaultListID,
		})

		run.ResultSummary.Counters.Total++
		run.ResultSummary.Counters.Executed++
		if result.Passed {
			run.ResultSummary.Counters.Passed++
		} else {
			run.ResultSummary.Counters.Failed++
			run.ResultSummary.Outcome = "Failed"
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	return encoder.Encode(run)
}

func outcome(passed bool) string {
	if passed {
		return "Passed"
	}
	return "Failed"
}

// formatDuration renders a duration as hh:mm:ss.fffffff, the TRX convention.
func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	fraction := d.Nanoseconds() % 1_000_000_000 / 100
	return fmt.Sprintf("%02d:%02d:%02d.%07d", hours, minutes, seconds, fraction)
}
