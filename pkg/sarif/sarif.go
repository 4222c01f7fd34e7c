// Package sarif reads SARIF static-analysis reports into a normalized result
// set used for report rendering and gate enforcement.
//
// Parsing is intentionally defensive: only the handful of fields needed for
// reporting are read, optional fields fall back to defaults, and suppressed
// results are excluded. This is not a SARIF schema validator.
package sarif

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/demaconsulting/SarifMark/internal/log"
	gce "github.com/demaconsulting/SarifMark/pkg/encoding"
	"github.com/demaconsulting/SarifMark/pkg/filter"
	"github.com/demaconsulting/SarifMark/pkg/format"
)

const ReportType = "SARIF Analysis Report"
const ConfigType = "SarifMark Config"
const ConfigFieldName = "sarif"

// UnknownTool substitutes for a missing tool name or version.
const UnknownTool = "Unknown"

// DefaultLevel substitutes for a missing result level.
const DefaultLevel = "warning"

var (
	ErrArgument = errors.New("invalid argument")
	ErrNotFound = errors.New("file not found")
	ErrFormat   = errors.New("invalid SARIF document")
)

// Result is one finding from a SARIF run. URI and StartLine are nil when the
// source reported no location or no region.
type Result struct {
	RuleID    string
	Level     string
	Message   string
	URI       *string
	StartLine *int
}

// Location renders the finding position for reports.
func (r Result) Location() string {
	if r.URI == nil {
		return "(no location)"
	}
	if r.StartLine == nil {
		return *r.URI
	}
	return fmt.Sprintf("%s(%d)", *r.URI, *r.StartLine)
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s [%s] %s", r.Location(), r.Level, r.RuleID, r.Message)
}

// ScanReport is the normalized result set of the first run in a SARIF
// document, with suppressed results excluded. It is not mutated after
// construction.
type ScanReport struct {
	ToolName    string
	ToolVersion string
	Results     []Result
}

// NewScanReport builds a report from pre-extracted fields.
func NewScanReport(toolName string, toolVersion string, results []Result) *ScanReport {
	return &ScanReport{ToolName: toolName, ToolVersion: toolVersion, Results: results}
}

func (r *ScanReport) Count() int {
	return len(r.Results)
}

// UnmarshalJSON validates document structure and extracts the normalized
// fields from the first run.
func (r *ScanReport) UnmarshalJSON(data []byte) error {
	var doc node
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}

	if _, ok := doc["version"]; !ok {
		return fmt.Errorf("%w: missing or invalid 'version'", ErrFormat)
	}
	runs, ok := doc.list("runs")
	if !ok {
		return fmt.Errorf("%w: missing or invalid 'runs'", ErrFormat)
	}
	if len(runs) == 0 {
		return fmt.Errorf("%w: 'runs' is empty", ErrFormat)
	}

	// Only the first run is considered
	run, _ := asNode(runs[0])
	tool := run.object("tool")
	if tool == nil {
		return fmt.Errorf("%w: missing 'tool' in first run", ErrFormat)
	}
	driver := tool.object("driver")
	if driver == nil {
		return fmt.Errorf("%w: missing 'driver' in tool", ErrFormat)
	}

	r.ToolName = driver.textOr("name", UnknownTool)
	r.ToolVersion = driver.textOr("version", UnknownTool)
	r.Results = extractResults(run)
	return nil
}

// NewReportDecoder returns a WriterDecoder for SARIF report files.
func NewReportDecoder() *gce.JSONWriterDecoder[ScanReport] {
	return gce.NewJSONWriterDecoder[ScanReport](ReportType, checkReport)
}

func checkReport(report *ScanReport) error {
	if report == nil {
		return gce.ErrFailedCheck
	}
	return nil
}

// ParseFile reads and parses a SARIF document from path.
func ParseFile(path string) (*ScanReport, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: SARIF file path is empty", ErrArgument)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	log.Debugf("parsing SARIF file %s (%s)", path, humanize.Bytes(uint64(info.Size())))

	obj, err := NewReportDecoder().DecodeFrom(f)
	if err != nil {
		return nil, err
	}
	report := obj.(*ScanReport)

	counts := make(map[string]int)
	for _, result := range report.Results {
		counts[result.Level]++
	}
	log.Infof("parsed %s %s: %d results %v", report.ToolName, report.ToolVersion,
		report.Count(), format.PrettyPrintMap(counts))

	return report, nil
}

func extractResults(run node) []Result {
	raw, ok := run.list("results")
	if !ok {
		// Absent or non-array results means no findings, not an error
		return []Result{}
	}

	retained := filter.Filter(raw, filter.Not(suppressed))

	results := make([]Result, 0, len(retained))
	for _, entry := range retained {
		n, ok := asNode(entry)
		if !ok {
			continue
		}
		results = append(results, newResult(n))
	}
	return results
}

// suppressed reports whether a raw result entry carries at least one
// suppression.
func suppressed(entry any) bool {
	n, ok := asNode(entry)
	if !ok {
		return false
	}
	s, ok := n.list("suppressions")
	return ok && len(s) > 0
}

func newResult(entry node) Result {
	result := Result{
		RuleID:  entry.textOr("ruleId", ""),
		Level:   entry.textOr("level", DefaultLevel),
		Message: entry.object("message").textOr("text", ""),
	}

	locations, ok := entry.list("locations")
	if !ok || len(locations) == 0 {
		return result
	}

	// Only the first location is considered
	location, _ := asNode(locations[0])
	physical := location.object("physicalLocation")
	if uri, ok := physical.object("artifactLocation").text("uri"); ok {
		result.URI = &uri
	}
	if line, ok := physical.object("region").number("startLine"); ok {
		result.StartLine = &line
	}
	return result
}
