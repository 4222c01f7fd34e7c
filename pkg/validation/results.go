package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/demaconsulting/SarifMark/internal/log"
	"github.com/demaconsulting/SarifMark/pkg/export/junitxml"
	"github.com/demaconsulting/SarifMark/pkg/export/trx"
)

const runName = "SarifMark Validation"

// WriteResults serializes the summary to path. The serialization format is
// selected by file extension: .trx for Visual Studio TRX, .xml for JUnit.
func WriteResults(path string, summary Summary) error {
	ext := filepath.Ext(path)

	var write func(f *os.File) error
	switch strings.ToLower(ext) {
	case ".trx":
		write = func(f *os.File) error {
			return trx.Encode(f, runName, trxResults(summary))
		}
	case ".xml":
		write = func(f *os.File) error {
			return junitxml.Encode(f, runName, junitCases(summary))
		}
	default:
		return fmt.Errorf("%w: '%s' (expected .trx or .xml)", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	log.Infof("validation results written to %s", path)
	return nil
}

func trxResults(summary Summary) []trx.TestResult {
	results := make([]trx.TestResult, 0, len(summary.Records))
	for _, record := range summary.Records {
		results = append(results, trx.TestResult{
			Name:         record.Name,
			ClassName:    record.ClassName,
			CodeBase:     record.CodeBase,
			Duration:     record.Duration,
			Passed:       record.Outcome == OutcomePassed,
			ErrorMessage: record.ErrorMessage,
		})
	}
	return results
}

func junitCases(summary Summary) []junitxml.TestCase {
	cases := make([]junitxml.TestCase, 0, len(summary.Records))
	for _, record := range summary.Records {
		cases = append(cases, junitxml.TestCase{
			Name:         record.Name,
			ClassName:    record.ClassName,
			Duration:     record.Duration,
			Passed:       record.Outcome == OutcomePassed,
			ErrorMessage: record.ErrorMessage,
		})
	}
	return cases
}
