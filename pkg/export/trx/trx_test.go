package trx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	results := []TestResult{
		{Name: "Ingestion", ClassName: "Validation", CodeBase: "sarifmark", Duration: 125 * time.Millisecond, Passed: true},
		{Name: "Rendering", ClassName: "Validation", CodeBase: "sarifmark", Duration: 80 * time.Millisecond, Passed: false, ErrorMessage: "output missing heading"},
	}

	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, "Sample Run", results))
	content := buf.String()

	for _, want := range []string{
		`<TestRun`,
		`name="Sample Run"`,
		`xmlns="http://microsoft.com/schemas/VisualStudio/TeamTest/2010"`,
		`testName="Ingestion"`,
		`outcome="Passed"`,
		`testName="Rendering"`,
		`outcome="Failed"`,
		`<Message>output missing heading</Message>`,
		`total="2"`,
		`passed="1"`,
		`failed="1"`,
		`codeBase="sarifmark"`,
	} {
		assert.Contains(t, content, want)
	}

	// Run outcome reflects the failing result
	assert.Contains(t, content, `<ResultSummary outcome="Failed">`)
}

func TestEncode_AllPassed(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, "Sample Run", []TestResult{
		{Name: "Only", ClassName: "Validation", Passed: true},
	}))
	assert.Contains(t, buf.String(), `<ResultSummary outcome="Completed">`)
	assert.NotContains(t, buf.String(), "<ErrorInfo>")
}

func TestFormatDuration(t *testing.T) {
	testTable := []struct {
		duration time.Duration
		want     string
	}{
		{duration: 0, want: "00:00:00.0000000"},
		{duration: 1500 * time.Millisecond, want: "00:00:01.5000000"},
		{duration: 61 * time.Second, want: "00:01:01.0000000"},
		{duration: time.Hour + time.Minute + time.Second, want: "01:01:01.0000000"},
	}
	for _, testCase := range testTable {
		assert.Equal(t, testCase.want, formatDuration(testCase.duration))
	}
}
