package junitxml

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cases := []TestCase{
		{Name: "Ingestion", ClassName: "Validation", Duration: 125 * time.Millisecond, Passed: true},
		{Name: "Enforcement", ClassName: "Validation", Duration: 250 * time.Millisecond, Passed: false, ErrorMessage: "expected failure exit code"},
	}

	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, "Sample Suite", cases))
	content := buf.String()

	for _, want := range []string{
		`<testsuites tests="2" failures="1"`,
		`<testsuite name="Sample Suite"`,
		`<testcase name="Ingestion" classname="Validation" time="0.125"`,
		`<failure message="expected failure exit code"`,
		`time="0.375"`,
	} {
		assert.Contains(t, content, want)
	}
}

func TestEncode_AllPassed(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Encode(buf, "Sample Suite", []TestCase{
		{Name: "Only", ClassName: "Validation", Passed: true},
	}))
	assert.NotContains(t, buf.String(), "<failure")
	assert.Contains(t, buf.String(), `failures="0"`)
}
