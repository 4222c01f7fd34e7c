// Package junitxml serializes test outcomes into the JUnit XML report
// format consumed by CI systems.
package junitxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// TestCase is one recorded outcome to serialize.
type TestCase struct {
	Name         string
	ClassName    string
	Duration     time.Duration
	Passed       bool
	ErrorMessage string
}

type testSuites struct {
	XMLName  xml.Name    `xml:"testsuites"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Time     string      `xml:"time,attr"`
	Suites   []testSuite `xml:"testsuite"`
}

type testSuite struct {
	Name     string     `xml:"name,attr"`
	Tests    int        `xml:"tests,attr"`
	Failures int        `xml:"failures,attr"`
	Time     string     `xml:"time,attr"`
	Cases    []testCase `xml:"testcase"`
}

type testCase struct {
	Name      string   `xml:"name,attr"`
	ClassName string   `xml:"classname,attr"`
	Time      string   `xml:"time,attr"`
	Failure   *failure `xml:"failure,omitempty"`
}

type failure struct {
	Message string `xml:"message,attr"`
}

// Encode writes a JUnit XML document for the given test cases.
func Encode(w io.Writer, suiteName string, cases []TestCase) error {
	suite := testSuite{Name: suiteName}

	var total time.Duration
	for _, tc := range cases {
		c := testCase{
			Name:      tc.Name,
			ClassName: tc.ClassName,
			Time:      formatSeconds(tc.Duration),
		}
		if !tc.Passed {
			c.Failure = &failure{Message: tc.ErrorMessage}
			suite.Failures++
		}
		suite.Cases = append(suite.Cases, c)
		suite.Tests++
		total += tc.Duration
	}
	suite.Time = formatSeconds(total)

	doc := testSuites{
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Time:     suite.Time,
		Suites:   []testSuite{suite},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	return encoder.Encode(doc)
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
