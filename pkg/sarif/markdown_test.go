package sarif

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestRenderMarkdown_NoResults(t *testing.T) {
	report := NewScanReport("TestTool", "1.0.0", nil)
	out, err := report.RenderMarkdown(1, "")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# TestTool Analysis",
		"**Tool:** TestTool 1.0.0",
		"## Results",
		"Found no results",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("want output containing %q got:\n%s", want, out)
		}
	}
	if strings.HasSuffix(out, "\n\n\n") {
		t.Fatalf("unexpected trailing blank lines:\n%q", out)
	}
}

func TestRenderMarkdown_Results(t *testing.T) {
	report := NewScanReport("TestTool", "1.0.0", []Result{
		{RuleID: "CA1001", Level: "warning", Message: "dispose the thing", URI: strPtr("src/MyClass.cs"), StartLine: intPtr(42)},
		{RuleID: "CA2000", Level: "error", Message: "leaked resource", URI: strPtr("src/Program.cs"), StartLine: intPtr(15)},
	})
	out, err := report.RenderMarkdown(1, "")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Found 2 results",
		"src/MyClass.cs(42): warning [CA1001] dispose the thing  \n",
		"src/Program.cs(15): error [CA2000] leaked resource  \n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("want output containing %q got:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "  \n\n") {
		t.Fatalf("want trailing blank line after results got:\n%q", out)
	}
}

func TestRenderMarkdown_CustomHeading(t *testing.T) {
	report := NewScanReport("TestTool", "1.0.0", nil)
	out, err := report.RenderMarkdown(2, "Security Scan")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "## Security Scan\n\n") {
		t.Fatalf("want '## Security Scan' title got:\n%s", out)
	}
	if !strings.Contains(out, "\n### Results\n") {
		t.Fatalf("want '### Results' sub-heading got:\n%s", out)
	}
}

func TestRenderMarkdown_DepthClamping(t *testing.T) {
	report := NewScanReport("TestTool", "1.0.0", nil)

	for depth := MinDepth; depth <= MaxDepth; depth++ {
		t.Run(fmt.Sprintf("depth-%d", depth), func(t *testing.T) {
			out, err := report.RenderMarkdown(depth, "")
			if err != nil {
				t.Fatal(err)
			}
			subDepth := depth + 1
			if subDepth > MaxDepth {
				subDepth = MaxDepth
			}
			want := "\n" + strings.Repeat("#", subDepth) + " Results\n"
			if !strings.Contains(out, want) {
				t.Fatalf("want sub-heading %q got:\n%s", want, out)
			}
		})
	}
}

func TestRenderMarkdown_DepthRange(t *testing.T) {
	report := NewScanReport("TestTool", "1.0.0", nil)
	for _, depth := range []int{0, -1, 7, 100} {
		_, err := report.RenderMarkdown(depth, "")
		if !errors.Is(err, ErrArgument) {
			t.Fatalf("want: %v got: %v", ErrArgument, err)
		}
		if !strings.Contains(err.Error(), "between 1 and 6") {
			t.Fatalf("want range bound in message got: %v", err)
		}
	}
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	report := NewScanReport("TestTool", "1.0.0", []Result{
		{RuleID: "CA1001", Level: "warning", Message: "a finding", URI: strPtr("a.cs"), StartLine: intPtr(5)},
	})
	first, err := report.RenderMarkdown(3, "Repeatable")
	if err != nil {
		t.Fatal(err)
	}
	second, err := report.RenderMarkdown(3, "Repeatable")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("want byte-identical output got:\n%q\n%q", first, second)
	}
}

func TestSummaryLine(t *testing.T) {
	testTable := []struct {
		count int
		want  string
	}{
		{count: 0, want: "Found no results"},
		{count: 1, want: "Found 1 result"},
		{count: 2, want: "Found 2 results"},
		{count: 99, want: "Found 99 results"},
	}
	for _, testCase := range testTable {
		if got := summaryLine(testCase.count); got != testCase.want {
			t.Fatalf("want: %q got: %q", testCase.want, got)
		}
	}
}

func TestResultLocation(t *testing.T) {
	testTable := []struct {
		label  string
		result Result
		want   string
	}{
		{label: "no-location", result: Result{}, want: "(no location)"},
		{label: "uri-only", result: Result{URI: strPtr("a.cs")}, want: "a.cs"},
		{label: "uri-and-line", result: Result{URI: strPtr("a.cs"), StartLine: intPtr(5)}, want: "a.cs(5)"},
	}
	for _, testCase := range testTable {
		t.Run(testCase.label, func(t *testing.T) {
			if got := testCase.result.Location(); got != testCase.want {
				t.Fatalf("want: %q got: %q", testCase.want, got)
			}
		})
	}
}
