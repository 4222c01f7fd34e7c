package sarif

import (
	"fmt"
	"strings"
)

// Markdown heading depth bounds.
const (
	MinDepth = 1
	MaxDepth = 6
)

// RenderMarkdown renders the report as a markdown document. The title uses
// depth '#' characters and the heading text, or "{tool} Analysis" when
// heading is empty. Output is byte-identical for identical input.
func (r *ScanReport) RenderMarkdown(depth int, heading string) (string, error) {
	if depth < MinDepth || depth > MaxDepth {
		return "", fmt.Errorf("%w: depth must be between %d and %d, got %d",
			ErrArgument, MinDepth, MaxDepth, depth)
	}

	title := heading
	if title == "" {
		title = r.ToolName + " Analysis"
	}

	subDepth := depth + 1
	if subDepth > MaxDepth {
		subDepth = MaxDepth
	}

	sb := new(strings.Builder)
	fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", depth), title)
	fmt.Fprintf(sb, "**Tool:** %s %s\n\n", r.ToolName, r.ToolVersion)
	fmt.Fprintf(sb, "%s Results\n\n", strings.Repeat("#", subDepth))
	sb.WriteString(summaryLine(r.Count()))
	sb.WriteString("\n")

	if r.Count() > 0 {
		sb.WriteString("\n")
		for _, result := range r.Results {
			// Two trailing spaces for a markdown hard line break
			sb.WriteString(result.String())
			sb.WriteString("  \n")
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func summaryLine(count int) string {
	switch count {
	case 0:
		return "Found no results"
	case 1:
		return "Found 1 result"
	default:
		return fmt.Sprintf("Found %d results", count)
	}
}
