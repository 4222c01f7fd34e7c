package format

import (
	"fmt"
	"sort"
	"strings"
)

type ClipDirection int

const (
	ClipLeft ClipDirection = iota
	ClipRight
)

func Summarize(content string, length int, clip ClipDirection) string {
	if len(content) < length {
		return content
	}

	if length <= 3 {
		if clip == ClipLeft {
			return content[:length]
		}
		if clip == ClipRight {
			return content[len(content)-length:]
		}
	}

	out := content

	if clip == ClipLeft {
		out = "..." + out[len(out)-length+3:]
	}
	if clip == ClipRight {
		out = out[:length-3] + "..."
	}

	return out
}

// PrettyPrintMap renders a map as "(k: v, ...)" with keys in sorted order so
// log lines are stable.
func PrettyPrintMap[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(m))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%v: %v", k, m[k]))
	}
	return fmt.Sprintf("(%s)", strings.Join(s, ", "))
}
