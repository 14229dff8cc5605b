package safeview

import "strings"

// PreviewResult is a line-oriented rendering.
type PreviewResult struct {
	Lines     []string
	Truncated bool
}

// PreviewLines renders value like Inspect, split into lines. When the output
// was cut short the first line is TruncationBanner.
func PreviewLines(value any, opts Options) PreviewResult {
	r := Inspect(value, opts)
	lines := strings.Split(r.Text, "\n")
	if r.Truncated {
		lines = append([]string{TruncationBanner}, lines...)
	}
	return PreviewResult{Lines: lines, Truncated: r.Truncated}
}
