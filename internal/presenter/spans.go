package presenter

import (
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Span is a run of message text with uniform emphasis.
type Span struct {
	Text string
	Bold bool
}

// Spans splits a chatbot message on **bold** markers.
func Spans(message string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringSubmatchIndex(message, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: message[last:loc[0]]})
		}
		spans = append(spans, Span{Text: message[loc[2]:loc[3]], Bold: true})
		last = loc[1]
	}
	if last < len(message) {
		spans = append(spans, Span{Text: message[last:]})
	}
	return spans
}

// RenderSpans joins spans, passing bold runs through bold. The signature
// matches lipgloss.Style.Render so styles can be passed directly.
func RenderSpans(spans []Span, bold func(...string) string) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold && bold != nil {
			b.WriteString(bold(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
