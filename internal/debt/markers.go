package debt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/debtcore/debtcore/domain"
)

// markerPattern matches a TODO/FIXME/XXX/HACK comment marker anywhere on a
// line, case-insensitively, the same precompiled-regex-field style
// internal/mockdetector/heuristics.go uses for its keyword patterns.
var markerPattern = regexp.MustCompile(`(?i)\b(TODO|FIXME|XXX|HACK)\b[:\s]*(.*)`)

// GenerateTodoMarkers scans a file's raw source lines for TODO/FIXME-style
// comment markers. It operates on whole lines rather than the tokenizer's
// token stream since a marker's payload (the free-text note after the
// keyword) is exactly the part Tokenize discards.
func GenerateTodoMarkers(file string, lines []string) []RawItem {
	var items []RawItem
	for i, line := range lines {
		m := markerPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		note := strings.TrimSpace(m[2])
		msg := fmt.Sprintf("%s marker", strings.ToUpper(m[1]))
		if note != "" {
			msg = fmt.Sprintf("%s: %s", msg, note)
		}
		items = append(items, RawItem{
			File:     file,
			Line:     i + 1,
			EndLine:  i + 1,
			DebtType: domain.DebtTodoMarker,
			Message:  msg,
			Impact:   "low",
		})
	}
	return items
}
