package lang

import (
	"fmt"

	"github.com/debtcore/debtcore/domain"
)

// emitSyntheticClosures runs detect over every already-discovered span and
// appends whatever synthetic "<parent>::<closure@N>" spans it finds,
// numbering them in discovery order per parent (§4.1).
func emitSyntheticClosures(spans []FunctionSpan, filePath string, detect func(FunctionSpan) []FunctionSpan) []FunctionSpan {
	out := make([]FunctionSpan, 0, len(spans))
	for _, s := range spans {
		out = append(out, s)
		closures := detect(s)
		for i, c := range closures {
			c.QualifiedName = fmt.Sprintf("%s::<closure@%d>", s.QualifiedName, i+1)
			c.IsClosure = true
			c.Language = s.Language
			c.Visibility = domain.VisibilityPrivate
			out = append(out, c)
		}
	}
	return out
}
