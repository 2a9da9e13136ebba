package debt

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// FunctionBody pairs a function's identity with the source driving its
// duplication hash; kept separate from domain.FunctionMetrics since the
// body text itself is never stored on the metrics record.
type FunctionBody struct {
	ID   domain.FunctionId
	File string
	Body []byte
}

// GenerateDuplication groups functions whose bodies are identical after
// token-stream normalization (so reformatted whitespace and comments
// still count as the same shape; identifiers are hashed verbatim, so
// renamed locals do not) and flags every member of a group with
// two or more functions. Hashing the normalized token stream with FNV-1a
// mirrors internal/analyzer/textual_similarity.go's hash/fnv use for
// near-duplicate fingerprinting, adapted from character text to this
// codebase's token stream so comment and whitespace differences never
// cause a false negative.
func GenerateDuplication(bodies []FunctionBody) []RawItem {
	groups := make(map[uint64][]FunctionBody)
	for _, b := range bodies {
		h := normalizedHash(b.Body)
		groups[h] = append(groups[h], b)
	}

	var items []RawItem
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].File != group[j].File {
				return group[i].File < group[j].File
			}
			return group[i].ID.StartLine < group[j].ID.StartLine
		})
		for _, b := range group {
			items = append(items, RawItem{
				File:     b.File,
				Line:     b.ID.StartLine,
				EndLine:  b.ID.StartLine,
				DebtType: domain.DebtDuplication,
				Message: fmt.Sprintf(
					"Function %q duplicates %d other function(s) of identical shape",
					b.ID.Name, len(group)-1,
				),
				Impact: "medium",
			})
		}
	}
	return items
}

func normalizedHash(body []byte) uint64 {
	toks := metrics.Tokenize(body)
	h := fnv.New64a()
	for _, t := range toks {
		h.Write([]byte(t.Text))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
