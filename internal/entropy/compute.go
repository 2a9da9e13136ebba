package entropy

import (
	"github.com/debtcore/debtcore/domain"
	"github.com/debtcore/debtcore/internal/metrics"
)

// Analyzer runs C3 over function bodies, sharing one memoization Cache
// across a whole analysis run so repeated bodies (common in generated or
// templated code) cost one computation each.
type Analyzer struct {
	cache  *Cache
	config domain.EntropyConfig
}

func NewAnalyzer(config domain.EntropyConfig) *Analyzer {
	return &Analyzer{cache: NewCache(config.MaxCacheSize), config: config}
}

// Calculate produces the EntropyScore for one function body, given the
// nesting depth C2 already computed for it. A cache hit and a cache miss
// must return bit-identical scores since both paths bottom out in the
// same pure computation over the same token stream.
func (a *Analyzer) Calculate(body []byte, maxNesting int) domain.EntropyScore {
	if !a.config.Enabled {
		return domain.EntropyScore{DampeningApplied: 1.0, MaxNesting: maxNesting}
	}

	key := HashKey(body)
	if cached, ok := a.cache.get(key); ok {
		return cached
	}

	toks := metrics.Tokenize(body)
	tokenEntropy := weightedShannonEntropy(toks)
	repetition := patternRepetition(toks)
	similarity := branchSimilarity(toks)
	uniqueVariables := uniqueIdentifiers(toks)

	threshold := a.config.PatternThreshold
	if threshold == 0 {
		threshold = 0.5
	}

	score := domain.EntropyScore{
		TokenEntropy:        tokenEntropy,
		PatternRepetition:   repetition,
		BranchSimilarity:    similarity,
		EffectiveComplexity: effectiveComplexity(tokenEntropy, repetition, similarity),
		UniqueVariables:     uniqueVariables,
		MaxNesting:          maxNesting,
		DampeningApplied:    dampeningFactor(tokenEntropy, repetition, similarity, threshold),
	}

	a.cache.put(key, score)
	return score
}

// uniqueIdentifiers counts distinct non-keyword, non-operator tokens —
// entropy.rs's StructureAnalyzer variable-diversity count, approximated
// here over the flat token stream rather than a typed AST walk.
func uniqueIdentifiers(toks []metrics.Tok) int {
	seen := make(map[string]bool)
	for _, t := range toks {
		if category(t) == "identifier" {
			seen[t.Text] = true
		}
	}
	return len(seen)
}

// Stats exposes the shared cache's hit/miss/eviction counters.
func (a *Analyzer) Stats() Stats {
	return a.cache.Stats()
}
