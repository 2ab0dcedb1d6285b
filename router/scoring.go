package router

import "strings"

// Affinity is the scoring policy for one handler: a base confidence for the
// handler's declared domain plus an incremental bonus per indicator token
// found in the request. The policy is configuration data, deliberately kept
// separate from the dispatch mechanism so keyword lists and score constants
// can be tested and tuned without touching routing logic.
//
// Scores are only used for relative ranking; a base plus enough indicator
// hits may exceed 1.0 and that is fine.
type Affinity struct {
	// Base is the confidence granted when the handler's predicate matches.
	Base float64
	// Indicators are domain tokens matched case-insensitively as substrings.
	Indicators []string
	// Weight is the bonus added per matched indicator.
	Weight float64
}

// DefaultWeight is the per-indicator bonus used when an affinity leaves
// Weight unset.
const DefaultWeight = 0.1

// Score computes the affinity score of a request text. The handler's
// predicate has already matched by the time this is called; a non-matching
// predicate short-circuits to 0 in the router.
//
// Pure and deterministic: identical inputs always yield identical output,
// which the router relies on for stable tie-breaking across repeated calls
// within one decomposition pass.
func (a Affinity) Score(text string) float64 {
	weight := a.Weight
	if weight == 0 {
		weight = DefaultWeight
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, indicator := range a.Indicators {
		if indicator == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(indicator)) {
			hits++
		}
	}
	return a.Base + float64(hits)*weight
}
