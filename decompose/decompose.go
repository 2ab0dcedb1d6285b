// Package decompose splits composite requests into ordered atomic steps.
//
// Extraction runs in priority order: explicit numbered markers first, then a
// fixed set of connective words, then the whole request as a single step.
// The emitted order is the order steps appear in the original text and is
// preserved end-to-end through execution and aggregation.
package decompose

import (
	"regexp"
	"strings"
	"unicode"
)

// numberedStep matches explicit enumeration markers like "1. ..." or "2) ..."
// and captures the span up to the next sentence terminator.
// Requiring whitespace after the marker keeps decimals like "3.5" from being
// mistaken for enumeration.
var numberedStep = regexp.MustCompile(`\d+[.)]\s+([^.!?]*[.!?]?)`)

// connective matches the fixed boundary words that separate steps in prose
// requests ("do X and then do Y").
var connective = regexp.MustCompile(`(?i)\s+(?:and then|after that|and|then|also|plus|next)\s+`)

// Split extracts the ordered list of atomic step strings from a request.
// The result is never empty: if no markers or connectives produce more than
// one usable segment, the whole trimmed request is the single step. Empty or
// whitespace-only segments are dropped; if dropping them would empty the
// list, the original untrimmed request is returned as the sole step.
func Split(text string) []string {
	if steps := splitNumbered(text); len(steps) > 0 {
		return steps
	}
	if steps := splitConnectives(text); len(steps) > 1 {
		return steps
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return []string{trimmed}
	}
	return []string{text}
}

// Composite reports whether the request would decompose into more than one
// step. The engine uses this as the multi-step indicator check for the
// single-handler fast path.
func Composite(text string) bool {
	return len(Split(text)) > 1
}

func splitNumbered(text string) []string {
	matches := numberedStep.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	steps := make([]string, 0, len(matches))
	for _, m := range matches {
		if step := strings.TrimSpace(m[1]); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

func splitConnectives(text string) []string {
	parts := connective.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}
	steps := make([]string, 0, len(parts))
	for _, p := range parts {
		step := strings.TrimSpace(p)
		if step == "" {
			continue
		}
		// A segment without any letters is an operand, not a task: "the sum
		// of 15 and 27" must stay one logical step.
		if !hasLetter(step) {
			return nil
		}
		steps = append(steps, step)
	}
	// Only accept the split when it yields more than one non-empty segment;
	// guards against requests that merely contain a connective word inside a
	// single logical task.
	if len(steps) < 2 {
		return nil
	}
	return steps
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
