package handler

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/internal/util"
	"github.com/hupe1980/taskmesh/logging"
	"github.com/hupe1980/taskmesh/router"
	"github.com/hupe1980/taskmesh/tool"
)

// TextName is the registered name of the text handler.
const TextName = "text"

var textKeywords = []string{
	"analyze", "sentiment", "text", "words", "characters", "count",
	"summarize", "summary", "extract", "process", "content",
	"emotion", "feeling", "positive", "negative", "neutral",
	"reading", "writing", "language", "string", "paragraph",
}

var analysisPhrases = []string{
	"what is the sentiment", "how many words", "analyze this text",
	"sentiment of", "word count", "character count", "summarize",
}

var (
	quotedPattern = regexp.MustCompile(`["'].*["']`)
	quotedCapture = regexp.MustCompile(`["']([^"']*)["']`)
)

// afterPhrases pull the analysis target out of requests like
// "analyze this text: ..." when no quoted text is present.
var afterPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)analyze\s+(?:this\s+)?text\s*:?\s*(.+)`),
	regexp.MustCompile(`(?i)sentiment\s+of\s*:?\s*(.+)`),
	regexp.MustCompile(`(?i)process\s+(?:this\s+)?text\s*:?\s*(.+)`),
	regexp.MustCompile(`(?i)text\s*:?\s*(.+)`),
}

// TextStats is the structured payload for word and character counting.
type TextStats struct {
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	Text           string `json:"text"`
}

// TextAnalysis is the structured payload for a combined general analysis.
type TextAnalysis struct {
	Sentiment tool.Sentiment `json:"sentiment"`
	Stats     TextStats      `json:"stats"`
	Numbers   []float64      `json:"numbers"`
	Text      string         `json:"text"`
}

// Text handles text processing requests: sentiment analysis, word and
// character statistics, summarization and number extraction. Analysis is
// dispatched to text tools registered in the provided registry.
type Text struct {
	registry *tool.Registry
	logger   logging.Logger
}

// NewText creates a text handler backed by the given tool registry. The
// registry must contain the text tools (see tool.RegisterTextKit).
func NewText(registry *tool.Registry, optFns ...func(o *Options)) *Text {
	opts := applyOptions(optFns)
	return &Text{registry: registry, logger: opts.Logger}
}

// Name implements core.Handler.
func (h *Text) Name() string { return TextName }

// Description implements core.Handler.
func (h *Text) Description() string {
	return "Specialized in text processing, sentiment analysis, and content manipulation"
}

// Affinity returns the scoring policy for this handler.
func (h *Text) Affinity() router.Affinity {
	return router.Affinity{
		Base:       0.8,
		Indicators: []string{"sentiment", "analyze", "text", "words", "count", "extract"},
		Weight:     router.DefaultWeight,
	}
}

// CanHandle implements core.Handler. A request qualifies when it mentions a
// text-processing keyword, matches a known analysis phrase, or carries
// quoted content to analyze.
func (h *Text) CanHandle(req core.Request) bool {
	text := req.Text()
	lower := strings.ToLower(text)
	return containsAny(lower, textKeywords) ||
		containsAny(lower, analysisPhrases) ||
		quotedPattern.MatchString(text)
}

// Process implements core.Handler.
func (h *Text) Process(ctx context.Context, req core.Request) core.Outcome {
	text := req.Text()
	lower := strings.ToLower(text)
	target := extractTarget(text)

	switch {
	case containsAny(lower, []string{"sentiment", "emotion", "feeling", "positive", "negative"}):
		return h.sentiment(ctx, target)
	case containsAny(lower, []string{"count", "words", "characters", "length"}):
		return h.stats(ctx, target)
	case containsAny(lower, []string{"summarize", "summary"}):
		return h.summarize(ctx, target)
	case containsAny(lower, []string{"extract", "numbers", "find numbers"}):
		return h.extractNumbers(ctx, target)
	default:
		return h.general(ctx, target)
	}
}

// extractTarget finds the text to analyze: quoted text first, then text
// following a lead-in phrase, then the whole request.
func extractTarget(text string) string {
	if m := quotedCapture.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, re := range afterPhrases {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return text
}

func (h *Text) sentiment(ctx context.Context, target string) core.Outcome {
	result, err := h.registry.Call(ctx, tool.TextSentiment, map[string]any{"text": target})
	if err != nil {
		return core.ErrorOutcome(TextName, fmt.Sprintf("could not analyze the sentiment: %v", err))
	}
	s, ok := result.(tool.Sentiment)
	if !ok {
		return core.ErrorOutcome(TextName, "unexpected sentiment result type")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Sentiment of %q: %s (confidence %.0f%%)\n", util.Truncate(target, 100), s.Label, s.Confidence*100)
	fmt.Fprintf(&b, "Positive indicators: %d, negative indicators: %d", s.PositiveWords, s.NegativeWords)
	return core.NewOutcome(TextName, b.String(), s)
}

func (h *Text) stats(ctx context.Context, target string) core.Outcome {
	stats, err := h.countStats(ctx, target)
	if err != nil {
		return core.ErrorOutcome(TextName, fmt.Sprintf("could not count the text statistics: %v", err))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Statistics for %q: %d words, %d characters", util.Truncate(target, 100), stats.WordCount, stats.CharacterCount)
	if stats.WordCount > 0 {
		fmt.Fprintf(&b, ", %.1f characters per word", float64(stats.CharacterCount)/float64(stats.WordCount))
	}
	return core.NewOutcome(TextName, b.String(), stats)
}

func (h *Text) countStats(ctx context.Context, target string) (TextStats, error) {
	words, err := h.registry.Call(ctx, tool.TextWordCount, map[string]any{"text": target})
	if err != nil {
		return TextStats{}, err
	}
	chars, err := h.registry.Call(ctx, tool.TextCharacterCount, map[string]any{"text": target})
	if err != nil {
		return TextStats{}, err
	}
	wc, _ := words.(int)
	cc, _ := chars.(int)
	return TextStats{WordCount: wc, CharacterCount: cc, Text: target}, nil
}

func (h *Text) summarize(ctx context.Context, target string) core.Outcome {
	result, err := h.registry.Call(ctx, tool.TextSummarize, map[string]any{"text": target, "max_sentences": 3})
	if err != nil {
		return core.ErrorOutcome(TextName, fmt.Sprintf("could not summarize the text: %v", err))
	}
	summary, _ := result.(string)
	return core.NewOutcome(TextName, fmt.Sprintf("Summary: %s", summary), summary)
}

func (h *Text) extractNumbers(ctx context.Context, target string) core.Outcome {
	result, err := h.registry.Call(ctx, tool.TextExtractNumbers, map[string]any{"text": target})
	if err != nil {
		return core.ErrorOutcome(TextName, fmt.Sprintf("could not extract numbers: %v", err))
	}
	numbers, _ := result.([]float64)

	if len(numbers) == 0 {
		return core.NewOutcome(TextName, "No numbers found in the text", numbers)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d numbers: %v", len(numbers), numbers)
	if len(numbers) > 1 {
		var total float64
		for _, n := range numbers {
			total += n
		}
		fmt.Fprintf(&b, " (sum %g, average %.2f)", total, total/float64(len(numbers)))
	}
	return core.NewOutcome(TextName, b.String(), numbers)
}

// general runs the full analysis suite over the target text.
func (h *Text) general(ctx context.Context, target string) core.Outcome {
	stats, err := h.countStats(ctx, target)
	if err != nil {
		return core.ErrorOutcome(TextName, fmt.Sprintf("could not analyze the text: %v", err))
	}
	analysis := TextAnalysis{
		Sentiment: tool.AnalyzeSentiment(target),
		Stats:     stats,
		Numbers:   tool.ExtractNumbers(target),
		Text:      target,
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis of %q: %s sentiment (confidence %.0f%%), %d words, %d characters",
		util.Truncate(target, 100), analysis.Sentiment.Label, analysis.Sentiment.Confidence*100,
		stats.WordCount, stats.CharacterCount)
	if len(analysis.Numbers) > 0 {
		fmt.Fprintf(&b, ", numbers found: %v", analysis.Numbers)
	}
	return core.NewOutcome(TextName, b.String(), analysis)
}
