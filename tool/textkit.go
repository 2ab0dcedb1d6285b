package tool

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Text tool names.
const (
	TextWordCount      = "text.word_count"
	TextCharacterCount = "text.character_count"
	TextSentiment      = "text.sentiment_analysis"
	TextExtractNumbers = "text.extract_numbers"
	TextSummarize      = "text.summarize"
)

// Sentiment is the structured result of a sentiment analysis.
type Sentiment struct {
	Text          string  `json:"text"`
	Label         string  `json:"sentiment"` // positive, negative or neutral
	Confidence    float64 `json:"confidence"`
	PositiveWords int     `json:"positive_words_found"`
	NegativeWords int     `json:"negative_words_found"`
	TotalWords    int     `json:"total_words"`
}

var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "amazing": true, "wonderful": true,
	"fantastic": true, "love": true, "like": true, "enjoy": true, "happy": true,
	"pleased": true, "satisfied": true, "awesome": true, "brilliant": true, "perfect": true,
	"beautiful": true, "nice": true, "best": true, "superb": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "horrible": true, "hate": true,
	"dislike": true, "sad": true, "angry": true, "upset": true, "disappointed": true,
	"frustrated": true, "annoyed": true, "worst": true, "ugly": true, "boring": true,
	"stupid": true, "ridiculous": true, "pathetic": true,
}

var (
	wordPattern      = regexp.MustCompile(`\b\w+\b`)
	numberPattern    = regexp.MustCompile(`-?\d+\.?\d*`)
	sentenceSplit    = regexp.MustCompile(`[.!?]+`)
	defaultSentences = 3
)

func textSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required": []string{"text"},
	}
}

func textArg(args map[string]any) (string, error) {
	text, ok := args["text"].(string)
	if !ok {
		return "", fmt.Errorf("argument text must be a string")
	}
	return text, nil
}

// RegisterTextKit wires the text analysis tools into a registry: word and
// character counting, lexicon-based sentiment scoring, number extraction and
// leading-sentence summarization.
func RegisterTextKit(reg *Registry) {
	reg.MustRegister(
		NewFunctionTool(TextWordCount, "Count words in text", textSchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				text, err := textArg(args)
				if err != nil {
					return nil, err
				}
				return len(strings.Fields(text)), nil
			}),
		NewFunctionTool(TextCharacterCount, "Count characters in text", textSchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				text, err := textArg(args)
				if err != nil {
					return nil, err
				}
				return len([]rune(text)), nil
			}),
		NewFunctionTool(TextSentiment, "Score text sentiment against positive/negative word lists", textSchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				text, err := textArg(args)
				if err != nil {
					return nil, err
				}
				return AnalyzeSentiment(text), nil
			}),
		NewFunctionTool(TextExtractNumbers, "Extract all numbers from text", textSchema(),
			func(_ context.Context, args map[string]any) (any, error) {
				text, err := textArg(args)
				if err != nil {
					return nil, err
				}
				return ExtractNumbers(text), nil
			}),
		NewFunctionTool(TextSummarize, "Summarize text by its leading sentences",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":          map[string]any{"type": "string"},
					"max_sentences": map[string]any{"type": "integer"},
				},
				"required": []string{"text"},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				text, err := textArg(args)
				if err != nil {
					return nil, err
				}
				max := defaultSentences
				if n, ok := toFloat(args["max_sentences"]); ok && n > 0 {
					max = int(n)
				}
				return Summarize(text, max), nil
			}),
	)
}

// AnalyzeSentiment scores text against the positive/negative lexicons. Equal
// counts (including zero hits) yield a neutral label at 0.5 confidence.
func AnalyzeSentiment(text string) Sentiment {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	var pos, neg int
	for _, w := range words {
		if positiveWords[w] {
			pos++
		}
		if negativeWords[w] {
			neg++
		}
	}

	s := Sentiment{Text: text, PositiveWords: pos, NegativeWords: neg, TotalWords: len(words)}
	switch {
	case pos > neg:
		s.Label = "positive"
		s.Confidence = round2(float64(pos) / float64(pos+neg+1))
	case neg > pos:
		s.Label = "negative"
		s.Confidence = round2(float64(neg) / float64(pos+neg+1))
	default:
		s.Label = "neutral"
		s.Confidence = 0.5
	}
	return s
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ExtractNumbers returns every number appearing in the text, in order.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	numbers := make([]float64, 0, len(matches))
	for _, m := range matches {
		if n, err := strconv.ParseFloat(m, 64); err == nil {
			numbers = append(numbers, n)
		}
	}
	return numbers
}

// Summarize returns the first maxSentences sentences of the text.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = defaultSentences
	}
	raw := sentenceSplit.Split(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) > maxSentences {
		sentences = sentences[:maxSentences]
	}
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}
