package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/taskmesh/core"
	"github.com/hupe1980/taskmesh/tool"
)

func newTextHandler(t *testing.T) *Text {
	t.Helper()
	reg := tool.NewRegistry()
	tool.RegisterTextKit(reg)
	return NewText(reg)
}

func TestText_CanHandle(t *testing.T) {
	h := newTextHandler(t)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"sentiment request", "Analyze the sentiment of this review", true},
		{"word count", "How many words are in this sentence?", true},
		{"quoted content", `What about "hello world"?`, true},
		{"unrelated", "Give me a random fact", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.CanHandle(core.NewRequest(tt.text, nil)))
		})
	}
}

func TestExtractTarget(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"quoted wins", `Analyze the sentiment of "I love this"`, "I love this"},
		{"after phrase", "analyze this text: the quick brown fox", "the quick brown fox"},
		{"whole message", "count everything here", "count everything here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTarget(tt.text))
		})
	}
}

func TestText_Process_Sentiment(t *testing.T) {
	h := newTextHandler(t)

	out := h.Process(context.Background(), core.NewRequest(`Analyze the sentiment of "I love this amazing product"`, nil))
	require.True(t, out.Success, out.Err)
	assert.Equal(t, TextName, out.Handler)

	s, ok := out.Payload.(tool.Sentiment)
	require.True(t, ok)
	assert.Equal(t, "positive", s.Label)
	assert.Contains(t, out.Content, "positive")
}

func TestText_Process_Stats(t *testing.T) {
	h := newTextHandler(t)

	out := h.Process(context.Background(), core.NewRequest(`Count words in "one two three"`, nil))
	require.True(t, out.Success, out.Err)

	stats, ok := out.Payload.(TextStats)
	require.True(t, ok)
	assert.Equal(t, 3, stats.WordCount)
	assert.Equal(t, 13, stats.CharacterCount)
}

func TestText_Process_Summarize(t *testing.T) {
	h := newTextHandler(t)

	out := h.Process(context.Background(), core.NewRequest(
		`Summarize "First point. Second point. Third point. Fourth point."`, nil))
	require.True(t, out.Success, out.Err)

	summary, ok := out.Payload.(string)
	require.True(t, ok)
	assert.Equal(t, "First point. Second point. Third point.", summary)
}

func TestText_Process_ExtractNumbers(t *testing.T) {
	h := newTextHandler(t)

	out := h.Process(context.Background(), core.NewRequest(`Extract numbers from "call 555 or 12"`, nil))
	require.True(t, out.Success, out.Err)

	numbers, ok := out.Payload.([]float64)
	require.True(t, ok)
	assert.Equal(t, []float64{555, 12}, numbers)
	assert.Contains(t, out.Content, "sum 567")
}

func TestText_Process_GeneralAnalysis(t *testing.T) {
	h := newTextHandler(t)

	out := h.Process(context.Background(), core.NewRequest("process this text: what a wonderful day", nil))
	require.True(t, out.Success, out.Err)

	analysis, ok := out.Payload.(TextAnalysis)
	require.True(t, ok)
	assert.Equal(t, "positive", analysis.Sentiment.Label)
	assert.Equal(t, 4, analysis.Stats.WordCount)
}

func TestText_Affinity(t *testing.T) {
	h := newTextHandler(t)
	a := h.Affinity()

	// Base plus one hit each for "sentiment" and "analyze".
	assert.InDelta(t, 1.0, a.Score("analyze the sentiment please"), 1e-9)
}
