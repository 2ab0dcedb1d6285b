package util

// Truncate shortens text to maxLen runes appending an ellipsis when trimmed.
// Used when echoing analyzed text back in handler responses.
func Truncate(text string, maxLen int) string {
	if maxLen <= 3 {
		maxLen = 3
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen-3]) + "..."
}
