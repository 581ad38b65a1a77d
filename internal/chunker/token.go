package chunker

import "strings"

// EstimateTokens approximates a token count at 1.33 tokens per word.
// Wikitext is already tokenized on whitespace, so word count is a close proxy.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	tokens := int(float64(len(strings.Fields(text))) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
