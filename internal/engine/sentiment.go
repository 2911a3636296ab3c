package engine

import "strings"

// positiveWords/negativeWords are the word-count heuristic lexicon from the
// original prototype's analyze_sentiment, carried forward per §11
// SUPPLEMENTED FEATURES. This never feeds a scorer; it only annotates the
// comment ingestion response.
var (
	positiveWords = map[string]bool{
		"good": true, "great": true, "love": true, "awesome": true,
		"amazing": true, "excellent": true, "nice": true, "best": true,
		"fantastic": true, "perfect": true, "happy": true, "wonderful": true,
	}
	negativeWords = map[string]bool{
		"bad": true, "hate": true, "terrible": true, "worst": true,
		"awful": true, "boring": true, "poor": true, "disappointing": true,
		"annoying": true, "sad": true, "waste": true, "horrible": true,
	}
)

// analyzeSentiment classifies free text as positive/negative/neutral by a
// simple positive-minus-negative word count.
func analyzeSentiment(text string) string {
	if text == "" {
		return "neutral"
	}
	var score int
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?;:\"'")
		if positiveWords[w] {
			score++
		} else if negativeWords[w] {
			score--
		}
	}
	switch {
	case score > 0:
		return "positive"
	case score < 0:
		return "negative"
	default:
		return "neutral"
	}
}
