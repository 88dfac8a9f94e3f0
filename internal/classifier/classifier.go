// Package classifier implements the rule-based sentiment/intent/user-type
// detection used for blog comments and chatbot messages. It is a pure
// keyword matcher: no state, no external calls, identical input always
// yields identical output.
package classifier

import "strings"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

type Intent string

const (
	IntentPurchase  Intent = "purchase"
	IntentInquiry   Intent = "inquiry"
	IntentComplaint Intent = "complaint"
	IntentGreeting  Intent = "greeting"
	IntentBooking   Intent = "booking"
	IntentGeneral   Intent = "general"
)

type UserType string

const (
	UserTypeB2B     UserType = "b2b"
	UserTypeB2C     UserType = "b2c"
	UserTypeUnknown UserType = "unknown"
)

// intentOrder fixes the iteration order so tie detection is deterministic.
var intentOrder = []Intent{
	IntentPurchase, IntentInquiry, IntentComplaint, IntentGreeting, IntentBooking,
}

type Result struct {
	Sentiment       Sentiment
	Intent          Intent
	UserType        UserType
	Tags            []string
	ConversionScore float64
}

const (
	scoreBase             = 0.3
	scorePurchaseBonus    = 0.3
	scorePositiveBonus    = 0.15
	scoreNoPainPointBonus = 0.1
)

// Classify lower-cases the text and counts substring occurrences against the
// fixed keyword tables. The highest count wins in each dimension; any tie,
// including the all-zero case, falls back to the neutral default.
func Classify(text string) Result {
	lowered := strings.ToLower(text)

	return Result{
		Sentiment:       classifySentiment(lowered),
		Intent:          classifyIntent(lowered),
		UserType:        classifyUserType(lowered),
		Tags:            extractTags(lowered),
		ConversionScore: conversionScore(lowered),
	}
}

func classifySentiment(text string) Sentiment {
	positive := countOccurrences(text, positiveKeywords)
	negative := countOccurrences(text, negativeKeywords)

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func classifyIntent(text string) Intent {
	best := IntentGeneral
	bestCount := 0
	tied := false

	for _, intent := range intentOrder {
		count := countOccurrences(text, intentKeywords[intent])
		if count > bestCount {
			best = intent
			bestCount = count
			tied = false
		} else if count == bestCount && count > 0 {
			tied = true
		}
	}

	if bestCount == 0 || tied {
		return IntentGeneral
	}
	return best
}

func classifyUserType(text string) UserType {
	b2b := countOccurrences(text, b2bKeywords)
	b2c := countOccurrences(text, b2cKeywords)

	switch {
	case b2b > b2c:
		return UserTypeB2B
	case b2c > b2b:
		return UserTypeB2C
	default:
		return UserTypeUnknown
	}
}

func extractTags(text string) []string {
	var tags []string
	seen := make(map[string]bool)

	for _, dict := range [][]string{symptomKeywords, productKeywords, contextKeywords} {
		for _, kw := range dict {
			if strings.Contains(text, kw) && !seen[kw] {
				tags = append(tags, kw)
				seen[kw] = true
			}
		}
	}

	return tags
}

// conversionScore is a heuristic, not a prediction: a base value nudged up
// for purchase intent and positive sentiment, and again when no pain-point
// keyword is present.
func conversionScore(text string) float64 {
	score := scoreBase

	if classifyIntent(text) == IntentPurchase {
		score += scorePurchaseBonus
	}
	if classifySentiment(text) == SentimentPositive {
		score += scorePositiveBonus
	}
	if countOccurrences(text, painPointKeywords) == 0 {
		score += scoreNoPainPointBonus
	}

	if score > 1 {
		score = 1
	}
	return score
}

func countOccurrences(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, strings.ToLower(kw))
	}
	return total
}
