package engine

import (
	"regexp"
	"strings"

	"mindwell-companion/internal/domain/model"
)

// Lexical classifiers. All of them are pure, total functions over any string
// input: the empty string is a valid, non-offensive, non-crisis, non-gibberish,
// neutral message.

var (
	normalizeStrip = regexp.MustCompile(`[^a-z0-9' ]+`)
	normalizeSpace = regexp.MustCompile(`\s+`)

	offensivePattern = regexp.MustCompile(`\b(?:fuck(?:ing|ed)?|shit|bitch|asshole|bastard|dumbass|moron|idiot|stupid)\b|\bshut up\b|\bhate you\b`)

	// Known gap carried over from the source behavior: negated phrasings like
	// "I don't want to hurt myself" still match.
	crisisPattern = regexp.MustCompile(`\b(?:suicide|suicidal|self[ -]?harm)\b|\bkill(?:ing)? myself\b|\bend (?:my life|it all)\b|\bhurt(?:ing)? myself\b|\bharm(?:ing)? myself\b|\bwan(?:t to|na) die\b|\bno reason to live\b|\bbetter off dead\b|\bcan't go on\b`)

	consonantRun = regexp.MustCompile(`[bcdfghjklmnpqrstvwxz]{5,}`)
)

// knownShortWords are short tokens that are real messages, not keyboard noise.
var knownShortWords = map[string]struct{}{
	"hi": {}, "yo": {}, "ok": {}, "no": {}, "na": {}, "ty": {}, "hm": {}, "mm": {},
	"k": {}, "i": {}, "me": {}, "ya": {},
}

var positiveWords = []string{
	"good", "great", "better", "happy", "glad", "thanks", "thank", "grateful",
	"hopeful", "calm", "relieved", "fine", "nice", "love", "awesome", "proud",
}

var negativeWords = []string{
	"sad", "bad", "worse", "terrible", "awful", "anxious", "stressed", "angry",
	"tired", "lonely", "depressed", "hopeless", "scared", "worried", "hate",
	"cry", "miserable", "exhausted", "hurt",
}

// Normalize lowercases, strips punctuation except apostrophes and collapses
// whitespace. Every classifier and the intent resolver operate on this form.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = normalizeStrip.ReplaceAllString(s, " ")
	s = normalizeSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// IsOffensive reports whether the text contains a word from the fixed
// offensive list, matched on word boundaries.
func IsOffensive(text string) bool {
	return offensivePattern.MatchString(Normalize(text))
}

// DetectCrisis reports whether the text contains crisis language.
func DetectCrisis(text string) bool {
	return crisisPattern.MatchString(Normalize(text))
}

// IsGibberish applies keyboard-noise heuristics: a very short unknown token,
// no vowels at all, low character diversity in a single burst, or a run of 5+
// consonants inside one word. All of them target mashing, not sentences: an
// ordinary long message reuses a 26-letter alphabet and must never match.
func IsGibberish(text string) bool {
	norm := Normalize(text)
	if norm == "" {
		return false
	}

	tokens := strings.Fields(norm)
	if len(tokens) == 1 && len(tokens[0]) <= 2 {
		_, known := knownShortWords[tokens[0]]
		return !known
	}

	// Keep spaces so consonant runs can't straddle a word boundary.
	letters := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			return r
		}
		return -1
	}, norm)
	compact := strings.ReplaceAll(letters, " ", "")
	if compact == "" {
		return false
	}

	if len(compact) >= 4 && !strings.ContainsAny(compact, "aeiou") {
		return true
	}
	if consonantRun.MatchString(letters) {
		return true
	}
	// Diversity only signals mashing within a single token. Sentences drive
	// the distinct/length ratio down with every word, so they are exempt.
	if len(tokens) == 1 && len(compact) >= 6 {
		distinct := map[rune]struct{}{}
		for _, r := range compact {
			distinct[r] = struct{}{}
		}
		if float64(len(distinct))/float64(len(compact)) < 0.34 {
			return true
		}
	}
	return false
}

// SentimentOf counts polarity keywords and returns the majority; ties and
// keyword-free inputs are neutral.
func SentimentOf(text string) model.Sentiment {
	norm := " " + Normalize(text) + " "
	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(norm, " "+w+" ")
	}
	for _, w := range negativeWords {
		neg += strings.Count(norm, " "+w+" ")
	}
	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
