package engine

import (
	"regexp"
	"strings"

	"mindwell-companion/internal/domain/model"
)

// The resolver walks an explicit ordered rule list and returns the first
// match. The order is part of the contract: a bare "help" must win over the
// generic stress keywords, safety-neutral small talk over topic routing.

type intentRule struct {
	intent model.Intent
	match  func(norm string) bool
}

var (
	helpPattern      = regexp.MustCompile(`^(?:please |can you )?help(?: me)?(?: please)?$`)
	greetingPattern  = regexp.MustCompile(`^(?:hi|hello|hey|howdy|namaste|good (?:morning|afternoon|evening))\b`)
	uncertainPattern = regexp.MustCompile(`\b(?:idk|dunno|no idea|not sure|don'?t know)\b`)
	stepPattern      = regexp.MustCompile(`\b(?:what (?:should|do|can) i do|where do i (?:start|begin)|how do i start|(?:give me |one )?small step|first step)\b`)
)

var continuationWords = map[string]struct{}{
	"yes": {}, "yeah": {}, "yep": {}, "ok": {}, "okay": {}, "sure": {},
	"go on": {}, "tell me more": {}, "more": {}, "continue": {}, "and": {},
	"please do": {}, "hmm": {}, "mm": {},
}

func containsWord(norm string, words ...string) bool {
	padded := " " + norm + " "
	for _, w := range words {
		if strings.Contains(padded, " "+w+" ") {
			return true
		}
	}
	return false
}

func containsStem(norm string, stems ...string) bool {
	for _, s := range stems {
		if strings.Contains(norm, s) {
			return true
		}
	}
	return false
}

var intentRules = []intentRule{
	{model.IntentAskHelpGeneral, func(n string) bool {
		return helpPattern.MatchString(n) || containsStem(n, "need help", "need your help")
	}},
	{model.IntentExpressUncertainty, func(n string) bool {
		return uncertainPattern.MatchString(n)
	}},
	{model.IntentAskMotivationStep, func(n string) bool {
		return stepPattern.MatchString(n)
	}},
	{model.IntentRequestBreathing, func(n string) bool {
		return containsStem(n, "breath")
	}},
	{model.IntentAskGitaWisdom, func(n string) bool {
		return containsStem(n, "gita", "krishna", "bhagavad", "shloka") || containsWord(n, "wisdom", "verse")
	}},
	{model.IntentGreeting, func(n string) bool {
		return greetingPattern.MatchString(n) && len(strings.Fields(n)) <= 3
	}},
	{model.IntentSimpleContinuation, func(n string) bool {
		_, ok := continuationWords[n]
		return ok
	}},
	{model.IntentExpressStress, func(n string) bool {
		return containsStem(n, "stress", "overwhelm", "anxi", "panic", "burnout", "burned out", "burnt out") ||
			containsWord(n, "pressure", "deadline", "exams", "exam")
	}},
	{model.IntentExpressSadness, func(n string) bool {
		return containsStem(n, "sad", "depress", "lonel", "cry", "miserable", "heartbroken", "grief") ||
			containsWord(n, "alone", "empty", "down")
	}},
	{model.IntentExpressAnger, func(n string) bool {
		return containsStem(n, "anger", "angry", "furious", "rage", "frustrat", "irritat", "annoy") ||
			containsWord(n, "mad")
	}},
	{model.IntentExpressMotivation, func(n string) bool {
		return containsStem(n, "motivat", "procrastinat", "giving up", "give up", "no energy", "can't focus", "cant focus") ||
			containsWord(n, "lazy", "pointless", "stuck")
	}},
	{model.IntentSimpleStatement, func(n string) bool {
		return len(strings.Fields(n)) <= 4
	}},
}

// ResolveIntent maps normalized text to the first matching intent tag and
// falls through to unknown when nothing matches.
func ResolveIntent(norm string) model.Intent {
	for _, rule := range intentRules {
		if rule.match(norm) {
			return rule.intent
		}
	}
	return model.IntentUnknown
}
