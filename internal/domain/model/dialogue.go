package model

// Topic is the closed set of conversation topics the dialogue engine routes
// between. LastTopic in the session context always holds one of these.
type Topic string

const (
	TopicNone       Topic = "none"
	TopicStress     Topic = "stress"
	TopicSadness    Topic = "sadness"
	TopicMotivation Topic = "motivation"
	TopicAnger      Topic = "anger"
	TopicGita       Topic = "gita"
	TopicCalm       Topic = "calm"
	TopicListening  Topic = "listening"
	TopicCrisis     Topic = "crisis"
	TopicNeutral    Topic = "neutral"
)

// Topics lists every topic in the enumeration.
var Topics = []Topic{
	TopicNone, TopicStress, TopicSadness, TopicMotivation, TopicAnger,
	TopicGita, TopicCalm, TopicListening, TopicCrisis, TopicNeutral,
}

// Meaningful reports whether reaching this topic resets the escalation
// counters. Listening-style topics keep them running.
func (t Topic) Meaningful() bool {
	switch t {
	case TopicStress, TopicSadness, TopicMotivation, TopicAnger, TopicGita, TopicCalm, TopicCrisis:
		return true
	}
	return false
}

// Intent is the closed set of symbolic tags the resolver can assign to a
// normalized message. The resolver's predicate order is part of the contract.
type Intent string

const (
	IntentAskHelpGeneral     Intent = "ask_for_help_general"
	IntentExpressUncertainty Intent = "express_uncertainty"
	IntentAskMotivationStep  Intent = "ask_for_motivation_step"
	IntentGreeting           Intent = "simple_greeting"
	IntentSimpleStatement    Intent = "simple_statement"
	IntentSimpleContinuation Intent = "simple_continuation"
	IntentExpressStress      Intent = "express_stress"
	IntentExpressSadness     Intent = "express_sadness"
	IntentExpressMotivation  Intent = "express_motivation"
	IntentExpressAnger       Intent = "express_anger"
	IntentRequestBreathing   Intent = "request_breathing"
	IntentAskGitaWisdom      Intent = "ask_for_gita_wisdom"
	IntentUnknown            Intent = "unknown"
)

// Emotion is the avatar display emotion returned with every turn.
type Emotion string

const (
	EmotionListening   Emotion = "listening"
	EmotionConcerned   Emotion = "concerned"
	EmotionCalm        Emotion = "calm"
	EmotionEncouraging Emotion = "encouraging"
	EmotionWarm        Emotion = "warm"
	EmotionSerene      Emotion = "serene"
	EmotionAlert       Emotion = "alert"
)

// Sentiment is the coarse polarity annotation attached to a turn record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)
