package engine

import "mindwell-companion/internal/domain/model"

// Pure lookup tables keyed by topic. Any unmapped topic falls back to the
// listening emotion.

var emotionByTopic = map[model.Topic]model.Emotion{
	model.TopicStress:     model.EmotionConcerned,
	model.TopicSadness:    model.EmotionWarm,
	model.TopicMotivation: model.EmotionEncouraging,
	model.TopicAnger:      model.EmotionCalm,
	model.TopicGita:       model.EmotionSerene,
	model.TopicCalm:       model.EmotionSerene,
	model.TopicCrisis:     model.EmotionAlert,
	model.TopicNeutral:    model.EmotionWarm,
}

var suggestionsByTopic = map[model.Topic][]string{
	model.TopicNone: {
		"Tell me how you're feeling",
		"I'd like to vent",
	},
	model.TopicStress: {
		"Help me calm down",
		"What's one small step?",
		"I want to vent more",
		"Try a breathing exercise",
	},
	model.TopicSadness: {
		"I want to talk about it",
		"Share something uplifting",
		"Try a breathing exercise",
	},
	model.TopicMotivation: {
		"Give me one small step",
		"Why do I feel so stuck?",
		"Share some wisdom",
	},
	model.TopicAnger: {
		"Help me cool off",
		"I want to explain what happened",
		"Try a breathing exercise",
	},
	model.TopicGita: {
		"Share another verse",
		"How do I apply this?",
		"Talk about something else",
	},
	model.TopicCalm: {
		"Another breathing round",
		"I feel a bit better",
		"Talk about what started this",
	},
	model.TopicListening: {
		"Keep listening",
		"Ask me a question",
		"Suggest something to try",
	},
	model.TopicCrisis: {
		"Show emergency contacts",
		"Stay with me",
	},
	model.TopicNeutral: {
		"How was my day? Let me tell you",
		"I have something on my mind",
		"Share a calming thought",
	},
}

// EmotionFor derives the avatar display emotion for a topic.
func EmotionFor(topic model.Topic) model.Emotion {
	if e, ok := emotionByTopic[topic]; ok {
		return e
	}
	return model.EmotionListening
}

// SuggestionsFor returns up to four follow-up prompts for a topic.
func SuggestionsFor(topic model.Topic) []string {
	if s, ok := suggestionsByTopic[topic]; ok {
		return s
	}
	return suggestionsByTopic[model.TopicNone]
}
