package engine

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/domain/ports/adapter"
)

// Engine is the context-aware response rule engine. It performs no I/O: a
// turn takes a session context snapshot and returns a new one, so concurrent
// requests for different users never share state. The only internal mutable
// state is the RNG, guarded by a mutex.
type Engine struct {
	lib    *Library
	crisis adapter.CrisisResponder
	log    *zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Result is everything one processed turn produces.
type Result struct {
	Response    string
	Topic       model.Topic
	Intent      model.Intent
	Emotion     model.Emotion
	Sentiment   model.Sentiment
	Suggestions []string
	Context     model.SessionContext
}

type Option func(*Engine)

// WithRand overrides the RNG source; tests use it for deterministic decks.
func WithRand(src rand.Source) Option {
	return func(e *Engine) { e.rng = rand.New(src) }
}

func NewEngine(lib *Library, crisis adapter.CrisisResponder, logger *zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		lib:    lib,
		crisis: crisis,
		log:    logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// minRepetitionLen keeps trivial inputs ("ok", "yes") out of the repetition
// protocol.
const minRepetitionLen = 4

// ProcessTurn runs one message through the pipeline:
//
//	crisis -> offensive -> gibberish -> repetition -> intent routing
//
// Safety overrides come first so that crisis language is never masked by
// repetition bookkeeping.
func (e *Engine) ProcessTurn(input string, sc model.SessionContext) Result {
	sc = sc.Clone()
	norm := Normalize(input)
	sentiment := SentimentOf(input)

	if DetectCrisis(input) {
		return e.crisisResult(norm, sentiment, &sc)
	}

	if IsOffensive(input) {
		sc.LastInput = norm
		return e.finish(e.selectResponse(KeyOffensive, &sc), sc.LastTopic, model.IntentUnknown,
			model.EmotionCalm, sentiment, sc)
	}

	if IsGibberish(input) {
		// Gibberish does not advance LastInput, so mashing keys twice does
		// not count as repeating yourself.
		return e.finish(e.selectResponse(KeyGibberish, &sc), sc.LastTopic, model.IntentUnknown,
			model.EmotionListening, sentiment, sc)
	}

	repeated := norm != "" && len(norm) >= minRepetitionLen && norm == sc.LastInput
	if repeated {
		sc.RepetitionCount++
	} else {
		sc.RepetitionCount = 0
	}
	sc.LastInput = norm

	intent := ResolveIntent(norm)
	if intent != model.IntentUnknown {
		sc.ClarificationAsked = false
	}

	// The escalation counters own their intents: a third bare "help" must
	// reach the crisis tier, not the generic repetition response.
	if sc.RepetitionCount >= 2 &&
		intent != model.IntentAskHelpGeneral && intent != model.IntentExpressUncertainty {
		return e.finish(e.selectResponse(KeyRepetition, &sc), sc.LastTopic, intent,
			model.EmotionListening, sentiment, sc)
	}

	var (
		response string
		topic    model.Topic
		emotion  model.Emotion
	)

	switch intent {
	case model.IntentAskHelpGeneral:
		sc.HelpCount++
		switch {
		case sc.HelpCount >= 3:
			return e.crisisResult(norm, sentiment, &sc)
		case sc.HelpCount == 2:
			response, topic = e.selectResponse(KeyHelpTwo, &sc), model.TopicListening
		default:
			response, topic = e.selectResponse(KeyHelpOne, &sc), model.TopicListening
		}
		emotion = model.EmotionConcerned

	case model.IntentExpressUncertainty:
		sc.DontKnowCount++
		switch {
		case sc.DontKnowCount >= 3:
			response = e.selectResponse(KeyUncertaintyAck, &sc)
		case sc.DontKnowCount == 2:
			response = e.selectResponse(KeyUncertaintyTwo, &sc)
		default:
			response = e.selectResponse(KeyUncertaintyOne, &sc)
		}
		topic, emotion = model.TopicListening, model.EmotionListening

	case model.IntentAskMotivationStep:
		response, topic = e.selectResponse(KeyMotivationStep, &sc), model.TopicMotivation

	case model.IntentGreeting:
		response, topic = e.selectResponse(KeyGreeting, &sc), model.TopicNeutral

	case model.IntentSimpleContinuation:
		if sc.LastTopic.Meaningful() && sc.LastTopic != model.TopicCrisis {
			response, topic = e.selectResponse(string(sc.LastTopic), &sc), sc.LastTopic
		} else {
			response, topic = e.selectResponse(string(model.TopicListening), &sc), model.TopicListening
		}

	case model.IntentExpressStress:
		response, topic = e.selectResponse(string(model.TopicStress), &sc), model.TopicStress
	case model.IntentExpressSadness:
		response, topic = e.selectResponse(string(model.TopicSadness), &sc), model.TopicSadness
	case model.IntentExpressAnger:
		response, topic = e.selectResponse(string(model.TopicAnger), &sc), model.TopicAnger
	case model.IntentExpressMotivation:
		response, topic = e.selectResponse(string(model.TopicMotivation), &sc), model.TopicMotivation
	case model.IntentRequestBreathing:
		response, topic = e.selectResponse(string(model.TopicCalm), &sc), model.TopicCalm
	case model.IntentAskGitaWisdom:
		response, topic = e.selectResponse(string(model.TopicGita), &sc), model.TopicGita

	case model.IntentSimpleStatement:
		response, topic = e.selectResponse(string(model.TopicListening), &sc), model.TopicListening

	default: // unknown
		if !sc.ClarificationAsked {
			sc.ClarificationAsked = true
			response = e.selectResponse(KeyClarification, &sc)
		} else {
			sc.ClarificationAsked = false
			response = e.selectResponse(string(model.TopicListening), &sc)
		}
		topic = model.TopicListening
	}

	if emotion == "" {
		emotion = EmotionFor(topic)
	}
	if topic.Meaningful() {
		sc.ResetCounters()
	}
	return e.finish(response, topic, intent, emotion, sentiment, sc)
}

func (e *Engine) crisisResult(norm string, sentiment model.Sentiment, sc *model.SessionContext) Result {
	sc.LastInput = norm
	sc.ResetCounters()
	sc.RepetitionCount = 0
	return e.finish(e.crisis.Text(), model.TopicCrisis, model.IntentUnknown,
		model.EmotionAlert, sentiment, *sc)
}

func (e *Engine) finish(response string, topic model.Topic, intent model.Intent,
	emotion model.Emotion, sentiment model.Sentiment, sc model.SessionContext) Result {
	sc.LastTopic = topic
	return Result{
		Response:    response,
		Topic:       topic,
		Intent:      intent,
		Emotion:     emotion,
		Sentiment:   sentiment,
		Suggestions: SuggestionsFor(topic),
		Context:     sc,
	}
}
