//go:build !integration

package engine

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"mindwell-companion/internal/domain/model"
)

func turn(t *testing.T, e *Engine, sc model.SessionContext, input string) (Result, model.SessionContext) {
	t.Helper()
	res := e.ProcessTurn(input, sc)
	return res, res.Context
}

func TestProcessTurnCrisisOverride(t *testing.T) {
	e := newTestEngine(t, 1)

	t.Run("should answer crisis language with the crisis text", func(t *testing.T) {
		res, sc := turn(t, e, model.NewSessionContext(), "I want to die")
		if res.Response != "crisis text" {
			t.Errorf("expected crisis responder text, got %q", res.Response)
		}
		if res.Topic != model.TopicCrisis {
			t.Errorf("expected crisis topic, got %q", res.Topic)
		}
		if res.Emotion != model.EmotionAlert {
			t.Errorf("expected alert emotion, got %q", res.Emotion)
		}
		if sc.LastTopic != model.TopicCrisis {
			t.Errorf("expected LastTopic crisis, got %q", sc.LastTopic)
		}
	})

	t.Run("should beat every other override", func(t *testing.T) {
		// Offensive and crisis language together: crisis wins.
		res, _ := turn(t, e, model.NewSessionContext(), "shut up, I want to die")
		if res.Topic != model.TopicCrisis {
			t.Errorf("expected crisis topic, got %q", res.Topic)
		}
	})

	t.Run("should reset the escalation counters", func(t *testing.T) {
		sc := model.NewSessionContext()
		sc.HelpCount = 2
		sc.DontKnowCount = 2
		sc.RepetitionCount = 1
		_, out := turn(t, e, sc, "I want to die")
		if out.HelpCount != 0 || out.DontKnowCount != 0 || out.RepetitionCount != 0 {
			t.Errorf("expected counters reset, got help=%d dontknow=%d rep=%d",
				out.HelpCount, out.DontKnowCount, out.RepetitionCount)
		}
	})
}

func TestProcessTurnOffensiveAndGibberish(t *testing.T) {
	e := newTestEngine(t, 2)

	t.Run("offensive input should keep the current topic", func(t *testing.T) {
		sc := model.NewSessionContext()
		_, sc = turn(t, e, sc, "i am so stressed about work")
		res, out := turn(t, e, sc, "oh shut up")
		if res.Topic != model.TopicStress {
			t.Errorf("expected topic to stay stress, got %q", res.Topic)
		}
		if res.Emotion != model.EmotionCalm {
			t.Errorf("expected calm emotion for offensive input, got %q", res.Emotion)
		}
		if out.LastInput != "oh shut up" {
			t.Errorf("expected LastInput updated, got %q", out.LastInput)
		}
	})

	t.Run("gibberish should not advance LastInput", func(t *testing.T) {
		sc := model.NewSessionContext()
		_, sc = turn(t, e, sc, "i am so stressed about work")
		before := sc.LastInput
		res, out := turn(t, e, sc, "xjkvbnmlpq")
		if res.Emotion != model.EmotionListening {
			t.Errorf("expected listening emotion, got %q", res.Emotion)
		}
		if out.LastInput != before {
			t.Errorf("expected LastInput unchanged, got %q", out.LastInput)
		}
	})
}

func TestProcessTurnRepetition(t *testing.T) {
	e := newTestEngine(t, 4)

	t.Run("third identical message should get the repetition response", func(t *testing.T) {
		sc := model.NewSessionContext()
		var res Result
		res, sc = turn(t, e, sc, "i am so stressed about work")
		if res.Topic != model.TopicStress {
			t.Fatalf("expected stress on first turn, got %q", res.Topic)
		}
		res, sc = turn(t, e, sc, "i am so stressed about work")
		if res.Topic != model.TopicStress {
			t.Fatalf("expected stress on second turn, got %q", res.Topic)
		}
		res, sc = turn(t, e, sc, "i am so stressed about work")
		if sc.RepetitionCount != 2 {
			t.Errorf("expected repetition count 2, got %d", sc.RepetitionCount)
		}
		if res.Topic != model.TopicStress {
			t.Errorf("repetition response keeps the topic, got %q", res.Topic)
		}
		want := e.lib.Responses(KeyRepetition)
		if !containsString(want, res.Response) {
			t.Errorf("expected a repetition template, got %q", res.Response)
		}
	})

	t.Run("a different message should reset the count", func(t *testing.T) {
		sc := model.NewSessionContext()
		_, sc = turn(t, e, sc, "i am so stressed about work")
		_, sc = turn(t, e, sc, "i am so stressed about work")
		_, sc = turn(t, e, sc, "i feel sad as well")
		if sc.RepetitionCount != 0 {
			t.Errorf("expected repetition count 0 after new input, got %d", sc.RepetitionCount)
		}
	})

	t.Run("short inputs should never count as repetition", func(t *testing.T) {
		sc := model.NewSessionContext()
		for i := 0; i < 4; i++ {
			_, sc = turn(t, e, sc, "yes")
		}
		if sc.RepetitionCount != 0 {
			t.Errorf("expected no repetition tracking for short input, got %d", sc.RepetitionCount)
		}
	})
}

func TestProcessTurnHelpEscalation(t *testing.T) {
	e := newTestEngine(t, 5)
	sc := model.NewSessionContext()

	res, sc := turn(t, e, sc, "help")
	if !containsString(e.lib.Responses(KeyHelpOne), res.Response) {
		t.Fatalf("first help should use tier one, got %q", res.Response)
	}
	if res.Emotion != model.EmotionConcerned {
		t.Errorf("expected concerned emotion, got %q", res.Emotion)
	}

	res, sc = turn(t, e, sc, "help")
	if !containsString(e.lib.Responses(KeyHelpTwo), res.Response) {
		t.Fatalf("second help should use tier two, got %q", res.Response)
	}

	// The third bare "help" escalates to the crisis protocol, even though the
	// input is also a repetition.
	res, sc = turn(t, e, sc, "help")
	if res.Response != "crisis text" {
		t.Fatalf("third help should escalate to crisis, got %q", res.Response)
	}
	if res.Topic != model.TopicCrisis {
		t.Errorf("expected crisis topic, got %q", res.Topic)
	}
	if sc.HelpCount != 0 {
		t.Errorf("expected help count reset after escalation, got %d", sc.HelpCount)
	}
}

func TestProcessTurnHelpCounterResetByMeaningfulTopic(t *testing.T) {
	e := newTestEngine(t, 6)
	sc := model.NewSessionContext()

	_, sc = turn(t, e, sc, "help")
	if sc.HelpCount != 1 {
		t.Fatalf("expected help count 1, got %d", sc.HelpCount)
	}
	_, sc = turn(t, e, sc, "i am so stressed about my exams")
	if sc.HelpCount != 0 {
		t.Fatalf("expected help count cleared by meaningful topic, got %d", sc.HelpCount)
	}
	res, _ := turn(t, e, sc, "help")
	if !containsString(e.lib.Responses(KeyHelpOne), res.Response) {
		t.Errorf("help after a meaningful topic should restart at tier one, got %q", res.Response)
	}
}

func TestProcessTurnUncertaintyLadder(t *testing.T) {
	e := newTestEngine(t, 8)
	sc := model.NewSessionContext()

	keys := []string{KeyUncertaintyOne, KeyUncertaintyTwo, KeyUncertaintyAck}
	for i, key := range keys {
		var res Result
		res, sc = turn(t, e, sc, "idk")
		if !containsString(e.lib.Responses(key), res.Response) {
			t.Fatalf("uncertainty #%d should use %s, got %q", i+1, key, res.Response)
		}
		if res.Topic != model.TopicListening {
			t.Errorf("uncertainty keeps the listening topic, got %q", res.Topic)
		}
	}
	// The ladder stays on acknowledgement once exhausted.
	res, _ := turn(t, e, sc, "idk")
	if !containsString(e.lib.Responses(KeyUncertaintyAck), res.Response) {
		t.Errorf("fourth uncertainty should stay on acknowledgement, got %q", res.Response)
	}
}

func TestProcessTurnClarificationAlternates(t *testing.T) {
	e := newTestEngine(t, 9)
	sc := model.NewSessionContext()

	res, sc := turn(t, e, sc, "the weather over the mountains looks quite unusual this evening")
	if !containsString(e.lib.Responses(KeyClarification), res.Response) {
		t.Fatalf("first unknown input should ask for clarification, got %q", res.Response)
	}
	if !sc.ClarificationAsked {
		t.Fatal("expected clarification flag set")
	}

	res, sc = turn(t, e, sc, "several pigeons gathered around the fountain near the old library")
	if !containsString(e.lib.Responses(string(model.TopicListening)), res.Response) {
		t.Fatalf("second unknown input should fall back to listening, got %q", res.Response)
	}
	if sc.ClarificationAsked {
		t.Fatal("expected clarification flag cleared")
	}

	res, _ = turn(t, e, sc, "the train schedules changed again without any announcement whatsoever today")
	if !containsString(e.lib.Responses(KeyClarification), res.Response) {
		t.Errorf("third unknown input should ask for clarification again, got %q", res.Response)
	}
}

func TestProcessTurnContinuation(t *testing.T) {
	e := newTestEngine(t, 10)

	t.Run("should stay on a meaningful topic", func(t *testing.T) {
		sc := model.NewSessionContext()
		_, sc = turn(t, e, sc, "i am so stressed about work")
		res, _ := turn(t, e, sc, "yes")
		if res.Topic != model.TopicStress {
			t.Errorf("expected continuation on stress, got %q", res.Topic)
		}
	})

	t.Run("should fall back to listening without a topic", func(t *testing.T) {
		res, _ := turn(t, e, model.NewSessionContext(), "yes")
		if res.Topic != model.TopicListening {
			t.Errorf("expected listening topic, got %q", res.Topic)
		}
	})

	t.Run("should never continue the crisis topic", func(t *testing.T) {
		sc := model.NewSessionContext()
		_, sc = turn(t, e, sc, "I want to die")
		res, _ := turn(t, e, sc, "yes")
		if res.Topic != model.TopicListening {
			t.Errorf("expected listening after crisis, got %q", res.Topic)
		}
	})
}

func TestProcessTurnTopicRouting(t *testing.T) {
	e := newTestEngine(t, 12)
	cases := []struct {
		in    string
		topic model.Topic
	}{
		{"i am so stressed about my exams", model.TopicStress},
		{"i have been feeling quite overwhelmed with everything happening at my workplace lately", model.TopicStress},
		{"i feel sad and lonely tonight", model.TopicSadness},
		{"everything makes me angry lately friend", model.TopicAnger},
		{"i keep procrastinating on everything i planned", model.TopicMotivation},
		{"can we do a breathing exercise", model.TopicCalm},
		{"share some gita wisdom", model.TopicGita},
		{"hello", model.TopicNeutral},
		{"what should i do now", model.TopicMotivation},
	}
	for _, c := range cases {
		res, _ := turn(t, e, model.NewSessionContext(), c.in)
		if res.Topic != c.topic {
			t.Errorf("ProcessTurn(%q) topic = %q, want %q", c.in, res.Topic, c.topic)
		}
		if res.Emotion != EmotionFor(c.topic) {
			t.Errorf("ProcessTurn(%q) emotion = %q, want %q", c.in, res.Emotion, EmotionFor(c.topic))
		}
	}
}

func TestProcessTurnDoesNotMutateInputContext(t *testing.T) {
	e := newTestEngine(t, 13)
	sc := model.NewSessionContext()
	_, sc = turn(t, e, sc, "i am so stressed about work")

	snapshot := sc.Clone()
	_ = e.ProcessTurn("i feel sad and lonely tonight", sc)
	if !reflect.DeepEqual(snapshot, sc) {
		t.Error("ProcessTurn mutated the caller's context snapshot")
	}
}

func TestSessionContextJSONRoundTrip(t *testing.T) {
	e := newTestEngine(t, 14)
	sc := model.NewSessionContext()
	for _, in := range []string{"hello", "i am so stressed about work", "yes", "idk"} {
		_, sc = turn(t, e, sc, in)
	}

	b, err := json.Marshal(sc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back model.SessionContext
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(sc, back) {
		t.Errorf("round trip changed the context:\n got %+v\nwant %+v", back, sc)
	}
}

func TestSuggestionsForEveryTopic(t *testing.T) {
	for _, topic := range model.Topics {
		s := SuggestionsFor(topic)
		if len(s) < 1 || len(s) > 4 {
			t.Errorf("topic %q has %d suggestions, want 1..4", topic, len(s))
		}
		for i, v := range s {
			if v == "" {
				t.Errorf("topic %q suggestion %d is empty", topic, i)
			}
		}
	}
}

func TestEmotionForUnmappedTopicDefaults(t *testing.T) {
	if got := EmotionFor(model.TopicListening); got != model.EmotionListening {
		t.Errorf("expected listening default, got %q", got)
	}
	if got := EmotionFor(model.Topic("bogus")); got != model.EmotionListening {
		t.Errorf("expected listening default for unmapped topic, got %q", got)
	}
}

func TestProcessTurnEmptyInput(t *testing.T) {
	e := newTestEngine(t, 15)
	res, _ := turn(t, e, model.NewSessionContext(), "   ")
	if res.Response == "" {
		t.Error("expected a response even for whitespace input")
	}
	if res.Topic != model.TopicListening {
		t.Errorf("expected listening topic for empty input, got %q", res.Topic)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Sanity: two engines with the same seed walk identical deck orders.
func TestDeterministicWithSeed(t *testing.T) {
	e1 := newTestEngine(t, 42)
	e2 := newTestEngine(t, 42)
	sc1 := model.NewSessionContext()
	sc2 := model.NewSessionContext()
	for i := 0; i < 10; i++ {
		in := fmt.Sprintf("i am so stressed about day %d", i)
		r1, r2 := e1.ProcessTurn(in, sc1), e2.ProcessTurn(in, sc2)
		sc1, sc2 = r1.Context, r2.Context
		if r1.Response != r2.Response {
			t.Fatalf("seeded engines diverged at turn %d: %q vs %q", i, r1.Response, r2.Response)
		}
	}
}
