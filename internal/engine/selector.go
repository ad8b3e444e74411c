package engine

import (
	"mindwell-companion/internal/domain/model"
)

// FallbackResponse is returned whenever the resolved key has no registered
// templates. That situation is a configuration error: the engine logs it and
// answers anyway, because a chat turn must never fail outright.
const FallbackResponse = "I'm here with you. Tell me more about what's going on."

// selectResponse picks a template for key using the per-key cyclic shuffle
// deck held in the session context: shuffle the full index set once, hand the
// indices out front to back, reshuffle on exhaustion. No index repeats within
// a full cycle, and the reshuffle never puts the index just used back at the
// front.
func (e *Engine) selectResponse(key string, sc *model.SessionContext) string {
	templates := e.lib.Responses(key)
	if len(templates) == 0 {
		e.log.Error().Str("key", key).Msg("no templates registered; using fallback response")
		return FallbackResponse
	}

	if sc.Decks == nil {
		sc.Decks = make(map[string][]int)
	}
	deck := sc.Decks[key]
	if !deckValid(deck, len(templates)) {
		deck = e.shuffled(len(templates), -1)
	}

	idx := deck[0]
	deck = deck[1:]
	if len(deck) == 0 {
		deck = e.shuffled(len(templates), idx)
	}
	sc.Decks[key] = deck
	return templates[idx]
}

// deckValid rejects empty decks and decks minted against an older template
// file with more entries.
func deckValid(deck []int, n int) bool {
	if len(deck) == 0 {
		return false
	}
	for _, idx := range deck {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

// shuffled returns a fresh permutation of [0, n), keeping avoid off the front
// so a reshuffle can't cause an immediate repeat.
func (e *Engine) shuffled(n, avoid int) []int {
	e.mu.Lock()
	perm := e.rng.Perm(n)
	e.mu.Unlock()
	if n > 1 && perm[0] == avoid {
		perm[0], perm[n-1] = perm[n-1], perm[0]
	}
	return perm
}
