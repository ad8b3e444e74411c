package model

// SessionContext is the per-user dialogue state. It lives for one login
// session, is stored as an opaque JSON blob by the session state repository,
// and is always reconstructible from an empty context plus the turn sequence.
//
// The engine receives a snapshot and returns a new snapshot; it never mutates
// state shared between users.
type SessionContext struct {
	LastTopic          Topic  `json:"last_topic"`
	LastInput          string `json:"last_input"`
	RepetitionCount    int    `json:"repetition_count"`
	HelpCount          int    `json:"help_count"`
	DontKnowCount      int    `json:"dont_know_count"`
	ClarificationAsked bool   `json:"clarification_asked"`

	// Decks holds the per-key remainder of a cyclic shuffle over template
	// indices: shuffled once, handed out front to back, reshuffled on
	// exhaustion. Guarantees no index repeats within a full cycle.
	Decks map[string][]int `json:"decks,omitempty"`
}

// NewSessionContext returns the empty initial context for a fresh login.
func NewSessionContext() SessionContext {
	return SessionContext{LastTopic: TopicNone}
}

// ResetCounters clears the escalation bookkeeping. Called whenever the
// conversation reaches a meaningful topic. RepetitionCount is not touched
// here: it resets on its own whenever the input stops repeating, so that an
// exact repeat is detected even across topic changes.
func (c *SessionContext) ResetCounters() {
	c.HelpCount = 0
	c.DontKnowCount = 0
}

// Clone returns a deep copy so callers can hand the engine a snapshot
// without sharing deck slices.
func (c SessionContext) Clone() SessionContext {
	cp := c
	if c.Decks != nil {
		cp.Decks = make(map[string][]int, len(c.Decks))
		for k, v := range c.Decks {
			cp.Decks[k] = append([]int(nil), v...)
		}
	}
	return cp
}
