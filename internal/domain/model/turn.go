package model

import "time"

// ChatTurn is the immutable record of one processed message. Created by the
// chat use case, persisted by the history repository, truncated server-side to
// the most recent N per user by the retention worker.
type ChatTurn struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Input     string    `json:"input"`
	Response  string    `json:"response"`
	Topic     Topic     `json:"topic"`
	Emotion   Emotion   `json:"emotion"`
	Sentiment Sentiment `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}
