//go:build !integration

package web

import (
	"context"
	"time"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/engine"
)

type fakeUserUC struct {
	loginErr error
}

func (f *fakeUserUC) Login(_ context.Context, username string) (*model.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if username == "" || username == "   " {
		return nil, domain.ErrInvalidArgument
	}
	return model.NewUser("u-1", username), nil
}

type fakeChatUC struct {
	processErr error
	lastUser   string
	lastMsg    string
	ended      []string
	turns      []*model.ChatTurn
}

func (f *fakeChatUC) ProcessTurn(_ context.Context, username, message string) (*engine.Result, error) {
	f.lastUser, f.lastMsg = username, message
	if f.processErr != nil {
		return nil, f.processErr
	}
	if message == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &engine.Result{
		Response:    "I hear you.",
		Topic:       model.TopicListening,
		Intent:      model.IntentSimpleStatement,
		Emotion:     model.EmotionListening,
		Sentiment:   model.SentimentNeutral,
		Suggestions: []string{"Keep listening"},
	}, nil
}

func (f *fakeChatUC) History(_ context.Context, username string, limit int) ([]*model.ChatTurn, error) {
	var out []*model.ChatTurn
	for _, t := range f.turns {
		if t.Username == username {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (f *fakeChatUC) EndSession(_ context.Context, username string) error {
	f.ended = append(f.ended, username)
	return nil
}

type fakeLimiter struct {
	allow bool
	err   error
	calls int
}

func (f *fakeLimiter) Allow(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	f.calls++
	return f.allow, f.err
}
