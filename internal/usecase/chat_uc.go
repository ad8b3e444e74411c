// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/domain/ports/repository"
	"mindwell-companion/internal/engine"
	"mindwell-companion/internal/infra/logging"
	"mindwell-companion/internal/infra/metrics"
	"mindwell-companion/internal/infra/worker"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

type ChatUseCase interface {
	ProcessTurn(ctx context.Context, username, message string) (*engine.Result, error)
	History(ctx context.Context, username string, limit int) ([]*model.ChatTurn, error)
	EndSession(ctx context.Context, username string) error
}

type chatUC struct {
	eng      *engine.Engine
	sessions repository.SessionStateRepository
	history  repository.HistoryRepository
	pool     *worker.Pool
	log      *zerolog.Logger
	maxHist  int
}

// NewChatUseCase wires the rule engine to its collaborators. pool may be nil,
// in which case history appends run synchronously.
func NewChatUseCase(eng *engine.Engine, sessions repository.SessionStateRepository,
	history repository.HistoryRepository, pool *worker.Pool, maxHistory int, logger *zerolog.Logger) *chatUC {
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &chatUC{eng: eng, sessions: sessions, history: history, pool: pool, maxHist: maxHistory, log: logger}
}

func (c *chatUC) ProcessTurn(ctx context.Context, username, message string) (*engine.Result, error) {
	defer logging.TraceDuration(c.log, "ChatUC.ProcessTurn")()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.ErrInvalidArgument
	}
	start := time.Now()

	sc, err := c.sessions.Get(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			// A broken session store must not fail the chat turn; start
			// fresh and keep going.
			c.log.Error().Err(err).Str("username", username).Msg("session context load failed; starting fresh")
		}
		sc = model.NewSessionContext()
	}

	result := c.eng.ProcessTurn(message, sc)

	if err := c.sessions.Put(ctx, username, result.Context); err != nil {
		c.log.Error().Err(err).Str("username", username).Msg("session context save failed")
	}

	turn := &model.ChatTurn{
		ID:        ulid.Make().String(),
		Username:  username,
		Input:     message,
		Response:  result.Response,
		Topic:     result.Topic,
		Emotion:   result.Emotion,
		Sentiment: result.Sentiment,
		CreatedAt: time.Now(),
	}
	c.appendHistory(ctx, turn)

	metrics.ObserveTurn(string(result.Topic), string(result.Intent), float64(time.Since(start).Milliseconds()))
	if result.Topic == model.TopicCrisis {
		metrics.IncCrisisEscalation()
		c.log.Warn().Str("username", username).Msg("crisis response served")
	}
	return &result, nil
}

// appendHistory persists the turn without ever failing the response path.
func (c *chatUC) appendHistory(ctx context.Context, turn *model.ChatTurn) {
	write := func(ctx context.Context) error {
		if err := c.history.Append(ctx, turn); err != nil {
			metrics.IncHistoryAppendFailure()
			c.log.Error().Err(err).Str("username", turn.Username).Msg("history append failed")
		}
		return nil
	}
	if c.pool == nil {
		_ = write(ctx)
		return
	}
	if err := c.pool.Submit(write); err != nil {
		// Queue saturated: do it inline rather than dropping the record.
		_ = write(ctx)
	}
}

func (c *chatUC) History(ctx context.Context, username string, limit int) ([]*model.ChatTurn, error) {
	if limit <= 0 || limit > c.maxHist {
		limit = c.maxHist
	}
	return c.history.Recent(ctx, username, limit)
}

// EndSession drops the dialogue context. The persisted history survives.
func (c *chatUC) EndSession(ctx context.Context, username string) error {
	return c.sessions.Clear(ctx, username)
}
