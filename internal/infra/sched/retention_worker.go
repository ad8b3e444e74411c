package sched

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/ports/repository"
	red "mindwell-companion/internal/infra/redis"
)

const retentionLockKey = "lock:history_trim"

// RetentionWorker periodically trims each user's chat history down to the
// configured number of turns. A redis lock keeps concurrent replicas from
// trimming at the same time.
type RetentionWorker struct {
	interval time.Duration
	keep     int
	history  repository.HistoryRepository
	locker   red.Locker
	log      *zerolog.Logger
}

func NewRetentionWorker(interval time.Duration, keep int, history repository.HistoryRepository,
	locker red.Locker, logger *zerolog.Logger) *RetentionWorker {
	wlog := logger.With().Str("component", "RetentionWorker").Logger()
	return &RetentionWorker{
		interval: interval,
		keep:     keep,
		history:  history,
		locker:   locker,
		log:      &wlog,
	}
}

func (w *RetentionWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Int("keep", w.keep).Msg("starting retention worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping retention worker")
			return ctx.Err()
		case <-ticker.C:
			w.trimOnce(ctx)
		}
	}
}

func (w *RetentionWorker) trimOnce(ctx context.Context) {
	token, err := w.locker.TryLock(ctx, retentionLockKey, w.interval)
	if err != nil {
		if !errors.Is(err, domain.ErrLockNotAcquired) {
			w.log.Error().Err(err).Msg("retention lock error")
		}
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, retentionLockKey, token); err != nil {
			w.log.Warn().Err(err).Msg("retention unlock failed")
		}
	}()

	n, err := w.history.TrimAll(ctx, w.keep)
	if err != nil {
		w.log.Error().Err(err).Msg("history trim failed")
		return
	}
	if n > 0 {
		w.log.Info().Int64("removed", n).Msg("old chat turns trimmed")
	}
}
