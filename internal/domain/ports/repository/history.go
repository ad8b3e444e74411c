package repository

import (
	"context"

	"mindwell-companion/internal/domain/model"
)

// HistoryRepository persists chat turn records. Append is fire-and-forget
// from the caller's point of view: failures are logged, never fatal to the
// response path.
type HistoryRepository interface {
	Append(ctx context.Context, turn *model.ChatTurn) error
	// Recent returns up to limit turns for the user, newest last.
	Recent(ctx context.Context, username string, limit int) ([]*model.ChatTurn, error)
	// TrimAll deletes everything but the most recent keep turns per user and
	// reports how many rows were removed.
	TrimAll(ctx context.Context, keep int) (int64, error)
}
