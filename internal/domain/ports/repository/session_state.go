package repository

import (
	"context"

	"mindwell-companion/internal/domain/model"
)

// SessionStateRepository is the port for the per-user dialogue context.
// Storage is opaque to the core: it gets a snapshot in, puts a snapshot out.
type SessionStateRepository interface {
	Get(ctx context.Context, username string) (model.SessionContext, error)
	Put(ctx context.Context, username string, sc model.SessionContext) error
	Clear(ctx context.Context, username string) error
}
