package repository

import (
	"context"

	"mindwell-companion/internal/domain/model"
)

// UserRepository is the port for account storage.
type UserRepository interface {
	Save(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	TouchLastActive(ctx context.Context, username string) error
	CountUsers(ctx context.Context) (int, error)
}
