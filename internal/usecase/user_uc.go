// File: internal/usecase/user_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/domain/ports/repository"
	"mindwell-companion/internal/infra/metrics"
)

var _ UserUseCase = (*userUC)(nil)

type UserUseCase interface {
	// Login normalizes the username and registers it on first sight.
	Login(ctx context.Context, username string) (*model.User, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

func (u *userUC) Login(ctx context.Context, username string) (*model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, domain.ErrInvalidArgument
	}

	user, err := u.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if err := u.users.TouchLastActive(ctx, username); err != nil {
			u.log.Warn().Err(err).Str("username", username).Msg("touch last_active failed")
		}
		return user, nil
	case errors.Is(err, domain.ErrNotFound):
		// fall through to registration
	default:
		return nil, err
	}

	user = model.NewUser(ulid.Make().String(), username)
	if err := u.users.Save(ctx, user); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a registration race; the existing row wins.
			return u.users.FindByUsername(ctx, username)
		}
		return nil, err
	}
	u.log.Info().Str("username", username).Msg("user registered")

	if n, err := u.users.CountUsers(ctx); err == nil {
		metrics.SetUsersTotal(n)
	}
	return user, nil
}
