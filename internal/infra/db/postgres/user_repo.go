package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"mindwell-companion/internal/domain"
	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Save(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, username, registered_at, last_active_at)
VALUES ($1,$2,$3,$4);
`
	_, err := r.pool.Exec(ctx, q, u.ID, u.Username, u.RegisteredAt, u.LastActiveAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
SELECT id, username, registered_at, last_active_at
  FROM users WHERE username=$1;
`
	var u model.User
	if err := r.pool.QueryRow(ctx, q, username).Scan(&u.ID, &u.Username, &u.RegisteredAt, &u.LastActiveAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) TouchLastActive(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_active_at=$1 WHERE username=$2;`, time.Now(), username)
	return err
}

func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
