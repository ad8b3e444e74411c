package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"mindwell-companion/internal/domain/model"
	"mindwell-companion/internal/domain/ports/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

type HistoryRepo struct {
	pool *pgxpool.Pool
}

func NewHistoryRepo(pool *pgxpool.Pool) *HistoryRepo {
	return &HistoryRepo{pool: pool}
}

func (r *HistoryRepo) Append(ctx context.Context, t *model.ChatTurn) error {
	const q = `
INSERT INTO chat_turns (id, username, input, response, topic, emotion, sentiment, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8);
`
	_, err := r.pool.Exec(ctx, q,
		t.ID, t.Username, t.Input, t.Response, string(t.Topic), string(t.Emotion), string(t.Sentiment), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("append chat turn: %w", err)
	}
	return nil
}

func (r *HistoryRepo) Recent(ctx context.Context, username string, limit int) ([]*model.ChatTurn, error) {
	const q = `
SELECT id, username, input, response, topic, emotion, sentiment, created_at
  FROM chat_turns
 WHERE username=$1
 ORDER BY created_at DESC, id DESC
 LIMIT $2;
`
	rows, err := r.pool.Query(ctx, q, username, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []*model.ChatTurn
	for rows.Next() {
		var t model.ChatTurn
		if err := rows.Scan(&t.ID, &t.Username, &t.Input, &t.Response, &t.Topic, &t.Emotion, &t.Sentiment, &t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest last, the order a chat UI renders.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func (r *HistoryRepo) TrimAll(ctx context.Context, keep int) (int64, error) {
	const q = `
DELETE FROM chat_turns
 WHERE id IN (
   SELECT id FROM (
     SELECT id, ROW_NUMBER() OVER (PARTITION BY username ORDER BY created_at DESC, id DESC) AS rn
       FROM chat_turns
   ) ranked
   WHERE ranked.rn > $1
 );
`
	tag, err := r.pool.Exec(ctx, q, keep)
	if err != nil {
		return 0, fmt.Errorf("trim chat turns: %w", err)
	}
	return tag.RowsAffected(), nil
}
