package favorite

import (
	"context"
	"errors"

	"gamestore/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// Add is idempotent: re-favoriting an already favorited game is a no-op.
func (r *postgresRepo) Add(ctx context.Context, userID, gameID string) error {
	const q = `
INSERT INTO favorites (user_id, game_id)
VALUES ($1, $2)
ON CONFLICT (user_id, game_id) DO NOTHING
`
	_, err := r.pool.Exec(ctx, q, userID, gameID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, gameID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND game_id = $2`, userID, gameID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListFor(ctx context.Context, userID string) ([]domain.Favorite, error) {
	const q = `
SELECT f.user_id::text, f.game_id::text, g.title, f.created_at
FROM favorites f
JOIN games g ON g.id = f.game_id
WHERE f.user_id = $1
ORDER BY f.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.UserID, &f.GameID, &f.GameTitle, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
