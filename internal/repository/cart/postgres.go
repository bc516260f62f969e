package cart

import (
	"context"
	"errors"
	"fmt"

	"gamestore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) AddOrIncrement(ctx context.Context, userID, gameID string) (*domain.CartLine, error) {
	// Single upsert so concurrent adds cannot lose an increment.
	const q = `
INSERT INTO cart_lines (user_id, game_id, quantity)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, game_id) DO UPDATE SET quantity = cart_lines.quantity + 1
RETURNING id::text, user_id::text, game_id::text, quantity, created_at
`
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, q, userID, gameID).Scan(
		&line.ID,
		&line.UserID,
		&line.GameID,
		&line.Quantity,
		&line.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, lineID string) error {
	// Scoped by user_id so one user can never delete another's line.
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cart_lines WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListFor(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const q = `
SELECT cl.id::text, cl.user_id::text, cl.game_id::text, g.title, g.price::text, cl.quantity, cl.created_at
FROM cart_lines cl
JOIN games g ON g.id = cl.game_id
WHERE cl.user_id = $1
ORDER BY cl.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, rows.Err()
}

func scanLine(row pgx.Row) (*domain.CartLine, error) {
	var (
		line  domain.CartLine
		price string
	)
	if err := row.Scan(
		&line.ID,
		&line.UserID,
		&line.GameID,
		&line.GameTitle,
		&price,
		&line.Quantity,
		&line.CreatedAt,
	); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	line.UnitPrice = p
	return &line, nil
}
