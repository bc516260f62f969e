package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gamestore/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// Place runs the cart-to-order reconciliation as one serializable
// transaction: either the order exists with every line converted and the
// cart empty, or nothing changed. Concurrent placements for the same user
// serialize; the second one finds an empty cart. A serialization failure
// is retried so the loser re-reads the cart instead of surfacing SQLSTATE
// 40001 to the caller.
func (r *postgresRepo) Place(ctx context.Context, userID string) (*domain.Order, error) {
	const maxAttempts = 3
	var (
		order *domain.Order
		err   error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		order, err = r.placeTx(ctx, userID)
		if err == nil || !isSerializationFailure(err) || attempt == maxAttempts {
			return order, err
		}
		r.logger.Printf("order repo: place retry user_id=%s attempt=%d: %v", userID, attempt, err)
	}
	return order, err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func (r *postgresRepo) placeTx(ctx context.Context, userID string) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const linesQ = `
SELECT cl.game_id::text, g.title, cl.quantity, g.price::text
FROM cart_lines cl
JOIN games g ON g.id = cl.game_id
WHERE cl.user_id = $1
ORDER BY cl.created_at ASC
FOR UPDATE OF cl
`
	rows, err := tx.Query(ctx, linesQ, userID)
	if err != nil {
		return nil, err
	}

	type cartRow struct {
		gameID string
		title  string
		qty    int
		price  decimal.Decimal
	}
	var cart []cartRow
	for rows.Next() {
		var (
			row   cartRow
			price string
		)
		if err := rows.Scan(&row.gameID, &row.title, &row.qty, &price); err != nil {
			rows.Close()
			return nil, err
		}
		if row.price, err = decimal.NewFromString(price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		cart = append(cart, row)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order := domain.Order{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: domain.OrderStatusPending,
	}
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (id, user_id, status, total_price)
VALUES ($1, $2, $3, 0)
RETURNING created_at
`, order.ID, order.UserID, order.Status).Scan(&order.CreatedAt); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, row := range cart {
		item := domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			GameID:    row.gameID,
			GameTitle: row.title,
			Quantity:  row.qty,
			Price:     row.price,
		}
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (id, order_id, game_id, quantity, price)
VALUES ($1, $2, $3, $4, $5::numeric)
`, item.ID, item.OrderID, item.GameID, item.Quantity, item.Price.StringFixed(2)); err != nil {
			return nil, err
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		order.Items = append(order.Items, item)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE orders SET total_price = $1::numeric WHERE id = $2`, total.StringFixed(2), order.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.TotalPrice = total
	r.logger.Printf("order repo: placed id=%s user_id=%s items=%d total=%s", order.ID, userID, len(order.Items), total.StringFixed(2))
	return &order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total_price::text, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total_price::text, created_at
FROM orders
ORDER BY created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) GetForUser(ctx context.Context, userID, id string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total_price::text, created_at
FROM orders
WHERE id = $1 AND user_id = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $1
WHERE id = $2
RETURNING id::text, user_id::text, status, total_price::text, created_at
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *postgresRepo) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.game_id::text, g.title, oi.quantity, oi.price::text
FROM order_items oi
JOIN games g ON g.id = oi.game_id
WHERE oi.order_id = $1
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item  domain.OrderItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.GameID, &item.GameTitle, &item.Quantity, &price); err != nil {
			return nil, err
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o     domain.Order
		total string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &total, &o.CreatedAt); err != nil {
		return nil, err
	}
	t, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse total %q: %w", total, err)
	}
	o.TotalPrice = t
	return &o, nil
}
