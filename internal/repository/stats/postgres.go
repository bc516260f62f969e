package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Totals(ctx context.Context) (*Totals, error) {
	const q = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM orders),
    (SELECT COALESCE(SUM(total_price), 0)::text FROM orders),
    (SELECT COALESCE(SUM(total_price), 0)::text FROM orders WHERE status = 'completed')
`
	var (
		t                Totals
		gross, completed string
	)
	if err := r.pool.QueryRow(ctx, q).Scan(&t.Users, &t.Orders, &gross, &completed); err != nil {
		return nil, err
	}
	var err error
	if t.GrossRevenue, err = decimal.NewFromString(gross); err != nil {
		return nil, fmt.Errorf("parse gross revenue %q: %w", gross, err)
	}
	if t.CompletedRevenue, err = decimal.NewFromString(completed); err != nil {
		return nil, fmt.Errorf("parse completed revenue %q: %w", completed, err)
	}
	return &t, nil
}
