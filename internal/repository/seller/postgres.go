package seller

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

const profileColumns = `
sp.id::text, sp.user_id::text, sp.store_name, sp.description, sp.is_active, sp.created_at,
COALESCE(AVG(r.rating), 0)::float8, COUNT(r.id)::int
`

func (r *postgresRepo) CreateProfile(ctx context.Context, in CreateProfileInput) (*domain.SellerProfile, error) {
	const q = `
INSERT INTO seller_profiles (user_id, store_name, description)
VALUES ($1, $2, $3)
RETURNING id::text, user_id::text, store_name, description, is_active, created_at
`
	var p domain.SellerProfile
	err := r.pool.QueryRow(ctx, q, in.UserID, in.StoreName, in.Description).Scan(
		&p.ID, &p.UserID, &p.StoreName, &p.Description, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrAlreadyExists
			case "23503":
				return nil, domain.ErrNotFound
			}
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.SellerProfile, error) {
	q := `
SELECT ` + profileColumns + `
FROM seller_profiles sp
LEFT JOIN reviews r ON r.seller_id = sp.id
WHERE sp.id = $1 AND sp.is_active
GROUP BY sp.id
`
	return r.getOne(ctx, q, id)
}

func (r *postgresRepo) GetByUserID(ctx context.Context, userID string) (*domain.SellerProfile, error) {
	q := `
SELECT ` + profileColumns + `
FROM seller_profiles sp
LEFT JOIN reviews r ON r.seller_id = sp.id
WHERE sp.user_id = $1
GROUP BY sp.id
`
	return r.getOne(ctx, q, userID)
}

func (r *postgresRepo) ListActive(ctx context.Context, minRating float64) ([]domain.SellerProfile, error) {
	q := `
SELECT ` + profileColumns + `
FROM seller_profiles sp
LEFT JOIN reviews r ON r.seller_id = sp.id
WHERE sp.is_active
GROUP BY sp.id
HAVING COALESCE(AVG(r.rating), 0) >= $1
ORDER BY COALESCE(AVG(r.rating), 0) DESC, sp.created_at ASC
`
	rows, err := r.pool.Query(ctx, q, minRating)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SellerProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *postgresRepo) AddReview(ctx context.Context, rev domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (seller_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id::text, seller_id::text, user_id::text, rating, comment, created_at
`
	var out domain.Review
	err := r.pool.QueryRow(ctx, q, rev.SellerID, rev.UserID, rev.Rating, rev.Comment).Scan(
		&out.ID, &out.SellerID, &out.UserID, &out.Rating, &out.Comment, &out.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListReviews(ctx context.Context, sellerID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, seller_id::text, user_id::text, rating, comment, created_at
FROM reviews
WHERE seller_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.SellerID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *postgresRepo) SoldItems(ctx context.Context, sellerUserID string) ([]domain.OrderItem, error) {
	const q = `
SELECT oi.id::text, oi.order_id::text, oi.game_id::text, g.title, oi.quantity, oi.price::text
FROM order_items oi
JOIN games g ON g.id = oi.game_id
WHERE g.seller_id = $1
ORDER BY oi.order_id
`
	rows, err := r.pool.Query(ctx, q, sellerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrderItem
	for rows.Next() {
		var (
			item  domain.OrderItem
			price string
		)
		if err := rows.Scan(&item.ID, &item.OrderID, &item.GameID, &item.GameTitle, &item.Quantity, &price); err != nil {
			return nil, err
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", price, err)
		}
		item.Price = p
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *postgresRepo) getOne(ctx context.Context, q, arg string) (*domain.SellerProfile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*domain.SellerProfile, error) {
	var p domain.SellerProfile
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.StoreName,
		&p.Description,
		&p.IsActive,
		&p.CreatedAt,
		&p.AverageRating,
		&p.ReviewCount,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
