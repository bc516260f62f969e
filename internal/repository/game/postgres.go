package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gamestore/internal/domain"
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

const gameColumns = `id::text, title, description, price::text, COALESCE(release_date::text, ''), category_id::text, image_url, seller_id::text, created_at`

func (r *postgresRepo) List(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error) {
	var (
		conds []string
		args  []any
	)
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		if filter.SearchDescription {
			conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
		} else {
			conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
		}
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}

	q := `SELECT ` + gameColumns + ` FROM games`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + orderClause(filter.Sort)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("game repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *g)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	q := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	g, err := scanGame(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("game repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return g, nil
}

func (r *postgresRepo) Create(ctx context.Context, g domain.Game) (*domain.Game, error) {
	q := `
INSERT INTO games (title, description, price, release_date, category_id, image_url, seller_id)
VALUES ($1, $2, $3::numeric, NULLIF($4, '')::date, $5, $6, $7)
RETURNING ` + gameColumns
	out, err := scanGame(r.pool.QueryRow(ctx, q,
		g.Title, g.Description, g.Price.StringFixed(2), g.ReleaseDate, g.CategoryID, g.ImageURL, g.SellerID,
	))
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, g domain.Game) (*domain.Game, error) {
	q := `
UPDATE games
SET title = $1, description = $2, price = $3::numeric, release_date = NULLIF($4, '')::date,
    category_id = $5, image_url = $6
WHERE id = $7
RETURNING ` + gameColumns
	out, err := scanGame(r.pool.QueryRow(ctx, q,
		g.Title, g.Description, g.Price.StringFixed(2), g.ReleaseDate, g.CategoryID, g.ImageURL, g.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteErr(err)
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserts or refreshes a game keyed on (category_id, title). Used by
// the catalog importer and the seed.
func (r *postgresRepo) Upsert(ctx context.Context, g domain.Game) (*domain.Game, error) {
	q := `
INSERT INTO games (title, description, price, release_date, category_id, image_url, seller_id)
VALUES ($1, $2, $3::numeric, NULLIF($4, '')::date, $5, $6, $7)
ON CONFLICT (category_id, title) DO UPDATE SET
    description = EXCLUDED.description,
    price = EXCLUDED.price,
    release_date = EXCLUDED.release_date,
    image_url = EXCLUDED.image_url
RETURNING ` + gameColumns
	out, err := scanGame(r.pool.QueryRow(ctx, q,
		g.Title, g.Description, g.Price.StringFixed(2), g.ReleaseDate, g.CategoryID, g.ImageURL, g.SellerID,
	))
	if err != nil {
		r.logger.Printf("game repo: upsert title=%q error=%v", g.Title, err)
		return nil, mapWriteErr(err)
	}
	return out, nil
}

// orderClause maps a sort key to a stable ORDER BY. The storefront default is
// insertion order.
// escapeLike neutralizes LIKE metacharacters so a search term matches
// literally instead of acting as a pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func orderClause(sort string) string {
	switch sort {
	case domain.SortPriceAsc:
		return "price ASC, created_at ASC"
	case domain.SortPriceDesc:
		return "price DESC, created_at ASC"
	case domain.SortTitleAsc:
		return "lower(title) ASC"
	case domain.SortTitleDesc:
		return "lower(title) DESC"
	default:
		return "created_at ASC, id ASC"
	}
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var (
		g        domain.Game
		price    string
		sellerID *string
	)
	if err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&price,
		&g.ReleaseDate,
		&g.CategoryID,
		&g.ImageURL,
		&sellerID,
		&g.CreatedAt,
	); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	g.Price = p
	g.SellerID = sellerID
	return &g, nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return domain.ErrAlreadyExists
		case "23503":
			// category or seller reference does not exist
			return domain.ErrNotFound
		}
	}
	return err
}
