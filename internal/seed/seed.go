package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"gamestore/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Options controls the initial owner account. Leaving OwnerPassword empty
// skips owner creation; without a seeded owner no account can reach the
// admin surface, since signup never grants roles.
type Options struct {
	OwnerEmail    string
	OwnerPassword string
}

type gameSeed struct {
	Title       string
	Description string
	Price       string
	ReleaseDate string
	Category    string
	ImageURL    string
}

// Apply inserts baseline data: the owner account, base categories and a few
// demo games. It is idempotent via ON CONFLICT and safe to re-run at every
// deploy.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *log.Logger, opts Options) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if opts.OwnerPassword == "" {
		logger.Println("seed: SEED_OWNER_PASSWORD not set, skipping owner account")
	} else {
		if err := ensureOwner(ctx, pool, opts.OwnerEmail, opts.OwnerPassword); err != nil {
			return fmt.Errorf("ensure owner: %w", err)
		}
	}

	categories := map[string]string{
		"Action":   "Fast-paced games",
		"RPG":      "Role-playing games",
		"Strategy": "Turn-based and real-time strategy",
		"Indie":    "Independent releases",
	}
	ids := make(map[string]string, len(categories))
	for name, desc := range categories {
		id, err := ensureCategory(ctx, pool, name, desc)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		ids[name] = id
	}

	games := []gameSeed{
		{
			Title:       "Starfall Tactics",
			Description: "Squad-based tactics in a collapsing galaxy",
			Price:       "29.99",
			ReleaseDate: "2023-09-14",
			Category:    "Strategy",
		},
		{
			Title:       "Dungeon of Embers",
			Description: "Roguelike dungeon crawler with permadeath",
			Price:       "14.50",
			ReleaseDate: "2022-03-01",
			Category:    "Indie",
		},
		{
			Title:       "Chrome Vengeance",
			Description: "Cyberpunk action brawler",
			Price:       "49.99",
			ReleaseDate: "2024-11-20",
			Category:    "Action",
		},
	}
	for _, g := range games {
		if err := upsertGame(ctx, pool, ids[g.Category], g); err != nil {
			return fmt.Errorf("upsert game %s: %w", g.Title, err)
		}
	}

	return nil
}

func ensureOwner(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO users (email, username, password_hash)
VALUES (lower($1), 'owner', $2)
ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hashed)).Scan(&id); err != nil {
		return err
	}

	const roleQ = `
INSERT INTO user_roles (user_id, role)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	if _, err := pool.Exec(ctx, roleQ, id, domain.RoleOwner); err != nil {
		return err
	}
	_, err = pool.Exec(ctx, roleQ, id, domain.RoleModerator)
	return err
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, description string) (string, error) {
	const q = `
INSERT INTO categories (name, description)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertGame(ctx context.Context, pool *pgxpool.Pool, categoryID string, g gameSeed) error {
	const q = `
INSERT INTO games (title, description, price, release_date, category_id, image_url)
VALUES ($1, $2, $3::numeric, $4::date, $5, $6)
ON CONFLICT (category_id, title) DO UPDATE
SET description = EXCLUDED.description,
    price = EXCLUDED.price,
    release_date = EXCLUDED.release_date,
    image_url = EXCLUDED.image_url
`
	_, err := pool.Exec(ctx, q, g.Title, g.Description, g.Price, g.ReleaseDate, categoryID, g.ImageURL)
	return err
}
