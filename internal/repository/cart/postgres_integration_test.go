package cart

import (
	"context"
	"errors"
	"os"
	"testing"

	"gamestore/internal/domain"
	"gamestore/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func integrationPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE reviews, seller_profiles, favorites, order_items, orders, cart_lines, games, categories, tokens, user_roles, users CASCADE`)
	if err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func seedUserAndGame(ctx context.Context, t *testing.T, pool *pgxpool.Pool, email, title, price string) (string, string) {
	t.Helper()
	var userID string
	err := pool.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash) VALUES ($1, $1, 'x') RETURNING id::text`,
		email).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	var categoryID string
	err = pool.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id::text`,
		"integration").Scan(&categoryID)
	if err != nil {
		t.Fatalf("insert category: %v", err)
	}
	var gameID string
	err = pool.QueryRow(ctx,
		`INSERT INTO games (title, price, category_id) VALUES ($1, $2::numeric, $3) RETURNING id::text`,
		title, price, categoryID).Scan(&gameID)
	if err != nil {
		t.Fatalf("insert game: %v", err)
	}
	return userID, gameID
}

func TestAddOrIncrement_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	userID, gameID := seedUserAndGame(ctx, t, pool, "cart@example.com", "Starfall Tactics", "29.99")
	repo := NewPostgres(pool)

	line, err := repo.AddOrIncrement(ctx, userID, gameID)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if line.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", line.Quantity)
	}

	line, err = repo.AddOrIncrement(ctx, userID, gameID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2 after repeated add, got %d", line.Quantity)
	}

	lines, err := repo.ListFor(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected a single line per game, got %d", len(lines))
	}
	if lines[0].UnitPrice.StringFixed(2) != "29.99" {
		t.Fatalf("unexpected unit price %s", lines[0].UnitPrice)
	}
}

func TestRemoveScopedToOwner_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	ownerID, gameID := seedUserAndGame(ctx, t, pool, "owner@example.com", "Dungeon of Embers", "14.50")
	var otherID string
	err := pool.QueryRow(ctx,
		`INSERT INTO users (email, username, password_hash) VALUES ('other@example.com', 'other', 'x') RETURNING id::text`).Scan(&otherID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	repo := NewPostgres(pool)
	line, err := repo.AddOrIncrement(ctx, ownerID, gameID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Remove(ctx, otherID, line.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign line, got %v", err)
	}

	if err := repo.Remove(ctx, ownerID, line.ID); err != nil {
		t.Fatalf("owner remove: %v", err)
	}
	lines, err := repo.ListFor(ctx, ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}
}
