package main

import (
	"context"
	"log"
	"os"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/migrate"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBConnIdleTime,
		MaxConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("migrations applied")
}
