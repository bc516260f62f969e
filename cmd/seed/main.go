package main

import (
	"context"
	"log"
	"os"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

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

	err = seed.Apply(ctx, pool, logger, seed.Options{
		OwnerEmail:    cfg.SeedOwnerEmail,
		OwnerPassword: cfg.SeedOwnerPass,
	})
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
