package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/importer"
	categoryrepo "gamestore/internal/repository/category"
	gamerepo "gamestore/internal/repository/game"
	"github.com/joho/godotenv"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to games catalog CSV")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBConnIdleTime,
		MaxConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, gamerepo.NewPostgres(pool, nil), categoryrepo.NewPostgres(pool))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d games in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
