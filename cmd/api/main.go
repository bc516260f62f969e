package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/httpserver"
	cartrepo "gamestore/internal/repository/cart"
	categoryrepo "gamestore/internal/repository/category"
	favoriterepo "gamestore/internal/repository/favorite"
	gamerepo "gamestore/internal/repository/game"
	orderrepo "gamestore/internal/repository/order"
	sellerrepo "gamestore/internal/repository/seller"
	statsrepo "gamestore/internal/repository/stats"
	tokenrepo "gamestore/internal/repository/token"
	userrepo "gamestore/internal/repository/user"
	authsvc "gamestore/internal/service/auth"
	cartsvc "gamestore/internal/service/cart"
	catalogsvc "gamestore/internal/service/catalog"
	favoritesvc "gamestore/internal/service/favorite"
	ordersvc "gamestore/internal/service/order"
	sellersvc "gamestore/internal/service/seller"
	statssvc "gamestore/internal/service/stats"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.Options{
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBConnIdleTime,
		MaxConnLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	gameRepo := gamerepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	favoriteRepo := favoriterepo.NewPostgres(dbpool)
	sellerRepo := sellerrepo.NewPostgres(dbpool)
	statsRepo := statsrepo.NewPostgres(dbpool)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		AuthSvc:     authsvc.New(userRepo, tokenRepo),
		CatalogSvc:  catalogsvc.New(gameRepo, categoryRepo, cfg.MediaURLHost),
		CartSvc:     cartsvc.New(cartRepo),
		OrderSvc:    ordersvc.New(orderRepo),
		FavoriteSvc: favoritesvc.New(favoriteRepo),
		SellerSvc:   sellersvc.New(sellerRepo, gameRepo),
		StatsSvc:    statssvc.New(statsRepo),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
