package game

import (
	"context"

	"gamestore/internal/domain"
)

type Repository interface {
	List(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error)
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, g domain.Game) (*domain.Game, error)
	Update(ctx context.Context, g domain.Game) (*domain.Game, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, g domain.Game) (*domain.Game, error)
}
