package category

import (
	"context"

	"gamestore/internal/domain"
)

type CreateInput struct {
	Name        string
	Description string
}

type Repository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in CreateInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in CreateInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
