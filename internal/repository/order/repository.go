package order

import (
	"context"

	"gamestore/internal/domain"
)

type Repository interface {
	// Place converts the user's cart lines into an order with snapshotted
	// prices and empties the cart, all in one transaction. Returns
	// domain.ErrEmptyCart when there is nothing to convert.
	Place(ctx context.Context, userID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}
