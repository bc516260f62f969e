package favorite

import (
	"context"

	"gamestore/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, userID, gameID string) error
	Remove(ctx context.Context, userID, gameID string) error
	ListFor(ctx context.Context, userID string) ([]domain.Favorite, error)
}
