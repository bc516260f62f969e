package cart

import (
	"context"

	"gamestore/internal/domain"
)

type Repository interface {
	// AddOrIncrement creates a line at quantity 1 or bumps an existing
	// (user, game) line by 1, atomically.
	AddOrIncrement(ctx context.Context, userID, gameID string) (*domain.CartLine, error)
	// Remove deletes a line only when it belongs to userID.
	Remove(ctx context.Context, userID, lineID string) error
	ListFor(ctx context.Context, userID string) ([]domain.CartLine, error)
}
