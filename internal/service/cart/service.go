package cart

import (
	"context"
	"strings"

	"gamestore/internal/domain"
)

// Service wraps the per-user cart operations. Every call is scoped to the
// authenticated user; there is no way to reach another user's lines.
type Service struct {
	repo cartRepo
}

type cartRepo interface {
	AddOrIncrement(ctx context.Context, userID, gameID string) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, lineID string) error
	ListFor(ctx context.Context, userID string) ([]domain.CartLine, error)
}

func New(repo cartRepo) *Service {
	return &Service{repo: repo}
}

// Add puts one more copy of the game into the user's cart.
func (s *Service) Add(ctx context.Context, userID, gameID string) (*domain.CartLine, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, domain.InvalidInput("gameId required")
	}
	return s.repo.AddOrIncrement(ctx, userID, gameID)
}

// Remove drops the line when owned by userID; a foreign line surfaces as
// not found, never as a successful delete.
func (s *Service) Remove(ctx context.Context, userID, lineID string) error {
	if strings.TrimSpace(lineID) == "" {
		return domain.InvalidInput("lineId required")
	}
	return s.repo.Remove(ctx, userID, lineID)
}

// Get returns the user's cart with computed line totals and grand total.
func (s *Service) Get(ctx context.Context, userID string) (domain.Cart, error) {
	lines, err := s.repo.ListFor(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.NewCart(lines), nil
}
