package favorite

import (
	"context"
	"strings"

	"gamestore/internal/domain"
	favoriterepo "gamestore/internal/repository/favorite"
)

// Service manages a user's saved games.
type Service struct {
	repo favoriterepo.Repository
}

func New(repo favoriterepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Add(ctx context.Context, userID, gameID string) error {
	if strings.TrimSpace(gameID) == "" {
		return domain.InvalidInput("gameId required")
	}
	return s.repo.Add(ctx, userID, gameID)
}

func (s *Service) Remove(ctx context.Context, userID, gameID string) error {
	if strings.TrimSpace(gameID) == "" {
		return domain.InvalidInput("gameId required")
	}
	return s.repo.Remove(ctx, userID, gameID)
}

func (s *Service) ListFor(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.repo.ListFor(ctx, userID)
}
