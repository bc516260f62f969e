package stats

import (
	"context"

	statsrepo "gamestore/internal/repository/stats"
)

// Service backs the owner dashboard aggregates.
type Service struct {
	repo statsrepo.Repository
}

func New(repo statsrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Totals(ctx context.Context) (*statsrepo.Totals, error) {
	return s.repo.Totals(ctx)
}
