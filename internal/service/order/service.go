package order

import (
	"context"

	"gamestore/internal/domain"
)

// Service fronts order placement and the moderator status panel.
type Service struct {
	repo orderRepo
}

type orderRepo interface {
	Place(ctx context.Context, userID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetForUser(ctx context.Context, userID, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error)
}

func New(repo orderRepo) *Service {
	return &Service{repo: repo}
}

// Place reconciles the user's cart into a pending order. An empty cart
// yields domain.ErrEmptyCart and creates nothing.
func (s *Service) Place(ctx context.Context, userID string) (*domain.Order, error) {
	return s.repo.Place(ctx, userID)
}

// ListFor returns the user's order history, newest first.
func (s *Service) ListFor(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns an order with items, only when it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Order, error) {
	return s.repo.GetForUser(ctx, userID, id)
}

// ListAll backs the moderator order panel.
func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus rejects values outside the status enum instead of silently
// ignoring them.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
