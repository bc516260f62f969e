package order

import (
	"context"
	"errors"
	"testing"

	"gamestore/internal/domain"
)

type stubRepo struct {
	placeOrder       *domain.Order
	placeErr         error
	updateOrder      *domain.Order
	updateErr        error
	lastUpdateID     string
	lastUpdateStatus string
	updateCalls      int
}

func (s *stubRepo) Place(_ context.Context, _ string) (*domain.Order, error) {
	return s.placeOrder, s.placeErr
}

func (s *stubRepo) ListByUser(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) GetForUser(_ context.Context, _, _ string) (*domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id, status string) (*domain.Order, error) {
	s.updateCalls++
	s.lastUpdateID = id
	s.lastUpdateStatus = status
	return s.updateOrder, s.updateErr
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	_, err := svc.UpdateStatus(context.Background(), "order-1", "shipped")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Fatal("repository must not be touched for invalid status")
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	expected := &domain.Order{ID: "order-1", Status: domain.OrderStatusCompleted}
	repo := &stubRepo{updateOrder: expected}
	svc := New(repo)
	got, err := svc.UpdateStatus(context.Background(), "order-1", domain.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected order: %+v", got)
	}
	if repo.lastUpdateID != "order-1" || repo.lastUpdateStatus != domain.OrderStatusCompleted {
		t.Fatalf("unexpected repo call: %s %s", repo.lastUpdateID, repo.lastUpdateStatus)
	}
}

func TestPlacePropagatesEmptyCart(t *testing.T) {
	svc := New(&stubRepo{placeErr: domain.ErrEmptyCart})
	_, err := svc.Place(context.Background(), "user-1")
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceHappyPath(t *testing.T) {
	expected := &domain.Order{ID: "order-1", Status: domain.OrderStatusPending}
	svc := New(&stubRepo{placeOrder: expected})
	got, err := svc.Place(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected order: %+v", got)
	}
}
