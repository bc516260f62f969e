package seller

import (
	"context"
	"errors"
	"testing"

	"gamestore/internal/domain"
	sellerrepo "gamestore/internal/repository/seller"
)

type stubSellerRepo struct {
	profile      *domain.SellerProfile
	createErr    error
	lastCreate   sellerrepo.CreateProfileInput
	byID         *domain.SellerProfile
	byIDErr      error
	byUser       *domain.SellerProfile
	byUserErr    error
	active       []domain.SellerProfile
	listCalls    int
	lastMin      float64
	review       *domain.Review
	reviewErr    error
	lastReview   domain.Review
	reviews      []domain.Review
	sold         []domain.OrderItem
	lastSoldUser string
}

func (s *stubSellerRepo) CreateProfile(_ context.Context, in sellerrepo.CreateProfileInput) (*domain.SellerProfile, error) {
	s.lastCreate = in
	return s.profile, s.createErr
}

func (s *stubSellerRepo) GetByID(_ context.Context, _ string) (*domain.SellerProfile, error) {
	return s.byID, s.byIDErr
}

func (s *stubSellerRepo) GetByUserID(_ context.Context, _ string) (*domain.SellerProfile, error) {
	return s.byUser, s.byUserErr
}

func (s *stubSellerRepo) ListActive(_ context.Context, minRating float64) ([]domain.SellerProfile, error) {
	s.listCalls++
	s.lastMin = minRating
	return s.active, nil
}

func (s *stubSellerRepo) AddReview(_ context.Context, rev domain.Review) (*domain.Review, error) {
	s.lastReview = rev
	return s.review, s.reviewErr
}

func (s *stubSellerRepo) ListReviews(_ context.Context, _ string) ([]domain.Review, error) {
	return s.reviews, nil
}

func (s *stubSellerRepo) SoldItems(_ context.Context, sellerUserID string) ([]domain.OrderItem, error) {
	s.lastSoldUser = sellerUserID
	return s.sold, nil
}

type stubGameRepo struct {
	games      []domain.Game
	lastFilter domain.GameFilter
}

func (s *stubGameRepo) List(_ context.Context, filter domain.GameFilter) ([]domain.Game, error) {
	s.lastFilter = filter
	return s.games, nil
}

func TestRegisterRequiresStoreName(t *testing.T) {
	svc := New(&stubSellerRepo{}, &stubGameRepo{})
	if _, err := svc.Register(context.Background(), "u1", "   ", "desc"); err == nil {
		t.Fatal("expected storeName validation error")
	}
}

func TestRegisterTrimsInput(t *testing.T) {
	repo := &stubSellerRepo{profile: &domain.SellerProfile{ID: "s1"}}
	svc := New(repo, &stubGameRepo{})
	if _, err := svc.Register(context.Background(), "u1", " My Store ", " good games "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastCreate.StoreName != "My Store" || repo.lastCreate.Description != "good games" {
		t.Fatalf("expected trimmed input, got %+v", repo.lastCreate)
	}
}

func TestStoresMinRatingBounds(t *testing.T) {
	repo := &stubSellerRepo{}
	svc := New(repo, &stubGameRepo{})
	if _, err := svc.Stores(context.Background(), -0.5); err == nil {
		t.Fatal("expected error for negative minRating")
	}
	if _, err := svc.Stores(context.Background(), 5.5); err == nil {
		t.Fatal("expected error for minRating above 5")
	}
	if repo.listCalls != 0 {
		t.Fatal("repository must not be queried for out-of-range minRating")
	}
	if _, err := svc.Stores(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastMin != 4 {
		t.Fatalf("unexpected minRating %v", repo.lastMin)
	}
}

func TestAddReviewRatingBounds(t *testing.T) {
	svc := New(&stubSellerRepo{byID: &domain.SellerProfile{ID: "s1"}}, &stubGameRepo{})
	if _, err := svc.AddReview(context.Background(), "u1", "s1", 0, ""); err == nil {
		t.Fatal("expected error for rating 0")
	}
	if _, err := svc.AddReview(context.Background(), "u1", "s1", 6, ""); err == nil {
		t.Fatal("expected error for rating 6")
	}
}

func TestAddReviewUnknownStore(t *testing.T) {
	svc := New(&stubSellerRepo{byIDErr: domain.ErrNotFound}, &stubGameRepo{})
	if _, err := svc.AddReview(context.Background(), "u1", "missing", 5, "great"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddReviewHappyPath(t *testing.T) {
	repo := &stubSellerRepo{
		byID:   &domain.SellerProfile{ID: "s1"},
		review: &domain.Review{ID: "r1"},
	}
	svc := New(repo, &stubGameRepo{})
	rev, err := svc.AddReview(context.Background(), "u1", "s1", 5, "  great store  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev.ID != "r1" {
		t.Fatalf("unexpected review %+v", rev)
	}
	if repo.lastReview.Rating != 5 || repo.lastReview.Comment != "great store" {
		t.Fatalf("unexpected stored review %+v", repo.lastReview)
	}
}

func TestDashboardForRequiresProfile(t *testing.T) {
	svc := New(&stubSellerRepo{byUserErr: domain.ErrNotFound}, &stubGameRepo{})
	if _, err := svc.DashboardFor(context.Background(), "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDashboardForInactiveProfile(t *testing.T) {
	repo := &stubSellerRepo{byUser: &domain.SellerProfile{ID: "s1", UserID: "u1", IsActive: false}}
	svc := New(repo, &stubGameRepo{})
	if _, err := svc.DashboardFor(context.Background(), "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("deactivated store must not reach its dashboard, got %v", err)
	}
}

func TestDashboardForScopesGamesToSeller(t *testing.T) {
	games := &stubGameRepo{games: []domain.Game{{ID: "g1"}}}
	repo := &stubSellerRepo{
		byUser: &domain.SellerProfile{ID: "s1", UserID: "u1", IsActive: true},
		sold:   []domain.OrderItem{{ID: "oi1"}},
	}
	svc := New(repo, games)
	dash, err := svc.DashboardFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if games.lastFilter.SellerID != "u1" {
		t.Fatalf("expected games scoped to seller, got %+v", games.lastFilter)
	}
	if repo.lastSoldUser != "u1" {
		t.Fatalf("expected sold items scoped to seller, got %q", repo.lastSoldUser)
	}
	if len(dash.Games) != 1 || len(dash.SoldItems) != 1 {
		t.Fatalf("unexpected dashboard %+v", dash)
	}
}
