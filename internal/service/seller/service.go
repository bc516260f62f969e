package seller

import (
	"context"
	"strings"

	"gamestore/internal/domain"
	sellerrepo "gamestore/internal/repository/seller"
)

// Service covers seller storefronts: registration, the public store list
// with reviews, and the seller dashboard.
type Service struct {
	sellers sellerRepo
	games   gameRepo
}

type sellerRepo interface {
	CreateProfile(ctx context.Context, in sellerrepo.CreateProfileInput) (*domain.SellerProfile, error)
	GetByID(ctx context.Context, id string) (*domain.SellerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.SellerProfile, error)
	ListActive(ctx context.Context, minRating float64) ([]domain.SellerProfile, error)
	AddReview(ctx context.Context, rev domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context, sellerID string) ([]domain.Review, error)
	SoldItems(ctx context.Context, sellerUserID string) ([]domain.OrderItem, error)
}

type gameRepo interface {
	List(ctx context.Context, filter domain.GameFilter) ([]domain.Game, error)
}

func New(sellers sellerRepo, games gameRepo) *Service {
	return &Service{sellers: sellers, games: games}
}

// Register opens a storefront for the user. One per user.
func (s *Service) Register(ctx context.Context, userID, storeName, description string) (*domain.SellerProfile, error) {
	storeName = strings.TrimSpace(storeName)
	if storeName == "" {
		return nil, domain.InvalidInput("storeName required")
	}
	return s.sellers.CreateProfile(ctx, sellerrepo.CreateProfileInput{
		UserID:      userID,
		StoreName:   storeName,
		Description: strings.TrimSpace(description),
	})
}

// Stores lists active storefronts rated at or above minRating.
func (s *Service) Stores(ctx context.Context, minRating float64) ([]domain.SellerProfile, error) {
	if minRating < 0 || minRating > 5 {
		return nil, domain.InvalidInput("minRating must be between 0 and 5")
	}
	return s.sellers.ListActive(ctx, minRating)
}

// StoreDetail is a store plus its reviews.
type StoreDetail struct {
	Store   domain.SellerProfile `json:"store"`
	Reviews []domain.Review      `json:"reviews"`
}

func (s *Service) Store(ctx context.Context, id string) (*StoreDetail, error) {
	store, err := s.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reviews, err := s.sellers.ListReviews(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	return &StoreDetail{Store: *store, Reviews: reviews}, nil
}

// AddReview records a 1..5 rating of an active store.
func (s *Service) AddReview(ctx context.Context, userID, storeID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.InvalidInput("rating must be between 1 and 5")
	}
	store, err := s.sellers.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return s.sellers.AddReview(ctx, domain.Review{
		SellerID: store.ID,
		UserID:   userID,
		Rating:   rating,
		Comment:  strings.TrimSpace(comment),
	})
}

// Dashboard is what a seller sees: their games and the items sold.
type Dashboard struct {
	Profile   domain.SellerProfile `json:"profile"`
	Games     []domain.Game        `json:"games"`
	SoldItems []domain.OrderItem   `json:"soldItems"`
}

// DashboardFor requires an existing active profile; users without one get
// domain.ErrNotFound and are expected to register first. Deactivated stores
// lose dashboard access along with their listing.
func (s *Service) DashboardFor(ctx context.Context, userID string) (*Dashboard, error) {
	profile, err := s.sellers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsActive {
		return nil, domain.ErrNotFound
	}
	games, err := s.games.List(ctx, domain.GameFilter{SellerID: userID})
	if err != nil {
		return nil, err
	}
	sold, err := s.sellers.SoldItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Profile: *profile, Games: games, SoldItems: sold}, nil
}
