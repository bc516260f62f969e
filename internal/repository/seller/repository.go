package seller

import (
	"context"

	"gamestore/internal/domain"
)

type CreateProfileInput struct {
	UserID      string
	StoreName   string
	Description string
}

type Repository interface {
	CreateProfile(ctx context.Context, in CreateProfileInput) (*domain.SellerProfile, error)
	GetByID(ctx context.Context, id string) (*domain.SellerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.SellerProfile, error)
	// ListActive returns active stores whose average rating is at least
	// minRating (stores without reviews rate as 0).
	ListActive(ctx context.Context, minRating float64) ([]domain.SellerProfile, error)
	AddReview(ctx context.Context, rev domain.Review) (*domain.Review, error)
	ListReviews(ctx context.Context, sellerID string) ([]domain.Review, error)
	// SoldItems lists order items for games the seller owns.
	SoldItems(ctx context.Context, sellerUserID string) ([]domain.OrderItem, error)
}
