package domain

import "time"

// SellerProfile is a user's storefront. One per user; inactive stores are
// hidden from listings.
type SellerProfile struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	StoreName     string    `json:"storeName"`
	Description   string    `json:"description,omitempty"`
	IsActive      bool      `json:"isActive"`
	AverageRating float64   `json:"averageRating"`
	ReviewCount   int       `json:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Review is a customer rating (1..5) of a seller's store.
type Review struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"sellerId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
