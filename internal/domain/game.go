package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Game is a catalog entry. Price changes never propagate into existing
// order items, which keep their own snapshot.
type Game struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ReleaseDate string          `json:"releaseDate,omitempty"`
	CategoryID  string          `json:"categoryId"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	SellerID    *string         `json:"sellerId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Sort keys accepted by the catalog listing.
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortTitleAsc  = "title_asc"
	SortTitleDesc = "title_desc"
)

// GameFilter narrows and orders a catalog listing. SearchDescription extends
// the substring match to descriptions (moderator search).
type GameFilter struct {
	Search            string
	SearchDescription bool
	CategoryID        string
	SellerID          string
	Sort              string
}
