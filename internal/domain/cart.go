package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (user, game, quantity) row. At most one line exists per
// (user, game) pair; repeated adds increment the quantity.
type CartLine struct {
	ID        string          `json:"id"`
	UserID    string          `json:"-"`
	GameID    string          `json:"gameId"`
	GameTitle string          `json:"gameTitle"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
}

// LineTotal is quantity times the current game price. Cart lines carry no
// price snapshot; that happens at order placement.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a user's lines plus the derived grand total.
type Cart struct {
	Lines      []CartLine      `json:"lines"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func NewCart(lines []CartLine) Cart {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return Cart{Lines: lines, TotalPrice: total}
}
