package catalog

import (
	"strings"

	"gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

// parsePrice accepts a decimal string like "19.99" and rejects negatives.
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, domain.InvalidInput("price required")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.InvalidInput("invalid price")
	}
	if price.IsNegative() {
		return decimal.Zero, domain.InvalidInput("price must not be negative")
	}
	return price, nil
}
