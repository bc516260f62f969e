package stats

import (
	"context"

	"github.com/shopspring/decimal"
)

// Totals feeds the owner dashboard.
type Totals struct {
	Users            int64           `json:"users"`
	Orders           int64           `json:"orders"`
	GrossRevenue     decimal.Decimal `json:"grossRevenue"`
	CompletedRevenue decimal.Decimal `json:"completedRevenue"`
}

type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
}
