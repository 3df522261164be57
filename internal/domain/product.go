package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
	Featured      bool            `json:"featured"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// StockValue is the sale value of the units on hand (price * stock).
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// OnSale reports whether the current price sits below the pre-discount price.
func (p Product) OnSale() bool {
	return p.OriginalPrice.IsPositive() && p.Price.LessThan(p.OriginalPrice)
}
