package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPlaced    = "placed"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID          string          `json:"id"`
	Customer    *Customer       `json:"-"`
	OrderDate   time.Time       `json:"orderDate"`
	Lines       []OrderLine     `json:"lineItems"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	GiftMessage string          `json:"giftMessage,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OrderLine is one (product, quantity) pair. UnitPrice snapshots the product
// price at placement time; later catalog discounts do not rewrite it.
type OrderLine struct {
	Product   *Product        `json:"-"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ContainsProduct reports whether any line references the product.
func (o Order) ContainsProduct(productID string) bool {
	for _, line := range o.Lines {
		if line.Product.ID == productID {
			return true
		}
	}
	return false
}
