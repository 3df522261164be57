package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyTier classifies a customer by cumulative spend.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "Bronze"
	TierSilver   LoyaltyTier = "Silver"
	TierGold     LoyaltyTier = "Gold"
	TierPlatinum LoyaltyTier = "Platinum"
)

// TierForSpend maps total spend to a tier. Thresholds are exclusive lower
// bounds: exactly 1000 is still Bronze.
func TierForSpend(total decimal.Decimal) LoyaltyTier {
	switch {
	case total.GreaterThan(decimal.NewFromInt(5000)):
		return TierPlatinum
	case total.GreaterThan(decimal.NewFromInt(2000)):
		return TierGold
	case total.GreaterThan(decimal.NewFromInt(1000)):
		return TierSilver
	default:
		return TierBronze
	}
}

type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	// Purchases grows in placement order and is never truncated; cancelled
	// orders stay in it carrying StatusCancelled.
	Purchases []*Order `json:"-"`
}

// TotalSpent sums the totals of non-cancelled orders in the purchase history.
func (c Customer) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, o := range c.Purchases {
		if o.Status == OrderStatusCancelled {
			continue
		}
		total = total.Add(o.TotalCost)
	}
	return total
}

// Tier derives the loyalty tier from TotalSpent.
func (c Customer) Tier() LoyaltyTier {
	return TierForSpend(c.TotalSpent())
}

// HasPurchased reports whether any order in the history contains the product.
func (c Customer) HasPurchased(productID string) bool {
	for _, o := range c.Purchases {
		if o.ContainsProduct(productID) {
			return true
		}
	}
	return false
}
