package ledger

import (
	"context"
	"testing"
	"time"

	"storeledger/internal/domain"
	customerrepo "storeledger/internal/repository/customer"
	orderrepo "storeledger/internal/repository/order"
	productrepo "storeledger/internal/repository/product"
	catalogsvc "storeledger/internal/service/catalog"
	directorysvc "storeledger/internal/service/directory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	catalog   *catalogsvc.Service
	directory *directorysvc.Service
	ledger    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	catalog := catalogsvc.New(productrepo.NewMemory(nil))
	directory := directorysvc.New(customerrepo.NewMemory(nil))
	ledger := New(orderrepo.NewMemory(nil), catalog, directory)
	ledger.now = func() time.Time { return time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC) }

	products := []struct {
		id, name string
		price    int64
		stock    int
	}{
		{"P1", "Laptop", 1000, 10},
		{"P2", "Phone", 500, 20},
		{"P3", "Table", 150, 5},
	}
	for _, p := range products {
		_, err := catalog.Add(ctx, catalogsvc.AddInput{
			ID:       p.id,
			Name:     p.name,
			Price:    decimal.NewFromInt(p.price),
			Stock:    p.stock,
			Category: "Demo",
		})
		require.NoError(t, err)
	}
	for _, c := range []struct{ id, name string }{{"C1", "Alice"}, {"C2", "Bob"}} {
		_, err := directory.Add(ctx, directorysvc.AddInput{ID: c.id, Name: c.name})
		require.NoError(t, err)
	}
	return &fixture{catalog: catalog, directory: directory, ledger: ledger}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.catalog.Product(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	order, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P2", Quantity: 2},
	})
	require.NoError(t, err)
	require.Equal(t, "2000", order.TotalCost.String())
	require.Equal(t, domain.OrderStatusPlaced, order.Status)
	require.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), order.OrderDate)
	require.Equal(t, 9, f.stock(t, "P1"))
	require.Equal(t, 18, f.stock(t, "P2"))

	alice, err := f.directory.Customer(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, alice.Purchases, 1)
	require.Same(t, order, alice.Purchases[0])
}

func TestPlaceGeneratesOrderID(t *testing.T) {
	f := newFixture(t)
	order, err := f.ledger.Place(context.Background(), "  ", "C1", []LineInput{{ProductID: "P3", Quantity: 1}})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
}

func TestPlaceValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ledger.Place(ctx, "O1", "C1", nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.ledger.Place(ctx, "O1", "C9", []LineInput{{ProductID: "P1", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P9", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P1", Quantity: 0}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P1", Quantity: 1}})
	require.NoError(t, err)
	_, err = f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P1", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrDuplicateKey)
}

func TestPlaceIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// The last line overdraws; the earlier lines must not consume stock.
	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
		{ProductID: "P3", Quantity: 6},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Equal(t, 10, f.stock(t, "P1"))
	require.Equal(t, 20, f.stock(t, "P2"))
	require.Equal(t, 5, f.stock(t, "P3"))

	orders, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	alice, err := f.directory.Customer(ctx, "C1")
	require.NoError(t, err)
	require.Empty(t, alice.Purchases)
}

func TestPlaceChecksCumulativeQuantityPerProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// 3 + 3 exceeds the 5 on hand even though each line alone fits.
	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{
		{ProductID: "P3", Quantity: 3},
		{ProductID: "P3", Quantity: 3},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Equal(t, 5, f.stock(t, "P3"))
}

func TestCancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	order, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P2", Quantity: 2},
	})
	require.NoError(t, err)

	require.NoError(t, f.ledger.Cancel(ctx, "O1"))
	require.Equal(t, 10, f.stock(t, "P1"))
	require.Equal(t, 20, f.stock(t, "P2"))

	orders, err := f.ledger.List(ctx)
	require.NoError(t, err)
	require.Empty(t, orders)

	// History keeps the cancelled order, but spend no longer counts it.
	alice, err := f.directory.Customer(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, alice.Purchases, 1)
	require.Equal(t, domain.OrderStatusCancelled, order.Status)
	require.Equal(t, "0", alice.TotalSpent().String())

	require.ErrorIs(t, f.ledger.Cancel(ctx, "O1"), domain.ErrNotFound)
}

func TestApplyDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P1", Quantity: 2}})
	require.NoError(t, err)

	require.NoError(t, f.ledger.ApplyDiscount(ctx, "O1", 25))
	order, err := f.ledger.Order(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, "1500", order.TotalCost.String())

	require.ErrorIs(t, f.ledger.ApplyDiscount(ctx, "O1", 100.5), domain.ErrInvalidArgument)
	require.Equal(t, "1500", order.TotalCost.String())
	require.ErrorIs(t, f.ledger.ApplyDiscount(ctx, "O9", 10), domain.ErrNotFound)
}

func TestGiftMessageAndDelivery(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P3", Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, f.ledger.SetGiftMessage(ctx, "O1", "Happy birthday!"))
	order, err := f.ledger.Order(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, "Happy birthday!", order.GiftMessage)

	eta, err := f.ledger.EstimatedDelivery(ctx, "O1", 5)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), eta)
}

func TestItemizedBillSnapshotsPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P2", Quantity: 2},
	})
	require.NoError(t, err)

	// A later catalog discount must not rewrite the bill.
	_, err = f.catalog.ApplyDiscount(ctx, "P2", 50)
	require.NoError(t, err)

	bill, err := f.ledger.ItemizedBill(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, "Order O1:\n1x Laptop @ $1000 each\n2x Phone @ $500 each\nTotal: $2000", bill)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P2", Quantity: 2},
	})
	require.NoError(t, err)

	summary, err := f.ledger.Summary(ctx, "O1")
	require.NoError(t, err)
	require.Equal(t, "Order Summary:\nCustomer: Alice (C1)\nOrder Date: 2025-06-15\nTotal Items: 2\nTotal Cost: $2000", summary)
}

func TestContainsProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P2", Quantity: 1}})
	require.NoError(t, err)

	has, err := f.ledger.ContainsProduct(ctx, "O1", "P2")
	require.NoError(t, err)
	require.True(t, has)

	has, err = f.ledger.ContainsProduct(ctx, "O1", "P1")
	require.NoError(t, err)
	require.False(t, has)
}

func TestDateQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	day := func(d int) time.Time { return time.Date(2025, 6, d, 10, 0, 0, 0, time.UTC) }
	f.ledger.now = func() time.Time { return day(10) }
	_, err := f.ledger.Place(ctx, "O1", "C1", []LineInput{{ProductID: "P3", Quantity: 1}})
	require.NoError(t, err)
	f.ledger.now = func() time.Time { return day(15) }
	_, err = f.ledger.Place(ctx, "O2", "C2", []LineInput{{ProductID: "P3", Quantity: 1}})
	require.NoError(t, err)
	f.ledger.now = func() time.Time { return day(20) }
	_, err = f.ledger.Place(ctx, "O3", "C1", []LineInput{{ProductID: "P3", Quantity: 1}})
	require.NoError(t, err)

	// Inclusive on both ends.
	inRange, err := f.ledger.InDateRange(ctx, "2025-06-10", "2025-06-15")
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	require.Equal(t, "O1", inRange[0].ID)
	require.Equal(t, "O2", inRange[1].ID)

	empty, err := f.ledger.InDateRange(ctx, "2025-07-01", "2025-07-31")
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = f.ledger.InDateRange(ctx, "06/10/2025", "2025-06-15")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	_, err = f.ledger.InDateRange(ctx, "2025-06-10", "not-a-date")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	onDate, err := f.ledger.OnDate(ctx, "2025-06-15")
	require.NoError(t, err)
	require.Len(t, onDate, 1)
	require.Equal(t, "O2", onDate[0].ID)

	_, err = f.ledger.OnDate(ctx, "2025-6-15")
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	byCustomer, err := f.ledger.ByCustomer(ctx, "C1")
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	require.Equal(t, "O1", byCustomer[0].ID)
	require.Equal(t, "O3", byCustomer[1].ID)
}
