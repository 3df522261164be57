package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storeledger/internal/domain"
	catalogsvc "storeledger/internal/service/catalog"
	directorysvc "storeledger/internal/service/directory"
	ledgersvc "storeledger/internal/service/ledger"
	storesvc "storeledger/internal/service/store"
	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	errorColor  = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
)

// CLI drives the interactive menu against a Store. It is the only component
// that turns typed failures into user-facing text.
type CLI struct {
	store *storesvc.Store
	in    *bufio.Scanner
	out   io.Writer
}

func New(store *storesvc.Store, in io.Reader, out io.Writer) *CLI {
	return &CLI{store: store, in: bufio.NewScanner(in), out: out}
}

// Run loops over the menu until the user exits or input ends.
func (c *CLI) Run(ctx context.Context) error {
	headerColor.Fprintln(c.out, "Welcome to the Store Ledger!")

	for {
		c.printMenu()
		choice, ok := c.prompt("Enter your choice: ")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			c.addProduct(ctx)
		case "2":
			c.listProducts(ctx)
		case "3":
			c.addCustomer(ctx)
		case "4":
			c.listCustomers(ctx)
		case "5":
			c.placeOrder(ctx)
		case "6":
			c.listOrders(ctx)
		case "7":
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		default:
			errorColor.Fprintln(c.out, "Invalid choice. Please try again.")
		}
	}
}

func (c *CLI) printMenu() {
	fmt.Fprintln(c.out)
	headerColor.Fprintln(c.out, "Menu:")
	fmt.Fprintln(c.out, "1. Add Product")
	fmt.Fprintln(c.out, "2. List Products")
	fmt.Fprintln(c.out, "3. Add Customer")
	fmt.Fprintln(c.out, "4. List Customers")
	fmt.Fprintln(c.out, "5. Place Order")
	fmt.Fprintln(c.out, "6. List Orders")
	fmt.Fprintln(c.out, "7. Exit")
}

func (c *CLI) addProduct(ctx context.Context) {
	id, ok := c.prompt("Enter product ID: ")
	if !ok {
		return
	}
	name, ok := c.prompt("Enter product name: ")
	if !ok {
		return
	}
	price, ok := c.promptDecimal("Enter product price: ")
	if !ok {
		return
	}
	stock, ok := c.promptInt("Enter product stock: ")
	if !ok {
		return
	}
	category, ok := c.prompt("Enter product category: ")
	if !ok {
		return
	}

	p, err := c.store.AddProduct(ctx, catalogsvc.AddInput{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Price:    price,
		Stock:    stock,
		Category: strings.TrimSpace(category),
	})
	if err != nil {
		c.fail(err)
		return
	}
	okColor.Fprintf(c.out, "Product %q added successfully.\n", p.Name)
}

func (c *CLI) listProducts(ctx context.Context) {
	products, err := c.store.Products(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out)
	headerColor.Fprintln(c.out, "Products:")
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products available.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(c.out, "%s (ID: %s, Price: $%s, Stock: %d, Category: %s)\n",
			p.Name, p.ID, p.Price.String(), p.Stock, p.Category)
	}
}

func (c *CLI) addCustomer(ctx context.Context) {
	id, ok := c.prompt("Enter customer ID: ")
	if !ok {
		return
	}
	name, ok := c.prompt("Enter customer name: ")
	if !ok {
		return
	}
	email, ok := c.prompt("Enter customer email: ")
	if !ok {
		return
	}
	phone, ok := c.prompt("Enter customer phone number: ")
	if !ok {
		return
	}

	cust, err := c.store.AddCustomer(ctx, directorysvc.AddInput{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Email:       strings.TrimSpace(email),
		PhoneNumber: strings.TrimSpace(phone),
	})
	if err != nil {
		c.fail(err)
		return
	}
	okColor.Fprintf(c.out, "Customer %q added successfully.\n", cust.Name)
}

func (c *CLI) listCustomers(ctx context.Context) {
	customers, err := c.store.Customers(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out)
	headerColor.Fprintln(c.out, "Customers:")
	if len(customers) == 0 {
		fmt.Fprintln(c.out, "No customers available.")
		return
	}
	for _, cust := range customers {
		fmt.Fprintf(c.out, "%s (ID: %s, Email: %s, Phone: %s, Loyalty: %s)\n",
			cust.Name, cust.ID, cust.Email, cust.PhoneNumber, cust.Tier())
	}
}

func (c *CLI) placeOrder(ctx context.Context) {
	orderID, ok := c.prompt("Enter order ID (blank for generated): ")
	if !ok {
		return
	}
	customerID, ok := c.prompt("Enter customer ID: ")
	if !ok {
		return
	}
	fmt.Fprintln(c.out, "Enter product IDs and quantities (type 'done' to finish):")
	var items []ledgersvc.LineInput
	for {
		productID, ok := c.prompt("Product ID: ")
		if !ok {
			return
		}
		if strings.EqualFold(strings.TrimSpace(productID), "done") {
			break
		}
		quantity, ok := c.promptInt("Quantity: ")
		if !ok {
			return
		}
		items = append(items, ledgersvc.LineInput{ProductID: strings.TrimSpace(productID), Quantity: quantity})
	}

	order, err := c.store.PlaceOrder(ctx, orderID, strings.TrimSpace(customerID), items)
	if err != nil {
		c.fail(err)
		return
	}
	okColor.Fprintf(c.out, "Order %s placed successfully.\n", order.ID)
}

func (c *CLI) listOrders(ctx context.Context) {
	orders, err := c.store.Orders(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out)
	headerColor.Fprintln(c.out, "Orders:")
	if len(orders) == 0 {
		fmt.Fprintln(c.out, "No orders available.")
		return
	}
	for _, o := range orders {
		items := make([]string, 0, len(o.Lines))
		for _, line := range o.Lines {
			items = append(items, fmt.Sprintf("%dx %s", line.Quantity, line.Product.Name))
		}
		fmt.Fprintf(c.out, "Order %s: %s, Total: $%s\n", o.ID, strings.Join(items, ", "), o.TotalCost.String())
	}
}

func (c *CLI) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *CLI) promptInt(label string) (int, bool) {
	for {
		raw, ok := c.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			return n, true
		}
		errorColor.Fprintln(c.out, "Please enter a whole number.")
	}
}

func (c *CLI) promptDecimal(label string) (decimal.Decimal, bool) {
	for {
		raw, ok := c.prompt(label)
		if !ok {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err == nil {
			return d, true
		}
		errorColor.Fprintln(c.out, "Please enter a valid amount.")
	}
}

// fail turns the known failure taxonomy into user-facing messages; anything
// outside it is reported as unexpected.
func (c *CLI) fail(err error) {
	known := errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrDuplicateKey) ||
		errors.Is(err, domain.ErrInvalidArgument) ||
		errors.Is(err, domain.ErrInsufficientStock)
	if known {
		errorColor.Fprintf(c.out, "Error: %s.\n", err.Error())
		return
	}
	errorColor.Fprintf(c.out, "Unexpected error: %v\n", err)
}
