package billing

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"time"
)

const (
	// DateLayout renders dates as DD-MM-YYYY.
	DateLayout = "02-01-2006"
	// PaymentTerm is the gap between issue and due date.
	PaymentTerm = 14 * 24 * time.Hour
)

// IndexSource draws a uniform index in [0, n). *rand.Rand satisfies it.
type IndexSource interface {
	IntN(n int) int
}

// globalSource uses the top-level math/rand/v2 generator, which is safe for
// concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Option configures a DataSource.
type Option func(*DataSource)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(ds *DataSource) { ds.now = now }
}

// WithIndexSource replaces the random generator used to pick customers and items.
func WithIndexSource(src IndexSource) Option {
	return func(ds *DataSource) { ds.rnd = src }
}

// DataSource serves the static provider, customer and item data. In a real
// deployment these would come from the request or an order service.
type DataSource struct {
	provider  Provider
	customers []Customer
	items     []LineItem

	now func() time.Time
	rnd IndexSource
}

// NewDataSource returns the default data set.
func NewDataSource(opts ...Option) *DataSource {
	ds := &DataSource{
		provider: Provider{
			Name:    "Example Corp.",
			Address: "5th Avenue\nAnytown, USA",
		},
		customers: []Customer{
			{Name: "John Doe", Address: "123 Any Street\nAny Town, USA", BankAccountNumber: "000999999991"},
			{Name: "Shirley Rodriguez", Address: "100 Main Street\nAnytown, USA", BankAccountNumber: "12345678901234"},
		},
		items: []LineItem{
			{Name: "Lightweight Breathable Running Shoes", Quantity: "1", Unit: "nos", Price: "$ 55", Amount: "$ 55"},
			{Name: "Espresso and Cappuccino Maker with Grinder - Red", Quantity: "1", Unit: "nos", Price: "$ 1,999", Amount: "$ 1,999"},
		},
		now: time.Now,
		rnd: globalSource{},
	}
	for _, opt := range opts {
		opt(ds)
	}
	return ds
}

func (ds *DataSource) ProviderDetails() Provider {
	return ds.provider
}

// CustomerDetails picks one customer uniformly at random.
func (ds *DataSource) CustomerDetails() Customer {
	return ds.customers[ds.rnd.IntN(len(ds.customers))]
}

// OrderItem picks one line item uniformly at random.
func (ds *DataSource) OrderItem() LineItem {
	return ds.items[ds.rnd.IntN(len(ds.items))]
}

// Customers returns a copy of the candidate customers.
func (ds *DataSource) Customers() []Customer {
	return slices.Clone(ds.customers)
}

// Items returns a copy of the candidate line items.
func (ds *DataSource) Items() []LineItem {
	return slices.Clone(ds.items)
}

// InvoiceDate returns today (UTC) and the due date PaymentTerm later.
func (ds *DataSource) InvoiceDate() InvoiceDates {
	now := ds.now().UTC()
	return InvoiceDates{
		IssueDate: now.Format(DateLayout),
		DueDate:   now.Add(PaymentTerm).Format(DateLayout),
	}
}

// InvoiceID is the current Unix time in seconds.
func (ds *DataSource) InvoiceID() string {
	return strconv.FormatInt(ds.now().Unix(), 10)
}
