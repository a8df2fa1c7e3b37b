package elms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that marshals as a bare JSON number, which is how
// the fulfillment service parses prices and totals.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// Product is one line of the exported order.
type Product struct {
	PLU   string `json:"product"`
	Price Amount `json:"price"`
	Pcs   Amount `json:"pcs"`
	Tax   Amount `json:"tax"`
}

// ProductInput is one entry of a bulk AddProducts call. Pointer fields
// distinguish a missing value from zero when the input comes from JSON.
type ProductInput struct {
	PLU    string           `json:"plu"`
	Price  *decimal.Decimal `json:"price"`
	Amount *decimal.Decimal `json:"amount"`
	Vat    *decimal.Decimal `json:"vat"`
}

// OrderRecord is the canonical export shape sent to the fulfillment service.
type OrderRecord struct {
	Source         string            `json:"source"`
	OrderNumber    string            `json:"order_number"`
	OrderDate      string            `json:"order_date"`
	InvoiceNumber  string            `json:"invoice_number"`
	CurrencyID     Currency          `json:"currency_id"`
	CashOnDelivery bool              `json:"cod"`
	Total          Amount            `json:"total"`
	Products       []Product         `json:"products"`
	Customer       map[string]string `json:"customer"`
}

// The service expects a hyphenated time part, not a colon-separated one.
const orderDateLayout = "2006-01-02 15-04-05"

var maxRounding = decimal.RequireFromString("0.99")

// Sender delivers an encoded order payload to the fulfillment service.
type Sender interface {
	Send(ctx context.Context, payload string) error
}

// Settings fixes the per-instance behavior of a Service.
type Settings struct {
	Source        string
	Debug         bool
	DeliveryCodes []string
}

// Service accumulates a single order and exports it to the fulfillment
// service. One instance handles exactly one order.
type Service struct {
	source        string
	debug         bool
	deliveryCodes map[string]struct{}
	sender        Sender
	logger        *slog.Logger

	orderNumber    string
	invoiceNumber  string
	currency       Currency
	cashOnDelivery bool
	products       []Product
	customer       Customer

	now func() time.Time
}

// NewService creates a builder for a single order. An empty delivery-code
// list in settings falls back to DefaultDeliveryCodes.
func NewService(settings Settings, sender Sender, logger *slog.Logger) *Service {
	codes := settings.DeliveryCodes
	if len(codes) == 0 {
		codes = DefaultDeliveryCodes()
	}
	allowed := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		allowed[code] = struct{}{}
	}
	return &Service{
		source:        settings.Source,
		debug:         settings.Debug,
		deliveryCodes: allowed,
		sender:        sender,
		logger:        logger,
		currency:      CurrencyCZK,
		now:           time.Now,
	}
}

// Customer returns the customer record owned by this order.
func (s *Service) Customer() *Customer {
	return &s.customer
}

// CreateOrder stores the order header.
func (s *Service) CreateOrder(orderNumber, invoiceNumber string, cashOnDelivery bool, currency Currency) error {
	// ParseFloat alone would admit NaN and Inf spellings as numeric.
	number, err := strconv.ParseFloat(orderNumber, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return validationErrorf("order number should be numeric")
	}
	if currency != CurrencyCZK && currency != CurrencyEUR {
		return validationErrorf("unknown currency code")
	}
	if s.source == "" {
		return validationErrorf("order source code is not set")
	}
	s.orderNumber = orderNumber
	s.invoiceNumber = invoiceNumber
	s.cashOnDelivery = cashOnDelivery
	s.currency = currency
	return nil
}

// AddProduct appends a line item. Prices carry at most two decimal places.
func (s *Service) AddProduct(plu string, price, pcs, vat decimal.Decimal) error {
	if !price.Equal(price.Round(2)) {
		return validationErrorf("wrong price precision, only two decimals allowed")
	}
	s.products = append(s.products, Product{
		PLU:   plu,
		Price: Amount{price},
		Pcs:   Amount{pcs},
		Tax:   Amount{vat},
	})
	return nil
}

// AddProducts appends every entry of a bulk input, stopping at the first
// structurally incomplete one.
func (s *Service) AddProducts(items []ProductInput) error {
	for _, item := range items {
		if item.PLU == "" || item.Price == nil || item.Amount == nil || item.Vat == nil {
			return validationErrorf("wrong product structure")
		}
		if err := s.AddProduct(item.PLU, *item.Price, *item.Amount, *item.Vat); err != nil {
			return err
		}
	}
	return nil
}

// AddDiscount appends a discount line. The discount must reduce the total,
// so the product of price and amount must not be positive.
func (s *Service) AddDiscount(price, amount, vat decimal.Decimal) error {
	if price.Mul(amount).Sign() > 0 {
		return validationErrorf("price or amount must be negative for discount")
	}
	return s.AddProduct(PLUDiscount, price, amount, vat)
}

// AddRounding appends a rounding line neutralizing sub-unit drift.
func (s *Service) AddRounding(value decimal.Decimal) error {
	if value.Abs().GreaterThan(maxRounding) {
		return validationErrorf("rounding value can be between -0.99 and 0.99 only")
	}
	return s.AddProduct(PLURounding, value, decimal.NewFromInt(1), decimal.Zero)
}

// Total sums line-item prices and applies the rounding policy: cash on
// delivery in CZK rounds to whole crowns, everything else to cents. A sum
// the rounding would change is rejected so the caller absorbs the drift
// with an explicit rounding item instead.
func (s *Service) Total() (decimal.Decimal, error) {
	if len(s.products) == 0 {
		return decimal.Decimal{}, validationErrorf("no products defined, add some product first")
	}

	sum := decimal.Zero
	for _, product := range s.products {
		sum = sum.Add(product.Price.Decimal)
	}

	places := int32(2)
	if s.cashOnDelivery && s.currency == CurrencyCZK {
		places = 0
	}
	total := sum.Round(places)
	if !total.Equal(sum) {
		return decimal.Decimal{}, validationErrorf("unexpected total value, add a rounding item")
	}
	return total, nil
}

// Export validates the accumulated state and assembles the wire record.
// It can be called repeatedly; every call re-validates from scratch.
func (s *Service) Export() (*OrderRecord, error) {
	if err := s.checkDelivery(); err != nil {
		return nil, err
	}
	customer, err := s.customer.Record()
	if err != nil {
		return nil, err
	}
	total, err := s.Total()
	if err != nil {
		return nil, err
	}
	return &OrderRecord{
		Source:         s.source,
		OrderNumber:    s.orderNumber,
		OrderDate:      s.now().Format(orderDateLayout),
		InvoiceNumber:  s.invoiceNumber,
		CurrencyID:     s.currency,
		CashOnDelivery: s.cashOnDelivery,
		Total:          Amount{total},
		Products:       append([]Product(nil), s.products...),
		Customer:       customer,
	}, nil
}

func (s *Service) checkDelivery() error {
	for _, product := range s.products {
		if _, ok := s.deliveryCodes[product.PLU]; ok {
			return nil
		}
	}
	return validationErrorf("no delivery set, add a delivery product item")
}

// Send exports the order, serializes it, and hands the base64 payload to
// the transport. Debug mode stops after validation and encoding, so the
// whole pipeline can be exercised without network access.
func (s *Service) Send(ctx context.Context) error {
	record, err := s.Export()
	if err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(data)

	if s.debug {
		s.logger.Info("debug mode, order not sent",
			slog.String("order_number", record.OrderNumber),
			slog.Int("payload_bytes", len(payload)))
		return nil
	}
	return s.sender.Send(ctx, payload)
}
