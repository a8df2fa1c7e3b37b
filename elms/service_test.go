package elms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type senderStub struct {
	calls   int
	payload string
	err     error
}

func (s *senderStub) Send(_ context.Context, payload string) error {
	s.calls++
	s.payload = payload
	return s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestService(t *testing.T, settings Settings, sender Sender) *Service {
	t.Helper()
	if settings.Source == "" {
		settings.Source = "shop1"
	}
	return NewService(settings, sender, testLogger())
}

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func TestCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name        string
		source      string
		orderNumber string
		currency    Currency
		wantErr     string
	}{
		{"valid header", "shop1", "1001", CurrencyCZK, ""},
		{"euro order", "shop1", "1001", CurrencyEUR, ""},
		{"signed decimal order number", "shop1", "+12.5", CurrencyCZK, ""},
		{"non-numeric order number", "shop1", "A-1001", CurrencyCZK, "order number should be numeric"},
		{"nan order number", "shop1", "NaN", CurrencyCZK, "order number should be numeric"},
		{"inf order number", "shop1", "-Inf", CurrencyCZK, "order number should be numeric"},
		{"unknown currency", "shop1", "1001", Currency(7), "unknown currency code"},
		{"missing source", "", "1001", CurrencyCZK, "order source code is not set"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(Settings{Source: tc.source}, &senderStub{}, testLogger())
			err := svc.CreateOrder(tc.orderNumber, "INV-1", false, tc.currency)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.wantErr, verr.Message)
		})
	}
}

func TestAddProductPricePrecision(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})

	require.NoError(t, svc.AddProduct("SKU1", dec(t, "19.99"), dec(t, "1"), dec(t, "21")))

	err := svc.AddProduct("SKU1", dec(t, "19.999"), dec(t, "1"), dec(t, "21"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAddDiscountSign(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})

	require.NoError(t, svc.AddDiscount(dec(t, "-10"), dec(t, "1"), dec(t, "0")))
	require.NoError(t, svc.AddDiscount(dec(t, "10"), dec(t, "-1"), dec(t, "0")))
	require.NoError(t, svc.AddDiscount(dec(t, "0"), dec(t, "1"), dec(t, "0")))

	err := svc.AddDiscount(dec(t, "10"), dec(t, "1"), dec(t, "0"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAddRoundingBounds(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})

	require.NoError(t, svc.AddRounding(dec(t, "0.50")))
	require.NoError(t, svc.AddRounding(dec(t, "-0.99")))

	err := svc.AddRounding(dec(t, "1.00"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAddProductsRejectsIncompleteEntries(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})

	price := dec(t, "100.00")
	amount := dec(t, "1")
	vat := dec(t, "21")

	require.NoError(t, svc.AddProducts([]ProductInput{
		{PLU: "SKU1", Price: &price, Amount: &amount, Vat: &vat},
		{PLU: "SKU2", Price: &price, Amount: &amount, Vat: &vat},
	}))

	err := svc.AddProducts([]ProductInput{
		{PLU: "SKU3", Price: &price, Amount: &amount},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "wrong product structure", verr.Message)
}

func TestTotalRoundingPolicy(t *testing.T) {
	t.Run("no products", func(t *testing.T) {
		svc := newTestService(t, Settings{}, &senderStub{})
		_, err := svc.Total()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("cod in czk requires whole crowns", func(t *testing.T) {
		svc := newTestService(t, Settings{}, &senderStub{})
		require.NoError(t, svc.CreateOrder("1001", "INV-1", true, CurrencyCZK))
		require.NoError(t, svc.AddProduct("SKU1", dec(t, "100.50"), dec(t, "1"), dec(t, "21")))

		_, err := svc.Total()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "unexpected total value, add a rounding item", verr.Message)

		require.NoError(t, svc.AddRounding(dec(t, "-0.50")))
		total, err := svc.Total()
		require.NoError(t, err)
		require.True(t, total.Equal(dec(t, "100")), "total = %s", total)
	})

	t.Run("non-cod keeps cents", func(t *testing.T) {
		svc := newTestService(t, Settings{}, &senderStub{})
		require.NoError(t, svc.CreateOrder("1001", "INV-1", false, CurrencyCZK))
		require.NoError(t, svc.AddProduct("SKU1", dec(t, "100.50"), dec(t, "1"), dec(t, "21")))

		total, err := svc.Total()
		require.NoError(t, err)
		require.True(t, total.Equal(dec(t, "100.50")), "total = %s", total)
	})
}

func fillValidOrder(t *testing.T, svc *Service) {
	t.Helper()
	require.NoError(t, svc.CreateOrder("1001", "INV-1", false, CurrencyCZK))
	require.NoError(t, svc.Customer().SetIdentity("Jan", "Novak", "Main St 1", "Prague", "11000", "CZ"))
	require.NoError(t, svc.AddProduct("SKU1", dec(t, "100.00"), dec(t, "1"), dec(t, "21")))
	require.NoError(t, svc.AddProduct(DeliveryCPost, dec(t, "0"), dec(t, "1"), dec(t, "0")))
}

func TestExportRequiresDeliveryItem(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})
	require.NoError(t, svc.CreateOrder("1001", "INV-1", false, CurrencyCZK))
	require.NoError(t, svc.Customer().SetIdentity("Jan", "Novak", "Main St 1", "Prague", "11000", "CZ"))
	require.NoError(t, svc.AddProduct("SKU1", dec(t, "100.00"), dec(t, "1"), dec(t, "21")))

	_, err := svc.Export()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "no delivery set, add a delivery product item", verr.Message)
}

func TestExportHonorsConfiguredDeliveryCodes(t *testing.T) {
	svc := newTestService(t, Settings{DeliveryCodes: []string{"courier_x"}}, &senderStub{})
	require.NoError(t, svc.CreateOrder("1001", "INV-1", false, CurrencyCZK))
	require.NoError(t, svc.Customer().SetIdentity("Jan", "Novak", "Main St 1", "Prague", "11000", "CZ"))
	require.NoError(t, svc.AddProduct("SKU1", dec(t, "100.00"), dec(t, "1"), dec(t, "21")))

	// cpost is not in the configured allow-list.
	require.NoError(t, svc.AddProduct(DeliveryCPost, dec(t, "0"), dec(t, "1"), dec(t, "0")))
	_, err := svc.Export()
	require.Error(t, err)

	require.NoError(t, svc.AddProduct("courier_x", dec(t, "0"), dec(t, "1"), dec(t, "0")))
	_, err = svc.Export()
	require.NoError(t, err)
}

func TestExportEndToEnd(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 14, 30, 15, 0, time.UTC)
	}
	fillValidOrder(t, svc)

	record, err := svc.Export()
	require.NoError(t, err)

	require.Equal(t, "shop1", record.Source)
	require.Equal(t, "1001", record.OrderNumber)
	require.Equal(t, "2026-08-31 14-30-15", record.OrderDate)
	require.Equal(t, "INV-1", record.InvoiceNumber)
	require.Equal(t, CurrencyCZK, record.CurrencyID)
	require.False(t, record.CashOnDelivery)
	require.True(t, record.Total.Equal(dec(t, "100.00")))
	require.Len(t, record.Products, 2)
	require.Equal(t, "SKU1", record.Products[0].PLU)
	require.Equal(t, DeliveryCPost, record.Products[1].PLU)
	require.Len(t, record.Customer, 6)
}

func TestExportIsRepeatable(t *testing.T) {
	svc := newTestService(t, Settings{}, &senderStub{})
	fillValidOrder(t, svc)

	first, err := svc.Export()
	require.NoError(t, err)
	second, err := svc.Export()
	require.NoError(t, err)

	require.Equal(t, first.Products, second.Products)
	require.Equal(t, first.Customer, second.Customer)
}

func TestSendEncodesPayload(t *testing.T) {
	sender := &senderStub{}
	svc := newTestService(t, Settings{}, sender)
	fillValidOrder(t, svc)

	require.NoError(t, svc.Send(context.Background()))
	require.Equal(t, 1, sender.calls)

	decoded, err := base64.StdEncoding.DecodeString(sender.payload)
	require.NoError(t, err)

	var wire struct {
		Source      string          `json:"source"`
		OrderNumber string          `json:"order_number"`
		CurrencyID  int             `json:"currency_id"`
		Total       json.Number     `json:"total"`
		Products    []struct {
			Product string      `json:"product"`
			Price   json.Number `json:"price"`
			Pcs     json.Number `json:"pcs"`
			Tax     json.Number `json:"tax"`
		} `json:"products"`
		Customer map[string]string `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(decoded, &wire))

	require.Equal(t, "shop1", wire.Source)
	require.Equal(t, "1001", wire.OrderNumber)
	require.Equal(t, 1, wire.CurrencyID)
	// decimal.String trims trailing zeros, same as the original service
	// emitting floats through json_encode.
	require.Equal(t, json.Number("100"), wire.Total)
	require.Len(t, wire.Products, 2)
	require.Equal(t, "SKU1", wire.Products[0].Product)
	require.Equal(t, json.Number("100"), wire.Products[0].Price)
	require.Equal(t, "11000", wire.Customer["postal_code"])
}

func TestSendDebugModeSkipsTransport(t *testing.T) {
	sender := &senderStub{}
	svc := newTestService(t, Settings{Debug: true}, sender)
	fillValidOrder(t, svc)

	require.NoError(t, svc.Send(context.Background()))
	require.Equal(t, 0, sender.calls)
}

func TestSendPropagatesTransportFailure(t *testing.T) {
	sender := &senderStub{err: &ValidationError{Message: "fulfillment service refused order: FAIL", StatusCode: 500}}
	svc := newTestService(t, Settings{}, sender)
	fillValidOrder(t, svc)

	err := svc.Send(context.Background())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 500, verr.StatusCode)
}

func TestSendRejectsInvalidStateBeforeTransport(t *testing.T) {
	sender := &senderStub{}
	svc := newTestService(t, Settings{}, sender)
	require.NoError(t, svc.CreateOrder("1001", "INV-1", false, CurrencyCZK))

	err := svc.Send(context.Background())
	require.Error(t, err)
	require.Equal(t, 0, sender.calls)
}
