// Package orderfile reads order descriptions from JSON files and feeds
// them into the order builder.
package orderfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/elmscz/elms-client/elms"
)

// Document describes one order to submit.
type Document struct {
	OrderNumber    string              `json:"order_number"`
	InvoiceNumber  string              `json:"invoice_number"`
	CashOnDelivery bool                `json:"cod"`
	Currency       string              `json:"currency"`
	Products       []elms.ProductInput `json:"products"`
	Rounding       *decimal.Decimal    `json:"rounding,omitempty"`
	Customer       Customer            `json:"customer"`
}

// Customer mirrors the billing and delivery blocks of the order file.
type Customer struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`

	Company string `json:"company,omitempty"`
	TaxID   string `json:"tax_id,omitempty"`
	VatID   string `json:"vat_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`

	Delivery *Delivery `json:"delivery,omitempty"`
}

// Delivery is an optional delivery address distinct from the billing one.
type Delivery struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Load reads and parses an order description file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read order file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse order file: %w", err)
	}
	return &doc, nil
}

// Apply replays the document onto the order builder.
func Apply(doc *Document, service *elms.Service) error {
	currency, err := parseCurrency(doc.Currency)
	if err != nil {
		return err
	}
	if err := service.CreateOrder(doc.OrderNumber, doc.InvoiceNumber, doc.CashOnDelivery, currency); err != nil {
		return err
	}

	customer := service.Customer()
	c := doc.Customer
	if err := customer.SetIdentity(c.Name, c.Surname, c.Street, c.City, c.Zip, c.Country); err != nil {
		return err
	}
	if c.Company != "" || c.TaxID != "" || c.VatID != "" {
		customer.SetCompany(c.Company, c.TaxID, c.VatID)
	}
	if c.Email != "" || c.Phone != "" {
		if err := customer.SetContact(c.Email, c.Phone); err != nil {
			return err
		}
	}
	if d := c.Delivery; d != nil {
		if err := customer.SetDeliveryAddress(d.Name, d.Surname, d.Street, d.City, d.Zip, d.Country); err != nil {
			return err
		}
		if d.Company != "" {
			customer.SetDeliveryCompany(d.Company)
		}
		if d.Email != "" || d.Phone != "" {
			if err := customer.SetDeliveryContact(d.Email, d.Phone); err != nil {
				return err
			}
		}
	}

	if err := service.AddProducts(doc.Products); err != nil {
		return err
	}
	if doc.Rounding != nil {
		if err := service.AddRounding(*doc.Rounding); err != nil {
			return err
		}
	}
	return nil
}

func parseCurrency(code string) (elms.Currency, error) {
	switch code {
	case "", "CZK":
		return elms.CurrencyCZK, nil
	case "EUR":
		return elms.CurrencyEUR, nil
	default:
		return 0, fmt.Errorf("unknown currency %q", code)
	}
}
